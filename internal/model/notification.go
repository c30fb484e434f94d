package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Notification struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Type           string     `gorm:"type:varchar(50);not null" json:"type"`
	Title          string     `gorm:"type:varchar(200);not null" json:"title"`
	Message        string     `gorm:"type:text;not null" json:"message"`
	IsRead         bool       `gorm:"not null;default:false" json:"is_read"`
	RelatedOrderID *uuid.UUID `gorm:"type:uuid" json:"related_order_id"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
