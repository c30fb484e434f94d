package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is one settlement attempt for an order. Retries create new rows,
// so an order may carry several payments.
type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method        string          `gorm:"type:varchar(50);not null" json:"method"`
	Status        string          `gorm:"type:varchar(50);not null" json:"status"`
	TransactionID string          `gorm:"type:varchar(100)" json:"transaction_id"`
	PaidAt        *time.Time      `json:"paid_at"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Rating is submitted once by the client after an order completes.
type Rating struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	DriverRating  int       `gorm:"not null" json:"driver_rating"`
	ServiceRating int       `gorm:"not null" json:"service_rating"`
	Comment       string    `gorm:"type:text" json:"comment"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Rating) TableName() string {
	return "ratings"
}

func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
