package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	UserRoleClient   UserRole = "CLIENT"
	UserRoleDriver   UserRole = "DRIVER"
	UserRoleOperator UserRole = "OPERATOR"
)

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username   string    `gorm:"type:varchar(150);not null;uniqueIndex" json:"username"`
	Email      string    `gorm:"type:varchar(255)" json:"email"`
	Phone      string    `gorm:"type:varchar(15);not null;uniqueIndex" json:"phone"`
	Role       UserRole  `gorm:"type:varchar(16);not null" json:"role"`
	FirstName  string    `gorm:"type:varchar(150)" json:"first_name"`
	LastName   string    `gorm:"type:varchar(150)" json:"last_name"`
	IsVerified bool      `gorm:"not null;default:false" json:"is_verified"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
