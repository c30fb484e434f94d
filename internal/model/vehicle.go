package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VehicleType is a category of vehicle a tow truck can carry, together with
// the pricing rates for that category.
type VehicleType struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	MaxWeight   float64         `gorm:"not null" json:"max_weight"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"base_price"`
	PerKmRate   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"per_km_rate"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (VehicleType) TableName() string {
	return "vehicle_types"
}

func (t *VehicleType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// ClientVehicle is a vehicle registered by a client that can be attached to
// orders.
type ClientVehicle struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID      uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Make         string    `gorm:"type:varchar(100);not null" json:"make"`
	Model        string    `gorm:"type:varchar(100);not null" json:"model"`
	Year         int       `gorm:"not null" json:"year"`
	Color        string    `gorm:"type:varchar(50)" json:"color"`
	LicensePlate string    `gorm:"type:varchar(20);not null;uniqueIndex" json:"license_plate"`
	Notes        string    `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (ClientVehicle) TableName() string {
	return "client_vehicles"
}

func (v *ClientVehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
