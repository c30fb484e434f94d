package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TruckStatus string

const (
	TruckStatusAvailable   TruckStatus = "AVAILABLE"
	TruckStatusBusy        TruckStatus = "BUSY"
	TruckStatusMaintenance TruckStatus = "MAINTENANCE"
	TruckStatusOffline     TruckStatus = "OFFLINE"
)

type TowTruck struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	LicensePlate string      `gorm:"type:varchar(20);not null;uniqueIndex" json:"license_plate"`
	Model        string      `gorm:"type:varchar(100);not null" json:"model"`
	Capacity     float64     `gorm:"not null" json:"capacity"`
	DriverID     *uuid.UUID  `gorm:"type:uuid;index" json:"driver_id"`
	Status       TruckStatus `gorm:"type:varchar(15);not null;default:'AVAILABLE'" json:"status"`
	CurrentLat   *float64    `json:"current_lat"`
	CurrentLon   *float64    `json:"current_lon"`
	LocationAt   *time.Time  `gorm:"column:location_at" json:"location_at"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	Driver       *User         `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
	VehicleTypes []VehicleType `gorm:"many2many:tow_truck_vehicle_types" json:"vehicle_types,omitempty"`
}

func (TowTruck) TableName() string {
	return "tow_trucks"
}

func (t *TowTruck) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// SupportsVehicleType reports whether the truck serves the given category.
// VehicleTypes must be preloaded.
func (t *TowTruck) SupportsVehicleType(vehicleTypeID uuid.UUID) bool {
	for _, vt := range t.VehicleTypes {
		if vt.ID == vehicleTypeID {
			return true
		}
	}
	return false
}
