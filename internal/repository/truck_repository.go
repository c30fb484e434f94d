package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dispatch-service/internal/model"
)

type TruckRepository struct {
	db *gorm.DB
}

func NewTruckRepository(db *gorm.DB) *TruckRepository {
	return &TruckRepository{db: db}
}

func (r *TruckRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TowTruck, error) {
	var truck model.TowTruck
	if err := r.db.WithContext(ctx).
		Preload("Driver").
		Preload("VehicleTypes").
		First(&truck, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &truck, nil
}

func (r *TruckRepository) GetByDriver(ctx context.Context, driverID uuid.UUID) (*model.TowTruck, error) {
	var truck model.TowTruck
	if err := r.db.WithContext(ctx).
		First(&truck, "driver_id = ?", driverID).Error; err != nil {
		return nil, err
	}
	return &truck, nil
}

func (r *TruckRepository) ListAvailable(ctx context.Context, vehicleTypeID *uuid.UUID) ([]model.TowTruck, error) {
	query := r.db.WithContext(ctx).
		Model(&model.TowTruck{}).
		Where("tow_trucks.status = ?", model.TruckStatusAvailable)

	if vehicleTypeID != nil {
		query = query.
			Joins("JOIN tow_truck_vehicle_types tvt ON tvt.tow_truck_id = tow_trucks.id").
			Where("tvt.vehicle_type_id = ?", *vehicleTypeID)
	}

	var trucks []model.TowTruck
	if err := query.
		Preload("Driver").
		Preload("VehicleTypes").
		Order("tow_trucks.license_plate").
		Find(&trucks).Error; err != nil {
		return nil, err
	}
	return trucks, nil
}

func (r *TruckRepository) Create(ctx context.Context, truck *model.TowTruck) error {
	return r.db.WithContext(ctx).Create(truck).Error
}

// UpdateLocation persists the newest coordinate for the truck. Writes are
// last-write-wins: no ordering is enforced between concurrent updates.
func (r *TruckRepository) UpdateLocation(ctx context.Context, truckID uuid.UUID, lat, lon float64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.TowTruck{}).
		Where("id = ?", truckID).
		Updates(map[string]interface{}{
			"current_lat": lat,
			"current_lon": lon,
			"location_at": at,
		}).Error
}

func (r *TruckRepository) CountByStatus(ctx context.Context, status model.TruckStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.TowTruck{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SetStatusIf moves the truck between statuses only when the expected prior
// status still holds. Returns ErrTruckUnavailable when the row was already
// taken by a concurrent writer.
func (r *TruckRepository) SetStatusIf(ctx context.Context, truckID uuid.UUID, from, to model.TruckStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.TowTruck{}).
		Where("id = ? AND status = ?", truckID, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTruckUnavailable
	}
	return nil
}
