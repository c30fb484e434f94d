package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dispatch-service/internal/model"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) ListVehicleTypes(ctx context.Context) ([]model.VehicleType, error) {
	var types []model.VehicleType
	if err := r.db.WithContext(ctx).Order("name").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *VehicleRepository) GetVehicleType(ctx context.Context, id uuid.UUID) (*model.VehicleType, error) {
	var vt model.VehicleType
	if err := r.db.WithContext(ctx).First(&vt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vt, nil
}

func (r *VehicleRepository) CreateClientVehicle(ctx context.Context, vehicle *model.ClientVehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *VehicleRepository) GetClientVehicle(ctx context.Context, id uuid.UUID) (*model.ClientVehicle, error) {
	var vehicle model.ClientVehicle
	if err := r.db.WithContext(ctx).First(&vehicle, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *VehicleRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.ClientVehicle, error) {
	var vehicles []model.ClientVehicle
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}
