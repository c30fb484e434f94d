package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"dispatch-service/internal/model"
	"dispatch-service/internal/repository"
)

// FleetService covers the reference and fleet surface: vehicle categories,
// client vehicles and tow trucks.
type FleetService struct {
	vehicleRepo *repository.VehicleRepository
	truckRepo   *repository.TruckRepository
	log         zerolog.Logger
}

func NewFleetService(vehicleRepo *repository.VehicleRepository, truckRepo *repository.TruckRepository, log zerolog.Logger) *FleetService {
	return &FleetService{
		vehicleRepo: vehicleRepo,
		truckRepo:   truckRepo,
		log:         log,
	}
}

func (s *FleetService) ListVehicleTypes(ctx context.Context) ([]model.VehicleType, error) {
	return s.vehicleRepo.ListVehicleTypes(ctx)
}

type RegisterVehicleInput struct {
	Make         string
	Model        string
	Year         int
	Color        string
	LicensePlate string
	Notes        string
}

func (s *FleetService) RegisterVehicle(ctx context.Context, principal model.Principal, input RegisterVehicleInput) (*model.ClientVehicle, error) {
	if !principal.IsClient() {
		return nil, ErrPermissionDenied
	}
	if input.Make == "" || input.Model == "" || input.LicensePlate == "" || input.Year <= 0 {
		return nil, ErrInvalidInput
	}

	vehicle := &model.ClientVehicle{
		OwnerID:      principal.UserID,
		Make:         input.Make,
		Model:        input.Model,
		Year:         input.Year,
		Color:        input.Color,
		LicensePlate: input.LicensePlate,
		Notes:        input.Notes,
	}
	if err := s.vehicleRepo.CreateClientVehicle(ctx, vehicle); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return vehicle, nil
}

func (s *FleetService) ListMyVehicles(ctx context.Context, principal model.Principal) ([]model.ClientVehicle, error) {
	if !principal.IsClient() {
		return nil, ErrPermissionDenied
	}
	return s.vehicleRepo.ListByOwner(ctx, principal.UserID)
}

// ListAvailableTrucks lists AVAILABLE trucks, optionally narrowed to those
// serving a vehicle category.
func (s *FleetService) ListAvailableTrucks(ctx context.Context, vehicleTypeID *uuid.UUID) ([]model.TowTruck, error) {
	return s.truckRepo.ListAvailable(ctx, vehicleTypeID)
}
