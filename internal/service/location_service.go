package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"dispatch-service/internal/broadcast"
	"dispatch-service/internal/model"
	"dispatch-service/internal/repository"
)

type LocationService struct {
	truckRepo *repository.TruckRepository
	orderRepo *repository.OrderRepository
	publisher broadcast.Publisher
	log       zerolog.Logger
}

func NewLocationService(
	truckRepo *repository.TruckRepository,
	orderRepo *repository.OrderRepository,
	publisher broadcast.Publisher,
	log zerolog.Logger,
) *LocationService {
	return &LocationService{
		truckRepo: truckRepo,
		orderRepo: orderRepo,
		publisher: publisher,
		log:       log,
	}
}

// LocationUpdate is the payload published to subscribers and returned to the
// reporting driver.
type LocationUpdate struct {
	TruckID   uuid.UUID  `json:"tow_truck_id"`
	OrderID   *uuid.UUID `json:"order_id,omitempty"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// UpdateLocation persists the driver's newest coordinate and fans it out to
// the truck's subscribers and to the subscribers of every active order the
// truck is serving. Persisting is last-write-wins; publishing is best-effort
// and never blocks on slow consumers.
func (s *LocationService) UpdateLocation(ctx context.Context, principal model.Principal, lat, lon float64) (*LocationUpdate, error) {
	if !principal.IsDriver() {
		return nil, ErrPermissionDenied
	}
	if !model.ValidCoordinate(lat, lon) {
		return nil, ErrInvalidInput
	}

	truck, err := s.truckRepo.GetByDriver(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.truckRepo.UpdateLocation(ctx, truck.ID, lat, lon, now); err != nil {
		return nil, err
	}

	update := &LocationUpdate{
		TruckID:   truck.ID,
		Latitude:  lat,
		Longitude: lon,
		UpdatedAt: now,
	}

	s.publisher.Publish(broadcast.TruckTopic(truck.ID), update)

	orders, err := s.orderRepo.ListActiveByTruck(ctx, truck.ID)
	if err != nil {
		// The coordinate is already persisted; fan-out to order groups is
		// best-effort.
		s.log.Error().Err(err).Str("truck_id", truck.ID.String()).Msg("failed to list active orders for broadcast")
		return update, nil
	}
	for _, order := range orders {
		orderID := order.ID
		msg := *update
		msg.OrderID = &orderID
		s.publisher.Publish(broadcast.OrderTopic(orderID), &msg)
	}

	return update, nil
}

// AuthorizeOrderTopic checks that the principal may follow the order's
// location stream and returns the topic plus the latest snapshot, if the
// assigned truck has reported one. Unauthorized subscribers fail closed.
func (s *LocationService) AuthorizeOrderTopic(ctx context.Context, principal model.Principal, orderID uuid.UUID) (broadcast.Topic, *LocationUpdate, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return broadcast.Topic{}, nil, ErrNotFound
		}
		return broadcast.Topic{}, nil, err
	}

	allowed := principal.IsOperator() || order.ClientID == principal.UserID
	if !allowed && principal.IsDriver() && order.TowTruck != nil && order.TowTruck.DriverID != nil {
		allowed = *order.TowTruck.DriverID == principal.UserID
	}
	if !allowed {
		return broadcast.Topic{}, nil, ErrPermissionDenied
	}

	var snapshot *LocationUpdate
	if order.TowTruck != nil {
		snapshot = truckSnapshot(order.TowTruck)
		if snapshot != nil {
			snapshot.OrderID = &order.ID
		}
	}
	return broadcast.OrderTopic(order.ID), snapshot, nil
}

// AuthorizeTruckTopic is the truck-group counterpart: the truck's driver or
// an operator.
func (s *LocationService) AuthorizeTruckTopic(ctx context.Context, principal model.Principal, truckID uuid.UUID) (broadcast.Topic, *LocationUpdate, error) {
	truck, err := s.truckRepo.GetByID(ctx, truckID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return broadcast.Topic{}, nil, ErrNotFound
		}
		return broadcast.Topic{}, nil, err
	}

	allowed := principal.IsOperator()
	if !allowed && principal.IsDriver() && truck.DriverID != nil {
		allowed = *truck.DriverID == principal.UserID
	}
	if !allowed {
		return broadcast.Topic{}, nil, ErrPermissionDenied
	}

	return broadcast.TruckTopic(truck.ID), truckSnapshot(truck), nil
}

func truckSnapshot(truck *model.TowTruck) *LocationUpdate {
	if truck.CurrentLat == nil || truck.CurrentLon == nil {
		return nil
	}
	snapshot := &LocationUpdate{
		TruckID:   truck.ID,
		Latitude:  *truck.CurrentLat,
		Longitude: *truck.CurrentLon,
	}
	if truck.LocationAt != nil {
		snapshot.UpdatedAt = *truck.LocationAt
	}
	return snapshot
}
