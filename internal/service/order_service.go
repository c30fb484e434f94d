package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"dispatch-service/internal/geo"
	"dispatch-service/internal/model"
	"dispatch-service/internal/repository"
)

type OrderService struct {
	orderRepo        *repository.OrderRepository
	truckRepo        *repository.TruckRepository
	vehicleRepo      *repository.VehicleRepository
	notificationRepo *repository.NotificationRepository
	pricing          *PricingService
	notifier         *NotificationService
	log              zerolog.Logger
}

func NewOrderService(
	orderRepo *repository.OrderRepository,
	truckRepo *repository.TruckRepository,
	vehicleRepo *repository.VehicleRepository,
	notificationRepo *repository.NotificationRepository,
	pricing *PricingService,
	notifier *NotificationService,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:        orderRepo,
		truckRepo:        truckRepo,
		vehicleRepo:      vehicleRepo,
		notificationRepo: notificationRepo,
		pricing:          pricing,
		notifier:         notifier,
		log:              log,
	}
}

// statusNotifications are the client-facing templates emitted on a status
// change. A status without a template is a silent no-op.
var statusNotifications = map[model.OrderStatus]struct {
	Type  string
	Title string
	Body  string
}{
	model.OrderStatusConfirmed: {
		Type:  model.NotificationOrderConfirmed,
		Title: "Order confirmed",
		Body:  "Your order %s has been confirmed and is awaiting driver assignment.",
	},
	model.OrderStatusAssigned: {
		Type:  model.NotificationOrderAssigned,
		Title: "Driver assigned",
		Body:  "A driver has been assigned to your order %s.",
	},
	model.OrderStatusInProgress: {
		Type:  model.NotificationOrderInProgress,
		Title: "Towing started",
		Body:  "The driver is on the way to the pickup point for order %s.",
	},
	model.OrderStatusCompleted: {
		Type:  model.NotificationOrderCompleted,
		Title: "Order completed",
		Body:  "Your order %s has been completed.",
	},
	model.OrderStatusCancelled: {
		Type:  model.NotificationOrderCancelled,
		Title: "Order cancelled",
		Body:  "Your order %s has been cancelled.",
	},
}

type CreateOrderInput struct {
	VehicleID         *uuid.UUID
	VehicleTypeID     uuid.UUID
	PickupAddress     string
	PickupLatitude    float64
	PickupLongitude   float64
	DeliveryAddress   string
	DeliveryLatitude  float64
	DeliveryLongitude float64
	Description       string
	Priority          model.OrderPriority
	ScheduledTime     *time.Time
}

func (s *OrderService) Create(ctx context.Context, principal model.Principal, input CreateOrderInput) (*model.Order, error) {
	if !principal.IsClient() {
		return nil, ErrPermissionDenied
	}
	if input.PickupAddress == "" || input.DeliveryAddress == "" {
		return nil, ErrInvalidInput
	}
	if !model.ValidCoordinate(input.PickupLatitude, input.PickupLongitude) ||
		!model.ValidCoordinate(input.DeliveryLatitude, input.DeliveryLongitude) {
		return nil, ErrInvalidInput
	}

	priority := input.Priority
	if priority == "" {
		priority = model.OrderPriorityNormal
	}
	switch priority {
	case model.OrderPriorityLow, model.OrderPriorityNormal, model.OrderPriorityHigh, model.OrderPriorityUrgent:
	default:
		return nil, ErrInvalidInput
	}

	if _, err := s.vehicleRepo.GetVehicleType(ctx, input.VehicleTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.VehicleID != nil {
		vehicle, err := s.vehicleRepo.GetClientVehicle(ctx, *input.VehicleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if vehicle.OwnerID != principal.UserID {
			return nil, ErrPermissionDenied
		}
	}

	order := &model.Order{
		ClientID:          principal.UserID,
		VehicleID:         input.VehicleID,
		VehicleTypeID:     input.VehicleTypeID,
		PickupAddress:     input.PickupAddress,
		PickupLatitude:    input.PickupLatitude,
		PickupLongitude:   input.PickupLongitude,
		DeliveryAddress:   input.DeliveryAddress,
		DeliveryLatitude:  input.DeliveryLatitude,
		DeliveryLongitude: input.DeliveryLongitude,
		Description:       input.Description,
		Priority:          priority,
		Status:            model.OrderStatusPending,
		ScheduledTime:     input.ScheduledTime,
	}

	distanceKm := geo.HaversineKm(
		input.PickupLatitude, input.PickupLongitude,
		input.DeliveryLatitude, input.DeliveryLongitude,
	)
	if distanceKm > 0 {
		estimate, err := s.pricing.EstimatePrice(
			ctx,
			input.VehicleTypeID,
			decimal.NewFromFloat(distanceKm),
			input.PickupLatitude, input.PickupLongitude,
		)
		if err != nil {
			return nil, err
		}
		order.EstimatedPrice = &estimate.Price
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, principal.UserID, model.NotificationOrderCreated,
		"Order created",
		"Your towing order has been created and is awaiting confirmation.",
		&order.ID)

	return s.orderRepo.GetByID(ctx, order.ID)
}

// Transition moves the order along the status graph. The write is
// conditional on the current status, so two racing requests can never both
// carry the order out of the same state.
func (s *OrderService) Transition(ctx context.Context, principal model.Principal, orderID uuid.UUID, newStatus model.OrderStatus, comment string, finalPrice *decimal.Decimal) (*model.Order, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !s.canManage(principal, order) {
		return nil, ErrPermissionDenied
	}
	if !newStatus.Valid() || !order.Status.CanTransition(newStatus) {
		return nil, ErrInvalidStatus
	}

	update := repository.TransitionUpdate{
		OrderID:    order.ID,
		From:       order.Status,
		To:         newStatus,
		FinalPrice: finalPrice,
		History: &model.OrderStatusHistory{
			OrderID:   order.ID,
			OldStatus: order.Status,
			NewStatus: newStatus,
			ChangedBy: &principal.UserID,
			Comment:   comment,
		},
	}

	if newStatus == model.OrderStatusCompleted {
		now := time.Now().UTC()
		update.CompletedAt = &now
	}
	if newStatus.IsTerminal() && order.TowTruckID != nil {
		update.ReleaseTruck = order.TowTruckID
	}

	if tpl, ok := statusNotifications[newStatus]; ok {
		update.Notification = &model.Notification{
			UserID:         order.ClientID,
			Type:           tpl.Type,
			Title:          tpl.Title,
			Message:        fmt.Sprintf(tpl.Body, order.ID),
			RelatedOrderID: &order.ID,
		}
	}

	if err := s.orderRepo.ApplyTransition(ctx, update); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return s.orderRepo.GetByID(ctx, order.ID)
}

// AssignTruck links an AVAILABLE truck to the order. Assignment is an
// operator action; the usual follow-up is a transition to ASSIGNED.
func (s *OrderService) AssignTruck(ctx context.Context, principal model.Principal, orderID, truckID uuid.UUID) (*model.Order, error) {
	if !principal.IsOperator() {
		return nil, ErrPermissionDenied
	}

	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.IsTerminal() {
		return nil, ErrInvalidStatus
	}
	if order.TowTruckID != nil {
		return nil, ErrConflict
	}

	truck, err := s.truckRepo.GetByID(ctx, truckID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !truck.SupportsVehicleType(order.VehicleTypeID) {
		return nil, ErrInvalidInput
	}

	if err := s.orderRepo.AssignTruck(ctx, order.ID, truck.ID); err != nil {
		if errors.Is(err, repository.ErrTruckUnavailable) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return s.orderRepo.GetByID(ctx, order.ID)
}

func (s *OrderService) SubmitRating(ctx context.Context, principal model.Principal, orderID uuid.UUID, driverRating, serviceRating int, comment string) (*model.Rating, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.ClientID != principal.UserID {
		return nil, ErrPermissionDenied
	}
	if order.Status != model.OrderStatusCompleted {
		return nil, ErrInvalidStatus
	}
	if driverRating < 1 || driverRating > 5 || serviceRating < 1 || serviceRating > 5 {
		return nil, ErrInvalidInput
	}

	rating := &model.Rating{
		OrderID:       order.ID,
		DriverRating:  driverRating,
		ServiceRating: serviceRating,
		Comment:       comment,
	}
	if err := s.orderRepo.CreateRating(ctx, rating); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return rating, nil
}

type CreatePaymentInput struct {
	Amount        decimal.Decimal
	Method        string
	Status        string
	TransactionID string
}

func (s *OrderService) CreatePayment(ctx context.Context, principal model.Principal, orderID uuid.UUID, input CreatePaymentInput) (*model.Payment, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.ClientID != principal.UserID && !principal.IsOperator() {
		return nil, ErrPermissionDenied
	}
	if !input.Amount.IsPositive() {
		return nil, ErrInvalidInput
	}
	switch input.Method {
	case model.PaymentMethodCash, model.PaymentMethodCard, model.PaymentMethodTransfer:
	default:
		return nil, ErrInvalidInput
	}
	switch input.Status {
	case model.PaymentStatusPending, model.PaymentStatusProcessing, model.PaymentStatusCompleted,
		model.PaymentStatusFailed, model.PaymentStatusRefunded:
	default:
		return nil, ErrInvalidInput
	}

	payment := &model.Payment{
		OrderID:       order.ID,
		Amount:        input.Amount,
		Method:        input.Method,
		Status:        input.Status,
		TransactionID: input.TransactionID,
	}
	if input.Status == model.PaymentStatusCompleted {
		now := time.Now().UTC()
		payment.PaidAt = &now
	}

	if err := s.orderRepo.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	if payment.PaidAt != nil {
		s.notifier.Notify(ctx, order.ClientID, model.NotificationPayment,
			"Payment received",
			fmt.Sprintf("Payment of %s for order %s has been received.", payment.Amount, order.ID),
			&order.ID)
	}

	return payment, nil
}

func (s *OrderService) List(ctx context.Context, principal model.Principal, statuses []model.OrderStatus, limit, offset int) ([]model.Order, error) {
	filter := repository.OrderFilter{
		Statuses: statuses,
		Limit:    limit,
		Offset:   offset,
	}
	switch {
	case principal.IsClient():
		filter.ClientID = &principal.UserID
	case principal.IsDriver():
		filter.DriverID = &principal.UserID
	case principal.IsOperator():
	default:
		return nil, ErrPermissionDenied
	}
	return s.orderRepo.List(ctx, filter)
}

func (s *OrderService) Get(ctx context.Context, principal model.Principal, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !s.canView(principal, order) {
		return nil, ErrPermissionDenied
	}
	return order, nil
}

func (s *OrderService) History(ctx context.Context, principal model.Principal, orderID uuid.UUID) ([]model.OrderStatusHistory, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !s.canView(principal, order) {
		return nil, ErrPermissionDenied
	}
	return s.orderRepo.ListHistory(ctx, order.ID)
}

func (s *OrderService) Payments(ctx context.Context, principal model.Principal, orderID uuid.UUID) ([]model.Payment, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !s.canView(principal, order) {
		return nil, ErrPermissionDenied
	}
	return s.orderRepo.ListPaymentsByOrder(ctx, order.ID)
}

type DashboardStats struct {
	TotalOrders         int64    `json:"total_orders"`
	ActiveOrders        int64    `json:"active_orders"`
	CompletedOrders     int64    `json:"completed_orders"`
	PendingOrders       *int64   `json:"pending_orders,omitempty"`
	AvailableTrucks     *int64   `json:"available_trucks,omitempty"`
	AvgRating           *float64 `json:"avg_rating,omitempty"`
	UnreadNotifications int64    `json:"unread_notifications"`
}

func (s *OrderService) Dashboard(ctx context.Context, principal model.Principal) (*DashboardStats, error) {
	stats := &DashboardStats{}

	unread, err := s.notificationRepo.CountUnread(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	stats.UnreadNotifications = unread

	completed := []model.OrderStatus{model.OrderStatusCompleted}

	switch {
	case principal.IsClient():
		base := repository.OrderFilter{ClientID: &principal.UserID}
		if stats.TotalOrders, err = s.orderRepo.Count(ctx, base); err != nil {
			return nil, err
		}
		active := base
		active.Statuses = model.ActiveOrderStatuses
		if stats.ActiveOrders, err = s.orderRepo.Count(ctx, active); err != nil {
			return nil, err
		}
		done := base
		done.Statuses = completed
		if stats.CompletedOrders, err = s.orderRepo.Count(ctx, done); err != nil {
			return nil, err
		}

	case principal.IsDriver():
		base := repository.OrderFilter{DriverID: &principal.UserID}
		if stats.TotalOrders, err = s.orderRepo.Count(ctx, base); err != nil {
			return nil, err
		}
		active := base
		active.Statuses = []model.OrderStatus{model.OrderStatusAssigned, model.OrderStatusInProgress}
		if stats.ActiveOrders, err = s.orderRepo.Count(ctx, active); err != nil {
			return nil, err
		}
		done := base
		done.Statuses = completed
		if stats.CompletedOrders, err = s.orderRepo.Count(ctx, done); err != nil {
			return nil, err
		}
		avg, err := s.orderRepo.AvgDriverRating(ctx, principal.UserID)
		if err != nil {
			return nil, err
		}
		stats.AvgRating = &avg

	case principal.IsOperator():
		if stats.TotalOrders, err = s.orderRepo.Count(ctx, repository.OrderFilter{}); err != nil {
			return nil, err
		}
		pending, err := s.orderRepo.Count(ctx, repository.OrderFilter{
			Statuses: []model.OrderStatus{model.OrderStatusPending},
		})
		if err != nil {
			return nil, err
		}
		stats.PendingOrders = &pending
		if stats.ActiveOrders, err = s.orderRepo.Count(ctx, repository.OrderFilter{
			Statuses: []model.OrderStatus{model.OrderStatusConfirmed, model.OrderStatusAssigned, model.OrderStatusInProgress},
		}); err != nil {
			return nil, err
		}
		if stats.CompletedOrders, err = s.orderRepo.Count(ctx, repository.OrderFilter{Statuses: completed}); err != nil {
			return nil, err
		}
		available, err := s.truckRepo.CountByStatus(ctx, model.TruckStatusAvailable)
		if err != nil {
			return nil, err
		}
		stats.AvailableTrucks = &available

	default:
		return nil, ErrPermissionDenied
	}

	return stats, nil
}

func (s *OrderService) getOrder(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// canManage: transitions are for the assigned driver or an operator.
func (s *OrderService) canManage(principal model.Principal, order *model.Order) bool {
	if principal.IsOperator() {
		return true
	}
	if principal.IsDriver() && order.TowTruck != nil && order.TowTruck.DriverID != nil {
		return *order.TowTruck.DriverID == principal.UserID
	}
	return false
}

// canView: the order's client, its assigned driver, or an operator.
func (s *OrderService) canView(principal model.Principal, order *model.Order) bool {
	if principal.IsOperator() {
		return true
	}
	if order.ClientID == principal.UserID {
		return true
	}
	return s.canManage(principal, order)
}
