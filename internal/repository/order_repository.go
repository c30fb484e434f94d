package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"dispatch-service/internal/model"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

type OrderFilter struct {
	ClientID *uuid.UUID
	DriverID *uuid.UUID
	Statuses []model.OrderStatus
	Limit    int
	Offset   int
}

func (r *OrderRepository) applyFilter(query *gorm.DB, filter OrderFilter) *gorm.DB {
	if filter.ClientID != nil {
		query = query.Where("orders.client_id = ?", *filter.ClientID)
	}
	if filter.DriverID != nil {
		query = query.
			Joins("JOIN tow_trucks tt ON tt.id = orders.tow_truck_id").
			Where("tt.driver_id = ?", *filter.DriverID)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("orders.status IN ?", filter.Statuses)
	}
	return query
}

func (r *OrderRepository) List(ctx context.Context, filter OrderFilter) ([]model.Order, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&model.Order{}), filter)

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	} else {
		query = query.Limit(200)
	}

	var orders []model.Order
	if err := query.
		Order("orders.created_at DESC").
		Preload("Client").
		Preload("Vehicle").
		Preload("VehicleType").
		Preload("TowTruck").
		Preload("TowTruck.Driver").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) Count(ctx context.Context, filter OrderFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&model.Order{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Vehicle").
		Preload("VehicleType").
		Preload("TowTruck").
		Preload("TowTruck.Driver").
		First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// ListActiveByTruck returns the truck's orders that are still in a
// non-terminal status, i.e. the orders whose subscribers should receive the
// truck's location updates.
func (r *OrderRepository) ListActiveByTruck(ctx context.Context, truckID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	if err := r.db.WithContext(ctx).
		Where("tow_truck_id = ? AND status IN ?", truckID, model.ActiveOrderStatuses).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// TransitionUpdate is everything a single status transition writes. The
// status change, the history row and the optional notification commit in one
// transaction; the conditional WHERE on the prior status is what gives each
// order read-modify-write atomicity.
type TransitionUpdate struct {
	OrderID      uuid.UUID
	From         model.OrderStatus
	To           model.OrderStatus
	CompletedAt  *time.Time
	FinalPrice   *decimal.Decimal
	History      *model.OrderStatusHistory
	Notification *model.Notification
	ReleaseTruck *uuid.UUID
}

func (r *OrderRepository) ApplyTransition(ctx context.Context, update TransitionUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fields := map[string]interface{}{"status": update.To}
		if update.CompletedAt != nil {
			fields["completed_at"] = *update.CompletedAt
		}
		if update.FinalPrice != nil {
			fields["final_price"] = *update.FinalPrice
		}

		res := tx.Model(&model.Order{}).
			Where("id = ? AND status = ?", update.OrderID, update.From).
			Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStatusConflict
		}

		if update.History != nil {
			if err := tx.Create(update.History).Error; err != nil {
				return err
			}
		}
		if update.Notification != nil {
			if err := tx.Create(update.Notification).Error; err != nil {
				return err
			}
		}
		if update.ReleaseTruck != nil {
			if err := tx.Model(&model.TowTruck{}).
				Where("id = ? AND status = ?", *update.ReleaseTruck, model.TruckStatusBusy).
				Update("status", model.TruckStatusAvailable).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// AssignTruck links the truck to the order and claims it in one transaction.
// The conditional update on the truck status keeps two operators from
// assigning the same truck concurrently.
func (r *OrderRepository) AssignTruck(ctx context.Context, orderID, truckID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.TowTruck{}).
			Where("id = ? AND status = ?", truckID, model.TruckStatusAvailable).
			Update("status", model.TruckStatusBusy)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTruckUnavailable
		}

		return tx.Model(&model.Order{}).
			Where("id = ?", orderID).
			Update("tow_truck_id", truckID).Error
	})
}

func (r *OrderRepository) ListHistory(ctx context.Context, orderID uuid.UUID) ([]model.OrderStatusHistory, error) {
	var history []model.OrderStatusHistory
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}

func (r *OrderRepository) CreateRating(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *OrderRepository) GetRatingByOrder(ctx context.Context, orderID uuid.UUID) (*model.Rating, error) {
	var rating model.Rating
	if err := r.db.WithContext(ctx).First(&rating, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

// AvgDriverRating averages driver scores over the completed orders served by
// the driver's trucks. Returns 0 when the driver has no ratings yet.
func (r *OrderRepository) AvgDriverRating(ctx context.Context, driverID uuid.UUID) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Select("AVG(ratings.driver_rating)").
		Joins("JOIN orders ON orders.id = ratings.order_id").
		Joins("JOIN tow_trucks tt ON tt.id = orders.tow_truck_id").
		Where("tt.driver_id = ?", driverID).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

func (r *OrderRepository) CreatePayment(ctx context.Context, payment *model.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *OrderRepository) ListPaymentsByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Payment, error) {
	var payments []model.Payment
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
