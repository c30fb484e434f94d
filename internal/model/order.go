package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusAssigned   OrderStatus = "ASSIGNED"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

type OrderPriority string

const (
	OrderPriorityLow    OrderPriority = "LOW"
	OrderPriorityNormal OrderPriority = "NORMAL"
	OrderPriorityHigh   OrderPriority = "HIGH"
	OrderPriorityUrgent OrderPriority = "URGENT"
)

// orderTransitions is the authoritative status graph. COMPLETED and
// CANCELLED are terminal: they have no outgoing edges.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusAssigned, OrderStatusCancelled},
	OrderStatusAssigned:   {OrderStatusInProgress, OrderStatusCancelled},
	OrderStatusInProgress: {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {},
}

// CanTransition reports whether an order may move from one status to
// another in a single step.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from s.
func (s OrderStatus) NextStatuses() []OrderStatus {
	return orderTransitions[s]
}

func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// ActiveOrderStatuses are the non-terminal statuses: orders in these states
// still receive location broadcasts.
var ActiveOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusAssigned,
	OrderStatusInProgress,
}

type Order struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID          uuid.UUID        `gorm:"type:uuid;not null;index" json:"client_id"`
	VehicleID         *uuid.UUID       `gorm:"type:uuid" json:"vehicle_id"`
	VehicleTypeID     uuid.UUID        `gorm:"type:uuid;not null" json:"vehicle_type_id"`
	TowTruckID        *uuid.UUID       `gorm:"type:uuid;index" json:"tow_truck_id"`
	PickupAddress     string           `gorm:"type:text;not null" json:"pickup_address"`
	PickupLatitude    float64          `gorm:"not null" json:"pickup_latitude"`
	PickupLongitude   float64          `gorm:"not null" json:"pickup_longitude"`
	DeliveryAddress   string           `gorm:"type:text;not null" json:"delivery_address"`
	DeliveryLatitude  float64          `gorm:"not null" json:"delivery_latitude"`
	DeliveryLongitude float64          `gorm:"not null" json:"delivery_longitude"`
	Description       string           `gorm:"type:text" json:"description"`
	Priority          OrderPriority    `gorm:"type:varchar(10);not null;default:'NORMAL'" json:"priority"`
	Status            OrderStatus      `gorm:"type:varchar(15);not null;default:'PENDING'" json:"status"`
	EstimatedPrice    *decimal.Decimal `gorm:"type:decimal(10,2)" json:"estimated_price"`
	FinalPrice        *decimal.Decimal `gorm:"type:decimal(10,2)" json:"final_price"`
	ScheduledTime     *time.Time       `json:"scheduled_time"`
	CompletedAt       *time.Time       `json:"completed_at"`
	CreatedAt         time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"autoUpdateTime" json:"updated_at"`

	Client      *User          `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Vehicle     *ClientVehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	VehicleType *VehicleType   `gorm:"foreignKey:VehicleTypeID" json:"vehicle_type,omitempty"`
	TowTruck    *TowTruck      `gorm:"foreignKey:TowTruckID" json:"tow_truck,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderStatusHistory is the append-only audit log of order transitions.
type OrderStatusHistory struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"order_id"`
	OldStatus OrderStatus `gorm:"type:varchar(15);not null" json:"old_status"`
	NewStatus OrderStatus `gorm:"type:varchar(15);not null" json:"new_status"`
	ChangedBy *uuid.UUID  `gorm:"type:uuid" json:"changed_by"`
	Comment   string      `gorm:"type:text" json:"comment"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

func (OrderStatusHistory) TableName() string {
	return "order_status_history"
}

func (h *OrderStatusHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
