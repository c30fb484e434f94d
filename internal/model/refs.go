package model

import "time"

// Reference code tables. Rows are seeded by migration and rarely change;
// operators may add new codes but existing ones are never removed.

type PaymentMethod struct {
	Code        string    `gorm:"type:varchar(50);primaryKey" json:"code"`
	Name        string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PaymentMethod) TableName() string {
	return "payment_methods"
}

type PaymentStatusCode struct {
	Code        string    `gorm:"type:varchar(50);primaryKey" json:"code"`
	Name        string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PaymentStatusCode) TableName() string {
	return "payment_statuses"
}

type NotificationType struct {
	Code        string    `gorm:"type:varchar(50);primaryKey" json:"code"`
	Name        string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (NotificationType) TableName() string {
	return "notification_types"
}

const (
	PaymentMethodCash     = "CASH"
	PaymentMethodCard     = "CARD"
	PaymentMethodTransfer = "TRANSFER"
)

const (
	PaymentStatusPending    = "PENDING"
	PaymentStatusProcessing = "PROCESSING"
	PaymentStatusCompleted  = "COMPLETED"
	PaymentStatusFailed     = "FAILED"
	PaymentStatusRefunded   = "REFUNDED"
)

const (
	NotificationOrderCreated    = "ORDER_CREATED"
	NotificationOrderConfirmed  = "ORDER_CONFIRMED"
	NotificationOrderAssigned   = "ORDER_ASSIGNED"
	NotificationOrderInProgress = "ORDER_IN_PROGRESS"
	NotificationOrderCompleted  = "ORDER_COMPLETED"
	NotificationOrderCancelled  = "ORDER_CANCELLED"
	NotificationPayment         = "PAYMENT"
	NotificationSupport         = "SUPPORT"
	NotificationSystem          = "SYSTEM"
)
