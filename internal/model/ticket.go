package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// ticketTransitions mirrors the order graph structurally, but tickets can be
// reopened: RESOLVED and CLOSED lead back to OPEN or IN_PROGRESS.
var ticketTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusOpen:       {TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed},
	TicketStatusInProgress: {TicketStatusOpen, TicketStatusResolved, TicketStatusClosed},
	TicketStatusResolved:   {TicketStatusOpen, TicketStatusInProgress, TicketStatusClosed},
	TicketStatusClosed:     {TicketStatusOpen, TicketStatusInProgress},
}

func (s TicketStatus) CanTransition(to TicketStatus) bool {
	for _, next := range ticketTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s TicketStatus) Valid() bool {
	_, ok := ticketTransitions[s]
	return ok
}

// IsClosedLike reports whether the status marks the conversation finished
// and therefore carries a closed_at timestamp.
func (s TicketStatus) IsClosedLike() bool {
	return s == TicketStatusResolved || s == TicketStatusClosed
}

type SupportTicket struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID       uuid.UUID     `gorm:"type:uuid;not null;index" json:"author_id"`
	Subject        string        `gorm:"type:varchar(255);not null" json:"subject"`
	Description    string        `gorm:"type:text;not null" json:"description"`
	Status         TicketStatus  `gorm:"type:varchar(15);not null;default:'OPEN'" json:"status"`
	Priority       OrderPriority `gorm:"type:varchar(10);not null;default:'NORMAL'" json:"priority"`
	RelatedOrderID *uuid.UUID    `gorm:"type:uuid" json:"related_order_id"`
	AssignedToID   *uuid.UUID    `gorm:"type:uuid" json:"assigned_to_id"`
	ClosedAt       *time.Time    `json:"closed_at"`
	LastMessageAt  *time.Time    `json:"last_message_at"`
	CreatedAt      time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	Author     *User            `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	AssignedTo *User            `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
	Messages   []SupportMessage `gorm:"foreignKey:TicketID" json:"messages,omitempty"`
}

func (SupportTicket) TableName() string {
	return "support_tickets"
}

func (t *SupportTicket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type SupportMessage struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TicketID   uuid.UUID `gorm:"type:uuid;not null;index" json:"ticket_id"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null" json:"author_id"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	IsInternal bool      `gorm:"not null;default:false" json:"is_internal"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (SupportMessage) TableName() string {
	return "support_messages"
}

func (m *SupportMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
