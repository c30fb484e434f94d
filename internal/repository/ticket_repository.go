package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dispatch-service/internal/model"
)

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// CreateWithMessage persists the ticket together with its opening message.
func (r *TicketRepository) CreateWithMessage(ctx context.Context, ticket *model.SupportTicket, message *model.SupportMessage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ticket).Error; err != nil {
			return err
		}
		message.TicketID = ticket.ID
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.Model(ticket).Update("last_message_at", message.CreatedAt).Error
	})
}

func (r *TicketRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.SupportTicket, error) {
	var ticket model.SupportTicket
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("AssignedTo").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Messages.Author").
		First(&ticket, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

type TicketFilter struct {
	AuthorID *uuid.UUID
	Statuses []model.TicketStatus
	Limit    int
	Offset   int
}

func (r *TicketRepository) List(ctx context.Context, filter TicketFilter) ([]model.SupportTicket, error) {
	query := r.db.WithContext(ctx).Model(&model.SupportTicket{})

	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	} else {
		query = query.Limit(100)
	}

	var tickets []model.SupportTicket
	if err := query.
		Order("created_at DESC").
		Preload("Author").
		Preload("AssignedTo").
		Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

// AppendMessage adds a message and applies the ticket-side effects (bumped
// last_message_at, optional status advance and auto-assignment) atomically.
func (r *TicketRepository) AppendMessage(ctx context.Context, message *model.SupportMessage, ticketFields map[string]interface{}) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		if ticketFields == nil {
			ticketFields = map[string]interface{}{}
		}
		ticketFields["last_message_at"] = time.Now().UTC()
		return tx.Model(&model.SupportTicket{}).
			Where("id = ?", message.TicketID).
			Updates(ticketFields).Error
	})
}

// UpdateStatusIf mirrors the order transition write: the WHERE on the prior
// status keeps concurrent workflow updates from double-applying.
func (r *TicketRepository) UpdateStatusIf(ctx context.Context, ticketID uuid.UUID, from, to model.TicketStatus, fields map[string]interface{}) error {
	if fields == nil {
		fields = map[string]interface{}{}
	}
	fields["status"] = to

	res := r.db.WithContext(ctx).
		Model(&model.SupportTicket{}).
		Where("id = ? AND status = ?", ticketID, from).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}
