package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"dispatch-service/internal/model"
	"dispatch-service/internal/repository"
)

type TicketService struct {
	ticketRepo *repository.TicketRepository
	orderRepo  *repository.OrderRepository
	notifier   *NotificationService
	log        zerolog.Logger
}

func NewTicketService(
	ticketRepo *repository.TicketRepository,
	orderRepo *repository.OrderRepository,
	notifier *NotificationService,
	log zerolog.Logger,
) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
		orderRepo:  orderRepo,
		notifier:   notifier,
		log:        log,
	}
}

type CreateTicketInput struct {
	Subject        string
	Description    string
	Priority       model.OrderPriority
	RelatedOrderID *uuid.UUID
}

// Create opens a ticket and seeds the conversation with the description as
// the first message.
func (s *TicketService) Create(ctx context.Context, principal model.Principal, input CreateTicketInput) (*model.SupportTicket, error) {
	if input.Subject == "" || input.Description == "" {
		return nil, ErrInvalidInput
	}

	priority := input.Priority
	if priority == "" {
		priority = model.OrderPriorityNormal
	}

	if input.RelatedOrderID != nil {
		order, err := s.orderRepo.GetByID(ctx, *input.RelatedOrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if principal.IsClient() && order.ClientID != principal.UserID {
			return nil, ErrPermissionDenied
		}
	}

	ticket := &model.SupportTicket{
		AuthorID:       principal.UserID,
		Subject:        input.Subject,
		Description:    input.Description,
		Status:         model.TicketStatusOpen,
		Priority:       priority,
		RelatedOrderID: input.RelatedOrderID,
	}
	message := &model.SupportMessage{
		AuthorID: principal.UserID,
		Body:     input.Description,
	}

	if err := s.ticketRepo.CreateWithMessage(ctx, ticket, message); err != nil {
		return nil, err
	}
	return s.ticketRepo.GetByID(ctx, ticket.ID)
}

func (s *TicketService) Get(ctx context.Context, principal model.Principal, ticketID uuid.UUID) (*model.SupportTicket, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !s.canAccess(principal, ticket) {
		return nil, ErrPermissionDenied
	}
	if !principal.IsOperator() {
		ticket.Messages = visibleMessages(ticket.Messages)
	}
	return ticket, nil
}

func (s *TicketService) List(ctx context.Context, principal model.Principal, statuses []model.TicketStatus, limit, offset int) ([]model.SupportTicket, error) {
	filter := repository.TicketFilter{
		Statuses: statuses,
		Limit:    limit,
		Offset:   offset,
	}
	if !principal.IsOperator() {
		filter.AuthorID = &principal.UserID
	}
	return s.ticketRepo.List(ctx, filter)
}

// PostMessage appends to the conversation. An operator's first reply to an
// OPEN ticket advances it to IN_PROGRESS and claims it when unassigned.
func (s *TicketService) PostMessage(ctx context.Context, principal model.Principal, ticketID uuid.UUID, body string, isInternal bool) (*model.SupportMessage, error) {
	if body == "" {
		return nil, ErrInvalidInput
	}

	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !s.canAccess(principal, ticket) {
		return nil, ErrPermissionDenied
	}
	if isInternal && !principal.IsOperator() {
		return nil, ErrPermissionDenied
	}

	message := &model.SupportMessage{
		TicketID:   ticket.ID,
		AuthorID:   principal.UserID,
		Body:       body,
		IsInternal: isInternal,
	}

	fields := map[string]interface{}{}
	if ticket.Status == model.TicketStatusOpen && principal.UserID != ticket.AuthorID {
		fields["status"] = model.TicketStatusInProgress
		if ticket.AssignedToID == nil && principal.IsOperator() {
			fields["assigned_to_id"] = principal.UserID
		}
	}

	if err := s.ticketRepo.AppendMessage(ctx, message, fields); err != nil {
		return nil, err
	}

	if !isInternal && principal.UserID != ticket.AuthorID {
		s.notifier.Notify(ctx, ticket.AuthorID, model.NotificationSupport,
			"Support reply",
			"You have a new reply on ticket: "+ticket.Subject,
			ticket.RelatedOrderID)
	}

	return message, nil
}

// UpdateStatus moves the ticket through its workflow. Entering RESOLVED or
// CLOSED stamps closed_at; reopening clears it.
func (s *TicketService) UpdateStatus(ctx context.Context, principal model.Principal, ticketID uuid.UUID, newStatus model.TicketStatus) (*model.SupportTicket, error) {
	if !principal.IsOperator() {
		return nil, ErrPermissionDenied
	}

	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !newStatus.Valid() || !ticket.Status.CanTransition(newStatus) {
		return nil, ErrInvalidStatus
	}

	fields := map[string]interface{}{}
	if newStatus.IsClosedLike() {
		fields["closed_at"] = time.Now().UTC()
	} else {
		fields["closed_at"] = nil
	}

	if err := s.ticketRepo.UpdateStatusIf(ctx, ticket.ID, ticket.Status, newStatus, fields); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, ErrConflict
		}
		return nil, err
	}

	if newStatus.IsClosedLike() {
		s.notifier.Notify(ctx, ticket.AuthorID, model.NotificationSupport,
			"Ticket "+string(newStatus),
			"Your support ticket has been updated: "+ticket.Subject,
			ticket.RelatedOrderID)
	}

	return s.ticketRepo.GetByID(ctx, ticket.ID)
}

func (s *TicketService) getTicket(ctx context.Context, ticketID uuid.UUID) (*model.SupportTicket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) canAccess(principal model.Principal, ticket *model.SupportTicket) bool {
	return principal.IsOperator() || ticket.AuthorID == principal.UserID
}

func visibleMessages(messages []model.SupportMessage) []model.SupportMessage {
	visible := make([]model.SupportMessage, 0, len(messages))
	for _, m := range messages {
		if !m.IsInternal {
			visible = append(visible, m)
		}
	}
	return visible
}
