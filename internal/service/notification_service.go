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

type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	log              zerolog.Logger
}

func NewNotificationService(notificationRepo *repository.NotificationRepository, log zerolog.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		log:              log,
	}
}

// Notify records a notification for the user. Fire-and-forget: a failed
// insert is logged and never breaks the flow that triggered it.
func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, typeCode, title, message string, relatedOrder *uuid.UUID) {
	notification := &model.Notification{
		UserID:         userID,
		Type:           typeCode,
		Title:          title,
		Message:        message,
		RelatedOrderID: relatedOrder,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.log.Error().Err(err).
			Str("user_id", userID.String()).
			Str("type", typeCode).
			Msg("failed to create notification")
	}
}

func (s *NotificationService) List(ctx context.Context, principal model.Principal, unreadOnly bool, limit int) ([]model.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, principal.UserID, unreadOnly, limit)
}

func (s *NotificationService) MarkRead(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	notification, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if notification.UserID != principal.UserID {
		return ErrPermissionDenied
	}
	return s.notificationRepo.MarkRead(ctx, id)
}
