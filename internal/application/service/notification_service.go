package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stitchline/tailorflow-api/internal/domain/entity"
	"github.com/stitchline/tailorflow-api/internal/domain/repository"
)

// NotificationService exposes the in-app display side of dispatched events
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// ListMine returns the notifications for a user
func (s *NotificationService) ListMine(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]entity.Notification, error) {
	return s.notificationRepo.GetByUserID(ctx, userID, unreadOnly)
}

// MarkRead marks a notification as read
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.notificationRepo.MarkRead(ctx, id, userID)
}
