package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/stitchline/tailorflow-api/internal/domain/entity"
)

// NotificationRepository defines data access for dispatched notifications
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByUserID(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]entity.Notification, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
}
