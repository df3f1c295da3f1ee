package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/stitchline/tailorflow-api/internal/domain/entity"
	"github.com/stitchline/tailorflow-api/internal/domain/repository"
	"github.com/stitchline/tailorflow-api/pkg/notify"
	"go.uber.org/zap"
)

// Dispatcher persists lifecycle events as in-app notifications. It is called
// only after the emitting transaction has committed, and it swallows its own
// failures: a lost notification must never fail a ledger operation.
type Dispatcher struct {
	repo repository.NotificationRepository
	log  *zap.Logger
}

// NewDispatcher creates a DB-backed notification dispatcher
func NewDispatcher(repo repository.NotificationRepository, log *zap.Logger) *Dispatcher {
	return &Dispatcher{repo: repo, log: log}
}

// Enqueue stores the event for in-app display. Fire-and-forget.
func (d *Dispatcher) Enqueue(ctx context.Context, event notify.Event) {
	if event.TargetUserID == uuid.Nil {
		return
	}

	n := &entity.Notification{
		UserID:    event.TargetUserID,
		EventType: string(event.Type),
		Message:   event.Message,
	}
	if event.RelatedEntityID != uuid.Nil {
		related := event.RelatedEntityID
		n.RelatedEntityID = &related
	}

	if err := d.repo.Create(ctx, n); err != nil {
		d.log.Error("failed to persist notification",
			zap.String("event_type", string(event.Type)),
			zap.String("target_user_id", event.TargetUserID.String()),
			zap.Error(err),
		)
	}
}
