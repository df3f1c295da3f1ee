package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/stitchline/tailorflow-api/internal/domain/entity"
)

// TaskRepository defines data access for staff tasks
type TaskRepository interface {
	Create(ctx context.Context, task *entity.StaffTask) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StaffTask, error)
	GetByAssignee(ctx context.Context, userID uuid.UUID, openOnly bool) ([]entity.StaffTask, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.StaffTask, error)
	Update(ctx context.Context, task *entity.StaffTask) error
}
