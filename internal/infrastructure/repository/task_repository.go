package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stitchline/tailorflow-api/internal/domain/entity"
	"github.com/stitchline/tailorflow-api/internal/domain/enum"
	domainRepo "github.com/stitchline/tailorflow-api/internal/domain/repository"
	"gorm.io/gorm"
)

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) domainRepo.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *entity.StaffTask) error {
	return dbFrom(ctx, r.db).Create(task).Error
}

func (r *taskRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StaffTask, error) {
	var task entity.StaffTask
	err := dbFrom(ctx, r.db).First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &task, err
}

func (r *taskRepository) GetByAssignee(ctx context.Context, userID uuid.UUID, openOnly bool) ([]entity.StaffTask, error) {
	var tasks []entity.StaffTask
	query := dbFrom(ctx, r.db).Where("assigned_to = ?", userID)
	if openOnly {
		query = query.Where("status = ?", enum.TaskStatusOpen)
	}
	err := query.Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.StaffTask, error) {
	var tasks []entity.StaffTask
	err := dbFrom(ctx, r.db).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) Update(ctx context.Context, task *entity.StaffTask) error {
	return dbFrom(ctx, r.db).Save(task).Error
}
