package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stitchline/tailorflow-api/internal/domain/entity"
	"github.com/stitchline/tailorflow-api/internal/domain/enum"
	"github.com/stitchline/tailorflow-api/internal/domain/repository"
	"github.com/stitchline/tailorflow-api/pkg/apperror"
)

// TaskService handles staff task queries and completion
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// MyTasks returns the tasks assigned to a user
func (s *TaskService) MyTasks(ctx context.Context, userID uuid.UUID, openOnly bool) ([]entity.StaffTask, error) {
	return s.taskRepo.GetByAssignee(ctx, userID, openOnly)
}

// TasksForOrder returns the tasks created for an order
func (s *TaskService) TasksForOrder(ctx context.Context, orderID uuid.UUID) ([]entity.StaffTask, error) {
	return s.taskRepo.GetByOrderID(ctx, orderID)
}

// Complete marks a task as done. Only the assignee may complete their task.
func (s *TaskService) Complete(ctx context.Context, taskID, userID uuid.UUID) (*entity.StaffTask, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperror.NewNotFoundError("Task")
	}
	if task.AssignedTo != userID {
		return nil, apperror.ErrForbidden
	}
	if task.Status == enum.TaskStatusDone {
		return task, nil
	}

	now := time.Now()
	task.Status = enum.TaskStatusDone
	task.CompletedAt = &now
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}
