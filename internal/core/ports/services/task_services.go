package services

import (
	"context"

	"github.com/sgoap/sgoap-backend/internal/core/domain"
	"github.com/sgoap/sgoap-backend/internal/dto"
)

// TaskSvcFacade defines the interface for task management services.
type TaskSvcFacade interface {
	// CreateTask creates a task assigned to an employee in the actor's reach.
	CreateTask(ctx context.Context, actor domain.Actor, req dto.CreateTaskRequest) (*domain.Task, error)

	// GetTaskByID retrieves a task by ID.
	GetTaskByID(ctx context.Context, taskID string, actor domain.Actor) (*domain.Task, error)

	// ListTasks retrieves tasks visible to the actor, optionally filtered.
	ListTasks(ctx context.Context, actor domain.Actor, params dto.ListTasksParams) ([]domain.Task, error)

	// UpdateTask updates a task's fields or status.
	UpdateTask(ctx context.Context, taskID string, actor domain.Actor, req dto.UpdateTaskRequest) (*domain.Task, error)
}
