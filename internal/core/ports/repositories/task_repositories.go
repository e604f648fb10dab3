package repositories

import (
	"context"

	"github.com/sgoap/sgoap-backend/internal/core/domain"
)

// ListTasksParams filters task listings. Zero values mean "no filter".
type ListTasksParams struct {
	AssigneeID string
	Department string
	Status     *domain.TaskStatus
	Limit      int
	Offset     int
}

// TaskRepositoryFacade defines persistence operations for tasks.
type TaskRepositoryFacade interface {
	SaveTask(ctx context.Context, task domain.Task) error
	FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error)
	ListTasks(ctx context.Context, params ListTasksParams) ([]domain.Task, error)
	UpdateTask(ctx context.Context, task domain.Task) error
	CountOpenTasksByAssignee(ctx context.Context, assigneeID string) (int, error)
}
