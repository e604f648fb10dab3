package dto

import (
	"time"

	"github.com/sgoap/sgoap-backend/internal/core/domain"
)

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description"`
	AssigneeID  string     `json:"assigneeID" binding:"required"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateTaskRequest defines the mutable task fields.
type UpdateTaskRequest struct {
	Title       *string    `json:"title" binding:"omitempty,max=200"`
	Description *string    `json:"description"`
	AssigneeID  *string    `json:"assigneeID"`
	Status      *string    `json:"status" binding:"omitempty,oneof=todo in_progress done cancelled"`
	DueDate     *time.Time `json:"dueDate"`
}

// TaskResponse is the API shape of a task.
type TaskResponse struct {
	TaskID      string     `json:"taskID"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssigneeID  string     `json:"assigneeID"`
	Department  string     `json:"department"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CreatedBy   string     `json:"createdBy"`
}

// ToTaskResponse maps a domain task to its API shape.
func ToTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		TaskID:      t.TaskID,
		Title:       t.Title,
		Description: t.Description,
		AssigneeID:  t.AssigneeID,
		Department:  t.Department,
		Status:      string(t.Status),
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		CreatedBy:   t.CreatedBy,
	}
}

// ListTasksParams defines query parameters for listing tasks.
type ListTasksParams struct {
	AssigneeID string `form:"assigneeID"`
	Status     string `form:"status" binding:"omitempty,oneof=todo in_progress done cancelled"`
	Limit      int    `form:"limit,default=20"`
	Offset     int    `form:"offset,default=0"`
}

// ListTasksResponse wraps a page of tasks.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}
