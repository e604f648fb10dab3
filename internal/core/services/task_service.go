package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sgoap/sgoap-backend/internal/apperrors"
	"github.com/sgoap/sgoap-backend/internal/core/domain"
	portsrepo "github.com/sgoap/sgoap-backend/internal/core/ports/repositories"
	portssvc "github.com/sgoap/sgoap-backend/internal/core/ports/services"
	"github.com/sgoap/sgoap-backend/internal/dto"
)

type taskService struct {
	BaseService
	taskRepo     portsrepo.TaskRepositoryFacade
	employeeRepo portsrepo.EmployeeRepositoryFacade
}

// NewTaskService creates the task service. The employee repository resolves
// assignees to their departments.
func NewTaskService(taskRepo portsrepo.TaskRepositoryFacade, employeeRepo portsrepo.EmployeeRepositoryFacade) portssvc.TaskSvcFacade {
	return &taskService{taskRepo: taskRepo, employeeRepo: employeeRepo}
}

// canAssign reports whether the actor may create tasks for others.
func canAssign(actor domain.Actor) bool {
	return actor.Role.IsElevated() || actor.Role == domain.RoleManager || actor.Role == domain.RoleDepartmentHead
}

func (s *taskService) CreateTask(ctx context.Context, actor domain.Actor, req dto.CreateTaskRequest) (*domain.Task, error) {
	if req.AssigneeID != actor.EmployeeID && !canAssign(actor) {
		return nil, fmt.Errorf("actor %s may not assign tasks to others: %w", actor.EmployeeID, apperrors.ErrForbidden)
	}

	assignee, err := s.employeeRepo.FindEmployeeByID(ctx, req.AssigneeID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve assignee %s: %w", req.AssigneeID, err)
	}
	if actor.Role == domain.RoleDepartmentHead && assignee.Department != actor.Department {
		return nil, fmt.Errorf("department heads assign within their own department: %w", apperrors.ErrForbidden)
	}

	now := time.Now()
	task := domain.Task{
		TaskID:      uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  assignee.EmployeeID,
		Department:  assignee.Department,
		Status:      domain.TaskTodo,
		DueDate:     req.DueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.EmployeeID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.EmployeeID,
		},
	}
	if err := s.taskRepo.SaveTask(ctx, task); err != nil {
		s.LogError(ctx, err, "failed to save task")
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	s.LogInfo(ctx, "task created", slog.String("task_id", task.TaskID), slog.String("assignee_id", task.AssigneeID))
	return &task, nil
}

func (s *taskService) GetTaskByID(ctx context.Context, taskID string, actor domain.Actor) (*domain.Task, error) {
	task, err := s.taskRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to find task %s: %w", taskID, err)
	}
	if !taskVisibleTo(task, actor) {
		return nil, fmt.Errorf("task %s is not visible to actor %s: %w", taskID, actor.EmployeeID, apperrors.ErrForbidden)
	}
	return task, nil
}

func taskVisibleTo(task *domain.Task, actor domain.Actor) bool {
	if actor.Role.IsElevated() || actor.Role == domain.RoleManager {
		return true
	}
	if task.AssigneeID == actor.EmployeeID || task.CreatedBy == actor.EmployeeID {
		return true
	}
	return actor.Role == domain.RoleDepartmentHead && task.Department == actor.Department
}

func (s *taskService) ListTasks(ctx context.Context, actor domain.Actor, params dto.ListTasksParams) ([]domain.Task, error) {
	repoParams := portsrepo.ListTasksParams{
		AssigneeID: params.AssigneeID,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}
	if params.Status != "" {
		status := domain.TaskStatus(params.Status)
		repoParams.Status = &status
	}

	// Non-supervisory roles only ever see their own tasks; department heads are
	// scoped to their department.
	switch {
	case actor.Role.IsElevated() || actor.Role == domain.RoleManager:
	case actor.Role == domain.RoleDepartmentHead:
		repoParams.Department = actor.Department
	default:
		repoParams.AssigneeID = actor.EmployeeID
	}

	tasks, err := s.taskRepo.ListTasks(ctx, repoParams)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

func (s *taskService) UpdateTask(ctx context.Context, taskID string, actor domain.Actor, req dto.UpdateTaskRequest) (*domain.Task, error) {
	task, err := s.taskRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to find task %s: %w", taskID, err)
	}
	if !taskVisibleTo(task, actor) {
		return nil, fmt.Errorf("task %s is not visible to actor %s: %w", taskID, actor.EmployeeID, apperrors.ErrForbidden)
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.AssigneeID != nil && *req.AssigneeID != task.AssigneeID {
		if !canAssign(actor) {
			return nil, fmt.Errorf("actor %s may not reassign tasks: %w", actor.EmployeeID, apperrors.ErrForbidden)
		}
		assignee, err := s.employeeRepo.FindEmployeeByID(ctx, *req.AssigneeID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve assignee %s: %w", *req.AssigneeID, err)
		}
		task.AssigneeID = assignee.EmployeeID
		task.Department = assignee.Department
	}
	if req.Status != nil {
		task.Status = domain.TaskStatus(*req.Status)
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	task.LastUpdatedAt = time.Now()
	task.LastUpdatedBy = actor.EmployeeID

	if err := s.taskRepo.UpdateTask(ctx, *task); err != nil {
		s.LogError(ctx, err, "failed to update task", slog.String("task_id", taskID))
		return nil, fmt.Errorf("failed to update task %s: %w", taskID, err)
	}
	return task, nil
}
