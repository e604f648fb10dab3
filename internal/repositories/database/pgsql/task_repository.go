package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sgoap/sgoap-backend/internal/apperrors"
	"github.com/sgoap/sgoap-backend/internal/core/domain"
	portsrepo "github.com/sgoap/sgoap-backend/internal/core/ports/repositories"
)

type PgxTaskRepository struct {
	db *pgxpool.Pool
}

func newPgxTaskRepository(db *pgxpool.Pool) portsrepo.TaskRepositoryFacade {
	return &PgxTaskRepository{db: db}
}

var _ portsrepo.TaskRepositoryFacade = (*PgxTaskRepository)(nil)

const taskColumns = `task_id, title, description, assignee_id, department, status, due_date,
	created_at, created_by, last_updated_at, last_updated_by`

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.TaskID,
		&t.Title,
		&t.Description,
		&t.AssigneeID,
		&t.Department,
		&t.Status,
		&t.DueDate,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PgxTaskRepository) SaveTask(ctx context.Context, task domain.Task) error {
	query := `
        INSERT INTO tasks (task_id, title, description, assignee_id, department, status, due_date,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.db.Exec(ctx, query,
		task.TaskID,
		task.Title,
		task.Description,
		task.AssigneeID,
		task.Department,
		task.Status,
		task.DueDate,
		task.CreatedAt,
		task.CreatedBy,
		task.LastUpdatedAt,
		task.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

func (r *PgxTaskRepository) FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE task_id = $1;`
	task, err := scanTask(r.db.QueryRow(ctx, query, taskID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task %s: %w", taskID, err)
	}
	return task, nil
}

func (r *PgxTaskRepository) ListTasks(ctx context.Context, params portsrepo.ListTasksParams) ([]domain.Task, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if params.AssigneeID != "" {
		conds = append(conds, "assignee_id = "+arg(params.AssigneeID))
	}
	if params.Department != "" {
		conds = append(conds, "department = "+arg(params.Department))
	}
	if params.Status != nil {
		conds = append(conds, "status = "+arg(string(*params.Status)))
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY due_date NULLS LAST, created_at DESC LIMIT " + arg(limit) + " OFFSET " + arg(offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", rows.Err())
	}
	return tasks, nil
}

func (r *PgxTaskRepository) UpdateTask(ctx context.Context, task domain.Task) error {
	query := `
        UPDATE tasks
        SET title = $1, description = $2, assignee_id = $3, department = $4, status = $5, due_date = $6,
            last_updated_at = $7, last_updated_by = $8
        WHERE task_id = $9;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		task.Title,
		task.Description,
		task.AssigneeID,
		task.Department,
		task.Status,
		task.DueDate,
		task.LastUpdatedAt,
		task.LastUpdatedBy,
		task.TaskID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update task query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("task not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxTaskRepository) CountOpenTasksByAssignee(ctx context.Context, assigneeID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM tasks WHERE assignee_id = $1 AND status IN ($2, $3)`,
		assigneeID, domain.TaskTodo, domain.TaskInProgress,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count open tasks: %w", err)
	}
	return count, nil
}
