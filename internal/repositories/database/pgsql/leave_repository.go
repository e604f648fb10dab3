package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sgoap/sgoap-backend/internal/apperrors"
	"github.com/sgoap/sgoap-backend/internal/core/domain"
	portsrepo "github.com/sgoap/sgoap-backend/internal/core/ports/repositories"
)

type PgxLeaveRepository struct {
	db *pgxpool.Pool
}

func newPgxLeaveRepository(db *pgxpool.Pool) portsrepo.LeaveRepositoryFacade {
	return &PgxLeaveRepository{db: db}
}

var _ portsrepo.LeaveRepositoryFacade = (*PgxLeaveRepository)(nil)

const leaveColumns = `leave_id, employee_id, department, type, start_date, end_date, reason, status,
	decided_by, decided_at, created_at, created_by, last_updated_at, last_updated_by`

func scanLeave(row pgx.Row) (*domain.LeaveRequest, error) {
	var lr domain.LeaveRequest
	err := row.Scan(
		&lr.LeaveID,
		&lr.EmployeeID,
		&lr.Department,
		&lr.Type,
		&lr.StartDate,
		&lr.EndDate,
		&lr.Reason,
		&lr.Status,
		&lr.DecidedBy,
		&lr.DecidedAt,
		&lr.CreatedAt,
		&lr.CreatedBy,
		&lr.LastUpdatedAt,
		&lr.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

func (r *PgxLeaveRepository) SaveLeave(ctx context.Context, lr domain.LeaveRequest) error {
	query := `
        INSERT INTO leave_requests (leave_id, employee_id, department, type, start_date, end_date, reason, status,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err := r.db.Exec(ctx, query,
		lr.LeaveID,
		lr.EmployeeID,
		lr.Department,
		lr.Type,
		lr.StartDate,
		lr.EndDate,
		lr.Reason,
		lr.Status,
		lr.CreatedAt,
		lr.CreatedBy,
		lr.LastUpdatedAt,
		lr.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save leave request: %w", err)
	}
	return nil
}

func (r *PgxLeaveRepository) FindLeaveByID(ctx context.Context, leaveID string) (*domain.LeaveRequest, error) {
	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE leave_id = $1;`
	lr, err := scanLeave(r.db.QueryRow(ctx, query, leaveID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find leave request %s: %w", leaveID, err)
	}
	return lr, nil
}

func (r *PgxLeaveRepository) ListLeaves(ctx context.Context, params portsrepo.ListLeaveParams) ([]domain.LeaveRequest, error) {
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

	if params.EmployeeID != "" {
		conds = append(conds, "employee_id = "+arg(params.EmployeeID))
	}
	if params.Department != "" {
		conds = append(conds, "department = "+arg(params.Department))
	}
	if params.Status != nil {
		conds = append(conds, "status = "+arg(string(*params.Status)))
	}

	query := `SELECT ` + leaveColumns + ` FROM leave_requests`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC LIMIT " + arg(limit) + " OFFSET " + arg(offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	leaves := []domain.LeaveRequest{}
	for rows.Next() {
		lr, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request row: %w", err)
		}
		leaves = append(leaves, *lr)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating leave request rows: %w", rows.Err())
	}
	return leaves, nil
}

func (r *PgxLeaveRepository) DecideLeave(ctx context.Context, leaveID string, next domain.LeaveStatus, decidedBy string, at time.Time) error {
	// The pending predicate is the compare-and-swap: once decided, a racing
	// decision matches zero rows.
	query := `
        UPDATE leave_requests
        SET status = $1, decided_by = $2, decided_at = $3, last_updated_at = $3, last_updated_by = $2
        WHERE leave_id = $4 AND status = $5;
    `
	cmdTag, err := r.db.Exec(ctx, query, next, decidedBy, at, leaveID, domain.LeavePending)
	if err != nil {
		return fmt.Errorf("failed to decide leave request: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if chkErr := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM leave_requests WHERE leave_id = $1)`, leaveID).Scan(&exists); chkErr == nil && !exists {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("leave request %s is no longer pending: %w", leaveID, apperrors.ErrConflict)
	}
	return nil
}

func (r *PgxLeaveRepository) UpdateLeave(ctx context.Context, lr domain.LeaveRequest) error {
	query := `
        UPDATE leave_requests
        SET type = $1, start_date = $2, end_date = $3, reason = $4,
            last_updated_at = $5, last_updated_by = $6
        WHERE leave_id = $7;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		lr.Type,
		lr.StartDate,
		lr.EndDate,
		lr.Reason,
		lr.LastUpdatedAt,
		lr.LastUpdatedBy,
		lr.LeaveID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update leave query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("leave request not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
