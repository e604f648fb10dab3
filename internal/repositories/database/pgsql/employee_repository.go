package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sgoap/sgoap-backend/internal/apperrors"
	"github.com/sgoap/sgoap-backend/internal/core/domain"
	portsrepo "github.com/sgoap/sgoap-backend/internal/core/ports/repositories"
)

type PgxEmployeeRepository struct {
	db *pgxpool.Pool
}

func newPgxEmployeeRepository(db *pgxpool.Pool) portsrepo.EmployeeRepositoryFacade {
	return &PgxEmployeeRepository{db: db}
}

var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

const employeeColumns = `employee_id, name, email, role, department, position, hire_date, status,
	password_hash, must_change_password, auth_provider, provider_user_id,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var e domain.Employee
	err := row.Scan(
		&e.EmployeeID,
		&e.Name,
		&e.Email,
		&e.Role,
		&e.Department,
		&e.Position,
		&e.HireDate,
		&e.Status,
		&e.PasswordHash,
		&e.MustChangePassword,
		&e.AuthProvider,
		&e.ProviderUserID,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
		&e.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PgxEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	query := `
        INSERT INTO employees (employee_id, name, email, role, department, position, hire_date, status,
            password_hash, must_change_password, auth_provider, provider_user_id,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
    `
	_, err := r.db.Exec(ctx, query,
		employee.EmployeeID,
		employee.Name,
		employee.Email,
		employee.Role,
		employee.Department,
		employee.Position,
		employee.HireDate,
		employee.Status,
		employee.PasswordHash,
		employee.MustChangePassword,
		employee.AuthProvider,
		employee.ProviderUserID,
		employee.CreatedAt,
		employee.CreatedBy,
		employee.LastUpdatedAt,
		employee.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}
	return nil
}

func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1 AND deleted_at IS NULL;`
	employee, err := scanEmployee(r.db.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find employee by ID %s: %w", employeeID, err)
	}
	return employee, nil
}

func (r *PgxEmployeeRepository) FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE lower(email) = lower($1) AND deleted_at IS NULL;`
	employee, err := scanEmployee(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find employee by email: %w", err)
	}
	return employee, nil
}

func (r *PgxEmployeeRepository) FindEmployeeByProviderDetails(ctx context.Context, authProvider string, providerUserID string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees
		WHERE auth_provider = $1 AND provider_user_id = $2 AND deleted_at IS NULL;`
	employee, err := scanEmployee(r.db.QueryRow(ctx, query, authProvider, providerUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find employee by provider details: %w", err)
	}
	return employee, nil
}

func (r *PgxEmployeeRepository) FindEmployees(ctx context.Context, department string, limit int, offset int) ([]domain.Employee, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + employeeColumns + ` FROM employees
		WHERE deleted_at IS NULL AND ($1 = '' OR department = $1)
		ORDER BY name
		LIMIT $2 OFFSET $3;`
	rows, err := r.db.Query(ctx, query, department, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := []domain.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		employees = append(employees, *e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating employee rows: %w", rows.Err())
	}
	return employees, nil
}

func (r *PgxEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	query := `
        UPDATE employees
        SET name = $1, role = $2, department = $3, position = $4, status = $5,
            auth_provider = $6, provider_user_id = $7,
            last_updated_at = $8, last_updated_by = $9
        WHERE employee_id = $10 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		employee.Name,
		employee.Role,
		employee.Department,
		employee.Position,
		employee.Status,
		employee.AuthProvider,
		employee.ProviderUserID,
		employee.LastUpdatedAt,
		employee.LastUpdatedBy,
		employee.EmployeeID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update employee query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("employee not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxEmployeeRepository) UpdatePassword(ctx context.Context, employeeID string, passwordHash string, mustChange bool, updatedBy string, at time.Time) error {
	query := `
        UPDATE employees
        SET password_hash = $1, must_change_password = $2, last_updated_at = $3, last_updated_by = $4
        WHERE employee_id = $5 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query, passwordHash, mustChange, at, updatedBy, employeeID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("employee not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxEmployeeRepository) MarkEmployeeDeleted(ctx context.Context, employeeID string, deletedAt time.Time, deletedBy string) error {
	query := `
        UPDATE employees
        SET deleted_at = $1, status = $2, last_updated_at = $1, last_updated_by = $3
        WHERE employee_id = $4 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query, deletedAt, domain.EmployeeInactive, deletedBy, employeeID)
	if err != nil {
		return fmt.Errorf("failed to mark employee as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("employee not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxEmployeeRepository) SaveResetRequest(ctx context.Context, rr domain.PasswordResetRequest) error {
	query := `
        INSERT INTO password_reset_requests (reset_id, employee_id, status, requested_at)
        VALUES ($1, $2, $3, $4);
    `
	_, err := r.db.Exec(ctx, query, rr.ResetID, rr.EmployeeID, rr.Status, rr.RequestedAt)
	if err != nil {
		return fmt.Errorf("failed to save reset request: %w", err)
	}
	return nil
}

func (r *PgxEmployeeRepository) FindResetRequestByID(ctx context.Context, resetID string) (*domain.PasswordResetRequest, error) {
	query := `
		SELECT reset_id, employee_id, status, requested_at, processed_by, processed_at
		FROM password_reset_requests
		WHERE reset_id = $1;
	`
	var rr domain.PasswordResetRequest
	err := r.db.QueryRow(ctx, query, resetID).Scan(
		&rr.ResetID,
		&rr.EmployeeID,
		&rr.Status,
		&rr.RequestedAt,
		&rr.ProcessedBy,
		&rr.ProcessedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reset request %s: %w", resetID, err)
	}
	return &rr, nil
}

func (r *PgxEmployeeRepository) MarkResetRequestProcessed(ctx context.Context, resetID string, processedBy string, at time.Time) error {
	// The status predicate is the compare-and-swap: a second processor matches zero
	// rows and learns the request was already claimed.
	query := `
        UPDATE password_reset_requests
        SET status = $1, processed_by = $2, processed_at = $3
        WHERE reset_id = $4 AND status = $5;
    `
	cmdTag, err := r.db.Exec(ctx, query, domain.ResetProcessed, processedBy, at, resetID, domain.ResetPending)
	if err != nil {
		return fmt.Errorf("failed to mark reset request processed: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if chkErr := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM password_reset_requests WHERE reset_id = $1)`, resetID).Scan(&exists); chkErr == nil && !exists {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("reset request %s is not pending: %w", resetID, apperrors.ErrConflict)
	}
	return nil
}
