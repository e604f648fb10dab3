package repositories

import (
	"context"
	"time"

	"github.com/sgoap/sgoap-backend/internal/core/domain"
)

// EmployeeRepositoryFacade defines persistence operations for employee records.
type EmployeeRepositoryFacade interface {
	SaveEmployee(ctx context.Context, employee domain.Employee) error
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)
	FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error)
	FindEmployeeByProviderDetails(ctx context.Context, authProvider string, providerUserID string) (*domain.Employee, error)
	FindEmployees(ctx context.Context, department string, limit int, offset int) ([]domain.Employee, error)
	UpdateEmployee(ctx context.Context, employee domain.Employee) error
	// UpdatePassword replaces the stored hash and sets the must-change flag.
	UpdatePassword(ctx context.Context, employeeID string, passwordHash string, mustChange bool, updatedBy string, at time.Time) error
	MarkEmployeeDeleted(ctx context.Context, employeeID string, deletedAt time.Time, deletedBy string) error

	SaveResetRequest(ctx context.Context, rr domain.PasswordResetRequest) error
	FindResetRequestByID(ctx context.Context, resetID string) (*domain.PasswordResetRequest, error)
	// MarkResetRequestProcessed flips a pending reset request to processed. Guarded
	// by a compare-and-swap on the pending status; returns apperrors.ErrConflict when
	// the request was already processed.
	MarkResetRequestProcessed(ctx context.Context, resetID string, processedBy string, at time.Time) error
}
