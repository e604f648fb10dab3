package services

import (
	"context"

	"github.com/sgoap/sgoap-backend/internal/core/domain"
	"github.com/sgoap/sgoap-backend/internal/dto"
)

// EmployeeReaderSvc defines read operations for employee data
type EmployeeReaderSvc interface {
	// GetEmployeeByID retrieves an employee by ID.
	GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// GetEmployeeByEmail retrieves an employee by email.
	GetEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error)

	// ListEmployees retrieves a paginated list of employees, optionally filtered
	// by department.
	ListEmployees(ctx context.Context, params dto.ListEmployeesParams) ([]domain.Employee, error)
}

// EmployeeWriterSvc defines write operations for employee data
type EmployeeWriterSvc interface {
	// CreateEmployee creates a new employee record and derives an initial password
	// from the employee's name and hire date. The clear-text password is returned
	// once, alongside the stored record, so it can be handed to the employee.
	CreateEmployee(ctx context.Context, actor domain.Actor, req dto.CreateEmployeeRequest) (*domain.Employee, string, error)

	// UpdateEmployee updates an existing employee.
	UpdateEmployee(ctx context.Context, employeeID string, actor domain.Actor, req dto.UpdateEmployeeRequest) (*domain.Employee, error)
}

// EmployeeLifecycleSvc defines operations for managing employee lifecycle
type EmployeeLifecycleSvc interface {
	// DeactivateEmployee marks an employee as deleted (soft delete).
	DeactivateEmployee(ctx context.Context, employeeID string, actor domain.Actor) error
}

// EmployeeAuthSvc defines operations for employee authentication and credentials
type EmployeeAuthSvc interface {
	// Authenticate checks an email/password pair and returns the employee on success.
	Authenticate(ctx context.Context, email, password string) (*domain.Employee, error)

	// ChangePassword verifies the current password and stores a new hash, clearing
	// the must-change flag.
	ChangePassword(ctx context.Context, employeeID string, req dto.ChangePasswordRequest) error

	// FindOrLinkEmployeeByGoogleDetails resolves a verified Google identity to an
	// existing employee record, linking the provider ID on first sign-in. Identities
	// with no matching employee record are refused; SSO does not self-provision.
	FindOrLinkEmployeeByGoogleDetails(ctx context.Context, info *domain.GoogleUserInfo) (*domain.Employee, error)

	// CreateResetRequest opens a pending password reset request for an employee.
	CreateResetRequest(ctx context.Context, req dto.CreateResetRequestRequest) (*domain.PasswordResetRequest, error)

	// ProcessPasswordReset regenerates the employee's credentials for a pending
	// reset request and attempts email delivery of the new password. A delivery
	// failure is not an error: the response reports emailSent=false and carries the
	// password for manual hand-off.
	ProcessPasswordReset(ctx context.Context, actor domain.Actor, req dto.ResetPasswordRequest) (*dto.ResetPasswordResponse, error)
}

// EmployeeSvcFacade combines all employee-related service interfaces
type EmployeeSvcFacade interface {
	EmployeeReaderSvc
	EmployeeWriterSvc
	EmployeeLifecycleSvc
	EmployeeAuthSvc
}
