package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sgoap/sgoap-backend/internal/apperrors"
	"github.com/sgoap/sgoap-backend/internal/core/domain"
	portsrepo "github.com/sgoap/sgoap-backend/internal/core/ports/repositories"
	portssvc "github.com/sgoap/sgoap-backend/internal/core/ports/services"
	"github.com/sgoap/sgoap-backend/internal/dto"
	"github.com/sgoap/sgoap-backend/internal/platform/mailer"
	"github.com/sgoap/sgoap-backend/internal/utils"
)

type employeeService struct {
	BaseService
	employeeRepo portsrepo.EmployeeRepositoryFacade
	mailer       mailer.Mailer
}

// NewEmployeeService creates the employee service. The mailer may be nil when SMTP
// is not configured; credential delivery then degrades to in-response hand-off.
func NewEmployeeService(employeeRepo portsrepo.EmployeeRepositoryFacade, m mailer.Mailer) portssvc.EmployeeSvcFacade {
	return &employeeService{employeeRepo: employeeRepo, mailer: m}
}

func (s *employeeService) GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee %s: %w", employeeID, err)
	}
	return employee, nil
}

func (s *employeeService) GetEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee by email: %w", err)
	}
	return employee, nil
}

func (s *employeeService) ListEmployees(ctx context.Context, params dto.ListEmployeesParams) ([]domain.Employee, error) {
	employees, err := s.employeeRepo.FindEmployees(ctx, params.Department, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	if employees == nil {
		employees = []domain.Employee{}
	}
	return employees, nil
}

func (s *employeeService) CreateEmployee(ctx context.Context, actor domain.Actor, req dto.CreateEmployeeRequest) (*domain.Employee, string, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, "", fmt.Errorf("only administrators may onboard employees: %w", apperrors.ErrForbidden)
	}

	existing, err := s.employeeRepo.FindEmployeeByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to check for existing employee: %w", err)
	}
	if existing != nil {
		return nil, "", fmt.Errorf("employee with email %s already exists: %w", req.Email, apperrors.ErrDuplicate)
	}

	// Bootstrap credential: either the caller-supplied password or one derived from
	// the employee's name and hire year. Both force a change on first login.
	password := req.Password
	if password == "" {
		password = utils.GeneratePassword(req.Name, req.HireDate)
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash initial password: %w", err)
	}

	now := time.Now()
	employee := domain.Employee{
		EmployeeID:         uuid.NewString(),
		Name:               req.Name,
		Email:              req.Email,
		Role:               domain.Role(req.Role),
		Department:         req.Department,
		Position:           req.Position,
		HireDate:           req.HireDate,
		Status:             domain.EmployeeActive,
		PasswordHash:       hash,
		MustChangePassword: true,
		AuthProvider:       domain.ProviderLocal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.EmployeeID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.EmployeeID,
		},
	}

	if err := s.employeeRepo.SaveEmployee(ctx, employee); err != nil {
		s.LogError(ctx, err, "failed to save employee")
		return nil, "", fmt.Errorf("failed to create employee: %w", err)
	}

	s.LogInfo(ctx, "employee created",
		slog.String("employee_id", employee.EmployeeID),
		slog.String("department", employee.Department))
	return &employee, password, nil
}

func (s *employeeService) UpdateEmployee(ctx context.Context, employeeID string, actor domain.Actor, req dto.UpdateEmployeeRequest) (*domain.Employee, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("only administrators may update employee records: %w", apperrors.ErrForbidden)
	}

	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find employee %s: %w", employeeID, err)
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Role != nil {
		employee.Role = domain.Role(*req.Role)
	}
	if req.Department != nil {
		employee.Department = *req.Department
	}
	if req.Position != nil {
		employee.Position = *req.Position
	}
	employee.LastUpdatedAt = time.Now()
	employee.LastUpdatedBy = actor.EmployeeID

	if err := s.employeeRepo.UpdateEmployee(ctx, *employee); err != nil {
		s.LogError(ctx, err, "failed to update employee", slog.String("employee_id", employeeID))
		return nil, fmt.Errorf("failed to update employee %s: %w", employeeID, err)
	}
	return employee, nil
}

func (s *employeeService) DeactivateEmployee(ctx context.Context, employeeID string, actor domain.Actor) error {
	if actor.Role != domain.RoleAdmin {
		return fmt.Errorf("only administrators may deactivate employees: %w", apperrors.ErrForbidden)
	}
	if employeeID == actor.EmployeeID {
		return fmt.Errorf("administrators cannot deactivate themselves: %w", apperrors.ErrValidation)
	}

	if err := s.employeeRepo.MarkEmployeeDeleted(ctx, employeeID, time.Now(), actor.EmployeeID); err != nil {
		s.LogError(ctx, err, "failed to deactivate employee", slog.String("employee_id", employeeID))
		return fmt.Errorf("failed to deactivate employee %s: %w", employeeID, err)
	}
	s.LogInfo(ctx, "employee deactivated", slog.String("employee_id", employeeID))
	return nil
}

func (s *employeeService) Authenticate(ctx context.Context, email, password string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same error as a bad password so probes can't enumerate accounts.
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up employee for login: %w", err)
	}
	if employee.Status != domain.EmployeeActive || employee.DeletedAt != nil {
		return nil, apperrors.ErrUnauthorized
	}
	if employee.PasswordHash == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CheckPasswordHash(password, employee.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return employee, nil
}

func (s *employeeService) ChangePassword(ctx context.Context, employeeID string, req dto.ChangePasswordRequest) error {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("failed to find employee %s: %w", employeeID, err)
	}
	if !utils.CheckPasswordHash(req.CurrentPassword, employee.PasswordHash) {
		return fmt.Errorf("current password mismatch: %w", apperrors.ErrUnauthorized)
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	if err := s.employeeRepo.UpdatePassword(ctx, employeeID, hash, false, employeeID, time.Now()); err != nil {
		s.LogError(ctx, err, "failed to store new password", slog.String("employee_id", employeeID))
		return fmt.Errorf("failed to change password: %w", err)
	}
	s.LogInfo(ctx, "password changed", slog.String("employee_id", employeeID))
	return nil
}

func (s *employeeService) FindOrLinkEmployeeByGoogleDetails(ctx context.Context, info *domain.GoogleUserInfo) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByProviderDetails(ctx, domain.ProviderGoogle, info.ID)
	if err == nil {
		return employee, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up google identity: %w", err)
	}

	// First SSO sign-in: link the Google subject to the existing employee record
	// matched by verified email. Unknown identities are refused, not provisioned.
	if !info.VerifiedEmail {
		return nil, fmt.Errorf("google account email is unverified: %w", apperrors.ErrUnauthorized)
	}
	employee, err = s.employeeRepo.FindEmployeeByEmail(ctx, info.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("no employee record for %s: %w", info.Email, apperrors.ErrForbidden)
		}
		return nil, fmt.Errorf("failed to match google identity to employee: %w", err)
	}
	if employee.Status != domain.EmployeeActive || employee.DeletedAt != nil {
		return nil, apperrors.ErrUnauthorized
	}

	employee.AuthProvider = domain.ProviderGoogle
	employee.ProviderUserID = info.ID
	employee.LastUpdatedAt = time.Now()
	employee.LastUpdatedBy = employee.EmployeeID
	if err := s.employeeRepo.UpdateEmployee(ctx, *employee); err != nil {
		s.LogError(ctx, err, "failed to link google identity", slog.String("employee_id", employee.EmployeeID))
		return nil, fmt.Errorf("failed to link google identity: %w", err)
	}
	s.LogInfo(ctx, "google identity linked", slog.String("employee_id", employee.EmployeeID))
	return employee, nil
}

func (s *employeeService) CreateResetRequest(ctx context.Context, req dto.CreateResetRequestRequest) (*domain.PasswordResetRequest, error) {
	if _, err := s.employeeRepo.FindEmployeeByID(ctx, req.EmployeeID); err != nil {
		return nil, fmt.Errorf("failed to find employee %s: %w", req.EmployeeID, err)
	}

	rr := domain.PasswordResetRequest{
		ResetID:     uuid.NewString(),
		EmployeeID:  req.EmployeeID,
		Status:      domain.ResetPending,
		RequestedAt: time.Now(),
	}
	if err := s.employeeRepo.SaveResetRequest(ctx, rr); err != nil {
		s.LogError(ctx, err, "failed to save reset request", slog.String("employee_id", req.EmployeeID))
		return nil, fmt.Errorf("failed to create reset request: %w", err)
	}
	return &rr, nil
}

func (s *employeeService) ProcessPasswordReset(ctx context.Context, actor domain.Actor, req dto.ResetPasswordRequest) (*dto.ResetPasswordResponse, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("only administrators may process password resets: %w", apperrors.ErrForbidden)
	}

	rr, err := s.employeeRepo.FindResetRequestByID(ctx, req.RequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to find reset request %s: %w", req.RequestID, err)
	}
	if rr.Status != domain.ResetPending {
		return nil, fmt.Errorf("reset request %s was already processed: %w", req.RequestID, apperrors.ErrConflict)
	}

	employee, err := s.employeeRepo.FindEmployeeByID(ctx, rr.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find employee %s for reset: %w", rr.EmployeeID, err)
	}

	now := time.Now()
	// Claim the request first. The compare-and-swap on pending guarantees two admins
	// processing concurrently cannot both regenerate the credential.
	if err := s.employeeRepo.MarkResetRequestProcessed(ctx, rr.ResetID, actor.EmployeeID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("reset request %s was already processed: %w", req.RequestID, err)
		}
		s.LogError(ctx, err, "failed to mark reset request processed", slog.String("reset_id", rr.ResetID))
		return nil, fmt.Errorf("failed to process reset request: %w", err)
	}

	newPassword := utils.GeneratePassword(employee.Name, employee.HireDate)
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash regenerated password: %w", err)
	}
	if err := s.employeeRepo.UpdatePassword(ctx, employee.EmployeeID, hash, true, actor.EmployeeID, now); err != nil {
		s.LogError(ctx, err, "failed to store regenerated password", slog.String("employee_id", employee.EmployeeID))
		return nil, fmt.Errorf("failed to store regenerated password: %w", err)
	}

	s.LogInfo(ctx, "password reset processed",
		slog.String("reset_id", rr.ResetID),
		slog.String("employee_id", employee.EmployeeID))

	if s.mailer != nil {
		body := fmt.Sprintf("Hello %s,\n\nYour portal password has been reset. Your temporary password is:\n\n    %s\n\nYou will be required to change it on your next sign-in.\n", employee.Name, newPassword)
		sendErr := s.mailer.Send(ctx, employee.Email, "Your password has been reset", body)
		if sendErr == nil {
			return &dto.ResetPasswordResponse{Success: true, EmailSent: true}, nil
		}
		// The credential is already rotated; delivery failure degrades to an
		// in-response hand-off rather than undoing the reset.
		s.LogWarn(ctx, "credential email failed, returning password in response",
			slog.String("employee_id", employee.EmployeeID),
			slog.String("error", sendErr.Error()))
	}
	return &dto.ResetPasswordResponse{Success: true, EmailSent: false, NewPassword: newPassword}, nil
}
