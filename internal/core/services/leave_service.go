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
)

type leaveService struct {
	BaseService
	leaveRepo portsrepo.LeaveRepositoryFacade
}

// NewLeaveService creates the leave request service.
func NewLeaveService(leaveRepo portsrepo.LeaveRepositoryFacade) portssvc.LeaveSvcFacade {
	return &leaveService{leaveRepo: leaveRepo}
}

func (s *leaveService) CreateLeave(ctx context.Context, actor domain.Actor, req dto.CreateLeaveRequest) (*domain.LeaveRequest, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("leave end date precedes start date: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	lr := domain.LeaveRequest{
		LeaveID:    uuid.NewString(),
		EmployeeID: actor.EmployeeID,
		Department: actor.Department,
		Type:       domain.LeaveType(req.Type),
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Reason:     req.Reason,
		Status:     domain.LeavePending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.EmployeeID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.EmployeeID,
		},
	}
	if err := s.leaveRepo.SaveLeave(ctx, lr); err != nil {
		s.LogError(ctx, err, "failed to save leave request")
		return nil, fmt.Errorf("failed to create leave request: %w", err)
	}
	s.LogInfo(ctx, "leave request created", slog.String("leave_id", lr.LeaveID))
	return &lr, nil
}

func (s *leaveService) GetLeaveByID(ctx context.Context, leaveID string, actor domain.Actor) (*domain.LeaveRequest, error) {
	lr, err := s.leaveRepo.FindLeaveByID(ctx, leaveID)
	if err != nil {
		return nil, fmt.Errorf("failed to find leave request %s: %w", leaveID, err)
	}
	if lr.EmployeeID != actor.EmployeeID && !domain.CanDecideLeave(lr, actor) {
		return nil, fmt.Errorf("leave request %s is not visible to actor %s: %w", leaveID, actor.EmployeeID, apperrors.ErrForbidden)
	}
	return lr, nil
}

func (s *leaveService) ListLeaves(ctx context.Context, actor domain.Actor, params dto.ListLeaveParams) ([]domain.LeaveRequest, error) {
	repoParams := portsrepo.ListLeaveParams{
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	if params.Status != "" {
		status := domain.LeaveStatus(params.Status)
		repoParams.Status = &status
	}

	switch {
	case actor.Role.IsElevated() || actor.Role == domain.RoleManager:
	case actor.Role == domain.RoleDepartmentHead:
		repoParams.Department = actor.Department
	default:
		repoParams.EmployeeID = actor.EmployeeID
	}

	leaves, err := s.leaveRepo.ListLeaves(ctx, repoParams)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	if leaves == nil {
		leaves = []domain.LeaveRequest{}
	}
	return leaves, nil
}

func (s *leaveService) DecideLeave(ctx context.Context, leaveID string, actor domain.Actor, req dto.DecideLeaveRequest) (*domain.LeaveRequest, error) {
	lr, err := s.leaveRepo.FindLeaveByID(ctx, leaveID)
	if err != nil {
		return nil, fmt.Errorf("failed to find leave request %s: %w", leaveID, err)
	}
	if lr.EmployeeID == actor.EmployeeID {
		return nil, fmt.Errorf("employees cannot decide their own leave: %w", apperrors.ErrForbidden)
	}
	if !domain.CanDecideLeave(lr, actor) {
		return nil, fmt.Errorf("actor %s may not decide this leave request: %w", actor.EmployeeID, apperrors.ErrForbidden)
	}
	if lr.Status != domain.LeavePending {
		return nil, fmt.Errorf("leave request %s is already %s: %w", leaveID, lr.Status, apperrors.ErrInvalidState)
	}

	next := domain.LeaveStatus(req.Decision)
	now := time.Now()
	if err := s.leaveRepo.DecideLeave(ctx, leaveID, next, actor.EmployeeID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("leave request %s was decided concurrently: %w", leaveID, err)
		}
		s.LogError(ctx, err, "failed to decide leave request", slog.String("leave_id", leaveID))
		return nil, fmt.Errorf("failed to decide leave request %s: %w", leaveID, err)
	}

	lr.Status = next
	lr.DecidedBy = &actor.EmployeeID
	lr.DecidedAt = &now
	lr.LastUpdatedAt = now
	lr.LastUpdatedBy = actor.EmployeeID
	s.LogInfo(ctx, "leave request decided",
		slog.String("leave_id", leaveID),
		slog.String("decision", string(next)))
	return lr, nil
}

func (s *leaveService) CancelLeave(ctx context.Context, leaveID string, actor domain.Actor) error {
	lr, err := s.leaveRepo.FindLeaveByID(ctx, leaveID)
	if err != nil {
		return fmt.Errorf("failed to find leave request %s: %w", leaveID, err)
	}
	if lr.EmployeeID != actor.EmployeeID {
		return fmt.Errorf("only the requesting employee may cancel: %w", apperrors.ErrForbidden)
	}
	if lr.Status != domain.LeavePending {
		return fmt.Errorf("leave request %s is already %s: %w", leaveID, lr.Status, apperrors.ErrInvalidState)
	}

	// Reuses the decision compare-and-swap so a cancel racing an approval loses
	// cleanly instead of clobbering it.
	if err := s.leaveRepo.DecideLeave(ctx, leaveID, domain.LeaveCancelled, actor.EmployeeID, time.Now()); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return fmt.Errorf("leave request %s was decided concurrently: %w", leaveID, err)
		}
		return fmt.Errorf("failed to cancel leave request %s: %w", leaveID, err)
	}
	return nil
}
