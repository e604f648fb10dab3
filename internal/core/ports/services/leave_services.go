package services

import (
	"context"

	"github.com/sgoap/sgoap-backend/internal/core/domain"
	"github.com/sgoap/sgoap-backend/internal/dto"
)

// LeaveSvcFacade defines the interface for leave request services.
type LeaveSvcFacade interface {
	// CreateLeave opens a pending leave request for the actor.
	CreateLeave(ctx context.Context, actor domain.Actor, req dto.CreateLeaveRequest) (*domain.LeaveRequest, error)

	// GetLeaveByID retrieves a leave request visible to the actor.
	GetLeaveByID(ctx context.Context, leaveID string, actor domain.Actor) (*domain.LeaveRequest, error)

	// ListLeaves retrieves leave requests visible to the actor.
	ListLeaves(ctx context.Context, actor domain.Actor, params dto.ListLeaveParams) ([]domain.LeaveRequest, error)

	// DecideLeave approves or rejects a pending request. Department heads decide for
	// their own department, managers and elevated roles company-wide.
	DecideLeave(ctx context.Context, leaveID string, actor domain.Actor, req dto.DecideLeaveRequest) (*domain.LeaveRequest, error)

	// CancelLeave withdraws the actor's own pending request.
	CancelLeave(ctx context.Context, leaveID string, actor domain.Actor) error
}
