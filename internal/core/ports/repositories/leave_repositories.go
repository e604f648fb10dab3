package repositories

import (
	"context"
	"time"

	"github.com/sgoap/sgoap-backend/internal/core/domain"
)

// ListLeaveParams filters leave request listings. Zero values mean "no filter".
type ListLeaveParams struct {
	EmployeeID string
	Department string
	Status     *domain.LeaveStatus
	Limit      int
	Offset     int
}

// LeaveRepositoryFacade defines persistence operations for leave requests.
type LeaveRepositoryFacade interface {
	SaveLeave(ctx context.Context, lr domain.LeaveRequest) error
	FindLeaveByID(ctx context.Context, leaveID string) (*domain.LeaveRequest, error)
	ListLeaves(ctx context.Context, params ListLeaveParams) ([]domain.LeaveRequest, error)
	// DecideLeave records an approve/reject decision. Guarded by a compare-and-swap
	// on the pending status; returns apperrors.ErrConflict when already decided.
	DecideLeave(ctx context.Context, leaveID string, next domain.LeaveStatus, decidedBy string, at time.Time) error
	UpdateLeave(ctx context.Context, lr domain.LeaveRequest) error
}
