package dto

import (
	"time"

	"github.com/sgoap/sgoap-backend/internal/core/domain"
)

// CreateLeaveRequest defines the payload for requesting time off.
type CreateLeaveRequest struct {
	Type      string    `json:"type" binding:"required,oneof=annual sick unpaid parental mourning other"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
	Reason    string    `json:"reason" binding:"max=1000"`
}

// DecideLeaveRequest defines the payload for approving or rejecting leave.
type DecideLeaveRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
}

// LeaveResponse is the API shape of a leave request.
type LeaveResponse struct {
	LeaveID    string     `json:"leaveID"`
	EmployeeID string     `json:"employeeID"`
	Department string     `json:"department"`
	Type       string     `json:"type"`
	StartDate  time.Time  `json:"startDate"`
	EndDate    time.Time  `json:"endDate"`
	Reason     string     `json:"reason"`
	Status     string     `json:"status"`
	DecidedBy  *string    `json:"decidedBy,omitempty"`
	DecidedAt  *time.Time `json:"decidedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// ToLeaveResponse maps a domain leave request to its API shape.
func ToLeaveResponse(lr *domain.LeaveRequest) LeaveResponse {
	return LeaveResponse{
		LeaveID:    lr.LeaveID,
		EmployeeID: lr.EmployeeID,
		Department: lr.Department,
		Type:       string(lr.Type),
		StartDate:  lr.StartDate,
		EndDate:    lr.EndDate,
		Reason:     lr.Reason,
		Status:     string(lr.Status),
		DecidedBy:  lr.DecidedBy,
		DecidedAt:  lr.DecidedAt,
		CreatedAt:  lr.CreatedAt,
	}
}

// ListLeaveParams defines query parameters for listing leave requests.
type ListLeaveParams struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected cancelled"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// ListLeaveResponse wraps a page of leave requests.
type ListLeaveResponse struct {
	Leaves []LeaveResponse `json:"leaves"`
}
