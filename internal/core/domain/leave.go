package domain

import "time"

// LeaveType categorises a leave request.
type LeaveType string

const (
	LeaveAnnual    LeaveType = "annual"
	LeaveSick      LeaveType = "sick"
	LeaveUnpaid    LeaveType = "unpaid"
	LeaveParental  LeaveType = "parental"
	LeaveMourning  LeaveType = "mourning"
	LeaveOtherType LeaveType = "other"
)

// LeaveStatus is the approval status of a leave request.
type LeaveStatus string

const (
	LeavePending   LeaveStatus = "pending"
	LeaveApproved  LeaveStatus = "approved"
	LeaveRejected  LeaveStatus = "rejected"
	LeaveCancelled LeaveStatus = "cancelled"
)

// LeaveRequest is an employee's request for time off, decided by their department
// head or a manager.
type LeaveRequest struct {
	LeaveID    string      `json:"leaveID"`
	EmployeeID string      `json:"employeeID"`
	Department string      `json:"department"`
	Type       LeaveType   `json:"type"`
	StartDate  time.Time   `json:"startDate"`
	EndDate    time.Time   `json:"endDate"`
	Reason     string      `json:"reason"`
	Status     LeaveStatus `json:"status"`
	DecidedBy  *string     `json:"decidedBy,omitempty"`
	DecidedAt  *time.Time  `json:"decidedAt,omitempty"`
	AuditFields
}

// CanDecideLeave reports whether the actor may approve or reject a leave request.
// Department heads decide for their own department; managers and elevated roles
// decide company-wide.
func CanDecideLeave(lr *LeaveRequest, actor Actor) bool {
	if actor.Role.IsElevated() || actor.Role == RoleManager {
		return true
	}
	return actor.Role == RoleDepartmentHead && actor.Department == lr.Department
}
