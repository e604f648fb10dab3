package domain

import "time"

// ResetRequestStatus is the lifecycle status of a password reset request.
type ResetRequestStatus string

const (
	ResetPending   ResetRequestStatus = "pending"
	ResetProcessed ResetRequestStatus = "processed"
)

// PasswordResetRequest is an employee's request to have their password regenerated
// by an administrator. Processing one synthesises a bootstrap credential, emails it
// to the employee, and flags the account to force a change on next login.
type PasswordResetRequest struct {
	ResetID     string             `json:"resetID"`
	EmployeeID  string             `json:"employeeID"`
	Status      ResetRequestStatus `json:"status"`
	RequestedAt time.Time          `json:"requestedAt"`
	ProcessedBy *string            `json:"processedBy,omitempty"`
	ProcessedAt *time.Time         `json:"processedAt,omitempty"`
}
