package dto

// LoginRequest defines the credentials payload for local login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token. MustChangePassword signals that the
// account holds a bootstrap credential and the portal must force a password change
// before anything else.
type LoginResponse struct {
	Token              string           `json:"token"`
	MustChangePassword bool             `json:"mustChangePassword"`
	Employee           EmployeeResponse `json:"employee"`
}

// ChangePasswordRequest defines the payload for an employee changing their own
// password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// CreateResetRequestRequest asks an administrator to regenerate a password for the
// named employee.
type CreateResetRequestRequest struct {
	EmployeeID string `json:"employeeID" binding:"required"`
}

// ResetPasswordRequest defines the payload for an administrator processing a pending
// password reset request.
type ResetPasswordRequest struct {
	RequestID   string `json:"requestId" binding:"required"`
	ProcessedBy string `json:"processedBy" binding:"required"`
}

// ResetPasswordResponse reports the outcome of processing a reset. NewPassword is
// only populated when email delivery failed, as a fallback channel for the admin to
// hand the bootstrap credential over out of band.
type ResetPasswordResponse struct {
	Success     bool   `json:"success"`
	EmailSent   bool   `json:"emailSent"`
	NewPassword string `json:"newPassword,omitempty"`
}

// APIError is the structured error body for auth endpoints.
type APIError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// GoogleLoginRequest carries a Google ID token obtained by the portal frontend.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}
