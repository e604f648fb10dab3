package domain

// GoogleUserInfo is the subset of Google's userinfo payload the portal consumes
// when linking an SSO identity to an employee record.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
