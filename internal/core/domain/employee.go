package domain

import "time"

// Role is the application-wide role assigned to an employee.
type Role string

const (
	RoleEmployee       Role = "employee"
	RoleDepartmentHead Role = "department_head"
	RoleManager        Role = "manager"
	RoleExecutive      Role = "executive"
	RoleCEO            Role = "ceo"
	RoleAdmin          Role = "admin"
)

// IsElevated reports whether the role grants company-wide visibility.
func (r Role) IsElevated() bool {
	return r == RoleAdmin || r == RoleCEO || r == RoleExecutive
}

// Department names used by the approval permission table. Departments are free-form
// strings on employee records; these three participate in review stages.
const (
	DeptFinance     = "Finance & Accounting"
	DeptProcurement = "Procurement & Supply-Chain"
	DeptLegal       = "Legal & Compliance"
)

// EmployeeStatus is the lifecycle status of an employee record.
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
)

// Employee represents a staff member of the organisation.
type Employee struct {
	EmployeeID         string         `json:"employeeID"`
	Name               string         `json:"name"`
	Email              string         `json:"email"`
	Role               Role           `json:"role"`
	Department         string         `json:"department"`
	Position           string         `json:"position"`
	HireDate           time.Time      `json:"hireDate"`
	Status             EmployeeStatus `json:"status"`
	PasswordHash       string         `json:"-"`
	MustChangePassword bool           `json:"mustChangePassword"`
	AuthProvider       string         `json:"-"` // "local" or "google"
	ProviderUserID     string         `json:"-"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// Actor is the already-authenticated identity acting on a request. Workflow and
// visibility decisions take the actor explicitly rather than reading ambient state.
type Actor struct {
	EmployeeID string
	Role       Role
	Department string
}

// ActorFor builds the acting identity from an employee record.
func ActorFor(e *Employee) Actor {
	return Actor{EmployeeID: e.EmployeeID, Role: e.Role, Department: e.Department}
}
