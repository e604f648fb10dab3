package dto

import (
	"time"

	"github.com/sgoap/sgoap-backend/internal/core/domain"
)

// CreateEmployeeRequest defines the payload for onboarding an employee.
type CreateEmployeeRequest struct {
	Name       string    `json:"name" binding:"required,max=200"`
	Email      string    `json:"email" binding:"required,email"`
	Password   string    `json:"password" binding:"omitempty,min=8"`
	Role       string    `json:"role" binding:"required,oneof=employee department_head manager executive ceo admin"`
	Department string    `json:"department" binding:"required,max=100"`
	Position   string    `json:"position" binding:"max=100"`
	HireDate   time.Time `json:"hireDate" binding:"required"`
}

// UpdateEmployeeRequest defines the mutable employee fields. Pointers distinguish
// omitted fields from zero values.
type UpdateEmployeeRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=200"`
	Role       *string `json:"role" binding:"omitempty,oneof=employee department_head manager executive ceo admin"`
	Department *string `json:"department" binding:"omitempty,max=100"`
	Position   *string `json:"position" binding:"omitempty,max=100"`
}

// EmployeeResponse is the API shape of an employee record.
type EmployeeResponse struct {
	EmployeeID         string    `json:"employeeID"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Role               string    `json:"role"`
	Department         string    `json:"department"`
	Position           string    `json:"position"`
	HireDate           time.Time `json:"hireDate"`
	Status             string    `json:"status"`
	MustChangePassword bool      `json:"mustChangePassword"`
	CreatedAt          time.Time `json:"createdAt"`
}

// ToEmployeeResponse maps a domain employee to its API shape.
func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID:         e.EmployeeID,
		Name:               e.Name,
		Email:              e.Email,
		Role:               string(e.Role),
		Department:         e.Department,
		Position:           e.Position,
		HireDate:           e.HireDate,
		Status:             string(e.Status),
		MustChangePassword: e.MustChangePassword,
		CreatedAt:          e.CreatedAt,
	}
}

// CreateEmployeeResponse returns the onboarded employee together with the
// generated bootstrap password. The password is shown exactly once.
type CreateEmployeeResponse struct {
	Employee        EmployeeResponse `json:"employee"`
	InitialPassword string           `json:"initialPassword"`
}

// ListEmployeesParams defines query parameters for listing employees.
type ListEmployeesParams struct {
	Department string `form:"department"`
	Limit      int    `form:"limit,default=20"`
	Offset     int    `form:"offset,default=0"`
}

// ListEmployeesResponse wraps a page of employees.
type ListEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}
