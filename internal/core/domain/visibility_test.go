package domain_test

import (
	"testing"

	"github.com/sgoap/sgoap-backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestCanSeeFullDetails(t *testing.T) {
	req := &domain.PurchaseRequest{
		RequestID:           "pr-1",
		RequestorID:         "emp-req",
		RequestorDepartment: "Engineering",
		Status:              domain.StatusFinanceReview,
	}

	tests := []struct {
		name   string
		req    *domain.PurchaseRequest
		viewer domain.Actor
		want   bool
	}{
		{
			name:   "requestor always sees own request",
			req:    req,
			viewer: domain.Actor{EmployeeID: "emp-req", Role: domain.RoleEmployee, Department: "Engineering"},
			want:   true,
		},
		{
			name:   "same department sees full details",
			req:    req,
			viewer: domain.Actor{EmployeeID: "emp-2", Role: domain.RoleEmployee, Department: "Engineering"},
			want:   true,
		},
		{
			name:   "unrelated department is redacted",
			req:    req,
			viewer: domain.Actor{EmployeeID: "emp-3", Role: domain.RoleEmployee, Department: "Marketing"},
			want:   false,
		},
		{
			name:   "finance sees request at finance_review",
			req:    req,
			viewer: domain.Actor{EmployeeID: "emp-4", Role: domain.RoleEmployee, Department: domain.DeptFinance},
			want:   true,
		},
		{
			name: "finance sees submitted requests",
			req: &domain.PurchaseRequest{
				RequestorID:         "emp-req",
				RequestorDepartment: "Engineering",
				Status:              domain.StatusSubmitted,
			},
			viewer: domain.Actor{EmployeeID: "emp-4", Role: domain.RoleEmployee, Department: domain.DeptFinance},
			want:   true,
		},
		{
			name: "finance does not see request parked at legal_review",
			req: &domain.PurchaseRequest{
				RequestorID:         "emp-req",
				RequestorDepartment: "Engineering",
				Status:              domain.StatusLegalReview,
			},
			viewer: domain.Actor{EmployeeID: "emp-4", Role: domain.RoleEmployee, Department: domain.DeptFinance},
			want:   false,
		},
		{
			name: "procurement sees only procurement_review",
			req: &domain.PurchaseRequest{
				RequestorID:         "emp-req",
				RequestorDepartment: "Engineering",
				Status:              domain.StatusProcurementReview,
			},
			viewer: domain.Actor{EmployeeID: "emp-5", Role: domain.RoleEmployee, Department: domain.DeptProcurement},
			want:   true,
		},
		{
			name: "legal sees only legal_review",
			req: &domain.PurchaseRequest{
				RequestorID:         "emp-req",
				RequestorDepartment: "Engineering",
				Status:              domain.StatusLegalReview,
			},
			viewer: domain.Actor{EmployeeID: "emp-6", Role: domain.RoleEmployee, Department: domain.DeptLegal},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CanSeeFullDetails(tt.req, tt.viewer))
		})
	}
}

// Elevation is monotonic: admin, ceo and executive see every request regardless of
// department or stage.
func TestCanSeeFullDetails_ElevatedRoles(t *testing.T) {
	statuses := []domain.RequestStatus{
		domain.StatusDraft,
		domain.StatusSubmitted,
		domain.StatusFinanceReview,
		domain.StatusProcurementReview,
		domain.StatusLegalReview,
		domain.StatusAuditReview,
		domain.StatusExecutiveApproval,
		domain.StatusApproved,
		domain.StatusRejected,
		domain.StatusCancelled,
	}
	roles := []domain.Role{domain.RoleAdmin, domain.RoleCEO, domain.RoleExecutive}

	for _, role := range roles {
		for _, status := range statuses {
			req := &domain.PurchaseRequest{
				RequestorID:         "someone-else",
				RequestorDepartment: "Engineering",
				Status:              status,
			}
			viewer := domain.Actor{EmployeeID: "viewer", Role: role, Department: "Unrelated"}
			assert.True(t, domain.CanSeeFullDetails(req, viewer), "role %s should see status %s", role, status)
		}
	}
}
