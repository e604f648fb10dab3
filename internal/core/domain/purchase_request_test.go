package domain_test

import (
	"testing"

	"github.com/sgoap/sgoap-backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestNextStage_FollowsReviewSequence(t *testing.T) {
	tests := []struct {
		name  string
		stage domain.RequestStatus
		want  domain.RequestStatus
		ok    bool
	}{
		{"submitted advances to finance review", domain.StatusSubmitted, domain.StatusFinanceReview, true},
		{"finance review advances to procurement review", domain.StatusFinanceReview, domain.StatusProcurementReview, true},
		{"procurement review advances to legal review", domain.StatusProcurementReview, domain.StatusLegalReview, true},
		{"legal review advances to audit review", domain.StatusLegalReview, domain.StatusAuditReview, true},
		{"audit review advances to executive approval", domain.StatusAuditReview, domain.StatusExecutiveApproval, true},
		{"executive approval advances to approved", domain.StatusExecutiveApproval, domain.StatusApproved, true},
		{"draft has no next review stage", domain.StatusDraft, "", false},
		{"approved has no next review stage", domain.StatusApproved, "", false},
		{"rejected has no next review stage", domain.StatusRejected, "", false},
		{"cancelled has no next review stage", domain.StatusCancelled, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := domain.NextStage(tt.stage)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRequestStatus_IsTerminal(t *testing.T) {
	terminal := []domain.RequestStatus{domain.StatusApproved, domain.StatusRejected, domain.StatusCancelled}
	for _, s := range terminal {
		assert.True(t, s.IsTerminal(), "%s should be terminal", s)
	}

	nonTerminal := []domain.RequestStatus{
		domain.StatusDraft,
		domain.StatusSubmitted,
		domain.StatusFinanceReview,
		domain.StatusProcurementReview,
		domain.StatusLegalReview,
		domain.StatusAuditReview,
		domain.StatusExecutiveApproval,
	}
	for _, s := range nonTerminal {
		assert.False(t, s.IsTerminal(), "%s should not be terminal", s)
	}
}

func TestCanReviewStage_PermissionTable(t *testing.T) {
	finance := domain.Actor{EmployeeID: "e1", Role: domain.RoleEmployee, Department: domain.DeptFinance}
	procurement := domain.Actor{EmployeeID: "e2", Role: domain.RoleEmployee, Department: domain.DeptProcurement}
	legal := domain.Actor{EmployeeID: "e3", Role: domain.RoleDepartmentHead, Department: domain.DeptLegal}
	engineer := domain.Actor{EmployeeID: "e4", Role: domain.RoleEmployee, Department: "Engineering"}
	executive := domain.Actor{EmployeeID: "e5", Role: domain.RoleExecutive, Department: "Engineering"}
	ceo := domain.Actor{EmployeeID: "e6", Role: domain.RoleCEO, Department: "Executive Office"}
	admin := domain.Actor{EmployeeID: "e7", Role: domain.RoleAdmin, Department: "IT"}

	tests := []struct {
		name  string
		stage domain.RequestStatus
		actor domain.Actor
		want  bool
	}{
		{"finance reviews finance_review", domain.StatusFinanceReview, finance, true},
		{"finance triages submitted", domain.StatusSubmitted, finance, true},
		{"finance reviews audit_review", domain.StatusAuditReview, finance, true},
		{"procurement reviews procurement_review", domain.StatusProcurementReview, procurement, true},
		{"legal reviews legal_review", domain.StatusLegalReview, legal, true},
		{"legal cannot review finance_review", domain.StatusFinanceReview, legal, false},
		{"procurement cannot review legal_review", domain.StatusLegalReview, procurement, false},
		{"engineering cannot review any stage", domain.StatusFinanceReview, engineer, false},
		{"executive approves executive_approval", domain.StatusExecutiveApproval, executive, true},
		{"ceo approves executive_approval", domain.StatusExecutiveApproval, ceo, true},
		{"admin approves executive_approval", domain.StatusExecutiveApproval, admin, true},
		{"finance cannot act at executive_approval", domain.StatusExecutiveApproval, finance, false},
		{"executive role does not bypass department stages", domain.StatusFinanceReview, executive, false},
		{"nobody reviews draft", domain.StatusDraft, admin, false},
		{"nobody reviews approved", domain.StatusApproved, ceo, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CanReviewStage(tt.stage, tt.actor))
		})
	}
}
