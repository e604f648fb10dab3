package domain

import (
	"github.com/shopspring/decimal"
)

// RequestStatus is the lifecycle status of a purchase request.
type RequestStatus string

const (
	StatusDraft             RequestStatus = "draft"
	StatusSubmitted         RequestStatus = "submitted"
	StatusFinanceReview     RequestStatus = "finance_review"
	StatusProcurementReview RequestStatus = "procurement_review"
	StatusLegalReview       RequestStatus = "legal_review"
	StatusAuditReview       RequestStatus = "audit_review"
	StatusExecutiveApproval RequestStatus = "executive_approval"
	StatusApproved          RequestStatus = "approved"
	StatusReceiptRequested  RequestStatus = "receipt_requested"
	StatusRejected          RequestStatus = "rejected"
	StatusCancelled         RequestStatus = "cancelled"
)

// reviewSequence is the ordered chain of review stages. Approval at one stage moves
// the request to the next entry; approval at the last stage yields StatusApproved.
var reviewSequence = []RequestStatus{
	StatusSubmitted,
	StatusFinanceReview,
	StatusProcurementReview,
	StatusLegalReview,
	StatusAuditReview,
	StatusExecutiveApproval,
	StatusApproved,
}

var validStatuses = map[RequestStatus]bool{
	StatusDraft:             true,
	StatusSubmitted:         true,
	StatusFinanceReview:     true,
	StatusProcurementReview: true,
	StatusLegalReview:       true,
	StatusAuditReview:       true,
	StatusExecutiveApproval: true,
	StatusApproved:          true,
	StatusReceiptRequested:  true,
	StatusRejected:          true,
	StatusCancelled:         true,
}

var terminalStatuses = map[RequestStatus]bool{
	StatusApproved:  true,
	StatusRejected:  true,
	StatusCancelled: true,
}

// IsValid reports whether the status is one of the defined lifecycle values.
func (s RequestStatus) IsValid() bool {
	return validStatuses[s]
}

// IsTerminal reports whether no further transitions are permitted from this status.
func (s RequestStatus) IsTerminal() bool {
	return terminalStatuses[s]
}

// IsReviewStage reports whether the status is a stage a reviewer can act on.
func (s RequestStatus) IsReviewStage() bool {
	_, ok := nextReviewStage[s]
	return ok
}

func (s RequestStatus) String() string {
	return string(s)
}

// nextReviewStage maps each actionable review stage to its successor, derived from
// reviewSequence so the chain is defined in exactly one place.
var nextReviewStage = func() map[RequestStatus]RequestStatus {
	m := make(map[RequestStatus]RequestStatus, len(reviewSequence)-1)
	for i := 0; i < len(reviewSequence)-1; i++ {
		m[reviewSequence[i]] = reviewSequence[i+1]
	}
	return m
}()

// NextStage returns the status that follows s in the review chain. The second return
// is false when s is not an actionable review stage.
func NextStage(s RequestStatus) (RequestStatus, bool) {
	next, ok := nextReviewStage[s]
	return next, ok
}

// stagePermission describes who may act at a review stage: either a specific
// department, or any of a set of elevated roles.
type stagePermission struct {
	department string
	roles      []Role
}

var stagePermissions = map[RequestStatus]stagePermission{
	// Submitted requests sit in an intake queue triaged by Finance, which already has
	// full visibility of them.
	StatusSubmitted:         {department: DeptFinance},
	StatusFinanceReview:     {department: DeptFinance},
	StatusProcurementReview: {department: DeptProcurement},
	StatusLegalReview:       {department: DeptLegal},
	StatusAuditReview:       {department: DeptFinance},
	StatusExecutiveApproval: {roles: []Role{RoleExecutive, RoleCEO, RoleAdmin}},
}

// CanReviewStage reports whether the actor satisfies the permission table entry for
// the given stage. Statuses without an entry (draft, terminal states) accept no
// reviewer at all.
func CanReviewStage(stage RequestStatus, actor Actor) bool {
	perm, ok := stagePermissions[stage]
	if !ok {
		return false
	}
	if perm.department != "" {
		return actor.Department == perm.department
	}
	for _, r := range perm.roles {
		if actor.Role == r {
			return true
		}
	}
	return false
}

// ReviewableStages lists the review stages the actor may act on, in chain order.
func ReviewableStages(actor Actor) []RequestStatus {
	var out []RequestStatus
	for _, s := range reviewSequence[:len(reviewSequence)-1] {
		if CanReviewStage(s, actor) {
			out = append(out, s)
		}
	}
	return out
}

// RequestUrgency is the requestor-declared urgency of a purchase request.
type RequestUrgency string

const (
	UrgencyLow    RequestUrgency = "low"
	UrgencyNormal RequestUrgency = "normal"
	UrgencyHigh   RequestUrgency = "high"
	UrgencyUrgent RequestUrgency = "urgent"
)

// PurchaseRequest represents a request for a purchase moving through the
// multi-stage approval workflow. Requests are never physically deleted; they are
// status-terminated instead.
type PurchaseRequest struct {
	RequestID           string          `json:"requestID"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	Category            string          `json:"category"`
	EstimatedCost       decimal.Decimal `json:"estimatedCost"`
	CurrencyCode        string          `json:"currencyCode"`
	Urgency             RequestUrgency  `json:"urgency"`
	Status              RequestStatus   `json:"status"`
	RequestorID         string          `json:"requestorID"`
	RequestorDepartment string          `json:"requestorDepartment"`
	AuditFields
}
