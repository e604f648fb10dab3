package dto

import (
	"time"

	"github.com/sgoap/sgoap-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePurchaseRequestRequest defines the payload for creating a draft request.
type CreatePurchaseRequestRequest struct {
	Title         string          `json:"title" binding:"required,max=200"`
	Description   string          `json:"description" binding:"required"`
	Category      string          `json:"category" binding:"required,max=100"`
	EstimatedCost decimal.Decimal `json:"estimatedCost" binding:"required"`
	CurrencyCode  string          `json:"currencyCode" binding:"required,len=3"`
	Urgency       string          `json:"urgency" binding:"required,oneof=low normal high urgent"`
}

// UpdatePurchaseRequestRequest defines the fields editable while a request is a
// draft. Pointers distinguish omitted fields from zero values.
type UpdatePurchaseRequestRequest struct {
	Title         *string          `json:"title" binding:"omitempty,max=200"`
	Description   *string          `json:"description"`
	Category      *string          `json:"category" binding:"omitempty,max=100"`
	EstimatedCost *decimal.Decimal `json:"estimatedCost"`
	CurrencyCode  *string          `json:"currencyCode" binding:"omitempty,len=3"`
	Urgency       *string          `json:"urgency" binding:"omitempty,oneof=low normal high urgent"`
}

// ReviewRequestRequest defines the payload for acting on a review stage.
type ReviewRequestRequest struct {
	Action   string `json:"action" binding:"required,oneof=approved rejected requested_changes"`
	Comments string `json:"comments" binding:"max=2000"`
}

// PurchaseRequestResponse is the API shape of a purchase request. For viewers
// outside the visibility predicate only the reduced projection (status, requestor
// department, created at) is populated and Redacted is true; all other fields are
// withheld before serialization.
type PurchaseRequestResponse struct {
	RequestID           string           `json:"requestID"`
	Status              string           `json:"status"`
	RequestorDepartment string           `json:"requestorDepartment"`
	CreatedAt           time.Time        `json:"createdAt"`
	Redacted            bool             `json:"redacted"`
	Title               *string          `json:"title,omitempty"`
	Description         *string          `json:"description,omitempty"`
	Category            *string          `json:"category,omitempty"`
	EstimatedCost       *decimal.Decimal `json:"estimatedCost,omitempty"`
	CurrencyCode        *string          `json:"currencyCode,omitempty"`
	Urgency             *string          `json:"urgency,omitempty"`
	RequestorID         *string          `json:"requestorID,omitempty"`
	LastUpdatedAt       *time.Time       `json:"lastUpdatedAt,omitempty"`
}

// ToPurchaseRequestResponse maps a domain request to its full API shape.
func ToPurchaseRequestResponse(req *domain.PurchaseRequest) PurchaseRequestResponse {
	urgency := string(req.Urgency)
	cost := req.EstimatedCost
	lastUpdated := req.LastUpdatedAt
	return PurchaseRequestResponse{
		RequestID:           req.RequestID,
		Status:              string(req.Status),
		RequestorDepartment: req.RequestorDepartment,
		CreatedAt:           req.CreatedAt,
		Title:               &req.Title,
		Description:         &req.Description,
		Category:            &req.Category,
		EstimatedCost:       &cost,
		CurrencyCode:        &req.CurrencyCode,
		Urgency:             &urgency,
		RequestorID:         &req.RequestorID,
		LastUpdatedAt:       &lastUpdated,
	}
}

// ToRedactedRequestResponse maps a domain request to the reduced projection.
func ToRedactedRequestResponse(req *domain.PurchaseRequest) PurchaseRequestResponse {
	return PurchaseRequestResponse{
		RequestID:           req.RequestID,
		Status:              string(req.Status),
		RequestorDepartment: req.RequestorDepartment,
		CreatedAt:           req.CreatedAt,
		Redacted:            true,
	}
}

// WorkflowLogEntryResponse is the API shape of one audit trail entry.
type WorkflowLogEntryResponse struct {
	LogID      string    `json:"logID"`
	RequestID  string    `json:"requestID"`
	ReviewerID string    `json:"reviewerID"`
	Stage      string    `json:"stage"`
	Action     string    `json:"action"`
	Comments   string    `json:"comments,omitempty"`
	ReviewedAt time.Time `json:"reviewedAt"`
}

// ToWorkflowLogEntryResponses maps log entries for timeline display.
func ToWorkflowLogEntryResponses(entries []domain.WorkflowLogEntry) []WorkflowLogEntryResponse {
	out := make([]WorkflowLogEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = WorkflowLogEntryResponse{
			LogID:      e.LogID,
			RequestID:  e.RequestID,
			ReviewerID: e.ReviewerID,
			Stage:      string(e.Stage),
			Action:     string(e.Action),
			Comments:   e.Comments,
			ReviewedAt: e.ReviewedAt,
		}
	}
	return out
}

// PurchaseRequestDetailResponse bundles a request with its workflow timeline. The
// timeline is only populated for viewers with full visibility.
type PurchaseRequestDetailResponse struct {
	Request  PurchaseRequestResponse    `json:"request"`
	Timeline []WorkflowLogEntryResponse `json:"timeline,omitempty"`
}

// ListRequestsParams defines query parameters for listing purchase requests.
type ListRequestsParams struct {
	Status    *string `form:"status"`
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListRequestsResponse wraps a page of purchase requests.
type ListRequestsResponse struct {
	Requests  []PurchaseRequestResponse `json:"requests"`
	NextToken *string                   `json:"nextToken,omitempty"`
}
