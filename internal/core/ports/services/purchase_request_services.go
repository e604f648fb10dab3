package services

import (
	"context"

	"github.com/sgoap/sgoap-backend/internal/core/domain"
	"github.com/sgoap/sgoap-backend/internal/dto"
)

// PurchaseRequestReaderSvc defines read operations for purchase requests
type PurchaseRequestReaderSvc interface {
	// GetRequest retrieves a purchase request by ID. Existence is not hidden from
	// any authenticated employee; field-level redaction happens at serialization.
	GetRequest(ctx context.Context, requestID string, actor domain.Actor) (*domain.PurchaseRequest, error)

	// GetRequestTimeline retrieves the workflow log for a request in chronological
	// order. Restricted to viewers entitled to the request's full details.
	GetRequestTimeline(ctx context.Context, requestID string, actor domain.Actor) ([]domain.WorkflowLogEntry, error)

	// ListRequests retrieves a page of requests scoped to what the actor may see,
	// returning an opaque token for the next page.
	ListRequests(ctx context.Context, actor domain.Actor, params dto.ListRequestsParams) ([]domain.PurchaseRequest, *string, error)
}

// PurchaseRequestWriterSvc defines draft-stage write operations
type PurchaseRequestWriterSvc interface {
	// CreateRequest creates a new draft owned by the actor.
	CreateRequest(ctx context.Context, actor domain.Actor, req dto.CreatePurchaseRequestRequest) (*domain.PurchaseRequest, error)

	// UpdateDraft edits a request that is still in draft, requestor only.
	UpdateDraft(ctx context.Context, requestID string, actor domain.Actor, req dto.UpdatePurchaseRequestRequest) (*domain.PurchaseRequest, error)
}

// PurchaseRequestWorkflowSvc defines the approval workflow operations
type PurchaseRequestWorkflowSvc interface {
	// SubmitRequest moves a draft into the review pipeline.
	SubmitRequest(ctx context.Context, requestID string, actor domain.Actor) (*domain.PurchaseRequest, error)

	// ReviewRequest records an approve/reject/requested_changes decision at the
	// request's current stage and advances, terminates, or parks it accordingly.
	ReviewRequest(ctx context.Context, requestID string, actor domain.Actor, req dto.ReviewRequestRequest) (*domain.PurchaseRequest, error)

	// CancelRequest lets the requestor withdraw a request that is not yet terminal.
	CancelRequest(ctx context.Context, requestID string, actor domain.Actor) (*domain.PurchaseRequest, error)
}

// PurchaseRequestSvcFacade combines all purchase-request service interfaces
type PurchaseRequestSvcFacade interface {
	PurchaseRequestReaderSvc
	PurchaseRequestWriterSvc
	PurchaseRequestWorkflowSvc
}
