package repositories

import (
	"context"
	"time"

	"github.com/sgoap/sgoap-backend/internal/core/domain"
)

// RequestListScope restricts a listing to rows the viewer may see. The scope is
// applied inside the SQL query so rows outside it are never transmitted. An
// Unrestricted scope (elevated roles) matches everything.
type RequestListScope struct {
	Unrestricted     bool
	ViewerID         string
	ViewerDepartment string
	// VisibleStatuses are the stages the viewer's department may observe regardless
	// of requestor (e.g. finance_review for Finance & Accounting).
	VisibleStatuses []domain.RequestStatus
}

// ListRequestsParams carries filtering and keyset pagination for request listings.
type ListRequestsParams struct {
	Scope     RequestListScope
	Status    *domain.RequestStatus
	Limit     int
	NextToken *string
}

// PurchaseRequestRepositoryFacade defines persistence operations for purchase
// requests and their append-only workflow log.
type PurchaseRequestRepositoryFacade interface {
	SaveRequest(ctx context.Context, req domain.PurchaseRequest) error
	FindRequestByID(ctx context.Context, requestID string) (*domain.PurchaseRequest, error)
	ListRequests(ctx context.Context, params ListRequestsParams) ([]domain.PurchaseRequest, *string, error)
	// UpdateRequest persists edits to a draft's mutable fields.
	UpdateRequest(ctx context.Context, req domain.PurchaseRequest) error
	// TransitionStatus atomically moves a request from expected to next and appends
	// the log entry in one database transaction. The write is guarded by a
	// compare-and-swap on expected: if the stored status differs, nothing is written
	// and apperrors.ErrConflict is returned. expected == next is valid and records a
	// log entry without moving the request (requested_changes). An entry with an
	// empty LogID records no log row; submit and cancel transition without logging.
	TransitionStatus(ctx context.Context, requestID string, expected domain.RequestStatus, next domain.RequestStatus, entry domain.WorkflowLogEntry, actorID string, at time.Time) error
	FindLogEntriesByRequestID(ctx context.Context, requestID string) ([]domain.WorkflowLogEntry, error)
	CountRequestsByStatuses(ctx context.Context, statuses []domain.RequestStatus) (int, error)
}
