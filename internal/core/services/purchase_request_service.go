package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sgoap/sgoap-backend/internal/apperrors"
	"github.com/sgoap/sgoap-backend/internal/core/domain"
	portsrepo "github.com/sgoap/sgoap-backend/internal/core/ports/repositories"
	portssvc "github.com/sgoap/sgoap-backend/internal/core/ports/services"
	"github.com/sgoap/sgoap-backend/internal/dto"
)

// purchaseRequestService implements the purchase request approval workflow. All
// status movement funnels through the repository's compare-and-swap transition, so
// two concurrent reviewers can never both act on the same stage.
type purchaseRequestService struct {
	BaseService
	requestRepo portsrepo.PurchaseRequestRepositoryFacade
}

// NewPurchaseRequestService creates the purchase request service.
func NewPurchaseRequestService(requestRepo portsrepo.PurchaseRequestRepositoryFacade) portssvc.PurchaseRequestSvcFacade {
	return &purchaseRequestService{requestRepo: requestRepo}
}

func (s *purchaseRequestService) CreateRequest(ctx context.Context, actor domain.Actor, req dto.CreatePurchaseRequestRequest) (*domain.PurchaseRequest, error) {
	now := time.Now()
	request := domain.PurchaseRequest{
		RequestID:           uuid.NewString(),
		Title:               req.Title,
		Description:         req.Description,
		Category:            req.Category,
		EstimatedCost:       req.EstimatedCost,
		CurrencyCode:        req.CurrencyCode,
		Urgency:             domain.RequestUrgency(req.Urgency),
		Status:              domain.StatusDraft,
		RequestorID:         actor.EmployeeID,
		RequestorDepartment: actor.Department,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.EmployeeID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.EmployeeID,
		},
	}
	if request.EstimatedCost.IsNegative() {
		return nil, fmt.Errorf("estimated cost must not be negative: %w", apperrors.ErrValidation)
	}

	if err := s.requestRepo.SaveRequest(ctx, request); err != nil {
		s.LogError(ctx, err, "failed to save purchase request")
		return nil, fmt.Errorf("failed to create purchase request: %w", err)
	}

	s.LogInfo(ctx, "purchase request created",
		slog.String("request_id", request.RequestID),
		slog.String("requestor_id", actor.EmployeeID))
	return &request, nil
}

func (s *purchaseRequestService) UpdateDraft(ctx context.Context, requestID string, actor domain.Actor, req dto.UpdatePurchaseRequestRequest) (*domain.PurchaseRequest, error) {
	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to find request %s: %w", requestID, err)
	}
	if request.RequestorID != actor.EmployeeID {
		return nil, fmt.Errorf("only the requestor may edit a draft: %w", apperrors.ErrForbidden)
	}
	if request.Status != domain.StatusDraft {
		return nil, fmt.Errorf("request %s is %s, only drafts are editable: %w", requestID, request.Status, apperrors.ErrInvalidState)
	}

	if req.Title != nil {
		request.Title = *req.Title
	}
	if req.Description != nil {
		request.Description = *req.Description
	}
	if req.Category != nil {
		request.Category = *req.Category
	}
	if req.EstimatedCost != nil {
		if req.EstimatedCost.IsNegative() {
			return nil, fmt.Errorf("estimated cost must not be negative: %w", apperrors.ErrValidation)
		}
		request.EstimatedCost = *req.EstimatedCost
	}
	if req.CurrencyCode != nil {
		request.CurrencyCode = *req.CurrencyCode
	}
	if req.Urgency != nil {
		request.Urgency = domain.RequestUrgency(*req.Urgency)
	}
	request.LastUpdatedAt = time.Now()
	request.LastUpdatedBy = actor.EmployeeID

	if err := s.requestRepo.UpdateRequest(ctx, *request); err != nil {
		s.LogError(ctx, err, "failed to update draft", slog.String("request_id", requestID))
		return nil, fmt.Errorf("failed to update draft %s: %w", requestID, err)
	}
	return request, nil
}

func (s *purchaseRequestService) SubmitRequest(ctx context.Context, requestID string, actor domain.Actor) (*domain.PurchaseRequest, error) {
	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to find request %s: %w", requestID, err)
	}
	if request.RequestorID != actor.EmployeeID {
		return nil, fmt.Errorf("only the requestor may submit: %w", apperrors.ErrForbidden)
	}
	if request.Status != domain.StatusDraft {
		return nil, fmt.Errorf("request %s is %s, only drafts can be submitted: %w", requestID, request.Status, apperrors.ErrInvalidState)
	}

	now := time.Now()
	// Submission is a requestor action, not a review; no log entry is written.
	err = s.requestRepo.TransitionStatus(ctx, requestID, domain.StatusDraft, domain.StatusSubmitted, domain.WorkflowLogEntry{}, actor.EmployeeID, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("request %s changed concurrently: %w", requestID, err)
		}
		s.LogError(ctx, err, "failed to submit request", slog.String("request_id", requestID))
		return nil, fmt.Errorf("failed to submit request %s: %w", requestID, err)
	}

	request.Status = domain.StatusSubmitted
	request.LastUpdatedAt = now
	request.LastUpdatedBy = actor.EmployeeID
	s.LogInfo(ctx, "purchase request submitted", slog.String("request_id", requestID))
	return request, nil
}

func (s *purchaseRequestService) ReviewRequest(ctx context.Context, requestID string, actor domain.Actor, req dto.ReviewRequestRequest) (*domain.PurchaseRequest, error) {
	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to find request %s: %w", requestID, err)
	}
	if request.Status.IsTerminal() {
		return nil, fmt.Errorf("request %s is already %s: %w", requestID, request.Status, apperrors.ErrInvalidState)
	}
	if !request.Status.IsReviewStage() {
		return nil, fmt.Errorf("request %s is %s, not at a review stage: %w", requestID, request.Status, apperrors.ErrInvalidState)
	}
	if !domain.CanReviewStage(request.Status, actor) {
		return nil, fmt.Errorf("actor %s may not review stage %s: %w", actor.EmployeeID, request.Status, apperrors.ErrForbidden)
	}

	action := domain.ReviewAction(req.Action)
	if !action.IsValid() {
		return nil, fmt.Errorf("unknown review action %q: %w", req.Action, apperrors.ErrValidation)
	}

	var next domain.RequestStatus
	switch action {
	case domain.ActionApproved:
		next, _ = domain.NextStage(request.Status)
	case domain.ActionRejected:
		next = domain.StatusRejected
	case domain.ActionRequestedChanges:
		// The request stays parked at its current stage awaiting requestor edits.
		next = request.Status
	}

	now := time.Now()
	entry := domain.WorkflowLogEntry{
		LogID:      uuid.NewString(),
		RequestID:  requestID,
		ReviewerID: actor.EmployeeID,
		Stage:      request.Status,
		Action:     action,
		Comments:   req.Comments,
		ReviewedAt: now,
	}

	err = s.requestRepo.TransitionStatus(ctx, requestID, request.Status, next, entry, actor.EmployeeID, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("request %s was reviewed concurrently: %w", requestID, err)
		}
		s.LogError(ctx, err, "failed to record review",
			slog.String("request_id", requestID),
			slog.String("stage", request.Status.String()),
			slog.String("action", string(action)))
		return nil, fmt.Errorf("failed to record review for %s: %w", requestID, err)
	}

	s.LogInfo(ctx, "purchase request reviewed",
		slog.String("request_id", requestID),
		slog.String("stage", request.Status.String()),
		slog.String("action", string(action)),
		slog.String("next_status", next.String()))

	request.Status = next
	request.LastUpdatedAt = now
	request.LastUpdatedBy = actor.EmployeeID
	return request, nil
}

func (s *purchaseRequestService) CancelRequest(ctx context.Context, requestID string, actor domain.Actor) (*domain.PurchaseRequest, error) {
	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to find request %s: %w", requestID, err)
	}
	if request.RequestorID != actor.EmployeeID {
		return nil, fmt.Errorf("only the requestor may cancel: %w", apperrors.ErrForbidden)
	}
	if request.Status.IsTerminal() {
		return nil, fmt.Errorf("request %s is already %s: %w", requestID, request.Status, apperrors.ErrInvalidState)
	}

	now := time.Now()
	err = s.requestRepo.TransitionStatus(ctx, requestID, request.Status, domain.StatusCancelled, domain.WorkflowLogEntry{}, actor.EmployeeID, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("request %s changed concurrently: %w", requestID, err)
		}
		s.LogError(ctx, err, "failed to cancel request", slog.String("request_id", requestID))
		return nil, fmt.Errorf("failed to cancel request %s: %w", requestID, err)
	}

	request.Status = domain.StatusCancelled
	request.LastUpdatedAt = now
	request.LastUpdatedBy = actor.EmployeeID
	s.LogInfo(ctx, "purchase request cancelled", slog.String("request_id", requestID))
	return request, nil
}

func (s *purchaseRequestService) GetRequest(ctx context.Context, requestID string, actor domain.Actor) (*domain.PurchaseRequest, error) {
	// Existence is not concealed; field redaction happens when the handler picks the
	// full or reduced projection.
	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to find request %s: %w", requestID, err)
	}
	return request, nil
}

func (s *purchaseRequestService) GetRequestTimeline(ctx context.Context, requestID string, actor domain.Actor) ([]domain.WorkflowLogEntry, error) {
	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to find request %s: %w", requestID, err)
	}
	if !domain.CanSeeFullDetails(request, actor) {
		return nil, fmt.Errorf("timeline of %s is not visible to actor %s: %w", requestID, actor.EmployeeID, apperrors.ErrForbidden)
	}

	entries, err := s.requestRepo.FindLogEntriesByRequestID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load timeline for %s: %w", requestID, err)
	}
	return entries, nil
}

func (s *purchaseRequestService) ListRequests(ctx context.Context, actor domain.Actor, params dto.ListRequestsParams) ([]domain.PurchaseRequest, *string, error) {
	scope := portsrepo.RequestListScope{Unrestricted: actor.Role.IsElevated()}
	if !scope.Unrestricted {
		scope.ViewerID = actor.EmployeeID
		scope.ViewerDepartment = actor.Department
		scope.VisibleStatuses = domain.VisibleStagesForDepartment(actor.Department)
	}

	repoParams := portsrepo.ListRequestsParams{
		Scope:     scope,
		Limit:     params.Limit,
		NextToken: params.NextToken,
	}
	if params.Status != nil {
		status := domain.RequestStatus(*params.Status)
		if !status.IsValid() {
			return nil, nil, fmt.Errorf("unknown status filter %q: %w", *params.Status, apperrors.ErrValidation)
		}
		repoParams.Status = &status
	}

	requests, nextToken, err := s.requestRepo.ListRequests(ctx, repoParams)
	if err != nil {
		s.LogError(ctx, err, "failed to list purchase requests")
		return nil, nil, fmt.Errorf("failed to list purchase requests: %w", err)
	}
	if requests == nil {
		requests = []domain.PurchaseRequest{}
	}
	return requests, nextToken, nil
}
