package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sgoap/sgoap-backend/internal/apperrors"
	"github.com/sgoap/sgoap-backend/internal/core/domain"
	portssvc "github.com/sgoap/sgoap-backend/internal/core/ports/services"
	"github.com/sgoap/sgoap-backend/internal/dto"
	"github.com/sgoap/sgoap-backend/internal/middleware"
)

// purchaseRequestHandler handles HTTP requests for the approval workflow.
type purchaseRequestHandler struct {
	requestService portssvc.PurchaseRequestSvcFacade
}

// newPurchaseRequestHandler creates a new purchaseRequestHandler.
func newPurchaseRequestHandler(ps portssvc.PurchaseRequestSvcFacade) *purchaseRequestHandler {
	return &purchaseRequestHandler{
		requestService: ps,
	}
}

// registerPurchaseRequestRoutes registers all purchase request routes.
func registerPurchaseRequestRoutes(rg *gin.RouterGroup, requestService portssvc.PurchaseRequestSvcFacade) {
	h := newPurchaseRequestHandler(requestService)

	requests := rg.Group("/purchase-requests")
	{
		requests.POST("", h.createRequest)
		requests.GET("", h.listRequests)
		requests.GET("/:id", h.getRequest)
		requests.PUT("/:id", h.updateDraft)
		requests.POST("/:id/submit", h.submitRequest)
		requests.POST("/:id/review", h.reviewRequest)
		requests.POST("/:id/cancel", h.cancelRequest)
		requests.GET("/:id/timeline", h.getTimeline)
	}
}

// respondWorkflowError maps service errors from workflow operations to HTTP codes.
func respondWorkflowError(c *gin.Context, err error, logger *slog.Logger) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Purchase request not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, apperrors.ErrInvalidState):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Action not allowed in the request's current status"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Request was modified concurrently, retry"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request details"})
	default:
		logger.Error("Purchase request operation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Operation failed"})
	}
}

// toRequestResponse picks the full or redacted projection for the viewer. Withheld
// fields are never serialized for viewers outside the visibility predicate.
func toRequestResponse(req *domain.PurchaseRequest, viewer domain.Actor) dto.PurchaseRequestResponse {
	if domain.CanSeeFullDetails(req, viewer) {
		return dto.ToPurchaseRequestResponse(req)
	}
	return dto.ToRedactedRequestResponse(req)
}

// createRequest godoc
// @Summary Create a draft purchase request
// @Tags purchase-requests
// @Accept json
// @Produce json
// @Param request body dto.CreatePurchaseRequestRequest true "Request details"
// @Success 201 {object} dto.PurchaseRequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchase-requests [post]
func (h *purchaseRequestHandler) createRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePurchaseRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	created, err := h.requestService.CreateRequest(c.Request.Context(), actor, req)
	if err != nil {
		respondWorkflowError(c, err, logger)
		return
	}

	logger.Info("Purchase request created", slog.String("request_id", created.RequestID))
	c.JSON(http.StatusCreated, dto.ToPurchaseRequestResponse(created))
}

// getRequest godoc
// @Summary Get a purchase request
// @Description Retrieves a request by ID. Viewers outside the visibility predicate receive the reduced projection; full-visibility viewers also receive the workflow timeline.
// @Tags purchase-requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} dto.PurchaseRequestDetailResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchase-requests/{id} [get]
func (h *purchaseRequestHandler) getRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	request, err := h.requestService.GetRequest(c.Request.Context(), requestID, actor)
	if err != nil {
		respondWorkflowError(c, err, logger)
		return
	}

	detail := dto.PurchaseRequestDetailResponse{Request: toRequestResponse(request, actor)}
	if domain.CanSeeFullDetails(request, actor) {
		timeline, err := h.requestService.GetRequestTimeline(c.Request.Context(), requestID, actor)
		if err != nil {
			respondWorkflowError(c, err, logger)
			return
		}
		detail.Timeline = dto.ToWorkflowLogEntryResponses(timeline)
	}

	c.JSON(http.StatusOK, detail)
}

// listRequests godoc
// @Summary List purchase requests
// @Description Retrieves a page of requests the caller may see, newest first. Rows outside the caller's full-visibility set carry only the reduced projection.
// @Tags purchase-requests
// @Produce json
// @Param status query string false "Filter by status"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Opaque pagination token"
// @Success 200 {object} dto.ListRequestsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchase-requests [get]
func (h *purchaseRequestHandler) listRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	requests, nextToken, err := h.requestService.ListRequests(c.Request.Context(), actor, params)
	if err != nil {
		respondWorkflowError(c, err, logger)
		return
	}

	responses := make([]dto.PurchaseRequestResponse, len(requests))
	for i := range requests {
		responses[i] = toRequestResponse(&requests[i], actor)
	}
	c.JSON(http.StatusOK, dto.ListRequestsResponse{Requests: responses, NextToken: nextToken})
}

// updateDraft godoc
// @Summary Edit a draft purchase request
// @Description Updates a request that is still in draft. Requestor only.
// @Tags purchase-requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param request body dto.UpdatePurchaseRequestRequest true "Fields to update"
// @Success 200 {object} dto.PurchaseRequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Not a draft"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchase-requests/{id} [put]
func (h *purchaseRequestHandler) updateDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	var req dto.UpdatePurchaseRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	updated, err := h.requestService.UpdateDraft(c.Request.Context(), requestID, actor, req)
	if err != nil {
		respondWorkflowError(c, err, logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseRequestResponse(updated))
}

// submitRequest godoc
// @Summary Submit a draft into the review pipeline
// @Tags purchase-requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} dto.PurchaseRequestResponse
// @Failure 403 {object} ErrorResponse "Requestor only"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Not a draft, or concurrent modification"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchase-requests/{id}/submit [post]
func (h *purchaseRequestHandler) submitRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	submitted, err := h.requestService.SubmitRequest(c.Request.Context(), requestID, actor)
	if err != nil {
		respondWorkflowError(c, err, logger)
		return
	}

	logger.Info("Purchase request submitted", slog.String("request_id", requestID))
	c.JSON(http.StatusOK, dto.ToPurchaseRequestResponse(submitted))
}

// reviewRequest godoc
// @Summary Record a review decision
// @Description Approves, rejects or requests changes at the request's current stage. The reviewer's department and role must match the stage.
// @Tags purchase-requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param review body dto.ReviewRequestRequest true "Decision"
// @Success 200 {object} dto.PurchaseRequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Not a reviewer for this stage"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Not reviewable, or concurrent modification"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchase-requests/{id}/review [post]
func (h *purchaseRequestHandler) reviewRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	var req dto.ReviewRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	reviewed, err := h.requestService.ReviewRequest(c.Request.Context(), requestID, actor, req)
	if err != nil {
		respondWorkflowError(c, err, logger)
		return
	}

	logger.Info("Purchase request reviewed",
		slog.String("request_id", requestID),
		slog.String("action", req.Action),
		slog.String("status", string(reviewed.Status)))
	c.JSON(http.StatusOK, dto.ToPurchaseRequestResponse(reviewed))
}

// cancelRequest godoc
// @Summary Cancel a purchase request
// @Description Withdraws a request that has not reached a terminal status. Requestor only.
// @Tags purchase-requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} dto.PurchaseRequestResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already terminal, or concurrent modification"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchase-requests/{id}/cancel [post]
func (h *purchaseRequestHandler) cancelRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	cancelled, err := h.requestService.CancelRequest(c.Request.Context(), requestID, actor)
	if err != nil {
		respondWorkflowError(c, err, logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseRequestResponse(cancelled))
}

// getTimeline godoc
// @Summary Get a request's workflow timeline
// @Description Retrieves the audit trail of review decisions in chronological order. Restricted to viewers entitled to the request's full details.
// @Tags purchase-requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {array} dto.WorkflowLogEntryResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchase-requests/{id}/timeline [get]
func (h *purchaseRequestHandler) getTimeline(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	timeline, err := h.requestService.GetRequestTimeline(c.Request.Context(), requestID, actor)
	if err != nil {
		respondWorkflowError(c, err, logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkflowLogEntryResponses(timeline))
}
