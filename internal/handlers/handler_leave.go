package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sgoap/sgoap-backend/internal/apperrors"
	portssvc "github.com/sgoap/sgoap-backend/internal/core/ports/services"
	"github.com/sgoap/sgoap-backend/internal/dto"
	"github.com/sgoap/sgoap-backend/internal/middleware"
)

// leaveHandler handles HTTP requests related to leave requests.
type leaveHandler struct {
	leaveService portssvc.LeaveSvcFacade
}

func newLeaveHandler(ls portssvc.LeaveSvcFacade) *leaveHandler {
	return &leaveHandler{leaveService: ls}
}

// registerLeaveRoutes registers all leave-related routes.
func registerLeaveRoutes(rg *gin.RouterGroup, leaveService portssvc.LeaveSvcFacade) {
	h := newLeaveHandler(leaveService)

	leaves := rg.Group("/leave-requests")
	{
		leaves.POST("", h.createLeave)
		leaves.GET("", h.listLeaves)
		leaves.GET("/:id", h.getLeave)
		leaves.POST("/:id/decide", h.decideLeave)
		leaves.POST("/:id/cancel", h.cancelLeave)
	}
}

// createLeave godoc
// @Summary Request time off
// @Tags leave
// @Accept json
// @Produce json
// @Param leave body dto.CreateLeaveRequest true "Leave details"
// @Success 201 {object} dto.LeaveResponse
// @Failure 400 {object} ErrorResponse "Invalid dates"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /leave-requests [post]
func (h *leaveHandler) createLeave(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	leave, err := h.leaveService.CreateLeave(c.Request.Context(), actor, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "End date must not precede start date"})
			return
		}
		logger.Error("Failed to create leave request", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create leave request"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToLeaveResponse(leave))
}

// getLeave godoc
// @Summary Get a leave request by ID
// @Tags leave
// @Produce json
// @Param id path string true "Leave request ID"
// @Success 200 {object} dto.LeaveResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /leave-requests/{id} [get]
func (h *leaveHandler) getLeave(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	leaveID := c.Param("id")

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	leave, err := h.leaveService.GetLeaveByID(c.Request.Context(), leaveID, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Leave request not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		default:
			logger.Error("Failed to get leave request", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve leave request"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLeaveResponse(leave))
}

// listLeaves godoc
// @Summary List leave requests
// @Description Retrieves leave requests in the caller's reach: own requests for employees, the department for heads, all for managers and elevated roles.
// @Tags leave
// @Produce json
// @Param status query string false "Filter by status"
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListLeaveResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /leave-requests [get]
func (h *leaveHandler) listLeaves(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListLeaveParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	leaves, err := h.leaveService.ListLeaves(c.Request.Context(), actor, params)
	if err != nil {
		logger.Error("Failed to list leave requests", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list leave requests"})
		return
	}

	responses := make([]dto.LeaveResponse, len(leaves))
	for i := range leaves {
		responses[i] = dto.ToLeaveResponse(&leaves[i])
	}
	c.JSON(http.StatusOK, dto.ListLeaveResponse{Leaves: responses})
}

// decideLeave godoc
// @Summary Approve or reject a leave request
// @Description Records a decision on a pending request. Department heads decide for their department, managers and elevated roles company-wide. Nobody decides their own request.
// @Tags leave
// @Accept json
// @Produce json
// @Param id path string true "Leave request ID"
// @Param decision body dto.DecideLeaveRequest true "Decision"
// @Success 200 {object} dto.LeaveResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "No longer pending"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /leave-requests/{id}/decide [post]
func (h *leaveHandler) decideLeave(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	leaveID := c.Param("id")

	var req dto.DecideLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	leave, err := h.leaveService.DecideLeave(c.Request.Context(), leaveID, actor, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Leave request not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Not permitted to decide this request"})
		case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrInvalidState):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Leave request is no longer pending"})
		default:
			logger.Error("Failed to decide leave request", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to decide leave request"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLeaveResponse(leave))
}

// cancelLeave godoc
// @Summary Cancel own leave request
// @Description Withdraws the caller's own request while it is still pending.
// @Tags leave
// @Produce json
// @Param id path string true "Leave request ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "No longer pending"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /leave-requests/{id}/cancel [post]
func (h *leaveHandler) cancelLeave(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	leaveID := c.Param("id")

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.leaveService.CancelLeave(c.Request.Context(), leaveID, actor); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Leave request not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Only the requestor can cancel"})
		case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrInvalidState):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Leave request is no longer pending"})
		default:
			logger.Error("Failed to cancel leave request", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to cancel leave request"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
