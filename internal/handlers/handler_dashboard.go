package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/sgoap/sgoap-backend/internal/core/ports/services"
	"github.com/sgoap/sgoap-backend/internal/middleware"
)

// dashboardHandler handles the portal landing page summary.
type dashboardHandler struct {
	dashboardService portssvc.DashboardSvcFacade
}

// registerDashboardRoutes registers the dashboard route.
func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvcFacade) {
	h := &dashboardHandler{dashboardService: dashboardService}
	rg.GET("/dashboard", h.getSummary)
}

// getSummary godoc
// @Summary Portal dashboard summary
// @Description Aggregates the caller's open tasks, pending approvals, upcoming events and current announcements.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (h *dashboardHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	summary, err := h.dashboardService.GetSummary(c.Request.Context(), actor)
	if err != nil {
		logger.Error("Failed to build dashboard summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build dashboard summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
