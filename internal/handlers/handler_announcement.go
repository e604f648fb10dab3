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

// announcementHandler handles HTTP requests related to announcements.
type announcementHandler struct {
	announcementService portssvc.AnnouncementSvcFacade
}

func newAnnouncementHandler(as portssvc.AnnouncementSvcFacade) *announcementHandler {
	return &announcementHandler{announcementService: as}
}

// registerAnnouncementRoutes registers all announcement-related routes.
func registerAnnouncementRoutes(rg *gin.RouterGroup, announcementService portssvc.AnnouncementSvcFacade) {
	h := newAnnouncementHandler(announcementService)

	announcements := rg.Group("/announcements")
	{
		announcements.POST("", h.createAnnouncement)
		announcements.GET("", h.listAnnouncements)
		announcements.GET("/:id", h.getAnnouncement)
		announcements.PUT("/:id", h.updateAnnouncement)
		announcements.DELETE("/:id", h.deleteAnnouncement)
	}
}

// createAnnouncement godoc
// @Summary Post an announcement
// @Description Posts a company-wide or department announcement. Department heads and above; heads post only to their own department.
// @Tags announcements
// @Accept json
// @Produce json
// @Param announcement body dto.CreateAnnouncementRequest true "Announcement details"
// @Success 201 {object} dto.AnnouncementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /announcements [post]
func (h *announcementHandler) createAnnouncement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	announcement, err := h.announcementService.CreateAnnouncement(c.Request.Context(), actor, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Not permitted to post announcements"})
			return
		}
		logger.Error("Failed to create announcement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create announcement"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToAnnouncementResponse(announcement))
}

// getAnnouncement godoc
// @Summary Get an announcement by ID
// @Tags announcements
// @Produce json
// @Param id path string true "Announcement ID"
// @Success 200 {object} dto.AnnouncementResponse
// @Failure 403 {object} ErrorResponse "Outside the caller's audience"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /announcements/{id} [get]
func (h *announcementHandler) getAnnouncement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	announcementID := c.Param("id")

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	announcement, err := h.announcementService.GetAnnouncementByID(c.Request.Context(), announcementID, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Announcement not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		default:
			logger.Error("Failed to get announcement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve announcement"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAnnouncementResponse(announcement))
}

// listAnnouncements godoc
// @Summary List announcements
// @Description Retrieves announcements in the caller's audience, pinned first, newest first.
// @Tags announcements
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListAnnouncementsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /announcements [get]
func (h *announcementHandler) listAnnouncements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAnnouncementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	announcements, err := h.announcementService.ListAnnouncements(c.Request.Context(), actor, params)
	if err != nil {
		logger.Error("Failed to list announcements", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list announcements"})
		return
	}

	responses := make([]dto.AnnouncementResponse, len(announcements))
	for i := range announcements {
		responses[i] = dto.ToAnnouncementResponse(&announcements[i])
	}
	c.JSON(http.StatusOK, dto.ListAnnouncementsResponse{Announcements: responses})
}

// updateAnnouncement godoc
// @Summary Update an announcement
// @Description Edits an announcement. Author or elevated roles only.
// @Tags announcements
// @Accept json
// @Produce json
// @Param id path string true "Announcement ID"
// @Param announcement body dto.UpdateAnnouncementRequest true "Fields to update"
// @Success 200 {object} dto.AnnouncementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /announcements/{id} [put]
func (h *announcementHandler) updateAnnouncement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	announcementID := c.Param("id")

	var req dto.UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	announcement, err := h.announcementService.UpdateAnnouncement(c.Request.Context(), announcementID, actor, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Announcement not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		default:
			logger.Error("Failed to update announcement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update announcement"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAnnouncementResponse(announcement))
}

// deleteAnnouncement godoc
// @Summary Delete an announcement
// @Description Removes an announcement. Author or elevated roles only.
// @Tags announcements
// @Produce json
// @Param id path string true "Announcement ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /announcements/{id} [delete]
func (h *announcementHandler) deleteAnnouncement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	announcementID := c.Param("id")

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.announcementService.DeleteAnnouncement(c.Request.Context(), announcementID, actor); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Announcement not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		default:
			logger.Error("Failed to delete announcement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete announcement"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
