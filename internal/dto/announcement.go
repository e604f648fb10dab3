package dto

import (
	"time"

	"github.com/sgoap/sgoap-backend/internal/core/domain"
)

// CreateAnnouncementRequest defines the payload for posting an announcement. An
// empty department means company-wide.
type CreateAnnouncementRequest struct {
	Title      string  `json:"title" binding:"required,max=200"`
	Body       string  `json:"body" binding:"required"`
	Department *string `json:"department" binding:"omitempty,max=100"`
	Pinned     bool    `json:"pinned"`
}

// UpdateAnnouncementRequest defines the mutable announcement fields.
type UpdateAnnouncementRequest struct {
	Title  *string `json:"title" binding:"omitempty,max=200"`
	Body   *string `json:"body"`
	Pinned *bool   `json:"pinned"`
}

// AnnouncementResponse is the API shape of an announcement.
type AnnouncementResponse struct {
	AnnouncementID string    `json:"announcementID"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	Department     *string   `json:"department,omitempty"`
	Pinned         bool      `json:"pinned"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
}

// ToAnnouncementResponse maps a domain announcement to its API shape.
func ToAnnouncementResponse(a *domain.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		AnnouncementID: a.AnnouncementID,
		Title:          a.Title,
		Body:           a.Body,
		Department:     a.Department,
		Pinned:         a.Pinned,
		CreatedAt:      a.CreatedAt,
		CreatedBy:      a.CreatedBy,
	}
}

// ListAnnouncementsParams defines query parameters for listing announcements.
type ListAnnouncementsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAnnouncementsResponse wraps a page of announcements.
type ListAnnouncementsResponse struct {
	Announcements []AnnouncementResponse `json:"announcements"`
}
