package services

import (
	"context"

	"github.com/sgoap/sgoap-backend/internal/core/domain"
	"github.com/sgoap/sgoap-backend/internal/dto"
)

// AnnouncementSvcFacade defines the interface for announcement services.
type AnnouncementSvcFacade interface {
	// CreateAnnouncement posts a company-wide or department announcement. Restricted
	// to department heads and above.
	CreateAnnouncement(ctx context.Context, actor domain.Actor, req dto.CreateAnnouncementRequest) (*domain.Announcement, error)

	// GetAnnouncementByID retrieves an announcement in the actor's audience.
	GetAnnouncementByID(ctx context.Context, announcementID string, actor domain.Actor) (*domain.Announcement, error)

	// ListAnnouncements retrieves announcements in the actor's audience, pinned first.
	ListAnnouncements(ctx context.Context, actor domain.Actor, params dto.ListAnnouncementsParams) ([]domain.Announcement, error)

	// UpdateAnnouncement edits an announcement, author or elevated roles only.
	UpdateAnnouncement(ctx context.Context, announcementID string, actor domain.Actor, req dto.UpdateAnnouncementRequest) (*domain.Announcement, error)

	// DeleteAnnouncement removes an announcement, author or elevated roles only.
	DeleteAnnouncement(ctx context.Context, announcementID string, actor domain.Actor) error
}
