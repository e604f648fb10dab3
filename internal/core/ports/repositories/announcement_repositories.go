package repositories

import (
	"context"

	"github.com/sgoap/sgoap-backend/internal/core/domain"
)

// AnnouncementRepositoryFacade defines persistence operations for announcements.
// Listing takes the viewer's department so audience filtering happens in the query,
// not the client.
type AnnouncementRepositoryFacade interface {
	SaveAnnouncement(ctx context.Context, a domain.Announcement) error
	FindAnnouncementByID(ctx context.Context, announcementID string) (*domain.Announcement, error)
	ListAnnouncementsForAudience(ctx context.Context, department string, includeAll bool, limit int, offset int) ([]domain.Announcement, error)
	UpdateAnnouncement(ctx context.Context, a domain.Announcement) error
	DeleteAnnouncement(ctx context.Context, announcementID string) error
	CountAnnouncementsForAudience(ctx context.Context, department string, includeAll bool) (int, error)
}
