package repositories

import (
	"context"
	"time"

	"github.com/sgoap/sgoap-backend/internal/core/domain"
)

// ListEventsParams filters event listings by window and audience.
type ListEventsParams struct {
	From       *time.Time
	To         *time.Time
	Department string
	IncludeAll bool
	Limit      int
	Offset     int
}

// EventRepositoryFacade defines persistence operations for calendar events.
type EventRepositoryFacade interface {
	SaveEvent(ctx context.Context, e domain.Event) error
	FindEventByID(ctx context.Context, eventID string) (*domain.Event, error)
	ListEvents(ctx context.Context, params ListEventsParams) ([]domain.Event, error)
	UpdateEvent(ctx context.Context, e domain.Event) error
	DeleteEvent(ctx context.Context, eventID string) error
	CountUpcomingEvents(ctx context.Context, department string, includeAll bool, from time.Time) (int, error)
}
