package services

import (
	"context"

	"github.com/sgoap/sgoap-backend/internal/core/domain"
	"github.com/sgoap/sgoap-backend/internal/dto"
)

// EventSvcFacade defines the interface for calendar event services.
type EventSvcFacade interface {
	// CreateEvent creates a calendar event, optionally scoped to one department.
	CreateEvent(ctx context.Context, actor domain.Actor, req dto.CreateEventRequest) (*domain.Event, error)

	// GetEventByID retrieves an event in the actor's audience.
	GetEventByID(ctx context.Context, eventID string, actor domain.Actor) (*domain.Event, error)

	// ListEvents retrieves events in the actor's audience within a window.
	ListEvents(ctx context.Context, actor domain.Actor, params dto.ListEventsParams) ([]domain.Event, error)

	// UpdateEvent edits an event, organizer or elevated roles only.
	UpdateEvent(ctx context.Context, eventID string, actor domain.Actor, req dto.UpdateEventRequest) (*domain.Event, error)

	// DeleteEvent removes an event, organizer or elevated roles only.
	DeleteEvent(ctx context.Context, eventID string, actor domain.Actor) error
}
