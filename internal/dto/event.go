package dto

import (
	"time"

	"github.com/sgoap/sgoap-backend/internal/core/domain"
)

// CreateEventRequest defines the payload for creating a calendar event.
type CreateEventRequest struct {
	Title      string    `json:"title" binding:"required,max=200"`
	Details    string    `json:"details"`
	Location   string    `json:"location" binding:"max=200"`
	Department *string   `json:"department" binding:"omitempty,max=100"`
	StartsAt   time.Time `json:"startsAt" binding:"required"`
	EndsAt     time.Time `json:"endsAt" binding:"required"`
}

// UpdateEventRequest defines the mutable event fields.
type UpdateEventRequest struct {
	Title    *string    `json:"title" binding:"omitempty,max=200"`
	Details  *string    `json:"details"`
	Location *string    `json:"location" binding:"omitempty,max=200"`
	StartsAt *time.Time `json:"startsAt"`
	EndsAt   *time.Time `json:"endsAt"`
}

// EventResponse is the API shape of a calendar event.
type EventResponse struct {
	EventID    string    `json:"eventID"`
	Title      string    `json:"title"`
	Details    string    `json:"details"`
	Location   string    `json:"location"`
	Department *string   `json:"department,omitempty"`
	StartsAt   time.Time `json:"startsAt"`
	EndsAt     time.Time `json:"endsAt"`
	CreatedBy  string    `json:"createdBy"`
}

// ToEventResponse maps a domain event to its API shape.
func ToEventResponse(e *domain.Event) EventResponse {
	return EventResponse{
		EventID:    e.EventID,
		Title:      e.Title,
		Details:    e.Details,
		Location:   e.Location,
		Department: e.Department,
		StartsAt:   e.StartsAt,
		EndsAt:     e.EndsAt,
		CreatedBy:  e.CreatedBy,
	}
}

// ListEventsParams defines query parameters for listing events.
type ListEventsParams struct {
	From   *time.Time `form:"from" time_format:"2006-01-02"`
	To     *time.Time `form:"to" time_format:"2006-01-02"`
	Limit  int        `form:"limit,default=50"`
	Offset int        `form:"offset,default=0"`
}

// ListEventsResponse wraps a page of events.
type ListEventsResponse struct {
	Events []EventResponse `json:"events"`
}
