package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sgoap/sgoap-backend/internal/apperrors"
	"github.com/sgoap/sgoap-backend/internal/core/domain"
	portsrepo "github.com/sgoap/sgoap-backend/internal/core/ports/repositories"
	portssvc "github.com/sgoap/sgoap-backend/internal/core/ports/services"
	"github.com/sgoap/sgoap-backend/internal/dto"
)

type eventService struct {
	BaseService
	eventRepo portsrepo.EventRepositoryFacade
}

// NewEventService creates the calendar event service.
func NewEventService(eventRepo portsrepo.EventRepositoryFacade) portssvc.EventSvcFacade {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) CreateEvent(ctx context.Context, actor domain.Actor, req dto.CreateEventRequest) (*domain.Event, error) {
	if !canPost(actor) {
		return nil, fmt.Errorf("actor %s may not create events: %w", actor.EmployeeID, apperrors.ErrForbidden)
	}
	if actor.Role == domain.RoleDepartmentHead {
		if req.Department == nil || *req.Department != actor.Department {
			return nil, fmt.Errorf("department heads schedule for their own department: %w", apperrors.ErrForbidden)
		}
	}
	if !req.EndsAt.After(req.StartsAt) {
		return nil, fmt.Errorf("event must end after it starts: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	e := domain.Event{
		EventID:    uuid.NewString(),
		Title:      req.Title,
		Details:    req.Details,
		Location:   req.Location,
		Department: req.Department,
		StartsAt:   req.StartsAt,
		EndsAt:     req.EndsAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.EmployeeID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.EmployeeID,
		},
	}
	if err := s.eventRepo.SaveEvent(ctx, e); err != nil {
		s.LogError(ctx, err, "failed to save event")
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	s.LogInfo(ctx, "event created", slog.String("event_id", e.EventID))
	return &e, nil
}

func (s *eventService) GetEventByID(ctx context.Context, eventID string, actor domain.Actor) (*domain.Event, error) {
	e, err := s.eventRepo.FindEventByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to find event %s: %w", eventID, err)
	}
	if e.Department != nil && *e.Department != "" && *e.Department != actor.Department && !actor.Role.IsElevated() {
		return nil, fmt.Errorf("event %s is not in actor %s's audience: %w", eventID, actor.EmployeeID, apperrors.ErrForbidden)
	}
	return e, nil
}

func (s *eventService) ListEvents(ctx context.Context, actor domain.Actor, params dto.ListEventsParams) ([]domain.Event, error) {
	events, err := s.eventRepo.ListEvents(ctx, portsrepo.ListEventsParams{
		From:       params.From,
		To:         params.To,
		Department: actor.Department,
		IncludeAll: actor.Role.IsElevated(),
		Limit:      params.Limit,
		Offset:     params.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	if events == nil {
		events = []domain.Event{}
	}
	return events, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID string, actor domain.Actor, req dto.UpdateEventRequest) (*domain.Event, error) {
	e, err := s.eventRepo.FindEventByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to find event %s: %w", eventID, err)
	}
	if e.CreatedBy != actor.EmployeeID && !actor.Role.IsElevated() {
		return nil, fmt.Errorf("only the organizer or an elevated role may edit: %w", apperrors.ErrForbidden)
	}

	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Details != nil {
		e.Details = *req.Details
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.StartsAt != nil {
		e.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		e.EndsAt = *req.EndsAt
	}
	if !e.EndsAt.After(e.StartsAt) {
		return nil, fmt.Errorf("event must end after it starts: %w", apperrors.ErrValidation)
	}
	e.LastUpdatedAt = time.Now()
	e.LastUpdatedBy = actor.EmployeeID

	if err := s.eventRepo.UpdateEvent(ctx, *e); err != nil {
		s.LogError(ctx, err, "failed to update event", slog.String("event_id", eventID))
		return nil, fmt.Errorf("failed to update event %s: %w", eventID, err)
	}
	return e, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID string, actor domain.Actor) error {
	e, err := s.eventRepo.FindEventByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to find event %s: %w", eventID, err)
	}
	if e.CreatedBy != actor.EmployeeID && !actor.Role.IsElevated() {
		return fmt.Errorf("only the organizer or an elevated role may delete: %w", apperrors.ErrForbidden)
	}

	if err := s.eventRepo.DeleteEvent(ctx, eventID); err != nil {
		s.LogError(ctx, err, "failed to delete event", slog.String("event_id", eventID))
		return fmt.Errorf("failed to delete event %s: %w", eventID, err)
	}
	return nil
}
