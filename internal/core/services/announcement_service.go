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

type announcementService struct {
	BaseService
	announcementRepo portsrepo.AnnouncementRepositoryFacade
}

// NewAnnouncementService creates the announcement service.
func NewAnnouncementService(announcementRepo portsrepo.AnnouncementRepositoryFacade) portssvc.AnnouncementSvcFacade {
	return &announcementService{announcementRepo: announcementRepo}
}

// canPost reports whether the actor may author announcements at all.
func canPost(actor domain.Actor) bool {
	return actor.Role.IsElevated() || actor.Role == domain.RoleManager || actor.Role == domain.RoleDepartmentHead
}

func (s *announcementService) CreateAnnouncement(ctx context.Context, actor domain.Actor, req dto.CreateAnnouncementRequest) (*domain.Announcement, error) {
	if !canPost(actor) {
		return nil, fmt.Errorf("actor %s may not post announcements: %w", actor.EmployeeID, apperrors.ErrForbidden)
	}
	// Department heads post to their own department only; company-wide posts need a
	// manager or elevated role.
	if actor.Role == domain.RoleDepartmentHead {
		if req.Department == nil || *req.Department != actor.Department {
			return nil, fmt.Errorf("department heads post to their own department: %w", apperrors.ErrForbidden)
		}
	}

	now := time.Now()
	a := domain.Announcement{
		AnnouncementID: uuid.NewString(),
		Title:          req.Title,
		Body:           req.Body,
		Department:     req.Department,
		Pinned:         req.Pinned,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.EmployeeID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.EmployeeID,
		},
	}
	if err := s.announcementRepo.SaveAnnouncement(ctx, a); err != nil {
		s.LogError(ctx, err, "failed to save announcement")
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}
	s.LogInfo(ctx, "announcement created", slog.String("announcement_id", a.AnnouncementID))
	return &a, nil
}

func (s *announcementService) GetAnnouncementByID(ctx context.Context, announcementID string, actor domain.Actor) (*domain.Announcement, error) {
	a, err := s.announcementRepo.FindAnnouncementByID(ctx, announcementID)
	if err != nil {
		return nil, fmt.Errorf("failed to find announcement %s: %w", announcementID, err)
	}
	if !domain.AnnouncementVisibleTo(a, actor) {
		return nil, fmt.Errorf("announcement %s is not in actor %s's audience: %w", announcementID, actor.EmployeeID, apperrors.ErrForbidden)
	}
	return a, nil
}

func (s *announcementService) ListAnnouncements(ctx context.Context, actor domain.Actor, params dto.ListAnnouncementsParams) ([]domain.Announcement, error) {
	announcements, err := s.announcementRepo.ListAnnouncementsForAudience(ctx, actor.Department, actor.Role.IsElevated(), params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	if announcements == nil {
		announcements = []domain.Announcement{}
	}
	return announcements, nil
}

func (s *announcementService) UpdateAnnouncement(ctx context.Context, announcementID string, actor domain.Actor, req dto.UpdateAnnouncementRequest) (*domain.Announcement, error) {
	a, err := s.announcementRepo.FindAnnouncementByID(ctx, announcementID)
	if err != nil {
		return nil, fmt.Errorf("failed to find announcement %s: %w", announcementID, err)
	}
	if a.CreatedBy != actor.EmployeeID && !actor.Role.IsElevated() {
		return nil, fmt.Errorf("only the author or an elevated role may edit: %w", apperrors.ErrForbidden)
	}

	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Body != nil {
		a.Body = *req.Body
	}
	if req.Pinned != nil {
		a.Pinned = *req.Pinned
	}
	a.LastUpdatedAt = time.Now()
	a.LastUpdatedBy = actor.EmployeeID

	if err := s.announcementRepo.UpdateAnnouncement(ctx, *a); err != nil {
		s.LogError(ctx, err, "failed to update announcement", slog.String("announcement_id", announcementID))
		return nil, fmt.Errorf("failed to update announcement %s: %w", announcementID, err)
	}
	return a, nil
}

func (s *announcementService) DeleteAnnouncement(ctx context.Context, announcementID string, actor domain.Actor) error {
	a, err := s.announcementRepo.FindAnnouncementByID(ctx, announcementID)
	if err != nil {
		return fmt.Errorf("failed to find announcement %s: %w", announcementID, err)
	}
	if a.CreatedBy != actor.EmployeeID && !actor.Role.IsElevated() {
		return fmt.Errorf("only the author or an elevated role may delete: %w", apperrors.ErrForbidden)
	}

	if err := s.announcementRepo.DeleteAnnouncement(ctx, announcementID); err != nil {
		s.LogError(ctx, err, "failed to delete announcement", slog.String("announcement_id", announcementID))
		return fmt.Errorf("failed to delete announcement %s: %w", announcementID, err)
	}
	s.LogInfo(ctx, "announcement deleted", slog.String("announcement_id", announcementID))
	return nil
}
