package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sgoap/sgoap-backend/internal/core/domain"
	portsrepo "github.com/sgoap/sgoap-backend/internal/core/ports/repositories"
	portssvc "github.com/sgoap/sgoap-backend/internal/core/ports/services"
	"github.com/sgoap/sgoap-backend/internal/dto"
)

type dashboardService struct {
	BaseService
	taskRepo         portsrepo.TaskRepositoryFacade
	requestRepo      portsrepo.PurchaseRequestRepositoryFacade
	eventRepo        portsrepo.EventRepositoryFacade
	announcementRepo portsrepo.AnnouncementRepositoryFacade
}

// NewDashboardService creates the landing page summary service.
func NewDashboardService(
	taskRepo portsrepo.TaskRepositoryFacade,
	requestRepo portsrepo.PurchaseRequestRepositoryFacade,
	eventRepo portsrepo.EventRepositoryFacade,
	announcementRepo portsrepo.AnnouncementRepositoryFacade,
) portssvc.DashboardSvcFacade {
	return &dashboardService{
		taskRepo:         taskRepo,
		requestRepo:      requestRepo,
		eventRepo:        eventRepo,
		announcementRepo: announcementRepo,
	}
}

func (s *dashboardService) GetSummary(ctx context.Context, actor domain.Actor) (*dto.DashboardResponse, error) {
	openTasks, err := s.taskRepo.CountOpenTasksByAssignee(ctx, actor.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to count open tasks: %w", err)
	}

	// Approvals pending the actor: requests sitting at stages the actor's
	// department or role may review.
	pendingApprovals := 0
	if stages := domain.ReviewableStages(actor); len(stages) > 0 {
		pendingApprovals, err = s.requestRepo.CountRequestsByStatuses(ctx, stages)
		if err != nil {
			return nil, fmt.Errorf("failed to count reviewable requests: %w", err)
		}
	}

	includeAll := actor.Role.IsElevated()
	upcomingEvents, err := s.eventRepo.CountUpcomingEvents(ctx, actor.Department, includeAll, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to count upcoming events: %w", err)
	}

	activeAnnouncements, err := s.announcementRepo.CountAnnouncementsForAudience(ctx, actor.Department, includeAll)
	if err != nil {
		return nil, fmt.Errorf("failed to count announcements: %w", err)
	}

	return &dto.DashboardResponse{
		OpenTasks:           openTasks,
		PendingApprovals:    pendingApprovals,
		UpcomingEvents:      upcomingEvents,
		ActiveAnnouncements: activeAnnouncements,
	}, nil
}
