package services

import (
	"context"

	"github.com/sgoap/sgoap-backend/internal/core/domain"
	"github.com/sgoap/sgoap-backend/internal/dto"
)

// DashboardSvcFacade defines the interface for the portal landing page summary.
type DashboardSvcFacade interface {
	// GetSummary aggregates the actor's open tasks, reviewable purchase requests,
	// upcoming events and current announcements.
	GetSummary(ctx context.Context, actor domain.Actor) (*dto.DashboardResponse, error)
}
