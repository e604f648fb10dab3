package services

import (
	portsrepo "github.com/sgoap/sgoap-backend/internal/core/ports/repositories"
	portssvc "github.com/sgoap/sgoap-backend/internal/core/ports/services"
	"github.com/sgoap/sgoap-backend/internal/platform/config"
	"github.com/sgoap/sgoap-backend/internal/platform/mailer"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, m mailer.Mailer) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Employee = NewEmployeeService(repos.EmployeeRepo, m)
	container.PurchaseRequest = NewPurchaseRequestService(repos.PurchaseRequestRepo)
	container.Task = NewTaskService(repos.TaskRepo, repos.EmployeeRepo)
	container.Leave = NewLeaveService(repos.LeaveRepo)
	container.Announcement = NewAnnouncementService(repos.AnnouncementRepo)
	container.Event = NewEventService(repos.EventRepo)
	container.Vendor = NewVendorService(repos.VendorRepo)
	container.Dashboard = NewDashboardService(repos.TaskRepo, repos.PurchaseRequestRepo, repos.EventRepo, repos.AnnouncementRepo)

	container.TokenService = NewTokenService(cfg)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}

// Compile-time checks that the implementations satisfy their facades.
var (
	_ portssvc.EmployeeSvcFacade        = (*employeeService)(nil)
	_ portssvc.PurchaseRequestSvcFacade = (*purchaseRequestService)(nil)
	_ portssvc.TaskSvcFacade            = (*taskService)(nil)
	_ portssvc.LeaveSvcFacade           = (*leaveService)(nil)
	_ portssvc.AnnouncementSvcFacade    = (*announcementService)(nil)
	_ portssvc.EventSvcFacade           = (*eventService)(nil)
	_ portssvc.VendorSvcFacade          = (*vendorService)(nil)
	_ portssvc.DashboardSvcFacade       = (*dashboardService)(nil)
)
