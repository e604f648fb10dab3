package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Employee           EmployeeSvcFacade
	PurchaseRequest    PurchaseRequestSvcFacade
	Task               TaskSvcFacade
	Leave              LeaveSvcFacade
	Announcement       AnnouncementSvcFacade
	Event              EventSvcFacade
	Vendor             VendorSvcFacade
	Dashboard          DashboardSvcFacade
	TokenService       TokenSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
}
