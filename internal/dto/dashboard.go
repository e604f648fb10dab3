package dto

// DashboardResponse is the role-scoped summary shown on the portal landing page.
// PendingApprovals counts purchase requests sitting at stages the caller is
// authorized to review.
type DashboardResponse struct {
	OpenTasks           int `json:"openTasks"`
	PendingApprovals    int `json:"pendingApprovals"`
	UpcomingEvents      int `json:"upcomingEvents"`
	ActiveAnnouncements int `json:"activeAnnouncements"`
}
