package domain

// Announcement is a company-wide or department-scoped post. A nil/empty Department
// means the announcement is visible to everyone.
type Announcement struct {
	AnnouncementID string  `json:"announcementID"`
	Title          string  `json:"title"`
	Body           string  `json:"body"`
	Department     *string `json:"department,omitempty"`
	Pinned         bool    `json:"pinned"`
	AuditFields
}

// AnnouncementVisibleTo reports whether the announcement is in the viewer's audience.
func AnnouncementVisibleTo(a *Announcement, viewer Actor) bool {
	if a.Department == nil || *a.Department == "" {
		return true
	}
	return viewer.Role.IsElevated() || *a.Department == viewer.Department
}
