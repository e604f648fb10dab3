package domain

import "time"

// Event is a calendar entry, optionally scoped to one department.
type Event struct {
	EventID    string    `json:"eventID"`
	Title      string    `json:"title"`
	Details    string    `json:"details"`
	Location   string    `json:"location"`
	Department *string   `json:"department,omitempty"`
	StartsAt   time.Time `json:"startsAt"`
	EndsAt     time.Time `json:"endsAt"`
	AuditFields
}
