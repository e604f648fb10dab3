package domain

import "time"

// ReviewAction is the decision a reviewer takes at a stage.
type ReviewAction string

const (
	ActionApproved         ReviewAction = "approved"
	ActionRejected         ReviewAction = "rejected"
	ActionRequestedChanges ReviewAction = "requested_changes"
)

// IsValid reports whether the action is one of the defined review actions.
func (a ReviewAction) IsValid() bool {
	return a == ActionApproved || a == ActionRejected || a == ActionRequestedChanges
}

// WorkflowLogEntry is one append-only audit record of a review action taken against
// a purchase request. Stage is the status the request held when the action was taken.
// The log is the sole audit trail; entries are never updated or deleted.
type WorkflowLogEntry struct {
	LogID      string        `json:"logID"`
	RequestID  string        `json:"requestID"`
	ReviewerID string        `json:"reviewerID"`
	Stage      RequestStatus `json:"stage"`
	Action     ReviewAction  `json:"action"`
	Comments   string        `json:"comments,omitempty"`
	ReviewedAt time.Time     `json:"reviewedAt"`
}
