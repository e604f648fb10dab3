package domain

import "time"

// AuditFields records who created and last touched an entity. CreatedBy and
// LastUpdatedBy hold employee IDs.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
