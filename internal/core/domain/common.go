package domain

import "time"

// AuditFields holds standard timestamp information for domain entities.
// Accounts are self-service, so there is no separate operator identity to record.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
