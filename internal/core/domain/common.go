package domain

import "time"

// AuditFields holds standard audit information for domain entities. The user
// IDs are the subjects of tokens issued by the diocese identity service.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
