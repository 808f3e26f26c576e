package models

// PrimaryCategory is the persisted shape of a top-level transaction category.
type PrimaryCategory struct {
	CategoryID  string `db:"category_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Direction   string `db:"direction"` // credit | debit
	IsActive    bool   `db:"is_active"`
	AuditFields
}

// SecondaryCategory is the persisted shape of a second-level category.
type SecondaryCategory struct {
	CategoryID        string `db:"category_id"`
	Name              string `db:"name"`
	Description       string `db:"description"`
	PrimaryCategoryID string `db:"primary_category_id"`
	IsActive          bool   `db:"is_active"`
	AuditFields
}
