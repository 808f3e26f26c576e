package domain

// CategoryDirection tells whether a primary category groups credit or debit entries.
type CategoryDirection string

const (
	CreditCategory CategoryDirection = "credit"
	DebitCategory  CategoryDirection = "debit"
)

// PrimaryCategory is a top-level transaction grouping (Income, Expense, ...).
type PrimaryCategory struct {
	CategoryID  string            `json:"categoryID"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Direction   CategoryDirection `json:"direction"`
	IsActive    bool              `json:"isActive"`
	AuditFields
}

// SecondaryCategory refines a primary category (Receipts, Bills, ...).
type SecondaryCategory struct {
	CategoryID        string `json:"categoryID"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	PrimaryCategoryID string `json:"primaryCategoryID"`
	IsActive          bool   `json:"isActive"`
	AuditFields
}
