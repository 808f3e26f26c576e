package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the persisted shape of a pastorate/church ledger entry.
// ToAccountID/FromAccountID are nullable and only populated on paired types.
type Transaction struct {
	TransactionID       string          `db:"transaction_id"`
	AccountID           string          `db:"account_id"`
	ToAccountID         string          `db:"to_account_id"`
	FromAccountID       string          `db:"from_account_id"`
	Type                string          `db:"transaction_type"`
	Amount              decimal.Decimal `db:"amount"` // NUMERIC(12,2), > 0
	Date                time.Time       `db:"transaction_date"`
	Description         string          `db:"description"`
	ReferenceNumber     string          `db:"reference_number"` // unique per entry pair side
	PrimaryCategoryID   string          `db:"primary_category_id"`
	SecondaryCategoryID string          `db:"secondary_category_id"`
	FamilyName          string          `db:"family_name"`
	MemberName          string          `db:"member_name"`
	ChurchID            string          `db:"church_id"`
	AuditFields
}

// TransactionHistory is the persisted shape of an edit snapshot. Rows are
// insert-only.
type TransactionHistory struct {
	HistoryID       string          `db:"history_id"`
	TransactionID   string          `db:"transaction_id"`
	Amount          decimal.Decimal `db:"amount"`
	Description     string          `db:"description"`
	Type            string          `db:"transaction_type"`
	Date            time.Time       `db:"transaction_date"`
	ReferenceNumber string          `db:"reference_number"`
	ModifiedAt      time.Time       `db:"modified_at"`
	ModifiedBy      string          `db:"modified_by"`
}
