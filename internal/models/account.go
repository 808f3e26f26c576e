package models

import "github.com/shopspring/decimal"

// AccountType is the persisted shape of an account type lookup row.
type AccountType struct {
	AccountTypeID string `db:"account_type_id"`
	Name          string `db:"name"`
	Description   string `db:"description"`
}

// Account is the persisted shape of a ledger account.
// PastorateID/ChurchID are nullable in the DB; string zero value means unset.
type Account struct {
	AccountID     string          `db:"account_id"`
	Name          string          `db:"name"`
	AccountTypeID string          `db:"account_type_id"`
	AccountNumber string          `db:"account_number"` // unique
	Description   string          `db:"description"`
	Level         string          `db:"level"`
	PastorateID   string          `db:"pastorate_id"`
	ChurchID      string          `db:"church_id"`
	Balance       decimal.Decimal `db:"balance"` // NUMERIC(12,2)
	IsActive      bool            `db:"is_active"`
	AuditFields
}
