package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DioceseTransaction is the persisted shape of a diocese ledger entry.
type DioceseTransaction struct {
	TransactionID   string          `db:"transaction_id"`
	AccountID       string          `db:"account_id"`
	CategoryID      string          `db:"category_id"`
	Type            string          `db:"transaction_type"` // debit | credit
	Amount          decimal.Decimal `db:"amount"`
	Description     string          `db:"description"`
	Date            time.Time       `db:"transaction_date"`
	ReferenceNumber string          `db:"reference_number"`
	IsContra        bool            `db:"is_contra"`
	ContraAccountID string          `db:"contra_account_id"`
	AuditFields
}
