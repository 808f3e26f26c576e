package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DioceseEntryType is the diocese ledger's two-valued type.
type DioceseEntryType string

const (
	DioceseDebit  DioceseEntryType = "debit"
	DioceseCredit DioceseEntryType = "credit"
)

// IsValid reports whether t is debit or credit.
func (t DioceseEntryType) IsValid() bool {
	return t == DioceseDebit || t == DioceseCredit
}

// IsCredit reports whether t increases the owning account's balance.
func (t DioceseEntryType) IsCredit() bool {
	return t == DioceseCredit
}

// Opposite returns the mirror type.
func (t DioceseEntryType) Opposite() DioceseEntryType {
	if t == DioceseCredit {
		return DioceseDebit
	}
	return DioceseCredit
}

// DioceseTransaction is a row in the diocese ledger, a schema parallel to the
// pastorate/church ledger. When IsContra is set, the row and its mirror form a
// cross-ledger pair that also spawns a regular Transaction on the counterpart
// pastorate account.
type DioceseTransaction struct {
	TransactionID   string           `json:"transactionID"`
	AccountID       string           `json:"accountID"`
	CategoryID      string           `json:"categoryID,omitempty"`
	Type            DioceseEntryType `json:"type"`
	Amount          decimal.Decimal  `json:"amount"` // always positive
	Description     string           `json:"description"`
	Date            time.Time        `json:"date"`
	ReferenceNumber string           `json:"referenceNumber"`
	IsContra        bool             `json:"isContra"`
	ContraAccountID string           `json:"contraAccountID,omitempty"`
	AuditFields
}
