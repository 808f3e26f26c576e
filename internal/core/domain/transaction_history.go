package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionHistory is an immutable snapshot of a transaction's field values
// taken just before an edit. Snapshots are never mutated and never deleted;
// they exist for audit.
type TransactionHistory struct {
	HistoryID       string          `json:"historyID"`
	TransactionID   string          `json:"transactionID"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	Type            TransactionType `json:"type"`
	Date            time.Time       `json:"date"`
	ReferenceNumber string          `json:"referenceNumber"`
	ModifiedAt      time.Time       `json:"modifiedAt"`
	ModifiedBy      string          `json:"modifiedBy"`
}

// Snapshot captures the current state of txn as a history row.
func Snapshot(txn Transaction, modifiedBy string, now time.Time) TransactionHistory {
	return TransactionHistory{
		TransactionID:   txn.TransactionID,
		Amount:          txn.Amount,
		Description:     txn.Description,
		Type:            txn.Type,
		Date:            txn.Date,
		ReferenceNumber: txn.ReferenceNumber,
		ModifiedAt:      now,
		ModifiedBy:      modifiedBy,
	}
}
