package models

import "time"

// PairLink is the persisted link between the two sides of a contra/intra pair.
type PairLink struct {
	DebitEntryID        string    `db:"debit_entry_id"`
	CreditEntryID       string    `db:"credit_entry_id"`
	Ledger              string    `db:"ledger"` // pastorate | diocese
	MirrorTransactionID string    `db:"mirror_transaction_id"`
	CreatedAt           time.Time `db:"created_at"`
}
