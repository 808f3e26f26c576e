package domain

import "time"

// PairLedger identifies which transaction schema a pair link's entries live in.
type PairLedger string

const (
	PastorateLedger PairLedger = "pastorate"
	DioceseLedger   PairLedger = "diocese"
)

// PairLink is the explicit link between the two sides of a contra/intra pair.
// It replaces matching by (amount, date, account): lookups are O(1) and stay
// unambiguous when several pairs share amount and date. A link is created
// atomically with both entries and deleted atomically with them.
//
// For diocese cross-ledger pairs, MirrorTransactionID records the regular
// Transaction spawned on the counterpart pastorate account.
type PairLink struct {
	DebitEntryID        string     `json:"debitEntryID"`
	CreditEntryID       string     `json:"creditEntryID"`
	Ledger              PairLedger `json:"ledger"`
	MirrorTransactionID string     `json:"mirrorTransactionID,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
}
