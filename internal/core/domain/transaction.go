package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the closed set of pastorate/church ledger entry types.
// Every type maps to exactly one sign: credit-like types increase the owning
// account, debit-like types decrease it.
type TransactionType string

const (
	Receipt      TransactionType = "receipt"
	Bill         TransactionType = "bill"
	Aqudence     TransactionType = "aqudence"
	Offering     TransactionType = "offering"
	CustomDebit  TransactionType = "custom_debit"
	CustomCredit TransactionType = "custom_credit"
	ContraDebit  TransactionType = "contra_debit"
	ContraCredit TransactionType = "contra_credit"
	IntraDebit   TransactionType = "intra_debit"
	IntraCredit  TransactionType = "intra_credit"
)

// creditTypes is the fixed sign table's credit side; everything else in the
// closed set is a debit.
var creditTypes = map[TransactionType]bool{
	Receipt:      true,
	Offering:     true,
	CustomCredit: true,
	ContraCredit: true,
	IntraCredit:  true,
}

var validTypes = map[TransactionType]bool{
	Receipt: true, Bill: true, Aqudence: true, Offering: true,
	CustomDebit: true, CustomCredit: true,
	ContraDebit: true, ContraCredit: true,
	IntraDebit: true, IntraCredit: true,
}

// IsValid reports whether t belongs to the closed set of transaction types.
func (t TransactionType) IsValid() bool {
	return validTypes[t]
}

// IsCredit reports whether t increases the owning account's balance.
func (t TransactionType) IsCredit() bool {
	return creditTypes[t]
}

// IsPaired reports whether t is one side of a linked contra/intra pair.
func (t TransactionType) IsPaired() bool {
	switch t {
	case ContraDebit, ContraCredit, IntraDebit, IntraCredit:
		return true
	}
	return false
}

// PairKind distinguishes contra entries from intra transfers.
type PairKind string

const (
	ContraPair PairKind = "contra"
	IntraPair  PairKind = "intra"
)

// EntryTypes returns the (debit, credit) transaction types for the pair kind.
func (k PairKind) EntryTypes() (TransactionType, TransactionType) {
	if k == IntraPair {
		return IntraDebit, IntraCredit
	}
	return ContraDebit, ContraCredit
}

// Transaction is a signed financial event against a pastorate/church account.
// ToAccountID is set only on contra_debit/intra_debit entries, FromAccountID
// only on contra_credit/intra_credit entries.
type Transaction struct {
	TransactionID       string          `json:"transactionID"`
	AccountID           string          `json:"accountID"`
	ToAccountID         string          `json:"toAccountID,omitempty"`
	FromAccountID       string          `json:"fromAccountID,omitempty"`
	Type                TransactionType `json:"type"`
	Amount              decimal.Decimal `json:"amount"` // always positive
	Date                time.Time       `json:"date"`
	Description         string          `json:"description"`
	ReferenceNumber     string          `json:"referenceNumber"`
	PrimaryCategoryID   string          `json:"primaryCategoryID,omitempty"`
	SecondaryCategoryID string          `json:"secondaryCategoryID,omitempty"`
	FamilyName          string          `json:"familyName,omitempty"` // receipts only
	MemberName          string          `json:"memberName,omitempty"` // receipts only
	ChurchID            string          `json:"churchID,omitempty"`   // offerings only
	AuditFields
}
