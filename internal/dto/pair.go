package dto

import (
	"time"

	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePairRequest defines the data needed to create a linked contra/intra
// pair: a debit entry on the source account and a credit entry on the
// destination account sharing one reference number.
type CreatePairRequest struct {
	Kind            domain.PairKind `json:"kind" binding:"required,oneof=contra intra"`
	SourceAccountID string          `json:"sourceAccountID" binding:"required"`
	DestAccountID   string          `json:"destAccountID" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required,positivedecimal"`
	Date            time.Time       `json:"date" binding:"required"`
	Description     string          `json:"description"`
	ReferenceNumber string          `json:"referenceNumber"` // generated when empty
}

// UpdatePairRequest defines the editable fields of a pair. The account
// relationship and direction of a pair are fixed; only amount, date,
// description and category may change.
type UpdatePairRequest struct {
	Amount              *decimal.Decimal `json:"amount"`
	Date                *time.Time       `json:"date"`
	Description         *string          `json:"description"`
	PrimaryCategoryID   *string          `json:"primaryCategoryID"`
	SecondaryCategoryID *string          `json:"secondaryCategoryID"`
}

// PairResponse is the two sides of a linked pair.
type PairResponse struct {
	Debit  TransactionResponse `json:"debit"`
	Credit TransactionResponse `json:"credit"`
}

// PairResult is the outcome of a pairing engine write.
type PairResult struct {
	Debit    TransactionResponse `json:"debit"`
	Credit   TransactionResponse `json:"credit"`
	Warnings []string            `json:"warnings,omitempty"`
}

// CreateDioceseContraRequest defines the data for a cross-ledger contra: two
// mirrored diocese entries plus a spawned transaction on the counterpart
// pastorate account.
type CreateDioceseContraRequest struct {
	DioceseAccountID   string `json:"dioceseAccountID" binding:"required"`
	PastorateAccountID string `json:"pastorateAccountID" binding:"required"`
	// Direction of the diocese side: debit moves funds out of the diocese
	// account into the pastorate account, credit the reverse.
	Type            domain.DioceseEntryType `json:"type" binding:"required,oneof=debit credit"`
	Amount          decimal.Decimal         `json:"amount" binding:"required,positivedecimal"`
	Date            time.Time               `json:"date" binding:"required"`
	Description     string                  `json:"description"`
	CategoryID      string                  `json:"categoryID"`
	ReferenceNumber string                  `json:"referenceNumber"` // generated when empty
}

// DioceseContraResult is the outcome of a cross-ledger contra write.
type DioceseContraResult struct {
	Debit    DioceseTransactionResponse `json:"debit"`
	Credit   DioceseTransactionResponse `json:"credit"`
	Mirror   TransactionResponse        `json:"mirror"`
	Warnings []string                   `json:"warnings,omitempty"`
}
