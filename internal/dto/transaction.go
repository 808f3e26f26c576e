package dto

import (
	"time"

	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to create a non-paired
// ledger entry. Paired (contra/intra) entries go through the pairing engine.
type CreateTransactionRequest struct {
	AccountID           string                 `json:"accountID" binding:"required"`
	Type                domain.TransactionType `json:"type" binding:"required,oneof=receipt bill aqudence offering custom_debit custom_credit"`
	Amount              decimal.Decimal        `json:"amount" binding:"required,positivedecimal"`
	Date                time.Time              `json:"date" binding:"required"`
	Description         string                 `json:"description"`
	ReferenceNumber     string                 `json:"referenceNumber"` // generated when empty
	PrimaryCategoryID   string                 `json:"primaryCategoryID"`
	SecondaryCategoryID string                 `json:"secondaryCategoryID"`
	FamilyName          string                 `json:"familyName"`
	MemberName          string                 `json:"memberName"`
	ChurchID            string                 `json:"churchID"`
}

// UpdateTransactionRequest defines the editable fields of a ledger entry.
// Account and type are fixed after creation.
type UpdateTransactionRequest struct {
	Amount              *decimal.Decimal `json:"amount"`
	Date                *time.Time       `json:"date"`
	Description         *string          `json:"description"`
	PrimaryCategoryID   *string          `json:"primaryCategoryID"`
	SecondaryCategoryID *string          `json:"secondaryCategoryID"`
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID       string                 `json:"transactionID"`
	AccountID           string                 `json:"accountID"`
	ToAccountID         string                 `json:"toAccountID,omitempty"`
	FromAccountID       string                 `json:"fromAccountID,omitempty"`
	Type                domain.TransactionType `json:"type"`
	Amount              decimal.Decimal        `json:"amount"`
	Date                time.Time              `json:"date"`
	Description         string                 `json:"description"`
	ReferenceNumber     string                 `json:"referenceNumber"`
	PrimaryCategoryID   string                 `json:"primaryCategoryID,omitempty"`
	SecondaryCategoryID string                 `json:"secondaryCategoryID,omitempty"`
	FamilyName          string                 `json:"familyName,omitempty"`
	MemberName          string                 `json:"memberName,omitempty"`
	ChurchID            string                 `json:"churchID,omitempty"`
	CreatedAt           time.Time              `json:"createdAt"`
	CreatedBy           string                 `json:"createdBy"`
}

// TransactionResult is the outcome of a ledger write: the affected entry plus
// any overdraw warnings for accounts left negative by the operation.
type TransactionResult struct {
	Transaction TransactionResponse `json:"transaction"`
	Warnings    []string            `json:"warnings,omitempty"`
}

// TransactionHistoryResponse defines the data returned for an edit snapshot.
type TransactionHistoryResponse struct {
	HistoryID       string                 `json:"historyID"`
	TransactionID   string                 `json:"transactionID"`
	Amount          decimal.Decimal        `json:"amount"`
	Description     string                 `json:"description"`
	Type            domain.TransactionType `json:"type"`
	Date            time.Time              `json:"date"`
	ReferenceNumber string                 `json:"referenceNumber"`
	ModifiedAt      time.Time              `json:"modifiedAt"`
	ModifiedBy      string                 `json:"modifiedBy"`
}

// ListTransactionsParams defines the query parameters for listing entries.
type ListTransactionsParams struct {
	Type      *domain.TransactionType `form:"type"`
	Limit     int                     `form:"limit,default=25"`
	NextToken *string                 `form:"nextToken"`
}

// ListTransactionsResponse is a page of ledger entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:       txn.TransactionID,
		AccountID:           txn.AccountID,
		ToAccountID:         txn.ToAccountID,
		FromAccountID:       txn.FromAccountID,
		Type:                txn.Type,
		Amount:              txn.Amount,
		Date:                txn.Date,
		Description:         txn.Description,
		ReferenceNumber:     txn.ReferenceNumber,
		PrimaryCategoryID:   txn.PrimaryCategoryID,
		SecondaryCategoryID: txn.SecondaryCategoryID,
		FamilyName:          txn.FamilyName,
		MemberName:          txn.MemberName,
		ChurchID:            txn.ChurchID,
		CreatedAt:           txn.CreatedAt,
		CreatedBy:           txn.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}

// ToTransactionHistoryResponse converts a domain snapshot to its response DTO.
func ToTransactionHistoryResponse(h *domain.TransactionHistory) TransactionHistoryResponse {
	return TransactionHistoryResponse{
		HistoryID:       h.HistoryID,
		TransactionID:   h.TransactionID,
		Amount:          h.Amount,
		Description:     h.Description,
		Type:            h.Type,
		Date:            h.Date,
		ReferenceNumber: h.ReferenceNumber,
		ModifiedAt:      h.ModifiedAt,
		ModifiedBy:      h.ModifiedBy,
	}
}
