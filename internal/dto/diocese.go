package dto

import (
	"time"

	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDioceseTransactionRequest defines a plain (non-contra) diocese entry.
type CreateDioceseTransactionRequest struct {
	AccountID       string                  `json:"accountID" binding:"required"`
	Type            domain.DioceseEntryType `json:"type" binding:"required,oneof=debit credit"`
	Amount          decimal.Decimal         `json:"amount" binding:"required,positivedecimal"`
	Date            time.Time               `json:"date" binding:"required"`
	Description     string                  `json:"description"`
	CategoryID      string                  `json:"categoryID"`
	ReferenceNumber string                  `json:"referenceNumber"` // generated when empty
}

// DioceseTransactionResponse defines the data returned for a diocese entry.
type DioceseTransactionResponse struct {
	TransactionID   string                  `json:"transactionID"`
	AccountID       string                  `json:"accountID"`
	CategoryID      string                  `json:"categoryID,omitempty"`
	Type            domain.DioceseEntryType `json:"type"`
	Amount          decimal.Decimal         `json:"amount"`
	Description     string                  `json:"description"`
	Date            time.Time               `json:"date"`
	ReferenceNumber string                  `json:"referenceNumber"`
	IsContra        bool                    `json:"isContra"`
	ContraAccountID string                  `json:"contraAccountID,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	CreatedBy       string                  `json:"createdBy"`
}

// DioceseTransactionResult is the outcome of a diocese ledger write.
type DioceseTransactionResult struct {
	Transaction DioceseTransactionResponse `json:"transaction"`
	Warnings    []string                   `json:"warnings,omitempty"`
}

// ListDioceseTransactionsResponse is a page of diocese entries.
type ListDioceseTransactionsResponse struct {
	Transactions []DioceseTransactionResponse `json:"transactions"`
	NextToken    *string                      `json:"nextToken,omitempty"`
}

// ToDioceseTransactionResponse converts a domain diocese entry to its DTO.
func ToDioceseTransactionResponse(txn *domain.DioceseTransaction) DioceseTransactionResponse {
	return DioceseTransactionResponse{
		TransactionID:   txn.TransactionID,
		AccountID:       txn.AccountID,
		CategoryID:      txn.CategoryID,
		Type:            txn.Type,
		Amount:          txn.Amount,
		Description:     txn.Description,
		Date:            txn.Date,
		ReferenceNumber: txn.ReferenceNumber,
		IsContra:        txn.IsContra,
		ContraAccountID: txn.ContraAccountID,
		CreatedAt:       txn.CreatedAt,
		CreatedBy:       txn.CreatedBy,
	}
}

// ToDioceseTransactionResponses converts a slice of domain diocese entries.
func ToDioceseTransactionResponses(txns []domain.DioceseTransaction) []DioceseTransactionResponse {
	responses := make([]DioceseTransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToDioceseTransactionResponse(&txn)
	}
	return responses
}
