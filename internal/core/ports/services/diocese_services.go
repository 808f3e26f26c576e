package services

import (
	"context"

	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
	"github.com/parish-dms/parish_ledger_app/internal/dto"
)

// DioceseSvcFacade defines the diocese ledger's plain (non-contra) operations.
// Cross-ledger contra pairs are owned by the pairing engine.
type DioceseSvcFacade interface {
	// CreateDioceseTransaction appends a plain debit/credit diocese entry and
	// applies its balance delta atomically.
	CreateDioceseTransaction(ctx context.Context, req dto.CreateDioceseTransactionRequest, creatorUserID string) (*dto.DioceseTransactionResult, error)

	// GetDioceseTransaction retrieves a single diocese entry.
	GetDioceseTransaction(ctx context.Context, transactionID string) (*domain.DioceseTransaction, error)

	// ListDioceseTransactions retrieves a page of diocese entries for an account.
	ListDioceseTransactions(ctx context.Context, accountID string, limit int, nextToken *string) (*dto.ListDioceseTransactionsResponse, error)
}
