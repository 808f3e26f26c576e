package services

import (
	"context"

	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
	"github.com/parish-dms/parish_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade defines the transaction log operations plus the balance
// derivation engine. All writes run as one atomic unit with their balance
// updates; cached balances are mutated only here, never by callers.
type LedgerSvcFacade interface {
	// CreateTransaction appends a non-paired entry and applies its balance delta.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*dto.TransactionResult, error)

	// EditTransaction snapshots the entry to history, then reverses the old
	// balance delta and applies the new one, all atomically.
	EditTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*dto.TransactionResult, error)

	// DeleteTransaction removes a non-paired entry and reverses its delta.
	// Paired entries are refused; they go through the pairing engine.
	DeleteTransaction(ctx context.Context, transactionID string, userID string) error

	// GetTransaction retrieves a single entry.
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccount retrieves a page of entries for an account.
	ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// ListTransactionHistory retrieves the edit snapshots of an entry.
	ListTransactionHistory(ctx context.Context, transactionID string) ([]domain.TransactionHistory, error)

	// ComputeBalance derives an account's balance from its stored rows (both
	// ledgers for diocese-linked accounts), independent of the cached value.
	ComputeBalance(ctx context.Context, accountID string) (decimal.Decimal, error)

	// ReconcileAll recomputes every account's balance from scratch, overwrites
	// the cache, and reports the diffs. Each account repairs in its own short
	// transaction; one failure does not abort the rest.
	ReconcileAll(ctx context.Context, userID string) (*domain.RepairReport, error)
}
