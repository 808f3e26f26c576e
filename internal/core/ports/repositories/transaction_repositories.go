package repositories

import (
	"context"

	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for pastorate/church ledger data.
type TransactionReader interface {
	// FindTransactionByID retrieves a specific ledger entry.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionsByAccountID retrieves every entry owned by an account.
	// Used by balance derivation; no pagination.
	FindTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error)

	// ListTransactionsByAccount retrieves a paginated list of entries for an
	// account, optionally filtered by type, using token-based pagination.
	ListTransactionsByAccount(ctx context.Context, accountID string, txnType *domain.TransactionType, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// FindPairedTransactions retrieves every contra/intra-type entry ordered by
	// (date, reference_number, transaction_id). Used by the consistency checker.
	FindPairedTransactions(ctx context.Context) ([]domain.Transaction, error)

	// FindHistoryByTransactionID retrieves the edit snapshots of an entry,
	// newest first.
	FindHistoryByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionHistory, error)
}

// TransactionWriter defines the atomic write paths of the pastorate/church
// ledger. Every method commits the entry write, its balance deltas, and any
// history snapshot in one database transaction, and returns the resulting
// balances of the touched accounts.
type TransactionWriter interface {
	// SaveTransaction inserts a single non-paired entry and applies its balance
	// delta.
	SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) (map[string]decimal.Decimal, error)

	// UpdateTransaction snapshots the entry's prior values to history, writes
	// the new values, and applies the reverse+reapply balance deltas.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, history domain.TransactionHistory, balanceChanges map[string]decimal.Decimal) (map[string]decimal.Decimal, error)

	// DeleteTransaction removes a single non-paired entry and reverses its
	// balance delta.
	DeleteTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal) (map[string]decimal.Decimal, error)
}

// PairReader defines read operations for pair links.
type PairReader interface {
	// FindPairLinkByDebitID retrieves the link whose debit side is the given
	// entry. Returns apperrors.ErrNotFound when no link exists.
	FindPairLinkByDebitID(ctx context.Context, debitEntryID string) (*domain.PairLink, error)

	// ListMirrorTransactionIDs returns the IDs of every pastorate transaction
	// spawned by a cross-ledger diocese pair. The consistency checker uses
	// this set to tell legitimate mirrors from orphaned pair sides.
	ListMirrorTransactionIDs(ctx context.Context) (map[string]bool, error)
}

// PairWriter defines the atomic write paths of the pairing engine. Both sides
// of a pair, the link row, and all balance deltas commit together or not at
// all.
type PairWriter interface {
	// SavePair inserts the debit and credit entries plus their link.
	SavePair(ctx context.Context, debit, credit domain.Transaction, link domain.PairLink, balanceChanges map[string]decimal.Decimal) (map[string]decimal.Decimal, error)

	// UpdatePair snapshots both sides to history, updates both rows, and
	// applies the reverse+reapply balance deltas.
	UpdatePair(ctx context.Context, debit, credit domain.Transaction, histories []domain.TransactionHistory, balanceChanges map[string]decimal.Decimal) (map[string]decimal.Decimal, error)

	// DeletePair removes both entries and the link, reversing both deltas.
	DeletePair(ctx context.Context, link domain.PairLink, balanceChanges map[string]decimal.Decimal) (map[string]decimal.Decimal, error)
}

// TransactionRepositoryFacade combines the ledger's repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	PairReader
	PairWriter
}
