package repositories

import (
	"context"

	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DioceseReader defines read operations for the diocese ledger.
type DioceseReader interface {
	// FindDioceseTransactionByID retrieves a specific diocese ledger entry.
	FindDioceseTransactionByID(ctx context.Context, transactionID string) (*domain.DioceseTransaction, error)

	// FindDioceseTransactionsByAccountID retrieves every diocese entry owned by
	// an account. Used by balance derivation; no pagination.
	FindDioceseTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.DioceseTransaction, error)

	// ListDioceseTransactions retrieves a paginated list of diocese entries for
	// an account using token-based pagination.
	ListDioceseTransactions(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.DioceseTransaction, *string, error)
}

// DioceseWriter defines the atomic write paths of the diocese ledger.
type DioceseWriter interface {
	// SaveDioceseTransaction inserts a plain debit/credit diocese entry and
	// applies its balance delta atomically.
	SaveDioceseTransaction(ctx context.Context, txn domain.DioceseTransaction, balanceChanges map[string]decimal.Decimal) (map[string]decimal.Decimal, error)

	// SaveDioceseContra inserts the two mirrored diocese entries, the spawned
	// pastorate-ledger mirror transaction, and the pair link, applying all
	// three balance deltas in one database transaction.
	SaveDioceseContra(ctx context.Context, debit, credit domain.DioceseTransaction, mirror domain.Transaction, link domain.PairLink, balanceChanges map[string]decimal.Decimal) (map[string]decimal.Decimal, error)
}

// DioceseRepositoryFacade combines the diocese ledger repository interfaces.
type DioceseRepositoryFacade interface {
	DioceseReader
	DioceseWriter
}
