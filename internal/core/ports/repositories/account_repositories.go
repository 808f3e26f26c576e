package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts for an owner (pastorate or church), or all
	// accounts when ownerID is empty.
	ListAccounts(ctx context.Context, level domain.AccountLevel, ownerID string, limit int, offset int) ([]domain.Account, error)

	// ListAccountIDs returns the IDs of every account. Used by reconciliation.
	ListAccountIDs(ctx context.Context) ([]string, error)

	// FindAccountTypeByID retrieves an account type lookup row.
	FindAccountTypeByID(ctx context.Context, accountTypeID string) (*domain.AccountType, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount inserts a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an account's descriptive fields (never its balance).
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error

	// EnsureAccountType finds an account type by name or creates it.
	EnsureAccountType(ctx context.Context, name, description string) (*domain.AccountType, error)

	// RecalculateBalance recomputes one account's cached balance from its
	// transaction log inside a short independent database transaction and
	// overwrites the cache. It returns the repair diff, or nil when the cached
	// value was already correct.
	RecalculateBalance(ctx context.Context, accountID string, userID string, now time.Time) (*domain.BalanceRepair, error)
}

// AccountBalancer defines the in-transaction balance primitives shared by every
// ledger-mutating write path.
type AccountBalancer interface {
	// FindAccountsByIDsForUpdate locks the account rows (SELECT ... FOR UPDATE)
	// and returns them keyed by ID. Callers must hold the lock for the duration
	// of any balance change.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceDeltasInTx applies incremental balance changes to already
	// locked accounts within the same database transaction as the triggering
	// write.
	ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountBalancer
}
