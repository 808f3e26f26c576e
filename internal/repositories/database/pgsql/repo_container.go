package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/parish-dms/parish_ledger_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires up all pgsql-backed repositories against one
// connection pool. The account repository doubles as the balancer every
// ledger-mutating repository locks and updates balances through, so the
// negative balance policy is enforced in exactly one place.
func NewRepositoryProvider(pool *pgxpool.Pool, allowNegativeBalance bool) *portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(pool, allowNegativeBalance)

	transactionRepo := newPgxTransactionRepository(pool, allowNegativeBalance, accountRepo)

	return &portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		TransactionRepo: transactionRepo,
		DioceseRepo:     newPgxDioceseRepository(pool, allowNegativeBalance, accountRepo, transactionRepo),
		CategoryRepo:    newPgxCategoryRepository(pool),
		ReferenceRepo:   newPgxReferenceCounterRepository(pool),
	}
}
