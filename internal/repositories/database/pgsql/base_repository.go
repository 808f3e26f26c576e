package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/parish-dms/parish_ledger_app/internal/apperrors"
	portsrepo "github.com/parish-dms/parish_ledger_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// BaseRepository provides common functionality for all repositories.
// AllowNegativeBalance is the persistence policy for overdrawn accounts: when
// false, any write whose balance deltas would leave an account negative is
// rejected with ErrOverdrawn and rolled back.
type BaseRepository struct {
	Pool                 *pgxpool.Pool
	AllowNegativeBalance bool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// applyBalanceChanges locks the affected account rows, enforces the negative
// balance policy against the post-change values, and applies the deltas. It
// must run inside the same transaction as the triggering ledger write. Returns
// the resulting balance of every touched account.
func (r *BaseRepository) applyBalanceChanges(
	ctx context.Context,
	tx pgx.Tx,
	balancer portsrepo.AccountBalancer,
	balanceChanges map[string]decimal.Decimal,
	userID string,
	now time.Time,
) (map[string]decimal.Decimal, error) {
	if len(balanceChanges) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}

	lockedAccounts, err := balancer.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, err
	}

	newBalances := make(map[string]decimal.Decimal, len(lockedAccounts))
	for accID, acc := range lockedAccounts {
		newBalance := acc.Balance.Add(balanceChanges[accID])
		if newBalance.IsNegative() && !r.AllowNegativeBalance {
			return nil, fmt.Errorf("%w: account %s would hold %s",
				apperrors.ErrOverdrawn, accID, newBalance.StringFixed(2))
		}
		newBalances[accID] = newBalance
	}

	if err := balancer.ApplyBalanceDeltasInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return nil, err
	}

	return newBalances, nil
}

// nullString maps an empty string to SQL NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// fromNullString maps SQL NULL to an empty string.
func fromNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
