package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/parish-dms/parish_ledger_app/internal/apperrors"
	portsrepo "github.com/parish-dms/parish_ledger_app/internal/core/ports/repositories"
)

type PgxReferenceCounterRepository struct {
	BaseRepository
}

// newPgxReferenceCounterRepository creates a new repository for sequential
// reference counters.
func newPgxReferenceCounterRepository(pool *pgxpool.Pool) portsrepo.ReferenceCounterRepository {
	return &PgxReferenceCounterRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReferenceCounterRepository = (*PgxReferenceCounterRepository)(nil)

// ClaimNext atomically increments and returns the counter for the scope and
// month. The upsert makes the claim a single statement, so concurrent callers
// serialize on the row and never observe the same value.
func (r *PgxReferenceCounterRepository) ClaimNext(ctx context.Context, scope string, year int, month time.Month) (int64, error) {
	query := `
		INSERT INTO reference_counters (scope, year, month, last_value)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (scope, year, month)
		DO UPDATE SET last_value = reference_counters.last_value + 1
		RETURNING last_value;
	`
	var value int64
	err := r.Pool.QueryRow(ctx, query, scope, year, int(month)).Scan(&value)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to claim reference counter for scope "+scope, err)
	}
	return value, nil
}
