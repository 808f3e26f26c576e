package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/parish-dms/parish_ledger_app/internal/apperrors"
	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
	portsrepo "github.com/parish-dms/parish_ledger_app/internal/core/ports/repositories"
	"github.com/parish-dms/parish_ledger_app/internal/models"
	"github.com/parish-dms/parish_ledger_app/internal/utils/mapping"
	"github.com/parish-dms/parish_ledger_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const dioceseColumns = `transaction_id, account_id, category_id, transaction_type, amount, description, transaction_date, reference_number, is_contra, contra_account_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxDioceseRepository struct {
	BaseRepository
	balancer portsrepo.AccountBalancer
	ledger   *PgxTransactionRepository
}

// newPgxDioceseRepository creates a new repository for diocese ledger data.
// The ledger repository supplies the row writers for cross-ledger contra
// mirrors; both ledgers share one database so the writes commit together.
func newPgxDioceseRepository(pool *pgxpool.Pool, allowNegativeBalance bool, balancer portsrepo.AccountBalancer, ledger *PgxTransactionRepository) portsrepo.DioceseRepositoryFacade {
	return &PgxDioceseRepository{
		BaseRepository: BaseRepository{Pool: pool, AllowNegativeBalance: allowNegativeBalance},
		balancer:       balancer,
		ledger:         ledger,
	}
}

var _ portsrepo.DioceseRepositoryFacade = (*PgxDioceseRepository)(nil)

func scanDioceseRow(row pgx.Row) (*models.DioceseTransaction, error) {
	var m models.DioceseTransaction
	var categoryID, description, contraAccountID sql.NullString
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&categoryID,
		&m.Type,
		&m.Amount,
		&description,
		&m.Date,
		&m.ReferenceNumber,
		&m.IsContra,
		&contraAccountID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	m.CategoryID = fromNullString(categoryID)
	m.Description = fromNullString(description)
	m.ContraAccountID = fromNullString(contraAccountID)
	return &m, nil
}

func (r *PgxDioceseRepository) insertDioceseTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.DioceseTransaction) error {
	m := mapping.ToModelDioceseTransaction(txn)
	query := `
		INSERT INTO diocese_transactions (` + dioceseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.AccountID,
		nullString(m.CategoryID),
		m.Type,
		m.Amount,
		nullString(m.Description),
		m.Date,
		m.ReferenceNumber,
		m.IsContra,
		nullString(m.ContraAccountID),
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: diocese transaction %s", apperrors.ErrDuplicate, m.TransactionID)
		}
		return apperrors.NewAppError(500, "failed to insert diocese transaction "+m.TransactionID, err)
	}
	return nil
}

// FindDioceseTransactionByID retrieves a specific diocese ledger entry.
func (r *PgxDioceseRepository) FindDioceseTransactionByID(ctx context.Context, transactionID string) (*domain.DioceseTransaction, error) {
	query := `SELECT ` + dioceseColumns + ` FROM diocese_transactions WHERE transaction_id = $1;`

	m, err := scanDioceseRow(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find diocese transaction "+transactionID, err)
	}

	txn := mapping.ToDomainDioceseTransaction(*m)
	return &txn, nil
}

// FindDioceseTransactionsByAccountID retrieves every diocese entry owned by an
// account.
func (r *PgxDioceseRepository) FindDioceseTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.DioceseTransaction, error) {
	query := `SELECT ` + dioceseColumns + ` FROM diocese_transactions WHERE account_id = $1 ORDER BY transaction_date, created_at;`

	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query diocese transactions for account "+accountID, err)
	}
	defer rows.Close()

	return collectDioceseTransactions(rows)
}

// ListDioceseTransactions retrieves a page of diocese entries for an account,
// newest first.
func (r *PgxDioceseRepository) ListDioceseTransactions(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.DioceseTransaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + dioceseColumns + ` FROM diocese_transactions WHERE account_id = $1`
	args := []any{accountID}

	if nextToken != nil && *nextToken != "" {
		tokenDate, tokenCreatedAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, tokenDate, tokenCreatedAt)
		query += fmt.Sprintf(` AND (transaction_date, created_at) < ($%d, $%d)`, len(args)-1, len(args))
	}

	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY transaction_date DESC, created_at DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list diocese transactions for account "+accountID, err)
	}
	defer rows.Close()

	txns, err := collectDioceseTransactions(rows)
	if err != nil {
		return nil, nil, err
	}

	var newNextToken *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		newNextToken = &token
	}
	return txns, newNextToken, nil
}

// SaveDioceseTransaction inserts a plain debit/credit diocese entry and applies
// its balance delta atomically.
func (r *PgxDioceseRepository) SaveDioceseTransaction(ctx context.Context, txn domain.DioceseTransaction, balanceChanges map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertDioceseTransactionInTx(ctx, tx, txn); err != nil {
		return nil, err
	}

	balances, err := r.applyBalanceChanges(ctx, tx, r.balancer, balanceChanges, txn.CreatedBy, txn.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return balances, nil
}

// SaveDioceseContra inserts the two mirrored diocese entries, the spawned
// pastorate-ledger mirror, and the pair link in one database transaction.
// Either all three rows and every balance delta land, or none do.
func (r *PgxDioceseRepository) SaveDioceseContra(ctx context.Context, debit, credit domain.DioceseTransaction, mirror domain.Transaction, link domain.PairLink, balanceChanges map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertDioceseTransactionInTx(ctx, tx, debit); err != nil {
		return nil, err
	}
	if err := r.insertDioceseTransactionInTx(ctx, tx, credit); err != nil {
		return nil, err
	}
	if err := r.ledger.insertTransactionInTx(ctx, tx, mirror); err != nil {
		return nil, err
	}
	if err := r.ledger.insertPairLinkInTx(ctx, tx, link); err != nil {
		return nil, err
	}

	balances, err := r.applyBalanceChanges(ctx, tx, r.balancer, balanceChanges, debit.CreatedBy, debit.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return balances, nil
}

func collectDioceseTransactions(rows pgx.Rows) ([]domain.DioceseTransaction, error) {
	txns := []models.DioceseTransaction{}
	for rows.Next() {
		m, err := scanDioceseRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan diocese transaction row", err)
		}
		txns = append(txns, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating diocese transaction rows", err)
	}
	return mapping.ToDomainDioceseTransactionSlice(txns), nil
}
