package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

const transactionColumns = `transaction_id, account_id, to_account_id, from_account_id, transaction_type, amount, transaction_date, description, reference_number, primary_category_id, secondary_category_id, family_name, member_name, church_id, created_at, created_by, last_updated_at, last_updated_by`

const historyColumns = `history_id, transaction_id, amount, description, transaction_type, transaction_date, reference_number, modified_at, modified_by`

type PgxTransactionRepository struct {
	BaseRepository
	balancer portsrepo.AccountBalancer
}

// newPgxTransactionRepository creates a new repository for ledger entry data.
// The balancer applies balance deltas inside this repository's transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool, allowNegativeBalance bool, balancer portsrepo.AccountBalancer) *PgxTransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool, AllowNegativeBalance: allowNegativeBalance},
		balancer:       balancer,
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransactionRow(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	var toAcc, fromAcc, description, primaryCat, secondaryCat, family, member, church sql.NullString
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&toAcc,
		&fromAcc,
		&m.Type,
		&m.Amount,
		&m.Date,
		&description,
		&m.ReferenceNumber,
		&primaryCat,
		&secondaryCat,
		&family,
		&member,
		&church,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	m.ToAccountID = fromNullString(toAcc)
	m.FromAccountID = fromNullString(fromAcc)
	m.Description = fromNullString(description)
	m.PrimaryCategoryID = fromNullString(primaryCat)
	m.SecondaryCategoryID = fromNullString(secondaryCat)
	m.FamilyName = fromNullString(family)
	m.MemberName = fromNullString(member)
	m.ChurchID = fromNullString(church)
	return &m, nil
}

func (r *PgxTransactionRepository) insertTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.AccountID,
		nullString(m.ToAccountID),
		nullString(m.FromAccountID),
		m.Type,
		m.Amount,
		m.Date,
		nullString(m.Description),
		m.ReferenceNumber,
		nullString(m.PrimaryCategoryID),
		nullString(m.SecondaryCategoryID),
		nullString(m.FamilyName),
		nullString(m.MemberName),
		nullString(m.ChurchID),
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, m.TransactionID)
		}
		return apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) updateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET amount = $2, transaction_date = $3, description = $4,
		    primary_category_id = $5, secondary_category_id = $6,
		    family_name = $7, member_name = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE transaction_id = $1;
	`
	ct, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.Amount,
		m.Date,
		nullString(m.Description),
		nullString(m.PrimaryCategoryID),
		nullString(m.SecondaryCategoryID),
		nullString(m.FamilyName),
		nullString(m.MemberName),
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+m.TransactionID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, m.TransactionID)
	}
	return nil
}

func (r *PgxTransactionRepository) insertHistoryInTx(ctx context.Context, tx pgx.Tx, history domain.TransactionHistory) error {
	m := mapping.ToModelTransactionHistory(history)
	query := `
		INSERT INTO transaction_history (` + historyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		m.HistoryID,
		m.TransactionID,
		m.Amount,
		nullString(m.Description),
		m.Type,
		m.Date,
		m.ReferenceNumber,
		m.ModifiedAt,
		m.ModifiedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert history for transaction "+m.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a specific ledger entry.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransactionRow(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction "+transactionID, err)
	}

	txn := mapping.ToDomainTransaction(*m)
	return &txn, nil
}

// FindTransactionsByAccountID retrieves every entry owned by an account.
func (r *PgxTransactionRepository) FindTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE account_id = $1 ORDER BY transaction_date, created_at;`

	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions for account "+accountID, err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// ListTransactionsByAccount retrieves a page of entries for an account, newest
// first. The returned token resumes after the last row of the page.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, txnType *domain.TransactionType, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE account_id = $1`
	args := []any{accountID}

	if txnType != nil {
		args = append(args, string(*txnType))
		query += fmt.Sprintf(` AND transaction_type = $%d`, len(args))
	}

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
		return nil, nil, apperrors.NewAppError(500, "failed to list transactions for account "+accountID, err)
	}
	defer rows.Close()

	txns, err := collectTransactions(rows)
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

// FindPairedTransactions retrieves every contra/intra entry in deterministic
// scan order.
func (r *PgxTransactionRepository) FindPairedTransactions(ctx context.Context) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_type IN ('contra_debit', 'contra_credit', 'intra_debit', 'intra_credit')
		ORDER BY transaction_date, reference_number, transaction_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query paired transactions", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// FindHistoryByTransactionID retrieves the edit snapshots of an entry, newest
// first.
func (r *PgxTransactionRepository) FindHistoryByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionHistory, error) {
	query := `SELECT ` + historyColumns + ` FROM transaction_history WHERE transaction_id = $1 ORDER BY modified_at DESC;`

	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query history for transaction "+transactionID, err)
	}
	defer rows.Close()

	histories := []domain.TransactionHistory{}
	for rows.Next() {
		var m models.TransactionHistory
		var description sql.NullString
		err := rows.Scan(
			&m.HistoryID,
			&m.TransactionID,
			&m.Amount,
			&description,
			&m.Type,
			&m.Date,
			&m.ReferenceNumber,
			&m.ModifiedAt,
			&m.ModifiedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan history row", err)
		}
		m.Description = fromNullString(description)
		histories = append(histories, mapping.ToDomainTransactionHistory(m))
	}
	return histories, rows.Err()
}

// SaveTransaction inserts a single non-paired entry and applies its balance
// delta atomically.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertTransactionInTx(ctx, tx, txn); err != nil {
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

// UpdateTransaction snapshots the prior values to history, writes the new
// values, and applies the reverse+reapply deltas atomically.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, history domain.TransactionHistory, balanceChanges map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertHistoryInTx(ctx, tx, history); err != nil {
		return nil, err
	}
	if err := r.updateTransactionInTx(ctx, tx, txn); err != nil {
		return nil, err
	}

	balances, err := r.applyBalanceChanges(ctx, tx, r.balancer, balanceChanges, txn.LastUpdatedBy, txn.LastUpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return balances, nil
}

// DeleteTransaction removes a single non-paired entry and reverses its delta
// atomically.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	ct, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	}
	if ct.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}

	balances, err := r.applyBalanceChanges(ctx, tx, r.balancer, balanceChanges, "", time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return balances, nil
}

// FindPairLinkByDebitID retrieves the link whose debit side is the given entry.
func (r *PgxTransactionRepository) FindPairLinkByDebitID(ctx context.Context, debitEntryID string) (*domain.PairLink, error) {
	query := `
		SELECT debit_entry_id, credit_entry_id, ledger, mirror_transaction_id, created_at
		FROM pair_links
		WHERE debit_entry_id = $1;
	`
	var m models.PairLink
	var mirror sql.NullString
	err := r.Pool.QueryRow(ctx, query, debitEntryID).Scan(
		&m.DebitEntryID,
		&m.CreditEntryID,
		&m.Ledger,
		&mirror,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find pair link for entry "+debitEntryID, err)
	}
	m.MirrorTransactionID = fromNullString(mirror)

	link := mapping.ToDomainPairLink(m)
	return &link, nil
}

// ListMirrorTransactionIDs returns the IDs of every pastorate transaction
// spawned by a cross-ledger diocese pair.
func (r *PgxTransactionRepository) ListMirrorTransactionIDs(ctx context.Context) (map[string]bool, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT mirror_transaction_id
		FROM pair_links
		WHERE ledger = 'diocese' AND mirror_transaction_id IS NOT NULL;
	`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query mirror transaction IDs", err)
	}
	defer rows.Close()

	ids := map[string]bool{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan mirror transaction ID", err)
		}
		ids[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating mirror transaction IDs", err)
	}
	return ids, nil
}

func (r *PgxTransactionRepository) insertPairLinkInTx(ctx context.Context, tx pgx.Tx, link domain.PairLink) error {
	query := `
		INSERT INTO pair_links (debit_entry_id, credit_entry_id, ledger, mirror_transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := tx.Exec(ctx, query,
		link.DebitEntryID,
		link.CreditEntryID,
		string(link.Ledger),
		nullString(link.MirrorTransactionID),
		link.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: pair link for entry %s", apperrors.ErrDuplicate, link.DebitEntryID)
		}
		return apperrors.NewAppError(500, "failed to insert pair link for entry "+link.DebitEntryID, err)
	}
	return nil
}

// SavePair inserts the debit and credit entries plus their link, and applies
// both balance deltas atomically.
func (r *PgxTransactionRepository) SavePair(ctx context.Context, debit, credit domain.Transaction, link domain.PairLink, balanceChanges map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertTransactionInTx(ctx, tx, debit); err != nil {
		return nil, err
	}
	if err := r.insertTransactionInTx(ctx, tx, credit); err != nil {
		return nil, err
	}
	if err := r.insertPairLinkInTx(ctx, tx, link); err != nil {
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

// UpdatePair snapshots both sides to history, updates both rows, and applies
// the reverse+reapply deltas atomically.
func (r *PgxTransactionRepository) UpdatePair(ctx context.Context, debit, credit domain.Transaction, histories []domain.TransactionHistory, balanceChanges map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	for _, h := range histories {
		if err := r.insertHistoryInTx(ctx, tx, h); err != nil {
			return nil, err
		}
	}
	if err := r.updateTransactionInTx(ctx, tx, debit); err != nil {
		return nil, err
	}
	if err := r.updateTransactionInTx(ctx, tx, credit); err != nil {
		return nil, err
	}

	balances, err := r.applyBalanceChanges(ctx, tx, r.balancer, balanceChanges, debit.LastUpdatedBy, debit.LastUpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return balances, nil
}

// DeletePair removes both entries and the link, reversing both deltas
// atomically.
func (r *PgxTransactionRepository) DeletePair(ctx context.Context, link domain.PairLink, balanceChanges map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	ct, err := tx.Exec(ctx, `DELETE FROM pair_links WHERE debit_entry_id = $1;`, link.DebitEntryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to delete pair link for entry "+link.DebitEntryID, err)
	}
	if ct.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: pair link for entry %s", apperrors.ErrNotFound, link.DebitEntryID)
	}

	ct, err = tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = ANY($1);`,
		[]string{link.DebitEntryID, link.CreditEntryID})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to delete paired transactions", err)
	}
	if ct.RowsAffected() != 2 {
		return nil, fmt.Errorf("%w: expected both pair sides, deleted %d rows",
			apperrors.ErrPairIntegrity, ct.RowsAffected())
	}

	balances, err := r.applyBalanceChanges(ctx, tx, r.balancer, balanceChanges, "", time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return balances, nil
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	txns := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransactionRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		txns = append(txns, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}
	return mapping.ToDomainTransactionSlice(txns), nil
}
