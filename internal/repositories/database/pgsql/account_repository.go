package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/parish-dms/parish_ledger_app/internal/apperrors"
	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
	portsrepo "github.com/parish-dms/parish_ledger_app/internal/core/ports/repositories"
	"github.com/parish-dms/parish_ledger_app/internal/models"
	"github.com/parish-dms/parish_ledger_app/internal/utils/accounting"
	"github.com/parish-dms/parish_ledger_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, name, account_type_id, account_number, description, level, pastorate_id, church_id, balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool, allowNegativeBalance bool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool, AllowNegativeBalance: allowNegativeBalance},
	}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccountRow(row pgx.Row) (*models.Account, error) {
	var m models.Account
	var pastorateID, churchID, description sql.NullString
	err := row.Scan(
		&m.AccountID,
		&m.Name,
		&m.AccountTypeID,
		&m.AccountNumber,
		&description,
		&m.Level,
		&pastorateID,
		&churchID,
		&m.Balance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	m.Description = fromNullString(description)
	m.PastorateID = fromNullString(pastorateID)
	m.ChurchID = fromNullString(churchID)
	return &m, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.Name,
		modelAcc.AccountTypeID,
		modelAcc.AccountNumber,
		nullString(modelAcc.Description),
		modelAcc.Level,
		nullString(modelAcc.PastorateID),
		nullString(modelAcc.ChurchID),
		modelAcc.Balance,
		modelAcc.IsActive,
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account number %s", apperrors.ErrDuplicate, modelAcc.AccountNumber)
		}
		return apperrors.NewAppError(500, "failed to save account "+modelAcc.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccountRow(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID "+accountID, err)
	}

	acc := mapping.ToDomainAccount(*m)
	return &acc, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by ID.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		m, err := scanAccountRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accountsMap[m.AccountID] = mapping.ToDomainAccount(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accountsMap, nil
}

// ListAccounts retrieves accounts for one owner, or all accounts when ownerID
// is empty.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, level domain.AccountLevel, ownerID string, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT ` + accountColumns + ` FROM accounts`
	args := []any{}
	switch {
	case ownerID != "" && level == domain.ChurchLevel:
		query += ` WHERE church_id = $1`
		args = append(args, ownerID)
	case ownerID != "":
		query += ` WHERE pastorate_id = $1`
		args = append(args, ownerID)
	}
	query += fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d;`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		m, err := scanAccountRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return mapping.ToDomainAccountSlice(accounts), nil
}

// ListAccountIDs returns every account ID, ordered for deterministic batch runs.
func (r *PgxAccountRepository) ListAccountIDs(ctx context.Context) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT account_id FROM accounts ORDER BY account_id;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list account IDs", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account ID", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account IDs", err)
	}
	return ids, nil
}

// FindAccountTypeByID retrieves an account type lookup row.
func (r *PgxAccountRepository) FindAccountTypeByID(ctx context.Context, accountTypeID string) (*domain.AccountType, error) {
	query := `SELECT account_type_id, name, description FROM account_types WHERE account_type_id = $1;`

	var m models.AccountType
	var description sql.NullString
	err := r.Pool.QueryRow(ctx, query, accountTypeID).Scan(&m.AccountTypeID, &m.Name, &description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account type "+accountTypeID, err)
	}
	m.Description = fromNullString(description)

	at := mapping.ToDomainAccountType(m)
	return &at, nil
}

// EnsureAccountType finds an account type by name or creates it.
func (r *PgxAccountRepository) EnsureAccountType(ctx context.Context, name, description string) (*domain.AccountType, error) {
	query := `
		INSERT INTO account_types (account_type_id, name, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING account_type_id, name, description;
	`
	var m models.AccountType
	var desc sql.NullString
	err := r.Pool.QueryRow(ctx, query, uuid.NewString(), name, nullString(description)).
		Scan(&m.AccountTypeID, &m.Name, &desc)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to ensure account type "+name, err)
	}
	m.Description = fromNullString(desc)

	at := mapping.ToDomainAccountType(m)
	return &at, nil
}

// UpdateAccount updates an account's descriptive fields. The balance column is
// deliberately absent: only the ledger engine's balance paths touch it.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $2, description = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1;
	`
	ct, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.Name,
		nullString(account.Description),
		account.IsActive,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+account.AccountID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount marks an account inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1;
	`
	ct, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate account "+accountID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAccountsByIDsForUpdate locks account rows for the duration of the
// enclosing transaction and returns them keyed by ID.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) FOR UPDATE;`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts for update", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		m, err := scanAccountRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked account row", err)
		}
		accountsMap[m.AccountID] = mapping.ToDomainAccount(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating locked account rows", err)
	}

	if len(accountsMap) != len(accountIDs) {
		missing := []string{}
		for _, id := range accountIDs {
			if _, found := accountsMap[id]; !found {
				missing = append(missing, id)
			}
		}
		slog.WarnContext(ctx, "Some accounts requested for update lock were not found", "missing_accounts", missing)
		return nil, fmt.Errorf("%w: could not find or lock accounts: %v", apperrors.ErrNotFound, missing)
	}

	return accountsMap, nil
}

// ApplyBalanceDeltasInTx applies incremental balance changes to already locked
// accounts within the caller's transaction.
func (r *PgxAccountRepository) ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	query := `
		UPDATE accounts
		SET balance = COALESCE(balance, 0) + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`

	batch := &pgx.Batch{}
	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID, delta := range balanceChanges {
		if !delta.IsZero() {
			batch.Queue(query, accountID, delta, now, userID)
			accountIDs = append(accountIDs, accountID)
		}
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to update balance for account %s: %w", accountIDs[i], err)
			}
		} else if ct.RowsAffected() == 0 && batchErr == nil {
			batchErr = fmt.Errorf("%w: account %s vanished during balance update", apperrors.ErrNotFound, accountIDs[i])
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance update batch: %w", err)
	}
	return batchErr
}

// RecalculateBalance recomputes one account's cached balance from both
// transaction logs inside its own short transaction and overwrites the cache.
// Returns nil when the cached value was already correct.
func (r *PgxAccountRepository) RecalculateBalance(ctx context.Context, accountID string, userID string, now time.Time) (*domain.BalanceRepair, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.FindAccountsByIDsForUpdate(ctx, tx, []string{accountID})
	if err != nil {
		return nil, err
	}
	account := locked[accountID]

	// Diocese-level accounts derive from the diocese ledger, everything else
	// from the pastorate/church log. An account never sums both.
	var derived decimal.Decimal
	if account.Level == domain.DioceseLevel {
		dioceseTxns, err := r.findDioceseTransactionsForBalanceInTx(ctx, tx, accountID)
		if err != nil {
			return nil, err
		}
		derived, err = accounting.ComputeDioceseBalance(dioceseTxns)
		if err != nil {
			return nil, fmt.Errorf("failed to derive diocese balance for account %s: %w", accountID, err)
		}
	} else {
		txns, err := r.findTransactionsForBalanceInTx(ctx, tx, accountID)
		if err != nil {
			return nil, err
		}
		derived, err = accounting.ComputeBalance(txns)
		if err != nil {
			return nil, fmt.Errorf("failed to derive balance for account %s: %w", accountID, err)
		}
	}

	if derived.Equal(account.Balance) {
		return nil, r.Commit(ctx, tx)
	}

	_, err = tx.Exec(ctx, `
		UPDATE accounts
		SET balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`, accountID, derived, now, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to overwrite balance for account "+accountID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &domain.BalanceRepair{
		AccountID:  accountID,
		OldBalance: account.Balance,
		NewBalance: derived,
	}, nil
}

// findTransactionsForBalanceInTx loads the fields balance derivation needs.
func (r *PgxAccountRepository) findTransactionsForBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string) ([]domain.Transaction, error) {
	rows, err := tx.Query(ctx, `
		SELECT transaction_id, transaction_type, amount
		FROM transactions
		WHERE account_id = $1;
	`, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions for account "+accountID, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		var id, txnType string
		var amount decimal.Decimal
		if err := rows.Scan(&id, &txnType, &amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		txns = append(txns, domain.Transaction{
			TransactionID: id,
			AccountID:     accountID,
			Type:          domain.TransactionType(txnType),
			Amount:        amount,
		})
	}
	return txns, rows.Err()
}

func (r *PgxAccountRepository) findDioceseTransactionsForBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string) ([]domain.DioceseTransaction, error) {
	rows, err := tx.Query(ctx, `
		SELECT transaction_id, transaction_type, amount
		FROM diocese_transactions
		WHERE account_id = $1;
	`, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query diocese transactions for account "+accountID, err)
	}
	defer rows.Close()

	txns := []domain.DioceseTransaction{}
	for rows.Next() {
		var id, txnType string
		var amount decimal.Decimal
		if err := rows.Scan(&id, &txnType, &amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan diocese transaction row", err)
		}
		txns = append(txns, domain.DioceseTransaction{
			TransactionID: id,
			AccountID:     accountID,
			Type:          domain.DioceseEntryType(txnType),
			Amount:        amount,
		})
	}
	return txns, rows.Err()
}
