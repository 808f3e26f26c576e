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
)

const primaryCategoryColumns = `category_id, name, description, direction, is_active, created_at, created_by, last_updated_at, last_updated_by`

const secondaryCategoryColumns = `category_id, name, description, primary_category_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for transaction categories.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func scanPrimaryCategoryRow(row pgx.Row) (*models.PrimaryCategory, error) {
	var m models.PrimaryCategory
	var description sql.NullString
	err := row.Scan(
		&m.CategoryID,
		&m.Name,
		&description,
		&m.Direction,
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
	return &m, nil
}

func scanSecondaryCategoryRow(row pgx.Row) (*models.SecondaryCategory, error) {
	var m models.SecondaryCategory
	var description sql.NullString
	err := row.Scan(
		&m.CategoryID,
		&m.Name,
		&description,
		&m.PrimaryCategoryID,
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
	return &m, nil
}

func (r *PgxCategoryRepository) FindPrimaryCategoryByID(ctx context.Context, categoryID string) (*domain.PrimaryCategory, error) {
	query := `SELECT ` + primaryCategoryColumns + ` FROM primary_categories WHERE category_id = $1;`

	m, err := scanPrimaryCategoryRow(r.Pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find primary category "+categoryID, err)
	}

	cat := mapping.ToDomainPrimaryCategory(*m)
	return &cat, nil
}

func (r *PgxCategoryRepository) FindSecondaryCategoryByID(ctx context.Context, categoryID string) (*domain.SecondaryCategory, error) {
	query := `SELECT ` + secondaryCategoryColumns + ` FROM secondary_categories WHERE category_id = $1;`

	m, err := scanSecondaryCategoryRow(r.Pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find secondary category "+categoryID, err)
	}

	cat := mapping.ToDomainSecondaryCategory(*m)
	return &cat, nil
}

// ListPrimaryCategories lists active primary categories, optionally filtered
// by direction.
func (r *PgxCategoryRepository) ListPrimaryCategories(ctx context.Context, direction *domain.CategoryDirection) ([]domain.PrimaryCategory, error) {
	query := `SELECT ` + primaryCategoryColumns + ` FROM primary_categories WHERE is_active = TRUE`
	args := []any{}
	if direction != nil {
		args = append(args, string(*direction))
		query += ` AND direction = $1`
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list primary categories", err)
	}
	defer rows.Close()

	categories := []domain.PrimaryCategory{}
	for rows.Next() {
		m, err := scanPrimaryCategoryRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan primary category row", err)
		}
		categories = append(categories, mapping.ToDomainPrimaryCategory(*m))
	}
	return categories, rows.Err()
}

// ListSecondaryCategories lists active secondary categories under a primary
// category, or all when primaryCategoryID is empty.
func (r *PgxCategoryRepository) ListSecondaryCategories(ctx context.Context, primaryCategoryID string) ([]domain.SecondaryCategory, error) {
	query := `SELECT ` + secondaryCategoryColumns + ` FROM secondary_categories WHERE is_active = TRUE`
	args := []any{}
	if primaryCategoryID != "" {
		args = append(args, primaryCategoryID)
		query += ` AND primary_category_id = $1`
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list secondary categories", err)
	}
	defer rows.Close()

	categories := []domain.SecondaryCategory{}
	for rows.Next() {
		m, err := scanSecondaryCategoryRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan secondary category row", err)
		}
		categories = append(categories, mapping.ToDomainSecondaryCategory(*m))
	}
	return categories, rows.Err()
}

func (r *PgxCategoryRepository) SavePrimaryCategory(ctx context.Context, category domain.PrimaryCategory) error {
	query := `
		INSERT INTO primary_categories (` + primaryCategoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		category.CategoryID,
		category.Name,
		nullString(category.Description),
		string(category.Direction),
		category.IsActive,
		category.CreatedAt,
		category.CreatedBy,
		category.LastUpdatedAt,
		category.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: primary category %s", apperrors.ErrDuplicate, category.Name)
		}
		return apperrors.NewAppError(500, "failed to save primary category "+category.CategoryID, err)
	}
	return nil
}

func (r *PgxCategoryRepository) SaveSecondaryCategory(ctx context.Context, category domain.SecondaryCategory) error {
	query := `
		INSERT INTO secondary_categories (` + secondaryCategoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		category.CategoryID,
		category.Name,
		nullString(category.Description),
		category.PrimaryCategoryID,
		category.IsActive,
		category.CreatedAt,
		category.CreatedBy,
		category.LastUpdatedAt,
		category.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: secondary category %s", apperrors.ErrDuplicate, category.Name)
		}
		return apperrors.NewAppError(500, "failed to save secondary category "+category.CategoryID, err)
	}
	return nil
}
