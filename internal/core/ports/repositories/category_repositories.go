package repositories

import (
	"context"

	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
)

// CategoryReader defines read operations for transaction categories.
type CategoryReader interface {
	FindPrimaryCategoryByID(ctx context.Context, categoryID string) (*domain.PrimaryCategory, error)
	FindSecondaryCategoryByID(ctx context.Context, categoryID string) (*domain.SecondaryCategory, error)

	// ListPrimaryCategories lists active primary categories, optionally
	// filtered by direction.
	ListPrimaryCategories(ctx context.Context, direction *domain.CategoryDirection) ([]domain.PrimaryCategory, error)

	// ListSecondaryCategories lists active secondary categories under a primary
	// category, or all when primaryCategoryID is empty.
	ListSecondaryCategories(ctx context.Context, primaryCategoryID string) ([]domain.SecondaryCategory, error)
}

// CategoryWriter defines write operations for transaction categories.
type CategoryWriter interface {
	SavePrimaryCategory(ctx context.Context, category domain.PrimaryCategory) error
	SaveSecondaryCategory(ctx context.Context, category domain.SecondaryCategory) error
}

// CategoryRepositoryFacade combines the category repository interfaces.
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
