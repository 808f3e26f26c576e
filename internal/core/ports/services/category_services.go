package services

import (
	"context"

	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
	"github.com/parish-dms/parish_ledger_app/internal/dto"
)

// CategorySvcFacade defines transaction category management.
type CategorySvcFacade interface {
	CreatePrimaryCategory(ctx context.Context, req dto.CreatePrimaryCategoryRequest, creatorUserID string) (*domain.PrimaryCategory, error)
	CreateSecondaryCategory(ctx context.Context, req dto.CreateSecondaryCategoryRequest, creatorUserID string) (*domain.SecondaryCategory, error)
	ListPrimaryCategories(ctx context.Context, direction *domain.CategoryDirection) ([]domain.PrimaryCategory, error)
	ListSecondaryCategories(ctx context.Context, primaryCategoryID string) ([]domain.SecondaryCategory, error)

	// ValidateCategoryPair checks that both categories exist, are active, that
	// the secondary belongs to the primary, and that the primary's direction
	// matches the transaction type's sign.
	ValidateCategoryPair(ctx context.Context, primaryCategoryID, secondaryCategoryID string, txnType domain.TransactionType) error

	// ValidateCategoryRefs checks existence, active state and the
	// secondary-belongs-to-primary relation without the direction rule. A
	// contra/intra pair carries one category across a debit and a credit
	// side, so no single direction can hold for both.
	ValidateCategoryRefs(ctx context.Context, primaryCategoryID, secondaryCategoryID string) error
}
