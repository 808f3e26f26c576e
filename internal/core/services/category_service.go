package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/parish-dms/parish_ledger_app/internal/apperrors"
	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
	portsrepo "github.com/parish-dms/parish_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/parish-dms/parish_ledger_app/internal/core/ports/services"
	"github.com/parish-dms/parish_ledger_app/internal/dto"
)

// categoryService implements the CategorySvcFacade interface
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: repo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) CreatePrimaryCategory(ctx context.Context, req dto.CreatePrimaryCategoryRequest, creatorUserID string) (*domain.PrimaryCategory, error) {
	now := time.Now()
	category := domain.PrimaryCategory{
		CategoryID:  uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Direction:   req.Direction,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.categoryRepo.SavePrimaryCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save primary category", slog.String("name", req.Name))
		return nil, err
	}
	return &category, nil
}

func (s *categoryService) CreateSecondaryCategory(ctx context.Context, req dto.CreateSecondaryCategoryRequest, creatorUserID string) (*domain.SecondaryCategory, error) {
	if _, err := s.categoryRepo.FindPrimaryCategoryByID(ctx, req.PrimaryCategoryID); err != nil {
		s.LogError(ctx, err, "Parent primary category not found",
			slog.String("primary_category_id", req.PrimaryCategoryID))
		return nil, fmt.Errorf("invalid primary category: %w", err)
	}

	now := time.Now()
	category := domain.SecondaryCategory{
		CategoryID:        uuid.NewString(),
		Name:              req.Name,
		Description:       req.Description,
		PrimaryCategoryID: req.PrimaryCategoryID,
		IsActive:          true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.categoryRepo.SaveSecondaryCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save secondary category", slog.String("name", req.Name))
		return nil, err
	}
	return &category, nil
}

func (s *categoryService) ListPrimaryCategories(ctx context.Context, direction *domain.CategoryDirection) ([]domain.PrimaryCategory, error) {
	return s.categoryRepo.ListPrimaryCategories(ctx, direction)
}

func (s *categoryService) ListSecondaryCategories(ctx context.Context, primaryCategoryID string) ([]domain.SecondaryCategory, error) {
	return s.categoryRepo.ListSecondaryCategories(ctx, primaryCategoryID)
}

// ValidateCategoryPair checks that both categories exist and are active, that
// the secondary belongs to the primary, and that the primary's direction
// matches the transaction type's sign. Both IDs empty is valid: categories
// are optional on ledger entries.
func (s *categoryService) ValidateCategoryPair(ctx context.Context, primaryCategoryID, secondaryCategoryID string, txnType domain.TransactionType) error {
	primary, err := s.resolveCategoryRefs(ctx, primaryCategoryID, secondaryCategoryID)
	if err != nil || primary == nil {
		return err
	}

	wantDirection := domain.DebitCategory
	if txnType.IsCredit() {
		wantDirection = domain.CreditCategory
	}
	if primary.Direction != wantDirection {
		return fmt.Errorf("%w: category %s is %s but transaction type %s is %s",
			apperrors.ErrValidation, primary.Name, primary.Direction, txnType, wantDirection)
	}
	return nil
}

// ValidateCategoryRefs checks existence, active state and the
// secondary-belongs-to-primary relation without the direction rule. Pair
// edits use this: one category spans a debit and a credit entry.
func (s *categoryService) ValidateCategoryRefs(ctx context.Context, primaryCategoryID, secondaryCategoryID string) error {
	_, err := s.resolveCategoryRefs(ctx, primaryCategoryID, secondaryCategoryID)
	return err
}

// resolveCategoryRefs runs the checks shared by both validations and returns
// the primary category, or nil when both IDs are empty.
func (s *categoryService) resolveCategoryRefs(ctx context.Context, primaryCategoryID, secondaryCategoryID string) (*domain.PrimaryCategory, error) {
	if primaryCategoryID == "" && secondaryCategoryID == "" {
		return nil, nil
	}
	if primaryCategoryID == "" {
		return nil, fmt.Errorf("%w: secondary category given without a primary category", apperrors.ErrValidation)
	}

	primary, err := s.categoryRepo.FindPrimaryCategoryByID(ctx, primaryCategoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid primary category: %w", err)
	}
	if !primary.IsActive {
		return nil, fmt.Errorf("%w: primary category %s is inactive", apperrors.ErrValidation, primaryCategoryID)
	}

	if secondaryCategoryID == "" {
		return primary, nil
	}
	secondary, err := s.categoryRepo.FindSecondaryCategoryByID(ctx, secondaryCategoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid secondary category: %w", err)
	}
	if !secondary.IsActive {
		return nil, fmt.Errorf("%w: secondary category %s is inactive", apperrors.ErrValidation, secondaryCategoryID)
	}
	if secondary.PrimaryCategoryID != primaryCategoryID {
		return nil, fmt.Errorf("%w: secondary category %s does not belong to primary category %s",
			apperrors.ErrValidation, secondary.Name, primary.Name)
	}
	return primary, nil
}
