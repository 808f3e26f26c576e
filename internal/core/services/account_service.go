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
	"github.com/shopspring/decimal"
)

// defaultAccountSpecs are the standard accounts provisioned for every newly
// registered pastorate or church.
var defaultAccountSpecs = []struct {
	TypeName     string
	NumberSuffix string
}{
	{TypeName: "cash", NumberSuffix: "CASH"},
	{TypeName: "bank", NumberSuffix: "BANK"},
}

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: repo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if err := validateAccountOwner(req.Level, req.PastorateID, req.ChurchID); err != nil {
		s.LogError(ctx, err, "Invalid account owner fields",
			slog.String("level", string(req.Level)))
		return nil, err
	}

	if _, err := s.accountRepo.FindAccountTypeByID(ctx, req.AccountTypeID); err != nil {
		s.LogError(ctx, err, "Invalid account type",
			slog.String("account_type_id", req.AccountTypeID))
		return nil, fmt.Errorf("invalid account type: %w", err)
	}

	now := time.Now()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		Name:          req.Name,
		AccountTypeID: req.AccountTypeID,
		AccountNumber: req.AccountNumber,
		Description:   req.Description,
		Level:         req.Level,
		PastorateID:   req.PastorateID,
		ChurchID:      req.ChurchID,
		Balance:       decimal.Zero,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_number", req.AccountNumber))
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_number", account.AccountNumber))
	return &account, nil
}

// CreateDefaultAccounts provisions the standard cash and bank accounts for a
// newly registered pastorate or church. Account types are created on first
// use.
func (s *accountService) CreateDefaultAccounts(ctx context.Context, req dto.CreateDefaultAccountsRequest, creatorUserID string) ([]domain.Account, error) {
	pastorateID := req.PastorateID
	churchID := ""
	if req.Level == domain.ChurchLevel {
		churchID = req.OwnerID
	} else {
		pastorateID = req.OwnerID
	}
	if err := validateAccountOwner(req.Level, pastorateID, churchID); err != nil {
		return nil, err
	}

	now := time.Now()
	created := make([]domain.Account, 0, len(defaultAccountSpecs))
	for _, spec := range defaultAccountSpecs {
		accountType, err := s.accountRepo.EnsureAccountType(ctx, spec.TypeName, "")
		if err != nil {
			s.LogError(ctx, err, "Failed to ensure account type",
				slog.String("type_name", spec.TypeName))
			return nil, err
		}

		account := domain.Account{
			AccountID:     uuid.NewString(),
			Name:          fmt.Sprintf("%s %s", req.OwnerName, spec.TypeName),
			AccountTypeID: accountType.AccountTypeID,
			AccountNumber: fmt.Sprintf("%s-%s", req.OwnerID, spec.NumberSuffix),
			Level:         req.Level,
			PastorateID:   pastorateID,
			ChurchID:      churchID,
			Balance:       decimal.Zero,
			IsActive:      true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}

		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			s.LogError(ctx, err, "Failed to save default account",
				slog.String("account_number", account.AccountNumber))
			return nil, err
		}
		created = append(created, account)
	}

	s.LogInfo(ctx, "Default accounts created",
		slog.String("owner_id", req.OwnerID),
		slog.Int("count", len(created)))
	return created, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, level domain.AccountLevel, ownerID string, limit, offset int) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, level, ownerID, limit, offset)
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account",
			slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account",
			slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}

// validateAccountOwner checks the owner field matching the account level is
// set and the other is not.
func validateAccountOwner(level domain.AccountLevel, pastorateID, churchID string) error {
	switch level {
	case domain.PastorateLevel:
		if pastorateID == "" {
			return fmt.Errorf("%w: pastorateID required for pastorate-level accounts", apperrors.ErrValidation)
		}
	case domain.ChurchLevel:
		if churchID == "" {
			return fmt.Errorf("%w: churchID required for church-level accounts", apperrors.ErrValidation)
		}
	case domain.DioceseLevel:
		// Diocese accounts belong to the diocese itself, no owner ref.
	default:
		return fmt.Errorf("%w: unknown account level %q", apperrors.ErrValidation, level)
	}
	return nil
}
