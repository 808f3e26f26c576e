package services

import (
	"context"

	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
	"github.com/parish-dms/parish_ledger_app/internal/dto"
)

// AccountSvcFacade defines account lifecycle operations. Accounts are created
// once and never deleted while referenced transactions exist; deactivation is
// the only retirement path.
type AccountSvcFacade interface {
	// CreateAccount creates a single account for a pastorate or church.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// CreateDefaultAccounts provisions the standard cash and bank accounts for
	// a newly registered pastorate or church.
	CreateDefaultAccounts(ctx context.Context, req dto.CreateDefaultAccountsRequest, creatorUserID string) ([]domain.Account, error)

	// GetAccountByID retrieves an account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves accounts for an owner, or all accounts when
	// ownerID is empty.
	ListAccounts(ctx context.Context, level domain.AccountLevel, ownerID string, limit, offset int) ([]domain.Account, error)

	// UpdateAccount updates descriptive fields; never the balance.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}
