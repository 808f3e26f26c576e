package dto

import (
	"time"

	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name          string              `json:"name" binding:"required"`
	AccountTypeID string              `json:"accountTypeID" binding:"required"`
	AccountNumber string              `json:"accountNumber" binding:"required"`
	Description   string              `json:"description"`
	Level         domain.AccountLevel `json:"level" binding:"required,oneof=pastorate church diocese"`
	PastorateID   string              `json:"pastorateID"` // required when level == pastorate
	ChurchID      string              `json:"churchID"`    // required when level == church
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// CreateDefaultAccountsRequest asks for the default cash/bank accounts of a
// newly registered pastorate or church.
type CreateDefaultAccountsRequest struct {
	Level       domain.AccountLevel `json:"level" binding:"required,oneof=pastorate church diocese"`
	OwnerID     string              `json:"ownerID" binding:"required"`
	OwnerName   string              `json:"ownerName" binding:"required"`
	PastorateID string              `json:"pastorateID"` // parent pastorate when level == church
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string              `json:"accountID"`
	Name          string              `json:"name"`
	AccountTypeID string              `json:"accountTypeID"`
	AccountNumber string              `json:"accountNumber"`
	Description   string              `json:"description"`
	Level         domain.AccountLevel `json:"level"`
	PastorateID   string              `json:"pastorateID,omitempty"`
	ChurchID      string              `json:"churchID,omitempty"`
	Balance       decimal.Decimal     `json:"balance"`
	IsActive      bool                `json:"isActive"`
	CreatedAt     time.Time           `json:"createdAt"`
	CreatedBy     string              `json:"createdBy"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy string              `json:"lastUpdatedBy"`
}

// AccountBalanceResponse defines the data returned for a balance derivation query.
type AccountBalanceResponse struct {
	AccountID       string          `json:"accountID"`
	CachedBalance   decimal.Decimal `json:"cachedBalance"`
	DerivedBalance  decimal.Decimal `json:"derivedBalance"`
	CacheConsistent bool            `json:"cacheConsistent"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Name:          acc.Name,
		AccountTypeID: acc.AccountTypeID,
		AccountNumber: acc.AccountNumber,
		Description:   acc.Description,
		Level:         acc.Level,
		PastorateID:   acc.PastorateID,
		ChurchID:      acc.ChurchID,
		Balance:       acc.Balance,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}
