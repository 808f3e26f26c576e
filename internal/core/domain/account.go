package domain

import "github.com/shopspring/decimal"

// AccountLevel identifies which organizational unit owns an account.
type AccountLevel string

const (
	PastorateLevel AccountLevel = "pastorate"
	ChurchLevel    AccountLevel = "church"
	// DioceseLevel accounts live in the diocese ledger; their balances derive
	// from DioceseTransaction rows, never from the pastorate/church log.
	DioceseLevel AccountLevel = "diocese"
)

// AccountType is a lookup entity describing a class of accounts (cash, bank, ...).
type AccountType struct {
	AccountTypeID string `json:"accountTypeID"`
	Name          string `json:"name"`
	Description   string `json:"description"`
}

// Account represents a pastorate- or church-level financial account.
//
// Balance is a cache: immediately after any committed write touching the
// account's transactions it must equal the value derived from the transaction
// log. Only the ledger engine mutates it, never callers.
type Account struct {
	AccountID     string          `json:"accountID"`
	Name          string          `json:"name"`
	AccountTypeID string          `json:"accountTypeID"`
	AccountNumber string          `json:"accountNumber"` // unique, human readable
	Description   string          `json:"description"`
	Level         AccountLevel    `json:"level"`
	PastorateID   string          `json:"pastorateID"` // set when Level == pastorate
	ChurchID      string          `json:"churchID"`    // set when Level == church
	Balance       decimal.Decimal `json:"balance"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}

// OwnerID returns the owning organizational unit's ID for the account's level.
// Diocese-level accounts belong to the diocese itself and have no owner ref.
func (a Account) OwnerID() string {
	if a.Level == ChurchLevel {
		return a.ChurchID
	}
	return a.PastorateID
}
