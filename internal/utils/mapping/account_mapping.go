package mapping

import (
	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
	"github.com/parish-dms/parish_ledger_app/internal/models"
)

// ToModelAccount converts a domain Account to its persisted shape.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		Name:          d.Name,
		AccountTypeID: d.AccountTypeID,
		AccountNumber: d.AccountNumber,
		Description:   d.Description,
		Level:         string(d.Level),
		PastorateID:   d.PastorateID,
		ChurchID:      d.ChurchID,
		Balance:       d.Balance,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a persisted Account row to its domain shape.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		Name:          m.Name,
		AccountTypeID: m.AccountTypeID,
		AccountNumber: m.AccountNumber,
		Description:   m.Description,
		Level:         domain.AccountLevel(m.Level),
		PastorateID:   m.PastorateID,
		ChurchID:      m.ChurchID,
		Balance:       m.Balance,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts persisted rows to domain accounts.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	out := make([]domain.Account, len(ms))
	for i, m := range ms {
		out[i] = ToDomainAccount(m)
	}
	return out
}

// ToDomainAccountType converts a persisted account type lookup row.
func ToDomainAccountType(m models.AccountType) domain.AccountType {
	return domain.AccountType{
		AccountTypeID: m.AccountTypeID,
		Name:          m.Name,
		Description:   m.Description,
	}
}
