package mapping

import (
	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
	"github.com/parish-dms/parish_ledger_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to its persisted shape.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:       d.TransactionID,
		AccountID:           d.AccountID,
		ToAccountID:         d.ToAccountID,
		FromAccountID:       d.FromAccountID,
		Type:                string(d.Type),
		Amount:              d.Amount,
		Date:                d.Date,
		Description:         d.Description,
		ReferenceNumber:     d.ReferenceNumber,
		PrimaryCategoryID:   d.PrimaryCategoryID,
		SecondaryCategoryID: d.SecondaryCategoryID,
		FamilyName:          d.FamilyName,
		MemberName:          d.MemberName,
		ChurchID:            d.ChurchID,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a persisted Transaction row to its domain shape.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:       m.TransactionID,
		AccountID:           m.AccountID,
		ToAccountID:         m.ToAccountID,
		FromAccountID:       m.FromAccountID,
		Type:                domain.TransactionType(m.Type),
		Amount:              m.Amount,
		Date:                m.Date,
		Description:         m.Description,
		ReferenceNumber:     m.ReferenceNumber,
		PrimaryCategoryID:   m.PrimaryCategoryID,
		SecondaryCategoryID: m.SecondaryCategoryID,
		FamilyName:          m.FamilyName,
		MemberName:          m.MemberName,
		ChurchID:            m.ChurchID,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts persisted rows to domain transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		out[i] = ToDomainTransaction(m)
	}
	return out
}

// ToModelTransactionHistory converts a domain history snapshot to its persisted shape.
func ToModelTransactionHistory(d domain.TransactionHistory) models.TransactionHistory {
	return models.TransactionHistory{
		HistoryID:       d.HistoryID,
		TransactionID:   d.TransactionID,
		Amount:          d.Amount,
		Description:     d.Description,
		Type:            string(d.Type),
		Date:            d.Date,
		ReferenceNumber: d.ReferenceNumber,
		ModifiedAt:      d.ModifiedAt,
		ModifiedBy:      d.ModifiedBy,
	}
}

// ToDomainTransactionHistory converts a persisted history row to its domain shape.
func ToDomainTransactionHistory(m models.TransactionHistory) domain.TransactionHistory {
	return domain.TransactionHistory{
		HistoryID:       m.HistoryID,
		TransactionID:   m.TransactionID,
		Amount:          m.Amount,
		Description:     m.Description,
		Type:            domain.TransactionType(m.Type),
		Date:            m.Date,
		ReferenceNumber: m.ReferenceNumber,
		ModifiedAt:      m.ModifiedAt,
		ModifiedBy:      m.ModifiedBy,
	}
}
