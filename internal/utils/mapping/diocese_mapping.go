package mapping

import (
	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
	"github.com/parish-dms/parish_ledger_app/internal/models"
)

// ToModelDioceseTransaction converts a domain diocese entry to its persisted shape.
func ToModelDioceseTransaction(d domain.DioceseTransaction) models.DioceseTransaction {
	return models.DioceseTransaction{
		TransactionID:   d.TransactionID,
		AccountID:       d.AccountID,
		CategoryID:      d.CategoryID,
		Type:            string(d.Type),
		Amount:          d.Amount,
		Description:     d.Description,
		Date:            d.Date,
		ReferenceNumber: d.ReferenceNumber,
		IsContra:        d.IsContra,
		ContraAccountID: d.ContraAccountID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDioceseTransaction converts a persisted diocese row to its domain shape.
func ToDomainDioceseTransaction(m models.DioceseTransaction) domain.DioceseTransaction {
	return domain.DioceseTransaction{
		TransactionID:   m.TransactionID,
		AccountID:       m.AccountID,
		CategoryID:      m.CategoryID,
		Type:            domain.DioceseEntryType(m.Type),
		Amount:          m.Amount,
		Description:     m.Description,
		Date:            m.Date,
		ReferenceNumber: m.ReferenceNumber,
		IsContra:        m.IsContra,
		ContraAccountID: m.ContraAccountID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDioceseTransactionSlice converts persisted rows to domain entries.
func ToDomainDioceseTransactionSlice(ms []models.DioceseTransaction) []domain.DioceseTransaction {
	out := make([]domain.DioceseTransaction, len(ms))
	for i, m := range ms {
		out[i] = ToDomainDioceseTransaction(m)
	}
	return out
}

// ToDomainPairLink converts a persisted pair link row to its domain shape.
func ToDomainPairLink(m models.PairLink) domain.PairLink {
	return domain.PairLink{
		DebitEntryID:        m.DebitEntryID,
		CreditEntryID:       m.CreditEntryID,
		Ledger:              domain.PairLedger(m.Ledger),
		MirrorTransactionID: m.MirrorTransactionID,
		CreatedAt:           m.CreatedAt,
	}
}
