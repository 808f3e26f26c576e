package mapping

import (
	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
	"github.com/parish-dms/parish_ledger_app/internal/models"
)

// ToDomainPrimaryCategory converts a persisted primary category row.
func ToDomainPrimaryCategory(m models.PrimaryCategory) domain.PrimaryCategory {
	return domain.PrimaryCategory{
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Description: m.Description,
		Direction:   domain.CategoryDirection(m.Direction),
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSecondaryCategory converts a persisted secondary category row.
func ToDomainSecondaryCategory(m models.SecondaryCategory) domain.SecondaryCategory {
	return domain.SecondaryCategory{
		CategoryID:        m.CategoryID,
		Name:              m.Name,
		Description:       m.Description,
		PrimaryCategoryID: m.PrimaryCategoryID,
		IsActive:          m.IsActive,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
