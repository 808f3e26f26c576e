package services

import (
	"context"

	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
)

// AuditSvcFacade is the offline consistency checker over paired entries. It
// only reads committed data; it never repairs.
type AuditSvcFacade interface {
	// ScanContraEntries groups paired-type entries by reference number and
	// reports every pair that is the wrong size or whose sides disagree on
	// amount, accounts, or date. The result ordering is deterministic: running
	// the scan twice over unchanged data yields identical reports.
	ScanContraEntries(ctx context.Context) ([]domain.ContraIssue, error)
}
