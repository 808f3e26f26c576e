package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
	portsrepo "github.com/parish-dms/parish_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/parish-dms/parish_ledger_app/internal/core/ports/services"
)

// auditService implements the AuditSvcFacade interface. It reads committed
// data only and never repairs; findings go back to the operator.
type auditService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
}

// NewAuditService creates a new consistency checker service.
func NewAuditService(transactionRepo portsrepo.TransactionRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{transactionRepo: transactionRepo}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// ScanContraEntries groups paired-type entries by reference number and checks
// each group: exactly two members, equal amounts, cross-referenced accounts,
// equal dates. Mirrors spawned by cross-ledger diocese pairs are singletons
// by construction and are skipped; a singleton with no diocese link behind it
// is an orphaned pair side and is reported.
func (s *auditService) ScanContraEntries(ctx context.Context) ([]domain.ContraIssue, error) {
	paired, err := s.transactionRepo.FindPairedTransactions(ctx)
	if err != nil {
		return nil, err
	}
	mirrorIDs, err := s.transactionRepo.ListMirrorTransactionIDs(ctx)
	if err != nil {
		return nil, err
	}

	groups := map[string][]domain.Transaction{}
	for _, txn := range paired {
		if mirrorIDs[txn.TransactionID] {
			continue
		}
		groups[txn.ReferenceNumber] = append(groups[txn.ReferenceNumber], txn)
	}

	issues := []domain.ContraIssue{}
	for reference, group := range groups {
		issues = append(issues, checkPairGroup(reference, group)...)
	}

	// Deterministic report ordering: repeated scans over unchanged data must
	// yield identical output.
	sort.Slice(issues, func(i, j int) bool {
		if !issues[i].Date.Equal(issues[j].Date) {
			return issues[i].Date.Before(issues[j].Date)
		}
		if issues[i].ReferenceNumber != issues[j].ReferenceNumber {
			return issues[i].ReferenceNumber < issues[j].ReferenceNumber
		}
		return issues[i].Kind < issues[j].Kind
	})

	s.LogInfo(ctx, "Contra entry scan finished",
		slog.Int("groups", len(groups)),
		slog.Int("issues", len(issues)))
	return issues, nil
}

// checkPairGroup verifies one reference number's entries.
func checkPairGroup(reference string, group []domain.Transaction) []domain.ContraIssue {
	if len(group) != 2 {
		return []domain.ContraIssue{{
			ReferenceNumber: reference,
			Kind:            domain.WrongPairSize,
			Date:            group[0].Date,
			Details:         fmt.Sprintf("expected 2 entries, found %d", len(group)),
		}}
	}

	var debit, credit *domain.Transaction
	for i := range group {
		if group[i].Type.IsCredit() {
			credit = &group[i]
		} else {
			debit = &group[i]
		}
	}
	if debit == nil || credit == nil {
		return []domain.ContraIssue{{
			ReferenceNumber: reference,
			Kind:            domain.WrongPairSize,
			Date:            group[0].Date,
			Details:         "expected one debit and one credit entry",
		}}
	}

	var issues []domain.ContraIssue
	if !debit.Amount.Equal(credit.Amount) {
		issues = append(issues, domain.ContraIssue{
			ReferenceNumber: reference,
			Kind:            domain.AmountMismatch,
			Date:            debit.Date,
			Details:         fmt.Sprintf("debit %s vs credit %s", debit.Amount.StringFixed(2), credit.Amount.StringFixed(2)),
		})
	}
	if debit.AccountID != credit.FromAccountID || debit.ToAccountID != credit.AccountID {
		issues = append(issues, domain.ContraIssue{
			ReferenceNumber: reference,
			Kind:            domain.AccountMismatch,
			Date:            debit.Date,
			Details: fmt.Sprintf("debit %s->%s vs credit %s->%s",
				debit.AccountID, debit.ToAccountID, credit.FromAccountID, credit.AccountID),
		})
	}
	if !debit.Date.Equal(credit.Date) {
		issues = append(issues, domain.ContraIssue{
			ReferenceNumber: reference,
			Kind:            domain.DateMismatch,
			Date:            debit.Date,
			Details: fmt.Sprintf("debit dated %s, credit dated %s",
				debit.Date.Format("2006-01-02"), credit.Date.Format("2006-01-02")),
		})
	}
	return issues
}
