package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/parish-dms/parish_ledger_app/internal/apperrors"
	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
	portsrepo "github.com/parish-dms/parish_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/parish-dms/parish_ledger_app/internal/core/ports/services"
	"github.com/parish-dms/parish_ledger_app/internal/dto"
	"github.com/parish-dms/parish_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// ledgerService implements the LedgerSvcFacade interface. It owns every
// non-paired write to the pastorate/church transaction log; cached balances
// change only through the repository's atomic write paths.
type ledgerService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	accountRepo     portsrepo.AccountRepositoryFacade
	dioceseRepo     portsrepo.DioceseReader
	categorySvc     portssvc.CategorySvcFacade
	referenceSvc    portssvc.ReferenceSvcFacade
	referenceScope  string
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(
	transactionRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	dioceseRepo portsrepo.DioceseReader,
	categorySvc portssvc.CategorySvcFacade,
	referenceSvc portssvc.ReferenceSvcFacade,
	referenceScope string,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		dioceseRepo:     dioceseRepo,
		categorySvc:     categorySvc,
		referenceSvc:    referenceSvc,
		referenceScope:  referenceScope,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// requireActiveAccount loads an account and checks it accepts new entries.
func (s *ledgerService) requireActiveAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", accountID, err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, accountID)
	}
	return account, nil
}

func (s *ledgerService) resolveReference(ctx context.Context, given string, asOf time.Time) (string, error) {
	if given != "" {
		return given, nil
	}
	return s.referenceSvc.Generate(ctx, s.referenceScope, asOf)
}

func (s *ledgerService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*dto.TransactionResult, error) {
	if !req.Type.IsValid() || req.Type.IsPaired() {
		return nil, fmt.Errorf("%w: type %s is not a standalone entry type", apperrors.ErrValidation, req.Type)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, req.Amount.String())
	}

	account, err := s.requireActiveAccount(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if account.Level == domain.DioceseLevel {
		return nil, fmt.Errorf("%w: account %s is a diocese account, use the diocese ledger", apperrors.ErrValidation, req.AccountID)
	}
	if err := s.categorySvc.ValidateCategoryPair(ctx, req.PrimaryCategoryID, req.SecondaryCategoryID, req.Type); err != nil {
		return nil, err
	}

	reference, err := s.resolveReference(ctx, req.ReferenceNumber, req.Date)
	if err != nil {
		return nil, err
	}

	signed, err := accounting.SignedAmount(req.Type, req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:       uuid.NewString(),
		AccountID:           req.AccountID,
		Type:                req.Type,
		Amount:              req.Amount,
		Date:                req.Date,
		Description:         req.Description,
		ReferenceNumber:     reference,
		PrimaryCategoryID:   req.PrimaryCategoryID,
		SecondaryCategoryID: req.SecondaryCategoryID,
		FamilyName:          req.FamilyName,
		MemberName:          req.MemberName,
		ChurchID:            req.ChurchID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	balanceChanges := map[string]decimal.Decimal{req.AccountID: signed}
	balances, err := s.transactionRepo.SaveTransaction(ctx, txn, balanceChanges)
	if err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("account_id", req.AccountID),
			slog.String("type", string(req.Type)))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("reference_number", reference))
	return &dto.TransactionResult{
		Transaction: dto.ToTransactionResponse(&txn),
		Warnings:    overdrawWarnings(balances),
	}, nil
}

func (s *ledgerService) EditTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*dto.TransactionResult, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Type.IsPaired() {
		return nil, fmt.Errorf("%w: entry %s is one side of a pair, edit it through the pairing engine",
			apperrors.ErrValidation, transactionID)
	}

	now := time.Now()
	history := domain.Snapshot(*txn, userID, now)
	history.HistoryID = uuid.NewString()

	oldSigned, err := accounting.SignedAmount(txn.Type, txn.Amount)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, req.Amount.String())
		}
		txn.Amount = *req.Amount
	}
	if req.Date != nil {
		txn.Date = *req.Date
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.PrimaryCategoryID != nil {
		txn.PrimaryCategoryID = *req.PrimaryCategoryID
	}
	if req.SecondaryCategoryID != nil {
		txn.SecondaryCategoryID = *req.SecondaryCategoryID
	}
	if err := s.categorySvc.ValidateCategoryPair(ctx, txn.PrimaryCategoryID, txn.SecondaryCategoryID, txn.Type); err != nil {
		return nil, err
	}
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID

	newSigned, err := accounting.SignedAmount(txn.Type, txn.Amount)
	if err != nil {
		return nil, err
	}

	// Reverse the old delta and apply the new one in a single change set.
	balanceChanges := map[string]decimal.Decimal{
		txn.AccountID: newSigned.Sub(oldSigned),
	}

	balances, err := s.transactionRepo.UpdateTransaction(ctx, *txn, history, balanceChanges)
	if err != nil {
		s.LogError(ctx, err, "Failed to update transaction",
			slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction updated", slog.String("transaction_id", transactionID))
	return &dto.TransactionResult{
		Transaction: dto.ToTransactionResponse(txn),
		Warnings:    overdrawWarnings(balances),
	}, nil
}

func (s *ledgerService) DeleteTransaction(ctx context.Context, transactionID string, userID string) error {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if txn.Type.IsPaired() {
		return fmt.Errorf("%w: entry %s is one side of a pair, delete it through the pairing engine",
			apperrors.ErrValidation, transactionID)
	}

	signed, err := accounting.SignedAmount(txn.Type, txn.Amount)
	if err != nil {
		return err
	}

	balanceChanges := map[string]decimal.Decimal{txn.AccountID: signed.Neg()}
	if _, err := s.transactionRepo.DeleteTransaction(ctx, transactionID, balanceChanges); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction",
			slog.String("transaction_id", transactionID))
		return err
	}

	s.LogInfo(ctx, "Transaction deleted",
		slog.String("transaction_id", transactionID),
		slog.String("deleted_by", userID))
	return nil
}

func (s *ledgerService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.transactionRepo.FindTransactionByID(ctx, transactionID)
}

func (s *ledgerService) ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, fmt.Errorf("account %s: %w", accountID, err)
	}

	txns, nextToken, err := s.transactionRepo.ListTransactionsByAccount(ctx, accountID, params.Type, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

func (s *ledgerService) ListTransactionHistory(ctx context.Context, transactionID string) ([]domain.TransactionHistory, error) {
	if _, err := s.transactionRepo.FindTransactionByID(ctx, transactionID); err != nil {
		return nil, err
	}
	return s.transactionRepo.FindHistoryByTransactionID(ctx, transactionID)
}

// ComputeBalance derives the account's balance from its stored rows,
// independent of the cached value. Diocese-level accounts derive from the
// diocese ledger, all others from the pastorate/church log.
func (s *ledgerService) ComputeBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("account %s: %w", accountID, err)
	}

	if account.Level == domain.DioceseLevel {
		dioceseTxns, err := s.dioceseRepo.FindDioceseTransactionsByAccountID(ctx, accountID)
		if err != nil {
			return decimal.Zero, err
		}
		return accounting.ComputeDioceseBalance(dioceseTxns)
	}

	txns, err := s.transactionRepo.FindTransactionsByAccountID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return accounting.ComputeBalance(txns)
}

// ReconcileAll recomputes every account's balance from scratch. Each account
// repairs inside its own short database transaction so one failure never
// aborts the rest of the run.
func (s *ledgerService) ReconcileAll(ctx context.Context, userID string) (*domain.RepairReport, error) {
	accountIDs, err := s.accountRepo.ListAccountIDs(ctx)
	if err != nil {
		return nil, err
	}

	report := &domain.RepairReport{
		Repairs:   []domain.BalanceRepair{},
		Failures:  []domain.RepairFailure{},
		StartedAt: time.Now(),
	}

	for _, accountID := range accountIDs {
		repair, err := s.accountRepo.RecalculateBalance(ctx, accountID, userID, time.Now())
		if err != nil {
			s.LogError(ctx, err, "Balance repair failed",
				slog.String("account_id", accountID))
			report.Failures = append(report.Failures, domain.RepairFailure{
				AccountID: accountID,
				Reason:    err.Error(),
			})
			continue
		}
		report.Checked++
		if repair != nil {
			s.LogWarn(ctx, "Cached balance diverged, repaired",
				slog.String("account_id", accountID),
				slog.String("old_balance", repair.OldBalance.String()),
				slog.String("new_balance", repair.NewBalance.String()))
			report.Repairs = append(report.Repairs, *repair)
		}
	}

	report.Duration = time.Since(report.StartedAt)
	s.LogInfo(ctx, "Reconciliation run finished",
		slog.Int("checked", report.Checked),
		slog.Int("repaired", len(report.Repairs)),
		slog.Int("failed", len(report.Failures)))
	return report, nil
}

// overdrawWarnings renders one warning per account left negative by a write.
// Only reachable when negative balances are allowed by configuration;
// otherwise the repository rejects the write outright.
func overdrawWarnings(balances map[string]decimal.Decimal) []string {
	ids := make([]string, 0, len(balances))
	for id := range balances {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var warnings []string
	for _, id := range ids {
		if balances[id].IsNegative() {
			warnings = append(warnings, fmt.Sprintf("account %s overdrawn: balance is %s", id, balances[id].StringFixed(2)))
		}
	}
	return warnings
}
