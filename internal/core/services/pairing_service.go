package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
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

// pairingService implements the PairingSvcFacade interface. No call path here
// may leave one side of a pair written without the other; every write commits
// both rows, the link, and all balance deltas in one repository transaction.
type pairingService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	dioceseRepo     portsrepo.DioceseRepositoryFacade
	accountRepo     portsrepo.AccountRepositoryFacade
	categorySvc     portssvc.CategorySvcFacade
	referenceSvc    portssvc.ReferenceSvcFacade
}

// NewPairingService creates a new pairing engine service.
func NewPairingService(
	transactionRepo portsrepo.TransactionRepositoryFacade,
	dioceseRepo portsrepo.DioceseRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	categorySvc portssvc.CategorySvcFacade,
	referenceSvc portssvc.ReferenceSvcFacade,
) portssvc.PairingSvcFacade {
	return &pairingService{
		transactionRepo: transactionRepo,
		dioceseRepo:     dioceseRepo,
		accountRepo:     accountRepo,
		categorySvc:     categorySvc,
		referenceSvc:    referenceSvc,
	}
}

var _ portssvc.PairingSvcFacade = (*pairingService)(nil)

func (s *pairingService) CreatePair(ctx context.Context, req dto.CreatePairRequest, creatorUserID string) (*dto.PairResult, error) {
	if err := accounting.ValidatePairAmount(req.Amount, req.SourceAccountID, req.DestAccountID); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, []string{req.SourceAccountID, req.DestAccountID})
	if err != nil {
		return nil, err
	}
	for _, id := range []string{req.SourceAccountID, req.DestAccountID} {
		acc, ok := accounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
		if acc.Level == domain.DioceseLevel {
			return nil, fmt.Errorf("%w: account %s is a diocese account, use the diocese contra path", apperrors.ErrValidation, id)
		}
	}

	reference := req.ReferenceNumber
	if reference == "" {
		reference, err = s.referenceSvc.Generate(ctx, strings.ToUpper(string(req.Kind)), req.Date)
		if err != nil {
			return nil, err
		}
	}

	debitType, creditType := req.Kind.EntryTypes()
	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	debit := domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       req.SourceAccountID,
		ToAccountID:     req.DestAccountID,
		Type:            debitType,
		Amount:          req.Amount,
		Date:            req.Date,
		Description:     req.Description,
		ReferenceNumber: reference,
		AuditFields:     audit,
	}
	credit := domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       req.DestAccountID,
		FromAccountID:   req.SourceAccountID,
		Type:            creditType,
		Amount:          req.Amount,
		Date:            req.Date,
		Description:     req.Description,
		ReferenceNumber: reference,
		AuditFields:     audit,
	}
	link := domain.PairLink{
		DebitEntryID:  debit.TransactionID,
		CreditEntryID: credit.TransactionID,
		Ledger:        domain.PastorateLedger,
		CreatedAt:     now,
	}

	balanceChanges := map[string]decimal.Decimal{
		req.SourceAccountID: req.Amount.Neg(),
		req.DestAccountID:   req.Amount,
	}

	balances, err := s.transactionRepo.SavePair(ctx, debit, credit, link, balanceChanges)
	if err != nil {
		s.LogError(ctx, err, "Failed to save pair",
			slog.String("kind", string(req.Kind)),
			slog.String("reference_number", reference))
		return nil, err
	}

	s.LogInfo(ctx, "Pair created",
		slog.String("kind", string(req.Kind)),
		slog.String("debit_id", debit.TransactionID),
		slog.String("credit_id", credit.TransactionID),
		slog.String("reference_number", reference))
	return &dto.PairResult{
		Debit:    dto.ToTransactionResponse(&debit),
		Credit:   dto.ToTransactionResponse(&credit),
		Warnings: overdrawWarnings(balances),
	}, nil
}

// loadPair resolves the debit entry, its link, and the credit partner. A
// missing link or partner is a pair integrity violation, never worked around.
func (s *pairingService) loadPair(ctx context.Context, debitEntryID string) (*domain.Transaction, *domain.Transaction, *domain.PairLink, error) {
	debit, err := s.transactionRepo.FindTransactionByID(ctx, debitEntryID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !debit.Type.IsPaired() {
		return nil, nil, nil, fmt.Errorf("%w: entry %s is not part of a pair", apperrors.ErrValidation, debitEntryID)
	}
	if debit.Type.IsCredit() {
		return nil, nil, nil, fmt.Errorf("%w: pairs are identified by their debit entry, %s is the credit side",
			apperrors.ErrValidation, debitEntryID)
	}

	link, err := s.transactionRepo.FindPairLinkByDebitID(ctx, debitEntryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, nil, fmt.Errorf("%w: no link for debit entry %s", apperrors.ErrPairIntegrity, debitEntryID)
		}
		return nil, nil, nil, err
	}
	if link.Ledger != domain.PastorateLedger {
		return nil, nil, nil, fmt.Errorf("%w: entry %s belongs to a cross-ledger pair, which is immutable",
			apperrors.ErrValidation, debitEntryID)
	}

	credit, err := s.transactionRepo.FindTransactionByID(ctx, link.CreditEntryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, nil, fmt.Errorf("%w: credit partner %s of debit entry %s is missing",
				apperrors.ErrPairIntegrity, link.CreditEntryID, debitEntryID)
		}
		return nil, nil, nil, err
	}
	return debit, credit, link, nil
}

func (s *pairingService) EditPair(ctx context.Context, debitEntryID string, req dto.UpdatePairRequest, userID string) (*dto.PairResult, error) {
	debit, credit, _, err := s.loadPair(ctx, debitEntryID)
	if err != nil {
		return nil, err
	}

	oldAmount := debit.Amount
	now := time.Now()

	debitHistory := domain.Snapshot(*debit, userID, now)
	debitHistory.HistoryID = uuid.NewString()
	creditHistory := domain.Snapshot(*credit, userID, now)
	creditHistory.HistoryID = uuid.NewString()

	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, req.Amount.String())
		}
		debit.Amount = *req.Amount
		credit.Amount = *req.Amount
	}
	if req.Date != nil {
		debit.Date = *req.Date
		credit.Date = *req.Date
	}
	if req.Description != nil {
		debit.Description = *req.Description
		credit.Description = *req.Description
	}
	if req.PrimaryCategoryID != nil {
		debit.PrimaryCategoryID = *req.PrimaryCategoryID
		credit.PrimaryCategoryID = *req.PrimaryCategoryID
	}
	if req.SecondaryCategoryID != nil {
		debit.SecondaryCategoryID = *req.SecondaryCategoryID
		credit.SecondaryCategoryID = *req.SecondaryCategoryID
	}
	if req.PrimaryCategoryID != nil || req.SecondaryCategoryID != nil {
		// The direction rule cannot apply here: one category spans both the
		// debit and the credit side of the pair.
		if err := s.categorySvc.ValidateCategoryRefs(ctx, debit.PrimaryCategoryID, debit.SecondaryCategoryID); err != nil {
			return nil, err
		}
	}
	for _, txn := range []*domain.Transaction{debit, credit} {
		txn.LastUpdatedAt = now
		txn.LastUpdatedBy = userID
	}

	// Reverse the old deltas and apply the new ones in one change set. Both
	// sides always carry the same amount, so the diff is symmetric.
	diff := debit.Amount.Sub(oldAmount)
	balanceChanges := map[string]decimal.Decimal{
		debit.AccountID:  diff.Neg(),
		credit.AccountID: diff,
	}

	balances, err := s.transactionRepo.UpdatePair(ctx, *debit, *credit,
		[]domain.TransactionHistory{debitHistory, creditHistory}, balanceChanges)
	if err != nil {
		s.LogError(ctx, err, "Failed to update pair",
			slog.String("debit_id", debitEntryID))
		return nil, err
	}

	s.LogInfo(ctx, "Pair updated", slog.String("debit_id", debitEntryID))
	return &dto.PairResult{
		Debit:    dto.ToTransactionResponse(debit),
		Credit:   dto.ToTransactionResponse(credit),
		Warnings: overdrawWarnings(balances),
	}, nil
}

func (s *pairingService) DeletePair(ctx context.Context, debitEntryID string, userID string) error {
	debit, credit, link, err := s.loadPair(ctx, debitEntryID)
	if err != nil {
		return err
	}

	balanceChanges := map[string]decimal.Decimal{
		debit.AccountID:  debit.Amount,
		credit.AccountID: credit.Amount.Neg(),
	}

	if _, err := s.transactionRepo.DeletePair(ctx, *link, balanceChanges); err != nil {
		s.LogError(ctx, err, "Failed to delete pair",
			slog.String("debit_id", debitEntryID))
		return err
	}

	s.LogInfo(ctx, "Pair deleted",
		slog.String("debit_id", debitEntryID),
		slog.String("credit_id", link.CreditEntryID),
		slog.String("deleted_by", userID))
	return nil
}

func (s *pairingService) GetPair(ctx context.Context, debitEntryID string) (*dto.PairResponse, error) {
	debit, credit, _, err := s.loadPair(ctx, debitEntryID)
	if err != nil {
		return nil, err
	}
	return &dto.PairResponse{
		Debit:  dto.ToTransactionResponse(debit),
		Credit: dto.ToTransactionResponse(credit),
	}, nil
}

// CreateDioceseContra moves funds between a diocese account and a pastorate
// account. Three rows commit atomically: the diocese entry, its mirror
// recording the counterpart leg in the diocese ledger, and the regular
// transaction giving the pastorate account its own ledger view. Balance
// deltas touch each account exactly once: the diocese account through its
// entry, the pastorate account through the spawned transaction (mirror rows
// on non-diocese accounts carry no balance weight).
func (s *pairingService) CreateDioceseContra(ctx context.Context, req dto.CreateDioceseContraRequest, creatorUserID string) (*dto.DioceseContraResult, error) {
	if err := accounting.ValidatePairAmount(req.Amount, req.DioceseAccountID, req.PastorateAccountID); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown diocese entry type %q", apperrors.ErrValidation, req.Type)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, []string{req.DioceseAccountID, req.PastorateAccountID})
	if err != nil {
		return nil, err
	}
	dioceseAcc, ok := accounts[req.DioceseAccountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, req.DioceseAccountID)
	}
	pastorateAcc, ok := accounts[req.PastorateAccountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, req.PastorateAccountID)
	}
	if dioceseAcc.Level != domain.DioceseLevel {
		return nil, fmt.Errorf("%w: account %s is not a diocese account", apperrors.ErrValidation, req.DioceseAccountID)
	}
	if pastorateAcc.Level == domain.DioceseLevel {
		return nil, fmt.Errorf("%w: account %s is a diocese account, the counterpart must be pastorate or church level",
			apperrors.ErrValidation, req.PastorateAccountID)
	}
	if !dioceseAcc.IsActive || !pastorateAcc.IsActive {
		return nil, fmt.Errorf("%w: both accounts must be active", apperrors.ErrValidation)
	}

	reference := req.ReferenceNumber
	if reference == "" {
		reference, err = s.referenceSvc.Generate(ctx, "DIO", req.Date)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	entry := domain.DioceseTransaction{
		TransactionID:   uuid.NewString(),
		AccountID:       req.DioceseAccountID,
		CategoryID:      req.CategoryID,
		Type:            req.Type,
		Amount:          req.Amount,
		Description:     req.Description,
		Date:            req.Date,
		ReferenceNumber: reference,
		IsContra:        true,
		ContraAccountID: req.PastorateAccountID,
		AuditFields:     audit,
	}
	mirrorEntry := domain.DioceseTransaction{
		TransactionID:   uuid.NewString(),
		AccountID:       req.PastorateAccountID,
		CategoryID:      req.CategoryID,
		Type:            req.Type.Opposite(),
		Amount:          req.Amount,
		Description:     req.Description,
		Date:            req.Date,
		ReferenceNumber: reference,
		IsContra:        true,
		ContraAccountID: req.DioceseAccountID,
		AuditFields:     audit,
	}

	// The spawned pastorate transaction carries the opposite sign of the
	// diocese entry: a diocese debit credits the pastorate account.
	mirrorType := domain.ContraCredit
	mirrorTxn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       req.PastorateAccountID,
		FromAccountID:   req.DioceseAccountID,
		Type:            mirrorType,
		Amount:          req.Amount,
		Date:            req.Date,
		Description:     req.Description,
		ReferenceNumber: reference,
		AuditFields:     audit,
	}
	if req.Type == domain.DioceseCredit {
		mirrorTxn.Type = domain.ContraDebit
		mirrorTxn.FromAccountID = ""
		mirrorTxn.ToAccountID = req.DioceseAccountID
	}

	debitEntry, creditEntry := entry, mirrorEntry
	if entry.Type == domain.DioceseCredit {
		debitEntry, creditEntry = mirrorEntry, entry
	}

	link := domain.PairLink{
		DebitEntryID:        debitEntry.TransactionID,
		CreditEntryID:       creditEntry.TransactionID,
		Ledger:              domain.DioceseLedger,
		MirrorTransactionID: mirrorTxn.TransactionID,
		CreatedAt:           now,
	}

	dioceseSigned, err := accounting.SignedDioceseAmount(req.Type, req.Amount)
	if err != nil {
		return nil, err
	}
	pastorateSigned, err := accounting.SignedAmount(mirrorTxn.Type, mirrorTxn.Amount)
	if err != nil {
		return nil, err
	}
	balanceChanges := map[string]decimal.Decimal{
		req.DioceseAccountID:   dioceseSigned,
		req.PastorateAccountID: pastorateSigned,
	}

	balances, err := s.dioceseRepo.SaveDioceseContra(ctx, debitEntry, creditEntry, mirrorTxn, link, balanceChanges)
	if err != nil {
		s.LogError(ctx, err, "Failed to save diocese contra",
			slog.String("diocese_account_id", req.DioceseAccountID),
			slog.String("reference_number", reference))
		return nil, err
	}

	s.LogInfo(ctx, "Diocese contra created",
		slog.String("debit_id", debitEntry.TransactionID),
		slog.String("credit_id", creditEntry.TransactionID),
		slog.String("mirror_id", mirrorTxn.TransactionID),
		slog.String("reference_number", reference))
	return &dto.DioceseContraResult{
		Debit:    dto.ToDioceseTransactionResponse(&debitEntry),
		Credit:   dto.ToDioceseTransactionResponse(&creditEntry),
		Mirror:   dto.ToTransactionResponse(&mirrorTxn),
		Warnings: overdrawWarnings(balances),
	}, nil
}
