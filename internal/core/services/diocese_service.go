package services

import (
	"context"
	"fmt"
	"log/slog"
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

// dioceseService implements the DioceseSvcFacade interface. It owns the plain
// (non-contra) writes to the diocese ledger; cross-ledger contra pairs go
// through the pairing engine.
type dioceseService struct {
	BaseService
	dioceseRepo    portsrepo.DioceseRepositoryFacade
	accountRepo    portsrepo.AccountRepositoryFacade
	referenceSvc   portssvc.ReferenceSvcFacade
	referenceScope string
}

// NewDioceseService creates a new diocese ledger service.
func NewDioceseService(
	dioceseRepo portsrepo.DioceseRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	referenceSvc portssvc.ReferenceSvcFacade,
) portssvc.DioceseSvcFacade {
	return &dioceseService{
		dioceseRepo:    dioceseRepo,
		accountRepo:    accountRepo,
		referenceSvc:   referenceSvc,
		referenceScope: "DIO",
	}
}

var _ portssvc.DioceseSvcFacade = (*dioceseService)(nil)

func (s *dioceseService) CreateDioceseTransaction(ctx context.Context, req dto.CreateDioceseTransactionRequest, creatorUserID string) (*dto.DioceseTransactionResult, error) {
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown diocese entry type %q", apperrors.ErrValidation, req.Type)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, req.Amount.String())
	}

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", req.AccountID, err)
	}
	if account.Level != domain.DioceseLevel {
		return nil, fmt.Errorf("%w: account %s is not a diocese account", apperrors.ErrValidation, req.AccountID)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, req.AccountID)
	}

	reference := req.ReferenceNumber
	if reference == "" {
		reference, err = s.referenceSvc.Generate(ctx, s.referenceScope, req.Date)
		if err != nil {
			return nil, err
		}
	}

	signed, err := accounting.SignedDioceseAmount(req.Type, req.Amount)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	txn := domain.DioceseTransaction{
		TransactionID:   uuid.NewString(),
		AccountID:       req.AccountID,
		CategoryID:      req.CategoryID,
		Type:            req.Type,
		Amount:          req.Amount,
		Description:     req.Description,
		Date:            req.Date,
		ReferenceNumber: reference,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	balanceChanges := map[string]decimal.Decimal{req.AccountID: signed}
	balances, err := s.dioceseRepo.SaveDioceseTransaction(ctx, txn, balanceChanges)
	if err != nil {
		s.LogError(ctx, err, "Failed to save diocese transaction",
			slog.String("account_id", req.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Diocese transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("reference_number", reference))
	return &dto.DioceseTransactionResult{
		Transaction: dto.ToDioceseTransactionResponse(&txn),
		Warnings:    overdrawWarnings(balances),
	}, nil
}

func (s *dioceseService) GetDioceseTransaction(ctx context.Context, transactionID string) (*domain.DioceseTransaction, error) {
	return s.dioceseRepo.FindDioceseTransactionByID(ctx, transactionID)
}

func (s *dioceseService) ListDioceseTransactions(ctx context.Context, accountID string, limit int, nextToken *string) (*dto.ListDioceseTransactionsResponse, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, fmt.Errorf("account %s: %w", accountID, err)
	}

	txns, newNextToken, err := s.dioceseRepo.ListDioceseTransactions(ctx, accountID, limit, nextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListDioceseTransactionsResponse{
		Transactions: dto.ToDioceseTransactionResponses(txns),
		NextToken:    newNextToken,
	}, nil
}
