package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/parish-dms/parish_ledger_app/internal/apperrors"
	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
	portssvc "github.com/parish-dms/parish_ledger_app/internal/core/ports/services"
	"github.com/parish-dms/parish_ledger_app/internal/core/services"
	"github.com/parish-dms/parish_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PairingServiceTestSuite struct {
	suite.Suite
	mockTransactionRepo *MockTransactionRepository
	mockDioceseRepo     *MockDioceseRepository
	mockAccountRepo     *MockAccountRepository
	mockCategorySvc     *MockCategoryService
	mockReferenceSvc    *MockReferenceService
	service             portssvc.PairingSvcFacade
	sourceAccount       domain.Account
	destAccount         domain.Account
	dioceseAccount      domain.Account
	userID              string
}

func (suite *PairingServiceTestSuite) SetupTest() {
	suite.mockTransactionRepo = new(MockTransactionRepository)
	suite.mockDioceseRepo = new(MockDioceseRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCategorySvc = new(MockCategoryService)
	suite.mockReferenceSvc = new(MockReferenceService)
	suite.service = services.NewPairingService(
		suite.mockTransactionRepo,
		suite.mockDioceseRepo,
		suite.mockAccountRepo,
		suite.mockCategorySvc,
		suite.mockReferenceSvc,
	)

	suite.userID = uuid.NewString()
	suite.sourceAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Name:        "Hope Pastorate cash",
		Level:       domain.PastorateLevel,
		PastorateID: uuid.NewString(),
		IsActive:    true,
	}
	suite.destAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Name:        "Hope Pastorate bank",
		Level:       domain.PastorateLevel,
		PastorateID: suite.sourceAccount.PastorateID,
		IsActive:    true,
	}
	suite.dioceseAccount = domain.Account{
		AccountID: uuid.NewString(),
		Name:      "Diocese general fund",
		Level:     domain.DioceseLevel,
		IsActive:  true,
	}
}

func (suite *PairingServiceTestSuite) accountsMap(accounts ...domain.Account) map[string]domain.Account {
	out := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		out[acc.AccountID] = acc
	}
	return out
}

func (suite *PairingServiceTestSuite) TestCreatePair_Success() {
	ctx := context.Background()
	date := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)
	req := dto.CreatePairRequest{
		Kind:            domain.IntraPair,
		SourceAccountID: suite.sourceAccount.AccountID,
		DestAccountID:   suite.destAccount.AccountID,
		Amount:          decimal.NewFromInt(200),
		Date:            date,
		Description:     "Cash to bank",
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{req.SourceAccountID, req.DestAccountID}).
		Return(suite.accountsMap(suite.sourceAccount, suite.destAccount), nil).Once()
	suite.mockReferenceSvc.On("Generate", ctx, "INTRA", date).Return("INTRA-202505-0001", nil).Once()
	suite.mockTransactionRepo.On("SavePair", ctx,
		mock.MatchedBy(func(debit domain.Transaction) bool {
			return debit.Type == domain.IntraDebit &&
				debit.AccountID == req.SourceAccountID &&
				debit.ToAccountID == req.DestAccountID
		}),
		mock.MatchedBy(func(credit domain.Transaction) bool {
			return credit.Type == domain.IntraCredit &&
				credit.AccountID == req.DestAccountID &&
				credit.FromAccountID == req.SourceAccountID
		}),
		mock.AnythingOfType("domain.PairLink"),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes[req.SourceAccountID].Equal(decimal.NewFromInt(-200)) &&
				changes[req.DestAccountID].Equal(decimal.NewFromInt(200))
		})).Return(map[string]decimal.Decimal{
		req.SourceAccountID: decimal.NewFromInt(300),
		req.DestAccountID:   decimal.NewFromInt(1200),
	}, nil).Once()

	result, err := suite.service.CreatePair(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("INTRA-202505-0001", result.Debit.ReferenceNumber)
	suite.Equal(result.Debit.ReferenceNumber, result.Credit.ReferenceNumber)
	suite.NotEqual(result.Debit.TransactionID, result.Credit.TransactionID)
	suite.Empty(result.Warnings)
	suite.mockTransactionRepo.AssertExpectations(suite.T())
}

func (suite *PairingServiceTestSuite) TestCreatePair_SameAccountRejected() {
	ctx := context.Background()
	req := dto.CreatePairRequest{
		Kind:            domain.ContraPair,
		SourceAccountID: suite.sourceAccount.AccountID,
		DestAccountID:   suite.sourceAccount.AccountID,
		Amount:          decimal.NewFromInt(50),
		Date:            time.Now(),
	}

	_, err := suite.service.CreatePair(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "SavePair")
}

func (suite *PairingServiceTestSuite) TestCreatePair_DioceseAccountRejected() {
	ctx := context.Background()
	req := dto.CreatePairRequest{
		Kind:            domain.ContraPair,
		SourceAccountID: suite.dioceseAccount.AccountID,
		DestAccountID:   suite.destAccount.AccountID,
		Amount:          decimal.NewFromInt(50),
		Date:            time.Now(),
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{req.SourceAccountID, req.DestAccountID}).
		Return(suite.accountsMap(suite.dioceseAccount, suite.destAccount), nil).Once()

	_, err := suite.service.CreatePair(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "SavePair")
}

func (suite *PairingServiceTestSuite) TestEditPair_SymmetricDelta() {
	ctx := context.Background()
	debit := domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       suite.sourceAccount.AccountID,
		ToAccountID:     suite.destAccount.AccountID,
		Type:            domain.ContraDebit,
		Amount:          decimal.NewFromInt(100),
		ReferenceNumber: "CONTRA-202505-0004",
	}
	credit := domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       suite.destAccount.AccountID,
		FromAccountID:   suite.sourceAccount.AccountID,
		Type:            domain.ContraCredit,
		Amount:          decimal.NewFromInt(100),
		ReferenceNumber: "CONTRA-202505-0004",
	}
	link := domain.PairLink{
		DebitEntryID:  debit.TransactionID,
		CreditEntryID: credit.TransactionID,
		Ledger:        domain.PastorateLedger,
	}
	newAmount := decimal.NewFromInt(130)
	req := dto.UpdatePairRequest{Amount: &newAmount}

	suite.mockTransactionRepo.On("FindTransactionByID", ctx, debit.TransactionID).Return(&debit, nil).Once()
	suite.mockTransactionRepo.On("FindPairLinkByDebitID", ctx, debit.TransactionID).Return(&link, nil).Once()
	suite.mockTransactionRepo.On("FindTransactionByID", ctx, credit.TransactionID).Return(&credit, nil).Once()
	// Amount grew by 30: the debit side loses 30 more, the credit side gains 30 more.
	suite.mockTransactionRepo.On("UpdatePair", ctx,
		mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(histories []domain.TransactionHistory) bool {
			return len(histories) == 2
		}),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes[debit.AccountID].Equal(decimal.NewFromInt(-30)) &&
				changes[credit.AccountID].Equal(decimal.NewFromInt(30))
		})).Return(map[string]decimal.Decimal{
		debit.AccountID:  decimal.NewFromInt(70),
		credit.AccountID: decimal.NewFromInt(230),
	}, nil).Once()

	result, err := suite.service.EditPair(ctx, debit.TransactionID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.Debit.Amount.Equal(newAmount))
	suite.True(result.Credit.Amount.Equal(newAmount))
	suite.mockTransactionRepo.AssertExpectations(suite.T())
}

func (suite *PairingServiceTestSuite) TestEditPair_CreditSideRejected() {
	ctx := context.Background()
	credit := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     suite.destAccount.AccountID,
		Type:          domain.ContraCredit,
		Amount:        decimal.NewFromInt(100),
	}

	suite.mockTransactionRepo.On("FindTransactionByID", ctx, credit.TransactionID).Return(&credit, nil).Once()

	_, err := suite.service.EditPair(ctx, credit.TransactionID, dto.UpdatePairRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "UpdatePair")
}

func (suite *PairingServiceTestSuite) TestEditPair_MissingLink() {
	ctx := context.Background()
	debit := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     suite.sourceAccount.AccountID,
		Type:          domain.IntraDebit,
		Amount:        decimal.NewFromInt(60),
	}

	suite.mockTransactionRepo.On("FindTransactionByID", ctx, debit.TransactionID).Return(&debit, nil).Once()
	suite.mockTransactionRepo.On("FindPairLinkByDebitID", ctx, debit.TransactionID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.EditPair(ctx, debit.TransactionID, dto.UpdatePairRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPairIntegrity)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "UpdatePair")
}

func (suite *PairingServiceTestSuite) TestEditPair_UnknownCategoryRejected() {
	ctx := context.Background()
	debit := domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       suite.sourceAccount.AccountID,
		ToAccountID:     suite.destAccount.AccountID,
		Type:            domain.IntraDebit,
		Amount:          decimal.NewFromInt(80),
		ReferenceNumber: "INTRA-202506-0001",
	}
	credit := domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       suite.destAccount.AccountID,
		FromAccountID:   suite.sourceAccount.AccountID,
		Type:            domain.IntraCredit,
		Amount:          decimal.NewFromInt(80),
		ReferenceNumber: "INTRA-202506-0001",
	}
	link := domain.PairLink{
		DebitEntryID:  debit.TransactionID,
		CreditEntryID: credit.TransactionID,
		Ledger:        domain.PastorateLedger,
	}
	unknownCategoryID := uuid.NewString()
	req := dto.UpdatePairRequest{PrimaryCategoryID: &unknownCategoryID}

	suite.mockTransactionRepo.On("FindTransactionByID", ctx, debit.TransactionID).Return(&debit, nil).Once()
	suite.mockTransactionRepo.On("FindPairLinkByDebitID", ctx, debit.TransactionID).Return(&link, nil).Once()
	suite.mockTransactionRepo.On("FindTransactionByID", ctx, credit.TransactionID).Return(&credit, nil).Once()
	suite.mockCategorySvc.On("ValidateCategoryRefs", ctx, unknownCategoryID, "").
		Return(apperrors.ErrNotFound).Once()

	_, err := suite.service.EditPair(ctx, debit.TransactionID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockCategorySvc.AssertExpectations(suite.T())
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "UpdatePair")
}

func (suite *PairingServiceTestSuite) TestEditPair_CategoryChangeValidated() {
	ctx := context.Background()
	primaryID := uuid.NewString()
	secondaryID := uuid.NewString()
	debit := domain.Transaction{
		TransactionID:     uuid.NewString(),
		AccountID:         suite.sourceAccount.AccountID,
		ToAccountID:       suite.destAccount.AccountID,
		Type:              domain.ContraDebit,
		Amount:            decimal.NewFromInt(50),
		PrimaryCategoryID: primaryID,
		ReferenceNumber:   "CONTRA-202506-0002",
	}
	credit := domain.Transaction{
		TransactionID:     uuid.NewString(),
		AccountID:         suite.destAccount.AccountID,
		FromAccountID:     suite.sourceAccount.AccountID,
		Type:              domain.ContraCredit,
		Amount:            decimal.NewFromInt(50),
		PrimaryCategoryID: primaryID,
		ReferenceNumber:   "CONTRA-202506-0002",
	}
	link := domain.PairLink{
		DebitEntryID:  debit.TransactionID,
		CreditEntryID: credit.TransactionID,
		Ledger:        domain.PastorateLedger,
	}
	req := dto.UpdatePairRequest{SecondaryCategoryID: &secondaryID}

	suite.mockTransactionRepo.On("FindTransactionByID", ctx, debit.TransactionID).Return(&debit, nil).Once()
	suite.mockTransactionRepo.On("FindPairLinkByDebitID", ctx, debit.TransactionID).Return(&link, nil).Once()
	suite.mockTransactionRepo.On("FindTransactionByID", ctx, credit.TransactionID).Return(&credit, nil).Once()
	// The kept primary and the new secondary are validated together.
	suite.mockCategorySvc.On("ValidateCategoryRefs", ctx, primaryID, secondaryID).Return(nil).Once()
	suite.mockTransactionRepo.On("UpdatePair", ctx,
		mock.MatchedBy(func(d domain.Transaction) bool {
			return d.SecondaryCategoryID == secondaryID
		}),
		mock.MatchedBy(func(c domain.Transaction) bool {
			return c.SecondaryCategoryID == secondaryID
		}),
		mock.AnythingOfType("[]domain.TransactionHistory"),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes[debit.AccountID].IsZero() && changes[credit.AccountID].IsZero()
		})).Return(map[string]decimal.Decimal{}, nil).Once()

	result, err := suite.service.EditPair(ctx, debit.TransactionID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(secondaryID, result.Debit.SecondaryCategoryID)
	suite.Equal(secondaryID, result.Credit.SecondaryCategoryID)
	suite.mockCategorySvc.AssertExpectations(suite.T())
	suite.mockTransactionRepo.AssertExpectations(suite.T())
}

func (suite *PairingServiceTestSuite) TestDeletePair_RestoresBalances() {
	ctx := context.Background()
	debit := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     suite.sourceAccount.AccountID,
		Type:          domain.IntraDebit,
		Amount:        decimal.NewFromInt(75),
	}
	credit := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     suite.destAccount.AccountID,
		Type:          domain.IntraCredit,
		Amount:        decimal.NewFromInt(75),
	}
	link := domain.PairLink{
		DebitEntryID:  debit.TransactionID,
		CreditEntryID: credit.TransactionID,
		Ledger:        domain.PastorateLedger,
	}

	suite.mockTransactionRepo.On("FindTransactionByID", ctx, debit.TransactionID).Return(&debit, nil).Once()
	suite.mockTransactionRepo.On("FindPairLinkByDebitID", ctx, debit.TransactionID).Return(&link, nil).Once()
	suite.mockTransactionRepo.On("FindTransactionByID", ctx, credit.TransactionID).Return(&credit, nil).Once()
	suite.mockTransactionRepo.On("DeletePair", ctx, link,
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes[debit.AccountID].Equal(decimal.NewFromInt(75)) &&
				changes[credit.AccountID].Equal(decimal.NewFromInt(-75))
		})).Return(map[string]decimal.Decimal{
		debit.AccountID:  decimal.NewFromInt(500),
		credit.AccountID: decimal.NewFromInt(425),
	}, nil).Once()

	err := suite.service.DeletePair(ctx, debit.TransactionID, suite.userID)

	suite.Require().NoError(err)
	suite.mockTransactionRepo.AssertExpectations(suite.T())
}

func (suite *PairingServiceTestSuite) TestDeletePair_MissingLinkDeletesNothing() {
	ctx := context.Background()
	debit := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     suite.sourceAccount.AccountID,
		Type:          domain.ContraDebit,
		Amount:        decimal.NewFromInt(75),
	}

	suite.mockTransactionRepo.On("FindTransactionByID", ctx, debit.TransactionID).Return(&debit, nil).Once()
	suite.mockTransactionRepo.On("FindPairLinkByDebitID", ctx, debit.TransactionID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeletePair(ctx, debit.TransactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPairIntegrity)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "DeletePair")
}

func (suite *PairingServiceTestSuite) TestCreateDioceseContra_DebitSide() {
	ctx := context.Background()
	date := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	req := dto.CreateDioceseContraRequest{
		DioceseAccountID:   suite.dioceseAccount.AccountID,
		PastorateAccountID: suite.sourceAccount.AccountID,
		Type:               domain.DioceseDebit,
		Amount:             decimal.NewFromInt(500),
		Date:               date,
		Description:        "Grant to pastorate",
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{req.DioceseAccountID, req.PastorateAccountID}).
		Return(suite.accountsMap(suite.dioceseAccount, suite.sourceAccount), nil).Once()
	suite.mockReferenceSvc.On("Generate", ctx, "DIO", date).Return("DIO-202507-0001", nil).Once()
	suite.mockDioceseRepo.On("SaveDioceseContra", ctx,
		mock.MatchedBy(func(debit domain.DioceseTransaction) bool {
			return debit.Type == domain.DioceseDebit &&
				debit.AccountID == req.DioceseAccountID &&
				debit.IsContra &&
				debit.ContraAccountID == req.PastorateAccountID
		}),
		mock.MatchedBy(func(credit domain.DioceseTransaction) bool {
			return credit.Type == domain.DioceseCredit &&
				credit.AccountID == req.PastorateAccountID &&
				credit.IsContra
		}),
		mock.MatchedBy(func(mirror domain.Transaction) bool {
			return mirror.Type == domain.ContraCredit &&
				mirror.AccountID == req.PastorateAccountID &&
				mirror.FromAccountID == req.DioceseAccountID
		}),
		mock.MatchedBy(func(link domain.PairLink) bool {
			return link.Ledger == domain.DioceseLedger && link.MirrorTransactionID != ""
		}),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes[req.DioceseAccountID].Equal(decimal.NewFromInt(-500)) &&
				changes[req.PastorateAccountID].Equal(decimal.NewFromInt(500))
		})).Return(map[string]decimal.Decimal{
		req.DioceseAccountID:   decimal.NewFromInt(9500),
		req.PastorateAccountID: decimal.NewFromInt(1000),
	}, nil).Once()

	result, err := suite.service.CreateDioceseContra(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("DIO-202507-0001", result.Debit.ReferenceNumber)
	suite.Equal(domain.ContraCredit, result.Mirror.Type)
	suite.Empty(result.Warnings)
	suite.mockDioceseRepo.AssertExpectations(suite.T())
}

func (suite *PairingServiceTestSuite) TestCreateDioceseContra_CreditSideFlipsMirror() {
	ctx := context.Background()
	date := time.Date(2025, time.July, 2, 0, 0, 0, 0, time.UTC)
	req := dto.CreateDioceseContraRequest{
		DioceseAccountID:   suite.dioceseAccount.AccountID,
		PastorateAccountID: suite.sourceAccount.AccountID,
		Type:               domain.DioceseCredit,
		Amount:             decimal.NewFromInt(120),
		Date:               date,
		ReferenceNumber:    "DIO-202507-0002",
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{req.DioceseAccountID, req.PastorateAccountID}).
		Return(suite.accountsMap(suite.dioceseAccount, suite.sourceAccount), nil).Once()
	suite.mockDioceseRepo.On("SaveDioceseContra", ctx,
		mock.MatchedBy(func(debit domain.DioceseTransaction) bool {
			// The debit side of the pair is the mirror row on the pastorate account.
			return debit.Type == domain.DioceseDebit && debit.AccountID == req.PastorateAccountID
		}),
		mock.MatchedBy(func(credit domain.DioceseTransaction) bool {
			return credit.Type == domain.DioceseCredit && credit.AccountID == req.DioceseAccountID
		}),
		mock.MatchedBy(func(mirror domain.Transaction) bool {
			return mirror.Type == domain.ContraDebit &&
				mirror.AccountID == req.PastorateAccountID &&
				mirror.ToAccountID == req.DioceseAccountID
		}),
		mock.AnythingOfType("domain.PairLink"),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes[req.DioceseAccountID].Equal(decimal.NewFromInt(120)) &&
				changes[req.PastorateAccountID].Equal(decimal.NewFromInt(-120))
		})).Return(map[string]decimal.Decimal{
		req.DioceseAccountID:   decimal.NewFromInt(10120),
		req.PastorateAccountID: decimal.NewFromInt(380),
	}, nil).Once()

	result, err := suite.service.CreateDioceseContra(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.ContraDebit, result.Mirror.Type)
	suite.mockReferenceSvc.AssertNotCalled(suite.T(), "Generate")
	suite.mockDioceseRepo.AssertExpectations(suite.T())
}

func (suite *PairingServiceTestSuite) TestCreateDioceseContra_NonDioceseAccountRejected() {
	ctx := context.Background()
	req := dto.CreateDioceseContraRequest{
		DioceseAccountID:   suite.destAccount.AccountID,
		PastorateAccountID: suite.sourceAccount.AccountID,
		Type:               domain.DioceseDebit,
		Amount:             decimal.NewFromInt(10),
		Date:               time.Now(),
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{req.DioceseAccountID, req.PastorateAccountID}).
		Return(suite.accountsMap(suite.destAccount, suite.sourceAccount), nil).Once()

	_, err := suite.service.CreateDioceseContra(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDioceseRepo.AssertNotCalled(suite.T(), "SaveDioceseContra")
}

func TestPairingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PairingServiceTestSuite))
}
