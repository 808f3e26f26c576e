package services_test

import (
	"context"
	"testing"

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

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	accountType     domain.AccountType
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
	suite.accountType = domain.AccountType{
		AccountTypeID: uuid.NewString(),
		Name:          "cash",
	}
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	pastorateID := uuid.NewString()
	req := dto.CreateAccountRequest{
		Name:          "Hope Pastorate cash",
		AccountTypeID: suite.accountType.AccountTypeID,
		AccountNumber: "HOPE-CASH",
		Level:         domain.PastorateLevel,
		PastorateID:   pastorateID,
	}

	suite.mockAccountRepo.On("FindAccountTypeByID", ctx, req.AccountTypeID).Return(&suite.accountType, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.Name == req.Name &&
			acc.Level == domain.PastorateLevel &&
			acc.PastorateID == pastorateID &&
			acc.Balance.Equal(decimal.Zero) &&
			acc.IsActive
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(account.AccountID)
	suite.Equal(suite.userID, account.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DioceseNeedsNoOwner() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:          "Diocese general fund",
		AccountTypeID: suite.accountType.AccountTypeID,
		AccountNumber: "DIO-GEN",
		Level:         domain.DioceseLevel,
	}

	suite.mockAccountRepo.On("FindAccountTypeByID", ctx, req.AccountTypeID).Return(&suite.accountType, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.DioceseLevel, account.Level)
	suite.Empty(account.PastorateID)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_MissingOwnerRejected() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:          "Orphan account",
		AccountTypeID: suite.accountType.AccountTypeID,
		AccountNumber: "X-1",
		Level:         domain.ChurchLevel,
	}

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount")
}

func (suite *AccountServiceTestSuite) TestCreateDefaultAccounts_ProvisionsCashAndBank() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	req := dto.CreateDefaultAccountsRequest{
		Level:     domain.PastorateLevel,
		OwnerID:   ownerID,
		OwnerName: "Hope Pastorate",
	}
	bankType := domain.AccountType{AccountTypeID: uuid.NewString(), Name: "bank"}

	suite.mockAccountRepo.On("EnsureAccountType", ctx, "cash", "").Return(&suite.accountType, nil).Once()
	suite.mockAccountRepo.On("EnsureAccountType", ctx, "bank", "").Return(&bankType, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Twice()

	accounts, err := suite.service.CreateDefaultAccounts(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(accounts, 2)
	suite.Equal("Hope Pastorate cash", accounts[0].Name)
	suite.Equal(ownerID+"-CASH", accounts[0].AccountNumber)
	suite.Equal("Hope Pastorate bank", accounts[1].Name)
	suite.Equal(ownerID+"-BANK", accounts[1].AccountNumber)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_MergesProvidedFields() {
	ctx := context.Background()
	existing := domain.Account{
		AccountID:   uuid.NewString(),
		Name:        "Old name",
		Description: "Old description",
		Level:       domain.PastorateLevel,
		PastorateID: uuid.NewString(),
		IsActive:    true,
	}
	newName := "New name"
	req := dto.UpdateAccountRequest{Name: &newName}

	suite.mockAccountRepo.On("FindAccountByID", ctx, existing.AccountID).Return(&existing, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.Name == newName && acc.Description == "Old description"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, existing.AccountID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.Equal(suite.userID, updated.LastUpdatedBy)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("DeactivateAccount", ctx, accountID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
