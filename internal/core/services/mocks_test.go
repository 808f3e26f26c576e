package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
	portsrepo "github.com/parish-dms/parish_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/parish-dms/parish_ledger_app/internal/core/ports/services"
	"github.com/parish-dms/parish_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, txnType *domain.TransactionType, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, accountID, txnType, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) FindPairedTransactions(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindHistoryByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionHistory, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionHistory), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, txn, balanceChanges)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, history domain.TransactionHistory, balanceChanges map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, txn, history, balanceChanges)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, transactionID, balanceChanges)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) FindPairLinkByDebitID(ctx context.Context, debitEntryID string) (*domain.PairLink, error) {
	args := m.Called(ctx, debitEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PairLink), args.Error(1)
}

func (m *MockTransactionRepository) ListMirrorTransactionIDs(ctx context.Context) (map[string]bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockTransactionRepository) SavePair(ctx context.Context, debit, credit domain.Transaction, link domain.PairLink, balanceChanges map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, debit, credit, link, balanceChanges)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) UpdatePair(ctx context.Context, debit, credit domain.Transaction, histories []domain.TransactionHistory, balanceChanges map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, debit, credit, histories, balanceChanges)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) DeletePair(ctx context.Context, link domain.PairLink, balanceChanges map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, link, balanceChanges)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, level domain.AccountLevel, ownerID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, level, ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAccountRepository) FindAccountTypeByID(ctx context.Context, accountTypeID string) (*domain.AccountType, error) {
	args := m.Called(ctx, accountTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountType), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) EnsureAccountType(ctx context.Context, name, description string) (*domain.AccountType, error) {
	args := m.Called(ctx, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountType), args.Error(1)
}

func (m *MockAccountRepository) RecalculateBalance(ctx context.Context, accountID string, userID string, now time.Time) (*domain.BalanceRepair, error) {
	args := m.Called(ctx, accountID, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceRepair), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

// --- Mock DioceseRepository ---
type MockDioceseRepository struct {
	mock.Mock
}

var _ portsrepo.DioceseRepositoryFacade = (*MockDioceseRepository)(nil)

func (m *MockDioceseRepository) FindDioceseTransactionByID(ctx context.Context, transactionID string) (*domain.DioceseTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DioceseTransaction), args.Error(1)
}

func (m *MockDioceseRepository) FindDioceseTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.DioceseTransaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DioceseTransaction), args.Error(1)
}

func (m *MockDioceseRepository) ListDioceseTransactions(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.DioceseTransaction, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.DioceseTransaction), returnedNextToken, args.Error(2)
}

func (m *MockDioceseRepository) SaveDioceseTransaction(ctx context.Context, txn domain.DioceseTransaction, balanceChanges map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, txn, balanceChanges)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockDioceseRepository) SaveDioceseContra(ctx context.Context, debit, credit domain.DioceseTransaction, mirror domain.Transaction, link domain.PairLink, balanceChanges map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, debit, credit, mirror, link, balanceChanges)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

// --- Mock CategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

var _ portsrepo.CategoryRepositoryFacade = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) FindPrimaryCategoryByID(ctx context.Context, categoryID string) (*domain.PrimaryCategory, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PrimaryCategory), args.Error(1)
}

func (m *MockCategoryRepository) FindSecondaryCategoryByID(ctx context.Context, categoryID string) (*domain.SecondaryCategory, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SecondaryCategory), args.Error(1)
}

func (m *MockCategoryRepository) ListPrimaryCategories(ctx context.Context, direction *domain.CategoryDirection) ([]domain.PrimaryCategory, error) {
	args := m.Called(ctx, direction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PrimaryCategory), args.Error(1)
}

func (m *MockCategoryRepository) ListSecondaryCategories(ctx context.Context, primaryCategoryID string) ([]domain.SecondaryCategory, error) {
	args := m.Called(ctx, primaryCategoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SecondaryCategory), args.Error(1)
}

func (m *MockCategoryRepository) SavePrimaryCategory(ctx context.Context, category domain.PrimaryCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) SaveSecondaryCategory(ctx context.Context, category domain.SecondaryCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

// --- Mock ReferenceCounterRepository ---
type MockReferenceCounterRepository struct {
	mock.Mock
}

var _ portsrepo.ReferenceCounterRepository = (*MockReferenceCounterRepository)(nil)

func (m *MockReferenceCounterRepository) ClaimNext(ctx context.Context, scope string, year int, month time.Month) (int64, error) {
	args := m.Called(ctx, scope, year, month)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock ReferenceService ---
type MockReferenceService struct {
	mock.Mock
}

var _ portssvc.ReferenceSvcFacade = (*MockReferenceService)(nil)

func (m *MockReferenceService) Generate(ctx context.Context, scope string, asOf time.Time) (string, error) {
	args := m.Called(ctx, scope, asOf)
	return args.String(0), args.Error(1)
}

// --- Mock CategoryService ---
type MockCategoryService struct {
	mock.Mock
}

var _ portssvc.CategorySvcFacade = (*MockCategoryService)(nil)

func (m *MockCategoryService) CreatePrimaryCategory(ctx context.Context, req dto.CreatePrimaryCategoryRequest, creatorUserID string) (*domain.PrimaryCategory, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PrimaryCategory), args.Error(1)
}

func (m *MockCategoryService) CreateSecondaryCategory(ctx context.Context, req dto.CreateSecondaryCategoryRequest, creatorUserID string) (*domain.SecondaryCategory, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SecondaryCategory), args.Error(1)
}

func (m *MockCategoryService) ListPrimaryCategories(ctx context.Context, direction *domain.CategoryDirection) ([]domain.PrimaryCategory, error) {
	args := m.Called(ctx, direction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PrimaryCategory), args.Error(1)
}

func (m *MockCategoryService) ListSecondaryCategories(ctx context.Context, primaryCategoryID string) ([]domain.SecondaryCategory, error) {
	args := m.Called(ctx, primaryCategoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SecondaryCategory), args.Error(1)
}

func (m *MockCategoryService) ValidateCategoryPair(ctx context.Context, primaryCategoryID, secondaryCategoryID string, txnType domain.TransactionType) error {
	args := m.Called(ctx, primaryCategoryID, secondaryCategoryID, txnType)
	return args.Error(0)
}

func (m *MockCategoryService) ValidateCategoryRefs(ctx context.Context, primaryCategoryID, secondaryCategoryID string) error {
	args := m.Called(ctx, primaryCategoryID, secondaryCategoryID)
	return args.Error(0)
}
