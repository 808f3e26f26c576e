package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/parish-dms/parish_ledger_app/internal/apperrors"
	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
	portssvc "github.com/parish-dms/parish_ledger_app/internal/core/ports/services"
	"github.com/parish-dms/parish_ledger_app/internal/dto"
	"github.com/parish-dms/parish_ledger_app/internal/handlers"
	"github.com/parish-dms/parish_ledger_app/internal/middleware"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*dto.TransactionResult, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransactionResult), args.Error(1)
}
func (m *MockLedgerService) EditTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*dto.TransactionResult, error) {
	args := m.Called(ctx, transactionID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransactionResult), args.Error(1)
}
func (m *MockLedgerService) DeleteTransaction(ctx context.Context, transactionID string, userID string) error {
	args := m.Called(ctx, transactionID, userID)
	return args.Error(0)
}
func (m *MockLedgerService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}
func (m *MockLedgerService) ListTransactionHistory(ctx context.Context, transactionID string) ([]domain.TransactionHistory, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionHistory), args.Error(1)
}
func (m *MockLedgerService) ComputeBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockLedgerService) ReconcileAll(ctx context.Context, userID string) (*domain.RepairReport, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RepairReport), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *MockLedgerService
	jwtSecret         string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *TransactionHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "pla-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	// Use the actual AuthMiddleware so the user ID flows from the token.
	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockLedgerService = new(MockLedgerService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterTransactionRoutes(v1, suite.mockLedgerService)
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	requestingUserID := uuid.NewString()
	accountID := uuid.NewString()
	date := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)

	reqBody := dto.CreateTransactionRequest{
		AccountID: accountID,
		Type:      domain.Receipt,
		Amount:    decimal.NewFromInt(250),
		Date:      date,
	}
	expected := &dto.TransactionResult{
		Transaction: dto.TransactionResponse{
			TransactionID:   uuid.NewString(),
			AccountID:       accountID,
			Type:            domain.Receipt,
			Amount:          decimal.NewFromInt(250),
			Date:            date,
			ReferenceNumber: "TXN-202503-0001",
			CreatedBy:       requestingUserID,
		},
	}

	suite.mockLedgerService.On("CreateTransaction",
		mock.AnythingOfType("*context.valueCtx"),
		mock.MatchedBy(func(r dto.CreateTransactionRequest) bool {
			return r.AccountID == accountID && r.Type == domain.Receipt && r.Amount.Equal(decimal.NewFromInt(250))
		}),
		requestingUserID,
	).Return(expected, nil).Once()

	body, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var responseBody dto.TransactionResult
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Equal(expected.Transaction.TransactionID, responseBody.Transaction.TransactionID)
	suite.Equal("TXN-202503-0001", responseBody.Transaction.ReferenceNumber)
	suite.Empty(responseBody.Warnings)

	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Overdrawn() {
	requestingUserID := uuid.NewString()

	reqBody := dto.CreateTransactionRequest{
		AccountID: uuid.NewString(),
		Type:      domain.Bill,
		Amount:    decimal.NewFromInt(9000),
		Date:      time.Now().UTC(),
	}

	suite.mockLedgerService.On("CreateTransaction",
		mock.AnythingOfType("*context.valueCtx"),
		mock.AnythingOfType("dto.CreateTransactionRequest"),
		requestingUserID,
	).Return(nil, fmt.Errorf("balance would go negative: %w", apperrors.ErrOverdrawn)).Once()

	body, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	// Overdraw rejections map to 422, not 400.
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_MissingToken() {
	reqBody := dto.CreateTransactionRequest{
		AccountID: uuid.NewString(),
		Type:      domain.Receipt,
		Amount:    decimal.NewFromInt(10),
		Date:      time.Now().UTC(),
	}

	body, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "CreateTransaction")
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	requestingUserID := uuid.NewString()
	transactionID := uuid.NewString()

	suite.mockLedgerService.On("GetTransaction",
		mock.AnythingOfType("*context.valueCtx"),
		transactionID,
	).Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions/"+transactionID, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestListTransactionsByAccount_Success() {
	requestingUserID := uuid.NewString()
	accountID := uuid.NewString()
	limit := 10

	expectedTransactions := []dto.TransactionResponse{
		{
			TransactionID:   uuid.NewString(),
			AccountID:       accountID,
			Type:            domain.Receipt,
			Amount:          decimal.NewFromInt(100),
			ReferenceNumber: "TXN-202503-0002",
			CreatedAt:       time.Now(),
		},
		{
			TransactionID:   uuid.NewString(),
			AccountID:       accountID,
			Type:            domain.Bill,
			Amount:          decimal.NewFromInt(50),
			ReferenceNumber: "TXN-202503-0001",
			CreatedAt:       time.Now().Add(-time.Hour),
		},
	}
	expectedResponse := &dto.ListTransactionsResponse{
		Transactions: expectedTransactions,
		NextToken:    nil,
	}

	suite.mockLedgerService.On("ListTransactionsByAccount",
		mock.AnythingOfType("*context.valueCtx"),
		accountID,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
			return p.Limit == limit && p.Type == nil
		}),
	).Return(expectedResponse, nil).Once()

	url := fmt.Sprintf("/api/v1/accounts/%s/transactions?limit=%d", accountID, limit)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID))
	req.Header.Set("Accept", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.ListTransactionsResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Len(responseBody.Transactions, len(expectedTransactions))
	if len(responseBody.Transactions) == len(expectedTransactions) {
		suite.Equal(expectedTransactions[0].TransactionID, responseBody.Transactions[0].TransactionID)
		suite.Equal(expectedTransactions[1].TransactionID, responseBody.Transactions[1].TransactionID)
	}

	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestDeleteTransaction_PairedRefused() {
	requestingUserID := uuid.NewString()
	transactionID := uuid.NewString()

	suite.mockLedgerService.On("DeleteTransaction",
		mock.AnythingOfType("*context.valueCtx"),
		transactionID,
		requestingUserID,
	).Return(fmt.Errorf("paired entry, use the pair endpoints: %w", apperrors.ErrValidation)).Once()

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/transactions/"+transactionID, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
