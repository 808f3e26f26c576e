package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/parish-dms/parish_ledger_app/internal/apperrors"
	portssvc "github.com/parish-dms/parish_ledger_app/internal/core/ports/services"
	"github.com/parish-dms/parish_ledger_app/internal/dto"
	"github.com/parish-dms/parish_ledger_app/internal/middleware"
)

// dioceseHandler handles HTTP requests for the diocese ledger.
type dioceseHandler struct {
	dioceseService portssvc.DioceseSvcFacade
}

func newDioceseHandler(ds portssvc.DioceseSvcFacade) *dioceseHandler {
	return &dioceseHandler{dioceseService: ds}
}

// registerDioceseRoutes registers routes related to the diocese ledger.
func registerDioceseRoutes(rg *gin.RouterGroup, dioceseService portssvc.DioceseSvcFacade) {
	h := newDioceseHandler(dioceseService)

	diocese := rg.Group("/diocese")
	{
		diocese.POST("/transactions", h.createDioceseTransaction)
		diocese.GET("/transactions/:id", h.getDioceseTransaction)
		diocese.GET("/accounts/:id/transactions", h.listDioceseTransactions)
	}
}

// createDioceseTransaction godoc
// @Summary Create a diocese ledger entry
// @Description Appends a plain debit/credit entry to the diocese ledger
// @Tags diocese
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateDioceseTransactionRequest true "Entry details"
// @Success 201 {object} dto.DioceseTransactionResult
// @Failure 400 {object} map[string]string "Validation error or non-diocese account"
// @Security BearerAuth
// @Router /diocese/transactions [post]
func (h *dioceseHandler) createDioceseTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDioceseTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.dioceseService.CreateDioceseTransaction(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondLedgerError(c, logger, err, "Failed to create diocese transaction")
		return
	}

	c.JSON(http.StatusCreated, result)
}

// getDioceseTransaction godoc
// @Summary Get a diocese ledger entry
// @Tags diocese
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.DioceseTransactionResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /diocese/transactions/{id} [get]
func (h *dioceseHandler) getDioceseTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	txn, err := h.dioceseService.GetDioceseTransaction(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Diocese transaction not found"})
		} else {
			logger.Error("Failed to get diocese transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve diocese transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDioceseTransactionResponse(txn))
}

// listDioceseTransactions godoc
// @Summary List a diocese account's entries
// @Description Returns a token-paginated page, newest first
// @Tags diocese
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   limit query int false "Page size (default 20)"
// @Param   nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListDioceseTransactionsResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /diocese/accounts/{id}/transactions [get]
func (h *dioceseHandler) listDioceseTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	page, err := h.dioceseService.ListDioceseTransactions(c.Request.Context(), accountID, limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list diocese transactions", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list diocese transactions"})
		}
		return
	}

	c.JSON(http.StatusOK, page)
}
