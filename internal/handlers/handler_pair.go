package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/parish-dms/parish_ledger_app/internal/core/ports/services"
	"github.com/parish-dms/parish_ledger_app/internal/dto"
	"github.com/parish-dms/parish_ledger_app/internal/middleware"
)

// pairHandler handles HTTP requests for the contra/intra pairing engine.
type pairHandler struct {
	pairingService portssvc.PairingSvcFacade
}

func newPairHandler(ps portssvc.PairingSvcFacade) *pairHandler {
	return &pairHandler{pairingService: ps}
}

// registerPairRoutes registers routes related to linked entry pairs. Pairs are
// addressed by their debit entry ID.
func registerPairRoutes(rg *gin.RouterGroup, pairingService portssvc.PairingSvcFacade) {
	h := newPairHandler(pairingService)

	pairs := rg.Group("/pairs")
	{
		pairs.POST("", h.createPair)
		pairs.POST("/diocese-contra", h.createDioceseContra)
		pairs.GET("/:debitID", h.getPair)
		pairs.PUT("/:debitID", h.updatePair)
		pairs.DELETE("/:debitID", h.deletePair)
	}
}

// createPair godoc
// @Summary Create a contra or intra pair
// @Description Creates a linked debit/credit pair across two accounts in one atomic unit
// @Tags pairs
// @Accept  json
// @Produce  json
// @Param   pair body dto.CreatePairRequest true "Pair details"
// @Success 201 {object} dto.PairResult
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Write would overdraw the source account"
// @Security BearerAuth
// @Router /pairs [post]
func (h *pairHandler) createPair(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.pairingService.CreatePair(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondLedgerError(c, logger, err, "Failed to create pair")
		return
	}

	c.JSON(http.StatusCreated, result)
}

// createDioceseContra godoc
// @Summary Create a cross-ledger diocese contra
// @Description Moves funds between a diocese account and a pastorate/church account; both ledgers commit atomically
// @Tags pairs
// @Accept  json
// @Produce  json
// @Param   contra body dto.CreateDioceseContraRequest true "Contra details"
// @Success 201 {object} dto.DioceseContraResult
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /pairs/diocese-contra [post]
func (h *pairHandler) createDioceseContra(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDioceseContraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.pairingService.CreateDioceseContra(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondLedgerError(c, logger, err, "Failed to create diocese contra")
		return
	}

	c.JSON(http.StatusCreated, result)
}

// getPair godoc
// @Summary Get both sides of a pair
// @Tags pairs
// @Produce  json
// @Param   debitID path string true "Debit entry ID"
// @Success 200 {object} dto.PairResponse
// @Failure 404 {object} map[string]string "Pair not found"
// @Failure 409 {object} map[string]string "Pair link or partner missing"
// @Security BearerAuth
// @Router /pairs/{debitID} [get]
func (h *pairHandler) getPair(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	debitID := c.Param("debitID")

	pair, err := h.pairingService.GetPair(c.Request.Context(), debitID)
	if err != nil {
		respondLedgerError(c, logger, err, "Failed to retrieve pair")
		return
	}

	c.JSON(http.StatusOK, pair)
}

// updatePair godoc
// @Summary Edit both sides of a pair
// @Description Applies the same edit to both entries, snapshotting both to history
// @Tags pairs
// @Accept  json
// @Produce  json
// @Param   debitID path string true "Debit entry ID"
// @Param   pair body dto.UpdatePairRequest true "Fields to update"
// @Success 200 {object} dto.PairResult
// @Failure 400 {object} map[string]string "Validation error or cross-ledger pair"
// @Failure 409 {object} map[string]string "Pair link or partner missing"
// @Security BearerAuth
// @Router /pairs/{debitID} [put]
func (h *pairHandler) updatePair(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	debitID := c.Param("debitID")

	var req dto.UpdatePairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.pairingService.EditPair(c.Request.Context(), debitID, req, userID)
	if err != nil {
		respondLedgerError(c, logger, err, "Failed to update pair")
		return
	}

	c.JSON(http.StatusOK, result)
}

// deletePair godoc
// @Summary Delete a pair
// @Description Removes both entries and the link, restoring both balances
// @Tags pairs
// @Produce  json
// @Param   debitID path string true "Debit entry ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Pair not found"
// @Failure 409 {object} map[string]string "Pair link missing, nothing deleted"
// @Security BearerAuth
// @Router /pairs/{debitID} [delete]
func (h *pairHandler) deletePair(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	debitID := c.Param("debitID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.pairingService.DeletePair(c.Request.Context(), debitID, userID); err != nil {
		respondLedgerError(c, logger, err, "Failed to delete pair")
		return
	}

	c.Status(http.StatusNoContent)
}
