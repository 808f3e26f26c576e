package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/parish-dms/parish_ledger_app/internal/core/ports/services"
	"github.com/parish-dms/parish_ledger_app/internal/dto"
	"github.com/parish-dms/parish_ledger_app/internal/middleware"
)

// adminHandler exposes the operational maintenance endpoints: full balance
// reconciliation and the contra consistency scan. Both are guarded by the ops
// token, not by user JWTs.
type adminHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	auditService  portssvc.AuditSvcFacade
}

func newAdminHandler(ls portssvc.LedgerSvcFacade, as portssvc.AuditSvcFacade) *adminHandler {
	return &adminHandler{
		ledgerService: ls,
		auditService:  as,
	}
}

// registerAdminRoutes registers the ops-token guarded maintenance routes.
func registerAdminRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, auditService portssvc.AuditSvcFacade) {
	h := newAdminHandler(ledgerService, auditService)

	rg.POST("/reconcile", h.reconcile)
	rg.GET("/contra-issues", h.listContraIssues)
}

// reconcile godoc
// @Summary Recompute every cached balance
// @Description Rebuilds each account's balance from its transaction log and reports the diffs; one account's failure does not abort the run
// @Tags admin
// @Produce  json
// @Success 200 {object} dto.RepairReportResponse
// @Failure 401 {object} map[string]string "Missing or invalid ops token"
// @Router /admin/reconcile [post]
func (h *adminHandler) reconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.ledgerService.ReconcileAll(c.Request.Context(), "ops")
	if err != nil {
		logger.Error("Reconciliation run failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reconciliation failed"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRepairReportResponse(report))
}

// listContraIssues godoc
// @Summary Scan paired entries for inconsistencies
// @Description Reports pairs with missing sides or mismatched amounts, accounts, or dates; the report is read-only
// @Tags admin
// @Produce  json
// @Success 200 {array} dto.ContraIssueResponse
// @Failure 401 {object} map[string]string "Missing or invalid ops token"
// @Router /admin/contra-issues [get]
func (h *adminHandler) listContraIssues(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	issues, err := h.auditService.ScanContraEntries(c.Request.Context())
	if err != nil {
		logger.Error("Contra entry scan failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Contra scan failed"})
		return
	}

	c.JSON(http.StatusOK, dto.ToContraIssueResponses(issues))
}
