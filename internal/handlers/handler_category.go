package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/parish-dms/parish_ledger_app/internal/apperrors"
	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
	portssvc "github.com/parish-dms/parish_ledger_app/internal/core/ports/services"
	"github.com/parish-dms/parish_ledger_app/internal/dto"
	"github.com/parish-dms/parish_ledger_app/internal/middleware"
)

// categoryHandler handles HTTP requests for transaction categories.
type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
}

func newCategoryHandler(cs portssvc.CategorySvcFacade) *categoryHandler {
	return &categoryHandler{categoryService: cs}
}

// registerCategoryRoutes registers routes related to categories.
func registerCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.CategorySvcFacade) {
	h := newCategoryHandler(categoryService)

	categories := rg.Group("/categories")
	{
		categories.POST("/primary", h.createPrimaryCategory)
		categories.GET("/primary", h.listPrimaryCategories)
		categories.POST("/secondary", h.createSecondaryCategory)
		categories.GET("/secondary", h.listSecondaryCategories)
	}
}

// createPrimaryCategory godoc
// @Summary Create a primary category
// @Tags categories
// @Accept  json
// @Produce  json
// @Param   category body dto.CreatePrimaryCategoryRequest true "Category details"
// @Success 201 {object} dto.PrimaryCategoryResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 409 {object} map[string]string "Duplicate category name"
// @Security BearerAuth
// @Router /categories/primary [post]
func (h *categoryHandler) createPrimaryCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePrimaryCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	category, err := h.categoryService.CreatePrimaryCategory(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create primary category", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPrimaryCategoryResponse(category))
}

// listPrimaryCategories godoc
// @Summary List primary categories
// @Tags categories
// @Produce  json
// @Param   direction query string false "Filter by direction (credit or debit)"
// @Success 200 {array} dto.PrimaryCategoryResponse
// @Security BearerAuth
// @Router /categories/primary [get]
func (h *categoryHandler) listPrimaryCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var direction *domain.CategoryDirection
	if d := c.Query("direction"); d != "" {
		dir := domain.CategoryDirection(d)
		direction = &dir
	}

	categories, err := h.categoryService.ListPrimaryCategories(c.Request.Context(), direction)
	if err != nil {
		logger.Error("Failed to list primary categories", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories"})
		return
	}

	responses := make([]dto.PrimaryCategoryResponse, len(categories))
	for i := range categories {
		responses[i] = dto.ToPrimaryCategoryResponse(&categories[i])
	}
	c.JSON(http.StatusOK, responses)
}

// createSecondaryCategory godoc
// @Summary Create a secondary category
// @Tags categories
// @Accept  json
// @Produce  json
// @Param   category body dto.CreateSecondaryCategoryRequest true "Category details"
// @Success 201 {object} dto.SecondaryCategoryResponse
// @Failure 400 {object} map[string]string "Unknown parent category"
// @Failure 409 {object} map[string]string "Duplicate category name"
// @Security BearerAuth
// @Router /categories/secondary [post]
func (h *categoryHandler) createSecondaryCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSecondaryCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	category, err := h.categoryService.CreateSecondaryCategory(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create secondary category", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToSecondaryCategoryResponse(category))
}

// listSecondaryCategories godoc
// @Summary List secondary categories
// @Tags categories
// @Produce  json
// @Param   primaryCategoryID query string false "Parent primary category"
// @Success 200 {array} dto.SecondaryCategoryResponse
// @Security BearerAuth
// @Router /categories/secondary [get]
func (h *categoryHandler) listSecondaryCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	primaryCategoryID := c.Query("primaryCategoryID")

	categories, err := h.categoryService.ListSecondaryCategories(c.Request.Context(), primaryCategoryID)
	if err != nil {
		logger.Error("Failed to list secondary categories", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories"})
		return
	}

	responses := make([]dto.SecondaryCategoryResponse, len(categories))
	for i := range categories {
		responses[i] = dto.ToSecondaryCategoryResponse(&categories[i])
	}
	c.JSON(http.StatusOK, responses)
}
