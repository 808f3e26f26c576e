package dto

import (
	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
)

// CreatePrimaryCategoryRequest defines a new top-level category.
type CreatePrimaryCategoryRequest struct {
	Name        string                   `json:"name" binding:"required"`
	Description string                   `json:"description"`
	Direction   domain.CategoryDirection `json:"direction" binding:"required,oneof=credit debit"`
}

// CreateSecondaryCategoryRequest defines a new second-level category.
type CreateSecondaryCategoryRequest struct {
	Name              string `json:"name" binding:"required"`
	Description       string `json:"description"`
	PrimaryCategoryID string `json:"primaryCategoryID" binding:"required"`
}

// PrimaryCategoryResponse defines the data returned for a primary category.
type PrimaryCategoryResponse struct {
	CategoryID  string                   `json:"categoryID"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Direction   domain.CategoryDirection `json:"direction"`
	IsActive    bool                     `json:"isActive"`
}

// SecondaryCategoryResponse defines the data returned for a secondary category.
type SecondaryCategoryResponse struct {
	CategoryID        string `json:"categoryID"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	PrimaryCategoryID string `json:"primaryCategoryID"`
	IsActive          bool   `json:"isActive"`
}

// ToPrimaryCategoryResponse converts a domain primary category to its DTO.
func ToPrimaryCategoryResponse(c *domain.PrimaryCategory) PrimaryCategoryResponse {
	return PrimaryCategoryResponse{
		CategoryID:  c.CategoryID,
		Name:        c.Name,
		Description: c.Description,
		Direction:   c.Direction,
		IsActive:    c.IsActive,
	}
}

// ToSecondaryCategoryResponse converts a domain secondary category to its DTO.
func ToSecondaryCategoryResponse(c *domain.SecondaryCategory) SecondaryCategoryResponse {
	return SecondaryCategoryResponse{
		CategoryID:        c.CategoryID,
		Name:              c.Name,
		Description:       c.Description,
		PrimaryCategoryID: c.PrimaryCategoryID,
		IsActive:          c.IsActive,
	}
}
