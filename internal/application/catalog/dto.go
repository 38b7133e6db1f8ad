package catalog

import (
	"time"

	"github.com/farmmarket/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name     string     `json:"name" binding:"required,min=1,max=100"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name     *string    `json:"name" binding:"omitempty,min=1,max=100"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	WasApproved bool       `json:"was_approved"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CategoryTreeNode is a category with its resolved children
type CategoryTreeNode struct {
	CategoryResponse
	Children []CategoryTreeNode `json:"children"`
}

// ToCategoryResponse converts a domain category to a response DTO
func ToCategoryResponse(category *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		ParentID:    category.ParentID,
		WasApproved: category.WasApproved,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

// CategoryListFilter represents filter options for the category list
type CategoryListFilter struct {
	Search      string     `form:"search"`
	WasApproved *bool      `form:"was_approved"`
	ParentID    *uuid.UUID `form:"parent_id"`
	Page        int        `form:"page"`
	PageSize    int        `form:"page_size"`
	SortBy      string     `form:"sort_by"`
	SortDesc    bool       `form:"sort_desc"`
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name        string    `json:"name" binding:"required,min=1,max=200"`
	Description string    `json:"description" binding:"max=2000"`
	CategoryID  uuid.UUID `json:"category_id" binding:"required"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CategoryID  uuid.UUID `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		CategoryID:  product.CategoryID,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search     string     `form:"search"`
	CategoryID *uuid.UUID `form:"category_id"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	SortBy     string     `form:"sort_by"`
	SortDesc   bool       `form:"sort_desc"`
}
