package catalog

import (
	"context"

	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]Category, error)
	FindRoots(ctx context.Context) ([]Category, error)
	// CountApprovedChildren and CountProducts back the deletion guard:
	// a category with approved subcategories or attached products
	// cannot be deleted.
	CountApprovedChildren(ctx context.Context, id uuid.UUID) (int64, error)
	CountProducts(ctx context.Context, id uuid.UUID) (int64, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
