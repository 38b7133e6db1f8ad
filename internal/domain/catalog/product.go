package catalog

import (
	"strings"

	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Product is a catalog entry under a category. Offers reference a product;
// the product itself carries no price or stock.
type Product struct {
	shared.BaseEntity
	Name        string
	Description string
	CategoryID  uuid.UUID
}

// NewProduct creates a new product. Description is optional.
func NewProduct(name, description string, categoryID uuid.UUID) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}

	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		CategoryID:  categoryID,
	}, nil
}

// Rename changes the product name
func (p *Product) Rename(name string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	p.Name = strings.TrimSpace(name)
	p.Touch()
	return nil
}

// SetDescription replaces the optional description
func (p *Product) SetDescription(description string) error {
	if len(description) > 2000 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 2000 characters")
	}
	p.Description = strings.TrimSpace(description)
	p.Touch()
	return nil
}

// Recategorize moves the product to another category
func (p *Product) Recategorize(categoryID uuid.UUID) error {
	if categoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}
	p.CategoryID = categoryID
	p.Touch()
	return nil
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
