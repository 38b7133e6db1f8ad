package catalog

import (
	"strings"

	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Category is a node in the catalog tree. User-suggested categories start
// unapproved and become browsable once a moderator approves them.
type Category struct {
	shared.BaseEntity
	Name        string
	ParentID    *uuid.UUID
	WasApproved bool
}

// NewCategory creates an approved category (moderator-curated)
func NewCategory(name string, parentID *uuid.UUID) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	return &Category{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        strings.TrimSpace(name),
		ParentID:    parentID,
		WasApproved: true,
	}, nil
}

// NewSuggestedCategory creates an unapproved category suggested by a user
func NewSuggestedCategory(name string, parentID *uuid.UUID) (*Category, error) {
	category, err := NewCategory(name, parentID)
	if err != nil {
		return nil, err
	}
	category.WasApproved = false
	return category, nil
}

// Approve marks the category as moderator-approved
func (c *Category) Approve() {
	c.WasApproved = true
	c.Touch()
}

// Rename changes the category name
func (c *Category) Rename(name string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}
	c.Name = strings.TrimSpace(name)
	c.Touch()
	return nil
}

// MoveTo re-parents the category. Passing nil makes it a root category.
// Cycle detection is the repository's concern since it needs the full tree.
func (c *Category) MoveTo(parentID *uuid.UUID) error {
	if parentID != nil && *parentID == c.ID {
		return shared.NewDomainError("INVALID_PARENT", "Category cannot be its own parent")
	}
	c.ParentID = parentID
	c.Touch()
	return nil
}

// IsRoot returns true if the category has no parent
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

func validateCategoryName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}
