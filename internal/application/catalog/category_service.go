package catalog

import (
	"context"
	"errors"

	"github.com/farmmarket/backend/internal/domain/catalog"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryService handles category tree operations. Moderator-created
// categories are approved immediately; user suggestions wait for approval.
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Create creates an approved category under an optional parent
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	return s.create(ctx, req, true)
}

// Suggest creates an unapproved category on behalf of a user
func (s *CategoryService) Suggest(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	return s.create(ctx, req, false)
}

func (s *CategoryService) create(ctx context.Context, req CreateCategoryRequest, approved bool) (*CategoryResponse, error) {
	if req.ParentID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent category not found")
			}
			return nil, err
		}
	}

	var category *catalog.Category
	var err error
	if approved {
		category, err = catalog.NewCategory(req.Name, req.ParentID)
	} else {
		category, err = catalog.NewSuggestedCategory(req.Name, req.ParentID)
	}
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("Category created",
		zap.String("name", category.Name),
		zap.Bool("approved", category.WasApproved))

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Approve marks a suggested category as approved
func (s *CategoryService) Approve(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !category.WasApproved {
		category.Approve()
		if err := s.categoryRepo.Save(ctx, category); err != nil {
			return nil, err
		}
		s.logger.Info("Category approved", zap.String("name", category.Name))
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// List retrieves categories matching the filter
func (s *CategoryService) List(ctx context.Context, filter CategoryListFilter) ([]CategoryResponse, error) {
	domainFilter := shared.NewFilter()
	domainFilter.Search = filter.Search
	if filter.WasApproved != nil {
		domainFilter.Filters["was_approved"] = *filter.WasApproved
	}
	if filter.ParentID != nil {
		domainFilter.Filters["parent_id"] = *filter.ParentID
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	if filter.SortBy != "" {
		domainFilter.OrderBy = filter.SortBy
		if filter.SortDesc {
			domainFilter.OrderDir = "desc"
		} else {
			domainFilter.OrderDir = "asc"
		}
	} else {
		domainFilter.OrderBy = "name"
		domainFilter.OrderDir = "asc"
	}

	categories, err := s.categoryRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses, nil
}

// Tree returns the approved category tree starting from the roots
func (s *CategoryService) Tree(ctx context.Context) ([]CategoryTreeNode, error) {
	roots, err := s.categoryRepo.FindRoots(ctx)
	if err != nil {
		return nil, err
	}

	nodes := make([]CategoryTreeNode, 0, len(roots))
	for i := range roots {
		if !roots[i].WasApproved {
			continue
		}
		node, err := s.buildSubtree(ctx, &roots[i])
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func (s *CategoryService) buildSubtree(ctx context.Context, category *catalog.Category) (CategoryTreeNode, error) {
	node := CategoryTreeNode{
		CategoryResponse: ToCategoryResponse(category),
		Children:         []CategoryTreeNode{},
	}

	children, err := s.categoryRepo.FindChildren(ctx, category.ID)
	if err != nil {
		return node, err
	}
	for i := range children {
		if !children[i].WasApproved {
			continue
		}
		child, err := s.buildSubtree(ctx, &children[i])
		if err != nil {
			return node, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

// Update renames or re-parents a category
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := category.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.ParentID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent category not found")
			}
			return nil, err
		}
		if err := category.MoveTo(req.ParentID); err != nil {
			return nil, err
		}
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Delete removes a category. Categories that still anchor approved
// subcategories or products cannot be deleted.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}

	children, err := s.categoryRepo.CountApprovedChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return shared.NewDomainError("CATEGORY_IN_USE", "Category still has approved subcategories")
	}

	products, err := s.categoryRepo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if products > 0 {
		return shared.NewDomainError("CATEGORY_IN_USE", "Category still has products attached")
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Category deleted", zap.String("category_id", id.String()))
	return nil
}
