package catalog

import (
	"context"
	"testing"

	"github.com/farmmarket/backend/internal/domain/catalog"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newProductTestService() (*ProductService, *MockProductRepository, *MockCategoryRepository) {
	mockProductRepo := new(MockProductRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	service := NewProductService(mockProductRepo, mockCategoryRepo, zap.NewNop())
	return service, mockProductRepo, mockCategoryRepo
}

func newTestProductEntity(t *testing.T, name string, categoryID uuid.UUID) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, "", categoryID)
	require.NoError(t, err)
	return product
}

func TestProductService_Create_Success(t *testing.T) {
	service, mockProductRepo, mockCategoryRepo := newProductTestService()
	ctx := context.Background()

	category := newApprovedCategory(t, "Dairy", nil)
	mockCategoryRepo.On("FindByID", ctx, category.ID).Return(category, nil)
	mockProductRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

	result, err := service.Create(ctx, CreateProductRequest{
		Name:        "Goat Cheese",
		Description: "Soft cheese from pastured goats",
		CategoryID:  category.ID,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Goat Cheese", result.Name)
	assert.Equal(t, category.ID, result.CategoryID)
	mockProductRepo.AssertExpectations(t)
}

func TestProductService_Create_UnknownCategory(t *testing.T) {
	service, mockProductRepo, mockCategoryRepo := newProductTestService()
	ctx := context.Background()

	categoryID := uuid.New()
	mockCategoryRepo.On("FindByID", ctx, categoryID).Return(nil, shared.ErrNotFound)

	_, err := service.Create(ctx, CreateProductRequest{
		Name:       "Goat Cheese",
		CategoryID: categoryID,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
	mockProductRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_Update_Rename(t *testing.T) {
	service, mockProductRepo, _ := newProductTestService()
	ctx := context.Background()

	product := newTestProductEntity(t, "Raw Milk", uuid.New())
	mockProductRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	mockProductRepo.On("Save", ctx, product).Return(nil)

	newName := "Raw Milk 1L"
	result, err := service.Update(ctx, product.ID, UpdateProductRequest{Name: &newName})

	assert.NoError(t, err)
	assert.Equal(t, "Raw Milk 1L", result.Name)
}

func TestProductService_Update_RecategorizeChecksTarget(t *testing.T) {
	service, mockProductRepo, mockCategoryRepo := newProductTestService()
	ctx := context.Background()

	product := newTestProductEntity(t, "Raw Milk", uuid.New())
	targetID := uuid.New()
	mockProductRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	mockCategoryRepo.On("FindByID", ctx, targetID).Return(nil, shared.ErrNotFound)

	_, err := service.Update(ctx, product.ID, UpdateProductRequest{CategoryID: &targetID})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
	mockProductRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_GetByID_NotFound(t *testing.T) {
	service, mockProductRepo, _ := newProductTestService()
	ctx := context.Background()

	id := uuid.New()
	mockProductRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	_, err := service.GetByID(ctx, id)

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProductService_List_FiltersByCategory(t *testing.T) {
	service, mockProductRepo, _ := newProductTestService()
	ctx := context.Background()

	categoryID := uuid.New()
	products := []catalog.Product{
		*newTestProductEntity(t, "Apples", categoryID),
		*newTestProductEntity(t, "Pears", categoryID),
	}

	mockProductRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["category_id"] == categoryID
	})).Return(products, nil)
	mockProductRepo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(2), nil)

	result, total, err := service.List(ctx, ProductListFilter{CategoryID: &categoryID})

	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, result, 2)
}

func TestProductService_Delete(t *testing.T) {
	service, mockProductRepo, _ := newProductTestService()
	ctx := context.Background()

	id := uuid.New()
	mockProductRepo.On("Delete", ctx, id).Return(nil)

	assert.NoError(t, service.Delete(ctx, id))
	mockProductRepo.AssertExpectations(t)
}
