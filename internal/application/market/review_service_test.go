package market

import (
	"context"
	"testing"

	"github.com/farmmarket/backend/internal/domain/market"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockReviewRepository is a mock implementation of market.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*market.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*market.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByUserAndOffer(ctx context.Context, userID, offerID uuid.UUID) (*market.Review, error) {
	args := m.Called(ctx, userID, offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*market.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByOffer(ctx context.Context, offerID uuid.UUID, filter shared.Filter) ([]market.Review, error) {
	args := m.Called(ctx, offerID, filter)
	return args.Get(0).([]market.Review), args.Error(1)
}

func (m *MockReviewRepository) CountByOffer(ctx context.Context, offerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, offerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) Save(ctx context.Context, review *market.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestReview(t *testing.T, userID, offerID uuid.UUID, rating int, comment string) *market.Review {
	t.Helper()
	review, err := market.NewReview(userID, offerID, rating, comment)
	require.NoError(t, err)
	return review
}

func TestReviewService_Create_Success(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockOfferRepo := new(MockOfferRepository)
	service := NewReviewService(mockReviewRepo, mockOfferRepo, zap.NewNop())

	ctx := context.Background()
	userID := uuid.New()
	offer := newTestOffer(t, uuid.New(), 5.00, 10, false)

	mockOfferRepo.On("FindByID", ctx, offer.ID).Return(offer, nil)
	mockReviewRepo.On("FindByUserAndOffer", ctx, userID, offer.ID).Return(nil, shared.ErrNotFound)
	mockReviewRepo.On("Save", ctx, mock.AnythingOfType("*market.Review")).Return(nil)

	result, err := service.Create(ctx, userID, CreateReviewRequest{
		OfferID: offer.ID,
		Rating:  4,
		Comment: "Sweet and crisp",
	})

	assert.NoError(t, err)
	assert.Equal(t, 4, result.Rating)
	assert.Equal(t, "Sweet and crisp", result.Comment)
	mockReviewRepo.AssertExpectations(t)
}

func TestReviewService_Create_DuplicateConflict(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockOfferRepo := new(MockOfferRepository)
	service := NewReviewService(mockReviewRepo, mockOfferRepo, zap.NewNop())

	ctx := context.Background()
	userID := uuid.New()
	offer := newTestOffer(t, uuid.New(), 5.00, 10, false)
	existing := newTestReview(t, userID, offer.ID, 5, "Loved it")

	mockOfferRepo.On("FindByID", ctx, offer.ID).Return(offer, nil)
	mockReviewRepo.On("FindByUserAndOffer", ctx, userID, offer.ID).Return(existing, nil)

	result, err := service.Create(ctx, userID, CreateReviewRequest{
		OfferID: offer.ID,
		Rating:  2,
		Comment: "Changed my mind",
	})

	assert.ErrorIs(t, err, shared.ErrDuplicateReview)
	assert.Nil(t, result)
	mockReviewRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestReviewService_Create_UnknownOffer(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockOfferRepo := new(MockOfferRepository)
	service := NewReviewService(mockReviewRepo, mockOfferRepo, zap.NewNop())

	ctx := context.Background()
	offerID := uuid.New()

	mockOfferRepo.On("FindByID", ctx, offerID).Return(nil, shared.ErrNotFound)

	result, err := service.Create(ctx, uuid.New(), CreateReviewRequest{OfferID: offerID, Rating: 3})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_OFFER", domainErr.Code)
}

func TestReviewService_Update_Revises(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockOfferRepo := new(MockOfferRepository)
	service := NewReviewService(mockReviewRepo, mockOfferRepo, zap.NewNop())

	ctx := context.Background()
	userID := uuid.New()
	offerID := uuid.New()
	existing := newTestReview(t, userID, offerID, 3, "Fine")

	mockReviewRepo.On("FindByUserAndOffer", ctx, userID, offerID).Return(existing, nil)
	mockReviewRepo.On("Save", ctx, existing).Return(nil)

	result, err := service.Update(ctx, userID, offerID, UpdateReviewRequest{Rating: 5, Comment: "Actually great"})

	assert.NoError(t, err)
	assert.Equal(t, 5, result.Rating)
	assert.Equal(t, "Actually great", result.Comment)
	mockReviewRepo.AssertExpectations(t)
}

func TestReviewService_Update_IdenticalContentSkipsWrite(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockOfferRepo := new(MockOfferRepository)
	service := NewReviewService(mockReviewRepo, mockOfferRepo, zap.NewNop())

	ctx := context.Background()
	userID := uuid.New()
	offerID := uuid.New()
	existing := newTestReview(t, userID, offerID, 3, "Fine")

	mockReviewRepo.On("FindByUserAndOffer", ctx, userID, offerID).Return(existing, nil)

	result, err := service.Update(ctx, userID, offerID, UpdateReviewRequest{Rating: 3, Comment: "Fine"})

	assert.NoError(t, err)
	assert.Equal(t, 3, result.Rating)
	mockReviewRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestReviewService_Update_NoExistingReview(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockOfferRepo := new(MockOfferRepository)
	service := NewReviewService(mockReviewRepo, mockOfferRepo, zap.NewNop())

	ctx := context.Background()
	userID := uuid.New()
	offerID := uuid.New()

	mockReviewRepo.On("FindByUserAndOffer", ctx, userID, offerID).Return(nil, shared.ErrNotFound)

	result, err := service.Update(ctx, userID, offerID, UpdateReviewRequest{Rating: 4})

	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Nil(t, result)
}

func TestReviewService_Delete_ByAuthor(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockOfferRepo := new(MockOfferRepository)
	service := NewReviewService(mockReviewRepo, mockOfferRepo, zap.NewNop())

	ctx := context.Background()
	userID := uuid.New()
	review := newTestReview(t, userID, uuid.New(), 2, "Bruised")

	mockReviewRepo.On("FindByID", ctx, review.ID).Return(review, nil)
	mockReviewRepo.On("Delete", ctx, review.ID).Return(nil)

	err := service.Delete(ctx, review.ID, userID, false)

	assert.NoError(t, err)
	mockReviewRepo.AssertExpectations(t)
}

func TestReviewService_Delete_ByModerator(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockOfferRepo := new(MockOfferRepository)
	service := NewReviewService(mockReviewRepo, mockOfferRepo, zap.NewNop())

	ctx := context.Background()
	review := newTestReview(t, uuid.New(), uuid.New(), 1, "Spam")

	mockReviewRepo.On("FindByID", ctx, review.ID).Return(review, nil)
	mockReviewRepo.On("Delete", ctx, review.ID).Return(nil)

	err := service.Delete(ctx, review.ID, uuid.New(), true)

	assert.NoError(t, err)
}

func TestReviewService_Delete_ForbiddenForStranger(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockOfferRepo := new(MockOfferRepository)
	service := NewReviewService(mockReviewRepo, mockOfferRepo, zap.NewNop())

	ctx := context.Background()
	review := newTestReview(t, uuid.New(), uuid.New(), 4, "Nice")

	mockReviewRepo.On("FindByID", ctx, review.ID).Return(review, nil)

	err := service.Delete(ctx, review.ID, uuid.New(), false)

	assert.ErrorIs(t, err, shared.ErrForbidden)
	mockReviewRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestReviewService_ListByOffer(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockOfferRepo := new(MockOfferRepository)
	service := NewReviewService(mockReviewRepo, mockOfferRepo, zap.NewNop())

	ctx := context.Background()
	offerID := uuid.New()
	first := newTestReview(t, uuid.New(), offerID, 5, "Great")
	second := newTestReview(t, uuid.New(), offerID, 4, "Good")

	mockReviewRepo.On("FindByOffer", ctx, offerID, mock.AnythingOfType("shared.Filter")).Return([]market.Review{*first, *second}, nil)
	mockReviewRepo.On("CountByOffer", ctx, offerID).Return(int64(2), nil)

	results, total, err := service.ListByOffer(ctx, offerID, ReviewListFilter{})

	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, results, 2)
}
