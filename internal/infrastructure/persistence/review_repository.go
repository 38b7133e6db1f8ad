package persistence

import (
	"context"
	"errors"

	"github.com/farmmarket/backend/internal/domain/market"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/farmmarket/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReviewRepository implements market.ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByID finds a review by its ID
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*market.Review, error) {
	var model models.ReviewModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUserAndOffer finds the single review a user left on an offer
func (r *GormReviewRepository) FindByUserAndOffer(ctx context.Context, userID, offerID uuid.UUID) (*market.Review, error) {
	var model models.ReviewModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND offer_id = ?", userID, offerID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOffer finds all reviews for an offer
func (r *GormReviewRepository) FindByOffer(ctx context.Context, offerID uuid.UUID, filter shared.Filter) ([]market.Review, error) {
	var reviewModels []models.ReviewModel
	query := r.db.WithContext(ctx).Model(&models.ReviewModel{}).Where("offer_id = ?", offerID)

	for key, value := range filter.Filters {
		switch key {
		case "rating":
			query = query.Where("rating = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, ReviewSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&reviewModels).Error; err != nil {
		return nil, err
	}

	reviews := make([]market.Review, len(reviewModels))
	for i, model := range reviewModels {
		reviews[i] = *model.ToDomain()
	}
	return reviews, nil
}

// CountByOffer counts reviews for an offer
func (r *GormReviewRepository) CountByOffer(ctx context.Context, offerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ReviewModel{}).
		Where("offer_id = ?", offerID).
		Count(&count).Error
	return count, err
}

// Save creates or updates a review. The unique index on (user_id, offer_id)
// backs the one-review-per-user-per-offer rule at the storage level; the
// service checks it first to return a friendlier error.
func (r *GormReviewRepository) Save(ctx context.Context, review *market.Review) error {
	model := models.ReviewModelFromDomain(review)
	err := r.db.WithContext(ctx).Save(model).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrDuplicateReview
	}
	return err
}

// Delete deletes a review
func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ReviewModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ market.ReviewRepository = (*GormReviewRepository)(nil)
