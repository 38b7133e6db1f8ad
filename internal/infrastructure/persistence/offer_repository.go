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

// GormOfferRepository implements market.OfferRepository using GORM
type GormOfferRepository struct {
	db *gorm.DB
}

// NewGormOfferRepository creates a new GormOfferRepository
func NewGormOfferRepository(db *gorm.DB) *GormOfferRepository {
	return &GormOfferRepository{db: db}
}

// FindByID finds an offer by its ID
func (r *GormOfferRepository) FindByID(ctx context.Context, id uuid.UUID) (*market.Offer, error) {
	var model models.OfferModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all offers matching the filter
func (r *GormOfferRepository) FindAll(ctx context.Context, filter shared.Filter) ([]market.Offer, error) {
	var offerModels []models.OfferModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OfferModel{}), filter)

	if err := query.Find(&offerModels).Error; err != nil {
		return nil, err
	}

	return toDomainOffers(offerModels), nil
}

// FindByFarmer finds offers published by a farmer
func (r *GormOfferRepository) FindByFarmer(ctx context.Context, farmerID uuid.UUID, filter shared.Filter) ([]market.Offer, error) {
	var offerModels []models.OfferModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.OfferModel{}).Where("farmer_id = ?", farmerID),
		filter,
	)

	if err := query.Find(&offerModels).Error; err != nil {
		return nil, err
	}

	return toDomainOffers(offerModels), nil
}

// FindByProduct finds offers for a product
func (r *GormOfferRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]market.Offer, error) {
	var offerModels []models.OfferModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.OfferModel{}).Where("product_id = ?", productID),
		filter,
	)

	if err := query.Find(&offerModels).Error; err != nil {
		return nil, err
	}

	return toDomainOffers(offerModels), nil
}

// FindPurchasedByUser finds every offer the user has bought, joined through
// the user's order lines
func (r *GormOfferRepository) FindPurchasedByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]market.Offer, error) {
	var offerModels []models.OfferModel
	query := r.db.WithContext(ctx).Model(&models.OfferModel{}).
		Joins("JOIN order_lines ON order_lines.offer_id = offers.id").
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Where("orders.user_id = ?", userID).
		Distinct("offers.*").
		Order("offers.created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if err := query.Find(&offerModels).Error; err != nil {
		return nil, err
	}

	return toDomainOffers(offerModels), nil
}

// Count counts offers matching the filter
func (r *GormOfferRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.OfferModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an offer
func (r *GormOfferRepository) Save(ctx context.Context, offer *market.Offer) error {
	model := models.OfferModelFromDomain(offer)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an offer and its harvest event, if any
func (r *GormOfferRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("offer_id = ?", id).Delete(&models.SelfHarvestEventModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.OfferModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormOfferRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, OfferSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormOfferRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "is_pickable":
			query = query.Where("is_pickable = ?", value)
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "farmer_id":
			query = query.Where("farmer_id = ?", value)
		case "min_price":
			query = query.Where("price >= ?", value)
		case "max_price":
			query = query.Where("price <= ?", value)
		}
	}

	return query
}

func toDomainOffers(offerModels []models.OfferModel) []market.Offer {
	offers := make([]market.Offer, len(offerModels))
	for i, model := range offerModels {
		offers[i] = *model.ToDomain()
	}
	return offers
}

var _ market.OfferRepository = (*GormOfferRepository)(nil)
