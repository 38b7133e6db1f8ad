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

// GormSelfHarvestEventRepository implements market.SelfHarvestEventRepository using GORM
type GormSelfHarvestEventRepository struct {
	db *gorm.DB
}

// NewGormSelfHarvestEventRepository creates a new GormSelfHarvestEventRepository
func NewGormSelfHarvestEventRepository(db *gorm.DB) *GormSelfHarvestEventRepository {
	return &GormSelfHarvestEventRepository{db: db}
}

// FindByID finds a harvest event by its ID
func (r *GormSelfHarvestEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*market.SelfHarvestEvent, error) {
	var model models.SelfHarvestEventModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOffer finds the harvest event attached to an offer
func (r *GormSelfHarvestEventRepository) FindByOffer(ctx context.Context, offerID uuid.UUID) (*market.SelfHarvestEvent, error) {
	var model models.SelfHarvestEventModel
	if err := r.db.WithContext(ctx).
		Where("offer_id = ?", offerID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all harvest events matching the filter
func (r *GormSelfHarvestEventRepository) FindAll(ctx context.Context, filter shared.Filter) ([]market.SelfHarvestEvent, error) {
	var eventModels []models.SelfHarvestEventModel
	query := r.db.WithContext(ctx).Model(&models.SelfHarvestEventModel{})

	for key, value := range filter.Filters {
		switch key {
		case "address_id":
			query = query.Where("address_id = ?", value)
		case "active_at":
			query = query.Where("starts_at <= ? AND ends_at > ?", value, value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, HarvestEventSortFields, "starts_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&eventModels).Error; err != nil {
		return nil, err
	}

	events := make([]market.SelfHarvestEvent, len(eventModels))
	for i, model := range eventModels {
		events[i] = *model.ToDomain()
	}
	return events, nil
}

// ExistsForOffer checks if an offer already has a harvest event
func (r *GormSelfHarvestEventRepository) ExistsForOffer(ctx context.Context, offerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SelfHarvestEventModel{}).
		Where("offer_id = ?", offerID).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates a harvest event
func (r *GormSelfHarvestEventRepository) Save(ctx context.Context, event *market.SelfHarvestEvent) error {
	model := models.SelfHarvestEventModelFromDomain(event)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a harvest event
func (r *GormSelfHarvestEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SelfHarvestEventModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ market.SelfHarvestEventRepository = (*GormSelfHarvestEventRepository)(nil)
