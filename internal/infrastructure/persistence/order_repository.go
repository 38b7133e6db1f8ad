package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/farmmarket/backend/internal/domain/market"
	"github.com/farmmarket/backend/internal/domain/order"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/farmmarket/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its lines by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Preload("Lines").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUser finds orders placed by a user
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	var orderModels []models.OrderModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("user_id = ?", userID),
		filter,
	)

	if err := query.Preload("Lines").Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]order.Order, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders, nil
}

// CountByUser counts orders placed by a user
func (r *GormOrderRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// CreateWithOffers creates the order plus its lines and marks every named
// offer Sold. Each offer is claimed with a conditional update so a
// concurrent create against the same offer cannot double-sell it; zero rows
// affected means the offer is missing or already Sold and rolls the whole
// order back with ErrInvalidOfferSet.
func (r *GormOrderRepository) CreateWithOffers(ctx context.Context, o *order.Order, offerIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := claimOffers(tx, offerIDs); err != nil {
			return err
		}

		if err := tx.Create(models.OrderModelFromDomain(o)).Error; err != nil {
			return err
		}
		return createOrderLines(tx, o.Lines)
	})
}

// UpdateWithOffers replaces the order's stored fields and, when offerIDs is
// non-nil, swaps the associated offer set: the old offers go back to
// Available, the old lines are deleted and the new set is claimed under the
// same availability check as CreateWithOffers.
func (r *GormOrderRepository) UpdateWithOffers(ctx context.Context, o *order.Order, offerIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.OrderModel
		if err := tx.First(&existing, "id = ?", o.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if offerIDs != nil {
			if err := releaseOrderOffers(tx, o.ID); err != nil {
				return err
			}
			if err := tx.Where("order_id = ?", o.ID).Delete(&models.OrderLineModel{}).Error; err != nil {
				return err
			}
			if err := claimOffers(tx, offerIDs); err != nil {
				return err
			}
			if err := createOrderLines(tx, o.Lines); err != nil {
				return err
			}
		}

		return tx.Model(&models.OrderModel{}).
			Where("id = ?", o.ID).
			Updates(map[string]interface{}{
				"amount":     o.Amount,
				"ordered_at": o.OrderedAt,
				"updated_at": time.Now(),
			}).Error
	})
}

// DeleteReleasingOffers releases the order's offers back to Available,
// deletes the lines and finally the order itself
func (r *GormOrderRepository) DeleteReleasingOffers(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := releaseOrderOffers(tx, id); err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderLineModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.OrderModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// applyFilter applies common query filters for orders
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if minAmount, ok := filter.Filters["min_amount"]; ok {
		query = query.Where("amount >= ?", minAmount)
	}
	if maxAmount, ok := filter.Filters["max_amount"]; ok {
		query = query.Where("amount <= ?", maxAmount)
	}
	if orderedAfter, ok := filter.Filters["ordered_after"]; ok {
		query = query.Where("ordered_at >= ?", orderedAfter)
	}

	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "ordered_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	return query
}

// claimOffers marks each offer Sold, guarding on the current status so only
// Available offers can be taken. A miss means the offer does not exist or is
// already Sold; either way the caller's transaction is rolled back.
func claimOffers(tx *gorm.DB, offerIDs []uuid.UUID) error {
	for _, offerID := range offerIDs {
		result := tx.Model(&models.OfferModel{}).
			Where("id = ? AND status = ?", offerID, market.OfferStatusAvailable).
			Updates(map[string]interface{}{
				"status":     market.OfferStatusSold,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrInvalidOfferSet
		}
	}
	return nil
}

// releaseOrderOffers sets the offers referenced by the order's lines back
// to Available
func releaseOrderOffers(tx *gorm.DB, orderID uuid.UUID) error {
	return tx.Model(&models.OfferModel{}).
		Where("id IN (?)", tx.Model(&models.OrderLineModel{}).Select("offer_id").Where("order_id = ?", orderID)).
		Updates(map[string]interface{}{
			"status":     market.OfferStatusAvailable,
			"updated_at": time.Now(),
		}).Error
}

func createOrderLines(tx *gorm.DB, lines []order.OrderLine) error {
	for _, line := range lines {
		if err := tx.Create(models.OrderLineModelFromDomain(line)).Error; err != nil {
			return err
		}
	}
	return nil
}

var _ order.OrderRepository = (*GormOrderRepository)(nil)
