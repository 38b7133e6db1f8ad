package persistence

import (
	"context"
	"time"

	"github.com/farmmarket/backend/internal/domain/market"
	"github.com/farmmarket/backend/internal/domain/order"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/farmmarket/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCheckoutRepository implements order.CheckoutRepository using GORM
type GormCheckoutRepository struct {
	db *gorm.DB
}

// NewGormCheckoutRepository creates a new GormCheckoutRepository
func NewGormCheckoutRepository(db *gorm.DB) *GormCheckoutRepository {
	return &GormCheckoutRepository{db: db}
}

// PlaceOrder persists the order and its lines while decrementing stock on
// every purchased offer, all in one transaction.
//
// Each decrement is a single conditional UPDATE guarded by the remaining
// quantity, so two concurrent checkouts against the same offer serialize on
// the row and the loser sees zero rows affected instead of overselling.
// The status CASE reads the pre-update quantity, which is the standard SQL
// behavior for column references on the right-hand side of SET.
func (r *GormCheckoutRepository) PlaceOrder(ctx context.Context, o *order.Order, lines []order.CheckoutLine) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, line := range lines {
			result := tx.Model(&models.OfferModel{}).
				Where("id = ? AND status = ? AND quantity >= ?",
					line.OfferID, market.OfferStatusAvailable, line.Quantity).
				Updates(map[string]interface{}{
					"quantity": gorm.Expr("quantity - ?", line.Quantity),
					"status": gorm.Expr(
						"CASE WHEN quantity - ? <= 0 THEN ? ELSE status END",
						line.Quantity, market.OfferStatusSold,
					),
					"updated_at": time.Now(),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return shared.ErrInsufficientStock
			}
		}

		if err := tx.Create(models.OrderModelFromDomain(o)).Error; err != nil {
			return err
		}
		return createOrderLines(tx, o.Lines)
	})
}

var _ order.CheckoutRepository = (*GormCheckoutRepository)(nil)
