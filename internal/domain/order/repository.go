package order

import (
	"context"

	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutLine is a cart line validated against a live offer: the quantity
// the buyer asked for plus the unit price read at validation time.
type CheckoutLine struct {
	OfferID   uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// Total returns quantity * unit price for the line
func (l CheckoutLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// CreateWithOffers creates the order plus its lines and marks every named
	// offer Sold after checking each is Available - one transaction, full
	// rollback on any failure. A missing or unavailable offer fails the call
	// with ErrInvalidOfferSet.
	CreateWithOffers(ctx context.Context, o *Order, offerIDs []uuid.UUID) error

	// UpdateWithOffers replaces the order amount and, when offerIDs is
	// non-nil, releases the previously associated offers back to Available,
	// deletes the old lines and re-creates them for the new set after the
	// same availability check - one transaction.
	UpdateWithOffers(ctx context.Context, o *Order, offerIDs []uuid.UUID) error

	// DeleteReleasingOffers sets the order's offers back to Available,
	// deletes the lines, then the order - one transaction.
	DeleteReleasingOffers(ctx context.Context, id uuid.UUID) error
}

// CheckoutRepository is the transactional unit of work for checkout. The
// implementation must decrement each offer with a single conditional update
// (quantity >= requested guard) so that concurrent checkouts against the
// same offer cannot over-sell; zero rows affected is ErrInsufficientStock
// and rolls the whole order back.
type CheckoutRepository interface {
	PlaceOrder(ctx context.Context, o *Order, lines []CheckoutLine) error
}
