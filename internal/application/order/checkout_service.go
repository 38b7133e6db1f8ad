package order

import (
	"context"

	"github.com/farmmarket/backend/internal/domain/cart"
	"github.com/farmmarket/backend/internal/domain/market"
	"github.com/farmmarket/backend/internal/domain/order"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CheckoutService turns a cart into an order. Validation reads the live
// offers, the write goes through a single transaction that conditionally
// decrements stock, and the cart is cleared only after the commit: a failed
// checkout leaves both the offers and the cart untouched.
type CheckoutService struct {
	store        cart.Store
	offerRepo    market.OfferRepository
	checkoutRepo order.CheckoutRepository
	logger       *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(store cart.Store, offerRepo market.OfferRepository, checkoutRepo order.CheckoutRepository, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		store:        store,
		offerRepo:    offerRepo,
		checkoutRepo: checkoutRepo,
		logger:       logger,
	}
}

// Checkout places an order from the user's cart
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID) (*CheckoutResult, error) {
	items, err := s.store.GetItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, shared.ErrEmptyCart
	}

	lines := make([]order.CheckoutLine, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		offer, err := s.offerRepo.FindByID(ctx, item.OfferID)
		if err != nil {
			return nil, err
		}
		if offer.Status != market.OfferStatusAvailable || item.Quantity > offer.Quantity {
			return nil, shared.ErrInsufficientStock
		}
		line := order.CheckoutLine{
			OfferID:   item.OfferID,
			Quantity:  item.Quantity,
			UnitPrice: offer.Price,
		}
		lines = append(lines, line)
		total = total.Add(line.Total())
	}

	o, err := order.NewOrder(userID, total)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		if _, err := o.AddLine(line.OfferID, line.Quantity, line.UnitPrice); err != nil {
			return nil, err
		}
	}

	if err := s.checkoutRepo.PlaceOrder(ctx, o, lines); err != nil {
		s.logger.Warn("checkout failed",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, err
	}

	// The order is committed at this point; a cart that fails to clear is
	// stale but harmless, so log and move on.
	if err := s.store.Clear(ctx, userID); err != nil {
		s.logger.Error("failed to clear cart after checkout",
			zap.String("user_id", userID.String()),
			zap.String("order_id", o.ID.String()),
			zap.Error(err))
	}

	s.logger.Info("order placed",
		zap.String("order_id", o.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("amount", total.String()))

	return &CheckoutResult{
		OrderID:   o.ID,
		Amount:    o.Amount,
		OrderedAt: o.OrderedAt,
		Lines:     toOrderLineResponses(o.Lines),
	}, nil
}
