package order

import (
	"context"
	"errors"

	"github.com/farmmarket/backend/internal/domain/cart"
	"github.com/farmmarket/backend/internal/domain/market"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartService manages the pending selections a user accumulates before
// checkout. The cart itself never reserves stock; offers are only claimed
// when checkout commits.
type CartService struct {
	store     cart.Store
	offerRepo market.OfferRepository
	logger    *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(store cart.Store, offerRepo market.OfferRepository, logger *zap.Logger) *CartService {
	return &CartService{
		store:     store,
		offerRepo: offerRepo,
		logger:    logger,
	}
}

// AddItem puts an offer into the user's cart after checking it against the
// live listing. The stock check here is advisory; checkout re-validates.
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req *AddCartItemRequest) (*CartResponse, error) {
	offer, err := s.offerRepo.FindByID(ctx, req.OfferID)
	if err != nil {
		return nil, err
	}
	if offer.Status != market.OfferStatusAvailable {
		return nil, shared.ErrInsufficientStock
	}
	if req.Quantity > offer.Quantity {
		return nil, shared.ErrInsufficientStock
	}

	if err := s.store.AddItem(ctx, userID, req.OfferID, req.Quantity); err != nil {
		s.logger.Error("failed to add cart item",
			zap.String("user_id", userID.String()),
			zap.String("offer_id", req.OfferID.String()),
			zap.Error(err))
		return nil, err
	}

	return s.GetCart(ctx, userID)
}

// GetCart returns the cart contents with each line resolved against the
// live offer. Lines whose offer has vanished or gone unavailable are kept
// but flagged, so the client can surface them before checkout rejects.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	items, err := s.store.GetItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := &CartResponse{
		Items: make([]CartItemResponse, 0, len(items)),
		Total: decimal.Zero,
	}
	for _, item := range items {
		line := CartItemResponse{
			OfferID:  item.OfferID,
			Quantity: item.Quantity,
		}
		offer, err := s.offerRepo.FindByID(ctx, item.OfferID)
		switch {
		case errors.Is(err, shared.ErrNotFound):
			// offer deleted since it was added; leave price zero
		case err != nil:
			return nil, err
		default:
			line.UnitPrice = offer.Price
			line.LineTotal = offer.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			line.Available = offer.Status == market.OfferStatusAvailable && offer.Quantity >= item.Quantity
			response.Total = response.Total.Add(line.LineTotal)
		}
		response.Items = append(response.Items, line)
	}
	return response, nil
}

// RemoveItem drops the line for an offer from the user's cart
func (s *CartService) RemoveItem(ctx context.Context, userID, offerID uuid.UUID) error {
	return s.store.RemoveItem(ctx, userID, offerID)
}

// Clear empties the user's cart
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.store.Clear(ctx, userID)
}
