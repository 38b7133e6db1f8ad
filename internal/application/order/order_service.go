package order

import (
	"context"

	"github.com/farmmarket/backend/internal/domain/market"
	"github.com/farmmarket/backend/internal/domain/order"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderService covers the manual order operations: creating an order over
// whole offers and editing or deleting existing orders. Stock bookkeeping
// differs from checkout - a manual order claims each offer outright
// (Available to Sold) rather than decrementing quantities.
type OrderService struct {
	orderRepo order.OrderRepository
	offerRepo market.OfferRepository
	logger    *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo order.OrderRepository, offerRepo market.OfferRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		offerRepo: offerRepo,
		logger:    logger,
	}
}

// Create places a manual order claiming every named offer. Any offer that
// is missing or not Available fails the whole call.
func (s *OrderService) Create(ctx context.Context, userID uuid.UUID, req *CreateOrderRequest) (*OrderResponse, error) {
	offers, err := s.resolveOffers(ctx, req.OfferIDs)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(userID, decimal.Zero)
	if err != nil {
		return nil, err
	}
	for _, offer := range offers {
		if _, err := o.AddLine(offer.ID, 1, offer.Price); err != nil {
			return nil, err
		}
	}
	o.RecalculateAmount()

	if err := s.orderRepo.CreateWithOffers(ctx, o, req.OfferIDs); err != nil {
		s.logger.Warn("failed to create order",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("order_id", o.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("offers", len(req.OfferIDs)))

	response := ToOrderResponse(o)
	return &response, nil
}

// GetByID returns an order, visible only to its owner or a manager
func (s *OrderService) GetByID(ctx context.Context, id, requesterID uuid.UUID, canManageAny bool) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID != requesterID && !canManageAny {
		return nil, shared.ErrForbidden
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// ListByUser returns a page of a user's orders, newest first
func (s *OrderService) ListByUser(ctx context.Context, userID uuid.UUID, listFilter *OrderListFilter) ([]OrderResponse, int64, error) {
	filter := shared.NewFilter()
	filter.OrderBy = "ordered_at"
	if listFilter != nil {
		if listFilter.Page > 0 {
			filter.Page = listFilter.Page
		}
		if listFilter.PageSize > 0 {
			filter.PageSize = listFilter.PageSize
		}
		if listFilter.SortBy != "" {
			filter.OrderBy = listFilter.SortBy
			if listFilter.SortDesc {
				filter.OrderDir = "desc"
			} else {
				filter.OrderDir = "asc"
			}
		}
	}

	orders, err := s.orderRepo.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses, total, nil
}

// Update edits an order. A non-nil offer set swaps the order's offers:
// the old ones are released back to Available, the new ones claimed.
func (s *OrderService) Update(ctx context.Context, id, requesterID uuid.UUID, canManageAny bool, req *UpdateOrderRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID != requesterID && !canManageAny {
		return nil, shared.ErrForbidden
	}

	if req.OfferIDs != nil {
		offers, err := s.resolveOffers(ctx, req.OfferIDs)
		if err != nil {
			return nil, err
		}
		o.Lines = o.Lines[:0]
		for _, offer := range offers {
			if _, err := o.AddLine(offer.ID, 1, offer.Price); err != nil {
				return nil, err
			}
		}
		o.RecalculateAmount()
	}
	if req.Amount != nil {
		if err := o.SetAmount(*req.Amount); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.UpdateWithOffers(ctx, o, req.OfferIDs); err != nil {
		s.logger.Warn("failed to update order",
			zap.String("order_id", id.String()),
			zap.Error(err))
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// Delete removes an order and releases its offers back to Available
func (s *OrderService) Delete(ctx context.Context, id, requesterID uuid.UUID, canManageAny bool) error {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if o.UserID != requesterID && !canManageAny {
		return shared.ErrForbidden
	}

	if err := s.orderRepo.DeleteReleasingOffers(ctx, id); err != nil {
		return err
	}

	s.logger.Info("order deleted",
		zap.String("order_id", id.String()),
		zap.String("user_id", o.UserID.String()))
	return nil
}

// resolveOffers loads every offer and checks it is Available. The
// repository repeats the availability check inside its transaction; this
// pass exists to reject bad sets before any write and to read prices.
func (s *OrderService) resolveOffers(ctx context.Context, offerIDs []uuid.UUID) ([]*market.Offer, error) {
	if len(offerIDs) == 0 {
		return nil, shared.ErrInvalidOfferSet
	}
	seen := make(map[uuid.UUID]struct{}, len(offerIDs))
	offers := make([]*market.Offer, 0, len(offerIDs))
	for _, offerID := range offerIDs {
		if _, dup := seen[offerID]; dup {
			return nil, shared.ErrInvalidOfferSet
		}
		seen[offerID] = struct{}{}

		offer, err := s.offerRepo.FindByID(ctx, offerID)
		if err != nil {
			if err == shared.ErrNotFound {
				return nil, shared.ErrInvalidOfferSet
			}
			return nil, err
		}
		if offer.Status != market.OfferStatusAvailable {
			return nil, shared.ErrInvalidOfferSet
		}
		offers = append(offers, offer)
	}
	return offers, nil
}
