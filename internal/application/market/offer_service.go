package market

import (
	"context"
	"errors"

	"github.com/farmmarket/backend/internal/domain/catalog"
	"github.com/farmmarket/backend/internal/domain/market"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/farmmarket/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OfferService handles a farmer's offer listings
type OfferService struct {
	offerRepo   market.OfferRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewOfferService creates a new OfferService
func NewOfferService(
	offerRepo market.OfferRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *OfferService {
	return &OfferService{
		offerRepo:   offerRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Create publishes an offer for an existing product
func (s *OfferService) Create(ctx context.Context, farmerID uuid.UUID, req CreateOfferRequest) (*OfferResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product not found")
		}
		return nil, err
	}

	offer, err := market.NewOffer(req.ProductID, farmerID, valueobject.NewMoneyEUR(req.Price), req.Quantity, req.IsPickable)
	if err != nil {
		return nil, err
	}
	if err := s.offerRepo.Save(ctx, offer); err != nil {
		return nil, err
	}

	s.logger.Info("Offer published",
		zap.String("offer_id", offer.ID.String()),
		zap.String("farmer_id", farmerID.String()))

	resp := ToOfferResponse(offer)
	return &resp, nil
}

// GetByID retrieves an offer by ID
func (s *OfferService) GetByID(ctx context.Context, id uuid.UUID) (*OfferResponse, error) {
	offer, err := s.offerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOfferResponse(offer)
	return &resp, nil
}

// List retrieves offers matching the filter along with the total count
func (s *OfferService) List(ctx context.Context, filter OfferListFilter) ([]OfferResponse, int64, error) {
	domainFilter := shared.NewFilter()
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.IsPickable != nil {
		domainFilter.Filters["is_pickable"] = *filter.IsPickable
	}
	if filter.ProductID != nil {
		domainFilter.Filters["product_id"] = *filter.ProductID
	}
	if filter.FarmerID != nil {
		domainFilter.Filters["farmer_id"] = *filter.FarmerID
	}
	if filter.MinPrice != nil {
		domainFilter.Filters["min_price"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		domainFilter.Filters["max_price"] = *filter.MaxPrice
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	if filter.SortBy != "" {
		domainFilter.OrderBy = filter.SortBy
		if filter.SortDesc {
			domainFilter.OrderDir = "desc"
		} else {
			domainFilter.OrderDir = "asc"
		}
	}

	offers, err := s.offerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.offerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return toOfferResponses(offers), total, nil
}

// ListByFarmer retrieves a farmer's offers
func (s *OfferService) ListByFarmer(ctx context.Context, farmerID uuid.UUID) ([]OfferResponse, error) {
	offers, err := s.offerRepo.FindByFarmer(ctx, farmerID, shared.NewFilter())
	if err != nil {
		return nil, err
	}
	return toOfferResponses(offers), nil
}

// ListPurchasedByUser retrieves the offers a user has bought
func (s *OfferService) ListPurchasedByUser(ctx context.Context, userID uuid.UUID) ([]OfferResponse, error) {
	offers, err := s.offerRepo.FindPurchasedByUser(ctx, userID, shared.NewFilter())
	if err != nil {
		return nil, err
	}
	return toOfferResponses(offers), nil
}

// Update applies price, stock and pickability changes. Only the owning
// farmer may update an offer; administrators bypass the ownership check.
func (s *OfferService) Update(ctx context.Context, id, requesterID uuid.UUID, isAdmin bool, req UpdateOfferRequest) (*OfferResponse, error) {
	offer, err := s.ownedOffer(ctx, id, requesterID, isAdmin)
	if err != nil {
		return nil, err
	}

	if req.Price != nil {
		if err := offer.UpdatePrice(valueobject.NewMoneyEUR(*req.Price)); err != nil {
			return nil, err
		}
	}
	if req.Quantity != nil {
		if err := offer.Restock(*req.Quantity); err != nil {
			return nil, err
		}
	}
	if req.IsPickable != nil {
		offer.SetPickable(*req.IsPickable)
	}

	if err := s.offerRepo.Save(ctx, offer); err != nil {
		return nil, err
	}

	resp := ToOfferResponse(offer)
	return &resp, nil
}

// Delete removes an offer together with its harvest event
func (s *OfferService) Delete(ctx context.Context, id, requesterID uuid.UUID, isAdmin bool) error {
	if _, err := s.ownedOffer(ctx, id, requesterID, isAdmin); err != nil {
		return err
	}
	if err := s.offerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Offer deleted", zap.String("offer_id", id.String()))
	return nil
}

func (s *OfferService) ownedOffer(ctx context.Context, id, requesterID uuid.UUID, isAdmin bool) (*market.Offer, error) {
	offer, err := s.offerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && offer.FarmerID != requesterID {
		return nil, shared.ErrForbidden
	}
	return offer, nil
}

func toOfferResponses(offers []market.Offer) []OfferResponse {
	responses := make([]OfferResponse, len(offers))
	for i := range offers {
		responses[i] = ToOfferResponse(&offers[i])
	}
	return responses
}
