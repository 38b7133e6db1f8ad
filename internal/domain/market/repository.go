package market

import (
	"context"

	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OfferRepository defines persistence operations for offers
type OfferRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Offer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Offer, error)
	FindByFarmer(ctx context.Context, farmerID uuid.UUID, filter shared.Filter) ([]Offer, error)
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]Offer, error)
	// FindPurchasedByUser lists the offers the user has bought, resolved
	// through the user's order lines.
	FindPurchasedByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Offer, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, offer *Offer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SelfHarvestEventRepository defines persistence operations for harvest events
type SelfHarvestEventRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SelfHarvestEvent, error)
	FindByOffer(ctx context.Context, offerID uuid.UUID) (*SelfHarvestEvent, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]SelfHarvestEvent, error)
	ExistsForOffer(ctx context.Context, offerID uuid.UUID) (bool, error)
	Save(ctx context.Context, event *SelfHarvestEvent) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReviewRepository defines persistence operations for reviews
type ReviewRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	FindByUserAndOffer(ctx context.Context, userID, offerID uuid.UUID) (*Review, error)
	FindByOffer(ctx context.Context, offerID uuid.UUID, filter shared.Filter) ([]Review, error)
	CountByOffer(ctx context.Context, offerID uuid.UUID) (int64, error)
	Save(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id uuid.UUID) error
}
