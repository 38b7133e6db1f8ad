package market

import (
	"context"
	"errors"

	"github.com/farmmarket/backend/internal/domain/identity"
	"github.com/farmmarket/backend/internal/domain/market"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SelfHarvestService schedules harvest windows for pickable offers.
// One event per offer; the offer must be pickable and owned by the caller.
type SelfHarvestService struct {
	eventRepo   market.SelfHarvestEventRepository
	offerRepo   market.OfferRepository
	addressRepo identity.AddressRepository
	logger      *zap.Logger
}

// NewSelfHarvestService creates a new SelfHarvestService
func NewSelfHarvestService(
	eventRepo market.SelfHarvestEventRepository,
	offerRepo market.OfferRepository,
	addressRepo identity.AddressRepository,
	logger *zap.Logger,
) *SelfHarvestService {
	return &SelfHarvestService{
		eventRepo:   eventRepo,
		offerRepo:   offerRepo,
		addressRepo: addressRepo,
		logger:      logger,
	}
}

// Create schedules a harvest window for a pickable offer
func (s *SelfHarvestService) Create(ctx context.Context, farmerID uuid.UUID, req CreateHarvestEventRequest) (*HarvestEventResponse, error) {
	offer, err := s.offerRepo.FindByID(ctx, req.OfferID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_OFFER", "Offer not found")
		}
		return nil, err
	}
	if offer.FarmerID != farmerID {
		return nil, shared.ErrForbidden
	}
	if !offer.IsPickable {
		return nil, shared.NewDomainError("OFFER_NOT_PICKABLE", "Offer is not marked as pickable")
	}

	exists, err := s.eventRepo.ExistsForOffer(ctx, req.OfferID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("EVENT_EXISTS", "Offer already has a harvest event")
	}

	if err := s.checkAddress(ctx, farmerID, req.AddressID); err != nil {
		return nil, err
	}

	event, err := market.NewSelfHarvestEvent(req.OfferID, req.AddressID, req.StartsAt, req.EndsAt)
	if err != nil {
		return nil, err
	}
	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info("Harvest event scheduled",
		zap.String("offer_id", req.OfferID.String()),
		zap.Time("starts_at", req.StartsAt))

	resp := ToHarvestEventResponse(event)
	return &resp, nil
}

// GetByID retrieves a harvest event by ID
func (s *SelfHarvestService) GetByID(ctx context.Context, id uuid.UUID) (*HarvestEventResponse, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToHarvestEventResponse(event)
	return &resp, nil
}

// GetByOffer retrieves the harvest event attached to an offer
func (s *SelfHarvestService) GetByOffer(ctx context.Context, offerID uuid.UUID) (*HarvestEventResponse, error) {
	event, err := s.eventRepo.FindByOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	resp := ToHarvestEventResponse(event)
	return &resp, nil
}

// List retrieves all harvest events
func (s *SelfHarvestService) List(ctx context.Context) ([]HarvestEventResponse, error) {
	events, err := s.eventRepo.FindAll(ctx, shared.NewFilter())
	if err != nil {
		return nil, err
	}

	responses := make([]HarvestEventResponse, len(events))
	for i := range events {
		responses[i] = ToHarvestEventResponse(&events[i])
	}
	return responses, nil
}

// Update reschedules or relocates a harvest event owned by the caller
func (s *SelfHarvestService) Update(ctx context.Context, id, farmerID uuid.UUID, isAdmin bool, req UpdateHarvestEventRequest) (*HarvestEventResponse, error) {
	event, err := s.ownedEvent(ctx, id, farmerID, isAdmin)
	if err != nil {
		return nil, err
	}

	if req.StartsAt != nil || req.EndsAt != nil {
		startsAt := event.StartsAt
		endsAt := event.EndsAt
		if req.StartsAt != nil {
			startsAt = *req.StartsAt
		}
		if req.EndsAt != nil {
			endsAt = *req.EndsAt
		}
		if err := event.Reschedule(startsAt, endsAt); err != nil {
			return nil, err
		}
	}
	if req.AddressID != nil {
		if !isAdmin {
			if err := s.checkAddress(ctx, farmerID, *req.AddressID); err != nil {
				return nil, err
			}
		}
		if err := event.Relocate(*req.AddressID); err != nil {
			return nil, err
		}
	}

	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, err
	}

	resp := ToHarvestEventResponse(event)
	return &resp, nil
}

// Delete removes a harvest event owned by the caller
func (s *SelfHarvestService) Delete(ctx context.Context, id, farmerID uuid.UUID, isAdmin bool) error {
	if _, err := s.ownedEvent(ctx, id, farmerID, isAdmin); err != nil {
		return err
	}
	return s.eventRepo.Delete(ctx, id)
}

func (s *SelfHarvestService) ownedEvent(ctx context.Context, id, farmerID uuid.UUID, isAdmin bool) (*market.SelfHarvestEvent, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if isAdmin {
		return event, nil
	}

	offer, err := s.offerRepo.FindByID(ctx, event.OfferID)
	if err != nil {
		return nil, err
	}
	if offer.FarmerID != farmerID {
		return nil, shared.ErrForbidden
	}
	return event, nil
}

func (s *SelfHarvestService) checkAddress(ctx context.Context, farmerID, addressID uuid.UUID) error {
	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_ADDRESS", "Address not found")
		}
		return err
	}
	if address.UserID != farmerID {
		return shared.NewDomainError("INVALID_ADDRESS", "Address does not belong to the farmer")
	}
	return nil
}
