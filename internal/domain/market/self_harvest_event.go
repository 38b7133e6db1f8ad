package market

import (
	"time"

	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SelfHarvestEvent is a time window and address at which a pickable offer
// can be harvested in person. Exactly one event per offer.
type SelfHarvestEvent struct {
	shared.BaseEntity
	OfferID   uuid.UUID
	AddressID uuid.UUID
	StartsAt  time.Time
	EndsAt    time.Time
}

// NewSelfHarvestEvent creates a harvest window for a pickable offer.
// The caller is responsible for checking that the offer is pickable;
// the application service enforces that with the live offer.
func NewSelfHarvestEvent(offerID, addressID uuid.UUID, startsAt, endsAt time.Time) (*SelfHarvestEvent, error) {
	if offerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OFFER", "Offer ID cannot be empty")
	}
	if addressID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address ID cannot be empty")
	}
	if startsAt.IsZero() || endsAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_WINDOW", "Start and end times are required")
	}
	if !endsAt.After(startsAt) {
		return nil, shared.NewDomainError("INVALID_WINDOW", "End time must be after start time")
	}

	return &SelfHarvestEvent{
		BaseEntity: shared.NewBaseEntity(),
		OfferID:    offerID,
		AddressID:  addressID,
		StartsAt:   startsAt,
		EndsAt:     endsAt,
	}, nil
}

// Reschedule replaces the harvest window
func (e *SelfHarvestEvent) Reschedule(startsAt, endsAt time.Time) error {
	if !endsAt.After(startsAt) {
		return shared.NewDomainError("INVALID_WINDOW", "End time must be after start time")
	}
	e.StartsAt = startsAt
	e.EndsAt = endsAt
	e.Touch()
	return nil
}

// Relocate changes the pickup address
func (e *SelfHarvestEvent) Relocate(addressID uuid.UUID) error {
	if addressID == uuid.Nil {
		return shared.NewDomainError("INVALID_ADDRESS", "Address ID cannot be empty")
	}
	e.AddressID = addressID
	e.Touch()
	return nil
}

// IsActiveAt reports whether the window covers the given instant
func (e *SelfHarvestEvent) IsActiveAt(t time.Time) bool {
	return !t.Before(e.StartsAt) && !t.After(e.EndsAt)
}
