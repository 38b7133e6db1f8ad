package cart

import (
	"context"

	"github.com/google/uuid"
)

// LineItem is a transient pairing of an offer and a requested quantity,
// scoped to a user. It has no relation to persisted rows until checkout
// commits.
type LineItem struct {
	OfferID  uuid.UUID `json:"offer_id"`
	Quantity int       `json:"quantity"`
}

// Store holds each user's pending selections prior to checkout. Cart state
// is ephemeral: the in-memory implementation does not survive restarts and
// is scoped to a single running instance; the redis implementation shares
// carts across instances. Lookups for an unknown user yield an empty cart,
// not an error.
//
// Individual operations are safe for concurrent use, but a read-modify-write
// across calls is not atomic; concurrent mutations for the same user are
// last-write-wins.
type Store interface {
	// AddItem merges by offer: an existing line gets its quantity
	// incremented, otherwise a new line is appended. No upper bound is
	// enforced here; stock is checked against the live offer at add time by
	// the caller and again at checkout.
	AddItem(ctx context.Context, userID, offerID uuid.UUID, quantity int) error

	// GetItems returns an ordered snapshot of the user's line items.
	GetItems(ctx context.Context, userID uuid.UUID) ([]LineItem, error)

	// RemoveItem removes the line for that offer if present; no-op otherwise.
	RemoveItem(ctx context.Context, userID, offerID uuid.UUID) error

	// Clear discards all line items for the user.
	Clear(ctx context.Context, userID uuid.UUID) error
}
