package market

import (
	"strings"

	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Review rating bounds
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a 1-5 rating from a user for an offer. At most one review per
// (user, offer) pair; the repository enforces the uniqueness.
type Review struct {
	shared.BaseEntity
	UserID  uuid.UUID
	OfferID uuid.UUID
	Rating  int
	Comment string
}

// NewReview creates a new review
func NewReview(userID, offerID uuid.UUID, rating int, comment string) (*Review, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if offerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OFFER", "Offer ID cannot be empty")
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	if len(comment) > 2000 {
		return nil, shared.NewDomainError("INVALID_COMMENT", "Comment cannot exceed 2000 characters")
	}

	return &Review{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		OfferID:    offerID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
	}, nil
}

// Revise replaces the rating and comment. Re-submitting the same values is
// a no-op so the update path stays idempotent.
func (r *Review) Revise(rating int, comment string) (changed bool, err error) {
	if err := validateRating(rating); err != nil {
		return false, err
	}
	comment = strings.TrimSpace(comment)
	if r.Rating == rating && r.Comment == comment {
		return false, nil
	}
	r.Rating = rating
	r.Comment = comment
	r.Touch()
	return true, nil
}

func validateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	return nil
}
