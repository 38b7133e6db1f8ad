package market

import (
	"context"
	"errors"

	"github.com/farmmarket/backend/internal/domain/market"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReviewService handles offer reviews. Each user gets one review per offer;
// re-submitting unchanged content is accepted without a write.
type ReviewService struct {
	reviewRepo market.ReviewRepository
	offerRepo  market.OfferRepository
	logger     *zap.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	reviewRepo market.ReviewRepository,
	offerRepo market.OfferRepository,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		offerRepo:  offerRepo,
		logger:     logger,
	}
}

// Create adds a review for an offer. A second review for the same offer by
// the same user is a conflict.
func (s *ReviewService) Create(ctx context.Context, userID uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error) {
	if _, err := s.offerRepo.FindByID(ctx, req.OfferID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_OFFER", "Offer not found")
		}
		return nil, err
	}

	if _, err := s.reviewRepo.FindByUserAndOffer(ctx, userID, req.OfferID); err == nil {
		return nil, shared.ErrDuplicateReview
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	review, err := market.NewReview(userID, req.OfferID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info("Review created",
		zap.String("offer_id", req.OfferID.String()),
		zap.Int("rating", req.Rating))

	resp := ToReviewResponse(review)
	return &resp, nil
}

// Update revises the caller's review of an offer. Submitting identical
// content is idempotent and skips the write.
func (s *ReviewService) Update(ctx context.Context, userID, offerID uuid.UUID, req UpdateReviewRequest) (*ReviewResponse, error) {
	review, err := s.reviewRepo.FindByUserAndOffer(ctx, userID, offerID)
	if err != nil {
		return nil, err
	}

	changed, err := review.Revise(req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := s.reviewRepo.Save(ctx, review); err != nil {
			return nil, err
		}
	}

	resp := ToReviewResponse(review)
	return &resp, nil
}

// ListByOffer retrieves the reviews for an offer
func (s *ReviewService) ListByOffer(ctx context.Context, offerID uuid.UUID, filter ReviewListFilter) ([]ReviewResponse, int64, error) {
	domainFilter := shared.NewFilter()
	if filter.Rating != nil {
		domainFilter.Filters["rating"] = *filter.Rating
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}

	reviews, err := s.reviewRepo.FindByOffer(ctx, offerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.reviewRepo.CountByOffer(ctx, offerID)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = ToReviewResponse(&reviews[i])
	}
	return responses, total, nil
}

// Delete removes a review. The author may delete their own review;
// moderators may delete any.
func (s *ReviewService) Delete(ctx context.Context, id, requesterID uuid.UUID, isModerator bool) error {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !isModerator && review.UserID != requesterID {
		return shared.ErrForbidden
	}

	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}
