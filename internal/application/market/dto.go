package market

import (
	"time"

	"github.com/farmmarket/backend/internal/domain/market"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOfferRequest represents a request to publish an offer
type CreateOfferRequest struct {
	ProductID  uuid.UUID       `json:"product_id" binding:"required"`
	Price      decimal.Decimal `json:"price" binding:"required,dgt0"`
	Quantity   int             `json:"quantity" binding:"min=0"`
	IsPickable bool            `json:"is_pickable"`
}

// UpdateOfferRequest represents a request to update an offer
type UpdateOfferRequest struct {
	Price      *decimal.Decimal `json:"price" binding:"omitempty,dgt0"`
	Quantity   *int             `json:"quantity" binding:"omitempty,min=0"`
	IsPickable *bool            `json:"is_pickable"`
}

// OfferResponse represents an offer in API responses
type OfferResponse struct {
	ID         uuid.UUID       `json:"id"`
	ProductID  uuid.UUID       `json:"product_id"`
	FarmerID   uuid.UUID       `json:"farmer_id"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	Status     string          `json:"status"`
	IsPickable bool            `json:"is_pickable"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ToOfferResponse converts a domain offer to a response DTO
func ToOfferResponse(offer *market.Offer) OfferResponse {
	return OfferResponse{
		ID:         offer.ID,
		ProductID:  offer.ProductID,
		FarmerID:   offer.FarmerID,
		Price:      offer.Price,
		Quantity:   offer.Quantity,
		Status:     offer.Status.String(),
		IsPickable: offer.IsPickable,
		CreatedAt:  offer.CreatedAt,
		UpdatedAt:  offer.UpdatedAt,
	}
}

// OfferListFilter represents filter options for the offer list
type OfferListFilter struct {
	Status     string           `form:"status" binding:"omitempty,oneof=Available Sold"`
	IsPickable *bool            `form:"is_pickable"`
	ProductID  *uuid.UUID       `form:"product_id"`
	FarmerID   *uuid.UUID       `form:"farmer_id"`
	MinPrice   *decimal.Decimal `form:"min_price"`
	MaxPrice   *decimal.Decimal `form:"max_price"`
	Page       int              `form:"page"`
	PageSize   int              `form:"page_size"`
	SortBy     string           `form:"sort_by"`
	SortDesc   bool             `form:"sort_desc"`
}

// CreateHarvestEventRequest represents a request to schedule a harvest window
type CreateHarvestEventRequest struct {
	OfferID   uuid.UUID `json:"offer_id" binding:"required"`
	AddressID uuid.UUID `json:"address_id" binding:"required"`
	StartsAt  time.Time `json:"starts_at" binding:"required"`
	EndsAt    time.Time `json:"ends_at" binding:"required"`
}

// UpdateHarvestEventRequest represents a request to change a harvest window
type UpdateHarvestEventRequest struct {
	AddressID *uuid.UUID `json:"address_id"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
}

// HarvestEventResponse represents a harvest event in API responses
type HarvestEventResponse struct {
	ID        uuid.UUID `json:"id"`
	OfferID   uuid.UUID `json:"offer_id"`
	AddressID uuid.UUID `json:"address_id"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	CreatedAt time.Time `json:"created_at"`
}

// ToHarvestEventResponse converts a domain harvest event to a response DTO
func ToHarvestEventResponse(event *market.SelfHarvestEvent) HarvestEventResponse {
	return HarvestEventResponse{
		ID:        event.ID,
		OfferID:   event.OfferID,
		AddressID: event.AddressID,
		StartsAt:  event.StartsAt,
		EndsAt:    event.EndsAt,
		CreatedAt: event.CreatedAt,
	}
}

// CreateReviewRequest represents a request to review an offer
type CreateReviewRequest struct {
	OfferID uuid.UUID `json:"offer_id" binding:"required"`
	Rating  int       `json:"rating" binding:"required,min=1,max=5"`
	Comment string    `json:"comment" binding:"max=2000"`
}

// UpdateReviewRequest represents a request to revise a review
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	OfferID   uuid.UUID `json:"offer_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToReviewResponse converts a domain review to a response DTO
func ToReviewResponse(review *market.Review) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID,
		UserID:    review.UserID,
		OfferID:   review.OfferID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}

// ReviewListFilter represents filter options for per-offer review listings
type ReviewListFilter struct {
	Rating   *int `form:"rating" binding:"omitempty,min=1,max=5"`
	Page     int  `form:"page"`
	PageSize int  `form:"page_size"`
}
