package handler

import (
	marketapp "github.com/farmmarket/backend/internal/application/market"
	"github.com/farmmarket/backend/internal/domain/identity"
	"github.com/farmmarket/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReviewHandler handles review endpoints
type ReviewHandler struct {
	BaseHandler
	reviewService *marketapp.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *marketapp.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Create posts a review for an offer. One review per user and offer.
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req marketapp.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, review)
}

// Update revises the authenticated user's review of an offer
func (h *ReviewHandler) Update(c *gin.Context) {
	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid offer ID format")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req marketapp.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), userID, offerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, review)
}

// ListByOffer returns the reviews posted for an offer
func (h *ReviewHandler) ListByOffer(c *gin.Context) {
	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid offer ID format")
		return
	}

	var filter marketapp.ReviewListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	reviews, total, err := h.reviewService.ListByOffer(c.Request.Context(), offerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, reviews, total, page, pageSize)
}

// Delete removes a review. Authors may delete their own; moderators
// may delete any.
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid review ID format")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	isModerator := callerCan(c, identity.PermModerateReviews)
	if err := h.reviewService.Delete(c.Request.Context(), id, userID, isModerator); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers review routes
func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reviews := rg.Group("/reviews")
	{
		reviews.POST("", middleware.RequirePermission(identity.PermWriteReviews), h.Create)
		reviews.DELETE("/:id", h.Delete)
	}

	offers := rg.Group("/offers")
	{
		offers.GET("/:id/reviews", h.ListByOffer)
		offers.PUT("/:id/review", middleware.RequirePermission(identity.PermWriteReviews), h.Update)
	}
}
