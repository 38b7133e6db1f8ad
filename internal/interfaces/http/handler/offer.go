package handler

import (
	marketapp "github.com/farmmarket/backend/internal/application/market"
	"github.com/farmmarket/backend/internal/domain/identity"
	"github.com/farmmarket/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OfferHandler handles offer endpoints
type OfferHandler struct {
	BaseHandler
	offerService *marketapp.OfferService
}

// NewOfferHandler creates a new OfferHandler
func NewOfferHandler(offerService *marketapp.OfferService) *OfferHandler {
	return &OfferHandler{offerService: offerService}
}

func isAdmin(c *gin.Context) bool {
	return middleware.GetJWTRole(c) == string(identity.RoleAdministrator)
}

// Create publishes a new offer for the authenticated farmer
func (h *OfferHandler) Create(c *gin.Context) {
	farmerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req marketapp.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	offer, err := h.offerService.Create(c.Request.Context(), farmerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, offer)
}

// GetByID returns a single offer
func (h *OfferHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid offer ID format")
		return
	}

	offer, err := h.offerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, offer)
}

// List returns offers matching the given filter
func (h *OfferHandler) List(c *gin.Context) {
	var filter marketapp.OfferListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	offers, total, err := h.offerService.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, offers, total, page, pageSize)
}

// Update modifies an offer. Farmers may only touch their own offers;
// administrators may touch any.
func (h *OfferHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid offer ID format")
		return
	}

	requesterID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req marketapp.UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	offer, err := h.offerService.Update(c.Request.Context(), id, requesterID, isAdmin(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, offer)
}

// Delete removes an offer
func (h *OfferHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid offer ID format")
		return
	}

	requesterID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.offerService.Delete(c.Request.Context(), id, requesterID, isAdmin(c)); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers offer routes
func (h *OfferHandler) RegisterRoutes(rg *gin.RouterGroup) {
	offers := rg.Group("/offers")
	{
		offers.GET("", h.List)
		offers.GET("/:id", h.GetByID)
		offers.POST("", middleware.RequirePermission(identity.PermManageOwnOffers), h.Create)
		offers.PUT("/:id", middleware.RequirePermission(identity.PermManageOwnOffers), h.Update)
		offers.DELETE("/:id", middleware.RequirePermission(identity.PermManageOwnOffers), h.Delete)
	}
}
