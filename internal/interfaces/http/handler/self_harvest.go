package handler

import (
	marketapp "github.com/farmmarket/backend/internal/application/market"
	"github.com/farmmarket/backend/internal/domain/identity"
	"github.com/farmmarket/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SelfHarvestHandler handles self-harvest event endpoints
type SelfHarvestHandler struct {
	BaseHandler
	harvestService *marketapp.SelfHarvestService
}

// NewSelfHarvestHandler creates a new SelfHarvestHandler
func NewSelfHarvestHandler(harvestService *marketapp.SelfHarvestService) *SelfHarvestHandler {
	return &SelfHarvestHandler{harvestService: harvestService}
}

// Create schedules a harvest event for a pickable offer
func (h *SelfHarvestHandler) Create(c *gin.Context) {
	farmerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req marketapp.CreateHarvestEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	event, err := h.harvestService.Create(c.Request.Context(), farmerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, event)
}

// GetByID returns a single harvest event
func (h *SelfHarvestHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid event ID format")
		return
	}

	event, err := h.harvestService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, event)
}

// GetByOffer returns the harvest event scheduled for an offer
func (h *SelfHarvestHandler) GetByOffer(c *gin.Context) {
	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid offer ID format")
		return
	}

	event, err := h.harvestService.GetByOffer(c.Request.Context(), offerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, event)
}

// List returns all scheduled harvest events
func (h *SelfHarvestHandler) List(c *gin.Context) {
	events, err := h.harvestService.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, events)
}

// Update reschedules or relocates a harvest event
func (h *SelfHarvestHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid event ID format")
		return
	}

	farmerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req marketapp.UpdateHarvestEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	event, err := h.harvestService.Update(c.Request.Context(), id, farmerID, isAdmin(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, event)
}

// Delete cancels a harvest event
func (h *SelfHarvestHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid event ID format")
		return
	}

	farmerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.harvestService.Delete(c.Request.Context(), id, farmerID, isAdmin(c)); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers harvest event routes
func (h *SelfHarvestHandler) RegisterRoutes(rg *gin.RouterGroup) {
	events := rg.Group("/harvest-events")
	{
		events.GET("", h.List)
		events.GET("/:id", h.GetByID)
		events.POST("", middleware.RequirePermission(identity.PermManageOwnHarvests), h.Create)
		events.PUT("/:id", middleware.RequirePermission(identity.PermManageOwnHarvests), h.Update)
		events.DELETE("/:id", middleware.RequirePermission(identity.PermManageOwnHarvests), h.Delete)
	}

	offers := rg.Group("/offers")
	{
		offers.GET("/:id/harvest-event", h.GetByOffer)
	}
}
