package handler

import (
	identityapp "github.com/farmmarket/backend/internal/application/identity"
	marketapp "github.com/farmmarket/backend/internal/application/market"
	"github.com/farmmarket/backend/internal/domain/identity"
	"github.com/farmmarket/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler handles user management and address endpoints
type UserHandler struct {
	BaseHandler
	userService  *identityapp.UserService
	offerService *marketapp.OfferService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService, offerService *marketapp.OfferService) *UserHandler {
	return &UserHandler{userService: userService, offerService: offerService}
}

// List returns users matching the given filter. Administrators only.
func (h *UserHandler) List(c *gin.Context) {
	var filter identityapp.UserListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	users, total, err := h.userService.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, users, total, page, pageSize)
}

// GetByID returns a single user. Users may read their own profile;
// anyone else needs the user management permission.
func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	requesterID, _ := getUserID(c)
	if id != requesterID && !callerCan(c, identity.PermManageUsers) {
		h.Forbidden(c, "Cannot access another user's profile")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, user)
}

// Update modifies a user's profile. Role changes require the user
// management permission even on the caller's own account.
func (h *UserHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	var req identityapp.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	requesterID, _ := getUserID(c)
	canManage := callerCan(c, identity.PermManageUsers)
	if id != requesterID && !canManage {
		h.Forbidden(c, "Cannot modify another user's profile")
		return
	}
	if req.Role != nil && !canManage {
		h.Forbidden(c, "Only administrators can change roles")
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, user)
}

// Delete removes a user account. Administrators only.
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ListAddresses returns the addresses of a user
func (h *UserHandler) ListAddresses(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	requesterID, _ := getUserID(c)
	if id != requesterID && !callerCan(c, identity.PermManageUsers) {
		h.Forbidden(c, "Cannot access another user's addresses")
		return
	}

	addresses, err := h.userService.ListAddresses(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, addresses)
}

// AddAddress adds an address to the authenticated user's profile
func (h *UserHandler) AddAddress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	address, err := h.userService.AddAddress(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, address)
}

// UpdateAddress modifies one of the authenticated user's addresses
func (h *UserHandler) UpdateAddress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(c.Param("address_id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID format")
		return
	}

	var req identityapp.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	address, err := h.userService.UpdateAddress(c.Request.Context(), userID, addressID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, address)
}

// DeleteAddress removes one of the authenticated user's addresses
func (h *UserHandler) DeleteAddress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(c.Param("address_id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID format")
		return
	}

	if err := h.userService.DeleteAddress(c.Request.Context(), userID, addressID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ListOffers returns the offers a farmer has published
func (h *UserHandler) ListOffers(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	offers, err := h.offerService.ListByFarmer(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, offers)
}

// ListPurchases returns the offers the authenticated user has bought
func (h *UserHandler) ListPurchases(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	offers, err := h.offerService.ListPurchasedByUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, offers)
}

// ListUserPurchases returns the offers a given user has bought. Users may
// read their own purchase history; anyone else needs order management rights.
func (h *UserHandler) ListUserPurchases(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	requesterID, _ := getUserID(c)
	if id != requesterID && !callerCan(c, identity.PermManageAnyOrder) {
		h.Forbidden(c, "Cannot access another user's purchases")
		return
	}

	offers, err := h.offerService.ListPurchasedByUser(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, offers)
}

// RegisterRoutes registers user and address routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("", middleware.RequirePermission(identity.PermManageUsers), h.List)
		users.GET("/:id", h.GetByID)
		users.PUT("/:id", h.Update)
		users.DELETE("/:id", middleware.RequirePermission(identity.PermManageUsers), h.Delete)
		users.GET("/:id/addresses", h.ListAddresses)
		users.GET("/:id/offers", h.ListOffers)
		users.GET("/:id/purchases", h.ListUserPurchases)
	}

	me := rg.Group("/me")
	{
		me.GET("/purchases", h.ListPurchases)
		me.POST("/addresses", h.AddAddress)
		me.PUT("/addresses/:address_id", h.UpdateAddress)
		me.DELETE("/addresses/:address_id", h.DeleteAddress)
	}
}
