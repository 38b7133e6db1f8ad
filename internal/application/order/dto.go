package order

import (
	"time"

	"github.com/farmmarket/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddCartItemRequest represents a request to put an offer into the cart
type AddCartItemRequest struct {
	OfferID  uuid.UUID `json:"offer_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
}

// CartItemResponse is one cart line resolved against the live offer
type CartItemResponse struct {
	OfferID   uuid.UUID       `json:"offer_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
	Available bool            `json:"available"`
}

// CartResponse represents the cart contents with a running total
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

// CheckoutResult is returned after a successful checkout
type CheckoutResult struct {
	OrderID   uuid.UUID           `json:"order_id"`
	Amount    decimal.Decimal     `json:"amount"`
	OrderedAt time.Time           `json:"ordered_at"`
	Lines     []OrderLineResponse `json:"lines"`
}

// CreateOrderRequest represents a manual order over whole offers
type CreateOrderRequest struct {
	OfferIDs []uuid.UUID `json:"offer_ids" binding:"required,min=1"`
}

// UpdateOrderRequest represents changes to an order. A non-nil offer set
// replaces the order's offers; the old ones are released.
type UpdateOrderRequest struct {
	Amount   *decimal.Decimal `json:"amount" binding:"omitempty,dgt0"`
	OfferIDs []uuid.UUID      `json:"offer_ids"`
}

// OrderLineResponse represents an order line in API responses
type OrderLineResponse struct {
	OfferID   uuid.UUID       `json:"offer_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID        uuid.UUID           `json:"id"`
	UserID    uuid.UUID           `json:"user_id"`
	Amount    decimal.Decimal     `json:"amount"`
	OrderedAt time.Time           `json:"ordered_at"`
	Lines     []OrderLineResponse `json:"lines"`
	CreatedAt time.Time           `json:"created_at"`
}

// ToOrderResponse converts a domain order to a response DTO
func ToOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		Amount:    o.Amount,
		OrderedAt: o.OrderedAt,
		Lines:     toOrderLineResponses(o.Lines),
		CreatedAt: o.CreatedAt,
	}
}

func toOrderLineResponses(lines []order.OrderLine) []OrderLineResponse {
	responses := make([]OrderLineResponse, len(lines))
	for i, line := range lines {
		responses[i] = OrderLineResponse{
			OfferID:   line.OfferID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.Total(),
		}
	}
	return responses
}

// OrderListFilter represents filter options for order listings
type OrderListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	SortBy   string `form:"sort_by"`
	SortDesc bool   `form:"sort_desc"`
}
