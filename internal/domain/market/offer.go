package market

import (
	"fmt"

	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/farmmarket/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OfferStatus represents the availability of an offer
type OfferStatus string

const (
	OfferStatusAvailable OfferStatus = "Available"
	OfferStatusSold      OfferStatus = "Sold"
)

// IsValid checks if the status is a known OfferStatus
func (s OfferStatus) IsValid() bool {
	switch s {
	case OfferStatusAvailable, OfferStatusSold:
		return true
	}
	return false
}

// String returns the string representation of OfferStatus
func (s OfferStatus) String() string {
	return string(s)
}

// Offer is a farmer's listing of a product at a price and quantity.
// Status is Sold exactly when the stock is exhausted; an offer with partial
// remaining stock stays Available.
type Offer struct {
	shared.BaseEntity
	ProductID  uuid.UUID
	FarmerID   uuid.UUID
	Price      decimal.Decimal
	Quantity   int
	Status     OfferStatus
	IsPickable bool
}

// NewOffer creates a new available offer
func NewOffer(productID, farmerID uuid.UUID, price valueobject.Money, quantity int, isPickable bool) (*Offer, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if farmerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FARMER", "Farmer ID cannot be empty")
	}
	if price.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	status := OfferStatusAvailable
	if quantity == 0 {
		status = OfferStatusSold
	}

	return &Offer{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		FarmerID:   farmerID,
		Price:      price.Amount(),
		Quantity:   quantity,
		Status:     status,
		IsPickable: isPickable,
	}, nil
}

// UpdatePrice changes the unit price
func (o *Offer) UpdatePrice(price valueobject.Money) error {
	if price.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	o.Price = price.Amount()
	o.Touch()
	return nil
}

// Restock sets the remaining quantity and recomputes the status
func (o *Offer) Restock(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	o.Quantity = quantity
	if quantity == 0 {
		o.Status = OfferStatusSold
	} else {
		o.Status = OfferStatusAvailable
	}
	o.Touch()
	return nil
}

// SetPickable toggles self-harvest eligibility
func (o *Offer) SetPickable(pickable bool) {
	o.IsPickable = pickable
	o.Touch()
}

// CanFulfill reports whether the offer can satisfy a requested quantity
func (o *Offer) CanFulfill(quantity int) bool {
	return o.Status == OfferStatusAvailable && quantity > 0 && quantity <= o.Quantity
}

// Consume decrements stock by the requested quantity and flips the status
// to Sold when the stock is exhausted. The persistence layer performs the
// same mutation as a single conditional update; this method carries the
// in-memory semantics.
func (o *Offer) Consume(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !o.CanFulfill(quantity) {
		return shared.ErrInsufficientStock
	}
	o.Quantity -= quantity
	if o.Quantity == 0 {
		o.Status = OfferStatusSold
	}
	o.Touch()
	return nil
}

// MarkSold claims the whole offer for a manual order
func (o *Offer) MarkSold() error {
	if o.Status != OfferStatusAvailable {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot sell offer in %s status", o.Status))
	}
	o.Status = OfferStatusSold
	o.Touch()
	return nil
}

// Release returns the offer to Available, e.g. when an order holding it
// is deleted.
func (o *Offer) Release() {
	o.Status = OfferStatusAvailable
	o.Touch()
}

// IsAvailable returns true if the offer can currently be purchased
func (o *Offer) IsAvailable() bool {
	return o.Status == OfferStatusAvailable
}

// PriceMoney returns the unit price as a Money value object
func (o *Offer) PriceMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(o.Price)
}

// LineTotal returns price * quantity for a requested quantity
func (o *Offer) LineTotal(quantity int) decimal.Decimal {
	return o.Price.Mul(decimal.NewFromInt(int64(quantity)))
}
