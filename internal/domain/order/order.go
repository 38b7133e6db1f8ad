package order

import (
	"time"

	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/farmmarket/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLine is a purchased slice of an offer: the join row between an order
// and an offer, carrying the quantity and the unit price read at validation
// time. Later price edits on the offer never change a placed order.
type OrderLine struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	OfferID   uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	CreatedAt time.Time
}

// NewOrderLine creates a line for an order
func NewOrderLine(orderID, offerID uuid.UUID, quantity int, unitPrice decimal.Decimal) (*OrderLine, error) {
	if offerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OFFER", "Offer ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &OrderLine{
		ID:        uuid.New(),
		OrderID:   orderID,
		OfferID:   offerID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		CreatedAt: time.Now(),
	}, nil
}

// Total returns quantity * unit price for the line
func (l *OrderLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is a purchase record owned by a user. Deleting an order releases
// (never deletes) its offers back to Available.
type Order struct {
	shared.BaseEntity
	UserID    uuid.UUID
	Amount    decimal.Decimal
	OrderedAt time.Time
	Lines     []OrderLine
}

// NewOrder creates an order for a user with the given total amount
func NewOrder(userID uuid.UUID, amount decimal.Decimal) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Order amount cannot be negative")
	}

	return &Order{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Amount:     amount,
		OrderedAt:  time.Now(),
		Lines:      make([]OrderLine, 0),
	}, nil
}

// AddLine appends a line and leaves Amount untouched; callers either pass
// a precomputed amount or call RecalculateAmount afterwards.
func (o *Order) AddLine(offerID uuid.UUID, quantity int, unitPrice decimal.Decimal) (*OrderLine, error) {
	line, err := NewOrderLine(o.ID, offerID, quantity, unitPrice)
	if err != nil {
		return nil, err
	}
	o.Lines = append(o.Lines, *line)
	o.Touch()
	return line, nil
}

// RecalculateAmount recomputes Amount as the sum of line totals
func (o *Order) RecalculateAmount() {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Total())
	}
	o.Amount = total
	o.Touch()
}

// SetAmount replaces the order total
func (o *Order) SetAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Order amount cannot be negative")
	}
	o.Amount = amount
	o.Touch()
	return nil
}

// OfferIDs returns the offer ids referenced by the order's lines
func (o *Order) OfferIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(o.Lines))
	for i, line := range o.Lines {
		ids[i] = line.OfferID
	}
	return ids
}

// AmountMoney returns the order total as a Money value object
func (o *Order) AmountMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(o.Amount)
}
