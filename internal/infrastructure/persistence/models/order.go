package models

import (
	"time"

	"github.com/farmmarket/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order domain entity.
type OrderModel struct {
	BaseModel
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	OrderedAt time.Time        `gorm:"not null;index"`
	Lines     []OrderLineModel `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Amount:     m.Amount,
		OrderedAt:  m.OrderedAt,
		Lines:      make([]order.OrderLine, len(m.Lines)),
	}
	for i, line := range m.Lines {
		o.Lines[i] = line.ToDomain()
	}
	return o
}

// FromDomain populates the persistence model from a domain Order entity.
// Lines are not copied; the repository stores them separately.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.UserID = o.UserID
	m.Amount = o.Amount
	m.OrderedAt = o.OrderedAt
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderLineModel is the persistence model for an order line.
type OrderLineModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	OfferID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderLineModel) TableName() string {
	return "order_lines"
}

// ToDomain converts the persistence model to a domain OrderLine.
func (m *OrderLineModel) ToDomain() order.OrderLine {
	return order.OrderLine{
		ID:        m.ID,
		OrderID:   m.OrderID,
		OfferID:   m.OfferID,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		CreatedAt: m.CreatedAt,
	}
}

// OrderLineModelFromDomain creates a new persistence model from a domain OrderLine.
func OrderLineModelFromDomain(l order.OrderLine) *OrderLineModel {
	return &OrderLineModel{
		ID:        l.ID,
		OrderID:   l.OrderID,
		OfferID:   l.OfferID,
		Quantity:  l.Quantity,
		UnitPrice: l.UnitPrice,
		CreatedAt: l.CreatedAt,
	}
}
