package models

import (
	"time"

	"github.com/farmmarket/backend/internal/domain/market"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OfferModel is the persistence model for the Offer domain entity.
type OfferModel struct {
	BaseModel
	ProductID  uuid.UUID          `gorm:"type:uuid;not null;index"`
	FarmerID   uuid.UUID          `gorm:"type:uuid;not null;index"`
	Price      decimal.Decimal    `gorm:"type:decimal(10,2);not null"`
	Quantity   int                `gorm:"not null;default:0"`
	Status     market.OfferStatus `gorm:"type:varchar(20);not null;default:'Available';index"`
	IsPickable bool               `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (OfferModel) TableName() string {
	return "offers"
}

// ToDomain converts the persistence model to a domain Offer entity.
func (m *OfferModel) ToDomain() *market.Offer {
	return &market.Offer{
		BaseEntity: m.BaseModel.ToDomain(),
		ProductID:  m.ProductID,
		FarmerID:   m.FarmerID,
		Price:      m.Price,
		Quantity:   m.Quantity,
		Status:     m.Status,
		IsPickable: m.IsPickable,
	}
}

// FromDomain populates the persistence model from a domain Offer entity.
func (m *OfferModel) FromDomain(o *market.Offer) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.ProductID = o.ProductID
	m.FarmerID = o.FarmerID
	m.Price = o.Price
	m.Quantity = o.Quantity
	m.Status = o.Status
	m.IsPickable = o.IsPickable
}

// OfferModelFromDomain creates a new persistence model from a domain Offer entity.
func OfferModelFromDomain(o *market.Offer) *OfferModel {
	m := &OfferModel{}
	m.FromDomain(o)
	return m
}

// SelfHarvestEventModel is the persistence model for the SelfHarvestEvent domain entity.
type SelfHarvestEventModel struct {
	BaseModel
	OfferID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	AddressID uuid.UUID `gorm:"type:uuid;not null;index"`
	StartsAt  time.Time `gorm:"not null"`
	EndsAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SelfHarvestEventModel) TableName() string {
	return "self_harvest_events"
}

// ToDomain converts the persistence model to a domain SelfHarvestEvent entity.
func (m *SelfHarvestEventModel) ToDomain() *market.SelfHarvestEvent {
	return &market.SelfHarvestEvent{
		BaseEntity: m.BaseModel.ToDomain(),
		OfferID:    m.OfferID,
		AddressID:  m.AddressID,
		StartsAt:   m.StartsAt,
		EndsAt:     m.EndsAt,
	}
}

// FromDomain populates the persistence model from a domain SelfHarvestEvent entity.
func (m *SelfHarvestEventModel) FromDomain(e *market.SelfHarvestEvent) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.OfferID = e.OfferID
	m.AddressID = e.AddressID
	m.StartsAt = e.StartsAt
	m.EndsAt = e.EndsAt
}

// SelfHarvestEventModelFromDomain creates a new persistence model from a domain SelfHarvestEvent entity.
func SelfHarvestEventModelFromDomain(e *market.SelfHarvestEvent) *SelfHarvestEventModel {
	m := &SelfHarvestEventModel{}
	m.FromDomain(e)
	return m
}

// ReviewModel is the persistence model for the Review domain entity.
// The composite unique index enforces one review per user and offer.
type ReviewModel struct {
	BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_offer"`
	OfferID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_offer;index"`
	Rating  int       `gorm:"not null"`
	Comment string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts the persistence model to a domain Review entity.
func (m *ReviewModel) ToDomain() *market.Review {
	return &market.Review{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		OfferID:    m.OfferID,
		Rating:     m.Rating,
		Comment:    m.Comment,
	}
}

// FromDomain populates the persistence model from a domain Review entity.
func (m *ReviewModel) FromDomain(r *market.Review) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.UserID = r.UserID
	m.OfferID = r.OfferID
	m.Rating = r.Rating
	m.Comment = r.Comment
}

// ReviewModelFromDomain creates a new persistence model from a domain Review entity.
func ReviewModelFromDomain(r *market.Review) *ReviewModel {
	m := &ReviewModel{}
	m.FromDomain(r)
	return m
}
