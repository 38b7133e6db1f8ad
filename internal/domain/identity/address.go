package identity

import (
	"strings"

	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Address is a postal address owned by a user. Self-harvest events point at
// one of the farmer's addresses.
type Address struct {
	shared.BaseEntity
	UserID     uuid.UUID
	Street     string
	City       string
	PostalCode string
	Country    string
}

// NewAddress creates a new address for a user
func NewAddress(userID uuid.UUID, street, city, postalCode, country string) (*Address, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	street = strings.TrimSpace(street)
	city = strings.TrimSpace(city)
	if street == "" || city == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Street and city are required")
	}
	if len(postalCode) > 20 {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Postal code cannot exceed 20 characters")
	}

	return &Address{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Street:     street,
		City:       city,
		PostalCode: strings.TrimSpace(postalCode),
		Country:    strings.TrimSpace(country),
	}, nil
}

// Update replaces the address fields
func (a *Address) Update(street, city, postalCode, country string) error {
	street = strings.TrimSpace(street)
	city = strings.TrimSpace(city)
	if street == "" || city == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Street and city are required")
	}
	a.Street = street
	a.City = city
	a.PostalCode = strings.TrimSpace(postalCode)
	a.Country = strings.TrimSpace(country)
	a.Touch()
	return nil
}
