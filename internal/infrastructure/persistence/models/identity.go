package models

import (
	"time"

	"github.com/farmmarket/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	BaseModel
	Username     string        `gorm:"type:varchar(50);not null;uniqueIndex"`
	Email        string        `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string        `gorm:"type:varchar(255);not null"`
	DisplayName  string        `gorm:"type:varchar(200)"`
	Role         identity.Role `gorm:"type:varchar(20);not null;default:'RegisteredUser'"`
	IsFarmer     bool          `gorm:"not null;default:false"`
	LastLoginAt  *time.Time    `gorm:"index"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		DisplayName:  m.DisplayName,
		Role:         m.Role,
		IsFarmer:     m.IsFarmer,
		LastLoginAt:  m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Username = u.Username
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.DisplayName = u.DisplayName
	m.Role = u.Role
	m.IsFarmer = u.IsFarmer
	m.LastLoginAt = u.LastLoginAt
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// AddressModel is the persistence model for the Address domain entity.
type AddressModel struct {
	BaseModel
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Street     string    `gorm:"type:varchar(200);not null"`
	City       string    `gorm:"type:varchar(100);not null"`
	PostalCode string    `gorm:"type:varchar(20);not null"`
	Country    string    `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "addresses"
}

// ToDomain converts the persistence model to a domain Address entity.
func (m *AddressModel) ToDomain() *identity.Address {
	return &identity.Address{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Street:     m.Street,
		City:       m.City,
		PostalCode: m.PostalCode,
		Country:    m.Country,
	}
}

// FromDomain populates the persistence model from a domain Address entity.
func (m *AddressModel) FromDomain(a *identity.Address) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.UserID = a.UserID
	m.Street = a.Street
	m.City = a.City
	m.PostalCode = a.PostalCode
	m.Country = a.Country
}

// AddressModelFromDomain creates a new persistence model from a domain Address entity.
func AddressModelFromDomain(a *identity.Address) *AddressModel {
	m := &AddressModel{}
	m.FromDomain(a)
	return m
}
