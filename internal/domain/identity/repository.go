package identity

import (
	"context"

	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, user *User) error
	// Delete removes the user and cascades to dependent rows
	// (addresses, offers, orders, reviews).
	Delete(ctx context.Context, id uuid.UUID) error
}

// AddressRepository defines persistence operations for addresses
type AddressRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Address, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Address, error)
	Save(ctx context.Context, address *Address) error
	Delete(ctx context.Context, id uuid.UUID) error
}
