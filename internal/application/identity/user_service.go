package identity

import (
	"context"

	"github.com/farmmarket/backend/internal/domain/identity"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService handles user administration and address book operations
type UserService struct {
	userRepo    identity.UserRepository
	addressRepo identity.AddressRepository
	logger      *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo identity.UserRepository,
	addressRepo identity.AddressRepository,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		addressRepo: addressRepo,
		logger:      logger,
	}
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// List retrieves users matching the filter along with the total count
func (s *UserService) List(ctx context.Context, filter UserListFilter) ([]UserResponse, int64, error) {
	domainFilter := shared.NewFilter()
	domainFilter.Search = filter.Search
	if filter.Role != "" {
		domainFilter.Filters["role"] = filter.Role
	}
	if filter.IsFarmer != nil {
		domainFilter.Filters["is_farmer"] = *filter.IsFarmer
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	if filter.SortBy != "" {
		domainFilter.OrderBy = filter.SortBy
		if filter.SortDesc {
			domainFilter.OrderDir = "desc"
		} else {
			domainFilter.OrderDir = "asc"
		}
	}

	users, err := s.userRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.userRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses, total, nil
}

// Update applies profile changes. Role changes are restricted to
// administrators; the handler enforces that before calling in.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		if err := user.SetDisplayName(*req.DisplayName); err != nil {
			return nil, err
		}
	}
	if req.Email != nil {
		taken, err := s.userRepo.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if taken && *req.Email != user.Email {
			return nil, shared.NewDomainError("EMAIL_TAKEN", "Email is already registered")
		}
		if err := user.SetEmail(*req.Email); err != nil {
			return nil, err
		}
	}
	if req.IsFarmer != nil {
		user.MarkFarmer(*req.IsFarmer)
	}
	if req.Role != nil {
		if err := user.ChangeRole(identity.Role(*req.Role)); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User updated", zap.String("user_id", id.String()))

	resp := ToUserResponse(user)
	return &resp, nil
}

// Delete removes a user and cascades to everything the user owns:
// addresses, offers with their harvest events, orders with their lines,
// and reviews.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("User deleted", zap.String("user_id", id.String()))
	return nil
}

// AddAddress creates an address for the user
func (s *UserService) AddAddress(ctx context.Context, userID uuid.UUID, req AddressRequest) (*AddressResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	address, err := identity.NewAddress(userID, req.Street, req.City, req.PostalCode, req.Country)
	if err != nil {
		return nil, err
	}
	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}

	resp := ToAddressResponse(address)
	return &resp, nil
}

// ListAddresses lists the user's addresses
func (s *UserService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]AddressResponse, error) {
	addresses, err := s.addressRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]AddressResponse, len(addresses))
	for i := range addresses {
		responses[i] = ToAddressResponse(&addresses[i])
	}
	return responses, nil
}

// UpdateAddress applies changes to an address owned by the user
func (s *UserService) UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, req AddressRequest) (*AddressResponse, error) {
	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if address.UserID != userID {
		return nil, shared.ErrForbidden
	}

	if err := address.Update(req.Street, req.City, req.PostalCode, req.Country); err != nil {
		return nil, err
	}
	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}

	resp := ToAddressResponse(address)
	return &resp, nil
}

// DeleteAddress removes an address owned by the user
func (s *UserService) DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return err
	}
	if address.UserID != userID {
		return shared.ErrForbidden
	}
	return s.addressRepo.Delete(ctx, addressID)
}
