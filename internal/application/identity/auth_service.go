package identity

import (
	"context"
	"time"

	"github.com/farmmarket/backend/internal/domain/identity"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/farmmarket/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles registration, login and token lifecycle
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Register creates a new account and logs it in
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*LoginResult, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("USERNAME_TAKEN", "Username is already taken")
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "Email is already registered")
	}

	var user *identity.User
	if input.IsFarmer {
		user, err = identity.NewFarmer(input.Username, input.Email, input.Password)
	} else {
		user, err = identity.NewUser(input.Username, input.Email, input.Password)
	}
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("username", user.Username),
		zap.Bool("is_farmer", user.IsFarmer))

	return s.issueTokens(user)
}

// Login authenticates a user and returns a token pair
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		s.logger.Warn("Login attempt for unknown user", zap.String("username", input.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	if !user.CheckPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", input.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	s.logger.Info("User logged in", zap.String("username", user.Username))

	return s.issueTokens(user)
}

// Refresh exchanges a refresh token for a fresh token pair. Role and farmer
// status are re-read from the user record so changes take effect here.
func (s *AuthService) Refresh(ctx context.Context, input RefreshTokenInput) (*LoginResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}

	if revoked, err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	} else if revoked {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token has been revoked")
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token carries no user")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "User no longer exists")
	}

	pair, err := s.jwtService.RefreshTokenPair(input.RefreshToken, user.Username, user.Role.String(), user.IsFarmer)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}

	return s.toLoginResult(user, pair), nil
}

// Logout revokes the presented token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.TokenJTI == "" {
		return nil
	}

	ttl := input.TokenTTL
	if ttl <= 0 {
		ttl = s.jwtService.GetRefreshTokenExpiration()
	}

	if err := s.blacklist.Revoke(ctx, input.TokenJTI, ttl); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return err
	}

	s.logger.Info("User logged out", zap.String("user_id", input.UserID.String()))
	return nil
}

// RevokeAllSessions invalidates every token issued to the user before now
func (s *AuthService) RevokeAllSessions(ctx context.Context, userID string) error {
	return s.blacklist.RevokeAllForUser(ctx, userID, s.jwtService.GetRefreshTokenExpiration())
}

// GetCurrentUser returns the profile of the authenticated user
func (s *AuthService) GetCurrentUser(ctx context.Context, userID string) (*UserResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// ChangePassword verifies the old password and stores a new hash
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	if !user.CheckPassword(req.OldPassword) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Old password is incorrect")
	}

	if err := user.ChangePassword(req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	// Outstanding tokens predate the change and are cut off
	if err := s.RevokeAllSessions(ctx, userID); err != nil {
		s.logger.Error("Failed to revoke sessions after password change", zap.Error(err))
	}

	s.logger.Info("Password changed", zap.String("user_id", userID))
	return nil
}

func (s *AuthService) findUser(ctx context.Context, userID string) (*identity.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	return s.userRepo.FindByID(ctx, id)
}

func (s *AuthService) checkRevoked(ctx context.Context, claims *auth.Claims) (bool, error) {
	if claims.ID != "" {
		revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
		if err != nil || revoked {
			return revoked, err
		}
	}
	return s.blacklist.IsRevokedForUser(ctx, claims.UserID, claims.GetIssuedAtTime())
}

func (s *AuthService) issueTokens(user *identity.User) (*LoginResult, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role.String(),
		IsFarmer: user.IsFarmer,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("TOKEN_GENERATION_FAILED", "Failed to generate tokens")
	}

	return s.toLoginResult(user, pair), nil
}

func (s *AuthService) toLoginResult(user *identity.User, pair *auth.TokenPair) *LoginResult {
	now := time.Now()
	return &LoginResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  now.Add(s.jwtService.GetAccessTokenExpiration()),
		RefreshTokenExpiresAt: now.Add(s.jwtService.GetRefreshTokenExpiration()),
		TokenType:             "Bearer",
		User:                  ToUserResponse(user),
	}
}
