package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/identity"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	MaxLoginAttempts int           // Maximum failed login attempts before lock
	LockDuration     time.Duration // How long to lock account after max attempts
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

var errInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	config     AuthServiceConfig
	logger     *zap.Logger
	now        func() time.Time
}

// NewAuthService creates a new authentication service. blacklist may be nil,
// in which case logout only clears the session.
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		config:     config,
		logger:     logger,
		now:        time.Now,
	}
}

// Login authenticates a user and returns an access token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	now := s.now()

	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if shared.IsNotFound(err) {
			s.logger.Warn("Login for unknown user", zap.String("username", input.Username), zap.String("ip", input.IP))
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !user.CanLogin(now) {
		if user.IsLocked(now) {
			s.logger.Warn("Login attempt for locked account", zap.String("username", user.Username))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked. Please try again later")
		}
		s.logger.Warn("Login attempt for disabled account", zap.String("username", user.Username))
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account has been disabled")
	}

	if !user.VerifyPassword(input.Password) {
		locked := user.RecordLoginFailure(now, s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.userRepo.Save(ctx, user); err != nil {
			s.logger.Error("Failed to save user after login failure", zap.Error(err))
		}
		if locked {
			s.logger.Warn("Account locked after too many failed attempts",
				zap.String("username", user.Username),
				zap.Int("attempts", s.config.MaxLoginAttempts))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed login attempts. Account has been locked")
		}
		s.logger.Warn("Invalid password attempt",
			zap.String("username", user.Username),
			zap.Int("failed_attempts", user.FailedAttempts))
		return nil, errInvalidCredentials
	}

	token, err := s.jwtService.GenerateAccessToken(auth.GenerateTokenInput{
		TenantID: user.TenantID,
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate access token", zap.Error(err))
		return nil, err
	}

	user.RecordLoginSuccess(now)
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user after login", zap.Error(err))
	}

	s.logger.Info("User logged in",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()))

	return &LoginResult{
		AccessToken: token.Token,
		ExpiresAt:   token.ExpiresAt,
		TokenType:   token.TokenType,
		User:        ToUserResponse(user),
	}, nil
}

// Logout revokes the bearer token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if s.blacklist == nil || input.TokenID == "" {
		return nil
	}
	ttl := input.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, input.TokenID, ttl); err != nil {
		s.logger.Error("Failed to blacklist token", zap.String("user_id", input.UserID.String()), zap.Error(err))
		return err
	}
	s.logger.Info("User logged out", zap.String("user_id", input.UserID.String()))
	return nil
}

// Authenticate resolves a bearer token into its claims, rejecting revoked
// tokens and tokens issued before the user's tokens were invalidated.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}
	if s.blacklist == nil {
		return claims, nil
	}
	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, auth.ErrTokenBlacklisted
	}
	invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
	if err != nil {
		return nil, err
	}
	if invalidated {
		return nil, auth.ErrTokenBlacklisted
	}
	return claims, nil
}

// Me returns the signed-in user
func (s *AuthService) Me(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	if user.Status != identity.UserStatusActive {
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account has been disabled")
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// ChangePassword changes the caller's password after checking the current one
func (s *AuthService) ChangePassword(ctx context.Context, tenantID, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	if !user.VerifyPassword(req.CurrentPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	s.revokeUserTokens(ctx, user.ID)
	return nil
}

func (s *AuthService) revokeUserTokens(ctx context.Context, userID uuid.UUID) {
	if s.blacklist == nil {
		return
	}
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), s.jwtService.Expiration()); err != nil {
		s.logger.Error("Failed to invalidate user tokens", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

// IsAuthError reports whether err came from token validation
func IsAuthError(err error) bool {
	return errors.Is(err, auth.ErrInvalidToken) ||
		errors.Is(err, auth.ErrExpiredToken) ||
		errors.Is(err, auth.ErrTokenBlacklisted)
}
