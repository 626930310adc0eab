package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/infrastructure/auth"
	"github.com/kioskcrm/backend/internal/infrastructure/logger"
	"github.com/kioskcrm/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Context keys set by Auth
const (
	PrincipalKey  = "principal"
	ClaimsKey     = "jwt_claims"
	TenantIDKey   = "tenant_id"
	UserIDKey     = "user_id"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// TokenAuthenticator validates a bearer token, including revocation
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

// SessionReader reads the principal from the session cookie
type SessionReader interface {
	Load(r *http.Request) (*auth.Principal, error)
}

// AuthConfig configures the Auth middleware
type AuthConfig struct {
	Tokens TokenAuthenticator
	// Sessions is optional; without it only bearer tokens are accepted.
	Sessions SessionReader
	Logger   *zap.Logger
}

// Auth authenticates the request with a bearer JWT or, when no
// Authorization header is present, with the session cookie. The resolved
// principal scopes every downstream query to its tenant.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		principal, claims, err := resolvePrincipal(c, cfg)
		if err != nil {
			if !errors.Is(err, auth.ErrNoSession) && !isTokenError(err) {
				log.Error("Authentication backend failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
			} else {
				log.Debug("Authentication failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
			}
			abortUnauthorized(c, err)
			return
		}

		c.Set(PrincipalKey, principal)
		if claims != nil {
			c.Set(ClaimsKey, claims)
		}
		c.Set(TenantIDKey, principal.TenantID.String())
		c.Set(UserIDKey, principal.UserID.String())

		ctx := logger.WithTenantID(c.Request.Context(), principal.TenantID.String())
		ctx = logger.WithUserID(ctx, principal.UserID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func resolvePrincipal(c *gin.Context, cfg AuthConfig) (*auth.Principal, *auth.Claims, error) {
	header := c.GetHeader(AuthHeaderKey)
	if header == "" {
		if cfg.Sessions == nil {
			return nil, nil, auth.ErrNoSession
		}
		p, err := cfg.Sessions.Load(c.Request)
		return p, nil, err
	}

	if !strings.HasPrefix(header, BearerPrefix) {
		return nil, nil, auth.ErrInvalidToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	if token == "" {
		return nil, nil, auth.ErrInvalidToken
	}
	claims, err := cfg.Tokens.Authenticate(c.Request.Context(), token)
	if err != nil {
		return nil, nil, err
	}
	tenantID, err := uuid.Parse(claims.TenantID)
	if err != nil {
		return nil, nil, auth.ErrInvalidClaims
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, nil, auth.ErrInvalidClaims
	}
	return &auth.Principal{
		TenantID: tenantID,
		UserID:   userID,
		Username: claims.Username,
		Role:     claims.Role,
	}, claims, nil
}

func isTokenError(err error) bool {
	for _, target := range []error{
		auth.ErrInvalidToken, auth.ErrExpiredToken, auth.ErrInvalidClaims,
		auth.ErrTokenNotYetValid, auth.ErrMissingTenantID, auth.ErrMissingUserID,
		auth.ErrTokenBlacklisted,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func abortUnauthorized(c *gin.Context, err error) {
	code := dto.ErrCodeUnauthorized
	message := "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, message = dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrTokenBlacklisted):
		code, message = dto.ErrCodeTokenRevoked, "Token has been revoked"
	case isTokenError(err):
		code, message = dto.ErrCodeTokenInvalid, "Invalid token"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}

// GetPrincipal returns the authenticated principal, or nil before Auth ran
func GetPrincipal(c *gin.Context) *auth.Principal {
	if v, ok := c.Get(PrincipalKey); ok {
		if p, ok := v.(*auth.Principal); ok {
			return p
		}
	}
	return nil
}

// GetClaims returns the bearer token claims. Session requests have none.
func GetClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetTenantID returns the authenticated tenant ID as a string
func GetTenantID(c *gin.Context) string {
	return c.GetString(TenantIDKey)
}

// GetUserID returns the authenticated user ID as a string
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
