package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	identityapp "github.com/kioskcrm/backend/internal/application/identity"
	"github.com/kioskcrm/backend/internal/infrastructure/auth"
	"github.com/kioskcrm/backend/internal/infrastructure/logger"
	"github.com/kioskcrm/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// SessionStore persists the signed-in principal in a cookie
type SessionStore interface {
	Save(w http.ResponseWriter, r *http.Request, p auth.Principal) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

// AuthHandler handles login, logout and the signed-in user's account
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
	sessions    SessionStore
}

// NewAuthHandler creates a new AuthHandler. sessions may be nil, in which
// case only bearer tokens are issued.
func NewAuthHandler(authService *identityapp.AuthService, sessions SessionStore) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
	}
}

// Login godoc
// @ID           login
//
//	@Summary		Sign in
//	@Description	Returns a bearer token and also sets the session cookie
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identityapp.LoginRequest	true	"Credentials"
//	@Success		200		{object}	APIResponse[identityapp.LoginResult]
//	@Failure		401		{object}	ErrorResponse
//	@Failure		423		{object}	ErrorResponse
//	@Failure		429		{object}	ErrorResponse
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identityapp.LoginInput{
		Username: req.Username,
		Password: req.Password,
		IP:       c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.sessions != nil {
		principal := auth.Principal{
			TenantID: result.User.TenantID,
			UserID:   result.User.ID,
			Username: result.User.Username,
			Role:     result.User.Role,
		}
		if err := h.sessions.Save(c.Writer, c.Request, principal); err != nil {
			logger.L(c.Request.Context()).Error("failed to save session", zap.Error(err))
			h.InternalError(c, "Failed to start session")
			return
		}
	}

	h.Success(c, result)
}

// Logout godoc
// @ID           logout
//
//	@Summary		Sign out
//	@Description	Revokes the bearer token and clears the session cookie
//	@Tags			auth
//	@Success		204
//	@Failure		401	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	principal, err := getPrincipal(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	input := identityapp.LogoutInput{
		TenantID: principal.TenantID,
		UserID:   principal.UserID,
	}
	if claims := middleware.GetClaims(c); claims != nil {
		input.TokenID = claims.ID
		if claims.ExpiresAt != nil {
			input.ExpiresAt = claims.ExpiresAt.Time
		}
	}
	if err := h.authService.Logout(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}

	if h.sessions != nil {
		if err := h.sessions.Clear(c.Writer, c.Request); err != nil {
			logger.L(c.Request.Context()).Warn("failed to clear session", zap.Error(err))
		}
	}
	h.NoContent(c)
}

// Me godoc
// @ID           me
//
//	@Summary		Get the signed-in user
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	APIResponse[identityapp.UserResponse]
//	@Failure		401	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	principal, err := getPrincipal(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	user, err := h.authService.Me(c.Request.Context(), principal.TenantID, principal.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// ChangePassword godoc
// @ID           changePassword
//
//	@Summary		Change the signed-in user's password
//	@Description	Every token issued before the change stops working
//	@Tags			auth
//	@Accept			json
//	@Param			request	body	identityapp.ChangePasswordRequest	true	"Passwords"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	principal, err := getPrincipal(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	var req identityapp.ChangePasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if err := h.authService.ChangePassword(c.Request.Context(), principal.TenantID, principal.UserID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
