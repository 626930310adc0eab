package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kioskcrm/backend/internal/domain/identity"
	"github.com/kioskcrm/backend/internal/interfaces/http/dto"
)

// RequireRole admits only principals holding one of roles. It must run
// after Auth.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := GetPrincipal(c)
		if p == nil {
			abortUnauthorized(c, nil)
			return
		}
		for _, r := range roles {
			if identity.Role(p.Role) == r {
				c.Next()
				return
			}
		}
		abortForbidden(c, "Insufficient role for this operation")
	}
}

// RequireWrite rejects state-changing requests from read-only roles.
// Safe methods pass for every authenticated principal.
func RequireWrite() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		p := GetPrincipal(c)
		if p == nil {
			abortUnauthorized(c, nil)
			return
		}
		if !identity.Role(p.Role).CanWrite() {
			abortForbidden(c, "Read-only users cannot modify data")
			return
		}
		c.Next()
	}
}

// CronSecret protects scheduler endpoints with a static bearer secret. An
// empty secret disables the endpoints entirely.
func CronSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusNotFound,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeNotFound, "Not found", GetRequestID(c)))
			return
		}
		header := c.GetHeader(AuthHeaderKey)
		given := strings.TrimPrefix(header, BearerPrefix)
		if header == given || subtle.ConstantTimeCompare([]byte(given), []byte(secret)) != 1 {
			abortUnauthorized(c, nil)
			return
		}
		c.Next()
	}
}

func abortForbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, message, GetRequestID(c)))
}
