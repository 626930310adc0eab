package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/infrastructure/auth"
	"github.com/kioskcrm/backend/internal/infrastructure/logger"
	"github.com/kioskcrm/backend/internal/interfaces/http/dto"
	"github.com/kioskcrm/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

var errNoPrincipal = errors.New("no authenticated principal")

// BaseHandler provides common handler utilities
type BaseHandler struct{}

func getRequestID(c *gin.Context) string {
	return middleware.GetRequestID(c)
}

// getPrincipal returns the authenticated caller. There is no fallback:
// every tenant-scoped route sits behind the Auth middleware.
func getPrincipal(c *gin.Context) (*auth.Principal, error) {
	p := middleware.GetPrincipal(c)
	if p == nil || p.TenantID == uuid.Nil {
		return nil, errNoPrincipal
	}
	return p, nil
}

func getTenantID(c *gin.Context) (uuid.UUID, error) {
	p, err := getPrincipal(c)
	if err != nil {
		return uuid.Nil, err
	}
	return p.TenantID, nil
}

func getUserID(c *gin.Context) (uuid.UUID, error) {
	p, err := getPrincipal(c)
	if err != nil {
		return uuid.Nil, err
	}
	return p.UserID, nil
}

// tenant resolves the caller's tenant or writes a 401 and returns false
func (h *BaseHandler) tenant(c *gin.Context) (uuid.UUID, bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return uuid.Nil, false
	}
	return tenantID, true
}

// pathUUID parses a UUID path parameter or writes a 400 and returns false
func (h *BaseHandler) pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds the body and answers validation failures itself
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// bindQuery binds query parameters and answers validation failures itself
func (h *BaseHandler) bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Attachment streams a file download
func (h *BaseHandler) Attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Length", strconv.Itoa(len(data)))
	c.Data(http.StatusOK, contentType, data)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// ErrorWithCode sends an error response, deriving status code from error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// Forbidden sends a 403 forbidden response
func (h *BaseHandler) Forbidden(c *gin.Context, message string) {
	h.Error(c, http.StatusForbidden, dto.ErrCodeForbidden, message)
}

// Conflict sends a 409 conflict response
func (h *BaseHandler) Conflict(c *gin.Context, message string) {
	h.Error(c, http.StatusConflict, dto.ErrCodeConflict, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// ValidationError sends a 400 validation error response with details
func (h *BaseHandler) ValidationError(c *gin.Context, details []dto.ValidationDetail) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed",
		getRequestID(c),
		details,
	))
}

// HandleError maps domain, token and unknown errors onto the response
// envelope. Unknown errors are logged and answered with a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		statusCode := dto.GetHTTPStatus(code)
		if statusCode >= http.StatusInternalServerError {
			logger.L(c.Request.Context()).Error("request failed", zap.Error(err))
		}
		h.Error(c, statusCode, code, domainErr.Message)
		return
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeTokenExpired, "Token has expired")
		return
	case errors.Is(err, auth.ErrTokenBlacklisted):
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeTokenRevoked, "Token has been revoked")
		return
	case errors.Is(err, auth.ErrInvalidToken):
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeTokenInvalid, "Invalid token")
		return
	}

	logger.L(c.Request.Context()).Error("unexpected error", zap.Error(err))
	h.InternalError(c, "An unexpected error occurred")
}
