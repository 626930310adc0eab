package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/infrastructure/auth"
	"github.com/kioskcrm/backend/internal/interfaces/http/dto"
	"github.com/kioskcrm/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setPrincipal simulates a request that passed the Auth middleware
func setPrincipal(c *gin.Context, tenantID, userID uuid.UUID, role string) {
	c.Set(middleware.PrincipalKey, &auth.Principal{
		TenantID: tenantID,
		UserID:   userID,
		Username: "tester",
		Role:     role,
	})
	c.Set(middleware.TenantIDKey, tenantID.String())
	c.Set(middleware.UserIDKey, userID.String())
}

func newTestContext(method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetTenantID_RequiresPrincipal(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/")
	_, err := getTenantID(c)
	assert.Error(t, err)

	// a header is not a credential
	c.Request.Header.Set("X-Tenant-ID", uuid.NewString())
	_, err = getTenantID(c)
	assert.Error(t, err)

	tenantID, userID := uuid.New(), uuid.New()
	setPrincipal(c, tenantID, userID, "staff")
	got, err := getTenantID(c)
	require.NoError(t, err)
	assert.Equal(t, tenantID, got)
	gotUser, err := getUserID(c)
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
}

func TestBaseHandler_TenantWritesUnauthorized(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodGet, "/")

	_, ok := h.tenant(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrCodeUnauthorized, decodeResponse(t, w).Error.Code)
}

func TestBaseHandler_PathUUID(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodGet, "/kiosks/nope")
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	_, ok := h.pathUUID(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBaseHandler_SuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodGet, "/")

	h.SuccessWithMeta(c, []string{"a", "b"}, 42, 2, 0)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(42), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 20, resp.Meta.PageSize)
}

func TestBaseHandler_CreatedAndNoContent(t *testing.T) {
	h := &BaseHandler{}

	c, w := newTestContext(http.MethodPost, "/")
	h.Created(c, map[string]string{"id": "1"})
	assert.Equal(t, http.StatusCreated, w.Code)

	c, w = newTestContext(http.MethodDelete, "/")
	h.NoContent(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestBaseHandler_Attachment(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodGet, "/")

	h.Attachment(c, "kiosks.csv", "text/csv; charset=utf-8", []byte("a,b\n"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="kiosks.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "4", w.Header().Get("Content-Length"))
	assert.Equal(t, "a,b\n", w.Body.String())
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
		{"wrapped not found", fmt.Errorf("load kiosk: %w", shared.ErrNotFound), http.StatusNotFound, dto.ErrCodeNotFound},
		{"already exists", shared.NewDomainError("ALREADY_EXISTS", "dup"), http.StatusConflict, dto.ErrCodeAlreadyExists},
		{"has children", shared.ErrHasChildren, http.StatusConflict, dto.ErrCodeHasChildren},
		{"invalid state", shared.ErrInvalidState, http.StatusConflict, dto.ErrCodeInvalidState},
		{"field validation", shared.NewDomainError("INVALID_PERIOD", "bad"), http.StatusBadRequest, "ERR_INVALID_PERIOD"},
		{"credentials", shared.NewDomainError("INVALID_CREDENTIALS", "no"), http.StatusUnauthorized, dto.ErrCodeInvalidCredentials},
		{"locked", shared.NewDomainError("ACCOUNT_LOCKED", "locked"), http.StatusLocked, dto.ErrCodeAccountLocked},
		{"not configured", shared.NewDomainError("INTEGRATION_NOT_CONFIGURED", "off"), http.StatusServiceUnavailable, dto.ErrCodeIntegrationNotConfigured},
		{"integration failed", shared.NewDomainError("INTEGRATION_FAILED", "boom"), http.StatusBadGateway, dto.ErrCodeIntegrationFailed},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized, dto.ErrCodeTokenExpired},
		{"revoked token", auth.ErrTokenBlacklisted, http.StatusUnauthorized, dto.ErrCodeTokenRevoked},
		{"unknown", errors.New("db down"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			c, w := newTestContext(http.MethodGet, "/")
			c.Set(middleware.RequestIDKey, "req-1")

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, "req-1", resp.Error.RequestID)
		})
	}
}

func TestBaseHandler_HandleErrorHidesInternalMessage(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodGet, "/")

	h.HandleError(c, errors.New("pq: password authentication failed"))

	assert.NotContains(t, w.Body.String(), "pq:")
}

func TestBaseHandler_HandleErrorNil(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodGet, "/")
	h.HandleError(c, nil)
	assert.Empty(t, w.Body.String())
}
