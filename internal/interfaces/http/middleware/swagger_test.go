package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kioskcrm/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
)

func newSwaggerRouter(cfg config.SwaggerConfig, auth gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.GET("/swagger/*any", SwaggerProtection(cfg, auth), func(c *gin.Context) {
		c.String(http.StatusOK, "swagger")
	})
	return router
}

func swaggerRequest(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	router.ServeHTTP(w, req)
	return w
}

func TestSwaggerProtection_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := swaggerRequest(newSwaggerRouter(config.SwaggerConfig{Enabled: false}, nil), "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_NOT_FOUND")
}

func TestSwaggerProtection_NoRestrictions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := swaggerRequest(newSwaggerRouter(config.SwaggerConfig{Enabled: true}, nil), "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "swagger", w.Body.String())
}

func TestSwaggerProtection_AllowList(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := newSwaggerRouter(config.SwaggerConfig{
		Enabled:    true,
		AllowedIPs: []string{"127.0.0.1", "10.0.0.0/8", "not-an-ip"},
	}, nil)

	tests := []struct {
		remote string
		want   int
	}{
		{"127.0.0.1:12345", http.StatusOK},
		{"10.20.30.40:80", http.StatusOK},
		{"192.168.1.1:12345", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.remote, func(t *testing.T) {
			w := swaggerRequest(router, tt.remote)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusForbidden {
				assert.Contains(t, w.Body.String(), "ERR_FORBIDDEN")
			}
		})
	}
}

func TestSwaggerProtection_RequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	deny := func(c *gin.Context) {
		c.AbortWithStatus(http.StatusUnauthorized)
	}
	allow := func(c *gin.Context) {
		c.Set(UserIDKey, "user-1")
	}
	cfg := config.SwaggerConfig{Enabled: true, RequireAuth: true}

	assert.Equal(t, http.StatusUnauthorized, swaggerRequest(newSwaggerRouter(cfg, deny), "").Code)
	assert.Equal(t, http.StatusOK, swaggerRequest(newSwaggerRouter(cfg, allow), "").Code)
}

func TestSwaggerProtection_AllowListCheckedBeforeAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	called := false
	auth := func(c *gin.Context) { called = true }
	router := newSwaggerRouter(config.SwaggerConfig{
		Enabled:     true,
		RequireAuth: true,
		AllowedIPs:  []string{"127.0.0.1"},
	}, auth)

	assert.Equal(t, http.StatusForbidden, swaggerRequest(router, "192.168.1.1:1").Code)
	assert.False(t, called)

	assert.Equal(t, http.StatusOK, swaggerRequest(router, "127.0.0.1:1").Code)
	assert.True(t, called)
}

func TestIsIPAllowed(t *testing.T) {
	tests := []struct {
		name        string
		ip          string
		allowedIPs  []string
		allowedCIDR []string
		want        bool
	}{
		{name: "exact match", ip: "192.168.1.1", allowedIPs: []string{"192.168.1.1"}, want: true},
		{name: "no match", ip: "192.168.1.2", allowedIPs: []string{"192.168.1.1"}, want: false},
		{name: "cidr match", ip: "10.0.0.5", allowedCIDR: []string{"10.0.0.0/8"}, want: true},
		{name: "cidr miss", ip: "11.0.0.5", allowedCIDR: []string{"10.0.0.0/8"}, want: false},
		{name: "ipv6 loopback", ip: "::1", allowedIPs: []string{"::1"}, want: true},
		{name: "nil ip", ip: "", allowedIPs: []string{"127.0.0.1"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ips []net.IP
			for _, s := range tt.allowedIPs {
				ips = append(ips, net.ParseIP(s))
			}
			var nets []*net.IPNet
			for _, s := range tt.allowedCIDR {
				_, n, _ := net.ParseCIDR(s)
				nets = append(nets, n)
			}
			assert.Equal(t, tt.want, isIPAllowed(net.ParseIP(tt.ip), ips, nets))
		})
	}
}
