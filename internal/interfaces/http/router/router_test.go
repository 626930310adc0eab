package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterRegister(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("test", "/test")
	r.Register(group)

	assert.Len(t, r.registrars, 1)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	group := NewDomainGroup("test", "/test")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	r.Register(group)
	r.Setup()

	// Test the route was registered
	req := httptest.NewRequest("GET", "/api/v1/test/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("kiosks", "/kiosks")
		assert.Equal(t, "kiosks", g.Name())
		assert.Equal(t, "/kiosks", g.Prefix())
	})

	t.Run("registers each verb", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("kiosks", "/kiosks")
		reply := func(status int) gin.HandlerFunc {
			return func(c *gin.Context) { c.String(status, c.Request.Method+" "+c.Param("id")) }
		}
		g.GET("/:id", reply(http.StatusOK)).
			POST("", reply(http.StatusCreated)).
			PUT("/:id", reply(http.StatusOK)).
			PATCH("/:id/status", reply(http.StatusOK)).
			DELETE("/:id", reply(http.StatusNoContent)).
			Handle(http.MethodHead, "/:id", reply(http.StatusOK))
		g.RegisterRoutes(engine.Group("/api/v1"))

		tests := []struct {
			method string
			path   string
			status int
			body   string
		}{
			{http.MethodGet, "/api/v1/kiosks/K1", http.StatusOK, "GET K1"},
			{http.MethodPost, "/api/v1/kiosks", http.StatusCreated, "POST "},
			{http.MethodPut, "/api/v1/kiosks/K1", http.StatusOK, "PUT K1"},
			{http.MethodPatch, "/api/v1/kiosks/K1/status", http.StatusOK, "PATCH K1"},
			{http.MethodDelete, "/api/v1/kiosks/K1", http.StatusNoContent, ""},
			{http.MethodHead, "/api/v1/kiosks/K1", http.StatusOK, ""},
		}
		for _, tt := range tests {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, w.Code, tt.method)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String(), tt.method)
			}
		}
	})

	t.Run("applies middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")

		// Add middleware that sets a header
		g.Use(func(c *gin.Context) {
			c.Header("X-Test-Middleware", "applied")
			c.Next()
		})

		g.GET("/items", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		req := httptest.NewRequest("GET", "/api/v1/test/items", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, "applied", w.Header().Get("X-Test-Middleware"))
	})

	t.Run("creates subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("geo", "/geo")

		regions := g.Group("regions", "/regions")
		regions.GET("", func(c *gin.Context) {
			c.String(http.StatusOK, "regions list")
		})

		areas := g.Group("areas", "/areas")
		areas.GET("", func(c *gin.Context) {
			c.String(http.StatusOK, "areas list")
		})

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		req1 := httptest.NewRequest("GET", "/api/v1/geo/regions", nil)
		w1 := httptest.NewRecorder()
		engine.ServeHTTP(w1, req1)
		assert.Equal(t, http.StatusOK, w1.Code)
		assert.Equal(t, "regions list", w1.Body.String())

		req2 := httptest.NewRequest("GET", "/api/v1/geo/areas", nil)
		w2 := httptest.NewRecorder()
		engine.ServeHTTP(w2, req2)
		assert.Equal(t, http.StatusOK, w2.Code)
		assert.Equal(t, "areas list", w2.Body.String())
	})

	t.Run("mounted groups inherit middleware", func(t *testing.T) {
		engine := gin.New()
		root := NewDomainGroup("workflow", "")
		root.Use(func(c *gin.Context) {
			c.Header("X-Guard", "on")
			c.Next()
		})

		orders := NewDomainGroup("orders", "/orders")
		orders.GET("", func(c *gin.Context) { c.String(http.StatusOK, "orders") })
		root.Mount(orders)

		root.RegisterRoutes(engine.Group("/api/v1"))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/orders", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "on", w.Header().Get("X-Guard"))
	})

	t.Run("skips nil middleware", func(t *testing.T) {
		g := NewDomainGroup("cron", "/cron")
		g.Use(nil, func(c *gin.Context) { c.Next() }, nil)
		assert.Len(t, g.middleware, 1)
	})
}

func TestRouterUse(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)
	r.Use(func(c *gin.Context) {
		c.Header("X-API", "v1")
		c.Next()
	})

	g := NewDomainGroup("system", "/system")
	g.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.Register(g).Setup()
	engine.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/system/ping", nil))
	assert.Equal(t, "v1", w.Header().Get("X-API"))

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Empty(t, w.Header().Get("X-API"))
}

func TestMultipleDomainGroups(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	kiosks := NewDomainGroup("kiosks", "/kiosks")
	kiosks.GET("/summary", func(c *gin.Context) {
		c.String(http.StatusOK, "summary")
	})

	partners := NewDomainGroup("partners", "/partners")
	partners.GET("/next-code", func(c *gin.Context) {
		c.String(http.StatusOK, "P00001")
	})

	r.Register(kiosks).Register(partners)
	r.Setup()

	req1 := httptest.NewRequest("GET", "/api/v1/kiosks/summary", nil)
	w1 := httptest.NewRecorder()
	engine.ServeHTTP(w1, req1)
	assert.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, "summary", w1.Body.String())

	req2 := httptest.NewRequest("GET", "/api/v1/partners/next-code", nil)
	w2 := httptest.NewRecorder()
	engine.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, "P00001", w2.Body.String())
}

func TestChainedMethodCalls(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	g := NewDomainGroup("test", "/test")
	g.GET("/a", func(c *gin.Context) { c.String(http.StatusOK, "a") }).
		POST("/b", func(c *gin.Context) { c.String(http.StatusOK, "b") }).
		PUT("/c", func(c *gin.Context) { c.String(http.StatusOK, "c") })

	r.Register(g).Setup()

	// All routes should be registered
	tests := []struct {
		method string
		path   string
	}{
		{"GET", "/api/v1/test/a"},
		{"POST", "/api/v1/test/b"},
		{"PUT", "/api/v1/test/c"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "Route %s %s should work", tt.method, tt.path)
	}
}
