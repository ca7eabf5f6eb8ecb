package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"campusshield/config"
	"campusshield/controllers"
	"campusshield/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type rejectAll struct{}

func (rejectAll) ParseToken(context.Context, string) (*services.Claims, error) {
	return nil, services.ErrInvalidToken
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func testRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Server:    config.ServerConfig{CORSOrigins: []string{"http://localhost:5173"}},
		Storage:   config.StorageConfig{Type: "local", LocalPath: t.TempDir(), PublicURL: "/uploads"},
		RateLimit: config.RateLimitConfig{PerMinute: 10},
	}
	r := gin.New()
	SetupRoutes(r, cfg, Handlers{
		Complaints: controllers.NewComplaintController(nil, 0),
		Dashboard:  controllers.NewDashboardController(nil, nil),
		Auth:       controllers.NewAuthController(nil, false),
		Tokens:     rejectAll{},
		DB:         okPinger{},
	})
	return r
}

func TestAdminRoutesAreProtected(t *testing.T) {
	r := testRouter(t)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/admin/complaints"},
		{http.MethodGet, "/api/admin/complaints/export"},
		{http.MethodGet, "/api/admin/cases/CSHLD-ABCDEF"},
		{http.MethodPut, "/api/admin/cases/CSHLD-ABCDEF"},
		{http.MethodPost, "/api/admin/logout"},
		{http.MethodGet, "/api/admin/me"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.path)
	}
}

func TestPublicRoutes(t *testing.T) {
	r := testRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/complaints", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestStaticPath(t *testing.T) {
	assert.Equal(t, "/uploads", staticPath("/uploads"))
	assert.Equal(t, "/files", staticPath("https://cdn.campus.edu/files"))
	assert.Equal(t, "/uploads", staticPath("https://cdn.campus.edu"))
}
