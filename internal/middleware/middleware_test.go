package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/homeservices/internal/auth"
	"github.com/BruksfildServices01/homeservices/internal/domain/role"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func router(tokens *auth.TokenManager) *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(tokens), func(c *gin.Context) {
		id, _ := Identity(c)
		c.String(http.StatusOK, string(id.Role))
	})
	r.GET("/admin", AuthMiddleware(tokens), RequireRole(role.Admin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/open", NewRateLimiter(nil).Limit(LoginRule), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func do(r http.Handler, path, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenManager("access", "refresh", time.Minute, time.Hour)
	r := router(tokens)

	customer := auth.Identity{UserID: uuid.New(), Email: "c@example.com", Role: role.Customer}
	access, err := tokens.IssueAccess(customer)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	refresh, err := tokens.IssueRefresh(customer)
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	cases := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"missing", "/me", "", http.StatusUnauthorized},
		{"wrong scheme", "/me", "Basic abc", http.StatusUnauthorized},
		{"garbage", "/me", "Bearer nope", http.StatusForbidden},
		{"refresh as access", "/me", "Bearer " + refresh, http.StatusForbidden},
		{"valid", "/me", "Bearer " + access, http.StatusOK},
		{"wrong role", "/admin", "Bearer " + access, http.StatusForbidden},
	}
	for _, tc := range cases {
		if w := do(r, tc.path, tc.header); w.Code != tc.status {
			t.Fatalf("%s: expected %d, got %d (%s)", tc.name, tc.status, w.Code, w.Body.String())
		}
	}

	if w := do(r, "/me", "Bearer "+access); w.Body.String() != "CUSTOMER" {
		t.Fatalf("identity not propagated: %q", w.Body.String())
	}
}

func TestRateLimiter_FailOpenWithoutRedis(t *testing.T) {
	r := router(auth.NewTokenManager("a", "b", time.Minute, time.Hour))
	for i := 0; i < LoginRule.MaxRequests+5; i++ {
		if w := do(r, "/open", ""); w.Code != http.StatusOK {
			t.Fatalf("request %d blocked without redis: %d", i, w.Code)
		}
	}
}

func TestCORSMiddleware_Credentials(t *testing.T) {
	corsHeaders := func(origins []string, origin string) http.Header {
		r := gin.New()
		r.Use(CORSMiddleware(origins))
		r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Header()
	}

	h := corsHeaders([]string{"*"}, "https://anywhere.example")
	if h.Get("Access-Control-Allow-Credentials") != "" {
		t.Fatalf("wildcard mode must not allow credentials")
	}
	if h.Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("wildcard mode should allow any origin, got %q", h.Get("Access-Control-Allow-Origin"))
	}

	h = corsHeaders([]string{"https://app.example"}, "https://app.example")
	if h.Get("Access-Control-Allow-Credentials") != "true" || h.Get("Access-Control-Allow-Origin") != "https://app.example" {
		t.Fatalf("listed origin: unexpected headers %v", h)
	}
}
