package httperr

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func respondWith(err error, mw ...gin.HandlerFunc) *httptest.ResponseRecorder {
	r := gin.New()
	r.Use(mw...)
	r.GET("/", func(c *gin.Context) { Respond(c, "test.op", err) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestRespond_InternalText(t *testing.T) {
	boom := errors.New("pq: relation missing")

	cases := []struct {
		name  string
		mw    []gin.HandlerFunc
		shown bool
	}{
		{"no middleware", nil, false},
		{"hidden", []gin.HandlerFunc{ExposeInternal(false)}, false},
		{"exposed", []gin.HandlerFunc{ExposeInternal(true)}, true},
	}
	for _, tc := range cases {
		w := respondWith(boom, tc.mw...)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("%s: expected 500, got %d", tc.name, w.Code)
		}
		if got := strings.Contains(w.Body.String(), "relation missing"); got != tc.shown {
			t.Fatalf("%s: error text shown=%v, body %s", tc.name, got, w.Body.String())
		}
	}
}

func TestRespond_Kinds(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{ErrValidation("bad", "bad input"), http.StatusBadRequest},
		{ErrForbidden("forbidden", "no"), http.StatusForbidden},
		{gorm.ErrRecordNotFound, http.StatusNotFound},
		{gorm.ErrDuplicatedKey, http.StatusConflict},
		{ErrUpstream("gateway_error", "down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if w := respondWith(tc.err); w.Code != tc.status {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.status, w.Code)
		}
	}
}
