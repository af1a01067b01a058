package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ErlanBelekov/dashboard-api/internal/reqctx"
	"github.com/ErlanBelekov/dashboard-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

func TestRequestID_PreservesIncomingHeader(t *testing.T) {
	var seen string
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", func(c *gin.Context) { seen = reqctx.RequestID(c.Request.Context()) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-abc")
	w := serve(r, req)

	if seen != "req-abc" {
		t.Errorf("context request id = %q", seen)
	}
	if got := w.Header().Get("X-Request-ID"); got != "req-abc" {
		t.Errorf("response header = %q", got)
	}
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", func(c *gin.Context) {})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected generated X-Request-ID")
	}
}

func TestSecurity_HSTSOnlyWhenEnabled(t *testing.T) {
	for _, hsts := range []bool{true, false} {
		r := gin.New()
		r.Use(middleware.Security(hsts))
		r.GET("/", func(c *gin.Context) {})

		w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))

		if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
			t.Errorf("X-Content-Type-Options = %q", got)
		}
		if has := w.Header().Get("Strict-Transport-Security") != ""; has != hsts {
			t.Errorf("hsts=%v: header present = %v", hsts, has)
		}
	}
}
