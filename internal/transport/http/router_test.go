package httptransport_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/ErlanBelekov/dashboard-api/internal/domain"
	httptransport "github.com/ErlanBelekov/dashboard-api/internal/transport/http"
	"github.com/ErlanBelekov/dashboard-api/internal/transport/http/handler"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubGate denies everything with err and records the permission asked for.
type stubGate struct {
	err        error
	permission string
}

func (g *stubGate) Authorize(_ context.Context, _, permission string) (*domain.Principal, error) {
	g.permission = permission
	return nil, g.err
}

func newRouter(gate *stubGate) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	// Handlers are never reached on denied routes, so nil usecases are fine.
	return httptransport.NewRouter(logger, gate, httptransport.Handlers{
		Auth:          handler.NewAuthHandler(nil, handler.CookieConfig{SessionTTL: time.Hour}, logger),
		PasswordReset: handler.NewPasswordResetHandler(nil, logger),
		Users:         handler.NewUserHandler(nil, logger),
	}, false)
}

func TestRouter_StrictRoutesRejectAnonymous(t *testing.T) {
	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/auth/google/disconnect"},
		{http.MethodPost, "/api/auth/sign-out"},
		{http.MethodPut, "/api/settings/profile"},
		{http.MethodGet, "/api/statuses"},
		{http.MethodGet, "/api/users/me"},
		{http.MethodGet, "/api/users/list"},
	}

	r := newRouter(&stubGate{err: domain.ErrUnauthenticated})
	for _, rt := range routes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(rt.method, rt.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want 401", rt.method, rt.path, w.Code)
		}
	}
}

func TestRouter_UsersListRequiresManageRoles(t *testing.T) {
	gate := &stubGate{err: domain.ErrForbidden}

	w := httptest.NewRecorder()
	newRouter(gate).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/list", nil))

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
	if gate.permission != domain.PermManageRoles {
		t.Errorf("permission = %q, want %q", gate.permission, domain.PermManageRoles)
	}
}

func TestRouter_CheckActiveIsProbeSafe(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(&stubGate{err: domain.ErrUnauthenticated}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/check-active", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != `{"active":false}` {
		t.Errorf("body = %q", got)
	}
}

func TestRouter_SetsRequestIDHeader(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(&stubGate{err: domain.ErrUnauthenticated}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/check-active", nil))

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
}
