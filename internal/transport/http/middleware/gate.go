package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ErlanBelekov/dashboard-api/internal/domain"
	"github.com/ErlanBelekov/dashboard-api/internal/metrics"
	"github.com/ErlanBelekov/dashboard-api/internal/reqctx"
	"github.com/gin-gonic/gin"
)

// SessionCookie holds the signed session token for browser clients.
const SessionCookie = "session_token"

const principalKey = "principal"

// Mode picks how a route responds when authorization fails.
type Mode int

const (
	// Strict aborts with 401/403/500 before the handler runs.
	Strict Mode = iota
	// ProbeSafe never fails the request; the handler sees no principal.
	ProbeSafe
)

// Policy is declared per route next to its registration.
type Policy struct {
	Mode       Mode
	Permission string // empty skips the permission check
}

// Authorizer is satisfied by *usecase.AccessGate.
type Authorizer interface {
	Authorize(ctx context.Context, rawToken, permission string) (*domain.Principal, error)
}

// Gate resolves the caller's session, user and permission according to
// policy. On success the principal is stored on the gin context and the
// user id on the request context for logging.
func Gate(auth Authorizer, policy Policy, logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "access_gate")

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		p, err := auth.Authorize(ctx, TokenFrom(c), policy.Permission)
		outcome := gateOutcome(err)
		metrics.GateOutcomesTotal.WithLabelValues(routePath(c), outcome).Inc()

		if err == nil {
			SetPrincipal(c, p)
			c.Request = c.Request.WithContext(reqctx.WithUserID(ctx, p.User.ID))
			c.Next()
			return
		}

		if policy.Mode == ProbeSafe {
			if outcome == "error" {
				logger.WarnContext(ctx, "authorize (probe)", "error", err)
			} else {
				logger.DebugContext(ctx, "authorize (probe) denied", "outcome", outcome)
			}
			c.Next()
			return
		}

		switch outcome {
		case "unauthenticated", "inactive":
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		case "forbidden":
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": errForbidden})
		default:
			logger.ErrorContext(ctx, "authorize", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
	}
}

func gateOutcome(err error) string {
	switch {
	case err == nil:
		return "allowed"
	case errors.Is(err, domain.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, domain.ErrInactiveUser):
		return "inactive"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	default:
		return "error"
	}
}

// TokenFrom reads the session token from the cookie, falling back to an
// Authorization: Bearer header.
func TokenFrom(c *gin.Context) string {
	if v, err := c.Cookie(SessionCookie); err == nil && v != "" {
		return v
	}
	header := c.GetHeader("Authorization")
	if raw, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(raw)
	}
	return ""
}

func SetPrincipal(c *gin.Context, p *domain.Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the principal stored by Gate. ok is false on
// ProbeSafe routes when authorization failed.
func PrincipalFrom(c *gin.Context) (*domain.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	p, ok := v.(*domain.Principal)
	return p, ok && p != nil
}
