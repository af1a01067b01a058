package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/dashboard-api/internal/domain"
	"github.com/ErlanBelekov/dashboard-api/internal/transport/http/middleware"
	"github.com/ErlanBelekov/dashboard-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

const (
	stateCookie    = "oauth_state"
	stateCookieTTL = 10 * time.Minute
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	SignIn(ctx context.Context, email, password string) (*usecase.SignInResult, error)
	SignOut(ctx context.Context, sessionID string) error
	GoogleConsent() (consentURL, state string, err error)
	DisconnectGoogle(ctx context.Context, userID string) (int64, error)
}

// CookieConfig controls how session and OAuth state cookies are written.
type CookieConfig struct {
	Secure     bool
	SessionTTL time.Duration
}

type AuthHandler struct {
	authUsecase authUsecaser
	cookies     CookieConfig
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, cookies CookieConfig, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		cookies:     cookies,
		logger:      logger.With("component", "auth_handler"),
	}
}

type signInRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type signInResponse struct {
	Token string          `json:"token"`
	User  profileResponse `json:"user"`
}

// GET /api/auth/check-active (probe-safe gate)
// Always 200. A missing, inactive or unresolvable caller reads as inactive.
func (h *AuthHandler) CheckActive(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	c.JSON(http.StatusOK, gin.H{"active": ok && p.User.IsActive()})
}

// GET /api/auth/google
// Redirects to Google's consent screen. The state value rides along in a
// short-lived HttpOnly cookie for the callback to compare.
func (h *AuthHandler) GoogleRedirect(c *gin.Context) {
	consentURL, state, err := h.authUsecase.GoogleConsent()
	if err != nil {
		if errors.Is(err, usecase.ErrGoogleNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": errGoogleDisabled})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "google consent", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	h.setCookie(c, stateCookie, state, stateCookieTTL)
	c.Redirect(http.StatusFound, consentURL)
}

// POST /api/auth/google/disconnect
func (h *AuthHandler) DisconnectGoogle(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		return
	}

	n, err := h.authUsecase.DisconnectGoogle(c.Request.Context(), p.User.ID)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "disconnect google", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	h.logger.InfoContext(c.Request.Context(), "google disconnected", "accounts_removed", n)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// POST /api/auth/sign-in
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}

	res, err := h.authUsecase.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"error": errBadCredentials})
		case errors.Is(err, domain.ErrInactiveUser):
			c.JSON(http.StatusForbidden, gin.H{"error": errAccountDisabled})
		default:
			h.logger.ErrorContext(c.Request.Context(), "sign in", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	h.setCookie(c, middleware.SessionCookie, res.Token, time.Until(res.Session.ExpiresAt))
	c.JSON(http.StatusOK, signInResponse{Token: res.Token, User: toProfile(res.User)})
}

// POST /api/auth/sign-out
func (h *AuthHandler) SignOut(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		return
	}

	if err := h.authUsecase.SignOut(c.Request.Context(), p.Session.ID); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "sign out", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	h.setCookie(c, middleware.SessionCookie, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// setCookie writes an HttpOnly, SameSite=Lax cookie. A negative ttl deletes it.
func (h *AuthHandler) setCookie(c *gin.Context, name, value string, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	if ttl < 0 {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", h.cookies.Secure, true)
}
