package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/dashboard-api/internal/domain"
	"github.com/gin-gonic/gin"
)

type passwordResetUsecaser interface {
	RequestReset(ctx context.Context, email string) error
	Validate(ctx context.Context, rawToken string) (string, error)
	Reset(ctx context.Context, rawToken, newPassword string) error
}

type PasswordResetHandler struct {
	resetUsecase passwordResetUsecaser
	logger       *slog.Logger
}

func NewPasswordResetHandler(resetUsecase passwordResetUsecaser, logger *slog.Logger) *PasswordResetHandler {
	return &PasswordResetHandler{
		resetUsecase: resetUsecase,
		logger:       logger.With("component", "password_reset_handler"),
	}
}

type resetRequestBody struct {
	Email string `json:"email" binding:"required,email"`
}

type resetBody struct {
	Token    string `json:"token"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/reset-password/request
// Always returns 200 to avoid revealing whether the email exists.
func (h *PasswordResetHandler) Request(c *gin.Context) {
	var req resetRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}

	if err := h.resetUsecase.RequestReset(c.Request.Context(), req.Email); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "request password reset", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /api/reset-password/validate?token=<raw>
func (h *PasswordResetHandler) Validate(c *gin.Context) {
	rawToken := c.Query("token")
	if rawToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errTokenMissing})
		return
	}

	email, err := h.resetUsecase.Validate(c.Request.Context(), rawToken)
	if err != nil {
		h.writeTokenError(c, "validate reset token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"email": email, "valid": true})
}

// POST /api/reset-password
func (h *PasswordResetHandler) Reset(c *gin.Context) {
	var req resetBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}

	if err := h.resetUsecase.Reset(c.Request.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, domain.ErrPasswordTooShort) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errPasswordTooShort})
			return
		}
		h.writeTokenError(c, "reset password", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *PasswordResetHandler) writeTokenError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrTokenNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": errTokenInvalid})
	case errors.Is(err, domain.ErrTokenExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": errTokenExpired})
	case errors.Is(err, domain.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errAccountNotFound})
	default:
		h.logger.ErrorContext(c.Request.Context(), op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}
