package handler

import (
	"errors"
	"net/http"

	"github.com/ErlanBelekov/dashboard-api/internal/domain"
	"github.com/ErlanBelekov/dashboard-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

// Name is validated by the usecase after trimming, so no binding tag here.
type updateProfileRequest struct {
	Name string `json:"name"`
}

// PUT /api/settings/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}

	u, err := h.userUsecase.UpdateProfile(c.Request.Context(), p.User.ID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": errNameRequired})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
		default:
			h.logger.ErrorContext(c.Request.Context(), "update profile", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, toProfile(u))
}
