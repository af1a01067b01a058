package handler

import (
	"net/http"

	"github.com/ErlanBelekov/dashboard-api/internal/domain"
	"github.com/gin-gonic/gin"
)

type statusResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Order int    `json:"order"`
}

// GET /api/statuses
func (h *UserHandler) Statuses(c *gin.Context) {
	statuses, err := h.userUsecase.ListStatuses(c.Request.Context())
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list statuses", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, toStatuses(statuses))
}

func toStatuses(in []*domain.Status) []statusResponse {
	out := make([]statusResponse, len(in))
	for i, s := range in {
		out[i] = statusResponse{ID: s.ID, Name: s.Name, Color: s.Color, Order: s.Order}
	}
	return out
}
