package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/dashboard-api/internal/domain"
	"github.com/ErlanBelekov/dashboard-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

type userUsecaser interface {
	Me(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID, name string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	ListStatuses(ctx context.Context) ([]*domain.Status, error)
}

type UserHandler struct {
	userUsecase userUsecaser
	logger      *slog.Logger
}

func NewUserHandler(userUsecase userUsecaser, logger *slog.Logger) *UserHandler {
	return &UserHandler{userUsecase: userUsecase, logger: logger.With("component", "user_handler")}
}

type profileResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Image *string `json:"image"`
}

type customRoleResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

type meResponse struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Email      string              `json:"email"`
	Image      *string             `json:"image"`
	Role       domain.SystemRole   `json:"role"`
	Active     bool                `json:"active"`
	CustomRole *customRoleResponse `json:"customRole"`
}

type userListItem struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Email      string              `json:"email"`
	CustomRole *customRoleResponse `json:"customRole"`
}

func toProfile(u *domain.User) profileResponse {
	return profileResponse{ID: u.ID, Name: u.Name, Email: u.Email, Image: u.Image}
}

func toCustomRole(r *domain.CustomRole) *customRoleResponse {
	if r == nil {
		return nil
	}
	perms := r.Permissions
	if perms == nil {
		perms = []string{}
	}
	return &customRoleResponse{ID: r.ID, Name: r.Name, Permissions: perms}
}

// GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		return
	}

	u, err := h.userUsecase.Me(c.Request.Context(), p.User.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "get current user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, meResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Image:      u.Image,
		Role:       u.SystemRole(),
		Active:     u.IsActive(),
		CustomRole: toCustomRole(u.CustomRole),
	})
}

// GET /api/users/list (requires users.manage_roles)
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userUsecase.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list users", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	items := make([]userListItem, len(users))
	for i, u := range users {
		items[i] = userListItem{
			ID:         u.ID,
			Name:       u.Name,
			Email:      u.Email,
			CustomRole: toCustomRole(u.CustomRole),
		}
	}
	c.JSON(http.StatusOK, items)
}
