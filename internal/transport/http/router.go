package httptransport

import (
	"log/slog"

	"github.com/ErlanBelekov/dashboard-api/internal/domain"
	"github.com/ErlanBelekov/dashboard-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/dashboard-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type Handlers struct {
	Auth          *handler.AuthHandler
	PasswordReset *handler.PasswordResetHandler
	Users         *handler.UserHandler
}

// NewRouter registers every API route together with its access policy.
func NewRouter(logger *slog.Logger, gate middleware.Authorizer, h Handlers, secure bool) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security(secure))
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	strict := middleware.Gate(gate, middleware.Policy{Mode: middleware.Strict}, logger)
	probe := middleware.Gate(gate, middleware.Policy{Mode: middleware.ProbeSafe}, logger)
	manageRoles := middleware.Gate(gate, middleware.Policy{Mode: middleware.Strict, Permission: domain.PermManageRoles}, logger)

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.GET("/check-active", probe, h.Auth.CheckActive)
	auth.GET("/google", h.Auth.GoogleRedirect)
	auth.POST("/google/disconnect", strict, h.Auth.DisconnectGoogle)
	auth.POST("/sign-in", h.Auth.SignIn)
	auth.POST("/sign-out", strict, h.Auth.SignOut)

	reset := api.Group("/reset-password")
	reset.POST("", h.PasswordReset.Reset)
	reset.POST("/request", h.PasswordReset.Request)
	reset.GET("/validate", h.PasswordReset.Validate)

	api.PUT("/settings/profile", strict, h.Users.UpdateProfile)
	api.GET("/statuses", strict, h.Users.Statuses)
	api.GET("/users/me", strict, h.Users.Me)
	api.GET("/users/list", manageRoles, h.Users.List)

	return r
}
