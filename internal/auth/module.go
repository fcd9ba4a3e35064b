// Package auth provides the authentication bounded context module.
package auth

import (
	"filmoteka_backend/internal/auth/adapter"
	"filmoteka_backend/internal/auth/handler"
	"filmoteka_backend/internal/auth/repository"
	"filmoteka_backend/internal/auth/service"
	apphttp "filmoteka_backend/internal/http"
	"filmoteka_backend/platform/config"
	"filmoteka_backend/platform/httpkit"
	"filmoteka_backend/platform/logger"
	"filmoteka_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler  *handler.Handler
	service  *service.Service
	resolver httpkit.UserResolver
}

// NewModule creates and initializes the auth module with all its dependencies.
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, log)
	h := handler.New(svc, val)

	return &Module{
		handler:  h,
		service:  svc,
		resolver: adapter.NewUserResolverAdapter(repo),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Resolver returns the user resolver consumed by the auth middleware.
func (m *Module) Resolver() httpkit.UserResolver {
	return m.resolver
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public auth routes with stricter rate limiting
	public := ctx.Public.Group("")
	public.Use(ctx.AuthRateLimiter.RateLimit())
	public.POST("/register", m.handler.Register)
	public.POST("/login", m.handler.Login)

	ctx.Protected.GET("/profile", m.handler.Profile)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
