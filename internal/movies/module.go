// Package movies provides the movie search and favorites bounded context.
// Search and detail data come from the external catalog; only the link
// between a user and a catalog movie id is persisted locally.
package movies

import (
	apphttp "filmoteka_backend/internal/http"
	"filmoteka_backend/internal/movies/handler"
	"filmoteka_backend/internal/movies/repository"
	"filmoteka_backend/internal/movies/service"
	"filmoteka_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the movies bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the movies module with all its dependencies.
func NewModule(pool *pgxpool.Pool, catalog service.Catalog, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, catalog, log)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "movies"
}

// RegisterRoutes mounts movie routes on the provided router context. All of
// them require a resolved user.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/movies")
	group.GET("/search", m.handler.Search)
	group.GET("/favorites/all", m.handler.ListFavorites)
	group.POST("/favorites/:id", m.handler.AddFavorite)
	group.DELETE("/favorites/:id", m.handler.RemoveFavorite)
	group.GET("/:id", m.handler.Lookup)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
