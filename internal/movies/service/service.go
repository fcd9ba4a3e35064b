package service

import (
	"context"
	"encoding/json"
	"errors"

	"filmoteka_backend/internal/movies/repository"
	"filmoteka_backend/platform/apperr"
	"filmoteka_backend/platform/logger"
)

const (
	msgAlreadyFavorite = "Movie is already in favorites."
	msgNotFavorite     = "Movie is not in favorites."
)

// Catalog is the external movie catalog operations the service depends on.
// platform/kinopoisk provides the production implementation.
type Catalog interface {
	SearchByKeyword(ctx context.Context, keyword string) (json.RawMessage, error)
	FilmByID(ctx context.Context, filmID int64) (json.RawMessage, error)
}

type Service struct {
	repo    repository.Store
	catalog Catalog
	log     *logger.Logger
}

func New(repo repository.Store, catalog Catalog, log *logger.Logger) *Service {
	return &Service{repo: repo, catalog: catalog, log: log}
}

// Search passes a keyword search through to the catalog verbatim.
func (s *Service) Search(ctx context.Context, keyword string) (json.RawMessage, error) {
	body, err := s.catalog.SearchByKeyword(ctx, keyword)
	if err != nil {
		s.logUpstream("search", err)
		return nil, err
	}
	return body, nil
}

// Lookup passes a by-id detail request through to the catalog verbatim. The
// id is opaque to this system; existence is only checked by the catalog.
func (s *Service) Lookup(ctx context.Context, movieID int64) (json.RawMessage, error) {
	body, err := s.catalog.FilmByID(ctx, movieID)
	if err != nil {
		s.logUpstream("lookup", err)
		return nil, err
	}
	return body, nil
}

// AddFavorite records the movie id for the user. The composite unique
// constraint signals a duplicate, so concurrent adds for the same pair
// resolve without a race window.
func (s *Service) AddFavorite(ctx context.Context, userID, movieID int64) (repository.Favorite, error) {
	fav, err := s.repo.AddFavorite(ctx, userID, movieID)
	if errors.Is(err, repository.ErrDuplicate) {
		return repository.Favorite{}, apperr.Conflict(msgAlreadyFavorite)
	}
	if err != nil {
		s.log.DatabaseError("add favorite", err)
		return repository.Favorite{}, err
	}
	return fav, nil
}

// RemoveFavorite deletes the favorite link if present.
func (s *Service) RemoveFavorite(ctx context.Context, userID, movieID int64) error {
	err := s.repo.RemoveFavorite(ctx, userID, movieID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(msgNotFavorite)
	}
	if err != nil {
		s.log.DatabaseError("remove favorite", err)
	}
	return err
}

// ListFavorites materializes the user's favorites by looking each stored id
// up in the catalog, one call at a time in persistence order. The listing is
// all-or-nothing: the first upstream failure aborts it and propagates the
// catalog's status.
func (s *Service) ListFavorites(ctx context.Context, userID int64) ([]json.RawMessage, error) {
	ids, err := s.repo.ListMovieIDs(ctx, userID)
	if err != nil {
		s.log.DatabaseError("list favorites", err)
		return nil, err
	}

	movies := make([]json.RawMessage, 0, len(ids))
	for _, id := range ids {
		body, err := s.catalog.FilmByID(ctx, id)
		if err != nil {
			s.logUpstream("list favorites", err)
			return nil, err
		}
		movies = append(movies, body)
	}
	return movies, nil
}

func (s *Service) logUpstream(op string, err error) {
	var domainErr *apperr.Error
	if errors.As(err, &domainErr) && domainErr.Kind == apperr.KindUpstream {
		s.log.UpstreamError(op, domainErr.Status, err)
		return
	}
	s.log.UpstreamError(op, 0, err)
}
