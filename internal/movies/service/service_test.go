package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"filmoteka_backend/internal/movies/repository"
	"filmoteka_backend/platform/apperr"
	"filmoteka_backend/platform/logger"
)

type fakeStore struct {
	favorites map[int64][]int64 // userID -> movie ids in insertion order
	nextID    int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{favorites: make(map[int64][]int64), nextID: 1}
}

func (f *fakeStore) AddFavorite(_ context.Context, userID, movieID int64) (repository.Favorite, error) {
	for _, id := range f.favorites[userID] {
		if id == movieID {
			return repository.Favorite{}, repository.ErrDuplicate
		}
	}
	f.favorites[userID] = append(f.favorites[userID], movieID)
	fav := repository.Favorite{ID: f.nextID, UserID: userID, MovieID: movieID}
	f.nextID++
	return fav, nil
}

func (f *fakeStore) RemoveFavorite(_ context.Context, userID, movieID int64) error {
	ids := f.favorites[userID]
	for i, id := range ids {
		if id == movieID {
			f.favorites[userID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeStore) ListMovieIDs(_ context.Context, userID int64) ([]int64, error) {
	return f.favorites[userID], nil
}

// fakeCatalog answers by-id lookups from a map; ids absent from the map fail
// with an upstream 404.
type fakeCatalog struct {
	films map[int64]string
	calls []int64
}

func (f *fakeCatalog) SearchByKeyword(_ context.Context, keyword string) (json.RawMessage, error) {
	return json.RawMessage(fmt.Sprintf(`{"keyword":%q}`, keyword)), nil
}

func (f *fakeCatalog) FilmByID(_ context.Context, filmID int64) (json.RawMessage, error) {
	f.calls = append(f.calls, filmID)
	body, ok := f.films[filmID]
	if !ok {
		return nil, apperr.Upstream(http.StatusNotFound, "movie catalog request failed")
	}
	return json.RawMessage(body), nil
}

func newService(store repository.Store, catalog Catalog) *Service {
	return New(store, catalog, logger.New("test"))
}

func TestAddFavoriteTwiceConflicts(t *testing.T) {
	svc := newService(newFakeStore(), &fakeCatalog{})

	fav, err := svc.AddFavorite(context.Background(), 1, 301)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fav.UserID != 1 || fav.MovieID != 301 {
		t.Fatalf("unexpected favorite %+v", fav)
	}

	_, err = svc.AddFavorite(context.Background(), 1, 301)
	if err == nil || err.Error() != "Movie is already in favorites." {
		t.Fatalf("expected the duplicate-favorite error, got %v", err)
	}
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatal("expected a conflict error")
	}

	// A different user may favorite the same movie.
	if _, err := svc.AddFavorite(context.Background(), 2, 301); err != nil {
		t.Fatalf("unexpected error for another user: %v", err)
	}
}

func TestRemoveFavoriteLifecycle(t *testing.T) {
	svc := newService(newFakeStore(), &fakeCatalog{})

	err := svc.RemoveFavorite(context.Background(), 1, 301)
	if err == nil || err.Error() != "Movie is not in favorites." {
		t.Fatalf("expected the missing-favorite error, got %v", err)
	}

	if _, err := svc.AddFavorite(context.Background(), 1, 301); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.RemoveFavorite(context.Background(), 1, 301); err != nil {
		t.Fatalf("expected removal to succeed: %v", err)
	}

	// A second removal fails again.
	if err := svc.RemoveFavorite(context.Background(), 1, 301); err == nil {
		t.Fatal("expected a repeated removal to fail")
	}
}

func TestListFavoritesEmpty(t *testing.T) {
	svc := newService(newFakeStore(), &fakeCatalog{})

	movies, err := svc.ListFavorites(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if movies == nil || len(movies) != 0 {
		t.Fatalf("expected an empty (non-nil) list, got %v", movies)
	}
}

func TestListFavoritesLooksUpEachIDInOrder(t *testing.T) {
	store := newFakeStore()
	catalog := &fakeCatalog{films: map[int64]string{
		301: `{"kinopoiskId":301}`,
		435: `{"kinopoiskId":435}`,
	}}
	svc := newService(store, catalog)

	if _, err := svc.AddFavorite(context.Background(), 1, 301); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.AddFavorite(context.Background(), 1, 435); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	movies, err := svc.ListFavorites(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("expected 2 lookups, got %d", len(movies))
	}
	if string(movies[0]) != `{"kinopoiskId":301}` || string(movies[1]) != `{"kinopoiskId":435}` {
		t.Fatalf("expected catalog documents in persistence order, got %s, %s", movies[0], movies[1])
	}
	if len(catalog.calls) != 2 || catalog.calls[0] != 301 || catalog.calls[1] != 435 {
		t.Fatalf("expected one sequential call per id, got %v", catalog.calls)
	}
}

func TestListFavoritesAbortsOnFirstUpstreamFailure(t *testing.T) {
	store := newFakeStore()
	catalog := &fakeCatalog{films: map[int64]string{
		301: `{"kinopoiskId":301}`,
		// 999 is missing from the catalog.
		435: `{"kinopoiskId":435}`,
	}}
	svc := newService(store, catalog)

	for _, id := range []int64{301, 999, 435} {
		if _, err := svc.AddFavorite(context.Background(), 1, id); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	_, err := svc.ListFavorites(context.Background(), 1)
	if err == nil {
		t.Fatal("expected the listing to abort on the failed lookup")
	}
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected the upstream error to propagate, got %v", err)
	}

	// The failing lookup must stop the walk: 435 is never requested.
	if len(catalog.calls) != 2 {
		t.Fatalf("expected the walk to stop after the failure, got calls %v", catalog.calls)
	}
}

func TestSearchAndLookupPassThrough(t *testing.T) {
	catalog := &fakeCatalog{films: map[int64]string{301: `{"kinopoiskId":301}`}}
	svc := newService(newFakeStore(), catalog)

	body, err := svc.Search(context.Background(), "matrix")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `{"keyword":"matrix"}` {
		t.Fatalf("expected verbatim search body, got %s", body)
	}

	body, err = svc.Lookup(context.Background(), 301)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `{"kinopoiskId":301}` {
		t.Fatalf("expected verbatim detail body, got %s", body)
	}
}
