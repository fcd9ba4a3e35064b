package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrDuplicate = errors.New("favorite already exists")
	ErrNotFound  = errors.New("favorite not found")
)

// uniqueViolation is the SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

// Favorite links an account to an external catalog movie id. No movie detail
// is stored locally.
type Favorite struct {
	ID        int64
	UserID    int64
	MovieID   int64
	CreatedAt time.Time
}

// Store is the favorites persistence interface consumed by the service layer.
type Store interface {
	AddFavorite(ctx context.Context, userID, movieID int64) (Favorite, error)
	RemoveFavorite(ctx context.Context, userID, movieID int64) error
	ListMovieIDs(ctx context.Context, userID int64) ([]int64, error)
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const addFavoriteQuery = `
	INSERT INTO favorite_movies (user_id, movie_id)
	VALUES ($1, $2)
	RETURNING id, user_id, movie_id, created_at
`

// AddFavorite inserts the (user, movie) pair. Uniqueness is enforced by the
// composite constraint, so concurrent duplicate adds cannot both succeed;
// the loser surfaces as ErrDuplicate.
func (r *Repository) AddFavorite(ctx context.Context, userID, movieID int64) (Favorite, error) {
	var fav Favorite
	err := r.pool.QueryRow(ctx, addFavoriteQuery, userID, movieID).Scan(
		&fav.ID,
		&fav.UserID,
		&fav.MovieID,
		&fav.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Favorite{}, ErrDuplicate
		}
		return Favorite{}, err
	}
	return fav, nil
}

const removeFavoriteQuery = `
	DELETE FROM favorite_movies
	WHERE user_id = $1 AND movie_id = $2
`

func (r *Repository) RemoveFavorite(ctx context.Context, userID, movieID int64) error {
	tag, err := r.pool.Exec(ctx, removeFavoriteQuery, userID, movieID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const listMovieIDsQuery = `
	SELECT movie_id FROM favorite_movies
	WHERE user_id = $1
	ORDER BY id
`

func (r *Repository) ListMovieIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx, listMovieIDsQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

var _ Store = (*Repository)(nil)
