package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

// User is the persisted account row. The password hash never leaves the
// service layer.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserReader is the read-side interface consumed by the token-resolution
// adapter and the service layer.
type UserReader interface {
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
}

// UserWriter creates accounts.
type UserWriter interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (User, error)
}

// Store combines the user persistence operations.
type Store interface {
	UserReader
	UserWriter
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const createUserQuery = `
	INSERT INTO users (username, email, password_hash)
	VALUES ($1, $2, $3)
	RETURNING id, username, email, password_hash, created_at
`

func (r *Repository) CreateUser(ctx context.Context, username, email, passwordHash string) (User, error) {
	var user User
	err := r.pool.QueryRow(ctx, createUserQuery, username, email, passwordHash).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

const getUserByEmailQuery = `
	SELECT id, username, email, password_hash, created_at
	FROM users WHERE email = $1
`

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return r.getUser(ctx, getUserByEmailQuery, email)
}

const getUserByUsernameQuery = `
	SELECT id, username, email, password_hash, created_at
	FROM users WHERE username = $1
`

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (User, error) {
	return r.getUser(ctx, getUserByUsernameQuery, username)
}

func (r *Repository) getUser(ctx context.Context, query, arg string) (User, error) {
	var user User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return user, err
}

var _ Store = (*Repository)(nil)
