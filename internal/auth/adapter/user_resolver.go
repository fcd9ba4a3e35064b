// Package adapter provides implementations of external interfaces that other
// layers need. The auth domain satisfies the HTTP middleware's resolver
// interface here without exposing its repository.
package adapter

import (
	"context"

	"filmoteka_backend/internal/auth/repository"
	"filmoteka_backend/platform/httpkit"
)

// UserResolverAdapter implements httpkit.UserResolver using the auth
// repository. The middleware calls it once per authenticated request to turn
// a token's subject claim into a stored account.
type UserResolverAdapter struct {
	repo repository.UserReader
}

// NewUserResolverAdapter creates the resolver used by the auth middleware.
func NewUserResolverAdapter(repo repository.UserReader) *UserResolverAdapter {
	return &UserResolverAdapter{repo: repo}
}

// ResolveByEmail implements httpkit.UserResolver.
func (a *UserResolverAdapter) ResolveByEmail(ctx context.Context, email string) (httpkit.AuthUser, error) {
	user, err := a.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return httpkit.AuthUser{}, err
	}

	return httpkit.AuthUser{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

var _ httpkit.UserResolver = (*UserResolverAdapter)(nil)
