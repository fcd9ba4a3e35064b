package service

import (
	"context"
	"errors"

	"filmoteka_backend/internal/auth/password"
	"filmoteka_backend/internal/auth/repository"
	"filmoteka_backend/internal/auth/token"
	"filmoteka_backend/platform/apperr"
	"filmoteka_backend/platform/config"
	"filmoteka_backend/platform/logger"
)

const (
	msgEmailTaken    = "Email is already registered"
	msgUsernameTaken = "Username is already registered"
	// msgBadLogin covers both an unknown email and a wrong password so the
	// response never reveals which check failed.
	msgBadLogin = "Incorrect email or password"
)

// TokenType is the bearer scheme reported alongside issued tokens.
const TokenType = "bearer"

type Service struct {
	repo repository.Store
	cfg  config.AuthServiceConfig
	log  *logger.Logger
}

func New(repo repository.Store, cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

// Register creates a new account. The email is checked before the username,
// so when both collide the duplicate-email error is the one that surfaces.
func (s *Service) Register(ctx context.Context, username, email, plainPassword string) (repository.User, error) {
	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return repository.User{}, apperr.Conflict(msgEmailTaken)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return repository.User{}, err
	}

	if _, err := s.repo.GetUserByUsername(ctx, username); err == nil {
		return repository.User{}, apperr.Conflict(msgUsernameTaken)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return repository.User{}, err
	}

	hash, err := password.Hash(plainPassword, s.cfg.GetBcryptCost())
	if err != nil {
		return repository.User{}, err
	}

	user, err := s.repo.CreateUser(ctx, username, email, hash)
	if err != nil {
		s.log.DatabaseError("create user", err)
		return repository.User{}, err
	}

	s.log.AuthEvent("register", email, true, "")
	return user, nil
}

// Login verifies the credentials and issues a signed access token with the
// account email as subject.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		s.log.AuthEvent("login", email, false, "unknown email")
		return "", apperr.BadRequest(msgBadLogin)
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent("login", email, false, "wrong password")
		return "", apperr.BadRequest(msgBadLogin)
	}

	accessToken, err := token.Issue(user.Email, s.cfg.GetJWTSecret(), s.cfg.GetJWTAlgorithm(), s.cfg.GetAccessTokenTTL())
	if err != nil {
		return "", err
	}

	s.log.AuthEvent("login", email, true, "")
	return accessToken, nil
}
