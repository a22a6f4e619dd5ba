package service

import (
	"context"
	"errors"
	"time"

	"github.com/accountsys/accounts-api/internal/core/domain"
	"github.com/accountsys/accounts-api/internal/core/ports"
	"github.com/accountsys/accounts-api/internal/pkg/credentials"
)

// AuthService implements signup and login.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenService
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenService) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Signup registers a new account with the default role and returns it with a
// fresh token. The email uniqueness pre-check keeps the common conflict off
// the index-violation path; the unique index is still the real guarantee.
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (*ports.AuthResult, error) {
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return nil, domain.ErrUserExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := credentials.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(created.ID)
	if err != nil {
		return nil, err
	}

	return &ports.AuthResult{User: created, Token: token, ExpiresAt: expiresAt}, nil
}

// Login authenticates by email and password and returns the account with a
// fresh token. An unknown email is ErrUserNotFound; a wrong password is
// ErrInvalidCredentials, with no hint of which field was wrong. Login writes
// nothing.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !credentials.VerifyPassword(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &ports.AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
