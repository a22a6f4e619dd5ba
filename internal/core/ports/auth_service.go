package ports

import (
	"context"
	"time"

	"github.com/accountsys/accounts-api/internal/core/domain"
)

// AuthResult is returned by both Signup and Login: the account (hash
// excluded downstream) plus a fresh bearer token and its expiry.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	Signup(ctx context.Context, username, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
