package ports

import (
	"context"

	"github.com/accountsys/accounts-api/internal/core/domain"
)

// UserRepository defines the persistence contract for user accounts.
// Uniqueness of username and email is enforced by the implementation
// (unique indexes); Create and Update surface violations as
// domain.ErrUserExists / domain.ErrEmailTaken.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.User, error)
}
