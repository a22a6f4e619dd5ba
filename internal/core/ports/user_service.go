package ports

import (
	"context"

	"github.com/accountsys/accounts-api/internal/core/domain"
)

// UpdateProfileInput carries a self-service profile update. Password is
// optional; when empty the stored hash is left untouched. Role is
// deliberately absent: profile updates can never escalate privileges.
type UpdateProfileInput struct {
	Username string
	Email    string
	Password string
}

// AdminUpdateInput carries an admin-initiated update of another account.
type AdminUpdateInput struct {
	ID       string
	Username string
	Email    string
}

// CreateUserInput carries an admin-initiated account creation, the only
// path that may set a role explicitly.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*domain.User, error)
	AdminUpdate(ctx context.Context, in AdminUpdateInput) (*domain.User, error)
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
