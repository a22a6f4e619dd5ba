package service

import (
	"context"
	"errors"
	"time"

	"github.com/accountsys/accounts-api/internal/core/domain"
	"github.com/accountsys/accounts-api/internal/core/ports"
	"github.com/accountsys/accounts-api/internal/pkg/credentials"
)

// UserService implements account reads and mutations past signup.
type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// UpdateProfile applies a self-service update. The password is re-hashed
// only when a new plaintext was supplied; otherwise the stored hash is
// carried over unchanged, so an already-hashed value is never hashed twice.
// Role is never touched here.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ports.UpdateProfileInput) (*domain.User, error) {
	if in.Username == "" || in.Email == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.checkEmailFree(ctx, in.Email, user.ID); err != nil {
		return nil, err
	}

	user.Username = in.Username
	user.Email = in.Email
	if in.Password != "" {
		hash, err := credentials.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, user)
}

// AdminUpdate renames another account's username/email. Credentials and role
// are out of its reach.
func (s *UserService) AdminUpdate(ctx context.Context, in ports.AdminUpdateInput) (*domain.User, error) {
	if in.ID == "" || in.Username == "" || in.Email == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if err := s.checkEmailFree(ctx, in.Email, user.ID); err != nil {
		return nil, err
	}

	user.Username = in.Username
	user.Email = in.Email
	user.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, user)
}

// Create adds an account on behalf of an admin. Unlike Signup it accepts an
// explicit role; an empty role falls back to the default.
func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}

	if err := s.checkEmailFree(ctx, in.Email, ""); err != nil {
		return nil, err
	}

	hash, err := credentials.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.repo.Create(ctx, &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// Delete removes an account permanently. There is no soft delete.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// checkEmailFree fails with ErrEmailTaken when email belongs to an account
// other than ownerID.
func (s *UserService) checkEmailFree(ctx context.Context, email, ownerID string) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != ownerID {
		return domain.ErrEmailTaken
	}
	return nil
}
