package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/accountsys/accounts-api/internal/api/metrics"
	"github.com/accountsys/accounts-api/internal/core/domain"
	"github.com/accountsys/accounts-api/internal/core/ports"
)

const defaultCacheTTL = 5 * time.Minute

// UserCache is a read-through cache over a UserRepository, keyed
// user:<id>. Only FindByID is cached: it runs on every gated request
// (subject resolution), while email lookups and listings stay on Mongo.
// Update and Delete invalidate the key, so a deleted account stops
// resolving immediately even while its token is still signed-valid.
//
// Cache errors never fail a request; the lookup falls through to the
// underlying repository.
type UserCache struct {
	client *redis.Client
	next   ports.UserRepository
	ttl    time.Duration
	log    zerolog.Logger
}

func NewUserCache(client *redis.Client, next ports.UserRepository, ttl time.Duration, log zerolog.Logger) *UserCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &UserCache{client: client, next: next, ttl: ttl, log: log}
}

// cachedUser mirrors domain.User with the password hash included: the cache
// sits inside the repository boundary and must hand back a record equivalent
// to a Mongo read, or a later Update would persist an empty hash.
type cachedUser struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (c *UserCache) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if raw, err := c.client.Get(ctx, c.key(id)).Bytes(); err == nil {
		var cu cachedUser
		if err := json.Unmarshal(raw, &cu); err == nil {
			metrics.UserCacheTotal.WithLabelValues("hit").Inc()
			return &domain.User{
				ID:           cu.ID,
				Username:     cu.Username,
				Email:        cu.Email,
				PasswordHash: cu.PasswordHash,
				Role:         cu.Role,
				CreatedAt:    cu.CreatedAt,
				UpdatedAt:    cu.UpdatedAt,
			}, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn().Err(err).Str("user_id", id).Msg("user cache read failed")
	}

	metrics.UserCacheTotal.WithLabelValues("miss").Inc()

	user, err := c.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, user)
	return user, nil
}

func (c *UserCache) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return c.next.Create(ctx, user)
}

func (c *UserCache) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return c.next.FindByEmail(ctx, email)
}

func (c *UserCache) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	updated, err := c.next.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, user.ID)
	return updated, nil
}

func (c *UserCache) Delete(ctx context.Context, id string) error {
	if err := c.next.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *UserCache) List(ctx context.Context) ([]*domain.User, error) {
	return c.next.List(ctx)
}

func (c *UserCache) store(ctx context.Context, user *domain.User) {
	raw, err := json.Marshal(cachedUser{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(user.ID), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("user_id", user.ID).Msg("user cache write failed")
	}
}

func (c *UserCache) invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		c.log.Warn().Err(err).Str("user_id", id).Msg("user cache invalidation failed")
	}
}

func (c *UserCache) key(id string) string {
	return "user:" + id
}
