package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/repository"
)

type userCache struct {
	inner  repository.UserRepository
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// cachedUser carries the password hash explicitly; domain.User excludes it
// from JSON so API responses never leak it, but the cache entry must keep it
// for credential checks on a cache hit.
type cachedUser struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func toCached(u *domain.User) cachedUser {
	return cachedUser{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func (c cachedUser) toDomain() *domain.User {
	return &domain.User{
		ID:           c.ID,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		CreatedAt:    c.CreatedAt,
	}
}

// NewUserCache decorates a user repository with a read-through Redis cache
// keyed by email. Every request resolves the authenticated subject back to a
// user record, so this is the hottest lookup in the system. Entries are
// invalidated on any mutation; token validity itself stays stateless.
func NewUserCache(inner repository.UserRepository, client *redislib.Client, ttl time.Duration) repository.UserRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &userCache{
		inner:  inner,
		client: client,
		prefix: "user:email:",
		ttl:    ttl,
	}
}

func (c *userCache) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if cached, err := c.client.Get(ctx, c.key(email)).Result(); err == nil {
		var entry cachedUser
		if err := json.Unmarshal([]byte(cached), &entry); err == nil {
			return entry.toDomain(), nil
		}
	}

	user, err := c.inner.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(toCached(user)); err == nil {
		// Best effort: a failed cache write must not fail the lookup.
		_ = c.client.Set(ctx, c.key(user.Email), payload, c.ttl).Err()
	}
	return user, nil
}

func (c *userCache) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return c.inner.GetByID(ctx, id)
}

func (c *userCache) List(ctx context.Context) ([]domain.User, error) {
	return c.inner.List(ctx)
}

func (c *userCache) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	created, err := c.inner.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, created.Email)
	return created, nil
}

func (c *userCache) Update(ctx context.Context, user *domain.User) error {
	// The email may be changing, so drop both the old and the new key.
	if current, err := c.inner.GetByID(ctx, user.ID); err == nil {
		c.invalidate(ctx, current.Email)
	}
	if err := c.inner.Update(ctx, user); err != nil {
		return err
	}
	c.invalidate(ctx, user.Email)
	return nil
}

func (c *userCache) Delete(ctx context.Context, id int64) error {
	if current, err := c.inner.GetByID(ctx, id); err == nil {
		c.invalidate(ctx, current.Email)
	}
	return c.inner.Delete(ctx, id)
}

func (c *userCache) invalidate(ctx context.Context, email string) {
	if err := c.client.Del(ctx, c.key(email)).Err(); err != nil && !errors.Is(err, redislib.Nil) {
		// Stale entries age out via TTL.
		return
	}
}

func (c *userCache) key(email string) string {
	return c.prefix + email
}
