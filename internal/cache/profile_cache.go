package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/SARVESHVARADKAR123/leetproxy/internal/model"
)

const DefaultTTL = time.Hour

// ProfileCache stores serialized user profiles keyed by username.
type ProfileCache struct {
	Store   Store
	Prefix  string
	TTL     time.Duration
	Timeout time.Duration
}

func (c *ProfileCache) key(username string) string { return c.Prefix + username }

// Get returns ErrMiss when no fresh entry exists. Any other error means the
// backend could not be read.
func (c *ProfileCache) Get(ctx context.Context, username string) (*model.UserProfile, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	b, err := c.Store.Get(ctx, c.key(username))
	if err != nil {
		return nil, err
	}
	var p model.UserProfile
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("decode cached profile %q: %w", username, err)
	}
	return &p, nil
}

// Set stores p under the username it was requested with, which may differ in
// case from p.Username.
func (c *ProfileCache) Set(ctx context.Context, username string, p *model.UserProfile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	ttl := c.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return c.Store.Set(ctx, c.key(username), b, ttl)
}

func (c *ProfileCache) Ping(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	return c.Store.Ping(ctx)
}

func (c *ProfileCache) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.Timeout)
}
