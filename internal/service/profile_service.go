package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/SARVESHVARADKAR123/leetproxy/internal/cache"
	"github.com/SARVESHVARADKAR123/leetproxy/internal/calendar"
	"github.com/SARVESHVARADKAR123/leetproxy/internal/model"
	"github.com/SARVESHVARADKAR123/leetproxy/internal/observability"
	"github.com/SARVESHVARADKAR123/leetproxy/internal/upstream"
)

const defaultFetchTimeout = 10 * time.Second

// ProfileCache is the subset of cache.ProfileCache the service needs.
type ProfileCache interface {
	Get(ctx context.Context, username string) (*model.UserProfile, error)
	Set(ctx context.Context, username string, p *model.UserProfile) error
}

// ProfileService serves user profiles, cache first.
type ProfileService struct {
	Cache    ProfileCache
	Upstream upstream.Fetcher
	// FetchTimeout bounds a shared upstream fetch and cache store. It is
	// detached from the caller so that one caller going away does not fail
	// the others waiting on the same fetch.
	FetchTimeout time.Duration
	Now          func() time.Time

	group singleflight.Group
}

// Result is a profile plus whether it came from the cache.
type Result struct {
	Profile *model.UserProfile
	Cached  bool
}

// Get returns the profile for username. Cache errors are logged and treated
// as a miss. Errors are model.ErrInvalidUsername or an *upstream.Error.
func (s *ProfileService) Get(ctx context.Context, username string) (*Result, error) {
	log := observability.GetLogger(ctx).With(zap.String("username", username))

	if err := ValidateUsername(username); err != nil {
		return nil, err
	}

	p, err := s.Cache.Get(ctx, username)
	switch {
	case err == nil:
		observability.CacheLookupsTotal.WithLabelValues("hit").Inc()
		return &Result{Profile: p, Cached: true}, nil
	case errors.Is(err, cache.ErrMiss):
		observability.CacheLookupsTotal.WithLabelValues("miss").Inc()
	default:
		observability.CacheLookupsTotal.WithLabelValues("error").Inc()
		log.Warn("cache lookup failed, fetching upstream", zap.Error(err))
	}

	ch := s.group.DoChan(username, func() (any, error) {
		return s.fetchAndStore(context.WithoutCancel(ctx), username)
	})

	select {
	case <-ctx.Done():
		return nil, &upstream.Error{Kind: upstream.KindNetwork, Msg: "request cancelled", Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return &Result{Profile: res.Val.(*model.UserProfile)}, nil
	}
}

func (s *ProfileService) fetchAndStore(ctx context.Context, username string) (*model.UserProfile, error) {
	timeout := s.FetchTimeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log := observability.GetLogger(ctx).With(zap.String("username", username))

	u, err := s.Upstream.FetchUser(ctx, username)
	if err != nil {
		log.Info("upstream fetch failed", zap.Error(err))
		return nil, fmt.Errorf("fetch %q: %w", username, err)
	}

	progress, st := calendar.BucketWithStats(u.Calendar, s.now())
	if st.Skipped > 0 {
		log.Warn("skipped malformed calendar entries", zap.Int("skipped", st.Skipped))
	}

	p := Assemble(u, progress)

	if err := s.Cache.Set(ctx, username, p); err != nil {
		observability.CacheStoreErrorsTotal.Inc()
		log.Warn("cache store failed", zap.Error(err))
	}

	return p, nil
}

func (s *ProfileService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
