package upstream

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/leetproxy/internal/observability"
)

const breakerName = "leetcode-graphql"

// Breaker wraps a Fetcher with a circuit breaker. Only network and status
// failures count against the upstream; an open circuit is reported as a
// network error.
type Breaker struct {
	next Fetcher
	cb   *gobreaker.CircuitBreaker[*User]
}

// BreakerSettings tunes NewBreaker. Zero values select the defaults.
type BreakerSettings struct {
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
}

func NewBreaker(next Fetcher, s BreakerSettings) *Breaker {
	if s.ConsecutiveFailures == 0 {
		s.ConsecutiveFailures = 5
	}
	if s.OpenTimeout == 0 {
		s.OpenTimeout = 30 * time.Second
	}

	observability.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[*User](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			switch KindOf(err) {
			case KindNetwork, KindStatus:
				return false
			}
			return true
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			observability.GetLogger(context.Background()).Info("circuit breaker state change",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			observability.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &Breaker{next: next, cb: cb}
}

func (b *Breaker) FetchUser(ctx context.Context, username string) (*User, error) {
	u, err := b.cb.Execute(func() (*User, error) {
		return b.next.FetchUser(ctx, username)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, newError(KindNetwork, "upstream temporarily unavailable", err)
	}
	return u, err
}

// State reports the breaker state, for health output and tests.
func (b *Breaker) State() gobreaker.State { return b.cb.State() }

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
