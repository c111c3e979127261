package ephemeris

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/astrosched/internal/scheduling/domain"
	"github.com/sony/gobreaker/v2"
)

// ErrProviderUnavailable is returned while the circuit is open.
var ErrProviderUnavailable = errors.New("ephemeris provider unavailable")

// BreakerConfig tunes the provider circuit breaker.
type BreakerConfig struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// DefaultBreakerConfig returns the default breaker tuning.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      3,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// BreakerProvider protects a remote ephemeris provider with a circuit
// breaker. A hard provider failure aborts the scheduling run, so tripping
// fast on a dead service beats hammering it once per probe.
type BreakerProvider struct {
	inner   Provider
	breaker *gobreaker.CircuitBreaker[Observation]
}

// NewBreakerProvider wraps a provider with a circuit breaker.
func NewBreakerProvider(inner Provider, config BreakerConfig, logger *slog.Logger) *BreakerProvider {
	if logger == nil {
		logger = slog.Default()
	}
	if config.FailureThreshold == 0 {
		config.FailureThreshold = DefaultBreakerConfig().FailureThreshold
	}

	settings := gobreaker.Settings{
		Name:        "ephemeris",
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"provider", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &BreakerProvider{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[Observation](settings),
	}
}

// Observe delegates through the breaker. While the circuit is open every
// call fails immediately with ErrProviderUnavailable.
func (p *BreakerProvider) Observe(ctx context.Context, target domain.Target, location domain.Location, at time.Time) (Observation, error) {
	obs, err := p.breaker.Execute(func() (Observation, error) {
		return p.inner.Observe(ctx, target, location, at)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return Observation{}, ErrProviderUnavailable
		}
		return Observation{}, err
	}
	return obs, nil
}
