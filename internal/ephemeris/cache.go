package ephemeris

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/astrosched/internal/scheduling/domain"
	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL bounds how long a cached observation stays valid.
const DefaultCacheTTL = 10 * time.Minute

// cacheBucket quantizes observation instants so slot-search probes at nearby
// times share cache entries.
const cacheBucket = time.Minute

// CachingProvider caches observations in Redis in front of another provider.
// A slot search probes the same target at many nearby instants; bucketing
// those probes to the minute makes repeated runs cheap.
type CachingProvider struct {
	inner  Provider
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachingProvider wraps a provider with a Redis observation cache.
func NewCachingProvider(inner Provider, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachingProvider {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachingProvider{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Observe returns a cached observation when present, otherwise delegates and
// caches the result. Cache failures degrade to a direct call.
func (p *CachingProvider) Observe(ctx context.Context, target domain.Target, location domain.Location, at time.Time) (Observation, error) {
	key := p.cacheKey(target, location, at)

	raw, err := p.client.Get(ctx, key).Bytes()
	if err == nil {
		var obs Observation
		if jsonErr := json.Unmarshal(raw, &obs); jsonErr == nil {
			return obs, nil
		}
	} else if err != redis.Nil {
		p.logger.Debug("ephemeris cache read failed", "key", key, "error", err)
	}

	obs, err := p.inner.Observe(ctx, target, location, at)
	if err != nil {
		return Observation{}, err
	}

	if payload, jsonErr := json.Marshal(obs); jsonErr == nil {
		if setErr := p.client.Set(ctx, key, payload, p.ttl).Err(); setErr != nil {
			p.logger.Debug("ephemeris cache write failed", "key", key, "error", setErr)
		}
	}

	return obs, nil
}

func (p *CachingProvider) cacheKey(target domain.Target, location domain.Location, at time.Time) string {
	bucket := at.UTC().Truncate(cacheBucket).Unix()
	return fmt.Sprintf("ephemeris:%s:%.4f:%.4f:%d", target.ID, location.Latitude, location.Longitude, bucket)
}
