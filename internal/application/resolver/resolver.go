package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lawchemical/Draft-Order-App/internal/cache"
	"github.com/lawchemical/Draft-Order-App/internal/domain"
	"github.com/lawchemical/Draft-Order-App/internal/observability"
)

//go:generate mockgen -source internal/application/resolver/resolver.go -destination=internal/application/resolver/resolver_mock_test.go -package=resolver

const keyPrefix = "price:"

// PriceFetcher returns catalog prices for refs in one upstream call.
// Unknown refs are left out of the result.
type PriceFetcher interface {
	FetchPrices(ctx context.Context, refs []domain.ItemRef) (map[domain.ItemRef]decimal.Decimal, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) bool
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
}

type Stats struct {
	Hits       int
	Misses     int
	UpstreamMs float64
}

// Resolver answers price lookups from the cache and batches every miss
// into a single upstream call.
type Resolver struct {
	cache   Cache
	fetcher PriceFetcher
	ttl     time.Duration
	logger  *zap.Logger
	metrics observability.Metrics
}

func New(c Cache, fetcher PriceFetcher, ttl time.Duration, logger *zap.Logger, metrics observability.Metrics) *Resolver {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = observability.NewNoop()
	}
	return &Resolver{
		cache:   c,
		fetcher: fetcher,
		ttl:     ttl,
		logger:  logger,
		metrics: metrics,
	}
}

func Key(ref domain.ItemRef) string {
	return keyPrefix + string(ref)
}

// ResolvePrices returns a base price for every ref or fails. A ref the
// upstream does not know yields a *domain.MissingReferenceError.
func (r *Resolver) ResolvePrices(ctx context.Context, refs []domain.ItemRef) (map[domain.ItemRef]decimal.Decimal, Stats, error) {
	var st Stats
	out := make(map[domain.ItemRef]decimal.Decimal, len(refs))
	seen := make(map[domain.ItemRef]struct{}, len(refs))
	var misses []domain.ItemRef

	for _, ref := range refs {
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}

		var price decimal.Decimal
		if r.cache.Get(ctx, Key(ref), &price) {
			out[ref] = price
			st.Hits++
			r.metrics.IncCacheHit()
			continue
		}
		misses = append(misses, ref)
		r.metrics.IncCacheMiss()
	}
	st.Misses = len(misses)

	if len(misses) == 0 {
		r.metrics.ObserveResolve(st.Hits, 0, 0)
		return out, st, nil
	}

	t0 := time.Now()
	fetched, err := r.fetcher.FetchPrices(ctx, misses)
	st.UpstreamMs = float64(time.Since(t0).Microseconds()) / 1000.0
	r.metrics.ObserveResolve(st.Hits, st.Misses, st.UpstreamMs)
	if err != nil {
		r.logger.Error("Price lookup failed",
			zap.Int("misses", len(misses)),
			zap.Error(err),
		)
		return nil, st, fmt.Errorf("fetch prices: %w", err)
	}

	for _, ref := range misses {
		price, ok := fetched[ref]
		if !ok {
			return nil, st, &domain.MissingReferenceError{Ref: ref}
		}
		out[ref] = price
	}
	for _, ref := range misses {
		if err := r.cache.Set(ctx, Key(ref), out[ref], r.ttl); err != nil {
			return nil, st, fmt.Errorf("cache price %s: %w", ref, err)
		}
	}

	r.logger.Debug("Prices resolved",
		zap.Int("hits", st.Hits),
		zap.Int("misses", st.Misses),
		zap.Float64("upstream_ms", st.UpstreamMs),
	)
	return out, st, nil
}
