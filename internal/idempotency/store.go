package idempotency

import (
	"context"
	"strings"
	"time"

	"github.com/lawchemical/Draft-Order-App/internal/cache"
	"github.com/lawchemical/Draft-Order-App/internal/domain"
)

const keyPrefix = "idem:"

type status string

const (
	statusPending status = "pending"
	statusDone    status = "done"
)

type record struct {
	Status status              `json:"status"`
	Result *domain.DraftResult `json:"result,omitempty"`
}

// Entry is what Lookup found under a key.
type Entry struct {
	// Pending is set while another request holds the claim.
	Pending bool
	Result  domain.DraftResult
}

// Store keeps completed draft results under the idem: namespace of the
// cache so replays can be answered without a second upstream write.
type Store struct {
	cache    *cache.Cache
	ttl      time.Duration
	claimTTL time.Duration
}

func NewStore(c *cache.Cache, ttl, claimTTL time.Duration) *Store {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	if claimTTL <= 0 || claimTTL > ttl {
		claimTTL = ttl
	}
	return &Store{
		cache:    c,
		ttl:      ttl,
		claimTTL: claimTTL,
	}
}

func Key(opKey string) string {
	return keyPrefix + strings.TrimSpace(opKey)
}

func (s *Store) Lookup(ctx context.Context, opKey string) (Entry, bool) {
	var rec record
	if !s.cache.Get(ctx, Key(opKey), &rec) {
		return Entry{}, false
	}
	switch {
	case rec.Status == statusDone && rec.Result != nil:
		return Entry{Result: *rec.Result}, true
	case rec.Status == statusPending:
		return Entry{Pending: true}, true
	default:
		return Entry{}, false
	}
}

// Claim marks opKey as in progress if nobody else has. The claim expires
// after the claim TTL so a crashed request cannot hold a key forever.
func (s *Store) Claim(ctx context.Context, opKey string) (bool, error) {
	return s.cache.SetIfAbsent(ctx, Key(opKey), record{Status: statusPending}, s.claimTTL)
}

// Record overwrites the claim with the completed result.
func (s *Store) Record(ctx context.Context, opKey string, result domain.DraftResult) error {
	return s.cache.Set(ctx, Key(opKey), record{Status: statusDone, Result: &result}, s.ttl)
}

// Release drops a claim after a failed attempt so the client can retry.
func (s *Store) Release(ctx context.Context, opKey string) error {
	return s.cache.Delete(ctx, Key(opKey))
}
