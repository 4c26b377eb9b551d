package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lawchemical/Draft-Order-App/internal/application/resolver"
	"github.com/lawchemical/Draft-Order-App/internal/domain"
	"github.com/lawchemical/Draft-Order-App/internal/idempotency"
	"github.com/lawchemical/Draft-Order-App/internal/observability"
)

//go:generate mockgen -source internal/application/service/service.go -destination=internal/application/service/service_mock_test.go -package=service

type IdempotencyStore interface {
	Lookup(ctx context.Context, opKey string) (idempotency.Entry, bool)
	Claim(ctx context.Context, opKey string) (bool, error)
	Record(ctx context.Context, opKey string, result domain.DraftResult) error
	Release(ctx context.Context, opKey string) error
}

type PriceResolver interface {
	ResolvePrices(ctx context.Context, refs []domain.ItemRef) (map[domain.ItemRef]decimal.Decimal, resolver.Stats, error)
}

type LineBuilder interface {
	Build(lines []domain.Line, prices map[domain.ItemRef]decimal.Decimal) ([]domain.LineItem, error)
}

type DraftWriter interface {
	UpsertDraftOrder(ctx context.Context, order domain.DraftOrder) (domain.DraftResult, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.DraftEvent) error
}

type Service struct {
	idem     IdempotencyStore
	resolver PriceResolver
	builder  LineBuilder
	writer   DraftWriter
	events   EventPublisher
	logger   *zap.Logger
	metrics  observability.Metrics
	now      func() time.Time
}

// NewService wires the draft order pipeline. events may be nil.
func NewService(
	idem IdempotencyStore,
	resolver PriceResolver,
	builder LineBuilder,
	writer DraftWriter,
	events EventPublisher,
	logger *zap.Logger,
	metrics observability.Metrics,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = observability.NewNoop()
	}
	return &Service{
		idem:     idem,
		resolver: resolver,
		builder:  builder,
		writer:   writer,
		events:   events,
		logger:   logger,
		metrics:  metrics,
		now:      time.Now,
	}
}

func (s *Service) CreateOrUpdate(ctx context.Context, req *domain.DraftRequest) (domain.DraftResult, error) {
	res, _, err := s.CreateOrUpdateWithStats(ctx, req)
	return res, err
}

// CreateOrUpdateWithStats runs one request through idempotency, price
// resolution, line building and the upstream write. Any failure aborts the
// request; a request replayed under a recorded idempotency key gets the
// recorded result without touching the upstream.
func (s *Service) CreateOrUpdateWithStats(ctx context.Context, req *domain.DraftRequest) (res domain.DraftResult, st DraftStats, err error) {
	start := time.Now()
	defer func() {
		outcome := st.Outcome
		if err != nil {
			outcome = observability.DraftFailed
		}
		s.metrics.ObserveDraft(outcome, convertToMs(start))
	}()

	if req == nil || len(req.Items) == 0 {
		return res, st, domain.NewValidationError("items must not be empty")
	}

	key := strings.TrimSpace(req.IdempotencyKey)
	if key != "" {
		if prior, ok := s.replay(ctx, key); ok {
			st.Outcome = observability.DraftReplayed
			return prior, st, nil
		}

		claimed, cerr := s.idem.Claim(ctx, key)
		if cerr != nil {
			return res, st, fmt.Errorf("claim idempotency key: %w", cerr)
		}
		if !claimed {
			// Lost the race; the winner may already be done.
			if prior, ok := s.replay(ctx, key); ok {
				st.Outcome = observability.DraftReplayed
				return prior, st, nil
			}
			return res, st, domain.ErrInProgress
		}
		defer func() {
			if err == nil {
				return
			}
			if rerr := s.idem.Release(context.WithoutCancel(ctx), key); rerr != nil {
				s.logger.Warn("Error while releasing idempotency claim",
					zap.String("idempotency_key", key),
					zap.Error(rerr),
				)
			}
		}()
	}

	lines := make([]domain.Line, 0, len(req.Items))
	refs := make([]domain.ItemRef, 0, len(req.Items))
	for i, item := range req.Items {
		line, err := item.Normalize()
		if err != nil {
			return res, st, fmt.Errorf("items[%d]: %w", i, err)
		}
		lines = append(lines, line)
		refs = append(refs, line.Ref)
	}

	var draftID string
	if strings.TrimSpace(req.PrevDraftID) != "" {
		if draftID, err = domain.NormalizeDraftID(req.PrevDraftID); err != nil {
			return res, st, err
		}
	}

	t0 := time.Now()
	prices, rst, err := s.resolver.ResolvePrices(ctx, refs)
	st.ResolveMs = convertToMs(t0)
	st.CacheHits, st.CacheMisses = rst.Hits, rst.Misses
	if err != nil {
		return res, st, err
	}

	items, err := s.builder.Build(lines, prices)
	if err != nil {
		return res, st, err
	}

	t1 := time.Now()
	res, err = s.writer.UpsertDraftOrder(ctx, domain.DraftOrder{
		ID:        draftID,
		LineItems: items,
		Note:      req.Note,
		Tags:      req.Tags,
	})
	st.WriteMs = convertToMs(t1)
	if err != nil {
		s.logger.Error("Error while upserting draft order",
			zap.String("draft_id", draftID),
			zap.Error(err),
		)
		return domain.DraftResult{}, st, err
	}
	if res.InvoiceURL == "" {
		return domain.DraftResult{}, st, fmt.Errorf("draft %s: %w", res.DraftID, domain.ErrIncompleteResult)
	}

	st.Outcome = observability.DraftCreated
	if draftID != "" {
		st.Outcome = observability.DraftUpdated
	}

	// The write already happened, so a client disconnect must not stop the
	// result from being recorded or announced.
	done := context.WithoutCancel(ctx)
	if key != "" {
		if rerr := s.idem.Record(done, key, res); rerr != nil {
			s.logger.Error("Error while recording idempotent result",
				zap.String("idempotency_key", key),
				zap.String("draft_id", res.DraftID),
				zap.Error(rerr),
			)
		}
	}

	s.publish(done, res, items, draftID != "", key)

	s.logger.Info("Draft order upserted",
		zap.String("draft_id", res.DraftID),
		zap.String("outcome", st.Outcome),
		zap.Int("lines", len(items)),
		zap.Int("cache_hits", st.CacheHits),
		zap.Int("cache_misses", st.CacheMisses),
		zap.Float64("resolve_ms", st.ResolveMs),
		zap.Float64("write_ms", st.WriteMs),
	)
	return res, st, nil
}

func (s *Service) replay(ctx context.Context, key string) (domain.DraftResult, bool) {
	entry, ok := s.idem.Lookup(ctx, key)
	if !ok || entry.Pending {
		return domain.DraftResult{}, false
	}
	s.logger.Info("Draft order replayed",
		zap.String("idempotency_key", key),
		zap.String("draft_id", entry.Result.DraftID),
	)
	return entry.Result, true
}

func (s *Service) publish(ctx context.Context, res domain.DraftResult, items []domain.LineItem, updated bool, key string) {
	if s.events == nil {
		return
	}
	custom := 0
	for _, it := range items {
		if it.Custom {
			custom++
		}
	}
	err := s.events.Publish(ctx, domain.DraftEvent{
		ID:             uuid.NewString(),
		Type:           domain.EventDraftUpserted,
		DraftID:        res.DraftID,
		InvoiceURL:     res.InvoiceURL,
		Updated:        updated,
		LineCount:      len(items),
		CustomLines:    custom,
		IdempotencyKey: key,
		OccurredAt:     s.now().UTC(),
	})
	s.metrics.ObserveEvent(err == nil)
	if err != nil {
		s.logger.Warn("Error while publishing draft event",
			zap.String("draft_id", res.DraftID),
			zap.Error(err),
		)
	}
}

