package observability

import (
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/lawchemical/Draft-Order-App/internal/domain"
)

// RequestSampler logs a redacted summary of inbound draft requests, at most
// perSecond lines per second. Client prices, notes and attribute values are
// never logged.
type RequestSampler struct {
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewRequestSampler returns nil, which samples nothing, when perSecond is
// not positive.
func NewRequestSampler(perSecond float64, logger *zap.Logger) *RequestSampler {
	if perSecond <= 0 {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return &RequestSampler{
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		logger:  logger,
	}
}

// Observe reports whether the request was logged.
func (s *RequestSampler) Observe(req *domain.DraftRequest) bool {
	if s == nil || req == nil || !s.limiter.Allow() {
		return false
	}
	refs := make([]string, 0, len(req.Items))
	grades := make([]string, 0, len(req.Items))
	priced := 0
	for _, it := range req.Items {
		refs = append(refs, it.ItemRef)
		grades = append(grades, it.Grade)
		if it.UnitPriceCents != nil {
			priced++
		}
	}
	s.logger.Info("Draft request sample",
		zap.Int("lines", len(req.Items)),
		zap.Strings("item_refs", refs),
		zap.Strings("grades", grades),
		zap.Int("client_priced_lines", priced),
		zap.Int("tags", len(req.Tags)),
		zap.Bool("has_idempotency_key", req.IdempotencyKey != ""),
		zap.Bool("is_update", req.PrevDraftID != ""),
	)
	return true
}
