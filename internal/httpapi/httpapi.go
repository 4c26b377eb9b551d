package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/lawchemical/Draft-Order-App/internal/application/service"
	"github.com/lawchemical/Draft-Order-App/internal/domain"
	"github.com/lawchemical/Draft-Order-App/internal/observability"
)

//go:generate mockgen -source internal/httpapi/httpapi.go -destination=internal/httpapi/httpapi_mock_test.go -package=httpapi

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"

	maxBodyBytes = 1 << 20
)

type DraftService interface {
	CreateOrUpdateWithStats(ctx context.Context, req *domain.DraftRequest) (domain.DraftResult, service.DraftStats, error)
}

type Server struct {
	service DraftService
	router  chi.Router
	logger  *zap.Logger
	metrics observability.Metrics
	sampler *observability.RequestSampler

	metricsHandler http.Handler
	health         func(context.Context) error
}

type Option func(*Server)

// WithMetricsHandler exposes h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.metricsHandler = h }
}

func WithSampler(sampler *observability.RequestSampler) Option {
	return func(s *Server) { s.sampler = sampler }
}

// WithHealthCheck makes /healthz report 503 while check fails.
func WithHealthCheck(check func(context.Context) error) Option {
	return func(s *Server) { s.health = check }
}

func New(service DraftService, logger *zap.Logger, metrics observability.Metrics, opts ...Option) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = observability.NewNoop()
	}
	s := &Server{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		ServerTimingApp(s.metrics),
	)

	r.Get("/healthz", s.healthz)
	r.Post("/draft-orders", s.upsertDraft)
	if s.metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", s.metricsHandler)
	}
	s.router = r
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			s.logger.Warn("Health check failed", zap.Error(err))
			writeProblem(w, r, Problem{Type: TypeUnhealthy, Title: "Unhealthy", Status: http.StatusServiceUnavailable, Detail: err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) upsertDraft(w http.ResponseWriter, r *http.Request) {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeProblem(w, r, Problem{
			Type:   TypeUnsupportedMedia,
			Title:  "Unsupported Media Type",
			Status: http.StatusUnsupportedMediaType,
			Detail: "Content-Type must be application/json",
		})
		return
	}

	var req domain.DraftRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.logger.Info("Error while decoding JSON", zap.Error(err))
		writeProblem(w, r, Problem{Type: TypeBadRequest, Title: "Bad Request", Status: http.StatusBadRequest, Detail: "bad json"})
		return
	}
	if strings.TrimSpace(req.IdempotencyKey) == "" {
		req.IdempotencyKey = r.Header.Get(HeaderIdempotencyKey)
	}
	s.sampler.Observe(&req)

	res, st, err := s.service.CreateOrUpdateWithStats(r.Context(), &req)
	if err != nil {
		p := problemFor(err)
		fields := []zap.Field{
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Int("status", p.Status),
			zap.Error(err),
		}
		if p.Status >= http.StatusInternalServerError {
			s.logger.Error("Draft order request failed", fields...)
		} else {
			s.logger.Info("Draft order request rejected", fields...)
		}
		writeProblem(w, r, p)
		return
	}

	observability.AppendServerTiming(w, "resolve", st.ResolveMs, "")
	observability.AppendServerTiming(w, "upstream", st.WriteMs, "")
	observability.AppendServerTiming(w, "outcome", 0, st.Outcome)
	if st.Outcome == observability.DraftReplayed {
		w.Header().Set(HeaderReplayed, "true")
	}
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// ListenAndServe serves until ctx is done, then drains for up to five
// seconds.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Handler() http.Handler { return s.router }
