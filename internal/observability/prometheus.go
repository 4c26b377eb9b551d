package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var msBuckets = []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000}

// Prometheus implements Metrics with collectors registered on reg.
type Prometheus struct {
	cacheLookups     *prometheus.CounterVec
	resolveMisses    prometheus.Histogram
	upstreamCalls    *prometheus.CounterVec
	upstreamAttempts *prometheus.HistogramVec
	upstreamLatency  *prometheus.HistogramVec
	drafts           *prometheus.CounterVec
	draftLatency     prometheus.Histogram
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
	events           *prometheus.CounterVec
}

func NewPrometheus(reg prometheus.Registerer, namespace string) *Prometheus {
	p := &Prometheus{
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "cache", Name: "lookups_total",
			Help: "Price cache lookups by result.",
		}, []string{"result"}),
		resolveMisses: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "resolver", Name: "batch_size",
			Help:    "Item references fetched upstream per resolver call.",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
		upstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "upstream", Name: "calls_total",
			Help: "Upstream calls by operation and outcome.",
		}, []string{"operation", "ok"}),
		upstreamAttempts: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "upstream", Name: "attempts",
			Help:    "Attempts used per upstream call.",
			Buckets: []float64{1, 2, 3, 4, 5},
		}, []string{"operation"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "upstream", Name: "duration_ms",
			Help:    "Upstream call latency in milliseconds, retries included.",
			Buckets: msBuckets,
		}, []string{"operation"}),
		drafts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "draft", Name: "requests_total",
			Help: "Draft order requests by outcome.",
		}, []string{"outcome"}),
		draftLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "draft", Name: "duration_ms",
			Help:    "Draft order request latency in milliseconds.",
			Buckets: msBuckets,
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_ms",
			Help:    "HTTP request latency in milliseconds.",
			Buckets: msBuckets,
		}, []string{"method", "route"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "events", Name: "published_total",
			Help: "Draft order events by publish result.",
		}, []string{"ok"}),
	}
	reg.MustRegister(
		p.cacheLookups, p.resolveMisses,
		p.upstreamCalls, p.upstreamAttempts, p.upstreamLatency,
		p.drafts, p.draftLatency,
		p.httpRequests, p.httpLatency,
		p.events,
	)
	return p
}

func (p *Prometheus) ObserveResolve(_, misses int, _ float64) {
	p.resolveMisses.Observe(float64(misses))
}

func (p *Prometheus) ObserveUpstream(operation string, attempts int, ok bool, durMs float64) {
	p.upstreamCalls.WithLabelValues(operation, strconv.FormatBool(ok)).Inc()
	p.upstreamAttempts.WithLabelValues(operation).Observe(float64(attempts))
	p.upstreamLatency.WithLabelValues(operation).Observe(durMs)
}

func (p *Prometheus) ObserveDraft(outcome string, durMs float64) {
	p.drafts.WithLabelValues(outcome).Inc()
	p.draftLatency.Observe(durMs)
}

func (p *Prometheus) ObserveHTTP(method, route string, status int, durMs float64) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpLatency.WithLabelValues(method, route).Observe(durMs)
}

func (p *Prometheus) ObserveEvent(ok bool) {
	p.events.WithLabelValues(strconv.FormatBool(ok)).Inc()
}

func (p *Prometheus) IncCacheHit()  { p.cacheLookups.WithLabelValues("hit").Inc() }
func (p *Prometheus) IncCacheMiss() { p.cacheLookups.WithLabelValues("miss").Inc() }
