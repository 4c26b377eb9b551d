package observability

import "sync"

type observe struct {
	Kind   string
	Label  string
	OK     bool
	Status int
	Count  int
	Count2 int
	DurMs  float64
}

// Inmem keeps the last max observations and running counters for tests.
type Inmem struct {
	mu     sync.Mutex
	last   []*observe
	max    int
	totals struct {
		cacheHits, cacheMiss int
	}
}

func NewInmem(max int) *Inmem {
	return &Inmem{
		max: max,
	}
}

func (m *Inmem) push(v *observe) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = append(m.last, v)
	if len(m.last) > m.max {
		m.last = m.last[len(m.last)-m.max:]
	}
}

func (m *Inmem) ObserveResolve(hits, misses int, upstreamMs float64) {
	m.push(&observe{Kind: "resolve", Count: hits, Count2: misses, DurMs: upstreamMs})
}

func (m *Inmem) ObserveUpstream(operation string, attempts int, ok bool, durMs float64) {
	m.push(&observe{Kind: "upstream", Label: operation, Count: attempts, OK: ok, DurMs: durMs})
}

func (m *Inmem) ObserveDraft(outcome string, durMs float64) {
	m.push(&observe{Kind: "draft", Label: outcome, DurMs: durMs})
}

func (m *Inmem) ObserveHTTP(method, route string, status int, durMs float64) {
	m.push(&observe{Kind: "http", Label: method + " " + route, Status: status, DurMs: durMs})
}

func (m *Inmem) ObserveEvent(ok bool) {
	m.push(&observe{Kind: "event", OK: ok})
}

func (m *Inmem) IncCacheHit() {
	m.mu.Lock()
	m.totals.cacheHits++
	m.mu.Unlock()
}

func (m *Inmem) IncCacheMiss() {
	m.mu.Lock()
	m.totals.cacheMiss++
	m.mu.Unlock()
}

// Count returns how many retained observations have kind and, when label
// is not empty, that label.
func (m *Inmem) Count(kind, label string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, o := range m.last {
		if o.Kind == kind && (label == "" || o.Label == label) {
			n++
		}
	}
	return n
}

func (m *Inmem) CacheTotals() (hits, misses int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals.cacheHits, m.totals.cacheMiss
}
