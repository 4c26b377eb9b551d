package observability

// Metrics is the sink for service measurements. Durations are milliseconds.
type Metrics interface {
	ObserveResolve(hits, misses int, upstreamMs float64)
	ObserveUpstream(operation string, attempts int, ok bool, durMs float64)
	ObserveDraft(outcome string, durMs float64)
	ObserveHTTP(method, route string, status int, durMs float64)
	ObserveEvent(ok bool)
	IncCacheHit()
	IncCacheMiss()
}

// Draft outcomes reported to ObserveDraft.
const (
	DraftCreated  = "created"
	DraftUpdated  = "updated"
	DraftReplayed = "replayed"
	DraftFailed   = "failed"
)

type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) ObserveResolve(int, int, float64)           {}
func (Noop) ObserveUpstream(string, int, bool, float64) {}
func (Noop) ObserveDraft(string, float64)               {}
func (Noop) ObserveHTTP(string, string, int, float64)   {}
func (Noop) ObserveEvent(bool)                          {}
func (Noop) IncCacheHit()                               {}
func (Noop) IncCacheMiss()                              {}
