package service

import "time"

// DraftStats describes where one request spent its time.
type DraftStats struct {
	// Outcome is one of the observability.Draft* outcomes.
	Outcome     string
	CacheHits   int
	CacheMisses int
	ResolveMs   float64
	WriteMs     float64
}

func convertToMs(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}
