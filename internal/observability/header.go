package observability

import (
	"net/http"
	"strconv"
)

const (
	HeaderServerTiming = "Server-Timing"
	HeaderResponseTime = "X-Response-Time"
)

// AppendServerTiming adds one Server-Timing metric. Non-positive durations
// are omitted; a metric with neither duration nor description is skipped.
func AppendServerTiming(w http.ResponseWriter, name string, durMs float64, desc string) {
	if durMs <= 0 && desc == "" {
		return
	}
	v := name
	if durMs > 0 {
		v += ";dur=" + strconv.FormatFloat(durMs, 'f', 2, 64)
	}
	if desc != "" {
		v += ";desc=" + strconv.Quote(desc)
	}
	w.Header().Add(HeaderServerTiming, v)
}

func SetIfPos(w http.ResponseWriter, key string, ms float64) {
	if ms > 0 {
		w.Header().Set(key, strconv.FormatFloat(ms, 'f', 2, 64))
	}
}
