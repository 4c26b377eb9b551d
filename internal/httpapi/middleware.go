package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lawchemical/Draft-Order-App/internal/observability"
)

// ServerTimingApp measures the whole request, stamps app;dur=... into
// Server-Timing before the headers go out, and reports to ObserveHTTP by
// route pattern.
func ServerTimingApp(m observability.Metrics) func(http.Handler) http.Handler {
	if m == nil {
		m = observability.NewNoop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tw := &timingWriter{
				WrapResponseWriter: middleware.NewWrapResponseWriter(w, r.ProtoMajor),
				start:              time.Now(),
			}
			next.ServeHTTP(tw, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := tw.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.ObserveHTTP(r.Method, route, status, sinceMs(tw.start))
		})
	}
}

type timingWriter struct {
	middleware.WrapResponseWriter
	start   time.Time
	stamped bool
}

func (w *timingWriter) stamp() {
	if w.stamped {
		return
	}
	w.stamped = true
	dur := sinceMs(w.start)
	observability.AppendServerTiming(w, "app", dur, "")
	observability.SetIfPos(w, observability.HeaderResponseTime, dur)
}

func (w *timingWriter) WriteHeader(code int) {
	w.stamp()
	w.WrapResponseWriter.WriteHeader(code)
}

func (w *timingWriter) Write(b []byte) (int, error) {
	w.stamp()
	return w.WrapResponseWriter.Write(b)
}

func sinceMs(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}
