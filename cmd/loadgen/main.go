package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lawchemical/Draft-Order-App/internal/config"
	"github.com/lawchemical/Draft-Order-App/internal/domain"
	"github.com/lawchemical/Draft-Order-App/internal/httpapi"
	"github.com/lawchemical/Draft-Order-App/internal/observability"
	"github.com/lawchemical/Draft-Order-App/internal/pkg/pool"
)

// loadgen replays draft order requests against the HTTP API. Every key is
// sent -replays times concurrently so idempotent replays and in-progress
// conflicts show up in the status counts.
func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:8081", "draft order service base url")
		workers  = flag.Int("workers", 8, "concurrent workers")
		keys     = flag.Int("keys", 20, "distinct idempotency keys")
		replays  = flag.Int("replays", 3, "requests per idempotency key")
		refsFlag = flag.String("refs", "1,2,3", "comma separated variant ids to order")
		timeout  = flag.Duration("timeout", 15*time.Second, "per request timeout")
		logLevel = flag.String("log-level", "info", "log level")
		logFile  = flag.String("log-file", "", "also write logs to this file")
	)
	flag.Parse()

	logger, err := observability.NewLogger("loadgen", config.Log{Env: "dev", Level: *logLevel, File: *logFile})
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	refs := strings.Split(*refsFlag, ",")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := &http.Client{Timeout: *timeout}
	stats := newStats()
	p := pool.New(*workers)

	start := time.Now()
	for k := 0; k < *keys; k++ {
		req := fakeRequest(uuid.NewString(), refs, k)
		for r := 0; r < *replays; r++ {
			if !p.Submit(func() {
				if ctx.Err() != nil {
					return
				}
				res, err := send(ctx, client, *baseURL, req)
				stats.add(res, err)
			}) {
				break
			}
		}
	}
	p.Close()
	p.Wait()

	stats.report(logger, time.Since(start))
}

func fakeRequest(key string, refs []string, n int) domain.DraftRequest {
	grades := domain.Grades
	items := make([]domain.OrderLineRequest, 0, len(refs))
	for i, ref := range refs {
		line := domain.OrderLineRequest{
			ItemRef:  strings.TrimSpace(ref),
			Quantity: domain.Quantity(1 + (n+i)%3),
			Grade:    string(grades[(n+i)%len(grades)]),
			Corded:   (n+i)%2 == 0,
		}
		if i == 0 && n%4 == 0 {
			cents := int64(25000 + n*100)
			line.Label = "Custom fabric " + strconv.Itoa(n)
			line.UnitPriceCents = &cents
		}
		items = append(items, line)
	}
	return domain.DraftRequest{
		Items:          items,
		Note:           "loadgen run",
		Tags:           []string{"loadgen"},
		IdempotencyKey: key,
	}
}

type result struct {
	status   int
	replayed bool
	dur      time.Duration
}

func send(ctx context.Context, client *http.Client, baseURL string, req domain.DraftRequest) (result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return result{}, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(baseURL, "/")+"/draft-orders", bytes.NewReader(body))
	if err != nil {
		return result{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(httpapi.HeaderIdempotencyKey, req.IdempotencyKey)

	start := time.Now()
	resp, err := client.Do(httpReq)
	if err != nil {
		return result{dur: time.Since(start)}, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return result{
		status:   resp.StatusCode,
		replayed: resp.Header.Get(httpapi.HeaderReplayed) == "true",
		dur:      time.Since(start),
	}, nil
}

type stats struct {
	mu        sync.Mutex
	statuses  map[int]int
	errors    int
	replayed  int
	firstErr  string
	latencies []time.Duration
}

func newStats() *stats {
	return &stats{statuses: make(map[int]int)}
}

func (s *stats) add(res result, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.errors++
		if s.firstErr == "" {
			s.firstErr = err.Error()
		}
		return
	}
	s.statuses[res.status]++
	if res.replayed {
		s.replayed++
	}
	s.latencies = append(s.latencies, res.dur)
}

func (s *stats) report(logger *zap.Logger, elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sort.Slice(s.latencies, func(i, j int) bool { return s.latencies[i] < s.latencies[j] })
	codes := make([]string, 0, len(s.statuses))
	for code, n := range s.statuses {
		codes = append(codes, fmt.Sprintf("%d=%d", code, n))
	}
	sort.Strings(codes)

	logger.Info("Load run finished",
		zap.Duration("elapsed", elapsed),
		zap.Int("requests", len(s.latencies)+s.errors),
		zap.Int("transport_errors", s.errors),
		zap.Int("replayed", s.replayed),
		zap.String("first_error", s.firstErr),
		zap.Strings("statuses", codes),
		zap.Duration("p50", percentile(s.latencies, 0.50)),
		zap.Duration("p95", percentile(s.latencies, 0.95)),
		zap.Duration("p99", percentile(s.latencies, 0.99)),
	)
}

func percentile(sorted []time.Duration, q float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(q * float64(len(sorted)-1))
	return sorted[idx]
}
