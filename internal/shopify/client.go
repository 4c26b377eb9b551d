package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/lawchemical/Draft-Order-App/internal/config"
	"github.com/lawchemical/Draft-Order-App/internal/domain"
	"github.com/lawchemical/Draft-Order-App/internal/observability"
	"github.com/lawchemical/Draft-Order-App/internal/pkg/breaker"
	"github.com/lawchemical/Draft-Order-App/internal/pkg/retry"
)

const (
	HeaderAccessToken = "X-Shopify-Access-Token"

	maxResponseBytes = 4 << 20
)

var (
	operationRe = regexp.MustCompile(`^\s*(?:query|mutation)\s+([A-Za-z_][A-Za-z0-9_]*)`)

	transientSignatures = []string{
		"timeout",
		"timed out",
		"connection reset",
		"connection refused",
		"broken pipe",
		"eof",
		"no such host",
		"temporary failure",
		"tls handshake",
		"econnreset",
		"etimedout",
		"eai_again",
	}
)

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// Client talks to the admin GraphQL endpoint of one shop.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	retry    config.Retry
	breaker  *breaker.Breaker
	logger   *zap.Logger
	metrics  observability.Metrics
	tracer   trace.Tracer
}

func NewClient(
	cfg config.Shopify,
	retryPolicy config.Retry,
	brk *breaker.Breaker,
	logger *zap.Logger,
	metrics observability.Metrics,
) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = observability.NewNoop()
	}
	return &Client{
		endpoint: cfg.Endpoint(),
		token:    cfg.AccessToken,
		http:     &http.Client{Timeout: cfg.Timeout},
		retry:    retryPolicy,
		breaker:  brk,
		logger:   logger,
		metrics:  metrics,
		tracer:   otel.Tracer("github.com/lawchemical/Draft-Order-App/internal/shopify"),
	}
}

// WithHTTPClient replaces the transport, mostly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.http = hc
	}
	return c
}

// Call sends one GraphQL document and returns its data payload. Rate limits,
// 5xx responses and transient transport failures are retried; everything
// else fails on the first attempt.
func (c *Client) Call(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	op := operationName(query)
	ctx, span := c.tracer.Start(ctx, "shopify."+op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("graphql.operation.name", op))

	if err := c.breaker.Allow(); err != nil {
		c.metrics.ObserveUpstream(op, 0, false, 0)
		span.SetStatus(codes.Error, err.Error())
		return nil, &domain.UpstreamError{Transient: true, Msg: "upstream temporarily disabled", Err: err}
	}

	body, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", op, err)
	}

	start := time.Now()
	attempts := 0
	var data json.RawMessage
	err = retry.Do(ctx, c.retry, domain.IsTransient, func(attempt int) error {
		attempts = attempt + 1
		d, err := c.do(ctx, body)
		if err != nil {
			c.logger.Warn("upstream attempt failed",
				zap.String("operation", op),
				zap.Int("attempt", attempt),
				zap.Bool("transient", domain.IsTransient(err)),
				zap.Error(err),
			)
			return err
		}
		data = d
		return nil
	})
	durMs := float64(time.Since(start).Microseconds()) / 1000.0

	c.metrics.ObserveUpstream(op, attempts, err == nil, durMs)
	span.SetAttributes(attribute.Int("upstream.attempts", attempts))

	var ue *domain.UpstreamError
	switch {
	case err == nil:
		c.breaker.Success()
		return data, nil
	case errors.As(err, &ue) && ue.Transient:
		c.breaker.Failure()
	case errors.As(err, &ue):
		c.breaker.Success()
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return nil, fmt.Errorf("%s: %w", op, err)
}

func (c *Client) do(ctx context.Context, body []byte) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderAccessToken, c.token)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &domain.UpstreamError{Transient: isTransientTransport(err), Msg: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &domain.UpstreamError{Status: resp.StatusCode, Transient: true, Msg: "read body: " + err.Error(), Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &domain.UpstreamError{Status: resp.StatusCode, Transient: true, Msg: "rate limited"}
	case resp.StatusCode >= 500:
		return nil, &domain.UpstreamError{Status: resp.StatusCode, Transient: true, Msg: statusMessage(resp.StatusCode, raw)}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &domain.UpstreamError{Status: resp.StatusCode, Msg: statusMessage(resp.StatusCode, raw)}
	}

	var out gqlResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &domain.UpstreamError{Status: resp.StatusCode, Msg: "decode response: " + err.Error(), Err: err}
	}
	if len(out.Errors) > 0 {
		return nil, &domain.UpstreamError{Status: resp.StatusCode, Msg: out.Errors[0].Message}
	}
	return out.Data, nil
}

func operationName(query string) string {
	if m := operationRe.FindStringSubmatch(query); m != nil {
		return m[1]
	}
	return "anonymous"
}

func isTransientTransport(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, sig := range transientSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}

func statusMessage(status int, body []byte) string {
	msg := http.StatusText(status)
	snippet := strings.TrimSpace(string(body))
	if len(snippet) > 200 {
		snippet = snippet[:200]
	}
	if snippet != "" {
		msg += ": " + snippet
	}
	return msg
}
