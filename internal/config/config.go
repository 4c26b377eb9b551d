package config

import (
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Shopify struct {
	ShopURL     string
	AccessToken string
	APIVersion  string
	Timeout     time.Duration
}

// Endpoint is the admin GraphQL url for the configured shop.
func (s Shopify) Endpoint() string {
	base := strings.TrimRight(s.ShopURL, "/")
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	return base + "/admin/api/" + url.PathEscape(s.APIVersion) + "/graphql.json"
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Kafka struct {
	Brokers []string
	Topic   string
}

type Breaker struct {
	Threshold   uint32
	OpenTimeout time.Duration
	MaxHalfOpen uint32
}

type Retry struct {
	Attempts int
	Base     time.Duration
	Max      time.Duration
	// Jitter is the upper bound of the random delay added to each backoff.
	Jitter time.Duration
}

type Cache struct {
	Cap int
	TTL time.Duration
}

type Idempotency struct {
	TTL      time.Duration
	ClaimTTL time.Duration
}

type Pricing struct {
	Divisor   float64
	Corded    float64
	Upcharges map[string]float64
}

type Log struct {
	Env   string
	Level string
	// File duplicates log output to this path when set.
	File string
}

type Config struct {
	HTTPAddr string
	// DebugSampleRate caps request debug log lines per second.
	DebugSampleRate float64
	OtelStdout      bool

	Log         Log
	Shopify     Shopify
	Redis       Redis
	Kafka       Kafka
	Breaker     Breaker
	Retry       Retry
	Cache       Cache
	Idempotency Idempotency
	Pricing     Pricing
}

const defaultUpcharges = "A:0,B:0,C:0.12,D:0.3,E:0.55,F:1.06"

// Load keeps the original API and fatals on error for simplicity in main().
func Load() Config {
	cfg, err := load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	return cfg
}

func load() (Config, error) {
	_ = godotenv.Load("env/.env")

	cfg := Config{
		HTTPAddr:        envDefault("HTTP_ADDR", ":8081"),
		DebugSampleRate: envFloat64("DEBUG_SAMPLE_RATE", 1),
		OtelStdout:      envBool("OTEL_STDOUT", false),

		Log: Log{
			Env:   envDefault("APP_ENV", "dev"),
			Level: strings.ToLower(envDefault("LOG_LEVEL", "info")),
			File:  strings.TrimSpace(os.Getenv("LOG_FILE")),
		},

		Shopify: Shopify{
			ShopURL:     strings.TrimSpace(os.Getenv("SHOPIFY_SHOP_URL")),
			AccessToken: strings.TrimSpace(os.Getenv("SHOPIFY_ACCESS_TOKEN")),
			APIVersion:  envDefault("SHOPIFY_API_VERSION", "2024-10"),
			Timeout:     envDurationMS("UPSTREAM_TIMEOUT", 10*time.Second),
		},

		Redis: Redis{
			Addr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       envInt("REDIS_DB", 0),
		},

		Kafka: Kafka{
			Brokers: splitCSV(strings.TrimSpace(os.Getenv("KAFKA_BROKERS"))),
			Topic:   envDefault("KAFKA_TOPIC", "draft-orders"),
		},

		Breaker: Breaker{
			Threshold:   envUint32("BREAKER_THRESHOLD", 5),
			OpenTimeout: envDurationMS("BREAKER_OPENTIMEOUT", 10*time.Second),
			MaxHalfOpen: envUint32("BREAKER_MAXHALFOPEN", 1),
		},

		Retry: Retry{
			Attempts: envInt("RETRY_ATTEMPTS", 3),
			Base:     envDurationMS("RETRY_BASE", 200*time.Millisecond),
			Max:      envDurationMS("RETRY_MAX", 5*time.Second),
			Jitter:   envDurationMS("RETRY_JITTER", 100*time.Millisecond),
		},

		Cache: Cache{
			Cap: envInt("CACHE_CAP", 10000),
			TTL: envDurationMS("CACHE_TTL", 600*time.Second),
		},

		Idempotency: Idempotency{
			TTL:      envDurationMS("IDEMPOTENCY_TTL", 600*time.Second),
			ClaimTTL: envDurationMS("IDEMPOTENCY_CLAIM_TTL", 60*time.Second),
		},

		Pricing: Pricing{
			Divisor:   envFloat64("PRICING_DIVISOR", 2.06),
			Corded:    envFloat64("PRICING_CORDED", 1.10),
			Upcharges: parseUpcharges(envDefault("PRICING_UPCHARGES", defaultUpcharges)),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	req := map[string]string{
		"SHOPIFY_SHOP_URL":     c.Shopify.ShopURL,
		"SHOPIFY_ACCESS_TOKEN": c.Shopify.AccessToken,
	}
	for k, v := range req {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return &missingEnvError{Keys: missing}
	}

	if c.Cache.Cap <= 0 {
		log.Printf("CACHE_CAP is %d, adjusting to 1", c.Cache.Cap)
		c.Cache.Cap = 1
	}
	if c.Retry.Attempts < 1 {
		log.Printf("RETRY_ATTEMPTS is %d, adjusting to 1", c.Retry.Attempts)
		c.Retry.Attempts = 1
	}
	if c.Retry.Base <= 0 {
		log.Printf("RETRY_BASE is %v, adjusting to 200ms", c.Retry.Base)
		c.Retry.Base = 200 * time.Millisecond
	}
	if c.Retry.Max < c.Retry.Base {
		log.Printf("RETRY_MAX (%v) < RETRY_BASE (%v), adjusting max to base", c.Retry.Max, c.Retry.Base)
		c.Retry.Max = c.Retry.Base
	}
	if c.Pricing.Divisor <= 0 {
		log.Printf("PRICING_DIVISOR is %v, adjusting to 2.06", c.Pricing.Divisor)
		c.Pricing.Divisor = 2.06
	}
	if c.Idempotency.ClaimTTL <= 0 || c.Idempotency.ClaimTTL > c.Idempotency.TTL {
		c.Idempotency.ClaimTTL = c.Idempotency.TTL
	}
	return nil
}

type missingEnvError struct{ Keys []string }

func (e *missingEnvError) Error() string {
	return "missing required envs: " + strings.Join(e.Keys, ", ")
}

// parseUpcharges reads "A:0,B:0.1,..." pairs; malformed pairs are skipped.
func parseUpcharges(s string) map[string]float64 {
	out := make(map[string]float64)
	for _, pair := range splitCSV(s) {
		k, v, ok := strings.Cut(pair, ":")
		if !ok {
			log.Printf("invalid PRICING_UPCHARGES pair %q, skipping", pair)
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			log.Printf("invalid PRICING_UPCHARGES pair %q, skipping: %v", pair, err)
			continue
		}
		out[strings.ToUpper(strings.TrimSpace(k))] = f
	}
	return out
}

func envDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d: %v", k, v, def, err)
		return def
	}
	return n
}

func envUint32(k string, def uint32) uint32 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	u, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d: %v", k, v, def, err)
		return def
	}
	return uint32(u)
}

func envFloat64(k string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using default %.3f: %v", k, v, def, err)
		return def
	}
	return f
}

func envBool(k string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %t: %v", k, v, def, err)
		return def
	}
	return b
}

// envDurationMS supports either plain integer milliseconds ("1500") or
// Go duration strings ("1.5s", "250ms", "2m").
func envDurationMS(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	if strings.IndexFunc(v, func(r rune) bool { return r < '0' || r > '9' }) != -1 {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
			return def
		}
		return d
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
