package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lawchemical/Draft-Order-App/internal/application/builder"
	"github.com/lawchemical/Draft-Order-App/internal/application/resolver"
	"github.com/lawchemical/Draft-Order-App/internal/application/service"
	"github.com/lawchemical/Draft-Order-App/internal/cache"
	"github.com/lawchemical/Draft-Order-App/internal/config"
	"github.com/lawchemical/Draft-Order-App/internal/httpapi"
	"github.com/lawchemical/Draft-Order-App/internal/idempotency"
	"github.com/lawchemical/Draft-Order-App/internal/kafka"
	"github.com/lawchemical/Draft-Order-App/internal/observability"
	"github.com/lawchemical/Draft-Order-App/internal/pkg/breaker"
	"github.com/lawchemical/Draft-Order-App/internal/pricing"
	"github.com/lawchemical/Draft-Order-App/internal/shopify"
)

const serviceName = "draftorder"

func main() {
	cfg := config.Load()

	logger, err := observability.NewLogger(serviceName, cfg.Log)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(cfg.OtelStdout)
	if err != nil {
		logger.Fatal("Error while initializing tracing", zap.Error(err))
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewPrometheus(reg, serviceName)

	// Cache backend: redis when configured, otherwise process-local.
	var (
		backend cache.Backend
		health  func(context.Context) error
	)
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = rdb.Close() }()

		shared := cache.NewRedis(rdb)
		if err := shared.Ping(ctx); err != nil {
			logger.Fatal("Error while connecting to redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		backend, health = shared, shared.Ping
		logger.Info("Using redis cache backend", zap.String("addr", cfg.Redis.Addr))
	} else {
		local, err := cache.NewLocal(cfg.Cache.Cap)
		if err != nil {
			logger.Fatal("Error while creating local cache", zap.Error(err))
		}
		backend = local
		logger.Info("Using local cache backend", zap.Int("capacity", cfg.Cache.Cap))
	}
	store := cache.New(backend, logger.Named("cache"))

	// Upstream
	client := shopify.NewClient(
		cfg.Shopify,
		cfg.Retry,
		breaker.New(cfg.Breaker),
		logger.Named("shopify"),
		metrics,
	)

	// Events
	var events service.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		if err := kafka.EnsureTopic(ctx, cfg.Kafka, 1, 1, logger); err != nil {
			logger.Warn("Error while ensuring kafka topic", zap.String("topic", cfg.Kafka.Topic), zap.Error(err))
		}
		publisher := kafka.NewPublisher(kafka.NewWriter(cfg.Kafka), logger.Named("kafka"))
		defer func() { _ = publisher.Close() }()
		events = publisher
	}

	svc := service.NewService(
		idempotency.NewStore(store, cfg.Idempotency.TTL, cfg.Idempotency.ClaimTTL),
		resolver.New(store, client, cfg.Cache.TTL, logger.Named("resolver"), metrics),
		builder.New(pricing.FromConfig(cfg.Pricing)),
		client,
		events,
		logger.Named("service"),
		metrics,
	)

	server := httpapi.New(svc, logger.Named("http"), metrics,
		httpapi.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})),
		httpapi.WithSampler(observability.NewRequestSampler(cfg.DebugSampleRate, logger.Named("sample"))),
		httpapi.WithHealthCheck(health),
	)

	logger.Info("Starting HTTP server", zap.String("addr", cfg.HTTPAddr))
	if err := server.ListenAndServe(ctx, cfg.HTTPAddr); err != nil {
		logger.Error("HTTP server stopped", zap.Error(err))
		return
	}
	logger.Info("HTTP server stopped")
}
