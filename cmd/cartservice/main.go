package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appcart "cartpay/internal/application/cart"
	"cartpay/internal/config"
	domcart "cartpay/internal/domain/cart"
	"cartpay/internal/infrastructure/memory"
	obsinfra "cartpay/internal/infrastructure/observability"
	"cartpay/internal/infrastructure/observability/oteltrace"
	"cartpay/internal/infrastructure/observability/prometrics"
	"cartpay/internal/infrastructure/observability/telemetry"
	"cartpay/internal/infrastructure/observability/zaplogger"
	"cartpay/internal/infrastructure/rediscart"
	"cartpay/internal/observability"
	"cartpay/internal/pkg/logging"
	httppresentation "cartpay/internal/presentation/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadCart()

	baseLogger := logging.MustNewLogger(cfg.ServiceName, cfg.Env)
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)
	logger := zaplogger.Wrap(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := telemetry.Init(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		baseLogger.Fatal("telemetry_init_error", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(shutdownCtx)
	}()

	registry := prometrics.New("", "")
	counters := map[observability.MetricKey]observability.Counter{
		observability.MUsecaseRequests: registry.Counter(
			observability.MUsecaseRequests,
			"Total number of use case invocations.",
			"use_case", "outcome",
		),
		observability.MHTTPRequests: registry.Counter(
			observability.MHTTPRequests,
			"Total number of HTTP requests served.",
			"method", "route", "status",
		),
	}
	histograms := map[observability.MetricKey]observability.Histogram{
		observability.MUsecaseDuration: registry.Histogram(
			observability.MUsecaseDuration,
			"Duration of use case execution in seconds.",
			prometheus.DefBuckets,
			"use_case",
		),
		observability.MHTTPRequestDuration: registry.Histogram(
			observability.MHTTPRequestDuration,
			"Duration of HTTP request handling in seconds.",
			prometheus.DefBuckets,
			"method", "route",
		),
	}
	tel := obsinfra.New(oteltrace.New(cfg.ServiceName), logger, counters, histograms)

	var store domcart.Store
	if cfg.RedisAddr != "" {
		redisStore, err := rediscart.New(ctx, cfg.RedisAddr)
		if err != nil {
			baseLogger.Fatal("redis_connect_error",
				zap.String("addr", cfg.RedisAddr),
				zap.Error(err),
			)
		}
		defer func() { _ = redisStore.Close() }()
		store = redisStore
		logger.Info("cart_store_ready", observability.F("backend", "redis"))
	} else {
		store = memory.NewCartStore()
		logger.Info("cart_store_ready", observability.F("backend", "memory"))
	}

	cartService := appcart.NewService(store, tel)
	handler := httppresentation.NewCartHandler(cartService, logger, tel)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", handler.Router())

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}

	go func() {
		logger.Info("http_server_start", observability.F("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", observability.F("error", err.Error()))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_server_shutdown_error", observability.F("error", err.Error()))
	} else {
		logger.Info("http_server_stopped")
	}
}
