package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apppayment "cartpay/internal/application/payment"
	"cartpay/internal/application/reconcile"
	"cartpay/internal/config"
	domledger "cartpay/internal/domain/ledger"
	"cartpay/internal/infrastructure/cardnetwork"
	"cartpay/internal/infrastructure/memory"
	"cartpay/internal/infrastructure/mongoledger"
	obsinfra "cartpay/internal/infrastructure/observability"
	"cartpay/internal/infrastructure/observability/oteltrace"
	"cartpay/internal/infrastructure/observability/prometrics"
	"cartpay/internal/infrastructure/observability/telemetry"
	"cartpay/internal/infrastructure/observability/zaplogger"
	"cartpay/internal/infrastructure/outbox"
	"cartpay/internal/observability"
	"cartpay/internal/pkg/logging"
	httppresentation "cartpay/internal/presentation/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadPayment()

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
		observability.MChargeUnrecorded: registry.Counter(
			observability.MChargeUnrecorded,
			"Charges executed but missing from the transaction ledger.",
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

	var ledger domledger.Ledger
	if cfg.LedgerDBAddr != "" {
		mongoLedger, err := mongoledger.Connect(ctx, cfg.LedgerDBAddr)
		if err != nil {
			baseLogger.Fatal("ledger_connect_error",
				zap.String("addr", cfg.LedgerDBAddr),
				zap.Error(err),
			)
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = mongoLedger.Close(closeCtx)
		}()
		ledger = mongoLedger
		logger.Info("ledger_ready", observability.F("backend", "mongodb"))
	} else {
		ledger = memory.NewLedger()
		logger.Info("ledger_ready", observability.F("backend", "memory"))
	}

	bus := outbox.NewBus(logger)
	bus.Start(context.Background())
	defer bus.Stop(context.Background())

	reconcileWorker := reconcile.New(bus, tel)
	reconcileWorker.Start()

	paymentService := apppayment.NewService(cardnetwork.New(), ledger, bus, tel)
	handler := httppresentation.NewPaymentHandler(paymentService, logger, tel)

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
