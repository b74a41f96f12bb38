package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ordena/checkout-api/internal/app"
	"github.com/ordena/checkout-api/internal/clock"
	"github.com/ordena/checkout-api/internal/config"
	"github.com/ordena/checkout-api/internal/logging"
	"github.com/ordena/checkout-api/internal/storage/postgres"
	transporthttp "github.com/ordena/checkout-api/internal/transport/http"
	"github.com/ordena/checkout-api/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := logging.MustNew("payment")
	defer func() { _ = logger.Sync() }()

	config.LoadEnvFile(logger)
	cfg := config.LoadPayment()

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}

	svc := app.NewPaymentService(
		postgres.NewPaymentRepository(pool),
		app.BlockedPrefixPolicy{Prefix: cfg.BlockedPrefix},
		clock.NewSystem(),
	)
	metrics := transporthttp.NewMetrics("payment")

	mux := http.NewServeMux()
	mux.HandleFunc("/health", transporthttp.HealthHandler)
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/payments/charge", transporthttp.HandleCharge(svc))
	mux.Handle("/payments/refund", transporthttp.HandleRefund(svc))
	mux.Handle("/", transporthttp.NotFoundHandler())

	handler := transporthttp.RequestID(
		transporthttp.RequestLogger(metrics.Middleware(mux), logger),
	)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	logger.Info("listening", zap.String("port", cfg.Port))

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
