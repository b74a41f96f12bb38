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
	"github.com/ordena/checkout-api/internal/client"
	"github.com/ordena/checkout-api/internal/clock"
	"github.com/ordena/checkout-api/internal/config"
	"github.com/ordena/checkout-api/internal/logging"
	"github.com/ordena/checkout-api/internal/storage/postgres"
	transporthttp "github.com/ordena/checkout-api/internal/transport/http"
	"github.com/ordena/checkout-api/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := logging.MustNew("orders")
	defer func() { _ = logger.Sync() }()

	config.LoadEnvFile(logger)
	cfg := config.LoadOrders()

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

	orderRepo := postgres.NewOrderRepository(pool)
	orderSvc := app.NewOrderService(
		client.NewInventoryClient(cfg.InventoryURL),
		client.NewPaymentClient(cfg.PaymentURL),
		orderRepo,
		clock.NewSystem(),
		logger,
	)

	metrics := transporthttp.NewMetrics("orders")

	mux := http.NewServeMux()
	mux.HandleFunc("/health", transporthttp.HealthHandler)
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/orders", transporthttp.HandleOrders(orderSvc))
	mux.Handle("/", transporthttp.NotFoundHandler())

	handler := transporthttp.RequestID(
		transporthttp.RequestLogger(
			metrics.Middleware(transporthttp.CORS(cfg.CORSOrigins, mux)),
			logger,
		),
	)

	run(logger, cfg.Port, handler)
}

func run(logger *zap.Logger, port string, handler http.Handler) {
	server := &http.Server{
		Addr:    ":" + port,
		Handler: handler,
	}

	logger.Info("listening", zap.String("port", port))

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
