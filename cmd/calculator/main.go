package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ordena/checkout-api/internal/calc"
	"github.com/ordena/checkout-api/internal/config"
	"github.com/ordena/checkout-api/internal/logging"
	transporthttp "github.com/ordena/checkout-api/internal/transport/http"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := logging.MustNew("calculator")
	defer func() { _ = logger.Sync() }()

	config.LoadEnvFile(logger)
	cfg := config.LoadCalculator()

	calculator := calc.New()
	metrics := transporthttp.NewMetrics("calculator")

	mux := http.NewServeMux()
	mux.HandleFunc("/health", transporthttp.HealthHandler)
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/add", transporthttp.HandleCalcBinary(func(a, b float64) (float64, error) {
		return calculator.Add(a, b), nil
	}))
	mux.Handle("/subtract", transporthttp.HandleCalcBinary(func(a, b float64) (float64, error) {
		return calculator.Subtract(a, b), nil
	}))
	mux.Handle("/multiply", transporthttp.HandleCalcBinary(func(a, b float64) (float64, error) {
		return calculator.Multiply(a, b), nil
	}))
	mux.Handle("/divide", transporthttp.HandleCalcBinary(calculator.Divide))
	mux.Handle("/power", transporthttp.HandleCalcBinary(func(a, b float64) (float64, error) {
		return calculator.Power(a, b), nil
	}))
	mux.Handle("/sqrt", transporthttp.HandleCalcSqrt(calculator))
	mux.Handle("/history", transporthttp.HandleCalcHistory(calculator))
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
