package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/tennis-edge-api/internal/mock"
	"github.com/radieske/tennis-edge-api/internal/shared/config"
	"github.com/radieske/tennis-edge-api/internal/shared/logger"
	"github.com/radieske/tennis-edge-api/internal/shared/metrics"
)

// Métrica de previsões servidas pelo mock
var predictionsServed = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "mock_predictions_served_total",
	Help: "Total de previsões aleatórias servidas",
})

func main() {
	_ = godotenv.Load()

	// o mock compartilha o loader de config; SERVICE_NAME decide os defaults
	if _, ok := os.LookupEnv("SERVICE_NAME"); !ok {
		_ = os.Setenv("SERVICE_NAME", "mock-api")
	}
	cfg := config.Load()

	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prometheus.MustRegister(predictionsServed)

	s := &mock.Server{
		Log:       log,
		Generator: mock.NewGenerator(cfg.MockMatches, nil),
		OnServed:  func(n int) { predictionsServed.Add(float64(n)) },
	}

	var metricsSrv *http.Server
	if cfg.MetricsPort != "" {
		metricsSrv = metrics.StartMetricsServer(cfg.MetricsPort, nil, log)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("mock-api listening",
			zap.String("addr", srv.Addr),
			zap.String("paths", "/,/api/predictions,/api/health"),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(shutdownCtx)
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
}
