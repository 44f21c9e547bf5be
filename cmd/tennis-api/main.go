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
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/radieske/tennis-edge-api/internal/shared/cache"
	"github.com/radieske/tennis-edge-api/internal/shared/config"
	"github.com/radieske/tennis-edge-api/internal/shared/kafka"
	"github.com/radieske/tennis-edge-api/internal/shared/logger"
	"github.com/radieske/tennis-edge-api/internal/shared/metrics"
	"github.com/radieske/tennis-edge-api/internal/tennis/aggregator"
	"github.com/radieske/tennis-edge-api/internal/tennis/catalog"
	"github.com/radieske/tennis-edge-api/internal/tennis/httpapi"
	"github.com/radieske/tennis-edge-api/internal/tennis/models"
	"github.com/radieske/tennis-edge-api/internal/tennis/publisher"
	"github.com/radieske/tennis-edge-api/internal/tennis/scoring"
	"github.com/radieske/tennis-edge-api/internal/tennis/source"
	"github.com/radieske/tennis-edge-api/internal/tennis/synth"
	"github.com/radieske/tennis-edge-api/internal/tennis/ws"
)

func main() {
	// .env é opcional (ambiente local)
	_ = godotenv.Load()

	// carrega config
	cfg := config.Load()

	// inicia logger
	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service", zap.String("service", cfg.ServiceName), zap.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// limiares do modelo de edge (YAML opcional)
	scoringCfg, err := scoring.LoadConfig(cfg.ScoringConfigPath)
	if err != nil {
		log.Fatal("failed to load scoring config", zap.String("path", cfg.ScoringConfigPath), zap.Error(err))
	}

	m := metrics.NewTennis(prometheus.DefaultRegisterer)

	cat := catalog.Default()
	src := source.NewTennisAbstract(cfg.SourceURL, cfg.SourceTimeout, log.Named("source"))
	gen := synth.New(cat, scoring.NewModel(scoringCfg), log.Named("synth"))

	// sinks: ws sempre; redis e kafka só quando configurados
	hub := ws.NewHub(nil, log.Named("ws"))
	sinks := []aggregator.Sink{hub}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = cache.ConnectRedis(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatal("failed to connect redis", zap.Error(err))
		}
		defer rdb.Close()
		sinks = append(sinks, publisher.NewRedisMirror(rdb, cfg.RedisSnapshotTTL, cfg.RedisPubSubChannel))
		log.Info("redis connected", zap.String("addr", cfg.RedisAddr))
	}

	if cfg.KafkaBrokers != "" {
		brokers := kafka.SplitBrokers(cfg.KafkaBrokers)
		if len(brokers) == 0 {
			log.Fatal("kafka brokers not provided")
		}
		if cfg.Env == "local" || cfg.Env == "dev" {
			ensureTopic(ctx, log, brokers[0], cfg.TopicValueBets)
		}

		kp := publisher.NewKafkaPublisher(kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicValueBets), log.Named("kafka"))
		defer kp.Close()
		sinks = append(sinks, kp)
		log.Info("kafka writer ready", zap.String("topic", cfg.TopicValueBets))
	}

	agg := aggregator.New(log.Named("aggregator"), src, gen, sinks...)
	agg.OnRefresh = func(origin string, took time.Duration, snap *models.Snapshot) {
		m.Refreshes.WithLabelValues(origin).Inc()
		m.RefreshDuration.Observe(took.Seconds())
		m.Matches.Set(float64(snap.Stats.TotalMatches))
		m.ValueBets.Set(float64(snap.Stats.ValueBets))
		m.AverageEdge.Set(snap.Stats.AverageEdge)
	}
	agg.OnFallback = func(reason string) { m.Fallbacks.WithLabelValues(reason).Inc() }
	agg.OnSinkError = func(sink string) { m.SinkErrors.WithLabelValues(sink).Inc() }

	// sobe servidor de métricas e health
	var metricsSrv *http.Server
	if cfg.MetricsPort != "" {
		metricsSrv = metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
			if rdb == nil {
				return nil
			}
			return rdb.Ping(ctx).Err()
		}, log)
	}

	// refresh periódico + carga inicial em background
	sched := aggregator.NewScheduler(agg, cfg.RefreshInterval, log.Named("scheduler"))
	if err := sched.Start(ctx); err != nil {
		log.Fatal("failed to start scheduler", zap.Error(err))
	}

	api := &httpapi.API{
		Log:       log.Named("http"),
		Snapshots: agg,
		Catalog:   cat,
		WS:        hub.HandleWS,
	}
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("tennis-api listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown failed", zap.Error(err))
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			log.Warn("metrics shutdown failed", zap.Error(err))
		}
	}
}

// cria o tópico de value bets em ambiente local/dev; falha aqui não impede a subida
func ensureTopic(ctx context.Context, log *zap.Logger, broker, topic string) {
	ctrlCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	created, err := kafka.EnsureTopic(ctrlCtx, broker, topic)
	switch {
	case err != nil:
		log.Warn("failed to create kafka topic", zap.String("topic", topic), zap.Error(err))
	case created:
		log.Info("kafka topic created", zap.String("topic", topic))
	}
}
