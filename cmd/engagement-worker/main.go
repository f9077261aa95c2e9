// Command engagement-worker consumes engagement events from Kafka and keeps the
// like and comment counters on posts and comments in step.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/joefazee/betpoints/app"
	"github.com/joefazee/betpoints/app/database"
	"github.com/joefazee/betpoints/app/social"
	"github.com/joefazee/betpoints/internal/events"
	"github.com/joefazee/betpoints/internal/logger"
	"github.com/joefazee/betpoints/internal/metrics"
)

func main() {
	cfg, err := app.LoadWorkerConfig()
	if err != nil {
		logger.NewZeroLogger(os.Stderr, logger.LevelInfo, nil).Fatal(err, map[string]interface{}{"stage": "config"})
	}

	log := logger.NewZeroLogger(os.Stdout, logger.ParseLevel(cfg.LogLevel), logger.Fields{
		"service": "engagement-worker",
		"env":     cfg.Env,
	})

	db, err := database.New(&cfg.DB)
	if err != nil {
		log.Fatal(err, map[string]interface{}{"stage": "database"})
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	reader := events.NewReader(cfg.Kafka)
	defer reader.Close()

	processor := social.NewCounterProcessor(db, social.NewRepository(db), log)
	consumer := &events.Consumer{
		Reader:      reader,
		Handle:      processor.Handle,
		Logger:      log,
		MaxAttempts: cfg.MaxAttempts,
		Backoff:     cfg.RetryBackoff,
		OnResult: func(kind events.Kind, result string) {
			m.EngagementEvents.WithLabelValues(string(kind), result).Inc()
		},
	}

	metricsServer := metrics.StartServer(cfg.Metrics.Port, reg, database.Pinger(db), func(err error) {
		log.Error(err, map[string]interface{}{"component": "metrics_server"})
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("engagement worker started", map[string]interface{}{
		"topic": cfg.Kafka.Topic,
		"group": cfg.Kafka.GroupID,
	})
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error(err, map[string]interface{}{"component": "consumer"})
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error(err, map[string]interface{}{"component": "metrics_server"})
	}
	log.Info("engagement worker stopped", nil)
}
