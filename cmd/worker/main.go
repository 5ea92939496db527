package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sentimenhq/sentimen/config"
	"github.com/sentimenhq/sentimen/internal/analyzer"
	"github.com/sentimenhq/sentimen/internal/clients"
	"github.com/sentimenhq/sentimen/internal/clients/kafka_client"
	"github.com/sentimenhq/sentimen/internal/consumers"
	"github.com/sentimenhq/sentimen/internal/db"
	"github.com/sentimenhq/sentimen/internal/logging"
	"github.com/sentimenhq/sentimen/internal/monitoring"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		slog.Warn("[Main] Shutdown signal received")
		cancel()
	}()

	pg := clients.GetPostgresClient(ctx)
	defer pg.Close()

	repo := db.NewRepository(pg.DB)
	if err := repo.EnsureSchema(ctx); err != nil {
		slog.Error("[Main] Failed to ensure schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	valkeyClient := clients.InitValkey()
	defer valkeyClient.Close()

	cfg := kafka_client.GetKafkaConfig()
	for {
		err := kafka_client.InitProducer(cfg)
		if err == nil {
			break
		}
		slog.Warn("Kafka init failed, retrying...", slog.String("error", err.Error()))
		time.Sleep(5 * time.Second)
	}
	defer kafka_client.CloseProducer()

	consumer, err := kafka_client.NewConsumer(cfg, kafka_client.KAFKA_TOPIC_SAMPLE_INGEST)
	if err != nil {
		slog.Error("[Main] Failed to create consumer", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer consumer.Close()

	classifierHealthy := &atomic.Bool{}
	classifierHealthy.Store(true)
	go monitoring.MonitorClassifierHealth(ctx, classifierHealthy)

	a := analyzer.New(repo, clients.GetBertClient(), nil, valkeyClient)

	// periodic catch-up for samples that arrived outside the stream
	schedule := os.Getenv("BULK_SWEEP_SCHEDULE")
	if schedule == "" {
		schedule = "@every 10m"
	}
	cronRunner := cron.New()
	if _, err := cronRunner.AddFunc(schedule, func() {
		report, err := a.BulkAnalyze(ctx)
		if err != nil {
			slog.Error("[Main] Scheduled bulk sweep failed", slog.String("error", err.Error()))
			return
		}
		if report.Processed > 0 {
			slog.Info("[Main] Scheduled bulk sweep finished",
				slog.Int("processed", report.Processed),
				slog.Int("degraded", report.Degraded),
				slog.Int("skipped", report.Skipped))
		}
	}); err != nil {
		slog.Error("[Main] Invalid bulk sweep schedule", slog.String("error", err.Error()))
		os.Exit(1)
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	consumers.StartSampleConsumer(ctx, consumer, repo, a)
}
