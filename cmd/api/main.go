package main

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/sentimenhq/sentimen/config"
	"github.com/sentimenhq/sentimen/internal/analyzer"
	"github.com/sentimenhq/sentimen/internal/clients"
	"github.com/sentimenhq/sentimen/internal/clients/kafka_client"
	"github.com/sentimenhq/sentimen/internal/db"
	"github.com/sentimenhq/sentimen/internal/logging"
	"github.com/sentimenhq/sentimen/internal/monitoring"
	"github.com/sentimenhq/sentimen/internal/server"
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

	classifierHealthy := &atomic.Bool{}
	classifierHealthy.Store(true)
	go monitoring.MonitorClassifierHealth(ctx, classifierHealthy)

	a := analyzer.New(repo, clients.GetBertClient(), nil, valkeyClient)
	srv := server.New(repo, a, valkeyClient, classifierHealthy, kafka_client.Publish)

	addr := os.Getenv("API_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	slog.Info("[Main] Starting API server", slog.String("addr", addr))
	if err := srv.Router().Run(addr); err != nil {
		slog.Error("[Main] API server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
