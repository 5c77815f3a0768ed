package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Poleswar/netsuite-order-sync/internal/broker"
	"github.com/Poleswar/netsuite-order-sync/internal/config"
	"github.com/Poleswar/netsuite-order-sync/internal/db"
	"github.com/Poleswar/netsuite-order-sync/internal/netsuite"
	"github.com/Poleswar/netsuite-order-sync/internal/service"
	"github.com/Poleswar/netsuite-order-sync/pkg/infra"
	"github.com/Poleswar/netsuite-order-sync/pkg/metrics"
)

func main() {
	cfg := config.Load()
	logger := infra.SetupLogger(cfg)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("CRITICAL: integration configuration incomplete", "error", err)
		os.Exit(1)
	}

	// Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("🔧 NetSuite order sync worker initializing...", "endpoint", cfg.NetSuiteEndpoint)

	keyPEM, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		logger.Error("CRITICAL: cannot read signing key", "path", cfg.PrivateKeyPath, "error", err)
		os.Exit(1)
	}

	tokens, err := netsuite.NewClientCredentialsTokenSource(cfg.TokenURL, cfg.ClientID, cfg.CertificateID, keyPEM, logger)
	if err != nil {
		logger.Error("CRITICAL: token source setup failed", "error", err)
		os.Exit(1)
	}

	orders, err := db.NewOrderRepository(cfg.FirebirdURL, logger)
	if err != nil {
		logger.Error("CRITICAL: Firebird connection failed", "error", err)
		os.Exit(1)
	}
	defer orders.Close()

	audit, err := db.NewAuditLogStore(ctx, cfg.AuditDatabaseURL, logger)
	if err != nil {
		logger.Error("CRITICAL: audit store connection failed", "error", err)
		os.Exit(1)
	}
	defer audit.Close()

	client := netsuite.NewClient(cfg.NetSuiteEndpoint, logger)
	syncService := service.NewSyncService(orders, audit, client, tokens, logger)

	go startObservabilityServer(cfg.MetricsPort, logger)

	logger.Info("🚀 Sync worker is running. Waiting for batch triggers...")
	runConsumerLoop(ctx, cfg, syncService, logger)

	logger.Info("✅ Sync worker shut down successfully")
}

// runConsumerLoop keeps a live broker link, reconnecting with jittered
// backoff when it drops. Order attempts are never retried here; only the
// trigger connectivity is.
func runConsumerLoop(ctx context.Context, cfg *config.Config, runner broker.BatchRunner, logger *slog.Logger) {
	connBackoff := infra.NewBackoff(1*time.Second, 60*time.Second, 2.0)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			consumer, err := broker.NewBatchConsumer(cfg.RabbitMQURL, runner, logger)
			if err != nil {
				metrics.HealthStatus.Set(0)
				wait := connBackoff.Next()
				logger.Error("RabbitMQ connection failed, retrying...", "wait_duration", wait, "error", err)

				select {
				case <-ctx.Done():
					return
				case <-time.After(wait):
					continue
				}
			}

			connBackoff.Reset()
			metrics.HealthStatus.Set(1)
			logger.Info("✅ Connected to broker. Listening for batch triggers...")

			if err := consumer.Listen(ctx); err != nil {
				metrics.HealthStatus.Set(0)
				logger.Error("⚠️ Consumer connection lost", "error", err)
			}

			consumer.Close()
		}
	}
}

func startObservabilityServer(port string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("SYNC WORKER ALIVE"))
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logger.Info("📊 Observability server online", "url", "http://localhost:"+port+"/metrics")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Observability server failed", "error", err)
	}
}
