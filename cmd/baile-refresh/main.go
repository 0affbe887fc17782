// Command baile-refresh broadcasts a ledger refresh message so every
// running server drops its cached snapshot. Run it after editing the
// spreadsheet when waiting for the TTL is not acceptable.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"

	"baile/internal/amqp"
	"baile/internal/config"
	applog "baile/internal/log"
)

func main() {
	reason := flag.String("reason", "manual", "reason recorded in the refresh message")
	flag.Parse()

	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentAMQP)

	cfg := config.Load()
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is not set; nothing to publish to")
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP", applog.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.PublishRefresh(ctx, *reason); err != nil {
		logger.Error("Failed to publish refresh", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Refresh published", "reason", *reason, "exchange", cfg.AMQPExchange)
}
