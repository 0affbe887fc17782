// Command baile-import seeds the SQLite backend from a CSV export of
// the spreadsheet, then optionally broadcasts a refresh so running
// servers pick up the new data.
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
	"baile/internal/storage"
)

func main() {
	csvPath := flag.String("csv", "", "path to the ledger CSV export (required)")
	notify := flag.Bool("notify", true, "publish a refresh message after importing (requires AMQP_URL)")
	flag.Parse()

	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentStorage)

	if *csvPath == "" {
		logger.Error("-csv flag is required")
		os.Exit(1)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open SQLite database", applog.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	count, err := repo.ImportCSV(ctx, *csvPath)
	if err != nil {
		logger.Error("Import failed", applog.FieldError, err, "source", *csvPath)
		os.Exit(1)
	}
	logger.Info("Import finished", applog.FieldRows, count, "db_path", cfg.SQLiteDBPath)

	if *notify && cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Import done but refresh not published", applog.FieldError, err)
			return
		}
		defer client.Close()
		if err := client.PublishRefresh(ctx, "csv import"); err != nil {
			logger.Warn("Import done but refresh not published", applog.FieldError, err)
			return
		}
		logger.Info("Refresh published", "exchange", cfg.AMQPExchange)
	}
}
