package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"baile/internal/amqp"
	"baile/internal/auth"
	"baile/internal/backend"
	"baile/internal/config"
	apphttp "baile/internal/http"
	applog "baile/internal/log"
	"baile/internal/services"
	"baile/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Backend configuration error", applog.FieldError, err)
		os.Exit(1)
	}
	factory := backend.NewFactory(logger.Logger)
	res, err := factory.CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize ledger backend", applog.FieldError, err, applog.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	if res.Cleanup != nil {
		defer func() {
			if err := res.Cleanup(); err != nil {
				logger.Error("Backend cleanup error", applog.FieldError, err)
			}
		}()
	}

	reports := services.NewReportService(res.Reader, cfg.SnapshotTTL)

	authMgr := auth.New(cfg.DashboardUsername, cfg.DashboardPassword, cfg.SessionSecret, cfg.SessionTTL)
	if !authMgr.Enabled() {
		logger.Warn("Dashboard auth disabled: no DASHBOARD_PASSWORD set")
	}

	srv := apphttp.NewServer(":"+cfg.Port, reports, authMgr)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	// Optional refresh channel: invalidates the snapshot cache when an
	// operator announces a spreadsheet edit.
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without refresh channel", applog.FieldError, err)
		} else {
			defer amqpClient.Close()
			consumer := worker.NewRefreshConsumer(amqpClient, reports, logger)
			g.Go(func() error {
				return consumer.Run(gctx)
			})
			logger.Info("Refresh consumer enabled",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	g.Go(func() error {
		logger.Info("Starting baile server",
			applog.FieldOperation, applog.OpStartup,
			"port", cfg.Port,
			applog.FieldBackend, cfg.DataBackend,
			"auth_enabled", authMgr.Enabled())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received", applog.FieldOperation, applog.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
