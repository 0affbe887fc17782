package backend

import (
	"context"
	"fmt"
	"log/slog"

	"baile/internal/config"
	gsheet "baile/internal/ledger/google"
	"baile/internal/ledger/memory"
	"baile/internal/storage"
)

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory.
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateBackend implements Factory.CreateBackend.
func (f *DefaultFactory) CreateBackend(ctx context.Context, cfg Config) (*Result, error) {
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}

	switch cfg.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(cfg)
	case SheetsBackend:
		return f.createSheetsBackend(ctx)
	case MemoryBackend:
		return f.createMemoryBackend(cfg)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(cfg Config) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)

	return &Result{
		Reader:  repo,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createSheetsBackend(ctx context.Context) (*Result, error) {
	cli, err := gsheet.NewFromEnv(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}

	f.logger.Info("Initialized Google Sheets backend")

	return &Result{
		Reader:  cli,
		Cleanup: nil,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(cfg Config) (*Result, error) {
	dataDir := cfg.DataDirectory
	if dataDir == "" {
		dataDir = "data"
	}

	store := memory.NewFromFiles(dataDir)

	f.logger.Info("Initialized memory backend", "data_directory", dataDir)

	return &Result{
		Reader:  store,
		Cleanup: nil,
	}, nil
}

// FromAppConfig converts the application config to backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := Type(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type: backendType,

		SQLiteDBPath: appConfig.SQLiteDBPath,

		GoogleSpreadsheetID: appConfig.GoogleSpreadsheetID,
		GoogleSheetName:     appConfig.GoogleSheetName,
		GoogleSheetRange:    appConfig.GoogleSheetRange,

		DataDirectory: "data",
	}, nil
}
