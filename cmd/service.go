package cmd

import (
	"fmt"

	"roster-audit/core/config"
	"roster-audit/core/database"
	"roster-audit/core/logger"
	"roster-audit/core/storage"
	"roster-audit/feature/audit"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// backends selects the optional connections a command needs.
type backends struct {
	storage  bool
	database bool
}

// needs reports which backends the given sources require.
func needs(srcs ...audit.Source) backends {
	var b backends
	for _, s := range srcs {
		switch s.Kind {
		case audit.SourceStorage:
			b.storage = true
		case audit.SourceDatabase:
			b.database = true
		}
	}
	return b
}

// bootstrap loads configuration and builds the application logger.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

// newService wires the audit service, connecting only the requested backends.
func newService(cfg *config.Config, l *zap.Logger, b backends) (*audit.Service, error) {
	var client storage.Client
	if b.storage {
		c, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		client = c
	}

	var db *gorm.DB
	if b.database {
		conn, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, err
		}
		db = conn
		l.Debug("Connected to HR database", zap.String("driver", cfg.Database.Driver), zap.String("name", cfg.Database.Name))
	}

	return audit.NewService(client, cfg.Storage, db, cfg.Audit, l)
}
