package app

import (
	"log/slog"

	"depth_go/internal/event"
	"depth_go/internal/infra"
	"depth_go/internal/infra/storage"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config  *infra.Config
	Storage *storage.Storage
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization (config, logger, journal)
func (b *Bootstrap) Initialize() error {
	slog.Info("🚀 Bootstrapping DepthGo...")

	// 1. Load Config
	cfg, err := infra.LoadConfig("configs/config.yaml")
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	// 3. Trade journal (optional)
	if cfg.Journal.Enabled {
		store, err := storage.NewStorage()
		if err != nil {
			return err
		}
		b.Storage = store
		slog.Info("✅ Trade journal initialized")
	}

	// 4. Pre-warm event pools before the feeds start bursting
	event.Warmup()

	return nil
}
