package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"depth_go/internal/app"
	"depth_go/internal/domain"
	"depth_go/internal/engine"
	"depth_go/internal/infra/btse"
	"depth_go/internal/service"
	"depth_go/internal/ui"
	"depth_go/internal/view"

	_ "net/http/pprof" // For pprof profiling
)

func main() {
	// 1. Pprof Server (for performance profiling)
	go func() {
		// Localhost only for security
		slog.Info("🕵️ Pprof server started on localhost:6060")
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			slog.Error("Pprof server failed", slog.Any("error", err))
		}
	}()

	// 2. System Bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(); err != nil {
		slog.Error("❌ Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}
	cfg := bootstrap.Config

	// 3. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Reconciliation engine (the single book writer)
	reconciler := engine.NewReconciler(1024)
	go reconciler.Run(ctx)
	slog.InfoContext(ctx, "✅ Reconciler started")

	// 5. Last-price ticker fed by the peer trade stream
	var journal service.Journal
	if bootstrap.Storage != nil {
		journal = bootstrap.Storage
	}
	ticker := service.NewTickerService(256, journal)
	go ticker.Run(ctx)

	// 6. BTSE Workers (Modular Gateways)
	bookWorker := btse.NewBookWorker(cfg.API.Btse.BookWSURL, cfg.API.Btse.Symbol, reconciler.Inbox(), reconciler.ResyncRequests())
	if err := bookWorker.Connect(ctx); err != nil {
		slog.Error("Failed to connect book feed", slog.Any("error", err))
	}
	defer bookWorker.Disconnect()
	slog.InfoContext(ctx, "✅ BookWorker started", slog.String("symbol", cfg.API.Btse.Symbol))

	tradeWorker := btse.NewTradeWorker(cfg.API.Btse.TradeWSURL, cfg.API.Btse.Symbol, ticker.Inbox())
	if err := tradeWorker.Connect(ctx); err != nil {
		slog.Error("Failed to connect trade feed", slog.Any("error", err))
	}
	defer tradeWorker.Disconnect()
	slog.InfoContext(ctx, "✅ TradeWorker started")

	// 7. Refresh scheduler drives the projector at a fixed cadence
	renderer := ui.NewRenderer(os.Stdout, true)
	scheduler := view.NewScheduler(
		time.Duration(cfg.UI.UpdateIntervalMS)*time.Millisecond,
		cfg.UI.Depth,
		reconciler.Snapshot,
		func(frame domain.DepthFrame) {
			renderer.Render(frame, ticker.LastPrice())
		},
	)
	go scheduler.Run(ctx)

	slog.InfoContext(ctx, "✨ DepthGo fully operational. Press Ctrl+C to exit.")

	// Wait for shutdown signal
	<-ctx.Done()

	slog.InfoContext(ctx, "👋 Shutting down gracefully...")
}
