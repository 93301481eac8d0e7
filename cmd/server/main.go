package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/adtran-import/internal/config"
	"github.com/JonMunkholm/adtran-import/internal/core"
	_ "github.com/JonMunkholm/adtran-import/internal/core/devices" // Register the Adtran catalog
	"github.com/JonMunkholm/adtran-import/internal/logging"
	"github.com/JonMunkholm/adtran-import/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"max_file_size", cfg.Upload.MaxFileSize,
		"max_concurrent", cfg.Upload.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"require_api_key", cfg.Security.RequireAPIKey,
	)

	if core.DeviceCount() == 0 {
		slog.Error("device catalog is empty")
		os.Exit(1)
	}
	slog.Info("device catalog loaded", "count", core.DeviceCount())
	for _, d := range core.Devices() {
		slog.Debug("device", "id", d.ID, "profile", d.Profile)
	}

	service := core.NewService(cfg.Upload)
	server := web.NewServer(service, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	err = server.Run(ctx, func(shutdownCtx context.Context) {
		slog.Info("shutting down...")
		if status := service.LimiterStatus(); status.Active > 0 {
			slog.Info("waiting for conversions to complete", "active", status.Active)
			if err := service.WaitForConversions(shutdownCtx); err != nil {
				slog.Warn("conversions did not complete in time", "error", err)
			} else {
				slog.Info("all conversions completed")
			}
		}
	})
	if err != nil {
		slog.Error("server error", "error", err)
		stop()
		os.Exit(1)
	}
	slog.Info("server stopped")
}
