package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/kavia-common/netdevice-api/config"
	"github.com/kavia-common/netdevice-api/db"
	"github.com/kavia-common/netdevice-api/ping"
	"github.com/kavia-common/netdevice-api/web"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", "netdevice-api")
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error on startup", "error", err)
		os.Exit(1)
	}
	slog.Info("config loaded", "db", cfg.DBName, "collection", cfg.CollectionName)

	store, err := db.New(cfg)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	if err := store.Init(); err != nil {
		slog.Error("failed to ensure indexes", "error", err)
		os.Exit(1)
	}

	srv := web.New(store, ping.NewExecProber(), cfg)
	err = srv.Serve()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if closeErr := store.Close(ctx); closeErr != nil {
		slog.Error("failed to close database connection", "error", closeErr)
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
