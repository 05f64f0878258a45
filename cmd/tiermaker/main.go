package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/daap14/tiermaker/internal/config"
	"github.com/daap14/tiermaker/internal/console"
	"github.com/daap14/tiermaker/internal/persistence"
	"github.com/daap14/tiermaker/internal/persistence/memory"
	"github.com/daap14/tiermaker/internal/persistence/sqlite"
	"github.com/daap14/tiermaker/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	gateway, err := openGateway(cfg)
	if err != nil {
		slog.Error("failed to open storage", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	defer gateway.Close()

	st := store.New(
		store.WithHistoryCapacity(cfg.HistoryCapacity),
		store.WithGateway(gateway),
	)

	handler := console.NewHandler(console.Deps{
		Store:        st,
		Out:          os.Stdout,
		ShareBaseURL: cfg.ShareBaseURL,
	})
	router := console.NewConsoleRouter(handler)

	// A share link passed as the only argument is opened at startup.
	if len(os.Args) > 1 {
		if err := st.OpenShareLink(os.Args[1]); err != nil {
			slog.Warn("failed to load tier list from link", "error", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	prompt := ""
	if term.IsTerminal(int(os.Stdin.Fd())) {
		prompt = "tiermaker> "
		console.Render(os.Stdout, st)
	}

	consoleErr := make(chan error, 1)
	go func() {
		slog.Info("starting tier maker", "version", cfg.Version, "storage", cfg.StorageDriver, "historyCapacity", cfg.HistoryCapacity)
		consoleErr <- console.Run(ctx, os.Stdin, os.Stdout, router, prompt)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down", "signal", sig.String())
	case err := <-consoleErr:
		if err != nil {
			slog.Error("console error", "error", err)
			gateway.Close()
			os.Exit(1)
		}
	}

	slog.Info("tier maker stopped")
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

func openGateway(cfg *config.Config) (persistence.Gateway, error) {
	if cfg.StorageDriver == "memory" {
		return memory.New(), nil
	}
	return sqlite.Open(cfg.StoragePath)
}
