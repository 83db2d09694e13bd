package main

import (
	"context"
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/HerbHall/collegefinder/internal/auth"
	"github.com/HerbHall/collegefinder/internal/colleges"
	"github.com/HerbHall/collegefinder/internal/config"
	"github.com/HerbHall/collegefinder/internal/plugin"
	"github.com/HerbHall/collegefinder/internal/server"
	"github.com/HerbHall/collegefinder/internal/settings"
	"github.com/HerbHall/collegefinder/internal/store"
	"github.com/HerbHall/collegefinder/internal/version"
)

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("CollegeFinder server starting", zap.String("version", version.Short()))

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	dbPath := cfg.GetString("database.path")
	db, err := store.Open(context.Background(), dbPath, store.Options{
		BusyTimeout: cfg.GetDuration("database.busy_timeout"),
		CacheKiB:    cfg.GetInt("database.cache_kib"),
	})
	if err != nil {
		logger.Fatal("failed to open database", zap.String("path", dbPath), zap.Error(err))
	}
	defer db.Close()

	// Create plugin registry
	registry := plugin.NewRegistry(logger)

	authMod := auth.New(time.Now)
	plugins := []plugin.Plugin{
		authMod,
		settings.New(),
		colleges.New(),
	}
	for _, p := range plugins {
		if err := registry.Register(p); err != nil {
			logger.Fatal("failed to register plugin", zap.Error(err))
		}
		name := p.Info().Name
		if key := "plugins." + name + ".enabled"; cfg.IsSet(key) && !cfg.GetBool(key) {
			registry.Disable(name)
		}
	}
	if err := registry.Validate(); err != nil {
		logger.Fatal("invalid plugin configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize all plugins
	err = registry.InitAll(ctx, func(name string) plugin.Dependencies {
		return plugin.Dependencies{
			Config: cfg,
			Logger: logger.Named(name),
			Store:  db,
		}
	})
	if err != nil {
		logger.Fatal("failed to initialize plugins", zap.Error(err))
	}

	if err := registry.StartAll(ctx); err != nil {
		logger.Fatal("failed to start plugins", zap.Error(err))
	}

	addr := net.JoinHostPort(cfg.GetString("server.host"), cfg.GetString("server.port"))
	srv := server.New(addr, registry, logger,
		server.WithMiddleware(authMod.Middleware),
		server.WithPinger(db),
	)

	// Start server in background
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("CollegeFinder server ready", zap.String("addr", addr))

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	registry.StopAll(shutdownCtx)
	if err := db.Checkpoint(shutdownCtx); err != nil {
		logger.Warn("final WAL checkpoint failed", zap.Error(err))
	}

	logger.Info("CollegeFinder server stopped")
}
