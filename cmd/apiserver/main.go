// Package main runs the deck advisor REST API server.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rbatllet/royale-advisor/internal/api"
	"github.com/rbatllet/royale-advisor/internal/api/handlers"
	"github.com/rbatllet/royale-advisor/internal/cards"
	"github.com/rbatllet/royale-advisor/internal/config"
	"github.com/rbatllet/royale-advisor/internal/ml"
	"github.com/rbatllet/royale-advisor/internal/modelcache"
	"github.com/rbatllet/royale-advisor/internal/royale"
)

var (
	configPath = flag.String("config", defaultConfigPath(), "Path to the TOML configuration file")
	port       = flag.Int("port", 0, "API server port (overrides config)")
)

func defaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".royale-advisor", "config.toml")
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "path", *configPath, "error", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Card registry with optional hot reload.
	var index *cards.Index
	if cfg.Registry.Path != "" {
		index = cards.LoadFile(cfg.Registry.Path)
	} else {
		index = cards.LoadDefault()
	}
	registry := cards.NewProvider(index, cfg.Registry.Path)
	if cfg.Registry.Path != "" {
		go func() {
			if err := registry.Watch(ctx); err != nil {
				slog.Warn("card registry watch stopped", "error", err)
			}
		}()
	}
	if index.Degraded() {
		slog.Warn("card registry degraded, using default costs")
	}

	client := royale.NewClient(cfg.API.BaseURL, cfg.API.Token)

	trainerConfig := trainerConfigFrom(cfg)
	trainer := ml.NewTrainer(registry, trainerConfig)

	store, cleanup, err := openStore(cfg)
	if err != nil {
		slog.Error("open model cache", "backend", cfg.Cache.Backend, "error", err)
		os.Exit(1)
	}
	defer cleanup()

	models := modelcache.NewService(store, trainer, client, trainerConfig.MaxBattles)

	server := api.NewServer(
		cfg.Server.Port,
		handlers.NewDeckHandler(registry),
		handlers.NewPlayerHandler(client, registry, models, trainerConfig.MaxBattles),
		handlers.NewSystemHandler(registry),
	)
	server.Start()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
}

// trainerConfigFrom merges configured overrides onto the training defaults.
func trainerConfigFrom(cfg *config.Config) ml.TrainerConfig {
	tc := ml.DefaultTrainerConfig()
	if cfg.Trainer.Epochs > 0 {
		tc.Epochs = cfg.Trainer.Epochs
	}
	if cfg.Trainer.LearningRate > 0 {
		tc.LearningRate = cfg.Trainer.LearningRate
	}
	if cfg.Trainer.L2 > 0 {
		tc.L2 = cfg.Trainer.L2
	}
	if cfg.Trainer.MaxBattles > 0 {
		tc.MaxBattles = cfg.Trainer.MaxBattles
	}
	if cfg.Trainer.MinExamples > 0 {
		tc.MinExamples = cfg.Trainer.MinExamples
	}
	return tc
}

// openStore builds the configured model cache backend. cleanup closes any
// held resources and is safe to call once.
func openStore(cfg *config.Config) (modelcache.Store, func(), error) {
	switch cfg.Cache.Backend {
	case "sqlite":
		store, err := modelcache.NewSQLiteStore(cfg.Cache.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				slog.Error("close model cache", "error", err)
			}
		}, nil
	case "redis":
		ttl, err := cfg.GetRedisTTL()
		if err != nil {
			return nil, nil, err
		}
		client := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		store := modelcache.NewRedisStore(client, "model", ttl)
		return store, func() {
			if err := client.Close(); err != nil {
				slog.Error("close redis client", "error", err)
			}
		}, nil
	default:
		store, err := modelcache.NewFileStore(cfg.Cache.Dir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}
