// Command bgserver runs the backgammon game server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/yourusername/bggame/internal/broker"
	"github.com/yourusername/bggame/internal/config"
	"github.com/yourusername/bggame/internal/logging"
	"github.com/yourusername/bggame/pkg/api"
	"github.com/yourusername/bggame/pkg/game"
	"github.com/yourusername/bggame/pkg/store"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (optional)")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("bgserver v%s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setting up logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var gameStore store.GameStore
	if cfg.Redis.Enabled {
		rs, err := store.NewRedisStore(context.Background(), store.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		}, logger)
		if err != nil {
			logger.Fatalw("connecting to redis", "addr", cfg.Redis.Addr, "error", err)
		}
		defer rs.Close()
		gameStore = rs
		logger.Infow("using redis game store", "addr", cfg.Redis.Addr)
	} else {
		fs, err := store.NewFileStore(cfg.Game.SaveDir, logger)
		if err != nil {
			logger.Fatalw("opening save directory", "dir", cfg.Game.SaveDir, "error", err)
		}
		gameStore = fs
		logger.Infow("using file game store", "dir", cfg.Game.SaveDir)
	}

	var publisher api.EventPublisher
	if cfg.NATS.Enabled {
		pub, err := broker.Connect(cfg.NATS, logger)
		if err != nil {
			logger.Fatalw("connecting to nats", "url", cfg.NATS.URL, "error", err)
		}
		defer pub.Close()
		publisher = pub
		logger.Infow("publishing events to nats", "url", cfg.NATS.URL)
	}

	openingMode := game.OpeningAuction
	if cfg.Game.OpeningMode == "simple" {
		openingMode = game.OpeningSimple
	}

	serverCfg := api.ServerConfig{
		Host:          cfg.Server.Host,
		Port:          cfg.Server.Port,
		ReadTimeout:   cfg.Server.ReadTimeout,
		WriteTimeout:  cfg.Server.WriteTimeout,
		IdleTimeout:   cfg.Server.IdleTimeout,
		MaxAIWorkers:  cfg.Server.MaxFastWorkers,
		MaxSimWorkers: cfg.Server.MaxSlowWorkers,
		Version:       version,
		Store:         gameStore,
		Publisher:     publisher,
		Defaults: api.GameDefaults{
			MatchLength:  cfg.Game.MatchLength,
			OpeningMode:  openingMode,
			UndoLimit:    cfg.Game.UndoLimit,
			AIDifficulty: cfg.AI.Difficulty,
		},
	}

	server := api.NewServer(serverCfg, logger)
	if err := server.ListenAndServeWithGracefulShutdown(); err != nil {
		logger.Fatalw("server error", "error", err)
	}
}
