// Package config loads the server configuration: YAML file, environment
// overrides (BGGAME_ prefix), and defaults, in that order of precedence
// from highest to lowest for env over file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/yourusername/bggame/internal/logging"
)

// Config is the full server configuration tree.
type Config struct {
	Server  ServerConfig   `mapstructure:"server"`
	Game    GameConfig     `mapstructure:"game"`
	AI      AIConfig       `mapstructure:"ai"`
	Redis   RedisConfig    `mapstructure:"redis"`
	NATS    NATSConfig     `mapstructure:"nats"`
	Logging logging.Config `mapstructure:"logging"`
}

// ServerConfig configures the HTTP listener and its worker pool.
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	MaxFastWorkers int           `mapstructure:"max_fast_workers"`
	MaxSlowWorkers int           `mapstructure:"max_slow_workers"`
}

// GameConfig sets the defaults new games are created with.
type GameConfig struct {
	MatchLength int    `mapstructure:"match_length"`
	OpeningMode string `mapstructure:"opening_mode"` // auction or simple
	UndoLimit   int    `mapstructure:"undo_limit"`
	SaveDir     string `mapstructure:"save_dir"`
}

// AIConfig sets the default computer opponent.
type AIConfig struct {
	Difficulty string `mapstructure:"difficulty"` // easy, normal, hard
}

// RedisConfig enables the Redis game store instead of the file store.
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// NATSConfig enables event publishing to NATS.
type NATSConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	URL           string        `mapstructure:"url"`
	MaxReconnects int           `mapstructure:"max_reconnects"`
	ReconnectWait time.Duration `mapstructure:"reconnect_wait"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.max_fast_workers", 100)
	v.SetDefault("server.max_slow_workers", 4)

	v.SetDefault("game.match_length", 7)
	v.SetDefault("game.opening_mode", "auction")
	v.SetDefault("game.undo_limit", 20)
	v.SetDefault("game.save_dir", "saves")

	v.SetDefault("ai.difficulty", "normal")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", time.Duration(0))

	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", 2*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.development", false)
}

// Load reads the config. An empty path means defaults and environment
// only; a named file that does not exist is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("BGGAME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Game.OpeningMode != "auction" && cfg.Game.OpeningMode != "simple" {
		return nil, fmt.Errorf("config: unknown opening mode %q", cfg.Game.OpeningMode)
	}
	switch cfg.AI.Difficulty {
	case "easy", "normal", "hard":
	default:
		return nil, fmt.Errorf("config: unknown AI difficulty %q", cfg.AI.Difficulty)
	}
	return &cfg, nil
}
