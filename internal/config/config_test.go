package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") = %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Server.Host != "localhost" {
		t.Errorf("server defaults = %s:%d, want localhost:8080", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Server.MaxFastWorkers != 100 || cfg.Server.MaxSlowWorkers != 4 {
		t.Errorf("pool defaults = %d/%d, want 100/4", cfg.Server.MaxFastWorkers, cfg.Server.MaxSlowWorkers)
	}
	if cfg.Game.MatchLength != 7 || cfg.Game.OpeningMode != "auction" || cfg.Game.UndoLimit != 20 {
		t.Errorf("game defaults = %+v", cfg.Game)
	}
	if cfg.AI.Difficulty != "normal" {
		t.Errorf("ai default = %q, want normal", cfg.AI.Difficulty)
	}
	if cfg.Redis.Enabled || cfg.NATS.Enabled {
		t.Error("optional backends enabled by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("logging default = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `server:
  host: 0.0.0.0
  port: 9090
  read_timeout: 10s
game:
  match_length: 11
  opening_mode: simple
ai:
  difficulty: hard
redis:
  enabled: true
  addr: redis:6379
  ttl: 24h
logging:
  level: debug
  development: true
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 9090 {
		t.Errorf("server = %s:%d, want 0.0.0.0:9090", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("read timeout = %v, want 10s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("write timeout = %v, want the 30s default", cfg.Server.WriteTimeout)
	}
	if cfg.Game.MatchLength != 11 || cfg.Game.OpeningMode != "simple" {
		t.Errorf("game = %+v", cfg.Game)
	}
	if cfg.AI.Difficulty != "hard" {
		t.Errorf("ai = %q, want hard", cfg.AI.Difficulty)
	}
	if !cfg.Redis.Enabled || cfg.Redis.Addr != "redis:6379" || cfg.Redis.TTL != 24*time.Hour {
		t.Errorf("redis = %+v", cfg.Redis)
	}
	if cfg.Logging.Level != "debug" || !cfg.Logging.Development {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"bad_mode.yaml":       "game:\n  opening_mode: sideways\n",
		"bad_difficulty.yaml": "ai:\n  difficulty: impossible\n",
	}
	for name, body := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("Load(%s) accepted an invalid value", name)
		}
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load(missing file) = nil error")
	}
}
