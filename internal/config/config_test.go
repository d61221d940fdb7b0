package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, `
bot:
  token: "123:abc"
database:
  url: "postgres://localhost/notify"
`)
	cfg, err := LoadConfig(path, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Fatalf("log defaults not applied: %+v", cfg.Log)
	}
	if cfg.Scheduler.BatchSize != 10 || cfg.Scheduler.BatchPause != 100*time.Millisecond {
		t.Fatalf("scheduler defaults not applied: %+v", cfg.Scheduler)
	}
	if cfg.Scheduler.KeepAliveInterval != 10*time.Minute {
		t.Fatalf("keep-alive default not applied: %+v", cfg.Scheduler)
	}
	if cfg.Redis.SentTTL != 48*time.Hour {
		t.Fatalf("sent ttl default not applied: %+v", cfg.Redis)
	}
	if cfg.Admin.Port != 8080 {
		t.Fatalf("admin port default not applied: %+v", cfg.Admin)
	}
}

func TestLoadConfig_RequiresToken(t *testing.T) {
	path := writeConfig(t, `
database:
  url: "postgres://localhost/notify"
`)
	if _, err := LoadConfig(path, false); err == nil {
		t.Fatal("want error for missing bot token")
	}
	// Dev mode runs with the noop sender, no token needed.
	if _, err := LoadConfig(path, true); err != nil {
		t.Fatalf("dev mode should not require a token: %v", err)
	}
}

func TestLoadConfig_RequiresDatabase(t *testing.T) {
	path := writeConfig(t, `
bot:
  token: "123:abc"
`)
	if _, err := LoadConfig(path, false); err == nil {
		t.Fatal("want error for missing database url")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := writeConfig(t, `
bot:
  token: "123:abc"
  rate_limit: 5
  rate_window: 2s
database:
  url: "postgres://localhost/notify"
scheduler:
  batch_size: 25
  batch_pause: 500ms
  health_url: "https://bot.example.com/health"
`)
	cfg, err := LoadConfig(path, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Scheduler.BatchSize != 25 || cfg.Scheduler.BatchPause != 500*time.Millisecond {
		t.Fatalf("overrides lost: %+v", cfg.Scheduler)
	}
	if cfg.Bot.RateLimit != 5 || cfg.Bot.RateWindow != 2*time.Second {
		t.Fatalf("bot overrides lost: %+v", cfg.Bot)
	}
	if cfg.Scheduler.HealthURL != "https://bot.example.com/health" {
		t.Fatalf("health url lost: %+v", cfg.Scheduler)
	}
}
