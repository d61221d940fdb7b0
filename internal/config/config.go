package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token       string        `yaml:"token"`
	SendTimeout time.Duration `yaml:"send_timeout"`
	RateLimit   int           `yaml:"rate_limit"`  // sends per window per chat
	RateWindow  time.Duration `yaml:"rate_window"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type AdminConfig struct {
	Port   int    `yaml:"port"`
	APIKey string `yaml:"api_key"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	SentTTL  time.Duration `yaml:"sent_ttl"` // daily sent-marker expiry
}

type WeatherConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type SchedulerConfig struct {
	BatchSize         int           `yaml:"batch_size"`
	BatchPause        time.Duration `yaml:"batch_pause"`
	KeepAliveInterval time.Duration `yaml:"keep_alive_interval"`
	HealthURL         string        `yaml:"health_url"`
}

type Config struct {
	Bot       BotConfig       `yaml:"bot"`
	Log       LogConfig       `yaml:"log"`
	Admin     AdminConfig     `yaml:"admin"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Weather   WeatherConfig   `yaml:"weather"`
	Scheduler SchedulerConfig `yaml:"scheduler"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Runtime.Dev = dev
	cfg.applyDefaults()

	if !dev && cfg.Bot.Token == "" {
		return nil, fmt.Errorf("bot.token is required outside dev mode")
	}
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("database.url is required")
	}
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Admin.Port == 0 {
		cfg.Admin.Port = 8080
	}
	if cfg.Bot.SendTimeout <= 0 {
		cfg.Bot.SendTimeout = 30 * time.Second
	}
	if cfg.Bot.RateLimit <= 0 {
		cfg.Bot.RateLimit = 1
	}
	if cfg.Bot.RateWindow <= 0 {
		cfg.Bot.RateWindow = time.Second
	}
	if cfg.Redis.SentTTL <= 0 {
		cfg.Redis.SentTTL = 48 * time.Hour
	}
	if cfg.Weather.Timeout <= 0 {
		cfg.Weather.Timeout = 30 * time.Second
	}
	if cfg.Scheduler.BatchSize <= 0 {
		cfg.Scheduler.BatchSize = 10
	}
	if cfg.Scheduler.BatchPause <= 0 {
		cfg.Scheduler.BatchPause = 100 * time.Millisecond
	}
	if cfg.Scheduler.KeepAliveInterval <= 0 {
		cfg.Scheduler.KeepAliveInterval = 10 * time.Minute
	}
}
