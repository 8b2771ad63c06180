package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
		// AdminDSN is the elevated-credentials connection used for match
		// writes that bypass row-level grants. Falls back to DSN when empty.
		AdminDSN string `yaml:"admin_url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Matching MatchingConfig `yaml:"matching"`

	Payment struct {
		WebhookSecret string `yaml:"webhook_secret"`
	} `yaml:"payment"`
}

// MatchingConfig holds the search-resolver tunables. The fallback threshold
// and score were magic constants historically; they are config now.
type MatchingConfig struct {
	MaxResults           int `yaml:"max_results"`
	FallbackMinResults   int `yaml:"fallback_min_results"`
	FallbackScorePercent int `yaml:"fallback_score_percent"`
}

// Load reads config.yaml, or falls back to environment variables when
// DATABASE_URL is set (CI / test mode).
func Load() (*Config, error) {
	var cfg Config

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Database.DSN = dbURL
		cfg.Database.AdminDSN = os.Getenv("DATABASE_ADMIN_URL")
		cfg.Server.Env = os.Getenv("SERVER_ENV")
		cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
		cfg.JWT.TTL = 60
		cfg.Payment.WebhookSecret = os.Getenv("PAYMENT_WEBHOOK_SECRET")
		cfg.applyDefaults()
		return &cfg, nil
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	f, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("open config file %s: %w", configPath, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", configPath, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 4000
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.JWT.TTL == 0 {
		c.JWT.TTL = 60
	}
	if c.Matching.MaxResults == 0 {
		c.Matching.MaxResults = 50
	}
	if c.Matching.FallbackMinResults == 0 {
		c.Matching.FallbackMinResults = 6
	}
	if c.Matching.FallbackScorePercent == 0 {
		c.Matching.FallbackScorePercent = 33
	}
}
