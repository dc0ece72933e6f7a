package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config keeps runtime settings for the planner service.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Auth     AuthConfig     `koanf:"auth"`
	Board    BoardConfig    `koanf:"board"`
}

type ServerConfig struct {
	Addr string `koanf:"addr"`
}

type DatabaseConfig struct {
	URL string `koanf:"url"`
}

type AuthConfig struct {
	JWTSecret string `koanf:"jwt_secret"`
}

type BoardConfig struct {
	// RefreshIntervalSeconds drives the background re-classification poll.
	RefreshIntervalSeconds int `koanf:"refresh_interval"`
}

// RefreshInterval returns the poll interval as a duration.
func (c BoardConfig) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"server": map[string]interface{}{
			"addr": ":8000",
		},
		"database": map[string]interface{}{
			"url": "taskplanner.db",
		},
		"auth": map[string]interface{}{
			"jwt_secret": "",
		},
		"board": map[string]interface{}{
			"refresh_interval": 60,
		},
	}
}

// Load reads configuration in layers: built-in defaults, then an optional
// YAML file, then TASKPLANNER_-prefixed environment variables
// (TASKPLANNER_AUTH_JWT_SECRET maps to auth.jwt_secret).
func Load(configPath string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider("TASKPLANNER_", ".", func(s string) string {
		return strings.Replace(
			strings.ToLower(strings.TrimPrefix(s, "TASKPLANNER_")), "_", ".", 1)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate enforces the settings the service cannot run without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("auth.jwt_secret is required (set TASKPLANNER_AUTH_JWT_SECRET)")
	}
	if c.Board.RefreshIntervalSeconds <= 0 {
		return fmt.Errorf("board.refresh_interval must be positive")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}
