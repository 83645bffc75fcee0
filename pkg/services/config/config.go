// Package config loads service settings from the environment and export
// destinations from an INI profile file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerHost        string        `mapstructure:"SERVER_HOST"`
	ServerPort        int           `mapstructure:"SERVER_PORT"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	CORSOrigins       []string      `mapstructure:"-"`
	AuditDBPath       string        `mapstructure:"AUDIT_DB_PATH"`
	DestinationsPath  string        `mapstructure:"DESTINATIONS_PATH"`
	ExportDestination string        `mapstructure:"EXPORT_DESTINATION"`
	ShutdownTimeout   time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

var defaults = map[string]any{
	"SERVER_HOST":        "0.0.0.0",
	"SERVER_PORT":        8000,
	"LOG_LEVEL":          "info",
	"CORS_ORIGINS":       "http://localhost:5173,http://127.0.0.1:5173",
	"AUDIT_DB_PATH":      "",
	"DESTINATIONS_PATH":  "",
	"EXPORT_DESTINATION": "",
	"SHUTDOWN_TIMEOUT":   "10s",
}

// Load reads the given .env files (".env" when none are given; missing files
// are skipped) and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.CORSOrigins = splitList(v.GetString("CORS_ORIGINS"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("invalid SERVER_PORT %d", c.ServerPort)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid SHUTDOWN_TIMEOUT %s", c.ShutdownTimeout)
	}
	if c.ExportDestination != "" && c.DestinationsPath == "" {
		return fmt.Errorf("EXPORT_DESTINATION %q requires DESTINATIONS_PATH", c.ExportDestination)
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
