package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DataPath string `env:"ANTIPODE_DATA" envDefault:"data/countries.geojson"`
	FPS      int    `env:"ANTIPODE_FPS" envDefault:"60"`
	Strict   bool   `env:"ANTIPODE_STRICT" envDefault:"false"`

	LocateTimeout time.Duration `env:"ANTIPODE_LOCATE_TIMEOUT" envDefault:"8s"`
	Home          string        `env:"ANTIPODE_HOME"`
	GeoIPDB       string        `env:"ANTIPODE_GEOIP_DB"`
	GeoIPAddr     string        `env:"ANTIPODE_GEOIP_ADDR"`
	IPEchoURL     string        `env:"ANTIPODE_IP_ECHO_URL" envDefault:"https://api.ipify.org"`

	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"text"`
	LogFile   string     `env:"ANTIPODE_LOG_FILE" envDefault:"antipode.log"`

	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
}

// Load reads optional .env files, then the environment. Missing env files
// are ignored; variables already set in the environment win.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) validate() error {
	if c.FPS <= 0 || c.FPS > 240 {
		return fmt.Errorf("ANTIPODE_FPS must be in 1..240, got %d", c.FPS)
	}
	if c.LocateTimeout <= 0 {
		return errors.New("ANTIPODE_LOCATE_TIMEOUT must be positive")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// FrameInterval is the pointer coalescing period.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}
