package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/courtmetrics/echelon/internal/pareto"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Events   EventsConfig   `yaml:"events"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type EventsConfig struct {
	URL string `yaml:"url"`
}

// ModeConfig declares one analysis mode: a named, ordered dimension list.
// Dimension order is the index order of every stored performance vector for
// the mode. Dimensions where lower is better must be loaded negated.
type ModeConfig struct {
	Name       string   `yaml:"name"`
	Dimensions []string `yaml:"dimensions"`
}

type AnalysisConfig struct {
	Modes []ModeConfig `yaml:"modes"`

	// SubsetWarnThreshold emits a cost advisory when 2^d - 1 subset
	// frontiers exceed it.
	SubsetWarnThreshold int `yaml:"subset_warn_threshold"`
	// DimensionCap rejects modes with more dimensions than this.
	DimensionCap int `yaml:"dimension_cap"`
	// EliteMaxLayer bounds the elite DAG view.
	EliteMaxLayer int `yaml:"elite_max_layer"`
	// Workers is the goroutine count for subset frontier fan-out.
	Workers int `yaml:"workers"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DimensionSet converts a mode declaration into the engine's value object.
func (m ModeConfig) DimensionSet() pareto.DimensionSet {
	return pareto.DimensionSet{Name: m.Name, Dimensions: m.Dimensions}
}

// Mode looks up a configured mode by name.
func (c *Config) Mode(name string) (ModeConfig, bool) {
	for _, m := range c.Analysis.Modes {
		if m.Name == name {
			return m, true
		}
	}
	return ModeConfig{}, false
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Events: EventsConfig{
			URL: "nats://localhost:4222",
		},
		Analysis: AnalysisConfig{
			Modes: []ModeConfig{
				{Name: "playeravg", Dimensions: []string{"pts", "trb", "ast", "stl", "blk", "ws"}},
				{Name: "playeravg-core", Dimensions: []string{"pts", "trb", "ast"}},
				{Name: "gamebygame", Dimensions: []string{"pts", "trb", "ast", "stl", "blk", "fg_pct"}},
			},
			SubsetWarnThreshold: 4096,
			DimensionCap:        pareto.DefaultDimensionCap,
			EliteMaxLayer:       2,
			Workers:             4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects mode declarations the engine cannot run.
func (c *Config) Validate() error {
	if len(c.Analysis.Modes) == 0 {
		return fmt.Errorf("config: no analysis modes declared")
	}
	seen := make(map[string]struct{}, len(c.Analysis.Modes))
	for _, m := range c.Analysis.Modes {
		if m.Name == "" {
			return fmt.Errorf("config: mode with empty name")
		}
		if _, dup := seen[m.Name]; dup {
			return fmt.Errorf("config: duplicate mode %q", m.Name)
		}
		seen[m.Name] = struct{}{}
		if len(m.Dimensions) == 0 {
			return fmt.Errorf("config: mode %q has no dimensions", m.Name)
		}
		if len(m.Dimensions) > c.Analysis.DimensionCap {
			return fmt.Errorf("config: mode %q has %d dimensions, above cap %d", m.Name, len(m.Dimensions), c.Analysis.DimensionCap)
		}
		dimSeen := make(map[string]struct{}, len(m.Dimensions))
		for _, d := range m.Dimensions {
			if _, dup := dimSeen[d]; dup {
				return fmt.Errorf("config: mode %q repeats dimension %q", m.Name, d)
			}
			dimSeen[d] = struct{}{}
		}
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ECHELON_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("ECHELON_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("ECHELON_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("ECHELON_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("ECHELON_EVENTS_URL"); v != "" {
		cfg.Events.URL = v
	}
	if v := os.Getenv("ECHELON_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.Workers = n
		}
	}
	if v := os.Getenv("ECHELON_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
