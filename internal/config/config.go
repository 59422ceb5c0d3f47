package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/Mshel/pacagents/internal/agent"
	"github.com/Mshel/pacagents/internal/game"
)

// EnvPrefix namespaces every environment override, e.g. PACMAN_AGENT.
const EnvPrefix = "PACMAN"

// Config holds everything the pacman binary can be told.
type Config struct {
	// Episode setup
	Agent      string `mapstructure:"agent"`
	Layout     string `mapstructure:"layout"`
	Ghosts     string `mapstructure:"ghosts"`
	Seed       uint64 `mapstructure:"seed"`
	ScriptPath string `mapstructure:"script"`

	// Batch runs
	Episodes int `mapstructure:"episodes"`
	Workers  int `mapstructure:"workers"`
	MaxTicks int `mapstructure:"max_ticks"`

	// Viewer
	TickDuration time.Duration `mapstructure:"tick_duration"`

	// Storage
	DBPath string `mapstructure:"db"`

	// SSH server
	ListenAddr          string `mapstructure:"listen"`
	HostKeyPath         string `mapstructure:"host_key"`
	MaxConnectionsPerIP int    `mapstructure:"max_connections_per_ip"`

	LogLevel string `mapstructure:"log_level"`
}

func Default() *Config {
	return &Config{
		Agent:               "hungry",
		Layout:              "smallClassic",
		Ghosts:              "random",
		Seed:                1,
		Episodes:            10,
		Workers:             game.DefaultWorkers,
		MaxTicks:            game.DefaultMaxTicks,
		TickDuration:        100 * time.Millisecond,
		DBPath:              "pacman.db",
		ListenAddr:          "0.0.0.0:6996",
		HostKeyPath:         ".ssh/pacman_ed25519",
		MaxConnectionsPerIP: 2,
		LogLevel:            "info",
	}
}

// Load reads v into a copy of the defaults and validates the result.
func Load(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if !slices.Contains(agent.Names(), c.Agent) {
		return fmt.Errorf("%w: %q (known: %s)", agent.ErrUnknownAgent, c.Agent, strings.Join(agent.Names(), ", "))
	}
	if c.Layout == "" {
		return errors.New("layout is required")
	}
	if _, err := game.LoadLayout(c.Layout); err != nil {
		return err
	}
	if _, err := game.GetGhostStrategy(c.Ghosts); err != nil {
		return err
	}
	if c.Episodes <= 0 {
		return errors.New("episodes must be positive")
	}
	if c.Workers <= 0 {
		return errors.New("workers must be positive")
	}
	if c.MaxTicks <= 0 {
		return errors.New("max_ticks must be positive")
	}
	if c.TickDuration <= 0 {
		return errors.New("tick_duration must be positive")
	}
	if c.MaxConnectionsPerIP <= 0 {
		return errors.New("max_connections_per_ip must be positive")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel for charmbracelet/log.
func (c *Config) Level() (log.Level, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// Script returns the Lua source named by ScriptPath, or "" when unset.
func (c *Config) Script() (string, error) {
	if c.ScriptPath == "" {
		return "", nil
	}
	source, err := os.ReadFile(c.ScriptPath)
	if err != nil {
		return "", fmt.Errorf("failed to read script: %w", err)
	}
	return string(source), nil
}

// EpisodeSpecs expands the config into Episodes specs with consecutive seeds.
func (c *Config) EpisodeSpecs() ([]game.EpisodeSpec, error) {
	script, err := c.Script()
	if err != nil {
		return nil, err
	}
	specs := make([]game.EpisodeSpec, c.Episodes)
	for i := range specs {
		specs[i] = game.EpisodeSpec{
			Agent:  c.Agent,
			Layout: c.Layout,
			Seed:   c.Seed + uint64(i),
			Script: script,
			Ghosts: c.Ghosts,
		}
	}
	return specs, nil
}
