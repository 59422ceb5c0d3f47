package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mshel/pacagents/internal/agent"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown agent", func(c *Config) { c.Agent = "clyde" }, "unknown agent"},
		{"missing layout", func(c *Config) { c.Layout = "" }, "layout is required"},
		{"unknown layout", func(c *Config) { c.Layout = "atlantis" }, "unknown layout"},
		{"unknown ghosts", func(c *Config) { c.Ghosts = "inky" }, "unknown ghost strategy"},
		{"no episodes", func(c *Config) { c.Episodes = 0 }, "episodes must be positive"},
		{"no workers", func(c *Config) { c.Workers = -1 }, "workers must be positive"},
		{"no ticks", func(c *Config) { c.MaxTicks = 0 }, "max_ticks must be positive"},
		{"no tick duration", func(c *Config) { c.TickDuration = 0 }, "tick_duration must be positive"},
		{"no connections", func(c *Config) { c.MaxConnectionsPerIP = 0 }, "max_connections_per_ip must be positive"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}

	cfg := Default()
	cfg.Agent = "clyde"
	assert.True(t, errors.Is(cfg.Validate(), agent.ErrUnknownAgent))
}

func TestLoad(t *testing.T) {
	v := viper.New()
	v.Set("agent", "randomish")
	v.Set("episodes", 3)
	v.Set("seed", 40)
	v.Set("tick_duration", "250ms")
	v.Set("log_level", "debug")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "randomish", cfg.Agent)
	assert.Equal(t, "smallClassic", cfg.Layout)
	assert.Equal(t, 3, cfg.Episodes)
	assert.Equal(t, uint64(40), cfg.Seed)
	assert.Equal(t, 250*time.Millisecond, cfg.TickDuration)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, level)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PACMAN_AGENT", "gowest")

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	require.NoError(t, v.BindEnv("agent"))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "gowest", cfg.Agent)
}

func TestLoad_Invalid(t *testing.T) {
	v := viper.New()
	v.Set("workers", 0)

	_, err := Load(v)
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestEpisodeSpecs(t *testing.T) {
	script := filepath.Join(t.TempDir(), "west.lua")
	require.NoError(t, os.WriteFile(script, []byte(`function chooseAction(state) return "West" end`), 0o644))

	cfg := Default()
	cfg.Agent = "scripted"
	cfg.Episodes = 3
	cfg.Seed = 7
	cfg.ScriptPath = script

	specs, err := cfg.EpisodeSpecs()
	require.NoError(t, err)
	require.Len(t, specs, 3)
	for i, spec := range specs {
		assert.Equal(t, uint64(7+i), spec.Seed)
		assert.Equal(t, "scripted", spec.Agent)
		assert.Contains(t, spec.Script, "chooseAction")
	}

	cfg.ScriptPath = filepath.Join(t.TempDir(), "missing.lua")
	_, err = cfg.EpisodeSpecs()
	assert.ErrorContains(t, err, "failed to read script")
}
