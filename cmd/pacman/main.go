package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Mshel/pacagents/internal/config"
	"github.com/Mshel/pacagents/internal/game"
)

var (
	v          = viper.New()
	cfg        *config.Config
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "pacman",
	Short: "Pacman decision agents",
	Long: `Runs reflex pacman agents through text mazes.

Episodes can be played headless in batches, watched in the terminal, or
served to remote viewers over SSH. Results are kept in a sqlite database.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	defaults := config.Default()
	flags := rootCmd.PersistentFlags()

	flags.StringVar(&configFile, "config", "", "Config file (yaml, toml or json)")

	// Episode settings
	flags.String("agent", defaults.Agent, "Agent to run")
	flags.String("layout", defaults.Layout, "Built-in layout name or path to a .lay file")
	flags.String("ghosts", defaults.Ghosts, "Ghost strategy (random, chase)")
	flags.Uint64("seed", defaults.Seed, "Seed of the first episode")
	flags.String("script", defaults.ScriptPath, "Lua script for the scripted agent")

	// Batch settings
	flags.Int("episodes", defaults.Episodes, "Episodes to run")
	flags.Int("workers", defaults.Workers, "Episodes played concurrently")
	flags.Int("max-ticks", defaults.MaxTicks, "Tick limit per episode")

	// Viewer and server
	flags.Duration("tick-duration", defaults.TickDuration, "Delay between ticks when watching")
	flags.String("db", defaults.DBPath, "Sqlite database for results (empty disables)")
	flags.String("listen", defaults.ListenAddr, "SSH listen address")
	flags.String("host-key", defaults.HostKeyPath, "SSH host key path")
	flags.Int("max-connections-per-ip", defaults.MaxConnectionsPerIP, "Concurrent SSH sessions per IP")

	flags.String("log-level", defaults.LogLevel, "Log level (debug, info, warn, error)")

	// Bind flags to viper for environment variable and config file support
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})
	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd.AddCommand(runCmd, playCmd, serveCmd, agentsCmd, scoresCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	loaded, err := config.Load(v)
	if err != nil {
		return err
	}
	cfg = loaded

	level, _ := cfg.Level()
	log.SetLevel(level)
	log.Debug("Configuration loaded", "agent", cfg.Agent, "layout", cfg.Layout, "db", cfg.DBPath)
	return nil
}

// openStore opens the result database, or returns nil when storage is off.
func openStore() (*game.HighScoreService, error) {
	if cfg.DBPath == "" {
		return nil, nil
	}
	return game.NewHighScoreService(cfg.DBPath)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
