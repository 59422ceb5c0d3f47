package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Mshel/pacagents/internal/game"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play a batch of episodes headless and print the results",
	RunE:  runBatch,
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// newGameManager builds a manager that records into store when it is set.
func newGameManager(store *game.HighScoreService) *game.GameManager {
	logger := log.Default().WithPrefix("game")
	if store == nil {
		return game.NewGameManager(cfg.MaxTicks, cfg.Workers, nil, logger)
	}
	return game.NewGameManager(cfg.MaxTicks, cfg.Workers, store, logger)
}

func runBatch(cmd *cobra.Command, args []string) error {
	specs, err := cfg.EpisodeSpecs()
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Starting batch", "agent", cfg.Agent, "layout", cfg.Layout, "episodes", len(specs), "workers", cfg.Workers)
	started := time.Now()
	results, err := newGameManager(store).RunBatch(ctx, specs)
	if err != nil {
		return err
	}
	log.Info("Batch finished", "elapsed", time.Since(started).Round(time.Millisecond))

	fmt.Fprintln(cmd.OutOrStdout(), resultsTable(results))
	fmt.Fprintln(cmd.OutOrStdout(), summarize(results))
	return nil
}

func resultsTable(results []game.Result) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Seed", "Outcome", "Score", "Ticks", "Food left").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, r := range results {
		t.Row(strconv.FormatUint(r.Seed, 10), r.Outcome.String(), strconv.Itoa(r.Score),
			strconv.Itoa(r.Ticks), strconv.Itoa(r.FoodLeft))
	}
	return t.Render()
}

func summarize(results []game.Result) string {
	if len(results) == 0 {
		return "no episodes"
	}
	wins, total := 0, 0
	for _, r := range results {
		total += r.Score
		if r.Won() {
			wins++
		}
	}
	return fmt.Sprintf("%d/%d won, average score %.1f", wins, len(results), float64(total)/float64(len(results)))
}
