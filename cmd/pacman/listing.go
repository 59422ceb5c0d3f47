package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Mshel/pacagents/internal/agent"
	"github.com/Mshel/pacagents/internal/game"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List agents, layouts and ghost strategies",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Agents:")
		for _, name := range agent.Names() {
			fmt.Fprintln(out, "  "+name)
		}
		fmt.Fprintln(out, "Layouts:")
		for _, name := range game.LayoutNames() {
			fmt.Fprintln(out, "  "+name)
		}
		fmt.Fprintln(out, "Ghosts:")
		for _, name := range game.GhostStrategyNames() {
			fmt.Fprintln(out, "  "+name)
		}
	},
}

var scoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best recorded episodes and per-agent summaries",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		if store == nil {
			return fmt.Errorf("no database configured")
		}
		defer store.Close()

		ctx := cmd.Context()
		scores, err := store.GetHighScores(ctx, scoresLimit, 0)
		if err != nil {
			return err
		}
		summaries, err := store.GetAgentSummaries(ctx)
		if err != nil {
			return err
		}
		count, err := store.GetTotalScoreCount(ctx)
		if err != nil {
			return err
		}

		top := table.New().
			Border(lipgloss.RoundedBorder()).
			Headers("#", "Agent", "Layout", "Seed", "Score", "Outcome", "Ticks", "When").
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
		for i, s := range scores {
			top.Row(strconv.Itoa(i+1), s.Agent, s.Layout, strconv.FormatUint(s.Seed, 10),
				strconv.Itoa(s.Score), s.Outcome, strconv.Itoa(s.Ticks), s.CreatedAt.Local().Format("2006-01-02 15:04"))
		}

		perAgent := table.New().
			Border(lipgloss.RoundedBorder()).
			Headers("Agent", "Episodes", "Won", "Average", "Best").
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
		for _, s := range summaries {
			perAgent.Row(s.Agent, strconv.Itoa(s.Episodes), fmt.Sprintf("%.0f%%", s.WinRate()*100),
				fmt.Sprintf("%.1f", s.AverageScore), strconv.Itoa(s.BestScore))
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d episodes recorded\n", count)
		fmt.Fprintln(out, top.Render())
		fmt.Fprintln(out, perAgent.Render())
		return nil
	},
}

func init() {
	scoresCmd.Flags().IntVar(&scoresLimit, "limit", 10, "Number of episodes to show")
}
