package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Mshel/pacagents/internal/game"
	"github.com/charmbracelet/lipgloss"
)

const leaderboardSize = 10

// GameOverState holds the data and local state for rendering the game over screens.
type GameOverState struct {
	Scores         *game.HighScoreService
	Result         game.Result
	Err            error
	SelectedButton int
	ScreenWidth    int
	ScreenHeight   int

	topScores []game.Score
	summaries []game.AgentSummary
	loadErr   error
}

var (
	gameOverButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Padding(0, 3).
				Margin(1, 1).
				Bold(true)

	selectedButtonStyle = gameOverButtonStyle.
				Background(lipgloss.Color("4")).
				Foreground(lipgloss.Color("15"))

	leaderboardHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("236")).
				Padding(0, 1).
				Align(lipgloss.Center)

	leaderboardRowStyle = lipgloss.NewStyle().
				Padding(0, 1)

	leaderboardBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(lipgloss.Color("8"))
)

var outcomeColors = map[game.Outcome]lipgloss.Color{
	game.Won:      lipgloss.Color("10"),
	game.Lost:     lipgloss.Color("9"),
	game.TimedOut: lipgloss.Color("214"),
}

// RenderGameOverScreen draws the episode result and buttons.
func (g *GameOverState) RenderGameOverScreen() string {
	messageStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(outcomeColors[g.Result.Outcome]).
		Padding(1, 5).
		Align(lipgloss.Center)

	title := messageStyle.Render(strings.ToUpper(g.Result.Outcome.String()))

	stats := fmt.Sprintf("\n%s on %s (seed %d)\nScore: %d\nTicks: %d\nFood left: %d\n",
		g.Result.Agent, g.Result.Layout, g.Result.Seed, g.Result.Score, g.Result.Ticks, g.Result.FoodLeft)
	if g.Err != nil {
		stats += errorStyle.Render("Error: "+g.Err.Error()) + "\n"
	}

	labels := []string{"EXIT (Enter)", "LEADERBOARD", "MENU"}
	buttons := make([]string, len(labels))
	for i, label := range labels {
		if i == g.SelectedButton {
			buttons[i] = selectedButtonStyle.Render(label)
		} else {
			buttons[i] = gameOverButtonStyle.Render(label)
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center, title, stats, lipgloss.JoinHorizontal(lipgloss.Center, buttons...))

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(content),
	)
}

// loadLeaderboard refreshes the stored scores shown on the leaderboard.
func (g *GameOverState) loadLeaderboard() {
	g.topScores, g.summaries, g.loadErr = nil, nil, nil
	if g.Scores == nil {
		return
	}

	ctx := context.Background()
	g.topScores, g.loadErr = g.Scores.GetHighScores(ctx, leaderboardSize, 0)
	if g.loadErr != nil {
		return
	}
	g.summaries, g.loadErr = g.Scores.GetAgentSummaries(ctx)
}

// RenderLeaderboardScreen draws the best stored episodes and a per-agent summary.
func (g *GameOverState) RenderLeaderboardScreen() string {
	var tableContent strings.Builder

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		leaderboardHeaderStyle.Width(4).Render("#"),
		leaderboardHeaderStyle.Width(12).Render("Agent"),
		leaderboardHeaderStyle.Width(15).Render("Maze"),
		leaderboardHeaderStyle.Width(8).Render("Score"),
		leaderboardHeaderStyle.Width(11).Render("Outcome"),
	)
	tableContent.WriteString(header + "\n")

	for i, score := range g.topScores {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			leaderboardRowStyle.Width(4).Render(strconv.Itoa(i+1)),
			leaderboardRowStyle.Width(12).Render(score.Agent),
			leaderboardRowStyle.Width(15).Render(score.Layout),
			leaderboardRowStyle.Width(8).Render(strconv.Itoa(score.Score)),
			leaderboardRowStyle.Width(11).Render(score.Outcome),
		)
		tableContent.WriteString(leaderboardBorderStyle.Render(row) + "\n")
	}
	if len(g.topScores) == 0 {
		tableContent.WriteString(leaderboardRowStyle.Faint(true).Render("No episodes recorded yet.") + "\n")
	}

	var summaryContent strings.Builder
	if len(g.summaries) > 0 {
		summaryContent.WriteString(lipgloss.NewStyle().Bold(true).Render("--- Agents ---") + "\n")
		for _, summary := range g.summaries {
			summaryContent.WriteString(fmt.Sprintf("%-10s %4d runs  %5.1f%% won  avg %7.1f  best %d\n",
				summary.Agent, summary.Episodes, summary.WinRate()*100, summary.AverageScore, summary.BestScore))
		}
	}
	if g.loadErr != nil {
		summaryContent.WriteString(errorStyle.Render("Could not load scores: "+g.loadErr.Error()) + "\n")
	}

	title := lipgloss.NewStyle().Bold(true).Padding(1, 0).Render("👑 LEADERBOARD 👑")
	instruction := lipgloss.NewStyle().Faint(true).Margin(1, 0).Render("Press ESC or ENTER to go back.")

	finalContent := lipgloss.JoinVertical(lipgloss.Center,
		title,
		tableContent.String(),
		summaryContent.String(),
		instruction,
	)

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(finalContent),
	)
}
