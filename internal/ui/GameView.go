package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Mshel/pacagents/internal/agent"
	"github.com/Mshel/pacagents/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

type GameState int

const (
	StatePlaying GameState = iota
	StateGameOver
	StateLeaderboard
)

var (
	mapViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2)

	wallStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("21")).Render("█")
	voidStyle    = " "
	foodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("223")).Render("·")
	capsuleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("223")).Bold(true).Render("●")
	pacmanStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	ghostStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("ᗣ")
	scaredStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Render("ᗣ")

	headRunes = map[agent.Direction]rune{
		agent.North: '▲',
		agent.South: '▼',
		agent.West:  '◀',
		agent.East:  '▶',
		agent.Stop:  '●',
	}
)

const (
	minTickDuration = 10 * time.Millisecond
	maxTickDuration = 2 * time.Second
)

// episodeTickMsg advances the episode shown by the view that scheduled it.
// Ticks from an earlier generation belong to a timer that pause or resume
// has replaced.
type episodeTickMsg struct {
	episode    *game.Episode
	generation int
}

// QuitGameMsg asks the controller to return to the intro screen.
type QuitGameMsg struct{}

// GameViewModel replays one episode tick by tick, then shows its result.
type GameViewModel struct {
	ScreenWidth  int
	ScreenHeight int
	gameManager  *game.GameManager
	episode      *game.Episode // nil when only the leaderboard is shown
	tickDuration time.Duration
	paused       bool
	generation   int

	gameState     GameState
	gameOverState GameOverState
}

func NewGameModel(gm *game.GameManager, scores *game.HighScoreService, episode *game.Episode, tickDuration time.Duration, screenWidth int, screenHeight int) GameViewModel {
	if tickDuration <= 0 {
		tickDuration = 100 * time.Millisecond
	}
	return GameViewModel{
		gameManager:  gm,
		episode:      episode,
		tickDuration: tickDuration,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		gameState:    StatePlaying,
		gameOverState: GameOverState{
			Scores:       scores,
			ScreenWidth:  screenWidth,
			ScreenHeight: screenHeight,
		},
	}
}

func (m GameViewModel) Init() tea.Cmd {
	if m.episode == nil {
		return nil
	}
	return m.nextTick()
}

func (m GameViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth, m.ScreenHeight = msg.Width, msg.Height
		m.gameOverState.ScreenWidth, m.gameOverState.ScreenHeight = msg.Width, msg.Height
		return m, nil

	case ShowLeaderboardMsg:
		m.gameState = StateLeaderboard
		m.gameOverState.loadLeaderboard()
		return m, nil

	case episodeTickMsg:
		if msg.episode != m.episode || msg.generation != m.generation || m.gameState != StatePlaying || m.paused {
			return m, nil
		}
		m = m.advance()
		if m.gameState != StatePlaying {
			return m, nil
		}
		return m, m.nextTick()

	case tea.KeyMsg:
		if m.gameState == StateGameOver || m.gameState == StateLeaderboard {
			return m.updateGameOver(msg)
		}

		switch msg.String() {
		case " ", "p":
			m.paused = !m.paused
			m.generation++
			if !m.paused {
				return m, m.nextTick()
			}
		case "n":
			if m.paused {
				m = m.advance()
			}
		case "+", "=":
			m.tickDuration = max(minTickDuration, m.tickDuration/2)
		case "-":
			m.tickDuration = min(maxTickDuration, m.tickDuration*2)
		case "esc":
			return m, func() tea.Msg { return QuitGameMsg{} }
		}
		return m, nil
	}

	return m, nil
}

func (m GameViewModel) updateGameOver(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.gameState == StateLeaderboard && m.episode != nil {
			m.gameState = StateGameOver
			return m, nil
		}
		return m, func() tea.Msg { return QuitGameMsg{} }
	case "left", "h":
		if m.gameState == StateGameOver {
			m.gameOverState.SelectedButton = max(0, m.gameOverState.SelectedButton-1)
		}
	case "right", "l":
		if m.gameState == StateGameOver {
			m.gameOverState.SelectedButton = min(2, m.gameOverState.SelectedButton+1)
		}
	case "enter":
		switch m.gameState {
		case StateGameOver:
			switch m.gameOverState.SelectedButton {
			case 0:
				return m, tea.Quit
			case 1:
				m.gameState = StateLeaderboard
				m.gameOverState.loadLeaderboard()
			default:
				return m, func() tea.Msg { return QuitGameMsg{} }
			}
		case StateLeaderboard:
			if m.episode != nil {
				m.gameState = StateGameOver
				return m, nil
			}
			return m, func() tea.Msg { return QuitGameMsg{} }
		}
	}
	return m, nil
}

// advance plays one tick and switches to the game over screen once the
// episode has ended.
func (m GameViewModel) advance() GameViewModel {
	if err := m.episode.Step(); err != nil {
		log.Error("Episode step failed", "error", err)
		m.gameOverState.Err = err
	}
	if !m.episode.Done() && m.gameOverState.Err == nil {
		return m
	}

	result := m.episode.Result()
	m.gameOverState.Result = result
	if m.gameManager != nil && m.gameOverState.Err == nil {
		if err := m.gameManager.Record(context.Background(), result); err != nil {
			log.Error("Could not record result", "agent", result.Agent, "error", err)
		}
	}
	m.gameState = StateGameOver
	m.gameOverState.SelectedButton = 0
	return m
}

func (m GameViewModel) nextTick() tea.Cmd {
	episode, generation := m.episode, m.generation
	return tea.Tick(m.tickDuration, func(time.Time) tea.Msg {
		return episodeTickMsg{episode: episode, generation: generation}
	})
}

func (m GameViewModel) View() string {
	if m.gameState == StateGameOver {
		return m.gameOverState.RenderGameOverScreen()
	}
	if m.gameState == StateLeaderboard {
		return m.gameOverState.RenderLeaderboardScreen()
	}
	if m.episode == nil {
		return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, "Waiting for game manager...")
	}

	state := m.episode.State()
	return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Top,
			mapViewStyle.Render(renderMap(state)),
			statusPanelStyle.Render(m.renderStatusPanel(state)),
		))
}

// renderMap draws the maze with north at the top.
func renderMap(state *game.State) string {
	layout := state.Layout()
	pacman := state.Position()

	var sb strings.Builder
	for y := layout.Height - 1; y >= 0; y-- {
		for x := 0; x < layout.Width; x++ {
			p := agent.Position{X: x, Y: y}
			if p == pacman {
				sb.WriteString(pacmanStyle.Render(string(headRunes[state.PacmanDirection()])))
				continue
			}
			if present, scared := state.GhostAt(p); present {
				if scared {
					sb.WriteString(scaredStyle)
				} else {
					sb.WriteString(ghostStyle)
				}
				continue
			}

			switch state.Cell(p) {
			case game.WallCell:
				sb.WriteString(wallStyle)
			case game.FoodCell:
				sb.WriteString(foodStyle)
			case game.CapsuleCell:
				sb.WriteString(capsuleStyle)
			default:
				sb.WriteString(voidStyle)
			}
		}
		if y > 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (m GameViewModel) renderStatusPanel(state *game.State) string {
	result := m.episode.Result()

	var statusContent strings.Builder
	statusContent.WriteString(lipgloss.NewStyle().Bold(true).Render("--- Episode ---") + "\n")
	statusContent.WriteString(fmt.Sprintf("Agent: %s\n", result.Agent))
	statusContent.WriteString(fmt.Sprintf("Maze: %s\n", result.Layout))
	statusContent.WriteString(fmt.Sprintf("Seed: %d\n", result.Seed))
	statusContent.WriteString(fmt.Sprintf("Score: %d\n", state.Score()))
	statusContent.WriteString(fmt.Sprintf("Ticks: %d\n", state.Ticks()))
	statusContent.WriteString(fmt.Sprintf("Food left: %d\n", state.FoodLeft()))
	statusContent.WriteString(fmt.Sprintf("Heading: %s\n", state.PacmanDirection()))
	if m.paused {
		statusContent.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("PAUSED") + "\n")
	}

	statusContent.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("--- Controls ---") + "\n")
	statusContent.WriteString("Space: Pause\n")
	statusContent.WriteString("N: Step while paused\n")
	statusContent.WriteString(fmt.Sprintf("+/-: Speed (%s)\n", m.tickDuration))
	statusContent.WriteString("Esc: Menu, Q: Quit\n")

	return statusContent.String()
}
