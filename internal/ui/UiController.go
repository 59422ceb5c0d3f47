package ui

import (
	"time"

	"github.com/Mshel/pacagents/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type Screen int

const (
	IntroScreen Screen = iota
	SetupScreen
	GameScreen
)

// Messages for state transitions
type IntroSubmitMsg int // 0 to watch an agent, 1 for the leaderboard
type SetupSubmitMsg struct {
	Spec game.EpisodeSpec
}

type ShowLeaderboardMsg struct{}

// Defaults preselects the setup form and paces the replay.
type Defaults struct {
	Agent        string
	Layout       string
	Ghosts       string
	Seed         uint64
	Script       string
	TickDuration time.Duration
}

type ControllerModel struct {
	CurrentScreen Screen
	GameManager   *game.GameManager
	Scores        *game.HighScoreService

	IntroModel tea.Model
	SetupModel tea.Model
	GameModel  tea.Model

	defaults     Defaults
	ScreenWidth  int
	ScreenHeight int
}

// NewControllerModel wires the screens together. scores may be nil, in
// which case the leaderboard shows as empty.
func NewControllerModel(gameManager *game.GameManager, scores *game.HighScoreService, defaults Defaults, screenWidth int, screenHeight int) ControllerModel {
	return ControllerModel{
		GameManager:   gameManager,
		Scores:        scores,
		CurrentScreen: IntroScreen,

		IntroModel: NewIntroModel(screenWidth, screenHeight),
		SetupModel: NewInitialSetupModel(defaults, screenWidth, screenHeight),

		defaults:     defaults,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case SetupScreen:
		return m.SetupModel.View()
	case GameScreen:
		if m.GameModel != nil {
			return m.GameModel.View()
		}
		return "Game Loading..."
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		// q is left to the seed input on the setup screen
		if msg.String() == "ctrl+c" || (msg.String() == "q" && m.CurrentScreen != SetupScreen) {
			return m, tea.Quit
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth, m.ScreenHeight = msg.Width, msg.Height
		m.IntroModel, _ = m.IntroModel.Update(msg)
		m.SetupModel, _ = m.SetupModel.Update(msg)
		if m.GameModel != nil {
			m.GameModel, _ = m.GameModel.Update(msg)
		}
		return m, nil

	case IntroSubmitMsg:
		if msg == 0 {
			m.CurrentScreen = SetupScreen
			return m, m.SetupModel.Init()
		} else if msg == 1 {
			m.CurrentScreen = GameScreen
			m.GameModel = NewGameModel(m.GameManager, m.Scores, nil, m.defaults.TickDuration, m.ScreenWidth, m.ScreenHeight)
			return m, tea.Sequence(m.GameModel.Init(), func() tea.Msg { return ShowLeaderboardMsg{} })
		}

	case SetupSubmitMsg:
		episode, err := m.GameManager.NewEpisode(msg.Spec)
		if err != nil {
			log.Error("Could not start episode", "agent", msg.Spec.Agent, "layout", msg.Spec.Layout, "error", err)
			m.SetupModel, cmd = m.SetupModel.Update(setupErrorMsg{err: err})
			return m, cmd
		}
		m.CurrentScreen = GameScreen
		m.GameModel = NewGameModel(m.GameManager, m.Scores, episode, m.defaults.TickDuration, m.ScreenWidth, m.ScreenHeight)
		return m, m.GameModel.Init()

	case QuitGameMsg:
		m.CurrentScreen = IntroScreen
		m.GameModel = nil
		return m, m.IntroModel.Init()

	default:
		switch m.CurrentScreen {
		case IntroScreen:
			m.IntroModel, cmd = m.IntroModel.Update(msg)
			cmds = append(cmds, cmd)
		case SetupScreen:
			m.SetupModel, cmd = m.SetupModel.Update(msg)
			cmds = append(cmds, cmd)
		case GameScreen:
			if m.GameModel != nil {
				m.GameModel, cmd = m.GameModel.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
	}

	return m, tea.Batch(cmds...)
}
