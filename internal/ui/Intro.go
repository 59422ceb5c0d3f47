package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// IntroModel holds the state for the main menu.
type IntroModel struct {
	selected int // 0: Watch an agent, 1: View Leaderboard
	width    int
	height   int
}

func NewIntroModel(w, h int) IntroModel {
	return IntroModel{selected: 0, width: w, height: h}
}

func (m IntroModel) Init() tea.Cmd { return nil }

func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "right", "l", "tab":
			m.selected = 1 - m.selected
		case "enter":
			return m, func() tea.Msg { return IntroSubmitMsg(m.selected) }
		}
	}
	return m, nil
}

var pacmanAscii = `
   ██████             ██████     ███████  ███████  █████  
 ██████████          ████████   ██ ██ ██ ██ ██ ██ ██   ██ 
████████       ██   ██████████  ███████  ███████  ███████ 
██████        ████  ██ ██ ██ █  ███████  ███████  ███████ 
████████       ██   ██████████  ██ █ ██  ██ █ ██  ██ █ ██ 
 ██████████          █ █  █ █                             
   ██████                                                 
`

var (
	asciiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226"))

	introButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Padding(0, 3).
				Margin(1, 2).
				Border(lipgloss.RoundedBorder())

	introSelectedButtonStyle = introButtonStyle.
					Background(lipgloss.Color("226")).
					Foreground(lipgloss.Color("0"))
)

func (m IntroModel) View() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(asciiStyle.Render(pacmanAscii))
	sb.WriteString("\n")

	watch := introButtonStyle.Render("Watch an Agent")
	leaderboard := introButtonStyle.Render("View Leaderboard")

	if m.selected == 0 {
		watch = introSelectedButtonStyle.Render("Watch an Agent")
	} else {
		leaderboard = introSelectedButtonStyle.Render("View Leaderboard")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, watch, leaderboard)
	content := lipgloss.JoinVertical(lipgloss.Center, sb.String(), buttons)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}
