package ui

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Mshel/pacagents/internal/agent"
	"github.com/Mshel/pacagents/internal/game"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	focusedColor = lipgloss.Color("205")
	blurredColor = lipgloss.Color("240")
	focusedStyle = lipgloss.NewStyle().Foreground(focusedColor)
	blurredStyle = lipgloss.NewStyle().Foreground(blurredColor)
	helpStyle    = blurredStyle
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder())

	submitButtonStyle = buttonStyle.
				BorderForeground(focusedColor).
				Padding(0, 1)

	blurredButtonStyle = buttonStyle.
				BorderForeground(blurredColor).
				Padding(0, 1)
)

const (
	focusAgent = iota
	focusLayout
	focusGhosts
	focusSeed
	focusSubmit
	focusCount
)

// setupErrorMsg reports a spec the game manager refused.
type setupErrorMsg struct {
	err error
}

// chooser cycles through a fixed list of names.
type chooser struct {
	label   string
	options []string
	index   int
}

func newChooser(label string, options []string, preset string) chooser {
	return chooser{label: label, options: options, index: max(0, slices.Index(options, preset))}
}

func (c *chooser) move(step int) {
	c.index = (c.index + step + len(c.options)) % len(c.options)
}

func (c chooser) value() string {
	return c.options[c.index]
}

func (c chooser) view(focused bool) string {
	style := blurredStyle
	if focused {
		style = focusedStyle
	}
	return style.Render(fmt.Sprintf("%-8s ◀ %s ▶", c.label, c.value()))
}

// SetupModel picks the agent, maze, ghosts and seed for an episode.
type SetupModel struct {
	choosers   [3]chooser
	seedInput  textinput.Model
	focusIndex int
	script     string
	err        error
	width      int
	height     int
}

func NewInitialSetupModel(defaults Defaults, w, h int) SetupModel {
	ti := textinput.New()
	ti.Placeholder = "seed"
	ti.CharLimit = 20
	ti.SetValue(strconv.FormatUint(defaults.Seed, 10))
	ti.PromptStyle = focusedStyle
	ti.TextStyle = focusedStyle

	return SetupModel{
		choosers: [3]chooser{
			newChooser("Agent", agent.Names(), defaults.Agent),
			newChooser("Maze", game.LayoutNames(), defaults.Layout),
			newChooser("Ghosts", game.GhostStrategyNames(), defaults.Ghosts),
		},
		seedInput: ti,
		script:    defaults.Script,
		width:     w,
		height:    h,
	}
}

func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Spec reads the form. It fails only when the seed is not a number.
func (m SetupModel) Spec() (game.EpisodeSpec, error) {
	seed, err := strconv.ParseUint(strings.TrimSpace(m.seedInput.Value()), 10, 64)
	if err != nil {
		return game.EpisodeSpec{}, errors.New("seed must be a non-negative integer")
	}
	return game.EpisodeSpec{
		Agent:  m.choosers[focusAgent].value(),
		Layout: m.choosers[focusLayout].value(),
		Ghosts: m.choosers[focusGhosts].value(),
		Seed:   seed,
		Script: m.script,
	}, nil
}

func (m SetupModel) setFocus(index int) SetupModel {
	m.focusIndex = (index + focusCount) % focusCount
	if m.focusIndex == focusSeed {
		m.seedInput.Focus()
	} else {
		m.seedInput.Blur()
	}
	return m
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case setupErrorMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		s := msg.String()
		switch s {
		case "tab", "down":
			return m.setFocus(m.focusIndex + 1), nil
		case "shift+tab", "up":
			return m.setFocus(m.focusIndex - 1), nil
		case "enter":
			if m.focusIndex != focusSubmit {
				return m.setFocus(m.focusIndex + 1), nil
			}
			spec, err := m.Spec()
			if err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			return m, func() tea.Msg { return SetupSubmitMsg{Spec: spec} }
		}

		if m.focusIndex < focusSeed {
			switch s {
			case "left":
				m.choosers[m.focusIndex].move(-1)
			case "right":
				m.choosers[m.focusIndex].move(1)
			}
			return m, nil
		}

		if m.focusIndex == focusSeed {
			var cmd tea.Cmd
			m.seedInput, cmd = m.seedInput.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SetupModel) View() string {
	center := func(s string) string {
		return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(s)
	}

	var b strings.Builder
	for i, c := range m.choosers {
		b.WriteString(center(c.view(m.focusIndex == i)))
		b.WriteString("\n\n")
	}

	seedLabel := blurredStyle.Render("Seed")
	if m.focusIndex == focusSeed {
		seedLabel = focusedStyle.Render("Seed")
	}
	b.WriteString(center(seedLabel + " " + m.seedInput.View()))
	b.WriteString("\n\n")

	submitText := "Start"
	submitButton := blurredButtonStyle.Render(submitText)
	if m.focusIndex == focusSubmit {
		submitButton = submitButtonStyle.Render(submitText)
	}
	b.WriteString(center(submitButton))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(center(errorStyle.Render(m.err.Error())))
		b.WriteString("\n\n")
	}

	b.WriteString(center(helpStyle.Render("(left/right to change, tab/arrows to navigate, enter to confirm, ctrl+c to quit)")))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
