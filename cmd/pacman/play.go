package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Mshel/pacagents/internal/ui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Watch agents play in this terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := uiDefaults()
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

		p := tea.NewProgram(ui.NewControllerModel(newGameManager(store), store, defaults, 0, 0), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

func uiDefaults() (ui.Defaults, error) {
	script, err := cfg.Script()
	if err != nil {
		return ui.Defaults{}, err
	}
	return ui.Defaults{
		Agent:        cfg.Agent,
		Layout:       cfg.Layout,
		Ghosts:       cfg.Ghosts,
		Seed:         cfg.Seed,
		Script:       script,
		TickDuration: cfg.TickDuration,
	}, nil
}
