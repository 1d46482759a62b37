package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tvnav/internal/domain"
	"tvnav/internal/eventbus"
	"tvnav/internal/focus"
	"tvnav/internal/ui"
)

func newRunCmd(a *app) *cobra.Command {
	var watchPage, spatial bool

	cmd := &cobra.Command{
		Use:   "run PAGE",
		Short: "Navigate a page interactively in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("watch") {
				a.cfg.UISettings.Watch = watchPage
			}
			if cmd.Flags().Changed("spatial") {
				a.cfg.Navigation.Spatial = spatial
			}
			return runInteractive(a, args[0])
		},
	}
	cmd.Flags().BoolVarP(&watchPage, "watch", "w", false, "Rescan when the page file changes")
	cmd.Flags().BoolVar(&spatial, "spatial", false, "Use data-rect geometry for directional moves")
	return cmd
}

func runInteractive(a *app, page string) error {
	bus := eventbus.New(a.logger)
	actions := focus.NewActionRegistry()

	model := ui.NewModel(a.cfg, bus, actions, a.logger)
	defer model.Close()

	// a page can offer a refresh button with data-action="rescan"
	actions.Register("rescan", func(domain.Descriptor) error {
		model.Session().Rescan()
		return nil
	})

	if err := model.Open(page); err != nil {
		return fmt.Errorf("failed to open %s: %w", page, err)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(p)

	a.logger.Info("starting UI", zap.String("page", page))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	a.logger.Info("UI exited normally")
	return nil
}
