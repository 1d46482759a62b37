package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"tvnav/internal/input"
)

func newKeysCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Show terminal bindings and remote key codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeKeys(cmd.OutOrStdout())
		},
	}
}

func writeKeys(w io.Writer) error {
	heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))

	terminal := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("KEYS", "DOES")
	for _, group := range input.DefaultKeyMap().FullHelp() {
		for _, b := range group {
			h := b.Help()
			if h.Key == "" {
				continue
			}
			terminal.Row(h.Key, h.Desc)
		}
	}

	remote := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("CODE", "KEY", "OP")
	for _, m := range input.RemoteKeys() {
		remote.Row(fmt.Sprint(m.Code), m.Name, string(m.Op))
	}

	var b strings.Builder
	b.WriteString(heading.Render("Terminal") + "\n")
	b.WriteString(terminal.String() + "\n\n")
	b.WriteString(heading.Render("Remote") + "\n")
	b.WriteString(remote.String() + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}
