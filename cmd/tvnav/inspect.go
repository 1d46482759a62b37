package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"tvnav/internal/config"
	"tvnav/internal/domain"
	"tvnav/internal/logic"
	"tvnav/internal/scan"
)

func newInspectCmd(a *app) *cobra.Command {
	var html bool

	cmd := &cobra.Command{
		Use:   "inspect PAGE",
		Short: "List a page's focusable elements in navigation order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session := logic.NewSession(logic.Options{Config: a.cfg, Logger: a.logger})
			defer session.Close()
			if err := session.Open(args[0]); err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			if html {
				return writeMarkedHTML(cmd.OutOrStdout(), a.cfg, session)
			}
			return writeInspect(cmd.OutOrStdout(), session)
		},
	}
	cmd.Flags().BoolVar(&html, "html", false, "Print the page with initial focus marked instead of the table")
	return cmd
}

// writeMarkedHTML prints the page as a browser would show it after initial focus
func writeMarkedHTML(w io.Writer, cfg *config.Config, session *logic.Session) error {
	scope, err := scan.NewFileScope(session.Page(), cfg.Scan.ContainerSelector)
	if err != nil {
		return err
	}
	doc, err := scope.Load()
	if err != nil {
		return err
	}
	if cur, ok := session.Engine().Current(); ok {
		if _, err := doc.MarkFocus(cfg.Scan.FocusableSelector, cur.ID, cfg.UISettings.FocusClass); err != nil {
			return err
		}
	}
	out, err := doc.HTML()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func writeInspect(w io.Writer, session *logic.Session) error {
	engine := session.Engine()
	focused := ""
	if cur, ok := engine.Current(); ok {
		focused = cur.ID
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	heading := filepath.Base(session.Page())
	if session.Title() != "" {
		heading = session.Title() + "  " + dim.Render(heading)
	}
	if _, err := fmt.Fprintln(w, title.Render(heading)); err != nil {
		return err
	}

	elements := engine.Elements()
	if len(elements) == 0 {
		_, err := fmt.Fprintln(w, dim.Render("No focusable elements."))
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "ID", "LABEL", "GROUP", "ORDER", "GRID", "RECT", "ACTION", "HREF")
	for _, d := range elements {
		marker := ""
		if d.ID == focused {
			marker = "▶"
		}
		t.Row(marker, d.ID, d.Label, d.Group, strconv.Itoa(d.Order), grid(d), rect(d), d.Action, d.Href)
	}
	if _, err := fmt.Fprintln(w, t.String()); err != nil {
		return err
	}

	if order := engine.GroupOrder(); len(order) > 0 {
		_, err := fmt.Fprintln(w, dim.Render("groups: "+strings.Join(order, " → ")))
		return err
	}
	return nil
}

func grid(d domain.Descriptor) string {
	if !d.HasGrid() {
		return ""
	}
	row, col := d.GridPos()
	return fmt.Sprintf("%d,%d", row, col)
}

func rect(d domain.Descriptor) string {
	if d.Geometry == nil {
		return ""
	}
	r := d.Geometry
	return fmt.Sprintf("%g,%g %gx%g", r.X, r.Y, r.Width, r.Height)
}
