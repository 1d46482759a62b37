package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Page          lipgloss.Style
	Dim           lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	GroupHeader   lipgloss.Style
	ActiveGroup   lipgloss.Style
	Card          lipgloss.Style
	FocusedCard   lipgloss.Style
	Action        lipgloss.Style
	InfoBox       lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Page: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Dim:  lipgloss.NewStyle().Faint(true),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		GroupHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")),
		ActiveGroup: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1).
			MarginRight(1),
		FocusedCard: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("212")).
			Foreground(lipgloss.Color("226")).
			Bold(true).
			Padding(0, 1).
			MarginRight(1),
		Action: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color("241")),
		StatusInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}
