package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"tvnav/internal/input"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys input.KeyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys input.KeyMap) *HelpRenderer {
	return &HelpRenderer{keys: keys}
}

type helpSection struct {
	title    string
	bindings []key.Binding
}

func (r *HelpRenderer) sections() []helpSection {
	k := r.keys
	return []helpSection{
		{"Navigation", []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Next, k.Prev}},
		{"Activation", []key.Binding{k.Enter, k.Back}},
		{"Other", []key.Binding{k.Rescan, k.Help, k.Pager, k.Quit}},
	}
}

// RenderHelpContent renders the key reference shown in the help overlay and the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("tvnav Help"))
	help.WriteString("\n")

	for _, section := range r.sections() {
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, b := range section.bindings {
			h := b.Help()
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(h.Key), descStyle.Render(h.Desc)))
		}
	}

	notes := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	help.WriteString("\n")
	help.WriteString(notes.Render("  Media keys, Home and digits are accepted and ignored."))
	return help.String()
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// give ov time to restore the screen before taking the terminal back
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
