package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay centers a popup over the dimmed main content
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)
	if width <= 0 || height <= 0 {
		return styledPopup
	}

	base := strings.Split(desaturateANSI(mainContent), "\n")
	for len(base) < height {
		base = append(base, "")
	}

	popupLines := strings.Split(styledPopup, "\n")
	top := (height - len(popupLines)) / 2
	if top < 0 {
		top = 0
	}
	left := (width - lipgloss.Width(styledPopup)) / 2
	if left < 0 {
		left = 0
	}
	pad := strings.Repeat(" ", left)
	for i, line := range popupLines {
		if top+i >= len(base) {
			base = append(base, pad+line)
			continue
		}
		base[top+i] = pad + line
	}
	return strings.Join(base[:max(height, top+len(popupLines))], "\n")
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// desaturateANSI strips ANSI color/style codes and recolors text dim gray
func desaturateANSI(s string) string {
	lines := strings.Split(ansiRE.ReplaceAllString(s, ""), "\n")
	gray := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	for i, line := range lines {
		lines[i] = gray.Render(line)
	}
	return strings.Join(lines, "\n")
}

// StripANSI returns s without color codes
func StripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}
