package views

import (
	"fmt"
	"path/filepath"
	"strings"

	"tvnav/internal/domain"
	"tvnav/internal/ui/logic"
)

// StatusKind selects the status line color
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusWarning
	StatusError
)

// GroupRow is one navigation zone in display order
type GroupRow struct {
	Name     string
	Elements []domain.Descriptor
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Title         string
	Page          string
	Groups        []GroupRow
	Visual        map[string]bool // elements currently carrying the focus class
	Focused       *domain.Descriptor
	StatusMessage string
	StatusKind    StatusKind
	ShowHelp      bool
	HelpContent   string
	Footer        string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	groupRender *GroupRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		groupRender: NewGroupRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// ReservedLines is the height taken by everything except the group list
const ReservedLines = 9

// Render produces the complete view; the viewport is scrolled to keep
// the focused card on screen
func (r *Renderer) Render(state ViewState, vp *logic.Viewport) string {
	content := &strings.Builder{}

	title := state.Title
	if title == "" {
		title = "tvnav"
	}
	content.WriteString(r.styles.Title.Render(title))
	if state.Page != "" {
		content.WriteString("  ")
		content.WriteString(r.styles.Page.Render(filepath.Base(state.Page)))
	}
	content.WriteString("\n\n")

	content.WriteString(r.renderGroups(state, vp))
	content.WriteString("\n\n")

	content.WriteString(r.renderStatus(state))
	content.WriteString("\n")
	if state.Footer != "" {
		content.WriteString(state.Footer)
	} else {
		content.WriteString(r.styles.Help.Render("Press ? for help"))
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	finalContent := mainStyle.Render(content.String())

	if state.ShowHelp && state.HelpContent != "" {
		return r.popupRender.RenderPopupOverlay(finalContent, state.HelpContent, state.Height, state.Width, r.styles.InfoBox)
	}
	return finalContent
}

func (r *Renderer) renderGroups(state ViewState, vp *logic.Viewport) string {
	if len(state.Groups) == 0 {
		return r.styles.Dim.Render("No focusable elements on this page.")
	}

	width := state.Width - 4 // main container padding
	var lines []string
	focusTop, focusBottom := -1, -1
	for i, group := range state.Groups {
		if i > 0 {
			lines = append(lines, "")
		}
		block, top, bottom := r.groupRender.RenderGroup(group, state.Visual, width)
		if top >= 0 {
			// include the header so the zone name stays visible
			focusTop = len(lines)
			focusBottom = len(lines) + bottom
		}
		lines = append(lines, block...)
	}

	if vp == nil {
		return strings.Join(lines, "\n")
	}
	if focusTop >= 0 {
		vp.EnsureVisible(focusTop, focusBottom, len(lines))
	}
	visible, above, below := vp.Window(lines)

	out := make([]string, 0, len(visible)+2)
	if above > 0 {
		out = append(out, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", above)))
	}
	out = append(out, visible...)
	if below > 0 {
		out = append(out, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", below)))
	}
	return strings.Join(out, "\n")
}

func (r *Renderer) renderStatus(state ViewState) string {
	msg := state.StatusMessage
	if msg == "" && state.Focused != nil {
		msg = "Focused: " + state.Focused.String()
	}
	switch state.StatusKind {
	case StatusError:
		return r.styles.StatusError.Render(msg)
	case StatusWarning:
		return r.styles.StatusWarning.Render(msg)
	case StatusSuccess:
		return r.styles.StatusSuccess.Render(msg)
	default:
		return r.styles.StatusInfo.Render(msg)
	}
}

// Rows splits ordered elements into display groups following the group order
func Rows(elements []domain.Descriptor, groupOrder []string) []GroupRow {
	byGroup := make(map[string][]domain.Descriptor)
	for _, d := range elements {
		byGroup[d.Group] = append(byGroup[d.Group], d)
	}
	rows := make([]GroupRow, 0, len(groupOrder)+1)
	for _, g := range groupOrder {
		if els, ok := byGroup[g]; ok {
			rows = append(rows, GroupRow{Name: g, Elements: els})
		}
	}
	if els, ok := byGroup[""]; ok {
		rows = append(rows, GroupRow{Elements: els})
	}
	return rows
}
