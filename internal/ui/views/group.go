package views

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tvnav/internal/domain"
)

const maxLabelWidth = 18

// GroupRenderer renders one navigation zone as a header and rows of cards
type GroupRenderer struct {
	styles *Styles
}

// NewGroupRenderer creates a new group renderer
func NewGroupRenderer(styles *Styles) *GroupRenderer {
	return &GroupRenderer{
		styles: styles,
	}
}

// RenderGroup returns the lines of a group block and the line span of the
// focused card within it (-1 when the group holds no focus)
func (g *GroupRenderer) RenderGroup(group GroupRow, visual map[string]bool, width int) ([]string, int, int) {
	focusTop, focusBottom := -1, -1

	name := group.Name
	if name == "" {
		name = "ungrouped"
	}
	header := fmt.Sprintf("%s (%d)", name, len(group.Elements))
	hasFocus := false
	for _, d := range group.Elements {
		if visual[d.ID] {
			hasFocus = true
			break
		}
	}
	if hasFocus {
		header = g.styles.ActiveGroup.Render("▶ " + header)
	} else {
		header = g.styles.GroupHeader.Render("  " + header)
	}
	lines := []string{header}

	for _, row := range gridRows(group.Elements) {
		for _, line := range wrapCards(row, width) {
			cards := make([]string, 0, len(line))
			focusedHere := false
			for _, d := range line {
				if visual[d.ID] {
					focusedHere = true
				}
				cards = append(cards, g.renderCard(d, visual[d.ID]))
			}
			block := strings.Split(lipgloss.JoinHorizontal(lipgloss.Top, cards...), "\n")
			if focusedHere {
				focusTop = len(lines)
				focusBottom = len(lines) + len(block) - 1
			}
			lines = append(lines, block...)
		}
	}
	return lines, focusTop, focusBottom
}

func (g *GroupRenderer) renderCard(d domain.Descriptor, focused bool) string {
	label := d.Label
	if label == "" {
		label = d.ID
	}
	label = truncate(label, maxLabelWidth)
	if d.Primary {
		label = "★ " + label
	}
	body := label
	if d.Action != "" {
		body += "\n" + g.styles.Action.Render("⏵ "+d.Action)
	} else if d.Href != "" {
		body += "\n" + g.styles.Dim.Render("→ "+truncate(d.Href, maxLabelWidth))
	}
	if focused {
		return g.styles.FocusedCard.Render(body)
	}
	return g.styles.Card.Render(body)
}

// gridRows splits elements by their data-row, keeping columns in order.
// Elements without a row form a single row.
func gridRows(elements []domain.Descriptor) [][]domain.Descriptor {
	byRow := make(map[int][]domain.Descriptor)
	var keys []int
	var plain []domain.Descriptor
	for _, d := range elements {
		if d.Row == nil {
			plain = append(plain, d)
			continue
		}
		if _, ok := byRow[*d.Row]; !ok {
			keys = append(keys, *d.Row)
		}
		byRow[*d.Row] = append(byRow[*d.Row], d)
	}
	sort.Ints(keys)

	rows := make([][]domain.Descriptor, 0, len(keys)+1)
	for _, k := range keys {
		row := byRow[k]
		sort.SliceStable(row, func(i, j int) bool {
			_, ci := row[i].GridPos()
			_, cj := row[j].GridPos()
			return ci < cj
		})
		rows = append(rows, row)
	}
	if len(plain) > 0 {
		rows = append(rows, plain)
	}
	return rows
}

// wrapCards breaks a row into lines that fit the terminal width
func wrapCards(row []domain.Descriptor, width int) [][]domain.Descriptor {
	// border, padding and margin around the label
	const cardChrome = 5
	perLine := len(row)
	if width > 0 {
		perLine = width / (maxLabelWidth + 2 + cardChrome)
		if perLine < 1 {
			perLine = 1
		}
	}
	var out [][]domain.Descriptor
	for start := 0; start < len(row); start += perLine {
		end := start + perLine
		if end > len(row) {
			end = len(row)
		}
		out = append(out, row[start:end])
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
