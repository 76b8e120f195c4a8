// Package cell provides the view that shows one cell of a document.
package cell

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lenk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lenk/internal/core/domain"
)

// View renders the text of the current cell with scrolling.
type View struct {
	styles *styles.Styles

	cell         domain.ResolvedCell
	hasCell      bool
	total        int
	lines        []string
	scrollOffset int
	width        int
	height       int
}

// NewView creates a new cell view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		width:  80,
		height: 12,
	}
}

// SetCell shows rc, the cell at rc.Cell.Index of total cells.
func (v *View) SetCell(rc domain.ResolvedCell, total int) {
	v.cell = rc
	v.hasCell = true
	v.total = total
	v.scrollOffset = 0
	v.wrapContent()
}

// Clear removes the current cell.
func (v *View) Clear() {
	v.cell = domain.ResolvedCell{}
	v.hasCell = false
	v.total = 0
	v.lines = nil
	v.scrollOffset = 0
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles scrolling.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "pgup", "ctrl+u":
		v.scrollOffset -= v.height
		if v.scrollOffset < 0 {
			v.scrollOffset = 0
		}
	case "pgdown", "ctrl+d":
		v.scrollOffset += v.height
		if v.scrollOffset > v.maxScrollOffset() {
			v.scrollOffset = v.maxScrollOffset()
		}
	}
	return v, nil
}

// wrapContent splits the cell body into lines that fit the view width.
func (v *View) wrapContent() {
	v.lines = nil
	body := v.cell.Cell.Body()
	if !v.hasCell || body == "" {
		return
	}

	contentWidth := v.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	for _, line := range strings.Split(body, "\n") {
		runes := []rune(strings.TrimRight(line, "\r"))
		for len(runes) > contentWidth {
			v.lines = append(v.lines, string(runes[:contentWidth]))
			runes = runes[contentWidth:]
		}
		v.lines = append(v.lines, string(runes))
	}
}

func (v *View) maxScrollOffset() int {
	maxOffset := len(v.lines) - v.height
	if maxOffset < 0 {
		return 0
	}
	return maxOffset
}

// View renders the cell header and the visible part of its body.
func (v *View) View() string {
	if !v.hasCell {
		return v.styles.Muted.Render("(No cells)")
	}

	var b strings.Builder
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Cell %d of %d  ", v.cell.Cell.Index+1, v.total)))
	b.WriteString(v.styles.Heading.Render(v.cell.Cell.HeadingLabel))
	if badge := v.badge(); badge != "" {
		b.WriteString("  ")
		b.WriteString(badge)
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", minInt(v.width-4, 60)))
	b.WriteString("\n")

	if len(v.lines) == 0 {
		b.WriteString(v.styles.Muted.Render("(Empty cell)"))
		return b.String()
	}

	end := minInt(v.scrollOffset+v.height, len(v.lines))
	for i := v.scrollOffset; i < end; i++ {
		b.WriteString(v.styles.Normal.Render(v.lines[i]))
		b.WriteString("\n")
	}
	if len(v.lines) > v.height {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  Line %d-%d of %d",
			v.scrollOffset+1, end, len(v.lines))))
	}
	return strings.TrimRight(b.String(), "\n")
}

// badge describes how the cell's annotations were attached.
func (v *View) badge() string {
	switch m := v.cell.Match.(type) {
	case domain.Exact:
		return v.styles.ExactBadge.Render(fmt.Sprintf("%d attached", len(m.Matched)))
	case domain.Fuzzy:
		return v.styles.FuzzyBadge.Render(fmt.Sprintf("%d may be outdated", len(m.Matched)))
	default:
		return ""
	}
}

// SetDimensions sets the view width and the number of body lines shown.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	if height < 1 {
		height = 1
	}
	v.height = height
	v.wrapContent()
	if v.scrollOffset > v.maxScrollOffset() {
		v.scrollOffset = v.maxScrollOffset()
	}
}

// Cell returns the current cell and whether one is set.
func (v *View) Cell() (domain.ResolvedCell, bool) {
	return v.cell, v.hasCell
}

// ScrollOffset returns the first visible body line.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}

// LineCount returns the number of wrapped body lines.
func (v *View) LineCount() int {
	return len(v.lines)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
