package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorText   = lipgloss.Color("#FFFCF0")
	colorBorder = lipgloss.Color("#282726")
	colorAccent = lipgloss.Color("#3AA99F")
	colorMuted  = lipgloss.Color("#6F6E69")
	colorOrange = lipgloss.Color("#DA702C")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	warnStyle   = lipgloss.NewStyle().Foreground(colorOrange)
)

// RenderTitle renders a title in a rounded box.
func RenderTitle(title string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Render(titleStyle.Render(title))
}

// Table is a plain column-aligned table.
type Table struct {
	Headers []string
	Rows    [][]string
	// RightAlign marks numeric columns.
	RightAlign []bool
}

// RenderTable lays out the table with one space of padding between columns.
func RenderTable(t Table) string {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	line := func(cells []string, style *lipgloss.Style) {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			if i < len(t.RightAlign) && t.RightAlign[i] {
				parts[i] = pad + cell
			} else {
				parts[i] = cell + pad
			}
		}
		text := "  " + strings.TrimRight(strings.Join(parts, "  "), " ")
		if style != nil {
			text = style.Render(text)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	line(t.Headers, &headerStyle)
	total := 0
	for _, w := range widths {
		total += w + 2
	}
	b.WriteString("  " + mutedStyle.Render(strings.Repeat("─", total-2)) + "\n")
	for _, row := range t.Rows {
		line(row, nil)
	}
	return b.String()
}
