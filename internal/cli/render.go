// Package cli renders budget reports for terminal output.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"budgetlens/internal/analytics"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorYellow    = lipgloss.Color("#D0A215")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	statusStyles = map[string]lipgloss.Style{
		string(analytics.StatusUnder):   lipgloss.NewStyle().Foreground(ColorGreen),
		string(analytics.StatusOnTrack): lipgloss.NewStyle().Foreground(ColorYellow),
		string(analytics.StatusOver):    lipgloss.NewStyle().Foreground(ColorRed),
		string(analytics.LevelLow):      lipgloss.NewStyle().Foreground(ColorGreen),
		string(analytics.LevelMedium):   lipgloss.NewStyle().Foreground(ColorYellow),
		string(analytics.LevelHigh):     lipgloss.NewStyle().Foreground(ColorOrange),
		"critical":                      lipgloss.NewStyle().Bold(true).Foreground(ColorRed),
	}
)

// Table is a bordered text table. The first column is left-aligned, the rest
// right-aligned.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(60).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderKeyValues renders label/value pairs, one per line, labels padded to a column.
func RenderKeyValues(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		if w := lipgloss.Width(p[0]); w > width {
			width = w
		}
	}
	var b strings.Builder
	for _, p := range pairs {
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render(pad(p[0], width, false)))
		b.WriteString("  ")
		b.WriteString(valueStyle.Render(p[1]))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderStatus colors a status, severity or level label.
func RenderStatus(label string) string {
	if style, ok := statusStyles[label]; ok {
		return style.Render(label)
	}
	return label
}

// RenderUtilizationBar renders a 0..100%+ bar; the part over 100% is drawn in red.
func RenderUtilizationBar(utilization float64, width int) string {
	if width <= 0 {
		return ""
	}
	if utilization < 0 {
		utilization = 0
	}
	filled := int(utilization / 100 * float64(width))
	over := 0
	if filled > width {
		over = filled - width
		if over > width/2 {
			over = width / 2
		}
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	out := "[" + mutedStyle.Render(bar) + "]"
	if over > 0 {
		out += statusStyles[string(analytics.StatusOver)].Render(strings.Repeat("█", over))
	}
	return out
}

// RenderTable renders a bordered table with headers and rows.
// A row holding the single cell "---" renders as a separator.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols {
				if w := lipgloss.Width(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(" " + pad(h, widths[i], false) + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		rule("├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			rule("├", "┼", "┤")
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(valueStyle.Render(" " + pad(cell, widths[i], i > 0) + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	rule("╰", "┴", "╯")

	return b.String()
}

// pad pads s to width display cells. Styled cells keep their escape codes.
func pad(s string, width int, right bool) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

// Muted renders secondary text.
func Muted(format string, args ...any) string {
	return mutedStyle.Render(fmt.Sprintf(format, args...))
}
