package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Categories",
		Headers: []string{"Category", "Spent"},
		Rows: [][]string{
			{"Groceries", "$900.00"},
			{"---"},
			{"Total", "$1000.00"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 8)
	assert.Contains(t, lines[0], "Categories")

	width := lipgloss.Width(lines[1])
	for _, line := range lines[1:] {
		assert.Equal(t, width, lipgloss.Width(line), "line %q", line)
	}

	assert.Contains(t, lines[4], "│ Groceries │  $900.00 │")
	assert.True(t, strings.HasPrefix(lines[5], "├"), "separator row")
	assert.Contains(t, lines[6], "│ Total     │ $1000.00 │")
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Empty(t, RenderTable(Table{}))
}

func TestRenderKeyValues(t *testing.T) {
	out := RenderKeyValues([][2]string{{"Spent", "$900.00"}, {"Utilization", "90%"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Index(lines[0], "$900.00"), strings.Index(lines[1], "90%"))
}

func TestRenderUtilizationBar(t *testing.T) {
	t.Run("half", func(t *testing.T) {
		bar := RenderUtilizationBar(50, 10)
		assert.Equal(t, 5, strings.Count(bar, "█"))
		assert.Equal(t, 5, strings.Count(bar, "░"))
	})

	t.Run("over_budget_overflows", func(t *testing.T) {
		bar := RenderUtilizationBar(130, 10)
		assert.Equal(t, 13, strings.Count(bar, "█"))
		assert.Zero(t, strings.Count(bar, "░"))
	})

	t.Run("zero_width", func(t *testing.T) {
		assert.Empty(t, RenderUtilizationBar(50, 0))
	})
}

func TestRenderStatus(t *testing.T) {
	assert.Contains(t, RenderStatus("over"), "over")
	assert.Equal(t, "unknown", RenderStatus("unknown"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "87.5%", FormatPercent(87.5))
	assert.Equal(t, "+$12.50", FormatSignedMoney(12.5, "USD"))
	assert.Equal(t, "-$12.50", FormatSignedMoney(-12.5, "USD"))
	assert.Equal(t, "2025-03-01 → 2025-03-31", FormatPeriod(
		time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
	))
}
