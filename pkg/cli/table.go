// Package cli provides shared plumbing for CLI commands: structured
// output, request loading, and styled terminal tables.
package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme for terminal output.
type Theme struct {
	Primary lipgloss.Color // Main accent color
	Dim     lipgloss.Color // Dimmed/secondary text color
}

// DefaultTheme is the default bright green theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Dim:     lipgloss.Color("#6e7681"),
}

// TableStyles holds the styles used when rendering a table.
type TableStyles struct {
	Header lipgloss.Style
	Cell   lipgloss.Style
	Marker lipgloss.Style
}

// NewTableStyles creates table styles from a theme.
func NewTableStyles(t Theme) TableStyles {
	return TableStyles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Cell:   lipgloss.NewStyle(),
		Marker: lipgloss.NewStyle().Foreground(t.Primary),
	}
}

// RenderTable renders headers and rows as an aligned table. Column
// widths follow the widest cell, measured with lipgloss so multi-byte
// characters line up.
func RenderTable(styles TableStyles, headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(styles.Header.Render(pad(h, widths[i])))
		if i < len(headers)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")
	for i, w := range widths {
		b.WriteString(styles.Marker.Render(strings.Repeat("─", w)))
		if i < len(widths)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			b.WriteString(styles.Cell.Render(pad(cell, widths[i])))
			if i < len(row)-1 && i < len(widths)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

func pad(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
