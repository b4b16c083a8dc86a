package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/tapemark/tapemark/internal/util"
)

// styledTable renders a small rounded box-drawing table for list output.
type styledTable struct {
	headers []string
	rows    [][]string
	widths  []int
	title   string
}

func newStyledTable(headers ...string) *styledTable {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	return &styledTable{headers: headers, widths: widths}
}

func (t *styledTable) withTitle(title string) *styledTable {
	t.title = title
	return t
}

func (t *styledTable) addRow(cols ...string) {
	for i, c := range cols {
		if i < len(t.widths) {
			if w := runewidth.StringWidth(c); w > t.widths[i] {
				t.widths[i] = w
			}
		}
	}
	t.rows = append(t.rows, cols)
}

func (t *styledTable) render() string {
	if len(t.headers) == 0 {
		return ""
	}

	border := lipgloss.NewStyle().Foreground(lipgloss.Color("#45475a"))
	header := lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)

	hline := func(left, mid, right string) string {
		var line strings.Builder
		line.WriteString(left)
		for i, w := range t.widths {
			line.WriteString(strings.Repeat("─", w+2))
			if i < len(t.widths)-1 {
				line.WriteString(mid)
			}
		}
		line.WriteString(right)
		return border.Render(line.String())
	}

	row := func(cols []string, style lipgloss.Style) string {
		var line strings.Builder
		line.WriteString(border.Render("│"))
		for i, w := range t.widths {
			c := ""
			if i < len(cols) {
				c = cols[i]
			}
			line.WriteString(" " + style.Render(util.PadLabel(c, w)) + " ")
			line.WriteString(border.Render("│"))
		}
		return line.String()
	}

	var sb strings.Builder
	if t.title != "" {
		sb.WriteString(header.Render(t.title))
		sb.WriteString("\n")
	}
	sb.WriteString(hline("╭", "┬", "╮"))
	sb.WriteString("\n")
	sb.WriteString(row(t.headers, header))
	sb.WriteString("\n")
	sb.WriteString(hline("├", "┼", "┤"))
	sb.WriteString("\n")
	for _, r := range t.rows {
		sb.WriteString(row(r, lipgloss.NewStyle()))
		sb.WriteString("\n")
	}
	sb.WriteString(hline("╰", "┴", "╯"))
	sb.WriteString("\n")
	return sb.String()
}
