package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SimpleTable renders static tabular data, sized to its widest cells.
type SimpleTable struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// NewSimpleTable creates a new SimpleTable with the given title and headers.
func NewSimpleTable(title string, headers []string) *SimpleTable {
	return &SimpleTable{
		Title:   title,
		Headers: headers,
		Rows:    make([][]string, 0),
	}
}

// AddRow adds a row to the table.
func (t *SimpleTable) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// View renders the table using the provided styles.
func (t *SimpleTable) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	colWidths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				if w := lipgloss.Width(cell); w > colWidths[i] {
					colWidths[i] = w
				}
			}
		}
	}

	headerStyle := styles.Bold.Padding(0, 1)
	rowStyle := styles.Body.Padding(0, 1)

	var header []string
	for i, h := range t.Headers {
		header = append(header, headerStyle.Width(colWidths[i]+2).Render(h))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	sb.WriteString("\n")

	total := 0
	for _, w := range colWidths {
		total += w + 2
	}
	sb.WriteString(styles.RenderDivider(total))
	sb.WriteString("\n")

	for _, row := range t.Rows {
		var cells []string
		for i, cell := range row {
			if i < len(colWidths) {
				cells = append(cells, rowStyle.Width(colWidths[i]+2).Render(cell))
			}
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		sb.WriteString("\n")
	}

	return sb.String()
}
