package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DataTable renders static tabular data, used both by the CLI list
// commands and as the read-only rendering inside TUI pages. Pagination
// state, when set, is appended as a footer line.
type DataTable struct {
	Title   string
	Headers []string
	Rows    [][]string

	// Pagination footer. Zero values suppress the footer.
	Page       int
	TotalPages int
	Total      int
}

// NewDataTable creates a table with the given title and column headers.
func NewDataTable(title string, headers ...string) *DataTable {
	return &DataTable{Title: title, Headers: headers}
}

// AddRow appends a row. Missing cells render empty; extra cells are
// dropped.
func (t *DataTable) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// WithPagination sets the footer pagination state.
func (t *DataTable) WithPagination(page, totalPages, total int) *DataTable {
	t.Page, t.TotalPages, t.Total = page, totalPages, total
	return t
}

// View renders the table with the given styles.
func (t *DataTable) View(styles Styles) string {
	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}
	if len(t.Rows) == 0 {
		sb.WriteString(styles.Muted.Render("(no rows)"))
		sb.WriteString("\n")
		return sb.String()
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	cell := styles.Body.Padding(0, 1)
	head := styles.Bold.Padding(0, 1)
	sep := styles.Divider

	total := 0
	for i, h := range t.Headers {
		sb.WriteString(head.Width(widths[i] + 2).Render(h))
		total += widths[i] + 2
		if i < len(t.Headers)-1 {
			sb.WriteString(sep.Render("|"))
			total++
		}
	}
	sb.WriteString("\n")
	sb.WriteString(sep.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")

	for _, row := range t.Rows {
		for i := range t.Headers {
			var c string
			if i < len(row) {
				c = row[i]
			}
			sb.WriteString(cell.Width(widths[i] + 2).Render(c))
			if i < len(t.Headers)-1 {
				sb.WriteString(sep.Render("|"))
			}
		}
		sb.WriteString("\n")
	}

	if t.TotalPages > 0 {
		sb.WriteString(styles.Footer.Render(
			fmt.Sprintf("page %d of %d (%d total)", t.Page, t.TotalPages, t.Total)))
		sb.WriteString("\n")
	}
	return sb.String()
}
