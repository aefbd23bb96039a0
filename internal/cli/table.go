package cli

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"shipdesk/internal/domain"
)

const (
	columnGap = "  "
	ellipsis  = "…"
)

// renderTable writes the visible columns and rows as aligned plain text. Cells
// wider than maxWidth display columns are truncated; maxWidth <= 0 disables it.
func renderTable(w io.Writer, p domain.Projection, maxWidth int) error {
	cols := p.VisibleColumns()
	if len(cols) == 0 {
		_, err := io.WriteString(w, "(no visible columns)\n")
		return err
	}

	grid := make([][]string, 0, len(p.Rows)+1)
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = fit(c.DisplayName, maxWidth)
	}
	grid = append(grid, header)
	for _, row := range p.Rows {
		line := make([]string, len(cols))
		for i, cell := range row.Cells {
			line[i] = fit(cell.Display(), maxWidth)
		}
		grid = append(grid, line)
	}

	widths := make([]int, len(cols))
	for _, line := range grid {
		for i, s := range line {
			if sw := runewidth.StringWidth(s); sw > widths[i] {
				widths[i] = sw
			}
		}
	}

	var b strings.Builder
	for n, line := range grid {
		writeLine(&b, line, widths)
		if n == 0 {
			rule := make([]string, len(widths))
			for i, wd := range widths {
				rule[i] = strings.Repeat("-", wd)
			}
			writeLine(&b, rule, widths)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeLine(b *strings.Builder, cells []string, widths []int) {
	for i, s := range cells {
		if i > 0 {
			b.WriteString(columnGap)
		}
		if i == len(cells)-1 {
			b.WriteString(s)
			continue
		}
		b.WriteString(runewidth.FillRight(s, widths[i]))
	}
	b.WriteByte('\n')
}

// fit flattens newlines and truncates s to maxWidth display columns.
func fit(s string, maxWidth int) string {
	s = strings.Join(strings.Fields(s), " ")
	if maxWidth > 0 && runewidth.StringWidth(s) > maxWidth {
		return runewidth.Truncate(s, maxWidth, ellipsis)
	}
	return s
}
