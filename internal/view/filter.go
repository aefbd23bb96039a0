package view

import (
	"strings"

	"shipdesk/internal/domain"
)

// matches reports whether any non-placeholder cell contains the lower-cased query.
// Cells only cover visible columns, so hidden values never make a row match.
func matches(cells []domain.Cell, query string) bool {
	if query == "" {
		return true
	}
	for _, c := range cells {
		if c.Empty {
			continue
		}
		if strings.Contains(strings.ToLower(c.Value), query) {
			return true
		}
	}
	return false
}

// FilterColumns returns the columns whose display label contains text, ignoring case.
// It backs the search box of the column visibility menu.
func FilterColumns(columns []domain.Column, text string) []domain.Column {
	needle := strings.ToLower(text)
	out := make([]domain.Column, 0, len(columns))
	for _, c := range columns {
		if strings.Contains(strings.ToLower(c.DisplayName), needle) {
			out = append(out, c)
		}
	}
	return out
}
