package export

import "shipdesk/internal/domain"

// VisibleData flattens a projection into the rows that are exported: one map per
// filtered row, keyed by visible column id in display order. Placeholder cells
// become empty strings.
func VisibleData(p domain.Projection) []domain.FlatRow {
	cols := p.VisibleColumns()
	keys := make([]domain.FieldID, len(cols))
	for i, c := range cols {
		keys[i] = c.ID
	}

	out := make([]domain.FlatRow, len(p.Rows))
	for i, row := range p.Rows {
		values := make(map[domain.FieldID]string, len(keys))
		for j, id := range keys {
			values[id] = row.Cells[j].ExportValue()
		}
		out[i] = domain.FlatRow{Keys: keys, Values: values}
	}
	return out
}

// Headers returns the display names of the visible columns.
func Headers(p domain.Projection) []string {
	cols := p.VisibleColumns()
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.DisplayName
	}
	return out
}
