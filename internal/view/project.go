package view

import (
	"strings"

	"shipdesk/internal/domain"
	"shipdesk/internal/schema"
)

// Project derives the rendered table from a store, its schema and the view state.
// It never mutates its inputs; identical inputs give identical output.
// A nil store is the "no data" state and projects no columns.
func Project(store *RecordStore, s *schema.Schema, st domain.ViewState) domain.Projection {
	if store == nil {
		return domain.Projection{}
	}

	columns := make([]domain.Column, len(st.ColumnOrder))
	var visible []domain.FieldID
	for i, id := range st.ColumnOrder {
		columns[i] = domain.Column{
			ID:          id,
			DisplayName: s.DisplayName(id),
			Visible:     st.IsVisible(id),
			Position:    i,
		}
		if columns[i].Visible {
			visible = append(visible, id)
		}
	}

	query := strings.ToLower(st.Query)
	rows := make([]domain.Row, 0, store.Len())
	for i := 0; i < store.Len(); i++ {
		rec := store.At(i)
		cells := make([]domain.Cell, len(visible))
		for j, id := range visible {
			cells[j] = resolveCell(s, rec, id)
		}
		if !matches(cells, query) {
			continue
		}
		rows = append(rows, domain.Row{Index: i, Record: rec, Cells: cells})
	}

	return domain.Projection{Columns: columns, Rows: rows, Total: store.Len()}
}

// resolveCell looks a column up through its alias chain and applies display formatting.
func resolveCell(s *schema.Schema, rec domain.Record, id domain.FieldID) domain.Cell {
	if id == s.DirectionalField || s.Synthetic[id] {
		return domain.Cell{Empty: true}
	}

	var value string
	for _, src := range s.SourceFields(id) {
		if v := rec[string(src)]; v != "" {
			value = v
			break
		}
	}
	if value == "" {
		return domain.Cell{Empty: true}
	}

	switch {
	case s.DateFields[id]:
		value = formatDate(value)
	case s.DateTimeFields[id]:
		value = formatDateTime(value)
	}
	return domain.Cell{Value: value}
}
