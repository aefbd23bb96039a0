package view

import (
	"shipdesk/internal/domain"
	"shipdesk/internal/schema"
)

// NewViewState returns the default state for a schema: canonical order,
// every column visible, empty query.
func NewViewState(s *schema.Schema) domain.ViewState {
	st := domain.ViewState{
		ColumnOrder: make([]domain.FieldID, len(s.Fields)),
		Visibility:  make(map[domain.FieldID]bool, len(s.Fields)),
	}
	copy(st.ColumnOrder, s.Fields)
	for _, f := range s.Fields {
		st.Visibility[f] = true
	}
	return st
}

// Reorder moves source to the index target held before the move.
// Equal ids and ids missing from the order leave the state unchanged.
func Reorder(st domain.ViewState, source, target domain.FieldID) domain.ViewState {
	if source == target {
		return st
	}
	from, to := indexOf(st.ColumnOrder, source), indexOf(st.ColumnOrder, target)
	if from < 0 || to < 0 {
		return st
	}

	next := st.Clone()
	order := append(next.ColumnOrder[:from:from], next.ColumnOrder[from+1:]...)
	order = append(order, "")
	copy(order[to+1:], order[to:])
	order[to] = source
	next.ColumnOrder = order
	return next
}

// SetVisible changes the visibility of one column. The column order is untouched.
func SetVisible(st domain.ViewState, id domain.FieldID, visible bool) domain.ViewState {
	if indexOf(st.ColumnOrder, id) < 0 {
		return st
	}
	next := st.Clone()
	next.Visibility[id] = visible
	return next
}

// SetQuery replaces the free-text row filter.
func SetQuery(st domain.ViewState, text string) domain.ViewState {
	next := st.Clone()
	next.Query = text
	return next
}

func indexOf(order []domain.FieldID, id domain.FieldID) int {
	for i, f := range order {
		if f == id {
			return i
		}
	}
	return -1
}
