package view

import (
	"fmt"

	"shipdesk/internal/domain"
	"shipdesk/internal/schema"
)

// Engine holds one Record Store and its View State and re-projects after every
// mutation. It is driven by a single actor and does no locking.
type Engine struct {
	schema     *schema.Schema
	store      *RecordStore
	state      domain.ViewState
	projection domain.Projection
}

// NewEngine creates an engine in the "no data" state.
func NewEngine(s *schema.Schema) *Engine {
	if s == nil {
		s = schema.Default()
	}
	return &Engine{schema: s}
}

// Ingest loads an extraction result. A failed result leaves the engine exactly as
// it was and returns ErrIngestionFailed carrying the collaborator's message.
// A successful result with no records clears the engine back to "no data".
func (e *Engine) Ingest(result domain.IngestResult) error {
	if !result.Success {
		if result.Message != "" {
			return fmt.Errorf("%w: %s", domain.ErrIngestionFailed, result.Message)
		}
		return domain.ErrIngestionFailed
	}
	if len(result.LabeledData) == 0 {
		e.Reset()
		return nil
	}

	e.store = NewRecordStore(result.LabeledData)
	e.state = NewViewState(e.schema)
	e.render()
	return nil
}

// Reset discards the loaded data and view state.
func (e *Engine) Reset() {
	e.store = nil
	e.state = domain.ViewState{}
	e.projection = domain.Projection{}
}

// HasData reports whether a Record Store is loaded.
func (e *Engine) HasData() bool {
	return e.store != nil
}

// Schema returns the schema the engine projects with.
func (e *Engine) Schema() *schema.Schema {
	return e.schema
}

// State returns a copy of the current view state.
func (e *Engine) State() domain.ViewState {
	return e.state.Clone()
}

// Projection returns the latest rendered snapshot.
func (e *Engine) Projection() domain.Projection {
	return e.projection
}

// Reorder moves a column by drag-and-drop and re-projects.
func (e *Engine) Reorder(source, target domain.FieldID) domain.Projection {
	e.state = Reorder(e.state, source, target)
	return e.render()
}

// SetVisible toggles one column and re-projects.
func (e *Engine) SetVisible(id domain.FieldID, visible bool) domain.Projection {
	e.state = SetVisible(e.state, id, visible)
	return e.render()
}

// SetQuery applies a row filter and re-projects.
func (e *Engine) SetQuery(text string) domain.Projection {
	e.state = SetQuery(e.state, text)
	return e.render()
}

// ColumnMenu lists the columns whose label matches text, in current order.
func (e *Engine) ColumnMenu(text string) []domain.Column {
	return FilterColumns(e.projection.Columns, text)
}

// RecordCount returns the label for the number of rows currently shown.
func (e *Engine) RecordCount() string {
	return RecordCountLabel(len(e.projection.Rows))
}

func (e *Engine) render() domain.Projection {
	e.projection = Project(e.store, e.schema, e.state)
	return e.projection
}
