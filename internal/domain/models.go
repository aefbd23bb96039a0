package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// Placeholder is the muted marker rendered for cells that carry no data.
const Placeholder = "-"

// FieldID identifies a canonical column of the shipment table.
type FieldID string

// Record is one extracted shipment row, keyed by source field name.
type Record map[string]string

// UnmarshalJSON accepts any JSON scalar as a field value. Numbers and booleans keep
// their JSON text, null becomes "", and nested values keep their compact JSON form.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Record, len(raw))
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			out[k] = s
			continue
		}
		if string(bytes.TrimSpace(v)) == "null" {
			out[k] = ""
			continue
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, v); err != nil {
			return err
		}
		out[k] = compact.String()
	}
	*r = out
	return nil
}

// Column is the projection of one Field List entry.
type Column struct {
	ID          FieldID `json:"id"`
	DisplayName string  `json:"display_name"`
	Visible     bool    `json:"visible"`
	Position    int     `json:"position"`
}

// ViewState is the mutable, user-driven part of the table view.
// ColumnOrder is always a permutation of the full Field List; hidden columns stay in it.
type ViewState struct {
	ColumnOrder []FieldID        `json:"column_order"`
	Visibility  map[FieldID]bool `json:"visibility"`
	Query       string           `json:"query"`
}

// IsVisible reports the visibility of a column, defaulting to true when unset.
func (s ViewState) IsVisible(id FieldID) bool {
	v, ok := s.Visibility[id]
	return !ok || v
}

// Clone returns a deep copy so transitions never alias the previous state.
func (s ViewState) Clone() ViewState {
	out := ViewState{
		ColumnOrder: make([]FieldID, len(s.ColumnOrder)),
		Visibility:  make(map[FieldID]bool, len(s.Visibility)),
		Query:       s.Query,
	}
	copy(out.ColumnOrder, s.ColumnOrder)
	for k, v := range s.Visibility {
		out.Visibility[k] = v
	}
	return out
}

// Cell is a formatted table value. Empty marks the "no data" placeholder.
type Cell struct {
	Value string `json:"value"`
	Empty bool   `json:"empty"`
}

// Display returns the text shown in the table.
func (c Cell) Display() string {
	if c.Empty {
		return Placeholder
	}
	return c.Value
}

// ExportValue returns the value written to exports; placeholders become "".
func (c Cell) ExportValue() string {
	if c.Empty {
		return ""
	}
	return c.Value
}

// Row is a record that passed the current filter, with cells aligned to the visible columns.
type Row struct {
	Index  int    `json:"index"`
	Record Record `json:"-"`
	Cells  []Cell `json:"cells"`
}

// Projection is a snapshot of the rendered table.
type Projection struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
	Total   int      `json:"total"`
}

// VisibleColumns returns the columns that are rendered, in display order.
func (p Projection) VisibleColumns() []Column {
	out := make([]Column, 0, len(p.Columns))
	for _, c := range p.Columns {
		if c.Visible {
			out = append(out, c)
		}
	}
	return out
}

// FlatRow is one exported row: values keyed by visible column id, in column order.
type FlatRow struct {
	Keys   []FieldID
	Values map[FieldID]string
}

// Get returns the value for a column id.
func (r FlatRow) Get(id FieldID) string {
	return r.Values[id]
}

// MarshalJSON writes the row as an object whose keys follow column order.
func (r FlatRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.Keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(k))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.Values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// IngestResult is the payload handed over by the extraction collaborator.
type IngestResult struct {
	Success     bool     `json:"success"`
	LabeledData []Record `json:"labeled_data"`
	Message     string   `json:"message,omitempty"`
}

// ExportRequest is sent to the remote export formatter.
type ExportRequest struct {
	Format ExportFormat `json:"format"`
	Data   []FlatRow    `json:"data"`
}

// ExportResponse is returned by the remote export formatter.
type ExportResponse struct {
	Success     bool   `json:"success"`
	Data        string `json:"data,omitempty"`
	Filename    string `json:"filename,omitempty"`
	DownloadURL string `json:"downloadUrl,omitempty"`
	Message     string `json:"message,omitempty"`
}

// ExportResult is a named payload ready to be handed to the user.
type ExportResult struct {
	Format      ExportFormat `json:"format"`
	Filename    string       `json:"filename"`
	ContentType string       `json:"content_type"`
	Body        []byte       `json:"-"`
	DownloadURL string       `json:"download_url,omitempty"`
	Source      ExportSource `json:"source"`
}

// ChatReply is the chat collaborator's answer; exactly one field is set.
type ChatReply struct {
	Answer string `json:"answer,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ExtractionSummary holds the headline numbers shown after an extraction.
type ExtractionSummary struct {
	Documents  int           `json:"documents"`
	Shipments  int           `json:"shipments"`
	Containers int           `json:"containers"`
	Duration   time.Duration `json:"duration"`
}
