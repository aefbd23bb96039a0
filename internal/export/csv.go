package export

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"shipdesk/internal/domain"
)

// CSVWriter writes the visible view as CSV. Every field is quoted and inner quotes
// are doubled, so values containing commas, quotes or newlines survive as-is.
type CSVWriter struct {
	w   *bufio.Writer
	err error
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the display-name header row.
func (w *CSVWriter) WriteHeader(columns []domain.Column) error {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.DisplayName
	}
	return w.writeLine(names)
}

// WriteRows writes one line per row, taking values in columns order.
func (w *CSVWriter) WriteRows(columns []domain.Column, rows []domain.FlatRow) error {
	line := make([]string, len(columns))
	for _, r := range rows {
		for i, c := range columns {
			line[i] = r.Get(c.ID)
		}
		if err := w.writeLine(line); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes buffered output.
func (w *CSVWriter) Flush() {
	if w.err == nil {
		w.err = w.w.Flush()
	}
}

// Error returns the first write or flush error.
func (w *CSVWriter) Error() error {
	return w.err
}

func (w *CSVWriter) writeLine(fields []string) error {
	if w.err != nil {
		return w.err
	}
	for i, f := range fields {
		if i > 0 {
			w.w.WriteByte(',')
		}
		w.w.WriteByte('"')
		w.w.WriteString(strings.ReplaceAll(f, `"`, `""`))
		w.w.WriteByte('"')
	}
	_, w.err = w.w.WriteString("\n")
	return w.err
}

// EncodeCSV serializes the visible view: a header of display names, then one line per row.
func EncodeCSV(p domain.Projection) ([]byte, error) {
	var buf bytes.Buffer
	cols := p.VisibleColumns()
	w := NewCSVWriter(&buf)
	if err := w.WriteHeader(cols); err != nil {
		return nil, err
	}
	if err := w.WriteRows(cols, VisibleData(p)); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
