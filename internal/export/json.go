package export

import (
	"encoding/json"

	"shipdesk/internal/domain"
)

// EncodeJSON serializes the visible view as an indented array of objects keyed by
// column id. Keys follow the current column order.
func EncodeJSON(p domain.Projection) ([]byte, error) {
	return encodeRowsJSON(VisibleData(p))
}

func encodeRowsJSON(rows []domain.FlatRow) ([]byte, error) {
	if rows == nil {
		rows = []domain.FlatRow{}
	}
	return json.MarshalIndent(rows, "", "  ")
}
