package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"shipdesk/internal/domain"
)

// readIngestResult loads records from path, or stdin when path is "-". The file is
// either an extraction result envelope or a bare JSON array of records.
func readIngestResult(path string, stdin io.Reader) (domain.IngestResult, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return domain.IngestResult{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return parseIngestResult(data)
}

func parseIngestResult(data []byte) (domain.IngestResult, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return domain.IngestResult{}, fmt.Errorf("%w: empty input", domain.ErrInvalidRequest)
	}

	if trimmed[0] == '[' {
		var records []domain.Record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return domain.IngestResult{}, fmt.Errorf("%w: decoding records: %v", domain.ErrInvalidRequest, err)
		}
		return domain.IngestResult{Success: true, LabeledData: records}, nil
	}

	var result domain.IngestResult
	if err := json.Unmarshal(trimmed, &result); err != nil {
		return domain.IngestResult{}, fmt.Errorf("%w: decoding extraction result: %v", domain.ErrInvalidRequest, err)
	}
	return result, nil
}
