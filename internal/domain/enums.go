package domain

// ExportFormat identifies a serialization target for the visible view.
type ExportFormat string

const (
	ExportFormatJSON  ExportFormat = "json"
	ExportFormatCSV   ExportFormat = "csv"
	ExportFormatExcel ExportFormat = "excel"
)

// Extension returns the file extension (without dot) used for the format.
func (f ExportFormat) Extension() string {
	switch f {
	case ExportFormatExcel:
		return "xlsx"
	default:
		return string(f)
	}
}

// ContentType returns the MIME type of a payload in this format.
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportFormatJSON:
		return "application/json"
	case ExportFormatCSV:
		return "text/csv"
	case ExportFormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// HasLocalFallback reports whether the format can be produced without the remote formatter.
func (f ExportFormat) HasLocalFallback() bool {
	return f == ExportFormatJSON || f == ExportFormatCSV
}

// ParseExportFormat validates a user-supplied format name.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case ExportFormatJSON, ExportFormatCSV, ExportFormatExcel:
		return ExportFormat(s), nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// ExportSource records which path produced an export payload.
type ExportSource string

const (
	ExportSourceRemote ExportSource = "remote"
	ExportSourceLocal  ExportSource = "local"
)
