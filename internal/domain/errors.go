package domain

import "errors"

var (
	ErrIngestionFailed     = errors.New("extraction result reported failure")
	ErrNoData              = errors.New("no extracted data loaded")
	ErrUnsupportedFormat   = errors.New("unsupported export format")
	ErrExportFailed        = errors.New("export failed")
	ErrDelegateUnavailable = errors.New("remote collaborator unavailable")
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionLimit        = errors.New("too many open sessions")
	ErrStaleResult         = errors.New("result belongs to a superseded request")
	ErrInvalidRequest      = errors.New("invalid request")
	ErrWorkbookMismatch    = errors.New("workbook header does not match visible columns")
)
