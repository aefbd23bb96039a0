package export

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"shipdesk/internal/domain"
	"shipdesk/internal/logger"
	"shipdesk/internal/port"
)

// Exporter serializes the current visible view.
type Exporter interface {
	Export(ctx context.Context, format domain.ExportFormat, p domain.Projection) (*domain.ExportResult, error)
}

// LocalExporter produces JSON and CSV without any collaborator.
type LocalExporter struct {
	prefix string
	now    func() time.Time
}

// NewLocalExporter creates a LocalExporter naming files with prefix.
func NewLocalExporter(prefix string) *LocalExporter {
	return &LocalExporter{prefix: prefix, now: time.Now}
}

func (x *LocalExporter) Export(_ context.Context, format domain.ExportFormat, p domain.Projection) (*domain.ExportResult, error) {
	var (
		body []byte
		err  error
	)
	switch format {
	case domain.ExportFormatJSON:
		body, err = EncodeJSON(p)
	case domain.ExportFormatCSV:
		body, err = EncodeCSV(p)
	default:
		return nil, fmt.Errorf("%w: %s has no local serializer", domain.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", format, err)
	}
	return &domain.ExportResult{
		Format:      format,
		Filename:    BuildFilename(x.prefix, format, x.now()),
		ContentType: format.ContentType(),
		Body:        body,
		Source:      domain.ExportSourceLocal,
	}, nil
}

// DelegatingExporter sends the visible data to the remote formatter and falls back
// to the LocalExporter for formats that have a local serializer.
type DelegatingExporter struct {
	delegate port.ExportDelegate
	local    *LocalExporter
}

// NewDelegatingExporter creates a DelegatingExporter.
func NewDelegatingExporter(delegate port.ExportDelegate, local *LocalExporter) *DelegatingExporter {
	return &DelegatingExporter{delegate: delegate, local: local}
}

func (x *DelegatingExporter) Export(ctx context.Context, format domain.ExportFormat, p domain.Projection) (*domain.ExportResult, error) {
	if _, err := domain.ParseExportFormat(string(format)); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)

	resp, err := x.delegate.Export(ctx, domain.ExportRequest{Format: format, Data: VisibleData(p)})
	if err == nil && resp == nil {
		err = fmt.Errorf("%w: empty response", domain.ErrExportFailed)
	}
	if err == nil && !resp.Success {
		err = fmt.Errorf("%w: %s", domain.ErrExportFailed, failureMessage(resp.Message, format))
	}
	if err == nil {
		res, convErr := x.fromResponse(format, p, resp)
		if convErr == nil {
			return res, nil
		}
		err = convErr
	}

	if !format.HasLocalFallback() {
		log.Info("export failed without local fallback", "format", format, "error", err.Error())
		if !errors.Is(err, domain.ErrExportFailed) {
			err = fmt.Errorf("%w: %w", domain.ErrExportFailed, err)
		}
		return nil, err
	}
	log.Info("export delegate failed, using local serializer", "format", format, "error", err.Error())
	return x.local.Export(ctx, format, p)
}

// fromResponse turns a successful delegate response into a result.
func (x *DelegatingExporter) fromResponse(format domain.ExportFormat, p domain.Projection, resp *domain.ExportResponse) (*domain.ExportResult, error) {
	filename := SanitizeFilename(resp.Filename)
	if filename == "" {
		filename = BuildFilename(x.local.prefix, format, x.local.now())
	}
	res := &domain.ExportResult{
		Format:      format,
		Filename:    filename,
		ContentType: format.ContentType(),
		DownloadURL: resp.DownloadURL,
		Source:      domain.ExportSourceRemote,
	}

	switch format {
	case domain.ExportFormatJSON:
		// The JSON payload is always the local encoding of exactly what is visible.
		body, err := EncodeJSON(p)
		if err != nil {
			return nil, err
		}
		res.Body = body
	case domain.ExportFormatCSV:
		if resp.Data == "" && resp.DownloadURL == "" {
			return nil, fmt.Errorf("%w: response carried no data", domain.ErrExportFailed)
		}
		if resp.Data != "" {
			res.Body = []byte(resp.Data)
		}
	case domain.ExportFormatExcel:
		if resp.Data != "" {
			body, err := base64.StdEncoding.DecodeString(resp.Data)
			if err != nil {
				return nil, fmt.Errorf("%w: spreadsheet payload is not base64: %v", domain.ErrExportFailed, err)
			}
			info, err := InspectWorkbook(body)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
			}
			if !headerMatches(info.Header, Headers(p)) {
				return nil, fmt.Errorf("%w: %w", domain.ErrExportFailed, domain.ErrWorkbookMismatch)
			}
			res.Body = body
		}
	}
	return res, nil
}

func failureMessage(msg string, format domain.ExportFormat) string {
	if msg != "" {
		return msg
	}
	return fmt.Sprintf("error exporting to %s", format)
}
