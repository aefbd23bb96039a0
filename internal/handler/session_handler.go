package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shipdesk/internal/delivery"
	"shipdesk/internal/domain"
	"shipdesk/internal/export"
	"shipdesk/internal/logger"
	"shipdesk/internal/port"
	"shipdesk/internal/session"
	"shipdesk/internal/view"
)

// View states reported by GET /sessions/:id/view.
const (
	viewStateNoData = "no_data"
	viewStateReady  = "ready"
)

// SessionHandler binds table gestures to a session's engine.
type SessionHandler struct {
	registry       *session.Registry
	extractor      port.Extractor
	exporter       export.Exporter
	deliverer      delivery.Deliverer
	maxUploadBytes int64
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(
	registry *session.Registry,
	extractor port.Extractor,
	exporter export.Exporter,
	deliverer delivery.Deliverer,
	maxUploadBytes int64,
) *SessionHandler {
	return &SessionHandler{
		registry:       registry,
		extractor:      extractor,
		exporter:       exporter,
		deliverer:      deliverer,
		maxUploadBytes: maxUploadBytes,
	}
}

// ViewResponse is the rendered table sent to the client.
type ViewResponse struct {
	State       string                    `json:"state"`
	Columns     []domain.Column           `json:"columns,omitempty"`
	Rows        []domain.Row              `json:"rows,omitempty"`
	Total       int                       `json:"total"`
	RecordCount string                    `json:"record_count,omitempty"`
	ViewState   *domain.ViewState         `json:"view_state,omitempty"`
	Summary     *domain.ExtractionSummary `json:"summary,omitempty"`
}

// ExtractionResponse is returned after documents are extracted or records ingested.
type ExtractionResponse struct {
	Summary        *domain.ExtractionSummary `json:"summary,omitempty"`
	Duration       string                    `json:"duration,omitempty"`
	WelcomeMessage string                    `json:"welcome_message,omitempty"`
	View           ViewResponse              `json:"view"`
}

// ExportResponse describes an export delivered by URL rather than inline.
type ExportResponse struct {
	Format      domain.ExportFormat `json:"format"`
	Filename    string              `json:"filename"`
	DownloadURL string              `json:"download_url"`
	Source      domain.ExportSource `json:"source"`
}

type reorderRequest struct {
	Source domain.FieldID `json:"source" binding:"required"`
	Target domain.FieldID `json:"target" binding:"required"`
}

type visibilityRequest struct {
	Visible *bool `json:"visible" binding:"required"`
}

type queryRequest struct {
	Query string `json:"query"`
}

type exportRequest struct {
	Format string `json:"format" binding:"required"`
}

func newViewResponse(snap session.Snapshot) ViewResponse {
	if !snap.HasData {
		return ViewResponse{State: viewStateNoData}
	}
	rows := snap.Projection.Rows
	if rows == nil {
		rows = []domain.Row{}
	}
	st := snap.State
	return ViewResponse{
		State:       viewStateReady,
		Columns:     snap.Projection.Columns,
		Rows:        rows,
		Total:       snap.Projection.Total,
		RecordCount: snap.RecordCount,
		ViewState:   &st,
		Summary:     snap.Summary,
	}
}

func (h *SessionHandler) session(c *gin.Context) (*session.Session, bool) {
	sess, err := h.registry.Get(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return nil, false
	}
	return sess, true
}

// Create handles POST /api/v1/sessions
// @Summary Create a session
// @Description Open an empty table session; the view starts in the no_data state
// @Tags sessions
// @Produce json
// @Success 201 {object} APIResponse{data=object} "Session created"
// @Failure 503 {object} APIResponse "Session limit reached"
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	sess, err := h.registry.Create()
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, gin.H{
		"id":         sess.ID,
		"created_at": sess.CreatedAt,
		"view":       newViewResponse(sess.Snapshot()),
	})
}

// Close handles DELETE /api/v1/sessions/:id
// @Summary Close a session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Success 200 {object} APIResponse "Session closed"
// @Failure 404 {object} APIResponse "Session not found"
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Close(c *gin.Context) {
	if err := h.registry.Close(c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "session closed"})
}

// Upload handles POST /api/v1/sessions/:id/upload
// @Summary Upload documents for extraction
// @Description Documents arrive as multipart "files[]" parts and are forwarded to the extraction service
// @Tags sessions
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Param files[] formData file true "Documents to extract"
// @Success 200 {object} APIResponse{data=ExtractionResponse} "Extraction applied"
// @Failure 400 {object} APIResponse "Missing files or malformed form"
// @Failure 404 {object} APIResponse "Session not found"
// @Failure 409 {object} APIResponse "A newer extraction replaced this one"
// @Failure 413 {object} APIResponse "Upload too large"
// @Failure 422 {object} APIResponse "Extraction failed"
// @Failure 502 {object} APIResponse "Extraction service unavailable"
// @Router /sessions/{id}/upload [post]
func (h *SessionHandler) Upload(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE",
				fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit))
			return
		}
		RespondError(c, http.StatusBadRequest, "INVALID_UPLOAD", "multipart form with files[] is required")
		return
	}
	headers := form.File["files[]"]
	if len(headers) == 0 {
		headers = form.File["files"]
	}
	if len(headers) == 0 {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "at least one file is required")
		return
	}

	files, closeAll, err := openUploads(headers)
	defer closeAll()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_UPLOAD", err.Error())
		return
	}

	ctx := c.Request.Context()
	ticket := sess.BeginExtraction()
	result, err := h.extractor.Extract(ctx, files)
	if err != nil {
		HandleError(c, err)
		return
	}

	sum, err := sess.Complete(ticket, len(files), *result)
	if err != nil {
		logger.FromContext(ctx).Info("extraction not applied", "session", sess.ID, "error", err.Error())
		HandleError(c, err)
		return
	}
	logger.FromContext(ctx).Info("extraction applied", "session", sess.ID, "documents", len(files), "records", len(result.LabeledData))

	RespondOK(c, newExtractionResponse(sum, sess.Snapshot()))
}

// Ingest handles POST /api/v1/sessions/:id/ingest with an extraction result body.
// @Summary Ingest an extraction result
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Param request body domain.IngestResult true "Extraction result"
// @Success 200 {object} APIResponse{data=ExtractionResponse} "Records loaded"
// @Failure 400 {object} APIResponse "Invalid body"
// @Failure 404 {object} APIResponse "Session not found"
// @Failure 422 {object} APIResponse "Extraction reported failure"
// @Router /sessions/{id}/ingest [post]
func (h *SessionHandler) Ingest(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var result domain.IngestResult
	if err := c.ShouldBindJSON(&result); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "body must be an extraction result")
		return
	}

	sum, err := sess.Ingest(result)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, newExtractionResponse(sum, sess.Snapshot()))
}

// View handles GET /api/v1/sessions/:id/view
// @Summary Get the current table view
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Success 200 {object} APIResponse{data=ViewResponse} "Current view"
// @Failure 404 {object} APIResponse "Session not found"
// @Router /sessions/{id}/view [get]
func (h *SessionHandler) View(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	RespondOK(c, newViewResponse(sess.Snapshot()))
}

// Reorder handles POST /api/v1/sessions/:id/columns/reorder
// @Summary Move a column
// @Description Move the source column to the target column's position
// @Tags columns
// @Accept json
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Param request body reorderRequest true "Source and target column ids"
// @Success 200 {object} APIResponse{data=ViewResponse} "Updated view"
// @Failure 400 {object} APIResponse "Invalid body"
// @Failure 404 {object} APIResponse "Session not found"
// @Failure 409 {object} APIResponse "No data loaded"
// @Router /sessions/{id}/columns/reorder [post]
func (h *SessionHandler) Reorder(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "source and target are required")
		return
	}
	h.respondMutation(c, func() (session.Snapshot, error) {
		return sess.Reorder(req.Source, req.Target)
	})
}

// SetVisibility handles PUT /api/v1/sessions/:id/columns/:field/visibility
// @Summary Show or hide a column
// @Tags columns
// @Accept json
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Param field path string true "Column id"
// @Param request body visibilityRequest true "Visibility flag"
// @Success 200 {object} APIResponse{data=ViewResponse} "Updated view"
// @Failure 400 {object} APIResponse "Invalid body"
// @Failure 404 {object} APIResponse "Session not found"
// @Failure 409 {object} APIResponse "No data loaded"
// @Router /sessions/{id}/columns/{field}/visibility [put]
func (h *SessionHandler) SetVisibility(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req visibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "visible is required")
		return
	}
	field := domain.FieldID(c.Param("field"))
	h.respondMutation(c, func() (session.Snapshot, error) {
		return sess.SetVisible(field, *req.Visible)
	})
}

// SetQuery handles PUT /api/v1/sessions/:id/query
// @Summary Set the row search text
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Param request body queryRequest true "Search text"
// @Success 200 {object} APIResponse{data=ViewResponse} "Filtered view"
// @Failure 400 {object} APIResponse "Invalid body"
// @Failure 404 {object} APIResponse "Session not found"
// @Failure 409 {object} APIResponse "No data loaded"
// @Router /sessions/{id}/query [put]
func (h *SessionHandler) SetQuery(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "query must be a string")
		return
	}
	h.respondMutation(c, func() (session.Snapshot, error) {
		return sess.SetQuery(req.Query)
	})
}

// Columns handles GET /api/v1/sessions/:id/columns?q=
// @Summary List columns for the visibility menu
// @Description Columns whose display name contains q, in current order
// @Tags columns
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Param q query string false "Filter on display name"
// @Success 200 {object} APIResponse{data=[]domain.Column} "Matching columns"
// @Failure 404 {object} APIResponse "Session not found"
// @Failure 409 {object} APIResponse "No data loaded"
// @Router /sessions/{id}/columns [get]
func (h *SessionHandler) Columns(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	cols, err := sess.ColumnMenu(c.Query("q"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, cols)
}

// Export handles POST /api/v1/sessions/:id/export
// @Summary Export the visible view
// @Description Inline payloads are sent as file downloads; stored payloads come back as a URL
// @Tags sessions
// @Accept json
// @Produce octet-stream,json
// @Param id path string true "Session ID (UUID)"
// @Param request body exportRequest true "Export format (json, csv, excel)"
// @Success 200 {file} file "Exported file"
// @Success 200 {object} APIResponse{data=ExportResponse} "Download link"
// @Failure 400 {object} APIResponse "Unsupported format"
// @Failure 404 {object} APIResponse "Session not found"
// @Failure 409 {object} APIResponse "No data loaded"
// @Failure 502 {object} APIResponse "Export failed"
// @Router /sessions/{id}/export [post]
func (h *SessionHandler) Export(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "format is required")
		return
	}
	format, err := domain.ParseExportFormat(req.Format)
	if err != nil {
		HandleError(c, err)
		return
	}

	ctx := c.Request.Context()
	res, err := sess.Export(ctx, h.exporter, format)
	if err != nil {
		HandleError(c, err)
		return
	}
	res, err = h.deliverer.Deliver(ctx, res)
	if err != nil {
		HandleError(c, err)
		return
	}

	if len(res.Body) == 0 {
		if res.DownloadURL == "" {
			HandleError(c, fmt.Errorf("%w: no payload or download link", domain.ErrExportFailed))
			return
		}
		RespondOK(c, ExportResponse{
			Format:      res.Format,
			Filename:    res.Filename,
			DownloadURL: res.DownloadURL,
			Source:      res.Source,
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	c.Header("X-Export-Source", string(res.Source))
	c.Header("Content-Length", strconv.Itoa(len(res.Body)))
	c.Data(http.StatusOK, res.ContentType, res.Body)
}

func (h *SessionHandler) respondMutation(c *gin.Context, fn func() (session.Snapshot, error)) {
	snap, err := fn()
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, newViewResponse(snap))
}

func newExtractionResponse(sum *domain.ExtractionSummary, snap session.Snapshot) ExtractionResponse {
	out := ExtractionResponse{Summary: sum, View: newViewResponse(snap)}
	if sum != nil {
		out.Duration = view.FormatDuration(sum.Duration)
		if sum.Documents > 0 {
			out.WelcomeMessage = view.WelcomeMessage(*sum)
		}
	}
	return out
}

// openUploads opens every multipart file. closeAll is always safe to call.
func openUploads(headers []*multipart.FileHeader) ([]port.UploadFile, func(), error) {
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	files := make([]port.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, closeAll, fmt.Errorf("opening %s: %w", fh.Filename, err)
		}
		opened = append(opened, f)
		files = append(files, port.UploadFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		})
	}
	return files, closeAll, nil
}
