package handler_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipdesk/internal/domain"
	"shipdesk/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrSessionNotFound, http.StatusNotFound, "SESSION_NOT_FOUND"},
		{domain.ErrSessionLimit, http.StatusServiceUnavailable, "SESSION_LIMIT"},
		{domain.ErrNoData, http.StatusConflict, "NO_DATA"},
		{domain.ErrStaleResult, http.StatusConflict, "STALE_RESULT"},
		{fmt.Errorf("%w: bad", domain.ErrUnsupportedFormat), http.StatusBadRequest, "UNSUPPORTED_FORMAT"},
		{fmt.Errorf("%w: timeout", domain.ErrIngestionFailed), http.StatusUnprocessableEntity, "INGESTION_FAILED"},
		{fmt.Errorf("%w: %w", domain.ErrExportFailed, domain.ErrWorkbookMismatch), http.StatusBadGateway, "WORKBOOK_MISMATCH"},
		{fmt.Errorf("%w: offline", domain.ErrExportFailed), http.StatusBadGateway, "EXPORT_FAILED"},
		{domain.ErrDelegateUnavailable, http.StatusBadGateway, "DELEGATE_UNAVAILABLE"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestMapDomainError_CarriesCollaboratorMessage(t *testing.T) {
	_, _, msg := handler.MapDomainError(fmt.Errorf("%w: document unreadable", domain.ErrIngestionFailed))
	assert.Contains(t, msg, "document unreadable")
}

func TestHandleError_WritesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/", http.NoBody)

	handler.HandleError(c, errors.New("database exploded"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	assert.NotContains(t, w.Body.String(), "database exploded")
}
