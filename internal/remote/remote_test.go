package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipdesk/internal/config"
	"shipdesk/internal/domain"
	"shipdesk/internal/port"
)

func remoteConfig(baseURL string) *config.RemoteConfig {
	return &config.RemoteConfig{
		BaseURL:     baseURL,
		ExtractPath: "/upload",
		ExportPath:  "/export",
		ChatPath:    "/query",
		TimeoutSecs: 5,
	}
}

func TestExportClient_Success(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/export", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":true,"data":"\"Customer\"\n\"ACME\"\n","filename":"x.csv"}`)
	}))
	defer srv.Close()

	c := NewExportClient(remoteConfig(srv.URL))
	resp, err := c.Export(context.Background(), domain.ExportRequest{
		Format: domain.ExportFormatCSV,
		Data: []domain.FlatRow{{
			Keys:   []domain.FieldID{"customer"},
			Values: map[domain.FieldID]string{"customer": "ACME"},
		}},
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "x.csv", resp.Filename)
	assert.Equal(t, "csv", got["format"])
	assert.Equal(t, []any{map[string]any{"customer": "ACME"}}, got["data"])
}

func TestExportClient_EmptyDataIsArray(t *testing.T) {
	var raw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		raw = string(b)
		_, _ = io.WriteString(w, `{"success":true}`)
	}))
	defer srv.Close()

	_, err := NewExportClient(remoteConfig(srv.URL)).Export(context.Background(), domain.ExportRequest{Format: domain.ExportFormatJSON})
	require.NoError(t, err)
	assert.Contains(t, raw, `"data":[]`)
}

func TestExportClient_FailureEnvelopeIsDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"success":false,"message":"boom"}`)
	}))
	defer srv.Close()

	resp, err := NewExportClient(remoteConfig(srv.URL)).Export(context.Background(), domain.ExportRequest{Format: domain.ExportFormatCSV})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "boom", resp.Message)
}

func TestExportClient_NonJSONErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	}))
	defer srv.Close()

	_, err := NewExportClient(remoteConfig(srv.URL)).Export(context.Background(), domain.ExportRequest{Format: domain.ExportFormatCSV})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDelegateUnavailable)
	assert.Contains(t, err.Error(), "502")
}

func TestExportClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewExportClient(remoteConfig(url)).Export(context.Background(), domain.ExportRequest{Format: domain.ExportFormatCSV})
	assert.ErrorIs(t, err, domain.ErrDelegateUnavailable)
}

func TestChatClient_SendsFormField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/query", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "how many containers?", r.PostForm.Get("question"))
		_, _ = io.WriteString(w, `{"answer":"three"}`)
	}))
	defer srv.Close()

	reply, err := NewChatClient(remoteConfig(srv.URL)).Ask(context.Background(), "how many containers?")
	require.NoError(t, err)
	assert.Equal(t, "three", reply.Answer)
	assert.Empty(t, reply.Error)
}

func TestChatClient_ErrorReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"no data loaded"}`)
	}))
	defer srv.Close()

	reply, err := NewChatClient(remoteConfig(srv.URL)).Ask(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "no data loaded", reply.Error)
}

func TestExtractClient_MultipartUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		files := r.MultipartForm.File["files[]"]
		require.Len(t, files, 2)
		assert.Equal(t, "a.pdf", files[0].Filename)
		assert.Equal(t, "b.pdf", files[1].Filename)
		assert.Equal(t, []string{""}, r.MultipartForm.Value["ez_id"])

		f, err := files[0].Open()
		require.NoError(t, err)
		b, _ := io.ReadAll(f)
		assert.Equal(t, "first", string(b))

		_, _ = io.WriteString(w, `{"success":true,"labeled_data":[{"container_number":"MSCU1234567","container_weight":20000}]}`)
	}))
	defer srv.Close()

	res, err := NewExtractClient(remoteConfig(srv.URL)).Extract(context.Background(), []port.UploadFile{
		{Name: "a.pdf", ContentType: "application/pdf", Body: strings.NewReader("first")},
		{Name: "b.pdf", Body: strings.NewReader("second")},
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Len(t, res.LabeledData, 1)
	assert.Equal(t, "20000", res.LabeledData[0]["container_weight"])
}

func TestExtractClient_FailureMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":false,"message":"unreadable document"}`)
	}))
	defer srv.Close()

	res, err := NewExtractClient(remoteConfig(srv.URL)).Extract(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "unreadable document", res.Message)
}
