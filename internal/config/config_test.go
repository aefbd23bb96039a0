package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipdesk/internal/config"
	"shipdesk/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SHIPDESK_ENV_FILE", "does-not-exist.env")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "http://localhost:5000", cfg.Remote.BaseURL)
	assert.Equal(t, "/export", cfg.Remote.ExportPath)
	assert.Equal(t, 30*time.Second, cfg.Remote.Timeout())
	assert.Equal(t, 300*time.Second, cfg.Remote.ExtractTimeout())
	assert.Equal(t, "shipping_data", cfg.Export.FilenamePrefix)
	assert.Equal(t, "inline", cfg.Export.Delivery)
	assert.Equal(t, 1000, cfg.Session.MaxSessions)
	assert.Equal(t, 2*time.Hour, cfg.Session.IdleTimeout)
	assert.Equal(t, int64(50<<20), cfg.Server.MaxUploadBytes())
	assert.Len(t, cfg.CORS.AllowedOrigins, 4)
	assert.Empty(t, cfg.Table.FieldOrder)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SHIPDESK_ENV_FILE", "does-not-exist.env")
	t.Setenv("SHIPDESK_REMOTE_BASE_URL", "https://extract.example.com/")
	t.Setenv("SHIPDESK_EXPORT_DELIVERY", "S3")
	t.Setenv("SHIPDESK_TABLE_FIELD_ORDER", "container_number, office_name")
	t.Setenv("SHIPDESK_TABLE_DISPLAY_NAMES", "container_number=Box")
	t.Setenv("SHIPDESK_TABLE_ALIASES", "container_number=container|cntr")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://extract.example.com", cfg.Remote.BaseURL)
	assert.Equal(t, "s3", cfg.Export.Delivery)
	assert.Equal(t, []string{"container_number", "office_name"}, cfg.Table.FieldOrder)
	assert.Equal(t, map[string]string{"container_number": "Box"}, cfg.Table.DisplayNames)
	assert.Equal(t, []string{"container", "cntr"}, cfg.Table.Aliases["container_number"])
}

func TestLoad_PortFromPlatform(t *testing.T) {
	t.Setenv("SHIPDESK_ENV_FILE", "does-not-exist.env")
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
}

func TestLoad_MalformedDisplayNames(t *testing.T) {
	t.Setenv("SHIPDESK_ENV_FILE", "does-not-exist.env")
	t.Setenv("SHIPDESK_TABLE_DISPLAY_NAMES", "container_number")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestTableConfig_Schema(t *testing.T) {
	tc := config.TableConfig{
		FieldOrder:       []string{"container_number", "office_name", "container_number"},
		DisplayNames:     map[string]string{"container_number": "Box"},
		Aliases:          map[string][]string{"container_number": {"cntr"}},
		DateFields:       []string{"arrival"},
		DirectionalField: "direction",
	}

	s := tc.Schema()

	assert.Equal(t, []domain.FieldID{"container_number", "office_name"}, s.Fields)
	assert.Equal(t, "Box", s.DisplayName("container_number"))
	assert.Equal(t, "Office", s.DisplayName("office_name"))
	assert.Equal(t, []domain.FieldID{"container_number", "cntr"}, s.SourceFields("container_number"))
	assert.True(t, s.DateFields["arrival"])
	assert.False(t, s.DateFields["eta_date"])
	assert.True(t, s.DateTimeFields["pickup_appointment_date_time"])
	assert.Equal(t, domain.FieldID("direction"), s.DirectionalField)
}

func TestTableConfig_EmptyKeepsDefaults(t *testing.T) {
	s := (&config.TableConfig{}).Schema()
	assert.Len(t, s.Fields, 34)
	assert.Equal(t, domain.FieldID("type"), s.DirectionalField)
}
