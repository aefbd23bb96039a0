package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	CORS    CORSConfig
	Table   TableConfig
	Remote  RemoteConfig
	Export  ExportConfig
	S3      S3Config
	Session SessionConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	MaxUploadMB  int64         `mapstructure:"max_upload_mb"`
}

// MaxUploadBytes returns the request body limit for document uploads.
func (s *ServerConfig) MaxUploadBytes() int64 {
	if s.MaxUploadMB <= 0 {
		return 50 << 20
	}
	return s.MaxUploadMB << 20
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RemoteConfig locates the extraction, export and chat collaborators.
type RemoteConfig struct {
	BaseURL            string `mapstructure:"base_url"`
	ExtractPath        string `mapstructure:"extract_path"`
	ExportPath         string `mapstructure:"export_path"`
	ChatPath           string `mapstructure:"chat_path"`
	TimeoutSecs        int    `mapstructure:"timeout_secs"`
	ExtractTimeoutSecs int    `mapstructure:"extract_timeout_secs"`
}

// Timeout returns the export/chat request timeout.
func (r *RemoteConfig) Timeout() time.Duration {
	return secondsOr(r.TimeoutSecs, 30)
}

// ExtractTimeout returns the extraction request timeout.
func (r *RemoteConfig) ExtractTimeout() time.Duration {
	return secondsOr(r.ExtractTimeoutSecs, 300)
}

// ExportConfig holds export naming and delivery settings.
type ExportConfig struct {
	FilenamePrefix string `mapstructure:"filename_prefix"`
	Delivery       string `mapstructure:"delivery"` // "inline" or "s3"
	KeyPrefix      string `mapstructure:"key_prefix"`
}

// S3Config holds AWS S3 settings for export delivery.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// SessionConfig bounds the in-memory session registry.
type SessionConfig struct {
	MaxSessions int           `mapstructure:"max_sessions"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
}

func secondsOr(secs, fallback int) time.Duration {
	if secs <= 0 {
		secs = fallback
	}
	return time.Duration(secs) * time.Second
}

// Load reads configuration from environment variables with the SHIPDESK_ prefix.
// A .env file in the working directory (or at SHIPDESK_ENV_FILE) is loaded first;
// variables already set in the environment win.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("SHIPDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_upload_mb", 50)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5000,http://127.0.0.1:5000")

	// Table defaults: empty means the built-in shipment schema
	v.SetDefault("table.field_order", "")
	v.SetDefault("table.display_names", "")
	v.SetDefault("table.aliases", "")
	v.SetDefault("table.date_fields", "")
	v.SetDefault("table.datetime_fields", "")
	v.SetDefault("table.directional_field", "")

	// Remote collaborator defaults
	v.SetDefault("remote.base_url", "http://localhost:5000")
	v.SetDefault("remote.extract_path", "/upload")
	v.SetDefault("remote.export_path", "/export")
	v.SetDefault("remote.chat_path", "/query")
	v.SetDefault("remote.timeout_secs", 30)
	v.SetDefault("remote.extract_timeout_secs", 300)

	// Export defaults
	v.SetDefault("export.filename_prefix", "shipping_data")
	v.SetDefault("export.delivery", "inline")
	v.SetDefault("export.key_prefix", "exports")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "shipdesk-exports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 900)

	// Session defaults
	v.SetDefault("session.max_sessions", 1000)
	v.SetDefault("session.idle_timeout", "2h")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                 "SHIPDESK_SERVER_PORT",
		"server.read_timeout":         "SHIPDESK_SERVER_READ_TIMEOUT",
		"server.write_timeout":        "SHIPDESK_SERVER_WRITE_TIMEOUT",
		"server.environment":          "SHIPDESK_SERVER_ENVIRONMENT",
		"server.max_upload_mb":        "SHIPDESK_SERVER_MAX_UPLOAD_MB",
		"log.level":                   "SHIPDESK_LOG_LEVEL",
		"log.format":                  "SHIPDESK_LOG_FORMAT",
		"cors.allowed_origins":        "SHIPDESK_CORS_ALLOWED_ORIGINS",
		"table.field_order":           "SHIPDESK_TABLE_FIELD_ORDER",
		"table.display_names":         "SHIPDESK_TABLE_DISPLAY_NAMES",
		"table.aliases":               "SHIPDESK_TABLE_ALIASES",
		"table.date_fields":           "SHIPDESK_TABLE_DATE_FIELDS",
		"table.datetime_fields":       "SHIPDESK_TABLE_DATETIME_FIELDS",
		"table.directional_field":     "SHIPDESK_TABLE_DIRECTIONAL_FIELD",
		"remote.base_url":             "SHIPDESK_REMOTE_BASE_URL",
		"remote.extract_path":         "SHIPDESK_REMOTE_EXTRACT_PATH",
		"remote.export_path":          "SHIPDESK_REMOTE_EXPORT_PATH",
		"remote.chat_path":            "SHIPDESK_REMOTE_CHAT_PATH",
		"remote.timeout_secs":         "SHIPDESK_REMOTE_TIMEOUT_SECS",
		"remote.extract_timeout_secs": "SHIPDESK_REMOTE_EXTRACT_TIMEOUT_SECS",
		"export.filename_prefix":      "SHIPDESK_EXPORT_FILENAME_PREFIX",
		"export.delivery":             "SHIPDESK_EXPORT_DELIVERY",
		"export.key_prefix":           "SHIPDESK_EXPORT_KEY_PREFIX",
		"s3.region":                   "SHIPDESK_S3_REGION",
		"s3.bucket":                   "SHIPDESK_S3_BUCKET",
		"s3.endpoint":                 "SHIPDESK_S3_ENDPOINT",
		"s3.access_key":               "SHIPDESK_S3_ACCESS_KEY",
		"s3.secret_key":               "SHIPDESK_S3_SECRET_KEY",
		"s3.presign_expiry":           "SHIPDESK_S3_PRESIGN_EXPIRY",
		"session.max_sessions":        "SHIPDESK_SESSION_MAX_SESSIONS",
		"session.idle_timeout":        "SHIPDESK_SESSION_IDLE_TIMEOUT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it if SHIPDESK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SHIPDESK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
		MaxUploadMB:  v.GetInt64("server.max_upload_mb"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins"), ","),
	}

	table, err := parseTable(
		v.GetString("table.field_order"),
		v.GetString("table.display_names"),
		v.GetString("table.aliases"),
		v.GetString("table.date_fields"),
		v.GetString("table.datetime_fields"),
		v.GetString("table.directional_field"),
	)
	if err != nil {
		return nil, err
	}
	cfg.Table = *table

	cfg.Remote = RemoteConfig{
		BaseURL:            strings.TrimRight(v.GetString("remote.base_url"), "/"),
		ExtractPath:        v.GetString("remote.extract_path"),
		ExportPath:         v.GetString("remote.export_path"),
		ChatPath:           v.GetString("remote.chat_path"),
		TimeoutSecs:        v.GetInt("remote.timeout_secs"),
		ExtractTimeoutSecs: v.GetInt("remote.extract_timeout_secs"),
	}
	cfg.Export = ExportConfig{
		FilenamePrefix: v.GetString("export.filename_prefix"),
		Delivery:       strings.ToLower(v.GetString("export.delivery")),
		KeyPrefix:      strings.Trim(v.GetString("export.key_prefix"), "/"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Session = SessionConfig{
		MaxSessions: v.GetInt("session.max_sessions"),
		IdleTimeout: v.GetDuration("session.idle_timeout"),
	}

	return cfg, nil
}

func loadDotEnv() error {
	path := os.Getenv("SHIPDESK_ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return godotenv.Load(path)
}

// splitList splits s on sep, trimming blanks and dropping empty entries.
func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
