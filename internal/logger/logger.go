// Package logger builds the process-wide structured logger: a zap core wrapped as a
// logr.Logger and carried through request contexts.
package logger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"shipdesk/internal/config"
)

type loggerContextKey struct{}

const (
	TimeStampKey = "timestamp"
	MessageKey   = "message"
	ServiceKey   = "service"
)

var (
	once sync.Once

	globalZap  *zap.Logger
	globalLogr *logr.Logger

	noop = logr.Discard()
)

// Init builds the global logger from config. Only the first call has an effect.
func Init(cfg config.LogConfig) *logr.Logger {
	once.Do(func() {
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderCfg.TimeKey = TimeStampKey
		encoderCfg.MessageKey = MessageKey

		var encoder zapcore.Encoder
		if cfg.Format == "json" {
			encoder = zapcore.NewJSONEncoder(encoderCfg)
		} else {
			encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
			encoder = zapcore.NewConsoleEncoder(encoderCfg)
		}

		core := zapcore.NewCore(
			encoder,
			zapcore.Lock(os.Stderr),
			zap.NewAtomicLevelAt(ParseLevel(cfg.Level)),
		).With([]zapcore.Field{zap.String(ServiceKey, "shipdesk")})

		globalZap = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
		l := zapr.NewLogger(globalZap)
		globalLogr = &l
	})
	return Global()
}

// ParseLevel maps a config level name to a zap level. Unknown names mean info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// WithLogger attaches a logger to ctx.
func WithLogger(ctx context.Context, log *logr.Logger) context.Context {
	if lp, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok && lp == log {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext returns the logger stored in ctx, the global logger, or a no-op logger.
func FromContext(ctx context.Context) *logr.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok {
			return log
		}
	}
	return Global()
}

// Global returns the process logger, or a no-op logger before Init.
func Global() *logr.Logger {
	if globalLogr != nil {
		return globalLogr
	}
	return &noop
}

// Sync flushes buffered entries. Call it before exit.
func Sync() {
	if globalZap == nil {
		return
	}
	if err := globalZap.Sync(); err != nil && !isIgnorableSyncError(err) {
		fmt.Fprintf(os.Stderr, "WARNING: failed to sync logger: %v\n", err)
	}
}

// isIgnorableSyncError filters the errors fsync returns for pipes and terminals.
func isIgnorableSyncError(err error) bool {
	return errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) ||
		errors.Is(err, syscall.EIO) || errors.Is(err, syscall.EBADF)
}
