package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"shipdesk/internal/config"
	"shipdesk/internal/delivery"
	"shipdesk/internal/export"
	"shipdesk/internal/handler"
	"shipdesk/internal/logger"
	"shipdesk/internal/port"
	"shipdesk/internal/remote"
	"shipdesk/internal/router"
	"shipdesk/internal/session"
	s3storage "shipdesk/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.Init(cfg.Log)
	defer logger.Sync()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize collaborator clients
	extractor := remote.NewExtractClient(&cfg.Remote)
	exportClient := remote.NewExportClient(&cfg.Remote)
	chatClient := remote.NewChatClient(&cfg.Remote)

	// Initialize export delivery
	var storage port.ObjectStorage
	if cfg.Export.Delivery == delivery.ModeS3 {
		storage, err = s3storage.NewS3Client(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}
	deliverer, err := delivery.New(cfg.Export.Delivery, storage, cfg.Export.KeyPrefix)
	if err != nil {
		return fmt.Errorf("failed to initialize export delivery: %w", err)
	}

	exporter := export.NewDelegatingExporter(exportClient, export.NewLocalExporter(cfg.Export.FilenamePrefix))
	registry := session.NewRegistry(cfg.Table.Schema(), cfg.Session.MaxSessions)

	// Initialize handlers
	sessionH := handler.NewSessionHandler(registry, extractor, exporter, deliverer, cfg.Server.MaxUploadBytes())
	chatH := handler.NewChatHandler(chatClient)
	healthH := handler.NewHealthHandler(registry, cfg.Session.MaxSessions)

	// Setup router
	r := router.Setup(log, cfg.CORS.AllowedOrigins, sessionH, chatH, healthH)

	go evictIdleSessions(ctx, registry, cfg.Session.IdleTimeout)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", cfg.Server.Port, "remote", cfg.Remote.BaseURL, "delivery", cfg.Export.Delivery)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// evictIdleSessions closes sessions that have been idle longer than idle.
func evictIdleSessions(ctx context.Context, registry *session.Registry, idle time.Duration) {
	if idle <= 0 {
		return
	}
	ticker := time.NewTicker(idle / 4)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := registry.Evict(idle); n > 0 {
				logger.Global().Info("evicted idle sessions", "count", n)
			}
		}
	}
}
