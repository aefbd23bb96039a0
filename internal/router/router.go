package router

import (
	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"

	"shipdesk/internal/handler"
	"shipdesk/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	log *logr.Logger,
	allowedOrigins []string,
	sessionH *handler.SessionHandler,
	chatH *handler.ChatHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	v1.POST("/chat", chatH.Ask)

	v1.POST("/sessions", sessionH.Create)
	sessions := v1.Group("/sessions/:id")
	sessions.DELETE("", sessionH.Close)
	sessions.POST("/upload", sessionH.Upload)
	sessions.POST("/ingest", sessionH.Ingest)
	sessions.GET("/view", sessionH.View)
	sessions.PUT("/query", sessionH.SetQuery)
	sessions.POST("/export", sessionH.Export)

	columns := sessions.Group("/columns")
	columns.GET("", sessionH.Columns)
	columns.POST("/reorder", sessionH.Reorder)
	columns.PUT("/:field/visibility", sessionH.SetVisibility)

	return r
}
