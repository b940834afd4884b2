package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/alkime/teeshot/internal/catalog"
	"github.com/alkime/teeshot/internal/config"
	"github.com/alkime/teeshot/internal/studio"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// Server represents the HTTP server
type Server struct {
	config  *config.Config
	logger  *slog.Logger
	router  *gin.Engine
	studio  *studio.Studio
	catalog *catalog.Catalog
	// background work such as batch image runs outlives the request
	background context.Context
}

// New creates a new Server instance
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, st *studio.Studio, cat *catalog.Catalog) *Server {
	// Set Gin mode based on environment
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	// Configure proxy trust for production (Fly.io)
	if cfg.Env == config.EnvProduction {
		router.TrustedPlatform = gin.PlatformFlyIO
		logger.Debug("Configured trusted platform", "platform", "fly.io")
	}
	// Development: no reverse proxy, uses direct client IP

	server := &Server{
		config:     cfg,
		logger:     logger,
		router:     router,
		studio:     st,
		catalog:    cat,
		background: ctx,
	}

	// Setup middleware and routes
	setupSecurityMiddleware(router, cfg, logger)
	server.setupRoutes()

	return server
}

// Router exposes the handler for tests and embedding.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run starts the HTTP server and shuts it down when ctx is done.
func Run(ctx context.Context, s *Server) error {
	srv := &http.Server{
		Addr:              ":" + s.config.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", "port", s.config.Port)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.GET("/catalog", s.handleCatalog)
		api.GET("/catalog/quick", s.handleQuickInput)
		api.POST("/generate", s.handleGenerate)
		api.POST("/video", s.handleVideo)

		api.POST("/sessions", s.handleImport)
		sessions := api.Group("/sessions/:id", s.loadSession)
		{
			sessions.GET("", s.handleSession)
			sessions.DELETE("", s.handleDeleteSession)
			sessions.GET("/html", s.handleSessionHTML)
			sessions.GET("/export", s.handleExport)
			sessions.GET("/images", s.handleImageStatuses)
			sessions.POST("/images", s.handleGenerateImage)
			sessions.POST("/images/all", s.handleGenerateAllImages)
			sessions.DELETE("/images", s.handleDeleteImage)
			sessions.GET("/images/download", s.handleDownloadImage)
			sessions.GET("/ws", s.handleWatch)
		}
	}

	// Serve the web client; NoRoute only triggers when nothing above and no
	// static file matches.
	s.router.Use(static.Serve("/", static.LocalFile(s.config.StaticDir, false)))
	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  "teeshot",
		"sessions": s.studio.Sessions().Len(),
	})
}
