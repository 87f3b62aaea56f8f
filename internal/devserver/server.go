// Package devserver is an in-memory task service for local development.
// It serves the same REST surface the client talks to and assigns
// categories on create.
package devserver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// Server is the development task service.
type Server struct {
	repo        *memoryRepo
	categorizer Categorizer
	router      *gin.Engine
	logger      *log.Logger
	now         func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithCategorizer sets the categorization strategy.
func WithCategorizer(c Categorizer) Option {
	return func(s *Server) {
		if c != nil {
			s.categorizer = c
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New creates a server with an empty task collection.
func New(opts ...Option) *Server {
	s := &Server{
		categorizer: KeywordStrategy{},
		logger:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.repo = newMemoryRepo(s.now)

	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())
	s.router = router

	router.GET("/health", s.handleHealth)

	api := router.Group("/api")
	{
		api.POST("/tasks", s.handleCreate)
		api.GET("/tasks", s.handleList)
		api.GET("/tasks/:id", s.handleGet)
		api.PUT("/tasks/:id", s.handleUpdate)
		api.DELETE("/tasks/:id", s.handleDelete)
	}

	return s
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("stopped")
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
