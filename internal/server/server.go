// Package server exposes the markup engine over HTTP for preview clients.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kk-code-lab/quizmark/internal/event"
	"github.com/kk-code-lab/quizmark/internal/grade"
	"github.com/kk-code-lab/quizmark/internal/logging"
	"github.com/kk-code-lab/quizmark/internal/markup"
)

// LearnerHeader carries the learner id attached to graded events.
const LearnerHeader = "X-User-ID"

type Config struct {
	Addr           string
	AllowOrigins   []string
	Mode           string
	QuestionPrefix string
	Policy         grade.Policy
}

type Server struct {
	parser    markup.Parser
	policy    grade.Policy
	publisher event.Publisher
	logger    *logging.Logger
	now       func() time.Time
}

func New(cfg Config, publisher event.Publisher, logger *logging.Logger) *Server {
	if publisher == nil {
		publisher = event.Nop{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Server{
		parser:    markup.NewParser(markup.Options{QuestionPrefix: cfg.QuestionPrefix}),
		policy:    cfg.Policy,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Handler builds the gin engine with CORS, request logging and recovery.
func (s *Server) Handler(cfg Config) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("[HTTP] %v | %3d | %13v | %15s | %-7s %#v\n%s",
			param.TimeStamp.Format("2006/01/02 - 15:04:05"),
			param.StatusCode,
			param.Latency,
			param.ClientIP,
			param.Method,
			param.Path,
			param.ErrorMessage,
		)
	}))
	r.Use(gin.CustomRecoveryWithWriter(s.logger.Writer(), func(c *gin.Context, recovered any) {
		s.logger.Error("panic in handler", fmt.Errorf("%v", recovered), map[string]any{"path": c.Request.URL.Path})
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}))
	r.Use(cors.New(corsConfig(cfg.AllowOrigins)))

	r.GET("/healthz", s.health)
	api := r.Group("/api/v1/markup")
	{
		api.POST("/parse", s.parse)
		api.POST("/render", s.render)
		api.POST("/grade", s.grade)
	}
	return r
}

// corsConfig allows every origin, without credentials, when none or "*"
// is configured.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Content-Length", "Accept", "Origin", LearnerHeader},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// Serve runs the HTTP server until ctx is cancelled.
func Serve(ctx context.Context, cfg Config, publisher event.Publisher, logger *logging.Logger) error {
	if cfg.Addr == "" {
		return errors.New("server: addr is required")
	}
	s := New(cfg, publisher, logger)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("listening on " + cfg.Addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) || err == nil {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	}
}
