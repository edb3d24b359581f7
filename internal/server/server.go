package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adetolu/medfact/internal/model"
)

// Verifier checks a single health claim
type Verifier interface {
	Check(ctx context.Context, claim string) (*model.VerdictResponse, error)
}

// Knowledge exposes the curated store operations the API needs
type Knowledge interface {
	Count(ctx context.Context) (int, error)
}

// Server is the HTTP API around the verification agent
type Server struct {
	engine    *gin.Engine
	verifier  Verifier
	knowledge Knowledge
	claims    []model.CuratedClaim
	provider  string
	cfg       model.ServerConfig
	logger    *slog.Logger
}

// New creates the API server. The curated claims slice backs the read-only
// listing endpoint; it is never mutated.
func New(verifier Verifier, knowledge Knowledge, claims []model.CuratedClaim, provider string, cfg model.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:    engine,
		verifier:  verifier,
		knowledge: knowledge,
		claims:    claims,
		provider:  provider,
		cfg:       cfg,
		logger:    logger,
	}

	engine.Use(requestID(), requestLogger(logger))
	s.routes()

	return s
}

func (s *Server) routes() {
	s.engine.GET("/health", s.handleHealth)

	v1 := s.engine.Group("/v1")
	{
		v1.POST("/verify", s.handleVerify)
		v1.GET("/claims", s.handleListClaims)
	}
}

// Handler exposes the underlying handler for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves the API until the context is cancelled
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.WriteTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
