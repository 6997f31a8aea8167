package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/chative-support-desk/server/internal/agent/graph"
	"github.com/chative-support-desk/server/internal/agent/graph/conversations"
	"github.com/chative-support-desk/server/internal/agent/model"
	logx "github.com/chative-support-desk/server/pkg/logger"
)

type Server struct {
	Router  *chi.Mux
	cfg     model.ServerConfig
	manager *conversations.Manager
	runner  graph.Runner
}

func New(cfg model.ServerConfig, manager *conversations.Manager, runner graph.Runner) *Server {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(TimeoutMiddleware(cfg.RequestTimeout))
	r.Use(middleware.Recoverer)
	if cfg.TracingEnabled {
		r.Use(func(next http.Handler) http.Handler {
			return otelhttp.NewHandler(next, "support-desk")
		})
	}

	s := &Server{Router: r, cfg: cfg, manager: manager, runner: runner}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Router.Get("/healthz", s.handleHealth)

	s.Router.Route("/v1", func(r chi.Router) {
		r.Post("/turns", s.handleStatelessTurn)
		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Post("/turns", s.handleTurn)
			r.Get("/turns", s.handleHistory)
			r.Delete("/", s.handleReset)
		})
	})
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logx.Info().Str("addr", s.cfg.Addr).Msg("starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		logx.Info().Msg("shutting down server")
		return srv.Shutdown(shutdownCtx)
	}
}
