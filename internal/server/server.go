// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/rs/zerolog"

	"optionscout/internal/config"
	"optionscout/internal/pipeline"
	"optionscout/internal/store"
)

// Server serves the analysis API.
type Server struct {
	pipeline *pipeline.Pipeline
	store    *store.SQLiteStore
	logger   zerolog.Logger
	cfg      config.ServerConfig
	http     *http.Server
}

func New(p *pipeline.Pipeline, st *store.SQLiteStore, cfg config.ServerConfig, logger zerolog.Logger) *Server {
	s := &Server{
		pipeline: p,
		store:    st,
		logger:   logger,
		cfg:      cfg,
	}
	s.http = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Routes builds the router. Exposed for handler tests.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(s.requestLogger)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Post("/analyze", s.handleAnalyzeUpload)
		r.Post("/chain", s.handleAnalyzeLive)
		r.Get("/news", s.handleMarketNews)
		r.Get("/news/{symbol}", s.handleStockNews)
		r.Get("/symbols", s.handleSymbols)
		r.Get("/price/{symbol}", s.handlePrice)
		r.Get("/volume/{symbol}", s.handleVolumeTrend)
		r.Get("/journal", s.handleJournal)
	})

	return r
}

// ListenAndServe blocks until the context is cancelled or the listener
// fails, then drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.cfg.Addr).Msg("http server listening")
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeout := s.cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}
