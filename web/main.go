package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/DeafMist/guestpost-report/internal/config"
	"github.com/DeafMist/guestpost-report/internal/logger"
	"github.com/DeafMist/guestpost-report/internal/metrics"
	"github.com/DeafMist/guestpost-report/internal/pipeline"
	"github.com/DeafMist/guestpost-report/internal/session"
)

const sessionCookie = "gpr_session"

func main() {
	log := logger.New("web")
	cfg, err := config.LoadWeb()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	srv, err := newServer(log, cfg)
	if err != nil {
		log.Error("init server", slog.Any("err", err))
		os.Exit(1)
	}

	handler := srv.routes()

	httpServer := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		log.Info("web server starting", slog.String("addr", cfg.BindAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", slog.Any("err", err))
	}
}

type server struct {
	log      *slog.Logger
	cfg      *config.Web
	pipe     *pipeline.Pipeline
	sessions *session.Store
	metrics  *metrics.Metrics
}

func newServer(log *slog.Logger, cfg *config.Web) (*server, error) {
	pipe, err := pipeline.New(cfg.PipelineOptions())
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}

	sessions := session.NewStore(cfg.SessionCapacity, cfg.SessionTTL)
	return &server{
		log:      log,
		cfg:      cfg,
		pipe:     pipe,
		sessions: sessions,
		metrics:  metrics.New(sessions.Len),
	}, nil
}

func (s *server) routes() http.Handler {
	uploadLimit := stdlib.NewMiddleware(limiter.New(memory.NewStore(), s.cfg.UploadRate))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	r.Get("/", s.handleIndex)
	r.With(uploadLimit.Handler).Post("/upload", s.handleUpload)

	r.Route("/api", func(r chi.Router) {
		r.Get("/months", s.handleMonths)
		r.Get("/pairs", s.handlePairs)
		r.Get("/summary", s.handleSummary)
		r.Get("/compare", s.handleCompare)
	})

	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
