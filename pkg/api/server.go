package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/yourusername/bggame/pkg/store"
)

// ServerConfig holds the server configuration.
type ServerConfig struct {
	Host          string        // Host to bind to (default "localhost")
	Port          int           // Port to listen on (default 8080)
	ReadTimeout   time.Duration // Read timeout (default 30s)
	WriteTimeout  time.Duration // Write timeout (default 30s)
	IdleTimeout   time.Duration // Idle timeout (default 60s)
	MaxAIWorkers  int           // Max concurrent AI operations (default 100)
	MaxSimWorkers int           // Max concurrent simulations (default 4)
	Version       string
	Store         store.GameStore // nil disables saving
	Publisher     EventPublisher  // nil disables broker publishing
	Defaults      GameDefaults
}

// DefaultConfig returns a ServerConfig with sensible defaults.
func DefaultConfig() ServerConfig {
	return ServerConfig{
		Host:          "localhost",
		Port:          8080,
		ReadTimeout:   30 * time.Second,
		WriteTimeout:  30 * time.Second,
		IdleTimeout:   60 * time.Second,
		MaxAIWorkers:  100,
		MaxSimWorkers: 4,
	}
}

// Server is the HTTP API server.
type Server struct {
	config   ServerConfig
	handlers *Handlers
	server   *http.Server
	pool     *WorkerPool
	logger   *zap.SugaredLogger
}

// NewServer creates a new API server.
func NewServer(config ServerConfig, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	poolConfig := PoolConfig{
		MaxAIWorkers:  config.MaxAIWorkers,
		MaxSimWorkers: config.MaxSimWorkers,
	}
	if poolConfig.MaxAIWorkers <= 0 {
		poolConfig.MaxAIWorkers = 100
	}
	if poolConfig.MaxSimWorkers <= 0 {
		poolConfig.MaxSimWorkers = 4
	}

	pool := NewWorkerPool(poolConfig)
	handlers := NewHandlers(config.Store, pool, config.Publisher, logger, config.Version, config.Defaults)

	return &Server{
		config:   config,
		handlers: handlers,
		pool:     pool,
		logger:   logger,
	}
}

// Pool returns the worker pool for monitoring.
func (s *Server) Pool() *WorkerPool {
	return s.pool
}

// Handlers exposes the handler set, mainly for tests that mount the
// router themselves.
func (s *Server) Handlers() *Handlers {
	return s.handlers
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requestLogger logs all requests.
func requestLogger(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Infow("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		})
	}
}

// Router builds the chi router with all API routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(corsMiddleware)

	h := s.handlers

	r.Get("/api/health", h.Health)
	r.Get("/api/version", h.Version)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/pool", h.PoolStatsHandler)
		r.Get("/saves", h.ListSaves)
		r.Post("/simulate", h.Simulate)
		r.Get("/simulate/stream", h.SimulateStream)
		r.Post("/records/parse", h.ParseRecord)

		r.Route("/games", func(r chi.Router) {
			r.Get("/", h.ListGames)
			r.Post("/", h.CreateGame)
			r.Post("/import", h.ImportGame)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetGame)
				r.Delete("/", h.DeleteGame)
				r.Post("/roll", h.Roll)
				r.Post("/move", h.Move)
				r.Post("/undo", h.Undo)
				r.Post("/end-turn", h.EndTurn)
				r.Post("/new-game", h.NewGame)
				r.Post("/double", h.Double)
				r.Post("/double/accept", h.AcceptDouble)
				r.Post("/double/decline", h.DeclineDouble)
				r.Get("/moves", h.LegalMoves)
				r.Get("/pips", h.Pips)
				r.Get("/hint", h.Hint)
				r.Post("/rate", h.RateMove)
				r.Post("/ai-turn", h.AITurn)
				r.Post("/save", h.SaveGame)
				r.Post("/load", h.LoadGame)
				r.Get("/export", h.ExportGame)
				r.Get("/record", h.Record)
				r.Get("/events", h.GameEvents)
				r.HandleFunc("/ws", h.GameSocket)
			})
		})
	})

	return r
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	s.logger.Infow("starting server", "addr", addr, "version", s.config.Version)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// ListenAndServeWithGracefulShutdown starts the server and handles shutdown signals.
func (s *Server) ListenAndServeWithGracefulShutdown() error {
	errChan := make(chan error, 1)

	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		s.logger.Infow("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}
