package realtime

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/cleanride/realtime/arrivals"
	"github.com/cleanride/realtime/config"
	"github.com/cleanride/realtime/gtfsrt"
	"github.com/cleanride/realtime/metrics"
)

// Server is the HTTP front of the arrival pipeline.
type Server struct {
	httpServer *http.Server
	service    *arrivals.Service
	fetcher    *gtfsrt.Fetcher
	log        *zap.Logger

	// done is closed once Shutdown has finished draining, so Start does
	// not return while in-flight requests are still being served.
	done     chan struct{}
	doneOnce sync.Once
}

func NewServer(cfg config.ServerConfig, svc *arrivals.Service, fetcher *gtfsrt.Fetcher, collector *metrics.Collector, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		service: svc,
		fetcher: fetcher,
		log:     logger,
		done:    make(chan struct{}),
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins(cfg.AllowedOrigins),
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/arrivals/{stationID}", s.handleArrivals)
	if collector != nil {
		r.Method(http.MethodGet, "/metrics", collector.Handler())
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func allowedOrigins(configured []string) []string {
	if len(configured) == 0 {
		return []string{"*"}
	}
	return configured
}

// Handler exposes the routed handler, for tests.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Start serves until the listener fails or Shutdown is called. On shutdown
// it returns only after the drain completes; ListenAndServe reports
// ErrServerClosed the moment shutdown begins, which is too early to tear
// down the stores handlers may still be using.
func (s *Server) Start() error {
	s.log.Info("server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	<-s.done
	return nil
}

// Shutdown drains in-flight requests, then releases Start.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	s.doneOnce.Do(func() { close(s.done) })
	return err
}

// WaitForShutdown blocks until SIGINT or SIGTERM, then drains the server.
func (s *Server) WaitForShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	s.log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		s.log.Error("server shutdown", zap.Error(err))
		return
	}
	s.log.Info("server shut down")
}
