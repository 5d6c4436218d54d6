// package server exposes the converter and chat bot over HTTP
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytlink/internal/chat"
	"github.com/desertthunder/ytlink/internal/services"
	"github.com/desertthunder/ytlink/internal/shared"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	ServiceName           = "ytlink"
	DefaultRequestTimeout = 30 * time.Second
	shutdownTimeout       = 5 * time.Second
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Opts configures a [Server]. Zero values fall back to [shared.DefaultConfig].
type Opts struct {
	Converter      services.Converter
	Bot            *chat.Bot
	Logger         *log.Logger
	RateLimit      float64 // Requests per second across all callers; <= 0 disables limiting
	Burst          int
	RequestTimeout time.Duration
}

// Server serves the conversion API.
type Server struct {
	converter services.Converter
	bot       *chat.Bot
	logger    *log.Logger
	rateLimit float64
	burst     int
	timeout   time.Duration
}

// NewServer creates a new Server.
func NewServer(opts Opts) *Server {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Bot == nil && opts.Converter != nil {
		opts.Bot = chat.NewBot(opts.Converter, 0, opts.Logger)
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}

	return &Server{
		converter: opts.Converter,
		bot:       opts.Bot,
		logger:    opts.Logger,
		rateLimit: opts.RateLimit,
		burst:     opts.Burst,
		timeout:   opts.RequestTimeout,
	}
}

// Router builds the chi router with the standard middleware stack followed by any extra middlewares.
func (s *Server) Router(middlewares ...Middleware) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))
	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		if s.rateLimit > 0 {
			r.Use(RateLimit(s.rateLimit, s.burst))
		}
		r.Get("/convert", s.handleConvert)
		r.Post("/convert", s.handleConvertCommand)
		r.Post("/messages", s.handleMessage)
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrServiceUnavailable, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
		close(serverErrors)
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	return nil
}
