package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"onlinelibrary/internal/catalog"
	"onlinelibrary/internal/config"
	"onlinelibrary/internal/handlers"
	"onlinelibrary/internal/metrics"
	"onlinelibrary/internal/middleware"
	"onlinelibrary/internal/render"
	"onlinelibrary/internal/router"
)

const (
	// shutdownTimeout bounds how long active requests may take to drain.
	shutdownTimeout = 30 * time.Second

	// limiterIdle is how long a client's rate-limit bucket is kept unused.
	limiterIdle = 10 * time.Minute
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Long: `Run the Online Library web server.

Configuration comes from the environment and an optional .env file in the
working directory. The server stops gracefully on SIGINT or SIGTERM.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load configuration", err)
			}
			slog.SetDefault(newLogger(cmd.ErrOrStderr(), cfg, rootOpts.Verbose))

			srv, err := newServer(cfg)
			if err != nil {
				slog.Error("failed to initialize server", "error", err)
				return WrapExitError(ExitFailure, "failed to initialize server", err)
			}
			defer srv.Close()

			ln, err := net.Listen("tcp", cfg.Addr())
			if err != nil {
				slog.Error("server failed to start", "error", err)
				return WrapExitError(ExitFailure, "failed to listen", err)
			}
			return srv.Run(cmd.Context(), ln)
		},
	}
}

// newLogger builds the process logger: text in development, JSON
// otherwise. verbose forces debug level.
func newLogger(w io.Writer, cfg *config.Config, verbose bool) *slog.Logger {
	level := cfg.LogLevel
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.IsDev() {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// server is the HTTP server with the resources it owns.
type server struct {
	http    *http.Server
	limiter *middleware.RateLimiter
}

// newServer seeds the catalog and wires the renderer, handlers and router.
func newServer(cfg *config.Config) (*server, error) {
	store, err := catalog.New()
	if err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	metrics.CatalogBooks.Set(float64(store.Len()))

	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		return nil, fmt.Errorf("initialize template renderer: %w", err)
	}

	s := &server{}
	opts := router.Options{
		SecureCookies: !cfg.IsDev(),
		Metrics:       cfg.MetricsEnabled,
	}
	if cfg.RateLimited() {
		s.limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, limiterIdle)
		opts.Limiter = s.limiter
	} else {
		slog.Warn("rate limiting disabled for add-book submissions")
	}

	slog.Info("catalog seeded", "books", store.Len())

	s.http = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.New(handlers.NewLibrary(renderer, store), store, opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s, nil
}

// Run serves on ln until ctx is cancelled, then drains active requests.
func (s *server) Run(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", ln.Addr().String())
		errCh <- s.http.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		slog.Error("server failed", "error", err)
		return WrapExitError(ExitFailure, "server failed", err)
	case <-ctx.Done():
	}

	slog.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		return WrapExitError(ExitFailure, "server forced to shutdown", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// Close releases background resources. It does not stop a running server.
func (s *server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}
