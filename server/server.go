package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"notemark/config"
	"notemark/logger"
)

const (
	readHeaderTimeout      = 5 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

type Server struct {
	srv             *http.Server
	shutdownTimeout time.Duration
}

func New(cfg config.HTTPConfig, handler http.Handler) *Server {
	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	return &Server{
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			ReadTimeout:       cfg.ReadTimeout,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

// Run serves until ctx is done, then drains in-flight requests for at
// most the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()

		logger.Info(ctx, "shutting down http server")
		return s.srv.Shutdown(shutdownCtx)
	})

	eg.Go(func() error {
		logger.Info(ctx, "listen and serve", slog.String("addr", s.srv.Addr))

		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen and serve: %v", err)
		}

		return nil
	})

	return eg.Wait()
}
