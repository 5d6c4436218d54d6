package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/ytlink/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP API until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := cmd.Int("port"); port > 0 {
		cfg.Port = int(port)
	}

	srv := server.NewServer(server.Opts{
		Converter:      r.converter,
		Bot:            r.bot,
		Logger:         r.logger,
		RateLimit:      cfg.RateLimit,
		Burst:          cfg.Burst,
		RequestTimeout: 2 * r.config.Fetcher.Timeout(),
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx, cfg.Addr()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
