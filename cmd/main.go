package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/ytlink/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := runner.app().Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}

func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:    "ytlink",
		Usage:   "Turn Spotify links into YouTube Music search links",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error); overrides the config file",
			},
		},
		Before:   r.Configure,
		Commands: r.register(),
	}
}
