package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytlink/internal/shared"
	"github.com/desertthunder/ytlink/internal/ui"
	"github.com/urfave/cli/v3"
)

// Chat launches the interactive terminal chat channel.
func (r *Runner) Chat(ctx context.Context, cmd *cli.Command) error {
	fileLogger, closer, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	defer closer.Close()

	fileLogger.SetLevel(r.logger.GetLevel())
	r.SetLogger(fileLogger)

	return ui.Run(ctx, r.bot, cmd.String("author"))
}
