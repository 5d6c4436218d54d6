package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytlink/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the example configuration file.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	outputPath := cmd.String("output")

	if err := shared.CreateConfigFile(outputPath); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidConfig, err)
	}

	r.logger.Info("config file created", "path", outputPath)
	r.writePlain("✓ Configuration written to %s\n", outputPath)
	r.writePlain("Edit it, then run 'ytlink -c %s convert <spotify-url>'\n", outputPath)
	return nil
}
