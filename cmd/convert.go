package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/desertthunder/ytlink/internal/chat"
	"github.com/desertthunder/ytlink/internal/formatter"
	"github.com/desertthunder/ytlink/internal/shared"
	"github.com/desertthunder/ytlink/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Convert converts a single link and prints the chat reply, or the full result as JSON.
func (r *Runner) Convert(ctx context.Context, cmd *cli.Command) error {
	url := strings.TrimSpace(cmd.StringArg("url"))
	if url == "" {
		return fmt.Errorf("%w: url argument required", shared.ErrMissingArgument)
	}

	result, err := r.converter.Resolve(ctx, url)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if cmd.Bool("open") {
		if err := shared.OpenBrowser(result.Link); err != nil {
			r.logger.Warn("could not open browser", "err", err)
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}
	return r.writePlain("%s\n", formatter.Reply(result))
}

// Scan finds every link in a file (or stdin) and converts them as a batch.
func (r *Runner) Scan(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	if _, err := formatter.Export(nil, format); err != nil {
		return err
	}

	text, err := r.readScanInput(cmd.String("file"))
	if err != nil {
		return err
	}

	links := tasks.ScanLinks(text)
	if len(links) == 0 {
		return r.writePlain("%s\n", chat.NoLinkFoundText)
	}

	workers := int(cmd.Int("workers"))
	if workers <= 0 {
		workers = r.config.Chat.Workers
	}

	progress := make(chan tasks.ProgressUpdate, 16)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progress {
			r.logger.Debug(update.Message, "phase", update.Phase, "step", update.Step, "total", update.Total)
		}
	}()

	items, err := r.engine.ConvertAll(ctx, progress, links, tasks.ConvertOpts{Workers: workers})
	close(progress)
	wg.Wait()
	if err != nil {
		return fmt.Errorf("batch conversion failed: %w", err)
	}

	converted := 0
	for _, item := range items {
		if item.OK() {
			converted++
		}
	}
	r.logger.Info("scan complete", "links", len(items), "converted", converted, "failed", len(items)-converted)

	if path := cmd.String("output"); path != "" {
		if err := formatter.WriteExport(items, format, path); err != nil {
			return err
		}
		return r.writePlain("✓ Wrote %d results to %s\n", len(items), path)
	}

	data, err := formatter.Export(items, format)
	if err != nil {
		return err
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) readScanInput(path string) (string, error) {
	var reader io.Reader = r.input
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
		}
		defer f.Close()
		reader = f
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}
