package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytlink/internal/chat"
	"github.com/desertthunder/ytlink/internal/services"
	"github.com/desertthunder/ytlink/internal/shared"
	"github.com/desertthunder/ytlink/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config    *shared.Config
	converter services.Converter
	bot       *chat.Bot
	engine    *tasks.Engine
	logger    *log.Logger
	output    io.Writer
	input     io.Reader
	injected  bool
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A nil Converter is built from Config when the command runs.
type RunnerOpts struct {
	Config    *shared.Config
	Converter services.Converter
	Logger    *log.Logger
	Output    io.Writer
	Input     io.Reader
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	r := &Runner{
		config:    opts.Config,
		converter: opts.Converter,
		logger:    opts.Logger,
		output:    opts.Output,
		input:     opts.Input,
		injected:  opts.Converter != nil,
	}
	r.wire()
	return r
}

// Configure loads the config file and log level named by the global flags, then rebuilds dependencies.
//
// A missing file at the default path falls back to defaults; an explicitly named file must exist.
func (r *Runner) Configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			config, err := shared.LoadConfig(path)
			if err != nil {
				return ctx, fmt.Errorf("%w: %w", shared.ErrInvalidConfig, err)
			}
			r.config = config
			r.logger.Debug("loaded config", "path", path)
		} else if cmd.IsSet("config") {
			return ctx, fmt.Errorf("%w: %s", shared.ErrMissingConfig, path)
		}
	}

	if err := r.config.Validate(); err != nil {
		return ctx, err
	}

	levelName := r.config.Log.Level
	if cmd.IsSet("log-level") {
		levelName = cmd.String("log-level")
	}
	level, err := shared.ParseLogLevel(levelName)
	if err != nil {
		return ctx, fmt.Errorf("%w: --log-level: %v", shared.ErrInvalidFlag, err)
	}
	shared.SetLogLevel(r.logger, level)

	r.wire()
	return ctx, nil
}

// SetLogger replaces the logger and rebuilds the dependencies that log.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	r.wire()
}

// wire builds the converter pipeline from the current config and logger.
func (r *Runner) wire() {
	if !r.injected {
		r.converter = services.NewResolver(services.ResolverOpts{
			Fetcher: services.NewHTTPFetcherFromConfig(r.config.Fetcher),
			Target:  services.NewYouTubeMusic(r.config.Target.SearchURL),
			Logger:  r.logger,
		})
	}
	r.bot = chat.NewBot(r.converter, r.config.Chat.HistoryLimit, r.logger)
	r.engine = tasks.NewEngine(r.converter)
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		convertCommand, scanCommand, serveCommand, chatCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
