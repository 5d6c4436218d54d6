package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytlink/internal/models"
	"github.com/desertthunder/ytlink/internal/services"
	"github.com/desertthunder/ytlink/internal/shared"
	tu "github.com/desertthunder/ytlink/internal/testing"
)

const (
	trackURL = "https://open.spotify.com/track/abc123"
	albumURL = "https://open.spotify.com/album/def456"
)

func mockConverter() *tu.MockConverter {
	return &tu.MockConverter{
		Results: map[string]*models.ConversionResult{
			trackURL: {
				Kind:      models.Track,
				SourceURL: trackURL,
				Label:     "🎶 Track: **Bohemian Rhapsody - Queen**",
				Link:      "https://music.youtube.com/search?q=Bohemian+Rhapsody+-+Queen",
				Query:     "Bohemian Rhapsody - Queen",
				Metadata:  models.TrackMetadata{Title: "Bohemian Rhapsody", Artist: "Queen"},
			},
		},
		Errors: map[string]error{
			albumURL: fmt.Errorf("%w: album page is missing og:description", shared.ErrMetadataNotFound),
		},
	}
}

func newTestRunner(input string) (*Runner, *bytes.Buffer) {
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Converter: mockConverter(),
		Logger:    shared.NewLogger(io.Discard),
		Output:    output,
		Input:     strings.NewReader(input),
	})
	return runner, output
}

func run(r *Runner, args ...string) error {
	return r.app().Run(context.Background(), append([]string{"ytlink"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			conv := mockConverter()

			runner := NewRunner(RunnerOpts{
				Config:    config,
				Logger:    logger,
				Output:    output,
				Converter: conv,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.converter != conv {
				t.Error("expected converter to be set")
			}
			if runner.bot == nil || runner.engine == nil {
				t.Error("expected bot and engine to be wired")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
			if runner.input != os.Stdin {
				t.Error("expected input to default to os.Stdin")
			}
		})

		t.Run("without converter builds resolver", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if _, ok := runner.converter.(*services.Resolver); !ok {
				t.Errorf("expected *services.Resolver, got %T", runner.converter)
			}
		})
	})

	t.Run("SetLogger keeps injected converter", func(t *testing.T) {
		runner, _ := newTestRunner("")
		conv := runner.converter
		oldBot := runner.bot

		runner.SetLogger(shared.NewLogger(io.Discard))

		if runner.converter != conv {
			t.Error("injected converter should survive SetLogger")
		}
		if runner.bot == oldBot {
			t.Error("expected bot to be rebuilt")
		}
	})
}

func TestConfigure(t *testing.T) {
	t.Run("loads explicit config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		tu.MustWriteFile(t, path, "[chat]\nworkers = 7\n\n[log]\nlevel = \"debug\"\n")

		runner, _ := newTestRunner("")
		if err := run(runner, "-c", path, "convert", trackURL); err != nil {
			t.Fatalf("run failed: %v", err)
		}

		if runner.config.Chat.Workers != 7 {
			t.Errorf("expected workers 7, got %d", runner.config.Chat.Workers)
		}
		if runner.logger.GetLevel() != log.DebugLevel {
			t.Errorf("expected debug level, got %v", runner.logger.GetLevel())
		}
	})

	t.Run("missing explicit config file", func(t *testing.T) {
		runner, _ := newTestRunner("")
		err := run(runner, "--config", filepath.Join(t.TempDir(), "nope.toml"), "convert", trackURL)
		if !errors.Is(err, shared.ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("invalid config values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		tu.MustWriteFile(t, path, "[server]\nport = 70000\n")

		runner, _ := newTestRunner("")
		err := run(runner, "-c", path, "convert", trackURL)
		if !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("log level flag overrides config", func(t *testing.T) {
		runner, _ := newTestRunner("")
		if err := run(runner, "--log-level", "error", "convert", trackURL); err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if runner.logger.GetLevel() != log.ErrorLevel {
			t.Errorf("expected error level, got %v", runner.logger.GetLevel())
		}
	})

	t.Run("invalid log level", func(t *testing.T) {
		runner, _ := newTestRunner("")
		err := run(runner, "--log-level", "loud", "convert", trackURL)
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

func TestConvert(t *testing.T) {
	t.Run("prints reply", func(t *testing.T) {
		runner, output := newTestRunner("")
		if err := run(runner, "convert", trackURL); err != nil {
			t.Fatalf("convert failed: %v", err)
		}

		want := "🎶 Track: **Bohemian Rhapsody - Queen**\n👉 **YouTube Music link:**\nhttps://music.youtube.com/search?q=Bohemian+Rhapsody+-+Queen\n"
		if output.String() != want {
			t.Errorf("output = %q, want %q", output.String(), want)
		}
	})

	t.Run("json output", func(t *testing.T) {
		runner, output := newTestRunner("")
		if err := run(runner, "convert", "--json", trackURL); err != nil {
			t.Fatalf("convert failed: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(output.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, output.String())
		}
		if decoded["kind"] != "track" || decoded["query"] != "Bohemian Rhapsody - Queen" {
			t.Errorf("unexpected JSON: %v", decoded)
		}
	})

	t.Run("missing url", func(t *testing.T) {
		runner, _ := newTestRunner("")
		if err := run(runner, "convert"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("conversion error", func(t *testing.T) {
		runner, _ := newTestRunner("")
		err := run(runner, "convert", albumURL)
		if !errors.Is(err, shared.ErrMetadataNotFound) {
			t.Errorf("expected ErrMetadataNotFound, got %v", err)
		}
	})
}

func TestScan(t *testing.T) {
	chatLog := "hey check " + trackURL + "\nand " + albumURL + "\nbye\n"

	t.Run("stdin text", func(t *testing.T) {
		runner, output := newTestRunner(chatLog)
		if err := run(runner, "scan"); err != nil {
			t.Fatalf("scan failed: %v", err)
		}

		out := output.String()
		if !strings.Contains(out, "https://music.youtube.com/search?q=Bohemian+Rhapsody+-+Queen") {
			t.Errorf("missing converted link:\n%s", out)
		}
		if !strings.Contains(out, "❌ "+albumURL) {
			t.Errorf("missing failure line:\n%s", out)
		}
	})

	t.Run("file input csv", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chat.txt")
		tu.MustWriteFile(t, path, chatLog)

		runner, output := newTestRunner("")
		if err := run(runner, "scan", "--file", path, "--format", "csv", "--workers", "2"); err != nil {
			t.Fatalf("scan failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(output.String()), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header + 2 rows, got %d:\n%s", len(lines), output.String())
		}
		if !strings.HasPrefix(lines[1], trackURL+",ok,track") {
			t.Errorf("unexpected first row: %s", lines[1])
		}
		if !strings.HasPrefix(lines[2], albumURL+",failed") {
			t.Errorf("unexpected second row: %s", lines[2])
		}
	})

	t.Run("output file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "links.md")

		runner, output := newTestRunner(chatLog)
		if err := run(runner, "scan", "--format", "markdown", "-o", path); err != nil {
			t.Fatalf("scan failed: %v", err)
		}

		if !strings.Contains(output.String(), "Wrote 2 results") {
			t.Errorf("unexpected output: %s", output.String())
		}
		if content := tu.MustReadFile(t, path); !strings.Contains(content, "**Converted**: 1/2") {
			t.Errorf("unexpected file content:\n%s", content)
		}
	})

	t.Run("no links", func(t *testing.T) {
		runner, output := newTestRunner("nothing to see")
		if err := run(runner, "scan"); err != nil {
			t.Fatalf("scan failed: %v", err)
		}
		if output.String() != "No Spotify link found.\n" {
			t.Errorf("unexpected output: %q", output.String())
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		runner, _ := newTestRunner(chatLog)
		if err := run(runner, "scan", "--format", "xml"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		runner, _ := newTestRunner("")
		err := run(runner, "scan", "--file", filepath.Join(t.TempDir(), "missing.txt"))
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestSetupConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	runner, output := newTestRunner("")
	if err := run(runner, "setup", "config", "--output", path); err != nil {
		t.Fatalf("setup config failed: %v", err)
	}

	if !strings.Contains(output.String(), "Configuration written to "+path) {
		t.Errorf("unexpected output: %s", output.String())
	}
	if _, err := shared.LoadConfig(path); err != nil {
		t.Errorf("written config does not load: %v", err)
	}

	err := run(runner, "setup", "config", "--output", path)
	if !errors.Is(err, shared.ErrInvalidConfig) {
		t.Errorf("expected error for existing file, got %v", err)
	}
}

func TestWriteJSON(t *testing.T) {
	t.Run("compact", func(t *testing.T) {
		runner, output := newTestRunner("")
		if err := runner.writeJSON(map[string]int{"a": 1}, false); err != nil {
			t.Fatalf("writeJSON failed: %v", err)
		}
		if output.String() != "{\"a\":1}\n" {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("write error", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Converter: mockConverter(), Output: &tu.FWriter{}, Logger: shared.NewLogger(io.Discard)})
		if err := runner.writeJSON(map[string]int{"a": 1}, true); err == nil {
			t.Error("expected write error")
		}
	})

	t.Run("newline write error", func(t *testing.T) {
		var buf bytes.Buffer
		lw := tu.NewLimitedWriter(1, 0, &buf)
		runner := NewRunner(RunnerOpts{Converter: mockConverter(), Output: &lw, Logger: shared.NewLogger(io.Discard)})

		if err := runner.writeJSON(map[string]int{"a": 1}, false); err == nil {
			t.Error("expected newline write error")
		}
		if buf.String() != "{\"a\":1}" {
			t.Errorf("expected body before failure, got %q", buf.String())
		}
	})

	t.Run("unmarshalable", func(t *testing.T) {
		runner, _ := newTestRunner("")
		if err := runner.writeJSON(make(chan int), false); err == nil {
			t.Error("expected marshal error")
		}
	})
}
