// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// convertCommand converts a single link
func convertCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "convert",
		Usage: "Convert one Spotify link to a YouTube Music search link",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "url",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the YouTube Music link in the browser",
			},
		},
		Action: r.Convert,
	}
}

// scanCommand converts every link found in a file or stdin
func scanCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "scan",
		Usage: "Convert every Spotify link found in a file or stdin",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "File to scan (default: stdin)",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: text, json, csv, markdown",
				Value: "text",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write results to this file instead of stdout",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent conversions (default: chat.workers from config)",
			},
		},
		Action: r.Scan,
	}
}

// serveCommand runs the HTTP API
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the conversion API over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (default: server.host from config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (default: server.port from config)",
			},
		},
		Action: r.Serve,
	}
}

// chatCommand opens the local chat channel
func chatCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "chat",
		Usage: "Open a local chat channel with the bot in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "author",
				Usage: "Name shown on your messages",
				Value: "you",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where logs go while the TUI owns the terminal",
				Value: "./tmp/ytlink-chat.log",
			},
		},
		Action: r.Chat,
	}
}

// setupCommand handles first-run setup
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write the example configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}
