// Command docmsg converts chat messages with formatting entities to
// .docx documents and back. Messages travel as JSON ({"text", "spans"})
// or as the chat platform's HTML subset.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/avolkov/docmsg"
	"github.com/avolkov/docmsg/docname"
	"github.com/avolkov/docmsg/format"
	"github.com/avolkov/docmsg/markup"
	"github.com/avolkov/docmsg/model"
)

func main() {
	cmd := &cli.Command{
		Name:  "docmsg",
		Usage: "Convert formatted chat messages to .docx documents and back",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Sources: cli.EnvVars("DOCMSG_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			toDocxCommand(),
			toMessageCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func toDocxCommand() *cli.Command {
	return &cli.Command{
		Name:  "to-docx",
		Usage: "Convert a message (JSON or HTML) to a .docx document",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "in",
				Aliases: []string{"i"},
				Usage:   "Input file, - for stdin",
				Value:   "-",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output file; derived from the message text when empty",
			},
			&cli.BoolFlag{
				Name:  "html",
				Usage: "Treat input as HTML markup instead of message JSON",
			},
			&cli.StringFlag{
				Name:    "filename",
				Usage:   "Fallback file name when none can be derived",
				Sources: cli.EnvVars("DOCX_FILENAME"),
			},
			&cli.StringFlag{
				Name:    "filename-max",
				Usage:   "Maximum length of derived file names",
				Sources: cli.EnvVars("DOCX_FILENAME_MAX"),
			},
		},
		Action: runToDocx,
	}
}

func runToDocx(ctx context.Context, cmd *cli.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	if v := cmd.String("filename"); v != "" {
		cfg.DefaultFilename = v
	}
	if v := cmd.String("filename-max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid filename-max value %q", v)
		}
		cfg.FilenameMaxLen = n
	}

	input, err := readInput(cmd.String("in"))
	if err != nil {
		return err
	}

	var msg model.Message
	if cmd.Bool("html") {
		text, spans, err := markup.Parse(string(input))
		if err != nil {
			return err
		}
		msg = model.Message{Text: text, Spans: spans}
	} else if err := json.Unmarshal(input, &msg); err != nil {
		return fmt.Errorf("parsing message JSON: %w", err)
	}

	data, err := docmsg.New().ToDocx(msg)
	if err != nil {
		return err
	}

	out := cmd.String("out")
	if out == "" {
		out = outputName(msg.Text, cfg)
	}
	if err := writeOutput(out, data); err != nil {
		return err
	}
	slog.Info("document written",
		slog.String("path", out),
		slog.Int("bytes", len(data)))
	return nil
}

func toMessageCommand() *cli.Command {
	return &cli.Command{
		Name:  "to-message",
		Usage: "Convert a .docx document to a message",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "in",
				Aliases: []string{"i"},
				Usage:   "Input .docx file, - for stdin",
				Value:   "-",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output file, - for stdout",
				Value:   "-",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: json, html or chunks",
				Value:   "json",
			},
		},
		Action: runToMessage,
	}
}

func runToMessage(ctx context.Context, cmd *cli.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	input, err := readInput(cmd.String("in"))
	if err != nil {
		return err
	}
	if f := format.DetectBytes(input); f != format.DOCX {
		return fmt.Errorf("input is %s, expected a DOCX package", f)
	}

	var out []byte
	switch cmd.String("format") {
	case "json":
		msg, err := docmsg.DocxToMessage(input)
		if err != nil {
			return err
		}
		out, err = json.MarshalIndent(msg, "", "  ")
		if err != nil {
			return err
		}
		out = append(out, '\n')
	case "html":
		rendered, err := docmsg.DocxToHTML(input)
		if err != nil {
			return err
		}
		out = []byte(rendered)
	case "chunks":
		rendered, err := docmsg.DocxToHTML(input)
		if err != nil {
			return err
		}
		out, err = json.MarshalIndent(markup.Split(rendered, cfg.SplitLimit), "", "  ")
		if err != nil {
			return err
		}
		out = append(out, '\n')
	default:
		return fmt.Errorf("unknown output format %q", cmd.String("format"))
	}

	return writeOutput(cmd.String("out"), out)
}

// setup loads the configuration and installs the logger.
func setup(cmd *cli.Command) (*Config, error) {
	cfg := defaultConfig()
	if err := loadConfig(cmd.String("config"), cfg); err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))
	return cfg, nil
}

// outputName derives the output file name from the message text, falling
// back to the configured default.
func outputName(text string, cfg *Config) string {
	name := docname.Derive(text, cfg.FilenameMaxLen)
	if name == "" {
		name = cfg.DefaultFilename
	}
	return docname.WithExtension(name)
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
