// Package cli parses flags and environment, assembles the session, and
// hands control to the TUI.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/loomline/loomline/internal/config"
	"github.com/loomline/loomline/internal/session"
	"github.com/loomline/loomline/internal/termprobe"
	"github.com/loomline/loomline/internal/tui"
)

// Run executes the application with the provided CLI arguments. It returns
// a POSIX-style exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	if err := godotenv.Load(); err != nil {
		// A missing .env file is fine; anything else should be surfaced.
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			fmt.Fprintf(stderr, "failed to load .env: %v\n", err)
			return 1
		}
	}

	flagSet := flag.NewFlagSet("loomline", flag.ContinueOnError)
	flagSet.SetOutput(stderr)
	configPath := flagSet.String("config", defaultConfigPath(), "path to the configuration file")
	vimFlag := flagSet.Bool("vim", false, "enable vim-style modal editing (overrides the config file)")
	probeOnly := flagSet.Bool("probe", false, "print the detected terminal capabilities and exit")
	logPath := flagSet.String("log", "", "append structured debug logs to this file")

	if err := flagSet.Parse(args); err != nil {
		return 2
	}

	probeResult := termprobe.Run(termprobe.NewContext())
	if *probeOnly {
		fmt.Fprintln(stdout, termprobe.FormatSummary(probeResult))
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		var schemaErr config.SchemaValidationError
		if errors.As(err, &schemaErr) {
			fmt.Fprintf(stderr, "invalid config %s:\n", *configPath)
			for _, issue := range schemaErr.Issues() {
				fmt.Fprintf(stderr, "  %s\n", issue)
			}
			return 1
		}
		fmt.Fprintln(stderr, err)
		return 1
	}

	vimExplicit := false
	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == "vim" {
			vimExplicit = true
		}
	})
	if vimExplicit {
		cfg.Vim = *vimFlag
	}

	logger, closeLog, err := buildLogger(*logPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer closeLog()

	logger.Info(ctx, "starting session",
		session.Field("terminal", strings.Join(probeResult.SummaryLines(), "; ")),
		session.Field("vim", cfg.Vim))

	sess := session.New(session.Options{
		VimMode:          cfg.Vim,
		StartInNormal:    cfg.StartInNormal,
		HistorySize:      cfg.HistorySize,
		UndoDepth:        cfg.UndoDepth,
		KillRingCapacity: cfg.KillRingCapacity,
		Logger:           logger,
		Metrics:          session.NewInMemoryMetrics(),
	})

	responder := newEchoResponder()
	defer responder.Close()

	return tui.Run(ctx, sess, responder, cfg.Theme)
}

func defaultConfigPath() string {
	if env := os.Getenv("LOOMLINE_CONFIG"); env != "" {
		return env
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "loomline.json"
	}
	return filepath.Join(base, "loomline", "config.json")
}

func buildLogger(path string) (session.Logger, func(), error) {
	if path == "" {
		return &session.NoOpLogger{}, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return session.NewStdLogger(session.LogLevelDebug, f), func() { _ = f.Close() }, nil
}
