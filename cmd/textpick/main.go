//go:build !gui

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tsawler/textpick"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := parseFlags("textpick", args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	if cfg.version {
		fmt.Printf("textpick %s (commit: %s, built: %s)\n", version, commit, date)
		return 0
	}

	// Headless logs go to stderr; the interactive screen owns the terminal,
	// so its logs go to -log or nowhere.
	var fallback io.Writer = os.Stderr
	if cfg.file == "" {
		fallback = nil
	}
	logOut, closeLog, err := openLog(cfg, fallback)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	template, err := newTemplate(cfg, newLogger(logOut, cfg.debug))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	session := textpick.NewSession(template)

	if cfg.file != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := runHeadless(ctx, cfg, session, os.Stdout, os.Stderr); err != nil {
			return 1
		}
		return 0
	}

	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	p := tea.NewProgram(newModel(session, dir), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
