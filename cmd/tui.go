package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leonardonapoless/PAMS/internal/search"
	"github.com/leonardonapoless/PAMS/internal/shared"
	"github.com/leonardonapoless/PAMS/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive live-search terminal UI.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/pams-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	var cache search.ResultCacher
	if db, repo, err := r.openCache(); err != nil {
		r.logger.Warn("result cache unavailable", "err", err)
	} else {
		defer db.Close()
		cache = repo
	}

	updates := make(chan search.Update, 64)
	orch, err := r.newOrchestrator(updates, cache)
	if err != nil {
		return err
	}

	model := ui.NewModel(orch, updates)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// tuiCommand launches the interactive interface
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Interactive live search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.TUI,
	}
}
