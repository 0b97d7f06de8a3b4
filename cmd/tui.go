package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunes/internal/favorites"
	"github.com/desertthunder/tunes/internal/search"
	"github.com/desertthunder/tunes/internal/shared"
	"github.com/desertthunder/tunes/internal/ui"
	"github.com/urfave/cli/v3"
)

const defaultTUILog = "./tmp/tunes-tui.log"

// initialQuery resolves the query the TUI opens with. --search wins over the share link in --location.
func initialQuery(cmd *cli.Command) (string, error) {
	if q := cmd.String("search"); q != "" {
		return q, nil
	}
	return shared.QueryFromLocation(cmd.String("location"))
}

// TUI launches the interactive terminal UI for search and favorites.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	query, err := initialQuery(cmd)
	if err != nil {
		return err
	}

	logPath := r.config.Log.File
	if logPath == "" {
		logPath = defaultTUILog
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	if err := shared.SetLogLevel(fileLogger, r.config.Log.Level); err != nil {
		return err
	}
	r.SetLogger(fileLogger)

	store, err := r.favoritesStore()
	if err != nil {
		return err
	}
	defer r.Close()

	controller := search.NewController(r.service(), r.config.Search.Debounce(), r.logger)
	defer controller.Close()

	model := ui.NewModel(ctx, ui.ModelOpts{
		Controller:   controller,
		Favorites:    favorites.NewManager(store, r.logger),
		ShareBase:    r.config.Share.BaseURL,
		InitialQuery: query,
		Logger:       r.logger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	r.logger.Info("starting tui", "query", query)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
