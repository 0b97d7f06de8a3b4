package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/tunes/internal/formatter"
	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/shared"
	"github.com/urfave/cli/v3"
)

// FavoritesList prints the saved favorite songs.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	defer r.Close()

	manager, err := r.loadFavorites(ctx)
	if err != nil {
		return err
	}

	tracks := manager.Tracks()
	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}

	if len(tracks) == 0 {
		r.writePlain("No favorites yet.\n")
		return r.writePlain("Run 'tunes search \"your song\"' and 'tunes favorites toggle <id>' to add one.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Favorites (%d)", len(tracks)))
	r.writeTracks(tracks, manager.Contains)
	return nil
}

// FavoritesToggle adds the track with the given id or removes it when already saved.
//
// New favorites are looked up in the catalog so the stored snapshot is complete.
func (r *Runner) FavoritesToggle(ctx context.Context, cmd *cli.Command) error {
	defer r.Close()

	raw := strings.TrimSpace(cmd.StringArg("id"))
	if raw == "" {
		return fmt.Errorf("%w: track id", shared.ErrMissingArgument)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("%w: track id %q", shared.ErrInvalidArgument, raw)
	}

	manager, err := r.loadFavorites(ctx)
	if err != nil {
		return err
	}

	var track *models.Track
	for _, t := range manager.Tracks() {
		if t.ID == id {
			track = &t
			break
		}
	}

	if track == nil {
		r.logger.Info("looking up track", "id", id)
		if track, err = r.service().Lookup(ctx, id); err != nil {
			return err
		}
	}

	added, err := manager.Toggle(ctx, *track)
	if err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}

	if added {
		return r.writePlain("★ Added %s - %s to favorites\n", track.ArtistName, track.TrackName)
	}
	return r.writePlain("☆ Removed %s - %s from favorites\n", track.ArtistName, track.TrackName)
}

// FavoritesClear removes every saved favorite.
func (r *Runner) FavoritesClear(ctx context.Context, cmd *cli.Command) error {
	defer r.Close()

	manager, err := r.loadFavorites(ctx)
	if err != nil {
		return err
	}

	count := len(manager.Tracks())
	if err := manager.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear favorites: %w", err)
	}

	r.logger.Info("favorites cleared", "count", count)
	return r.writePlain("✓ Removed %d favorites\n", count)
}

// FavoritesExport writes the saved favorites to a file.
func (r *Runner) FavoritesExport(ctx context.Context, cmd *cli.Command) error {
	defer r.Close()

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	manager, err := r.loadFavorites(ctx)
	if err != nil {
		return err
	}

	path, err := formatter.WriteExport(manager.Tracks(), format, cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Info("favorites exported", "format", format, "path", path)
	return r.writePlain("✓ Exported %d favorites to %s\n", len(manager.Tracks()), path)
}
