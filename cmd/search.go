package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/tunes/internal/formatter"
	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search runs a single catalog search and prints the matching songs.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	term := strings.TrimSpace(cmd.StringArg("term"))
	if term == "" {
		return fmt.Errorf("%w: search term", shared.ErrMissingArgument)
	}

	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	catalog := r.service()
	r.logger.Info("searching catalog", "service", catalog.Name(), "term", term)

	tracks, err := catalog.Search(ctx, term)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(tracks, pretty)
	}

	if len(tracks) == 0 {
		return r.writePlain("No songs found for %q\n", term)
	}

	r.writePlainHeader(fmt.Sprintf("Results for %q (%d)", term, len(tracks)))
	r.writeTracks(tracks, nil)
	return nil
}

// Share prints a link whose search parameter reopens term.
func (r *Runner) Share(ctx context.Context, cmd *cli.Command) error {
	term := strings.TrimSpace(cmd.StringArg("term"))
	if term == "" {
		return fmt.Errorf("%w: search term", shared.ErrMissingArgument)
	}

	base := cmd.String("base")
	if base == "" {
		base = r.config.Share.BaseURL
	}

	link, err := shared.LocationWithQuery(base, term)
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", link)
}

// writeTracks prints a numbered track listing, starring ids for which isFavorite reports true.
func (r *Runner) writeTracks(tracks []models.Track, isFavorite func(int64) bool) {
	for i, t := range tracks {
		mark := " "
		if isFavorite != nil && isFavorite(t.ID) {
			mark = "★"
		}
		r.writePlain("%s %2d. %s\n", mark, i+1, t.TrackName)
		r.writePlain("      %s\n", formatter.Describe(t))
		r.writePlain("      id: %d", t.ID)
		if year := formatter.ReleaseYear(t.ReleaseDate); year != "" {
			r.writePlain(" • %s", year)
		}
		if t.Genre != "" {
			r.writePlain(" • %s", t.Genre)
		}
		r.writePlain("\n")
	}
}
