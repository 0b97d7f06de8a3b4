package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/tunes/internal/formatter"
	"github.com/desertthunder/tunes/internal/models"
)

var _ list.Item = trackItem{}

// trackItem wraps [models.Track] to implement [list.Item].
type trackItem struct {
	track    models.Track
	favorite bool
}

func (i trackItem) FilterValue() string { return i.track.TrackName }
func (i trackItem) Title() string {
	if i.favorite {
		return styles.star.Render("★") + " " + i.track.TrackName
	}
	return "☆ " + i.track.TrackName
}
func (i trackItem) Description() string { return formatter.Describe(i.track) }

func trackItems(tracks []models.Track, isFavorite func(int64) bool) []list.Item {
	items := make([]list.Item, len(tracks))
	for i, t := range tracks {
		items[i] = trackItem{track: t, favorite: isFavorite(t.ID)}
	}
	return items
}
