// package services defines interface Searcher for querying the music catalog over HTTP
package services

import (
	"context"

	"github.com/desertthunder/tunes/internal/models"
)

// Searcher defines a music catalog that can be searched by free text.
type Searcher interface {
	// Search returns the songs matching term, already filtered with [models.FilterSongs].
	// A blank term returns an empty result without contacting the catalog.
	Search(ctx context.Context, term string) ([]models.Track, error)
}

// Catalog extends [Searcher] with direct lookups by track identifier.
type Catalog interface {
	Searcher

	// Lookup retrieves a single song by its catalog identifier.
	Lookup(ctx context.Context, id int64) (*models.Track, error)

	// Name returns the name of the catalog (e.g., "iTunes Search")
	Name() string
}
