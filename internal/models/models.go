// package models defines the catalog data model for the music search app
package models

const (
	KindSong     = "song"  // KindSong is the catalog "kind" of a purchasable song
	WrapperTrack = "track" // WrapperTrack is the catalog "wrapperType" of a single track
)

// Track is one song entry returned by the catalog search API.
//
// Tracks are snapshots of external data and are never mutated after decoding.
// JSON field names follow the catalog API so snapshots round-trip through storage unchanged.
type Track struct {
	ID          int64   `json:"trackId"`
	ArtistName  string  `json:"artistName"`
	TrackName   string  `json:"trackName"`
	Collection  string  `json:"collectionName"`
	ArtworkURL  string  `json:"artworkUrl100"`
	PreviewURL  string  `json:"previewUrl,omitempty"`
	Price       float64 `json:"trackPrice"`
	Currency    string  `json:"currency"`
	DurationMS  int64   `json:"trackTimeMillis"`
	ReleaseDate string  `json:"releaseDate"`
	Genre       string  `json:"primaryGenreName"`
	Kind        string  `json:"kind"`
	WrapperType string  `json:"wrapperType"`
}

// SearchResponse is the envelope returned by the catalog search and lookup endpoints.
type SearchResponse struct {
	ResultCount int     `json:"resultCount"`
	Results     []Track `json:"results"`
}

// IsSong reports whether t is a playable song entry: both discriminators match and
// the identifier, track name and artist name are all present.
func (t Track) IsSong() bool {
	return t.Kind == KindSong &&
		t.WrapperType == WrapperTrack &&
		t.ID != 0 &&
		t.TrackName != "" &&
		t.ArtistName != ""
}

// FilterSongs returns the tracks satisfying [Track.IsSong] in their original order.
//
// Entries that fail are dropped silently. The result is never nil.
func FilterSongs(tracks []Track) []Track {
	songs := make([]Track, 0, len(tracks))
	for _, t := range tracks {
		if t.IsSong() {
			songs = append(songs, t)
		}
	}
	return songs
}
