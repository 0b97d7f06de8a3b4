// Package models defines the catalog entities shared by the search controller, the favorites store and the UI.
//
//   - [Track] : immutable snapshot of one catalog song, keyed by its integer ID
//   - [SearchResponse] : the {resultCount, results} envelope of the catalog API
//
// The catalog mixes songs with podcasts, audiobooks and collection wrappers.
// [Track.IsSong] and [FilterSongs] use the "kind" and "wrapperType" discriminators plus the
// presence of an ID, track name and artist name to keep only purchasable songs.
package models
