// Package services defines the [Searcher] and [Catalog] interfaces for music catalogs and implements them for the iTunes Search API.
//
// # iTunes Implementation
//
// [ITunesService] issues anonymous GET requests:
//   - /search?term={term}&media=music&entity=song&limit=50
//   - /lookup?id={id}
//
// Responses share the {resultCount, results} envelope ([models.SearchResponse]).
// Results are narrowed to purchasable songs with [models.FilterSongs]; podcasts, audiobooks and
// entries without an ID, track name or artist name are dropped without error.
//
// Calls pass through a [rate.Limiter] built by [NewLimiter] because the public API throttles
// clients at roughly 20 calls per minute. Each call logs with its own request_id.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrAPIRequest] : transport failure or non-2xx status
//   - [shared.ErrDecodeResponse] : body is not the expected JSON
//   - [shared.ErrTrackNotFound] : lookup returned no song with that ID
//   - [shared.ErrInvalidArgument] : lookup ID is not positive
//
// Nothing is retried; callers decide how to surface the failure.
package services
