// Package repositories implements SQLite persistence for locally stored state.
//
// [KeyValueRepository] maps string keys to opaque string values in the storage_items table
// created by the embedded migrations in the shared package. The favorites store keeps its
// JSON-encoded track list under a single key; other state can be added under new keys
// without a schema change.
package repositories
