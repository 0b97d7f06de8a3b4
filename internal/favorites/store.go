package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/shared"
)

// FavoritesKey is the storage key holding the JSON-encoded favorite tracks.
const FavoritesKey = "itunes-favorites"

// Store persists the favorite tracks as a whole.
type Store interface {
	Load(ctx context.Context) ([]models.Track, error)
	Save(ctx context.Context, tracks []models.Track) error
}

// KeyValue is the subset of a key-value repository used by [KVStore].
type KeyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// KVStore keeps favorites as a JSON array under [FavoritesKey].
type KVStore struct {
	kv  KeyValue
	key string
}

func NewKVStore(kv KeyValue) *KVStore {
	return &KVStore{kv: kv, key: FavoritesKey}
}

// Load returns the stored tracks. A missing key yields an empty slice; a value that is not a
// JSON array of tracks yields an error wrapping [shared.ErrMalformedData].
func (s *KVStore) Load(ctx context.Context) ([]models.Track, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, shared.ErrKeyNotFound) {
		return []models.Track{}, nil
	}
	if err != nil {
		return nil, err
	}

	var tracks []models.Track
	if err := json.Unmarshal([]byte(raw), &tracks); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", shared.ErrMalformedData, s.key, err)
	}
	if tracks == nil {
		tracks = []models.Track{}
	}
	return tracks, nil
}

// Save overwrites the stored value with tracks
func (s *KVStore) Save(ctx context.Context, tracks []models.Track) error {
	if tracks == nil {
		tracks = []models.Track{}
	}
	data, err := json.Marshal(tracks)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}
	return s.kv.Set(ctx, s.key, string(data))
}

// Clear removes the stored value
func (s *KVStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, s.key)
}
