package favorites

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/shared"
)

// Manager owns the in-memory favorite [Set] and writes it through to a [Store].
//
// Writes are held back until the first successful [Manager.Load], so a toggle made while the
// stored set is still loading can never overwrite it with a partial one.
type Manager struct {
	mu     sync.Mutex
	set    *Set
	store  Store
	loaded bool
	logger *log.Logger
}

func NewManager(store Store, logger *log.Logger) *Manager {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Manager{
		set:    NewSet(),
		store:  store,
		logger: shared.WithLogger(logger, "component", "favorites"),
	}
}

// Load replaces the set with the stored tracks and enables persistence.
//
// Malformed stored data is logged and treated as an empty set. Any other store error is
// returned and the manager stays unloaded.
func (m *Manager) Load(ctx context.Context) error {
	tracks, err := m.store.Load(ctx)
	if errors.Is(err, shared.ErrMalformedData) {
		m.logger.Warn("ignoring stored favorites", "err", err)
		tracks, err = []models.Track{}, nil
	}
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.set = NewSet(tracks...)
	m.loaded = true
	m.logger.Debug("favorites loaded", "count", m.set.Len())
	return nil
}

// Toggle flips the favorite state of t and reports whether it is now a favorite.
// Once loaded, the whole set is persisted; a failed write leaves the in-memory change in place.
func (m *Manager) Toggle(ctx context.Context, t models.Track) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	added := m.set.Toggle(t)
	if !m.loaded {
		m.logger.Debug("favorites not loaded yet, skipping save", "track_id", t.ID)
		return added, nil
	}

	if err := m.store.Save(ctx, m.set.Tracks()); err != nil {
		m.logger.Error("failed to save favorites", "err", err)
		return added, err
	}
	return added, nil
}

// Clear empties the set and persists the empty set when loaded.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.set = NewSet()
	if !m.loaded {
		return nil
	}
	return m.store.Save(ctx, []models.Track{})
}

func (m *Manager) Contains(id int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set.Contains(id)
}

func (m *Manager) Tracks() []models.Track {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set.Tracks()
}

// Loaded reports whether the stored set has been read
func (m *Manager) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}
