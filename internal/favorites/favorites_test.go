package favorites

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/repositories"
	"github.com/desertthunder/tunes/internal/shared"
	tu "github.com/desertthunder/tunes/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(tracks []models.Track) []int64 {
	out := make([]int64, len(tracks))
	for i, t := range tracks {
		out[i] = t.ID
	}
	return out
}

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSet(t *testing.T) {
	a := tu.SongFixture(1, "Waterloo", "ABBA")
	b := tu.SongFixture(2, "SOS", "ABBA")
	c := tu.SongFixture(3, "Fernando", "ABBA")

	t.Run("Toggle Adds Then Removes", func(t *testing.T) {
		s := NewSet()
		if !s.Toggle(a) {
			t.Error("expected first toggle to add")
		}
		if !s.Contains(a.ID) {
			t.Error("expected set to contain track after add")
		}
		if s.Toggle(a) {
			t.Error("expected second toggle to remove")
		}
		if s.Contains(a.ID) || s.Len() != 0 {
			t.Errorf("expected empty set, got %v", ids(s.Tracks()))
		}
	})

	t.Run("Keyed By Id", func(t *testing.T) {
		s := NewSet(a)
		renamed := a
		renamed.TrackName = "Waterloo (Live)"

		if s.Toggle(renamed) {
			t.Error("expected toggle with the same id to remove")
		}
		if s.Len() != 0 {
			t.Errorf("expected empty set, got %d", s.Len())
		}
	})

	t.Run("NewSet Drops Duplicates", func(t *testing.T) {
		dup := a
		dup.TrackName = "Other"
		s := NewSet(a, b, dup)

		assert.Equal(t, []int64{1, 2}, ids(s.Tracks()))
		assert.Equal(t, "Waterloo", s.Tracks()[0].TrackName)
	})

	t.Run("Removal Keeps Order", func(t *testing.T) {
		s := NewSet(a, b, c)
		s.Toggle(b)

		assert.Equal(t, []int64{1, 3}, ids(s.Tracks()))
		assert.True(t, s.Contains(3))

		s.Toggle(b)
		assert.Equal(t, []int64{1, 3, 2}, ids(s.Tracks()))
	})

	t.Run("Tracks Returns Copy", func(t *testing.T) {
		s := NewSet(a)
		tracks := s.Tracks()
		tracks[0].TrackName = "changed"

		assert.Equal(t, "Waterloo", s.Tracks()[0].TrackName)
	})

	t.Run("Zero Value", func(t *testing.T) {
		var s Set
		assert.False(t, s.Contains(1))
		assert.True(t, s.Toggle(a))
		assert.Equal(t, 1, s.Len())
	})
}

func TestKVStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing Key Is Empty", func(t *testing.T) {
		store := NewKVStore(repositories.NewKeyValueRepository(setupTestDB(t)))

		tracks, err := store.Load(ctx)
		require.NoError(t, err)
		assert.NotNil(t, tracks)
		assert.Empty(t, tracks)
	})

	t.Run("Round Trip", func(t *testing.T) {
		store := NewKVStore(repositories.NewKeyValueRepository(setupTestDB(t)))
		want := []models.Track{tu.SongFixture(2, "SOS", "ABBA"), tu.SongFixture(1, "Waterloo", "ABBA")}

		require.NoError(t, store.Save(ctx, want))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, want, got)
	})

	t.Run("Stored Under Favorites Key", func(t *testing.T) {
		repo := repositories.NewKeyValueRepository(setupTestDB(t))
		store := NewKVStore(repo)
		require.NoError(t, store.Save(ctx, []models.Track{tu.SongFixture(7, "Dancing Queen", "ABBA")}))

		raw, err := repo.Get(ctx, FavoritesKey)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(raw, "["), "expected JSON array, got %s", raw)
		assert.Contains(t, raw, `"trackId":7`)
	})

	t.Run("Nil Saves Empty Array", func(t *testing.T) {
		repo := repositories.NewKeyValueRepository(setupTestDB(t))
		require.NoError(t, NewKVStore(repo).Save(ctx, nil))

		raw, err := repo.Get(ctx, FavoritesKey)
		require.NoError(t, err)
		assert.Equal(t, "[]", raw)
	})

	t.Run("Malformed Value", func(t *testing.T) {
		for _, raw := range []string{"not json", `{"trackId":1}`, `[{"trackId":"one"}]`} {
			t.Run(raw, func(t *testing.T) {
				repo := repositories.NewKeyValueRepository(setupTestDB(t))
				require.NoError(t, repo.Set(ctx, FavoritesKey, raw))

				_, err := NewKVStore(repo).Load(ctx)
				assert.ErrorIs(t, err, shared.ErrMalformedData)
			})
		}
	})

	t.Run("Clear", func(t *testing.T) {
		repo := repositories.NewKeyValueRepository(setupTestDB(t))
		store := NewKVStore(repo)
		require.NoError(t, store.Save(ctx, []models.Track{tu.SongFixture(1, "Waterloo", "ABBA")}))
		require.NoError(t, store.Clear(ctx))

		_, err := repo.Get(ctx, FavoritesKey)
		assert.ErrorIs(t, err, shared.ErrKeyNotFound)
	})
}

func TestManager(t *testing.T) {
	ctx := context.Background()
	one := tu.SongFixture(1, "Waterloo", "ABBA")
	two := tu.SongFixture(2, "SOS", "ABBA")

	t.Run("Toggle Persists Whole Set", func(t *testing.T) {
		store := tu.NewMemoryStore(one, two)
		m := NewManager(store, shared.NewLogger(io.Discard))
		require.NoError(t, m.Load(ctx))

		added, err := m.Toggle(ctx, one)
		require.NoError(t, err)
		assert.False(t, added)

		saved, saves := store.Saved()
		assert.Equal(t, 1, saves)
		assert.Equal(t, []int64{2}, ids(saved))
		assert.False(t, m.Contains(1))
		assert.True(t, m.Contains(2))
	})

	t.Run("No Save Before Load", func(t *testing.T) {
		store := tu.NewMemoryStore(one)
		m := NewManager(store, shared.NewLogger(io.Discard))

		added, err := m.Toggle(ctx, two)
		require.NoError(t, err)
		assert.True(t, added)
		assert.False(t, m.Loaded())

		saved, saves := store.Saved()
		assert.Zero(t, saves)
		assert.Equal(t, []int64{1}, ids(saved))
	})

	t.Run("Load Replaces Unsaved Toggles", func(t *testing.T) {
		store := tu.NewMemoryStore(one)
		m := NewManager(store, shared.NewLogger(io.Discard))
		m.Toggle(ctx, two)

		require.NoError(t, m.Load(ctx))
		assert.True(t, m.Loaded())
		assert.Equal(t, []int64{1}, ids(m.Tracks()))
	})

	t.Run("Malformed Data Falls Back To Empty", func(t *testing.T) {
		var buf bytes.Buffer
		store := tu.NewMemoryStore()
		store.LoadErr = errors.Join(shared.ErrMalformedData, errors.New("unexpected end of JSON input"))
		m := NewManager(store, shared.NewLogger(&buf))

		require.NoError(t, m.Load(ctx))
		assert.True(t, m.Loaded())
		assert.Empty(t, m.Tracks())
		assert.Contains(t, buf.String(), "ignoring stored favorites")

		store.LoadErr = nil
		_, err := m.Toggle(ctx, one)
		require.NoError(t, err)
		saved, _ := store.Saved()
		assert.Equal(t, []int64{1}, ids(saved))
	})

	t.Run("Load Error Stays Unloaded", func(t *testing.T) {
		store := tu.NewMemoryStore(one)
		store.LoadErr = errors.New("disk gone")
		m := NewManager(store, shared.NewLogger(io.Discard))

		assert.Error(t, m.Load(ctx))
		assert.False(t, m.Loaded())

		m.Toggle(ctx, two)
		_, saves := store.Saved()
		assert.Zero(t, saves)
	})

	t.Run("Save Error Keeps Change", func(t *testing.T) {
		store := tu.NewMemoryStore()
		m := NewManager(store, shared.NewLogger(io.Discard))
		require.NoError(t, m.Load(ctx))
		store.SaveErr = errors.New("read-only")

		added, err := m.Toggle(ctx, one)
		assert.Error(t, err)
		assert.True(t, added)
		assert.True(t, m.Contains(1))
	})

	t.Run("Clear", func(t *testing.T) {
		store := tu.NewMemoryStore(one, two)
		m := NewManager(store, shared.NewLogger(io.Discard))
		require.NoError(t, m.Load(ctx))

		require.NoError(t, m.Clear(ctx))
		assert.Empty(t, m.Tracks())
		saved, saves := store.Saved()
		assert.Empty(t, saved)
		assert.Equal(t, 1, saves)
	})

	t.Run("Round Trip Through SQLite", func(t *testing.T) {
		store := NewKVStore(repositories.NewKeyValueRepository(setupTestDB(t)))
		first := NewManager(store, shared.NewLogger(io.Discard))
		require.NoError(t, first.Load(ctx))
		first.Toggle(ctx, one)
		first.Toggle(ctx, two)

		second := NewManager(store, shared.NewLogger(io.Discard))
		require.NoError(t, second.Load(ctx))
		assert.ElementsMatch(t, first.Tracks(), second.Tracks())
	})
}
