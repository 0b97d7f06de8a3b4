// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/tunes/internal/models"
)

// SongFixture builds a track that passes [models.Track.IsSong].
func SongFixture(id int64, name, artist string) models.Track {
	return models.Track{
		ID:          id,
		TrackName:   name,
		ArtistName:  artist,
		Collection:  name + " (Single)",
		Price:       1.29,
		Currency:    "USD",
		DurationMS:  215000,
		ReleaseDate: "2020-01-01T12:00:00Z",
		Genre:       "Pop",
		Kind:        models.KindSong,
		WrapperType: models.WrapperTrack,
	}
}

// MockSearcher is a test double for [services.Searcher].
//
// It records every term it is asked for. Results and errors are looked up by term;
// Delays holds a per-term latency used to reorder responses.
type MockSearcher struct {
	mu      sync.Mutex
	calls   []string
	Results map[string][]models.Track
	Errors  map[string]error
	Delays  map[string]time.Duration
}

func NewMockSearcher() *MockSearcher {
	return &MockSearcher{
		Results: map[string][]models.Track{},
		Errors:  map[string]error{},
		Delays:  map[string]time.Duration{},
	}
}

func (m *MockSearcher) Search(ctx context.Context, term string) ([]models.Track, error) {
	m.mu.Lock()
	m.calls = append(m.calls, term)
	delay := m.Delays[term]
	result, err := m.Results[term], m.Errors[term]
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err != nil {
		return nil, err
	}
	return models.FilterSongs(result), nil
}

// Calls returns a copy of the recorded search terms in call order.
func (m *MockSearcher) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// MemoryStore is an in-memory test double for favorites.Store.
type MemoryStore struct {
	mu      sync.Mutex
	tracks  []models.Track
	saves   int
	LoadErr error
	SaveErr error
}

func NewMemoryStore(tracks ...models.Track) *MemoryStore {
	return &MemoryStore{tracks: tracks}
}

func (s *MemoryStore) Load(context.Context) ([]models.Track, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return append([]models.Track(nil), s.tracks...), nil
}

func (s *MemoryStore) Save(_ context.Context, tracks []models.Track) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.saves++
	s.tracks = append([]models.Track(nil), tracks...)
	return nil
}

// Saved returns the last persisted tracks and how many saves happened.
func (s *MemoryStore) Saved() ([]models.Track, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Track(nil), s.tracks...), s.saves
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// JSONResponse builds an [http.Response] with the given status and body.
func JSONResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
