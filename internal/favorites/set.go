// package favorites keeps the user's favorite tracks and persists them
package favorites

import "github.com/desertthunder/tunes/internal/models"

// Set is an ordered collection of tracks with unique ids.
//
// The zero value is an empty set ready to use. A Set is not safe for concurrent use.
type Set struct {
	tracks []models.Track
	index  map[int64]int
}

// NewSet builds a Set from tracks. When ids repeat, the first occurrence wins.
func NewSet(tracks ...models.Track) *Set {
	s := &Set{}
	for _, t := range tracks {
		if !s.Contains(t.ID) {
			s.add(t)
		}
	}
	return s
}

// Toggle adds t when its id is absent and removes the stored track otherwise.
// It reports whether t is a favorite afterwards.
func (s *Set) Toggle(t models.Track) bool {
	if i, ok := s.index[t.ID]; ok {
		s.remove(i)
		return false
	}
	s.add(t)
	return true
}

// Contains reports whether a track with id is in the set
func (s *Set) Contains(id int64) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Set) Len() int {
	return len(s.tracks)
}

// Tracks returns a copy of the set in insertion order
func (s *Set) Tracks() []models.Track {
	out := make([]models.Track, len(s.tracks))
	copy(out, s.tracks)
	return out
}

func (s *Set) add(t models.Track) {
	if s.index == nil {
		s.index = map[int64]int{}
	}
	s.index[t.ID] = len(s.tracks)
	s.tracks = append(s.tracks, t)
}

func (s *Set) remove(i int) {
	delete(s.index, s.tracks[i].ID)
	s.tracks = append(s.tracks[:i], s.tracks[i+1:]...)
	for j := i; j < len(s.tracks); j++ {
		s.index[s.tracks[j].ID] = j
	}
}
