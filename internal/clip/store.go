// Package clip holds captured and loaded audio clips, keyed by a
// monotonically increasing id.
package clip

import (
	"errors"
	"fmt"
)

// ID identifies a clip within a single process lifetime. Ids are never
// reused, even after the clip they named is deleted.
type ID int32

// ErrNotFound is returned by Store methods given an id with no clip.
var ErrNotFound = errors.New("clip: not found")

// Clip is an immutable mono float sample sequence once inserted into a
// Store; Store.Insert is the only way to populate one.
type Clip struct {
	ID      ID
	Samples []float32
}

// Store maps clip ids to clips and hands out the next id. It is not safe
// for concurrent use: the engine only ever touches it from the client
// thread, per the single-client-thread model of the wider engine.
type Store struct {
	clips  map[ID]*Clip
	nextID ID
}

// NewStore returns an empty clip store. Ids start at 1, leaving 0 free
// as a "no clip" sentinel for callers.
func NewStore() *Store {
	return &Store{clips: make(map[ID]*Clip), nextID: 1}
}

// Insert copies samples into a new clip and returns its id. The Store
// takes ownership of a private copy, so the caller's slice may be reused.
func (s *Store) Insert(samples []float32) ID {
	id := s.nextID
	s.nextID++

	owned := make([]float32, len(samples))
	copy(owned, samples)
	s.clips[id] = &Clip{ID: id, Samples: owned}
	return id
}

// Get returns the clip for id, or ok=false if no such clip exists.
func (s *Store) Get(id ID) (*Clip, bool) {
	c, ok := s.clips[id]
	return c, ok
}

// Delete removes the clip for id. It returns false if no such clip
// existed.
func (s *Store) Delete(id ID) bool {
	if _, ok := s.clips[id]; !ok {
		return false
	}
	delete(s.clips, id)
	return true
}

// ReplaceSamples overwrites the samples of an existing clip in place,
// keeping its id. Used by the recording transport to populate the clip
// that was allocated empty at StartRecordingClip once the chain's
// samples have been concatenated.
func (s *Store) ReplaceSamples(id ID, samples []float32) {
	c, ok := s.clips[id]
	if !ok {
		return
	}
	c.Samples = samples
}

// Len returns the number of clips currently stored.
func (s *Store) Len() int {
	return len(s.clips)
}

// SampleCount returns the number of samples in the clip for id.
func (s *Store) SampleCount(id ID) (int, error) {
	c, ok := s.clips[id]
	if !ok {
		return 0, fmt.Errorf("%w: clip %d", ErrNotFound, id)
	}
	return len(c.Samples), nil
}

// Preview returns exactly max samples from the clip for id by
// nearest-neighbor subsampling: result[i] == clip.Samples[i*length/max].
// If max <= 0 the full sample sequence is returned unchanged.
func (s *Store) Preview(id ID, max int) ([]float32, error) {
	c, ok := s.clips[id]
	if !ok {
		return nil, fmt.Errorf("%w: clip %d", ErrNotFound, id)
	}

	length := len(c.Samples)
	if max <= 0 {
		out := make([]float32, length)
		copy(out, c.Samples)
		return out, nil
	}

	out := make([]float32, max)
	if length == 0 {
		return out, nil
	}
	for i := 0; i < max; i++ {
		srcIndex := int64(i) * int64(length) / int64(max)
		out[i] = c.Samples[srcIndex]
	}
	return out, nil
}
