// Package playback builds multi-clip arrangements and mixes them in
// real time: a Builder assembles Placements, Finalize turns them into a
// sorted Event timeline, and a Mixer walks that timeline from inside the
// audio callback.
package playback

import (
	"errors"
	"fmt"
)

// ErrInvalidRange is returned by AddClip when the requested sample range
// doesn't fit within the clip.
var ErrInvalidRange = errors.New("playback: invalid sample range")

// ClipLength reports how many samples a clip id has, and whether the id
// is valid. The builder only needs this much of the clip store, so it
// depends on an interface rather than importing internal/clip directly.
type ClipLength interface {
	SampleCount(id int32) (int, error)
}

// Placement is one clip's position within an arrangement: it plays the
// clip's [Start, End) sample range beginning at PlaybackStart in the
// arrangement's timeline.
type Placement struct {
	ClipID        int32
	Start         int32
	End           int32
	PlaybackStart int32

	prevActive *Placement
	nextActive *Placement
}

// Builder assembles an arrangement's placements. It does not validate
// cross-placement overlap; clips may freely overlap in the timeline, and
// the Mixer sums them.
type Builder struct {
	placements []Placement
}

// Begin starts a new arrangement, discarding anything previously built.
func Begin() *Builder {
	return &Builder{}
}

// AddClip appends a placement of clip id's [start, end) range at
// playbackStart. lengths is consulted to validate clip id and the
// requested range.
func (b *Builder) AddClip(lengths ClipLength, id int32, start, end, playbackStart int32) error {
	length, err := lengths.SampleCount(id)
	if err != nil {
		return err
	}

	if start < 0 || int(start) > length || end < 0 || int(end) > length || start > end {
		return fmt.Errorf("%w: clip %d start=%d end=%d length=%d", ErrInvalidRange, id, start, end, length)
	}

	b.placements = append(b.placements, Placement{
		ClipID:        id,
		Start:         start,
		End:           end,
		PlaybackStart: playbackStart,
	})
	return nil
}

// Finalize builds the sorted event timeline for the accumulated
// placements and returns the arrangement ready for playback.
func (b *Builder) Finalize() *Arrangement {
	placements := make([]Placement, len(b.placements))
	copy(placements, b.placements)

	return &Arrangement{
		Placements: placements,
		Events:     buildEvents(placements),
	}
}

// Arrangement is a finalized, immutable set of placements plus their
// sorted start/stop event timeline, ready to be handed to a Mixer.
type Arrangement struct {
	Placements []Placement
	Events     []Event
}
