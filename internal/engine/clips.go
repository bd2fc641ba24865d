package engine

import (
	"fmt"

	"github.com/ColonelBlimp/tapeengine/internal/clip"
	"github.com/ColonelBlimp/tapeengine/internal/wav"
)

// SetSampleRate changes the engine's sample rate. Fails if a transport
// is active, sr is non-positive, or any clip already exists.
func (e *Engine) SetSampleRate(sr uint32) error {
	if err := e.requireIdle(); err != nil {
		return err
	}
	if sr == 0 {
		return fmt.Errorf("%w: sample rate must be positive", ErrPrecondition)
	}
	if e.clips.Len() > 0 {
		return fmt.Errorf("%w: cannot change sample rate while clips exist", ErrState)
	}
	e.sampleRate = sr
	return nil
}

// SampleRate returns the engine's current sample rate, 0 if unset.
func (e *Engine) SampleRate() uint32 {
	return e.sampleRate
}

// LoadClip reads a WAV file at path and inserts it as a new clip. Fails
// on I/O error, invalid format, or a sample-rate mismatch against the
// engine's configured rate.
func (e *Engine) LoadClip(path string) (clip.ID, error) {
	if err := e.requireIdle(); err != nil {
		return 0, err
	}

	samples, sampleRate, err := wav.DecodeFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: load %s: %v", ErrIO, path, err)
	}
	if sampleRate != e.sampleRate {
		return 0, fmt.Errorf("%w: %s has sample rate %d, engine expects %d", ErrIO, path, sampleRate, e.sampleRate)
	}

	return e.clips.Insert(samples), nil
}

// SaveClip writes the given clip to path as a WAV file at the engine's
// current sample rate.
func (e *Engine) SaveClip(id clip.ID, path string) error {
	c, ok := e.clips.Get(id)
	if !ok {
		return fmt.Errorf("%w: clip %d", ErrPrecondition, id)
	}
	if err := wav.EncodeFile(path, c.Samples, e.sampleRate); err != nil {
		return fmt.Errorf("%w: save %s: %v", ErrIO, path, err)
	}
	return nil
}

// DeleteClip removes a clip. Fails on invalid id or while any transport
// is active. Whether the clip is referenced by an existing placement is
// left to StartPlayback's validation rather than checked here.
func (e *Engine) DeleteClip(id clip.ID) error {
	if err := e.requireIdle(); err != nil {
		return err
	}
	if !e.clips.Delete(id) {
		return fmt.Errorf("%w: clip %d", ErrPrecondition, id)
	}
	return nil
}

// ClipSampleCount returns the number of samples in a clip.
func (e *Engine) ClipSampleCount(id clip.ID) (int, error) {
	n, err := e.clips.SampleCount(id)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPrecondition, err)
	}
	return n, nil
}

// ClipSamples returns a preview of a clip's samples, downsampled to max
// entries (or the full clip if max <= 0).
func (e *Engine) ClipSamples(id clip.ID, max int) ([]float32, error) {
	samples, err := e.clips.Preview(id, max)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPrecondition, err)
	}
	return samples, nil
}
