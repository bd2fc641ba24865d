package engine

import (
	"fmt"

	"github.com/ColonelBlimp/tapeengine/internal/clip"
	"github.com/ColonelBlimp/tapeengine/internal/playback"
	"github.com/ColonelBlimp/tapeengine/internal/recording"
)

// StartRecordingClip opens a duplex stream on the given input/output
// devices and begins recording into a new clip. On any failure after
// the provisioner has started, the provisioner and any opened stream
// are torn down before the error is returned, leaving the engine Idle.
func (e *Engine) StartRecordingClip(inputIndex, outputIndex int, framesPerBuffer uint32) (clip.ID, error) {
	if err := e.requireInitialized(); err != nil {
		return 0, err
	}
	if err := e.requireIdle(); err != nil {
		return 0, err
	}
	if e.sampleRate == 0 {
		return 0, fmt.Errorf("%w: sample rate not set", ErrState)
	}
	if framesPerBuffer == 0 {
		return 0, fmt.Errorf("%w: frames per buffer must be positive", ErrPrecondition)
	}

	inputID, err := e.catalog.InputDeviceID(inputIndex)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPrecondition, err)
	}
	outputID, err := e.catalog.OutputDeviceID(outputIndex)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPrecondition, err)
	}

	stream, err := recording.Start(e.ctx, e.sampleRate, framesPerBuffer, inputID, outputID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrHost, err)
	}

	id := e.clips.Insert(nil)
	e.recordingClipID = id
	e.recordingStream = stream
	e.mode = Recording
	return id, nil
}

// StopRecordingClip stops the capture stream, concatenates the recorded
// samples into the recording clip, and returns the engine to Idle.
func (e *Engine) StopRecordingClip() error {
	if e.mode != Recording {
		return fmt.Errorf("%w: not recording", ErrState)
	}

	samples, err := e.recordingStream.Stop()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHost, err)
	}

	e.clips.ReplaceSamples(e.recordingClipID, samples)
	e.recordingStream = nil
	e.recordingClipID = 0
	e.mode = Idle
	return nil
}

// LatestRecordedSamples returns the most recent n samples captured so
// far. Valid only while recording.
func (e *Engine) LatestRecordedSamples(n int) ([]float32, error) {
	if e.mode != Recording {
		return nil, fmt.Errorf("%w: not recording", ErrState)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: sample count must be non-negative, got %d", ErrPrecondition, n)
	}
	return e.recordingStream.LatestSamples(n), nil
}

// RecordedSampleCount returns the total number of samples accumulated so
// far in the in-progress recording, for progress display alongside
// LatestRecordedSamples.
func (e *Engine) RecordedSampleCount() (int, error) {
	if e.mode != Recording {
		return 0, fmt.Errorf("%w: not recording", ErrState)
	}
	return e.recordingStream.SampleCount(), nil
}

// RecordingUnderflows returns the number of frames dropped during the
// current recording because the provisioner couldn't keep pace. Never
// raised as an error; observable only via inspection. It returns 0 when
// no recording is in progress: the count is not kept after
// StopRecordingClip.
func (e *Engine) RecordingUnderflows() int {
	if e.recordingStream == nil {
		return 0
	}
	return e.recordingStream.Underflows()
}

// PlaybackBuilderBegin clears the playback arrangement under
// construction.
func (e *Engine) PlaybackBuilderBegin() error {
	if err := e.requireIdle(); err != nil {
		return err
	}
	e.builder = playback.Begin()
	return nil
}

// PlaybackBuilderAddClip appends a placement to the arrangement under
// construction.
func (e *Engine) PlaybackBuilderAddClip(id clip.ID, start, end, playbackStart int32) error {
	if err := e.requireIdle(); err != nil {
		return err
	}
	if err := e.builder.AddClip(clipLengths{e.clips}, int32(id), start, end, playbackStart); err != nil {
		return fmt.Errorf("%w: %v", ErrPrecondition, err)
	}
	return nil
}

// PlaybackBuilderFinalize sorts the accumulated placements into an
// event timeline, ready for StartPlayback.
func (e *Engine) PlaybackBuilderFinalize() error {
	if err := e.requireIdle(); err != nil {
		return err
	}
	e.arrangement = e.builder.Finalize()
	return nil
}

// StartPlayback opens a playback stream on the given output device and
// begins mixing the finalized arrangement starting at sampleIndex.
func (e *Engine) StartPlayback(outputIndex int, framesPerBuffer uint32, sampleIndex int32) error {
	if err := e.requireInitialized(); err != nil {
		return err
	}
	if err := e.requireIdle(); err != nil {
		return err
	}
	if e.sampleRate == 0 {
		return fmt.Errorf("%w: sample rate not set", ErrState)
	}
	if framesPerBuffer == 0 {
		return fmt.Errorf("%w: frames per buffer must be positive", ErrPrecondition)
	}
	if e.arrangement == nil {
		e.arrangement = e.builder.Finalize()
	}

	outputID, err := e.catalog.OutputDeviceID(outputIndex)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPrecondition, err)
	}

	for _, p := range e.arrangement.Placements {
		if _, ok := e.clips.Get(clip.ID(p.ClipID)); !ok {
			return fmt.Errorf("%w: arrangement references deleted clip %d", ErrPrecondition, p.ClipID)
		}
	}

	stream, err := playback.Start(e.ctx, e.arrangement, clipSamples{e.clips}, e.sampleRate, framesPerBuffer, outputID, sampleIndex)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHost, err)
	}

	e.playStream = stream
	e.mode = Playing
	return nil
}

// StopPlayback stops the playback stream and returns the engine to
// Idle. The active-clip list is left as-is; no invariant requires it
// cleared until the next StartPlayback.
func (e *Engine) StopPlayback() error {
	if e.mode != Playing {
		return fmt.Errorf("%w: not playing", ErrState)
	}
	if err := e.playStream.Stop(); err != nil {
		return fmt.Errorf("%w: %v", ErrHost, err)
	}
	e.playStream = nil
	e.mode = Idle
	return nil
}

// PlaybackSampleIndex returns the transport's current playback position.
func (e *Engine) PlaybackSampleIndex() int32 {
	if e.playStream == nil {
		return 0
	}
	return e.playStream.SampleIndex()
}
