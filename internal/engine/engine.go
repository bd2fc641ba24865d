// Package engine is the process-wide state machine tying together the
// device catalog, clip store, recording chain, and playback mixer into
// the single object a client drives: initialize, operate, shutdown.
package engine

import (
	"fmt"
	"time"

	"github.com/gen2brain/malgo"

	"github.com/ColonelBlimp/tapeengine/internal/clip"
	"github.com/ColonelBlimp/tapeengine/internal/device"
	"github.com/ColonelBlimp/tapeengine/internal/playback"
	"github.com/ColonelBlimp/tapeengine/internal/recording"
)

// Mode is the transport's current state. An explicit three-value enum,
// not two booleans, so illegal combinations (recording and playing at
// once) can't be represented.
type Mode int

const (
	Idle Mode = iota
	Recording
	Playing
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	case Playing:
		return "playing"
	default:
		return "unknown"
	}
}

// Engine is a regular client-constructed object, not package-level
// global state; running one per process is the caller's convention. One
// Engine owns one audio host context, clip store, and transport session
// at a time.
type Engine struct {
	ctx     *malgo.AllocatedContext
	catalog *device.Catalog

	sampleRate uint32
	clips      *clip.Store
	mode       Mode

	recordingClipID clip.ID
	recordingStream *recording.Stream

	builder     *playback.Builder
	arrangement *playback.Arrangement
	playStream  *playback.Stream

	metronomeSamplesPerBeat int
}

// New constructs an uninitialized Engine. Device queries and starting a
// recording or playback require Initialize; the sample-rate, clip and
// arrangement-builder operations work without it.
func New() *Engine {
	return &Engine{
		clips:   clip.NewStore(),
		builder: playback.Begin(),
		mode:    Idle,
	}
}

// Initialize brings up the audio host and takes a snapshot of its
// devices. Fails if already initialized or if the host library can't be
// brought up.
func (e *Engine) Initialize() error {
	if e.ctx != nil {
		return fmt.Errorf("%w: already initialized", ErrState)
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("%w: init audio context: %v", ErrHost, err)
	}

	cat, err := device.Open(ctx)
	if err != nil {
		ctx.Uninit()
		ctx.Free()
		return fmt.Errorf("%w: enumerate devices: %v", ErrHost, err)
	}

	e.ctx = ctx
	e.catalog = cat
	return nil
}

// Shutdown tears down the audio host. Fails while a transport is active.
func (e *Engine) Shutdown() error {
	if e.mode != Idle {
		return fmt.Errorf("%w: transport active during shutdown", ErrState)
	}
	if e.ctx == nil {
		return fmt.Errorf("%w: not initialized", ErrState)
	}

	if err := e.ctx.Uninit(); err != nil {
		return fmt.Errorf("%w: uninit audio context: %v", ErrHost, err)
	}
	e.ctx.Free()
	e.ctx = nil
	e.catalog = nil
	return nil
}

func (e *Engine) requireInitialized() error {
	if e.ctx == nil {
		return fmt.Errorf("%w: not initialized", ErrState)
	}
	return nil
}

func (e *Engine) requireIdle() error {
	if e.mode != Idle {
		return fmt.Errorf("%w: transport active (%s)", ErrState, e.mode)
	}
	return nil
}

// InputCount returns the number of cataloged input devices.
func (e *Engine) InputCount() (int, error) {
	if err := e.requireInitialized(); err != nil {
		return 0, err
	}
	return len(e.catalog.Inputs), nil
}

// OutputCount returns the number of cataloged output devices.
func (e *Engine) OutputCount() (int, error) {
	if err := e.requireInitialized(); err != nil {
		return 0, err
	}
	return len(e.catalog.Outputs), nil
}

// DefaultInputIndex returns the catalog's default input index, or -1 if
// the host reported none.
func (e *Engine) DefaultInputIndex() (int, error) {
	if err := e.requireInitialized(); err != nil {
		return 0, err
	}
	return e.catalog.DefaultInput, nil
}

// DefaultOutputIndex returns the catalog's default output index, or -1
// if the host reported none.
func (e *Engine) DefaultOutputIndex() (int, error) {
	if err := e.requireInitialized(); err != nil {
		return 0, err
	}
	return e.catalog.DefaultOutput, nil
}

// InputName returns the display name of input device i.
func (e *Engine) InputName(i int) (string, error) {
	if err := e.requireInitialized(); err != nil {
		return "", err
	}
	name, err := e.catalog.InputName(i)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPrecondition, err)
	}
	return name, nil
}

// OutputName returns the display name of output device i.
func (e *Engine) OutputName(i int) (string, error) {
	if err := e.requireInitialized(); err != nil {
		return "", err
	}
	name, err := e.catalog.OutputName(i)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPrecondition, err)
	}
	return name, nil
}

// InputLatency returns the suggested latency of input device i.
func (e *Engine) InputLatency(i int) (time.Duration, error) {
	if err := e.requireInitialized(); err != nil {
		return 0, err
	}
	latency, err := e.catalog.InputLatency(i)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPrecondition, err)
	}
	return latency, nil
}

// OutputLatency returns the suggested latency of output device i.
func (e *Engine) OutputLatency(i int) (time.Duration, error) {
	if err := e.requireInitialized(); err != nil {
		return 0, err
	}
	latency, err := e.catalog.OutputLatency(i)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPrecondition, err)
	}
	return latency, nil
}

// SetMetronomeSamplesPerBeat is a reserved, inert setter: the value is
// validated and stored but nothing reads it yet. Kept so clients can
// persist the setting ahead of metronome support.
func (e *Engine) SetMetronomeSamplesPerBeat(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: samples per beat must be positive, got %d", ErrPrecondition, n)
	}
	e.metronomeSamplesPerBeat = n
	return nil
}

// Mode returns the current transport mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// clipLengths and clipSamples adapt *clip.Store to the narrow
// playback.ClipLength / playback.ClipSamples interfaces, which take
// int32 ids rather than clip.ID to avoid internal/playback importing
// internal/clip.
type clipLengths struct{ store *clip.Store }

func (c clipLengths) SampleCount(id int32) (int, error) {
	return c.store.SampleCount(clip.ID(id))
}

type clipSamples struct{ store *clip.Store }

func (c clipSamples) Samples(id int32) ([]float32, error) {
	cl, ok := c.store.Get(clip.ID(id))
	if !ok {
		return nil, fmt.Errorf("%w: clip %d", clip.ErrNotFound, id)
	}
	return cl.Samples, nil
}
