package recording

import (
	"errors"
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/gen2brain/malgo"
)

// bufferLengthSeconds is the length of a single recording buffer
// segment.
const bufferLengthSeconds = 5.0

// bufferPaddingSeconds is how much headroom must remain in the tail
// buffer before the provisioner grows the chain.
const bufferPaddingSeconds = 1.0

var (
	ErrAlreadyRecording = errors.New("recording: already in progress")
	ErrNotRecording     = errors.New("recording: not in progress")
)

// Stream owns the live malgo device and buffer chain for one in-progress
// recording. The device is opened in duplex mode: input is captured into
// the chain, output is held silent so the output side stays claimed for
// monitoring without producing sound.
type Stream struct {
	chain       *Chain
	provisioner *Provisioner
	current     *currentBufferPointer
	device      *malgo.Device
	underflows  atomic.Int64
	sampleRate  uint32
}

// Start opens a duplex device and begins recording into a fresh buffer
// chain. inputDeviceID and outputDeviceID may be nil to use the host's
// default devices.
func Start(ctx *malgo.AllocatedContext, sampleRate uint32, framesPerBuffer uint32, inputDeviceID, outputDeviceID unsafe.Pointer) (*Stream, error) {
	bufferCapacity := int(float64(sampleRate) * bufferLengthSeconds)
	paddingFrames := int(float64(sampleRate) * bufferPaddingSeconds)

	chain := NewChain(bufferCapacity)
	provisioner := NewProvisioner(chain, bufferCapacity, paddingFrames)
	provisioner.Start()

	s := &Stream{
		chain:       chain,
		provisioner: provisioner,
		current:     newCurrentBufferPointer(chain.Head),
		sampleRate:  sampleRate,
	}

	deviceConfig := malgo.DeviceConfig{
		DeviceType:         malgo.Duplex,
		SampleRate:         sampleRate,
		PeriodSizeInFrames: framesPerBuffer,
		Capture: malgo.SubConfig{
			Format:   malgo.FormatF32,
			Channels: 1,
			DeviceID: inputDeviceID,
		},
		Playback: malgo.SubConfig{
			Format:   malgo.FormatF32,
			Channels: 1,
			DeviceID: outputDeviceID,
		},
	}

	onData := func(outputSamples, inputSamples []byte, frameCount uint32) {
		for i := range outputSamples {
			outputSamples[i] = 0
		}
		if len(inputSamples) == 0 {
			return
		}
		frames := bytesAsFloat32(inputSamples)

		next, underflow := AppendFrames(s.current.Load(), frames)
		s.current.Store(next)
		if underflow > 0 {
			s.underflows.Add(int64(underflow))
		}
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{Data: onData})
	if err != nil {
		provisioner.Stop()
		return nil, fmt.Errorf("recording: init device: %w", err)
	}
	s.device = device

	if err := device.Start(); err != nil {
		device.Uninit()
		provisioner.Stop()
		return nil, fmt.Errorf("recording: start device: %w", err)
	}

	return s, nil
}

// Stop halts the device and provisioner and returns the recorded samples
// as one contiguous slice.
func (s *Stream) Stop() ([]float32, error) {
	if err := s.device.Stop(); err != nil {
		return nil, fmt.Errorf("recording: stop device: %w", err)
	}
	s.device.Uninit()
	s.provisioner.Stop()

	return Concatenate(s.chain.Head), nil
}

// LatestSamples returns the most recent sampleCount recorded samples
// without stopping the recording.
func (s *Stream) LatestSamples(sampleCount int) []float32 {
	return LatestSamples(s.current.Load(), sampleCount)
}

// SampleCount returns the total number of samples recorded so far.
func (s *Stream) SampleCount() int {
	return SampleCount(s.chain.Head)
}

// Underflows returns the number of frames dropped because the
// provisioner could not keep the chain ahead of the capture callback.
func (s *Stream) Underflows() int {
	return int(s.underflows.Load())
}

func bytesAsFloat32(data []byte) []float32 {
	const bytesPerFloat32 = 4
	if len(data) < bytesPerFloat32 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&data[0])), len(data)/bytesPerFloat32)
}
