package playback

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/gen2brain/malgo"
)

var (
	ErrAlreadyPlaying = errors.New("playback: already in progress")
	ErrNotPlaying     = errors.New("playback: not in progress")
)

// Stream owns the live malgo playback device driving a Mixer.
type Stream struct {
	mixer  *Mixer
	device *malgo.Device
}

// Start opens a playback device at sampleRate and begins mixing
// arrangement from startSampleIndex. outputDeviceID may be nil to use
// the host's default output device.
func Start(ctx *malgo.AllocatedContext, arrangement *Arrangement, clips ClipSamples, sampleRate uint32, framesPerBuffer uint32, outputDeviceID unsafe.Pointer, startSampleIndex int32) (*Stream, error) {
	mixer := NewMixer(arrangement, clips)
	mixer.Start(startSampleIndex)

	s := &Stream{mixer: mixer}

	deviceConfig := malgo.DeviceConfig{
		DeviceType:         malgo.Playback,
		SampleRate:         sampleRate,
		PeriodSizeInFrames: framesPerBuffer,
		Playback: malgo.SubConfig{
			Format:   malgo.FormatF32,
			Channels: 1,
			DeviceID: outputDeviceID,
		},
	}

	onData := func(outputSamples, inputSamples []byte, frameCount uint32) {
		buf := bytesAsFloat32(outputSamples)
		for i := range buf {
			buf[i] = 0
		}
		// The clip ids referenced by the arrangement were already validated
		// at StartPlayback, so Fill cannot fail here in practice; there's no
		// error channel back out of a real-time audio callback regardless.
		_ = s.mixer.Fill(buf)
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{Data: onData})
	if err != nil {
		return nil, fmt.Errorf("playback: init device: %w", err)
	}
	s.device = device

	if err := device.Start(); err != nil {
		device.Uninit()
		return nil, fmt.Errorf("playback: start device: %w", err)
	}

	return s, nil
}

// Stop halts the playback device.
func (s *Stream) Stop() error {
	if err := s.device.Stop(); err != nil {
		return fmt.Errorf("playback: stop device: %w", err)
	}
	s.device.Uninit()
	return nil
}

// SampleIndex returns the arrangement's current playback position.
func (s *Stream) SampleIndex() int32 {
	return int32(s.mixer.SampleIndex.Load())
}

func bytesAsFloat32(data []byte) []float32 {
	const bytesPerFloat32 = 4
	if len(data) < bytesPerFloat32 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&data[0])), len(data)/bytesPerFloat32)
}
