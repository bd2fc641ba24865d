// Package device enumerates the host's audio input and output devices
// through malgo, snapshotting the device table once at startup.
package device

import (
	"errors"
	"fmt"
	"time"
	"unsafe"

	"github.com/gen2brain/malgo"
)

// ErrIndexOutOfRange is returned when a caller names a device index the
// catalog does not have.
var ErrIndexOutOfRange = errors.New("device: index out of range")

// defaultSuggestedLatency is reported as every device's SuggestedLatency.
// malgo's DeviceInfo has no per-device latency field to query; 10ms is
// miniaudio's low-latency performance-profile target.
const defaultSuggestedLatency = 10 * time.Millisecond

// Device describes one audio-capable device as reported by the host.
type Device struct {
	// Index is this device's position in the catalog's Inputs or Outputs
	// slice, not a host-level index; it's what client code passes back in
	// to select a device.
	Index int
	Name  string

	// SuggestedLatency is a planning hint for stream latency. It is not
	// wired into malgo.DeviceConfig: stream latency there is controlled
	// by the frames-per-buffer value the client already passes
	// explicitly when starting a stream, and malgo has no per-device
	// "suggested latency" input to feed this value into even if it were.
	SuggestedLatency time.Duration

	id malgo.DeviceID
}

// Catalog is a snapshot of the host's input and output devices, taken
// once at Open and never refreshed; callers who need up-to-date
// enumeration re-open.
type Catalog struct {
	Inputs  []Device
	Outputs []Device

	// DefaultInput and DefaultOutput name the index within Inputs/Outputs
	// of the host's default device, or -1 if the host reported none.
	DefaultInput  int
	DefaultOutput int
}

// Open enumerates the context's capture and playback devices and builds
// a Catalog: one walk per direction, recording the default device's
// position as it goes.
func Open(ctx *malgo.AllocatedContext) (*Catalog, error) {
	if ctx == nil {
		return nil, errors.New("device: nil context")
	}

	captureInfos, err := ctx.Devices(malgo.Capture)
	if err != nil {
		return nil, fmt.Errorf("device: enumerate capture devices: %w", err)
	}
	playbackInfos, err := ctx.Devices(malgo.Playback)
	if err != nil {
		return nil, fmt.Errorf("device: enumerate playback devices: %w", err)
	}

	cat := &Catalog{
		Inputs:        buildDevices(captureInfos),
		Outputs:       buildDevices(playbackInfos),
		DefaultInput:  defaultIndex(captureInfos),
		DefaultOutput: defaultIndex(playbackInfos),
	}
	return cat, nil
}

func buildDevices(infos []malgo.DeviceInfo) []Device {
	devices := make([]Device, len(infos))
	for i, info := range infos {
		devices[i] = Device{
			Index:            i,
			Name:             info.Name(),
			SuggestedLatency: defaultSuggestedLatency,
			id:               info.ID,
		}
	}
	return devices
}

// defaultIndex returns the position of the host's default device within
// infos, or -1 if malgo reported no default (e.g. an empty device list).
func defaultIndex(infos []malgo.DeviceInfo) int {
	for i, info := range infos {
		if info.IsDefault != 0 {
			return i
		}
	}
	return -1
}

// InputName returns the display name of input device i.
func (c *Catalog) InputName(i int) (string, error) {
	if i < 0 || i >= len(c.Inputs) {
		return "", fmt.Errorf("%w: input %d (have %d)", ErrIndexOutOfRange, i, len(c.Inputs))
	}
	return c.Inputs[i].Name, nil
}

// OutputName returns the display name of output device i.
func (c *Catalog) OutputName(i int) (string, error) {
	if i < 0 || i >= len(c.Outputs) {
		return "", fmt.Errorf("%w: output %d (have %d)", ErrIndexOutOfRange, i, len(c.Outputs))
	}
	return c.Outputs[i].Name, nil
}

// InputLatency returns the suggested latency of input device i.
func (c *Catalog) InputLatency(i int) (time.Duration, error) {
	if i < 0 || i >= len(c.Inputs) {
		return 0, fmt.Errorf("%w: input %d (have %d)", ErrIndexOutOfRange, i, len(c.Inputs))
	}
	return c.Inputs[i].SuggestedLatency, nil
}

// OutputLatency returns the suggested latency of output device i.
func (c *Catalog) OutputLatency(i int) (time.Duration, error) {
	if i < 0 || i >= len(c.Outputs) {
		return 0, fmt.Errorf("%w: output %d (have %d)", ErrIndexOutOfRange, i, len(c.Outputs))
	}
	return c.Outputs[i].SuggestedLatency, nil
}

// InputDeviceID returns the malgo device id for input device i, for
// passing into a capture stream's SubConfig.DeviceID.
func (c *Catalog) InputDeviceID(i int) (unsafe.Pointer, error) {
	if i < 0 || i >= len(c.Inputs) {
		return nil, fmt.Errorf("%w: input %d (have %d)", ErrIndexOutOfRange, i, len(c.Inputs))
	}
	return c.Inputs[i].id.Pointer(), nil
}

// OutputDeviceID returns the malgo device id for output device i, for
// passing into a playback stream's SubConfig.DeviceID.
func (c *Catalog) OutputDeviceID(i int) (unsafe.Pointer, error) {
	if i < 0 || i >= len(c.Outputs) {
		return nil, fmt.Errorf("%w: output %d (have %d)", ErrIndexOutOfRange, i, len(c.Outputs))
	}
	return c.Outputs[i].id.Pointer(), nil
}
