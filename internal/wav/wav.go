// Package wav reads and writes single-channel, 32-bit float WAV files.
//
// The format is fixed and intentionally narrow: RIFF/WAVE container, one
// "fmt " sub-chunk of 16 bytes describing IEEE-float PCM, one "data"
// sub-chunk of little-endian float32 samples. No extension chunks, no
// multi-channel support, no other sample formats.
package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	headerSize       = 44
	audioFormatFloat = 3
	channelCount     = 1
	bitsPerSample    = 32
	bytesPerSample   = bitsPerSample / 8
)

// ErrInvalidFormat is wrapped by Decode when the input is not a well-formed
// mono float32 WAV file.
var ErrInvalidFormat = errors.New("wav: invalid format")

type header struct {
	RIFF          [4]byte
	ChunkSize     uint32
	WAVE          [4]byte
	FmtID         [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	ChannelCount  uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataID        [4]byte
	DataSize      uint32
}

// Decode reads a mono float32 WAV stream and returns its samples and sample
// rate. It fails if the container, format tag, channel count, bit depth, or
// chunk sizes don't match the fixed format described in the package doc.
func Decode(r io.Reader) (samples []float32, sampleRate uint32, err error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, 0, fmt.Errorf("%w: read header: %v", ErrInvalidFormat, err)
	}

	if string(h.RIFF[:]) != "RIFF" {
		return nil, 0, fmt.Errorf("%w: missing RIFF tag", ErrInvalidFormat)
	}
	if string(h.WAVE[:]) != "WAVE" {
		return nil, 0, fmt.Errorf("%w: missing WAVE tag", ErrInvalidFormat)
	}
	if string(h.FmtID[:]) != "fmt " {
		return nil, 0, fmt.Errorf("%w: missing fmt chunk", ErrInvalidFormat)
	}
	if string(h.DataID[:]) != "data" {
		return nil, 0, fmt.Errorf("%w: missing data chunk", ErrInvalidFormat)
	}
	if h.FmtSize != 16 {
		return nil, 0, fmt.Errorf("%w: fmt chunk size %d, want 16", ErrInvalidFormat, h.FmtSize)
	}
	if h.AudioFormat != audioFormatFloat {
		return nil, 0, fmt.Errorf("%w: audio format %d, want %d (IEEE float)", ErrInvalidFormat, h.AudioFormat, audioFormatFloat)
	}
	if h.ChannelCount != channelCount {
		return nil, 0, fmt.Errorf("%w: channel count %d, want %d (mono)", ErrInvalidFormat, h.ChannelCount, channelCount)
	}
	if h.BitsPerSample != bitsPerSample {
		return nil, 0, fmt.Errorf("%w: bits per sample %d, want %d", ErrInvalidFormat, h.BitsPerSample, bitsPerSample)
	}
	wantByteRate := h.SampleRate * uint32(channelCount) * uint32(bitsPerSample) / 8
	if h.ByteRate != wantByteRate {
		return nil, 0, fmt.Errorf("%w: byte rate %d, want %d", ErrInvalidFormat, h.ByteRate, wantByteRate)
	}
	if h.BlockAlign != uint16(channelCount*bitsPerSample/8) {
		return nil, 0, fmt.Errorf("%w: block align %d, want %d", ErrInvalidFormat, h.BlockAlign, channelCount*bitsPerSample/8)
	}
	if h.DataSize%bytesPerSample != 0 {
		return nil, 0, fmt.Errorf("%w: data size %d not a multiple of %d", ErrInvalidFormat, h.DataSize, bytesPerSample)
	}

	sampleCount := h.DataSize / bytesPerSample
	samples = make([]float32, sampleCount)
	if sampleCount > 0 {
		if err := binary.Read(r, binary.LittleEndian, samples); err != nil {
			return nil, 0, fmt.Errorf("%w: read samples: %v", ErrInvalidFormat, err)
		}
	}

	return samples, h.SampleRate, nil
}

// Encode writes samples as a mono float32 WAV stream at the given sample
// rate, bit-exact with the fixed format described in the package doc.
func Encode(w io.Writer, samples []float32, sampleRate uint32) error {
	dataSize := uint32(len(samples)) * bytesPerSample

	h := header{
		RIFF:          [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		WAVE:          [4]byte{'W', 'A', 'V', 'E'},
		FmtID:         [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		AudioFormat:   audioFormatFloat,
		ChannelCount:  channelCount,
		SampleRate:    sampleRate,
		ByteRate:      sampleRate * bytesPerSample,
		BlockAlign:    bytesPerSample,
		BitsPerSample: bitsPerSample,
		DataID:        [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataSize,
	}

	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("wav: write header: %w", err)
	}
	if len(samples) > 0 {
		if err := binary.Write(w, binary.LittleEndian, samples); err != nil {
			return fmt.Errorf("wav: write samples: %w", err)
		}
	}
	return nil
}

// DecodeFile reads and decodes a WAV file at path.
func DecodeFile(path string) (samples []float32, sampleRate uint32, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("wav: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// EncodeFile writes samples as a WAV file at path, creating or truncating it.
func EncodeFile(path string, samples []float32, sampleRate uint32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wav: create %s: %w", path, err)
	}
	defer f.Close()
	if err := Encode(f, samples, sampleRate); err != nil {
		return err
	}
	return f.Close()
}
