// Package recording implements the lock-free recording buffer chain: a
// capture callback appends frames into buffers from a chain while a
// background provisioner keeps the chain ahead of it, so the real-time
// audio thread never allocates.
package recording

import "sync/atomic"

// Buffer is one fixed-capacity segment of a recording's sample chain.
// Usage is advanced only by the capture callback (the single writer);
// Next is advanced only by the provisioner (the single allocator). Both
// are read by consumers such as Concatenate and LatestSamples, so both
// are atomic.
type Buffer struct {
	Samples []float32
	Usage   atomic.Uint64
	Prev    *Buffer
	Next    atomic.Pointer[Buffer]
}

// NewBuffer allocates a buffer with the given sample capacity.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{Samples: make([]float32, capacity)}
}

// Chain is a singly-forward, doubly-traversable list of Buffers backing
// one in-progress recording.
type Chain struct {
	Head *Buffer
	Tail *Buffer
}

// NewChain starts a chain with a single buffer of the given capacity.
func NewChain(bufferCapacity int) *Chain {
	first := NewBuffer(bufferCapacity)
	return &Chain{Head: first, Tail: first}
}

// AppendFrames writes frames into current starting at its existing usage,
// allocating no memory and spilling into current.Next if current fills up
// mid-call. It returns the buffer that should become "current" for the
// next call, and the number of frames that could not be written because
// the chain ran out of provisioned buffers (a recording underflow).
//
// This is the pure, hardware-free core of the capture callback: it is
// exercised directly by tests and wrapped by the malgo Data callback in
// capture.go.
func AppendFrames(current *Buffer, frames []float32) (next *Buffer, underflowFrames int) {
	buf := current
	frameIndex := 0

	for frameIndex < len(frames) {
		capacity := len(buf.Samples)
		usage := int(buf.Usage.Load())

		if usage == capacity {
			nextBuf := buf.Next.Load()
			if nextBuf == nil {
				return buf, len(frames) - frameIndex
			}
			buf = nextBuf
			capacity = len(buf.Samples)
			usage = int(buf.Usage.Load())
		}

		copyAmount := len(frames) - frameIndex
		if room := capacity - usage; copyAmount > room {
			copyAmount = room
		}
		copy(buf.Samples[usage:usage+copyAmount], frames[frameIndex:frameIndex+copyAmount])
		buf.Usage.Store(uint64(usage + copyAmount))
		frameIndex += copyAmount
	}

	return buf, 0
}

// LatestSamples walks backward from current, collecting the most recent
// sampleCount samples across the chain. Samples are returned oldest
// first. If fewer than sampleCount samples exist, the result is
// zero-padded at the front, so the caller always gets a fixed-width
// "most recent n" view.
func LatestSamples(current *Buffer, sampleCount int) []float32 {
	out := make([]float32, sampleCount)
	remaining := sampleCount
	buf := current

	for remaining > 0 && buf != nil {
		usage := int(buf.Usage.Load())
		amount := remaining
		if amount > usage {
			amount = usage
		}
		for i := 0; i < amount; i++ {
			remaining--
			usage--
			out[remaining] = buf.Samples[usage]
		}
		buf = buf.Prev
	}

	return out
}

// Concatenate walks the chain from head to tail and returns every used
// sample as one contiguous slice, in recording order. The first walk
// only sizes the result; usage is counted once.
func Concatenate(head *Buffer) []float32 {
	sampleCount := 0
	for buf := head; buf != nil; buf = buf.Next.Load() {
		sampleCount += int(buf.Usage.Load())
	}

	out := make([]float32, 0, sampleCount)
	for buf := head; buf != nil; buf = buf.Next.Load() {
		usage := int(buf.Usage.Load())
		out = append(out, buf.Samples[:usage]...)
	}
	return out
}

// SampleCount returns the total number of recorded samples across the
// chain, the value backing Engine.RecordedSampleCount.
func SampleCount(head *Buffer) int {
	count := 0
	for buf := head; buf != nil; buf = buf.Next.Load() {
		count += int(buf.Usage.Load())
	}
	return count
}
