package recording

import (
	"sync/atomic"
	"time"

	"github.com/ColonelBlimp/tapeengine/internal/recovery"
)

// provisionerPollInterval is how often the provisioner checks whether
// the chain needs another buffer. The padding threshold must cover at
// least one interval plus scheduling jitter.
const provisionerPollInterval = 50 * time.Millisecond

// Provisioner runs in the background during a recording, extending the
// Chain with new Buffers before the capture callback can run out of
// room. It is the chain's only writer of Buffer.Next; the capture
// callback is the chain's only writer of Buffer.Usage.
type Provisioner struct {
	chain          *Chain
	bufferCapacity int
	paddingFrames  int
	terminate      chan struct{}
	done           chan struct{}
}

// NewProvisioner builds a provisioner over chain. bufferCapacity is the
// frame capacity of each allocated buffer; paddingFrames is how much
// headroom must remain in the tail buffer before a new one is grown.
func NewProvisioner(chain *Chain, bufferCapacity, paddingFrames int) *Provisioner {
	return &Provisioner{
		chain:          chain,
		bufferCapacity: bufferCapacity,
		paddingFrames:  paddingFrames,
		terminate:      make(chan struct{}),
		done:           make(chan struct{}),
	}
}

// Start launches the provisioner's background goroutine. Call Stop to
// shut it down.
func (p *Provisioner) Start() {
	go func() {
		defer recovery.HandlePanicFunc(func() { close(p.done) })
		p.run()
		close(p.done)
	}()
}

// Stop signals the provisioner to exit and waits for it to do so.
func (p *Provisioner) Stop() {
	close(p.terminate)
	<-p.done
}

func (p *Provisioner) run() {
	ticker := time.NewTicker(provisionerPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.terminate:
			return
		case <-ticker.C:
			p.maybeGrow()
		}
	}
}

func (p *Provisioner) maybeGrow() {
	tail := p.chain.Tail
	usage := int(tail.Usage.Load())
	if usage < p.bufferCapacity-p.paddingFrames {
		return
	}

	next := NewBuffer(p.bufferCapacity)
	next.Prev = tail
	tail.Next.Store(next)
	p.chain.Tail = next
}

// currentBufferPointer is the atomic handle the capture callback uses to
// track which buffer it's writing into; it's separate from Chain.Tail
// because the callback's "current" buffer lags behind the provisioner's
// newest buffer whenever the callback hasn't caught up yet.
type currentBufferPointer struct {
	ptr atomic.Pointer[Buffer]
}

func newCurrentBufferPointer(initial *Buffer) *currentBufferPointer {
	c := &currentBufferPointer{}
	c.ptr.Store(initial)
	return c
}

func (c *currentBufferPointer) Load() *Buffer   { return c.ptr.Load() }
func (c *currentBufferPointer) Store(b *Buffer) { c.ptr.Store(b) }
