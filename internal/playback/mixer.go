package playback

import "sync/atomic"

// ClipSamples gives the Mixer read access to a clip's sample data. Like
// ClipLength, it's a narrow interface so the mixer doesn't import
// internal/clip.
type ClipSamples interface {
	Samples(id int32) ([]float32, error)
}

// Mixer replays an Arrangement's placements into an output buffer from
// inside a real-time audio callback. SampleIndex is the only field the
// callback and other threads (e.g. a transport-position query) touch
// concurrently, so it's atomic; everything else is owned exclusively by
// the callback thread while playback is running.
type Mixer struct {
	arrangement *Arrangement
	clips       ClipSamples

	firstActive    *Placement
	nextEventIndex int
	SampleIndex    atomic.Int64
}

// NewMixer prepares a mixer over arrangement. It does not start
// playback; call Start to position the active-clip list at
// startSampleIndex.
func NewMixer(arrangement *Arrangement, clips ClipSamples) *Mixer {
	return &Mixer{arrangement: arrangement, clips: clips}
}

// Start positions playback at startSampleIndex, replaying every event up
// to that point so the active-clip list reflects whatever clips should
// already be sounding.
func (m *Mixer) Start(startSampleIndex int32) {
	for i := range m.arrangement.Placements {
		m.arrangement.Placements[i].prevActive = nil
		m.arrangement.Placements[i].nextActive = nil
	}
	m.firstActive = nil
	m.nextEventIndex = 0

	for m.nextEventIndex < len(m.arrangement.Events) {
		ev := m.arrangement.Events[m.nextEventIndex]
		if ev.SampleIndex > startSampleIndex {
			break
		}
		m.applyEvent(ev)
		m.nextEventIndex++
	}

	m.SampleIndex.Store(int64(startSampleIndex))
}

// activate inserts placement at the head of the active list. The new
// head's next pointer takes over the previous head, so a forward
// traversal reaches every active placement.
func (m *Mixer) activate(p *Placement) {
	p.nextActive = m.firstActive
	if m.firstActive != nil {
		m.firstActive.prevActive = p
	}
	m.firstActive = p
}

func (m *Mixer) deactivate(p *Placement) {
	if p.prevActive == nil {
		m.firstActive = p.nextActive
	} else {
		p.prevActive.nextActive = p.nextActive
	}
	if p.nextActive != nil {
		p.nextActive.prevActive = p.prevActive
	}
	p.prevActive = nil
	p.nextActive = nil
}

func (m *Mixer) applyEvent(ev Event) {
	p := &m.arrangement.Placements[ev.PlacementIndex]
	if ev.Kind == EventStart {
		m.activate(p)
	} else {
		m.deactivate(p)
	}
}

// Fill accumulates the arrangement's output into buf, which the caller
// must have already sized to the callback's frame count and zeroed;
// Fill only adds to what's there.
func (m *Mixer) Fill(buf []float32) error {
	current := int32(m.SampleIndex.Load())
	end := current + int32(len(buf))
	offset := int32(0)

	for current < end {
		// Phase 1: find how far we can go before the next event fires.
		iterationEnd := end
		var pendingEvent *Event
		if m.nextEventIndex < len(m.arrangement.Events) {
			ev := &m.arrangement.Events[m.nextEventIndex]
			if ev.SampleIndex < end {
				iterationEnd = ev.SampleIndex
				pendingEvent = ev
			}
		}

		// Phase 2: accumulate every active placement's samples into buf.
		if current != iterationEnd {
			count := iterationEnd - current
			for p := m.firstActive; p != nil; p = p.nextActive {
				samples, err := m.clips.Samples(p.ClipID)
				if err != nil {
					return err
				}
				clipStart := current - p.PlaybackStart + p.Start
				for i := int32(0); i < count; i++ {
					buf[offset+i] += samples[clipStart+i]
				}
			}
			current = iterationEnd
			offset += count
		}

		// Phase 3: apply the event we stopped short for, if any.
		if pendingEvent != nil {
			m.applyEvent(*pendingEvent)
			m.nextEventIndex++
		}
	}

	m.SampleIndex.Store(int64(end))
	return nil
}
