package playback

import "sort"

// EventKind distinguishes a clip's entry into and exit from the active
// set.
type EventKind int

const (
	EventStart EventKind = iota
	EventStop
)

// Event marks that, at SampleIndex in the arrangement's timeline, the
// placement at PlacementIndex should be activated or deactivated.
type Event struct {
	Kind           EventKind
	PlacementIndex int
	SampleIndex    int32
}

// buildEvents derives the two events (start, stop) for each placement
// and returns them in timeline order. The kind is a secondary sort key:
// at an equal sample index every start precedes every stop, whatever
// order the placements were appended in, so a zero-length clip still
// activates before anything sharing its instant deactivates. The sort
// is stable, so events of the same kind at the same index keep their
// placement order.
func buildEvents(placements []Placement) []Event {
	events := make([]Event, 0, len(placements)*2)
	for i, p := range placements {
		clipLength := p.End - p.Start
		events = append(events,
			Event{Kind: EventStart, PlacementIndex: i, SampleIndex: p.PlaybackStart},
			Event{Kind: EventStop, PlacementIndex: i, SampleIndex: p.PlaybackStart + clipLength},
		)
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].SampleIndex != events[j].SampleIndex {
			return events[i].SampleIndex < events[j].SampleIndex
		}
		return events[i].Kind == EventStart && events[j].Kind == EventStop
	})

	return events
}
