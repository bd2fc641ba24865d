package playback

import "testing"

type fakeClips map[int32][]float32

func (f fakeClips) Samples(id int32) ([]float32, error) {
	return f[id], nil
}

func arrangementOf(t *testing.T, placements []Placement) *Arrangement {
	t.Helper()
	return &Arrangement{
		Placements: placements,
		Events:     buildEvents(placements),
	}
}

func TestMixer_SingleClipFromStart(t *testing.T) {
	clips := fakeClips{1: {1, 2, 3, 4, 5}}
	arr := arrangementOf(t, []Placement{{ClipID: 1, Start: 0, End: 5, PlaybackStart: 0}})

	m := NewMixer(arr, clips)
	m.Start(0)

	buf := make([]float32, 5)
	if err := m.Fill(buf); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	want := []float32{1, 2, 3, 4, 5}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestMixer_OverlappingClipsSum(t *testing.T) {
	clips := fakeClips{
		1: {1, 1, 1, 1},
		2: {10, 10, 10, 10},
	}
	arr := arrangementOf(t, []Placement{
		{ClipID: 1, Start: 0, End: 4, PlaybackStart: 0},
		{ClipID: 2, Start: 0, End: 4, PlaybackStart: 2},
	})

	m := NewMixer(arr, clips)
	m.Start(0)

	buf := make([]float32, 6)
	if err := m.Fill(buf); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	want := []float32{1, 1, 11, 11, 10, 10}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestMixer_ThreeOverlappingClipsAllActive(t *testing.T) {
	// With three simultaneously active clips, a broken head insertion
	// would only ever replay the most recently activated one.
	clips := fakeClips{
		1: {1, 1, 1, 1, 1},
		2: {2, 2, 2, 2, 2},
		3: {4, 4, 4, 4, 4},
	}
	arr := arrangementOf(t, []Placement{
		{ClipID: 1, Start: 0, End: 5, PlaybackStart: 0},
		{ClipID: 2, Start: 0, End: 5, PlaybackStart: 0},
		{ClipID: 3, Start: 0, End: 5, PlaybackStart: 0},
	})

	m := NewMixer(arr, clips)
	m.Start(0)

	buf := make([]float32, 5)
	if err := m.Fill(buf); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	for i, v := range buf {
		if v != 7 {
			t.Errorf("buf[%d] = %v, want 7 (1+2+4, all three clips summed)", i, v)
		}
	}
}

func TestMixer_StartMidway_ReplaysPastEvents(t *testing.T) {
	clips := fakeClips{1: {9, 9, 9, 9, 9, 9, 9, 9, 9, 9}}
	arr := arrangementOf(t, []Placement{{ClipID: 1, Start: 0, End: 10, PlaybackStart: 0}})

	m := NewMixer(arr, clips)
	m.Start(5)

	buf := make([]float32, 3)
	if err := m.Fill(buf); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	for i, v := range buf {
		if v != 9 {
			t.Errorf("buf[%d] = %v, want 9 (clip should already be active)", i, v)
		}
	}
}

func TestMixer_ClipStopsPartwayThroughCallback(t *testing.T) {
	clips := fakeClips{1: {5, 5, 5}}
	arr := arrangementOf(t, []Placement{{ClipID: 1, Start: 0, End: 3, PlaybackStart: 0}})

	m := NewMixer(arr, clips)
	m.Start(0)

	buf := make([]float32, 6)
	if err := m.Fill(buf); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	want := []float32{5, 5, 5, 0, 0, 0}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestMixer_BackToBackPlacements(t *testing.T) {
	clips := fakeClips{
		1: {1, 2, 3},
		2: {10, 20, 30},
	}
	arr := arrangementOf(t, []Placement{
		{ClipID: 1, Start: 0, End: 3, PlaybackStart: 0},
		{ClipID: 2, Start: 0, End: 3, PlaybackStart: 2},
	})

	m := NewMixer(arr, clips)
	m.Start(0)

	buf := make([]float32, 6)
	if err := m.Fill(buf); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	want := []float32{1, 2, 13, 20, 30, 0}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestMixer_StartInsidePlacementInterval(t *testing.T) {
	clips := fakeClips{1: {1, 2, 3}}
	arr := arrangementOf(t, []Placement{{ClipID: 1, Start: 0, End: 3, PlaybackStart: 100}})

	m := NewMixer(arr, clips)
	m.Start(101)

	buf := make([]float32, 4)
	if err := m.Fill(buf); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	want := []float32{2, 3, 0, 0}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestMixer_NonZeroClipStartOffset(t *testing.T) {
	clips := fakeClips{1: {9, 9, 1, 2, 3, 9}}
	arr := arrangementOf(t, []Placement{{ClipID: 1, Start: 2, End: 5, PlaybackStart: 1}})

	m := NewMixer(arr, clips)
	m.Start(0)

	buf := make([]float32, 6)
	if err := m.Fill(buf); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	want := []float32{0, 1, 2, 3, 0, 0}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestMixer_SampleIndexAdvancesByFrameCount(t *testing.T) {
	clips := fakeClips{1: {1, 1, 1, 1}}
	arr := arrangementOf(t, []Placement{{ClipID: 1, Start: 0, End: 4, PlaybackStart: 0}})

	m := NewMixer(arr, clips)
	m.Start(0)

	buf := make([]float32, 4)
	if err := m.Fill(buf); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if got := m.SampleIndex.Load(); got != 4 {
		t.Errorf("SampleIndex = %d, want 4", got)
	}
}
