package engine

import (
	"errors"
	"testing"
)

func TestPlaybackBuilder_BeginAddFinalize(t *testing.T) {
	e := New()
	e.sampleRate = 48000
	id := e.clips.Insert([]float32{1, 2, 3, 4, 5})

	if err := e.PlaybackBuilderBegin(); err != nil {
		t.Fatalf("PlaybackBuilderBegin() error = %v", err)
	}
	if err := e.PlaybackBuilderAddClip(id, 0, 5, 10); err != nil {
		t.Fatalf("PlaybackBuilderAddClip() error = %v", err)
	}
	if err := e.PlaybackBuilderFinalize(); err != nil {
		t.Fatalf("PlaybackBuilderFinalize() error = %v", err)
	}

	if len(e.arrangement.Placements) != 1 {
		t.Fatalf("len(Placements) = %d, want 1", len(e.arrangement.Placements))
	}
}

func TestPlaybackBuilderAddClip_InvalidBounds(t *testing.T) {
	e := New()
	id := e.clips.Insert([]float32{1, 2, 3})

	if err := e.PlaybackBuilderAddClip(id, 0, 99, 0); !errors.Is(err, ErrPrecondition) {
		t.Errorf("PlaybackBuilderAddClip() error = %v, want ErrPrecondition", err)
	}
}

// TestMutualExclusion_Matrix checks that every operation requiring Idle
// returns a state error while Recording or Playing.
func TestMutualExclusion_Matrix(t *testing.T) {
	for _, mode := range []Mode{Recording, Playing} {
		t.Run(mode.String(), func(t *testing.T) {
			e := New()
			e.sampleRate = 48000
			id := e.clips.Insert([]float32{1, 2, 3})
			e.mode = mode

			if err := e.SetSampleRate(44100); !errors.Is(err, ErrState) {
				t.Errorf("SetSampleRate() error = %v, want ErrState", err)
			}
			if err := e.DeleteClip(id); !errors.Is(err, ErrState) {
				t.Errorf("DeleteClip() error = %v, want ErrState", err)
			}
			if err := e.PlaybackBuilderBegin(); !errors.Is(err, ErrState) {
				t.Errorf("PlaybackBuilderBegin() error = %v, want ErrState", err)
			}
			if err := e.PlaybackBuilderAddClip(id, 0, 1, 0); !errors.Is(err, ErrState) {
				t.Errorf("PlaybackBuilderAddClip() error = %v, want ErrState", err)
			}
			if err := e.PlaybackBuilderFinalize(); !errors.Is(err, ErrState) {
				t.Errorf("PlaybackBuilderFinalize() error = %v, want ErrState", err)
			}
			if _, err := e.LoadClip("/nonexistent"); !errors.Is(err, ErrState) {
				t.Errorf("LoadClip() error = %v, want ErrState", err)
			}
		})
	}
}

func TestStopRecordingClip_WhenNotRecording(t *testing.T) {
	e := New()
	if err := e.StopRecordingClip(); !errors.Is(err, ErrState) {
		t.Errorf("StopRecordingClip() error = %v, want ErrState", err)
	}
}

func TestStopPlayback_WhenNotPlaying(t *testing.T) {
	e := New()
	if err := e.StopPlayback(); !errors.Is(err, ErrState) {
		t.Errorf("StopPlayback() error = %v, want ErrState", err)
	}
}

func TestLatestRecordedSamples_WhenNotRecording(t *testing.T) {
	e := New()
	if _, err := e.LatestRecordedSamples(10); !errors.Is(err, ErrState) {
		t.Errorf("LatestRecordedSamples() error = %v, want ErrState", err)
	}
}

func TestRecordedSampleCount_WhenNotRecording(t *testing.T) {
	e := New()
	if _, err := e.RecordedSampleCount(); !errors.Is(err, ErrState) {
		t.Errorf("RecordedSampleCount() error = %v, want ErrState", err)
	}
}

// TestDeleteClip_WhileRecording checks that deleting a clip while
// Recording returns a state error and leaves the clip and recording
// state unchanged.
func TestDeleteClip_WhileRecording(t *testing.T) {
	e := New()
	id := e.clips.Insert([]float32{1, 2, 3})
	e.mode = Recording
	e.recordingClipID = id

	if err := e.DeleteClip(id); !errors.Is(err, ErrState) {
		t.Errorf("DeleteClip() error = %v, want ErrState", err)
	}
	if _, ok := e.clips.Get(id); !ok {
		t.Error("clip should still exist after refused delete")
	}
	if e.mode != Recording {
		t.Errorf("mode = %v, want Recording (unchanged)", e.mode)
	}
}

func TestSetMetronomeSamplesPerBeat(t *testing.T) {
	e := New()
	if err := e.SetMetronomeSamplesPerBeat(0); !errors.Is(err, ErrPrecondition) {
		t.Errorf("SetMetronomeSamplesPerBeat(0) error = %v, want ErrPrecondition", err)
	}
	if err := e.SetMetronomeSamplesPerBeat(24000); err != nil {
		t.Errorf("SetMetronomeSamplesPerBeat(24000) error = %v", err)
	}
}
