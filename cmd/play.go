package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ColonelBlimp/tapeengine/internal/config"
	"github.com/ColonelBlimp/tapeengine/internal/engine"
)

var playCmd = &cobra.Command{
	Use:   "play <clip.wav>...",
	Short: "Play one or more WAV clips back-to-back on the output device",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	settings, err := config.Get()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	e := engine.New()
	if err := e.Initialize(); err != nil {
		return fmt.Errorf("init engine: %w", err)
	}
	defer e.Shutdown()

	if err := e.SetSampleRate(settings.SampleRate); err != nil {
		return fmt.Errorf("set sample rate: %w", err)
	}

	outputIndex, err := resolveDeviceIndex(settings.OutputDeviceIndex, e.DefaultOutputIndex)
	if err != nil {
		return err
	}

	if err := e.PlaybackBuilderBegin(); err != nil {
		return fmt.Errorf("begin arrangement: %w", err)
	}

	var playbackStart int32
	var totalSamples int32
	for _, path := range args {
		id, err := e.LoadClip(path)
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		count, err := e.ClipSampleCount(id)
		if err != nil {
			return fmt.Errorf("sample count %s: %w", path, err)
		}
		if err := e.PlaybackBuilderAddClip(id, 0, int32(count), playbackStart); err != nil {
			return fmt.Errorf("add clip %s: %w", path, err)
		}
		playbackStart += int32(count)
		totalSamples += int32(count)
	}

	if err := e.PlaybackBuilderFinalize(); err != nil {
		return fmt.Errorf("finalize arrangement: %w", err)
	}

	if err := e.StartPlayback(outputIndex, settings.FramesPerBuffer, 0); err != nil {
		return fmt.Errorf("start playback: %w", err)
	}

	duration := time.Duration(float64(totalSamples)/float64(settings.SampleRate)*float64(time.Second)) + 100*time.Millisecond
	time.Sleep(duration)

	if err := e.StopPlayback(); err != nil {
		return fmt.Errorf("stop playback: %w", err)
	}

	return nil
}
