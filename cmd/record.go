package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ColonelBlimp/tapeengine/internal/config"
	"github.com/ColonelBlimp/tapeengine/internal/engine"
)

var recordDuration time.Duration

var recordCmd = &cobra.Command{
	Use:   "record <output.wav>",
	Short: "Record a clip from the input device and save it as a WAV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecord,
}

func init() {
	recordCmd.Flags().DurationVarP(&recordDuration, "duration", "t", 5*time.Second, "recording length")
}

func runRecord(_ *cobra.Command, args []string) error {
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

	inputIndex, err := resolveDeviceIndex(settings.InputDeviceIndex, e.DefaultInputIndex)
	if err != nil {
		return err
	}
	outputIndex, err := resolveDeviceIndex(settings.OutputDeviceIndex, e.DefaultOutputIndex)
	if err != nil {
		return err
	}

	id, err := e.StartRecordingClip(inputIndex, outputIndex, settings.FramesPerBuffer)
	if err != nil {
		return fmt.Errorf("start recording: %w", err)
	}

	fmt.Printf("Recording for %s... \n", recordDuration)
	time.Sleep(recordDuration)

	if err := e.StopRecordingClip(); err != nil {
		return fmt.Errorf("stop recording: %w", err)
	}

	if err := e.SaveClip(id, args[0]); err != nil {
		return fmt.Errorf("save clip: %w", err)
	}

	count, err := e.ClipSampleCount(id)
	if err != nil {
		return fmt.Errorf("sample count: %w", err)
	}
	fmt.Printf("Saved %d samples to %s\n", count, args[0])
	return nil
}

// resolveDeviceIndex returns index unchanged unless it is the -1
// sentinel, in which case it defers to defaultFn.
func resolveDeviceIndex(index int, defaultFn func() (int, error)) (int, error) {
	if index != -1 {
		return index, nil
	}
	return defaultFn()
}
