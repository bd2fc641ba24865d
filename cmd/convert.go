package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ColonelBlimp/tapeengine/internal/config"
	"github.com/ColonelBlimp/tapeengine/internal/engine"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input.wav> <output.wav>",
	Short: "Round-trip a WAV file through the engine's clip format",
	Long:  `convert loads a WAV file as a clip and re-saves it in the engine's canonical mono 32-bit float encoding. The input must already be mono 32-bit float at the configured sample rate; no format or sample-rate conversion is done.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runConvert,
}

func runConvert(_ *cobra.Command, args []string) error {
	settings, err := config.Get()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	e := engine.New()
	if err := e.SetSampleRate(settings.SampleRate); err != nil {
		return fmt.Errorf("set sample rate: %w", err)
	}

	id, err := e.LoadClip(args[0])
	if err != nil {
		return fmt.Errorf("load %s: %w", args[0], err)
	}

	if err := e.SaveClip(id, args[1]); err != nil {
		return fmt.Errorf("save %s: %w", args[1], err)
	}

	count, err := e.ClipSampleCount(id)
	if err != nil {
		return fmt.Errorf("sample count: %w", err)
	}
	fmt.Printf("Converted %d samples from %s to %s\n", count, args[0], args[1])
	return nil
}
