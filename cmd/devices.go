package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ColonelBlimp/tapeengine/internal/engine"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List available audio input and output devices",
	RunE:  runDevices,
}

func runDevices(_ *cobra.Command, _ []string) error {
	e := engine.New()
	if err := e.Initialize(); err != nil {
		return fmt.Errorf("init engine: %w", err)
	}
	defer func() {
		if err := e.Shutdown(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "shutdown: %v\n", err)
		}
	}()

	inputCount, err := e.InputCount()
	if err != nil {
		return fmt.Errorf("list inputs: %w", err)
	}
	defaultInput, err := e.DefaultInputIndex()
	if err != nil {
		return fmt.Errorf("default input: %w", err)
	}

	fmt.Println("Input devices:")
	for i := 0; i < inputCount; i++ {
		name, err := e.InputName(i)
		if err != nil {
			return fmt.Errorf("input name %d: %w", i, err)
		}
		latency, err := e.InputLatency(i)
		if err != nil {
			return fmt.Errorf("input latency %d: %w", i, err)
		}
		marker := ""
		if i == defaultInput {
			marker = " (default)"
		}
		fmt.Printf("  [%d] %s%s (suggested latency %s)\n", i, name, marker, latency)
	}

	outputCount, err := e.OutputCount()
	if err != nil {
		return fmt.Errorf("list outputs: %w", err)
	}
	defaultOutput, err := e.DefaultOutputIndex()
	if err != nil {
		return fmt.Errorf("default output: %w", err)
	}

	fmt.Println("Output devices:")
	for i := 0; i < outputCount; i++ {
		name, err := e.OutputName(i)
		if err != nil {
			return fmt.Errorf("output name %d: %w", i, err)
		}
		latency, err := e.OutputLatency(i)
		if err != nil {
			return fmt.Errorf("output latency %d: %w", i, err)
		}
		marker := ""
		if i == defaultOutput {
			marker = " (default)"
		}
		fmt.Printf("  [%d] %s%s (suggested latency %s)\n", i, name, marker, latency)
	}

	return nil
}
