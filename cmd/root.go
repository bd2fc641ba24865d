// cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ColonelBlimp/tapeengine/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "tapeengine",
	Short: "Multi-track audio recording and playback engine",
	Long:  `tapeengine records audio clips, arranges them on a timeline, and plays the arrangement back through a low-latency audio callback.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "execution error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().Uint32P("sample-rate", "r", 48000, "engine sample rate in Hz")
	rootCmd.PersistentFlags().Uint32P("frames-per-buffer", "b", 512, "frames delivered to the audio callback per period")
	rootCmd.PersistentFlags().IntP("input-device", "i", -1, "input device index (-1 for host default)")
	rootCmd.PersistentFlags().IntP("output-device", "o", -1, "output device index (-1 for host default)")
	rootCmd.PersistentFlags().BoolP("debug", "D", false, "enable debug output")

	cobra.CheckErr(viper.BindPFlag("sample_rate", rootCmd.PersistentFlags().Lookup("sample-rate")))
	cobra.CheckErr(viper.BindPFlag("frames_per_buffer", rootCmd.PersistentFlags().Lookup("frames-per-buffer")))
	cobra.CheckErr(viper.BindPFlag("input_device_index", rootCmd.PersistentFlags().Lookup("input-device")))
	cobra.CheckErr(viper.BindPFlag("output_device_index", rootCmd.PersistentFlags().Lookup("output-device")))
	cobra.CheckErr(viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")))

	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(convertCmd)
}

func initConfig() {
	if err := config.Init(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
}
