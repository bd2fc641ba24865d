// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	AppName       = "tapeengine"
	ConfigType    = "yaml"
	DefaultConfig = `# tapeengine configuration

# Engine sample rate in Hz. Must match any clip loaded or saved.
sample_rate: 48000

# Frames delivered to the audio callback per period. Lower values reduce
# latency at the cost of higher overrun/underrun risk.
frames_per_buffer: 512

# Device overrides. -1 selects the host's reported default for that
# direction; otherwise an index into the "devices" command's listing.
input_device_index: -1
output_device_index: -1

# Output
debug: false
`
)

// Settings holds all application configuration.
type Settings struct {
	SampleRate        uint32 `mapstructure:"sample_rate"`
	FramesPerBuffer   uint32 `mapstructure:"frames_per_buffer"`
	InputDeviceIndex  int    `mapstructure:"input_device_index"`
	OutputDeviceIndex int    `mapstructure:"output_device_index"`
	Debug             bool   `mapstructure:"debug"`
}

// Init initializes Viper with defaults and config file.
// Config file search order: current directory, then ~/.config/tapeengine/
func Init() error {
	viper.SetDefault("sample_rate", 48000)
	viper.SetDefault("frames_per_buffer", 512)
	viper.SetDefault("input_device_index", -1)
	viper.SetDefault("output_device_index", -1)
	viper.SetDefault("debug", false)

	// Support both config.yaml and .config.yaml
	viper.SetConfigType(ConfigType)

	// Priority order: current directory first, then XDG config
	viper.AddConfigPath(".")

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	viper.AddConfigPath(filepath.Join(configDir, AppName))

	// Try .config.yaml first (hidden file), then config.yaml
	viper.SetConfigName(".config")
	if err = viper.ReadInConfig(); err != nil {
		// Try config.yaml as fallback
		viper.SetConfigName("config")
		err = viper.ReadInConfig()
	}

	// Read config file - if not found, create default in XDG config dir
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// No config found - create default in ~/.config/tapeengine/
			xdgConfigPath := filepath.Join(configDir, AppName)
			if err = ensureConfigExists(xdgConfigPath); err != nil {
				return err
			}
			// Read the newly created config
			if err = viper.ReadInConfig(); err != nil {
				return fmt.Errorf("read config: %w", err)
			}
		} else {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return nil
}

func ensureConfigExists(configPath string) error {
	configFile := filepath.Join(configPath, "config.yaml")

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err = os.MkdirAll(configPath, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
		if err = os.WriteFile(configFile, []byte(DefaultConfig), 0644); err != nil {
			return fmt.Errorf("write default config: %w", err)
		}
	}
	return nil
}

// Get returns the current settings
func Get() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &s, nil
}

// Validate checks that all settings are within acceptable ranges
func (s *Settings) Validate() error {
	var errs []error

	if s.SampleRate < 8000 || s.SampleRate > 192000 {
		errs = append(errs, fmt.Errorf("sample_rate must be between 8000 and 192000 Hz, got %d", s.SampleRate))
	}
	if s.FramesPerBuffer == 0 || s.FramesPerBuffer > 65536 {
		errs = append(errs, fmt.Errorf("frames_per_buffer must be between 1 and 65536, got %d", s.FramesPerBuffer))
	}
	if s.InputDeviceIndex < -1 {
		errs = append(errs, fmt.Errorf("input_device_index must be -1 or a non-negative index, got %d", s.InputDeviceIndex))
	}
	if s.OutputDeviceIndex < -1 {
		errs = append(errs, fmt.Errorf("output_device_index must be -1 or a non-negative index, got %d", s.OutputDeviceIndex))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
