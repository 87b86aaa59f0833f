// Package config loads the front end configuration from a TOML file.
package config

import (
	"bytes"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Backend kinds
const (
	BackendEcho   = "echo"
	BackendBridge = "bridge"
)

// Default geometry and quota
const (
	DefaultComputerWidth  = 51
	DefaultComputerHeight = 19
	DefaultPocketWidth    = 26
	DefaultPocketHeight   = 20
	DefaultSpaceLimit     = 2097152

	DefaultHoldWindowMS = 650
	DefaultFrameRate    = 60
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// Config represents the main configuration
type Config struct {
	ComputerWidth  uint32 `toml:"computer_width"`
	ComputerHeight uint32 `toml:"computer_height"`
	PocketWidth    uint32 `toml:"pocket_width"`
	PocketHeight   uint32 `toml:"pocket_height"`
	SpaceLimit     uint64 `toml:"space_limit"`

	Backend BackendConfig `toml:"backend"`
	Log     LogConfig     `toml:"log"`
	Audio   AudioConfig   `toml:"audio"`
	Desktop DesktopConfig `toml:"desktop"`
}

// BackendConfig selects the computation backend
type BackendConfig struct {
	Kind    string   `toml:"kind"`    // "echo" or "bridge"
	Command []string `toml:"command"` // bridge executable and arguments
	Env     []string `toml:"env"`     // extra KEY=VALUE entries for the bridge process
}

// LogConfig controls the debug log file
type LogConfig struct {
	Enabled bool   `toml:"enabled"`
	Level   string `toml:"level"`
}

// AudioConfig controls the feedback chime
type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // 0.0 - 1.0
}

// DesktopConfig tunes the terminal window host
type DesktopConfig struct {
	HoldWindowMS int `toml:"hold_window_ms"` // key counts as held this long after its last event
	FrameRate    int `toml:"frame_rate"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		ComputerWidth:  DefaultComputerWidth,
		ComputerHeight: DefaultComputerHeight,
		PocketWidth:    DefaultPocketWidth,
		PocketHeight:   DefaultPocketHeight,
		SpaceLimit:     DefaultSpaceLimit,
		Backend: BackendConfig{
			Kind: BackendEcho,
		},
		Log: LogConfig{
			Enabled: false,
			Level:   "info",
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Desktop: DesktopConfig{
			HoldWindowMS: DefaultHoldWindowMS,
			FrameRate:    DefaultFrameRate,
		},
	}
}

// Load reads path over the defaults and validates the result
// Keys missing from the file keep their default values
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config load failed (%s)", path)
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "config parse failed (%s)", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.WithMessage(err, path)
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns the defaults when path does not exist
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks geometry, backend selection and tuning ranges
func (c Config) Validate() error {
	if c.ComputerWidth == 0 || c.ComputerHeight == 0 {
		return errors.Wrapf(ErrInvalid, "computer geometry %dx%d", c.ComputerWidth, c.ComputerHeight)
	}
	if c.PocketWidth == 0 || c.PocketHeight == 0 {
		return errors.Wrapf(ErrInvalid, "pocket geometry %dx%d", c.PocketWidth, c.PocketHeight)
	}
	switch strings.TrimSpace(c.Backend.Kind) {
	case BackendEcho:
	case BackendBridge:
		if len(c.Backend.Command) == 0 || strings.TrimSpace(c.Backend.Command[0]) == "" {
			return errors.Wrap(ErrInvalid, "bridge backend requires a command")
		}
	default:
		return errors.Wrapf(ErrInvalid, "unknown backend kind %q", c.Backend.Kind)
	}
	for i, kv := range c.Backend.Env {
		if !strings.Contains(kv, "=") {
			return errors.Wrapf(ErrInvalid, "backend env[%d] %q is not KEY=VALUE", i, kv)
		}
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return errors.Wrapf(ErrInvalid, "audio volume %.2f out of range", c.Audio.Volume)
	}
	if c.Desktop.HoldWindowMS <= 0 {
		return errors.Wrapf(ErrInvalid, "hold window %dms", c.Desktop.HoldWindowMS)
	}
	if c.Desktop.FrameRate <= 0 || c.Desktop.FrameRate > 1000 {
		return errors.Wrapf(ErrInvalid, "frame rate %d", c.Desktop.FrameRate)
	}
	return nil
}

// Geometry returns the terminal size for a computer kind
func (c Config) Geometry(pocket bool) (width, height uint32) {
	if pocket {
		return c.PocketWidth, c.PocketHeight
	}
	return c.ComputerWidth, c.ComputerHeight
}

// HoldWindow returns the key hold emulation window
func (c Config) HoldWindow() time.Duration {
	return time.Duration(c.Desktop.HoldWindowMS) * time.Millisecond
}

// FrameInterval returns the pacing target derived from the frame rate
func (c Config) FrameInterval() time.Duration {
	if c.Desktop.FrameRate <= 0 {
		return time.Second / DefaultFrameRate
	}
	return time.Second / time.Duration(c.Desktop.FrameRate)
}

// Encode renders the configuration as TOML
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(err, "encoding config")
	}
	return buf.Bytes(), nil
}

// WriteDefault writes the default configuration to path unless a file already exists
// Returns true when a file was created
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	data, err := Default().Encode()
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, errors.Wrapf(err, "writing default config (%s)", path)
	}
	return true, nil
}
