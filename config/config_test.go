package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	w, h := cfg.Geometry(false)
	assert.Equal(t, uint32(51), w)
	assert.Equal(t, uint32(19), h)
	w, h = cfg.Geometry(true)
	assert.Equal(t, uint32(26), w)
	assert.Equal(t, uint32(20), h)
	assert.Equal(t, uint64(2097152), cfg.SpaceLimit)
	assert.Equal(t, 650*time.Millisecond, cfg.HoldWindow())
	assert.Equal(t, time.Second/60, cfg.FrameInterval())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
computer_width = 80
space_limit = 1024

[backend]
kind = "bridge"
command = ["java", "-jar", "bridge.jar"]
env = ["JAVA_OPTS=-Xmx256m"]

[log]
enabled = true
level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint32(80), cfg.ComputerWidth)
	assert.Equal(t, uint32(DefaultComputerHeight), cfg.ComputerHeight)
	assert.Equal(t, uint64(1024), cfg.SpaceLimit)
	assert.Equal(t, BackendBridge, cfg.Backend.Kind)
	assert.Equal(t, []string{"java", "-jar", "bridge.jar"}, cfg.Backend.Command)
	assert.True(t, cfg.Log.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Audio.Enabled)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "computer_width = \"wide\""))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "pocket_height = 0"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero computer width", func(c *Config) { c.ComputerWidth = 0 }},
		{"zero pocket height", func(c *Config) { c.PocketHeight = 0 }},
		{"unknown backend", func(c *Config) { c.Backend.Kind = "jni" }},
		{"bridge without command", func(c *Config) { c.Backend.Kind = BackendBridge }},
		{"bridge with blank command", func(c *Config) {
			c.Backend.Kind = BackendBridge
			c.Backend.Command = []string{" "}
		}},
		{"malformed env", func(c *Config) { c.Backend.Env = []string{"NOEQUALS"} }},
		{"volume too high", func(c *Config) { c.Audio.Volume = 1.5 }},
		{"negative hold window", func(c *Config) { c.Desktop.HoldWindowMS = -1 }},
		{"zero frame rate", func(c *Config) { c.Desktop.FrameRate = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	created, err := WriteDefault(path)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = WriteDefault(path)
	require.NoError(t, err)
	assert.False(t, created)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
