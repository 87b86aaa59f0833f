package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lixenwraith/mimic/backend"
	"github.com/lixenwraith/mimic/config"
	"github.com/lixenwraith/mimic/desktop"
	"github.com/lixenwraith/mimic/emulator"
	"github.com/lixenwraith/mimic/storage"
)

func resetFlags(t *testing.T) {
	t.Helper()
	homeFlag, configFlag, backendFlag = "", "", ""
	advancedFlag, pocketFlag, debugFlag = false, false, false
	countFlag = 1
	t.Cleanup(func() {
		homeFlag, configFlag, backendFlag = "", "", ""
		advancedFlag, pocketFlag, debugFlag = false, false, false
		countFlag = 1
	})
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestInitCommandCreatesLayout(t *testing.T) {
	resetFlags(t)
	home := filepath.Join(t.TempDir(), "mimic")

	out, err := execute(t, "init", "--home", home)
	require.NoError(t, err)
	assert.Contains(t, out, home)

	layout := storage.At(home)
	for _, dir := range []string{layout.ROM, layout.Programs, layout.Computers, layout.Logs} {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir())
	}
	_, err = os.Stat(layout.Config)
	assert.NoError(t, err)
}

func TestConfigCommandPrintsEffectiveConfig(t *testing.T) {
	resetFlags(t)
	home := t.TempDir()
	path := filepath.Join(home, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("computer_width = 40\n"), 0o644))

	out, err := execute(t, "config", "--home", home, "--config", path)
	require.NoError(t, err)

	var got config.Config
	_, err = toml.Decode(out, &got)
	require.NoError(t, err)
	assert.EqualValues(t, 40, got.ComputerWidth)
	assert.EqualValues(t, config.DefaultComputerHeight, got.ComputerHeight)
}

func TestConfigCommandWithoutFileUsesDefaults(t *testing.T) {
	resetFlags(t)
	out, err := execute(t, "config", "--home", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, `kind = "echo"`)
}

func TestApplyFlags(t *testing.T) {
	resetFlags(t)

	backendFlag = "bridge"
	_, err := applyFlags(config.Default())
	assert.ErrorIs(t, err, config.ErrInvalid, "bridge without a command is rejected")

	backendFlag = ""
	debugFlag = true
	cfg, err := applyFlags(config.Default())
	require.NoError(t, err)
	assert.True(t, cfg.Log.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestFactoryOpensEchoInstancesInWindows(t *testing.T) {
	cfg := config.Default()
	layout := storage.At(t.TempDir())

	screen := tcell.NewSimulationScreen("UTF-8")
	desk, err := desktop.New(screen)
	require.NoError(t, err)
	defer desk.Close()
	screen.SetSize(120, 50)

	emu := emulator.New(cfg, newFactory(context.Background(), cfg, layout, desk, zap.NewNop()))
	first, err := emu.Spawn(false, false)
	require.NoError(t, err)
	second, err := emu.Spawn(true, true)
	require.NoError(t, err)

	windows := desk.Windows()
	require.Len(t, windows, 2)
	assert.Equal(t, "Computer 0", windows[0].Title())
	assert.Equal(t, "Pocket Computer 1", windows[1].Title())

	cols, rows := windows[1].Size()
	assert.Equal(t, config.DefaultPocketWidth, cols)
	assert.Equal(t, config.DefaultPocketHeight, rows)

	// Spawned windows cascade from the first
	px, py := windows[0].Position()
	cx, cy := windows[1].Position()
	assert.Equal(t, px+2, cx)
	assert.Equal(t, py+1, cy)

	require.NoError(t, first.Advance())
	require.NoError(t, second.Advance())

	// Banner of the topmost window reaches the screen inside its frame
	second.Surface().PollEvents()
	const banner = "Echo OS 1.0 #1"
	var got []rune
	for x := 1; x <= len(banner); x++ {
		r, _, _, _ := screen.GetContent(cx+x, cy+1)
		got = append(got, r)
	}
	assert.Equal(t, banner, string(got))

	require.NoError(t, emu.Close())
	assert.False(t, desk.Running())
}

func TestNewComputerRejectsUnknownKind(t *testing.T) {
	_, err := newComputer(context.Background(), config.BackendConfig{Kind: "jvm"}, backend.Params{ID: 0, Width: 10, Height: 5}, zap.NewNop())
	assert.Error(t, err)
}
