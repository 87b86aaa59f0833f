package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/lixenwraith/mimic/audio"
	"github.com/lixenwraith/mimic/backend"
	"github.com/lixenwraith/mimic/backend/bridge"
	"github.com/lixenwraith/mimic/backend/echo"
	"github.com/lixenwraith/mimic/config"
	"github.com/lixenwraith/mimic/desktop"
	"github.com/lixenwraith/mimic/display"
	"github.com/lixenwraith/mimic/emulator"
	"github.com/lixenwraith/mimic/logging"
	"github.com/lixenwraith/mimic/minion"
	"github.com/lixenwraith/mimic/storage"
)

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func runMimic(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdout) {
		return errors.New("stdout is not a terminal")
	}
	if countFlag < 1 {
		return errors.Errorf("--count must be at least 1, got %d", countFlag)
	}

	layout, err := storage.Resolve(homeFlag)
	if err != nil {
		return err
	}
	if err := layout.Ensure(); err != nil {
		return err
	}
	cfg, err := loadConfig(layout)
	if err != nil {
		return err
	}
	cfg, err = applyFlags(cfg)
	if err != nil {
		return err
	}

	log, closeLog, err := logging.New(cfg.Log, layout.LogFile())
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()
	log.Info("starting",
		zap.String("home", layout.Root),
		zap.String("backend", cfg.Backend.Kind),
		zap.Int("count", countFlag))

	chime := audio.NewChime(cfg.Audio.Enabled, cfg.Audio.Volume)
	if err := chime.Initialize(); err != nil {
		// Non-fatal, runs silent
		log.Warn("audio unavailable", zap.Error(err))
	}
	defer chime.Cleanup()

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "create screen")
	}
	desk, err := desktop.New(screen,
		desktop.WithHoldWindow(cfg.HoldWindow()),
		desktop.WithLogger(log))
	if err != nil {
		return err
	}
	defer desk.Close()

	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			desk.Close()
			log.Error("crashed", zap.Any("panic", r), zap.Stack("stack"))
			fmt.Fprintf(os.Stderr, "\n\x1b[31mMIMIC CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	emu := emulator.New(cfg, newFactory(ctx, cfg, layout, desk, log),
		emulator.WithLogger(log),
		emulator.WithAlert(chime),
		emulator.WithMinionOptions(
			minion.WithChime(chime),
			minion.WithFrameInterval(cfg.FrameInterval()),
		))

	for i := 0; i < countFlag; i++ {
		if _, err := emu.Spawn(advancedFlag, pocketFlag); err != nil {
			log.Error("startup failed", zap.Error(err))
			desk.ShowError(ctx, "Failed to start computer", err.Error(), "", "Press any key to exit")
			return multierr.Append(err, emu.Close())
		}
	}

	runErr := emu.Run(ctx)
	closeErr := emu.Close()
	log.Info("stopped", zap.Error(runErr))
	return multierr.Combine(runErr, closeErr)
}

// applyFlags overlays command line overrides and revalidates
func applyFlags(cfg config.Config) (config.Config, error) {
	if backendFlag != "" {
		cfg.Backend.Kind = backendFlag
	}
	if debugFlag {
		cfg.Log.Enabled = true
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newFactory builds instances as a backend computer paired with a desktop window
func newFactory(ctx context.Context, cfg config.Config, layout storage.Layout, desk *desktop.Desktop, log *zap.Logger) emulator.Factory {
	return func(opts minion.Options, parent display.Surface) (backend.Computer, display.Surface, error) {
		p := backend.Params{
			ID:          opts.ID,
			Advanced:    opts.Advanced,
			Width:       int(opts.Width),
			Height:      int(opts.Height),
			StoragePath: layout.Computers,
			ROMPath:     layout.ROM,
			SpaceLimit:  opts.SpaceLimit,
		}
		computer, err := newComputer(ctx, cfg.Backend, p, log)
		if err != nil {
			return nil, nil, err
		}
		win, err := desk.NewWindow(opts.Title, int(opts.Width), int(opts.Height), parent)
		if err != nil {
			_ = computer.Close()
			return nil, nil, err
		}
		return computer, win, nil
	}
}

func newComputer(ctx context.Context, bc config.BackendConfig, p backend.Params, log *zap.Logger) (backend.Computer, error) {
	switch bc.Kind {
	case config.BackendEcho:
		c, err := echo.New(p)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.BackendBridge:
		c, err := bridge.Launch(ctx, bc.Command, bc.Env, p, bridge.WithLogger(log))
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, errors.Errorf("unknown backend kind %q", bc.Kind)
	}
}
