// Package emulator owns the fleet of instances and drives the control loop.
//
// The loop is cooperative and single threaded: each tick advances every live instance in
// fleet order, then realizes the spawn requests collected during the tick. An instance
// created during a tick is first driven on the next one.
package emulator

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/lixenwraith/mimic/backend"
	"github.com/lixenwraith/mimic/clock"
	"github.com/lixenwraith/mimic/config"
	"github.com/lixenwraith/mimic/display"
	"github.com/lixenwraith/mimic/minion"
)

// Factory builds the backend and window of a new instance
// parent is nil for the first instance of the fleet
type Factory func(opts minion.Options, parent display.Surface) (backend.Computer, display.Surface, error)

// Alert plays audible feedback when an instance fails
type Alert interface {
	PlayError()
}

type instance struct {
	m    *minion.Minion
	done bool
}

// Emulator is the fleet orchestrator
type Emulator struct {
	cfg     config.Config
	factory Factory
	clock   clock.Clock
	log     *zap.Logger
	alert   Alert
	minOpts []minion.Option

	instances []*instance
	lastID    int64
}

// Option configures an Emulator
type Option func(*Emulator)

// WithLogger sets the logger passed down to instances
func WithLogger(log *zap.Logger) Option {
	return func(e *Emulator) {
		if log != nil {
			e.log = log
		}
	}
}

// WithClock replaces the wall clock, used by tests
func WithClock(c clock.Clock) Option {
	return func(e *Emulator) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithAlert plays a sound when an instance fails
func WithAlert(a Alert) Option {
	return func(e *Emulator) {
		e.alert = a
	}
}

// WithMinionOptions applies options to every spawned instance
func WithMinionOptions(opts ...minion.Option) Option {
	return func(e *Emulator) {
		e.minOpts = append(e.minOpts, opts...)
	}
}

// New creates an empty fleet
func New(cfg config.Config, factory Factory, opts ...Option) *Emulator {
	e := &Emulator{
		cfg:     cfg,
		factory: factory,
		clock:   clock.NewReal(),
		log:     zap.NewNop(),
		lastID:  -1,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Title returns the window title for an instance id
func Title(id uint32, pocket bool) string {
	if pocket {
		return fmt.Sprintf("Pocket Computer %d", id)
	}
	return fmt.Sprintf("Computer %d", id)
}

// Spawn creates a new instance with the next id
// The id is consumed even when construction fails
func (e *Emulator) Spawn(advanced, pocket bool) (*minion.Minion, error) {
	e.lastID++
	id := uint32(e.lastID)

	width, height := e.cfg.Geometry(pocket)
	opts := minion.Options{
		ID:         id,
		Advanced:   advanced,
		Pocket:     pocket,
		Title:      Title(id, pocket),
		Width:      width,
		Height:     height,
		SpaceLimit: e.cfg.SpaceLimit,
	}

	var parent display.Surface
	if len(e.instances) > 0 {
		parent = e.instances[0].m.Surface()
	}

	computer, surface, err := e.factory(opts, parent)
	if err != nil {
		return nil, errors.Wrapf(err, "spawn instance %d", id)
	}
	m, err := minion.New(opts, computer, surface, e.clock, e.log, e.minOpts...)
	if err != nil {
		err = multierr.Append(err, computer.Close())
		surface.Close()
		return nil, errors.Wrapf(err, "spawn instance %d", id)
	}

	e.instances = append(e.instances, &instance{m: m})
	e.log.Info("instance spawned",
		zap.Uint32("instance", id),
		zap.Bool("advanced", advanced),
		zap.Bool("pocket", pocket),
		zap.Bool("parented", parent != nil),
	)
	return m, nil
}

// Instances returns every instance ever spawned, in fleet order
func (e *Emulator) Instances() []*minion.Minion {
	out := make([]*minion.Minion, len(e.instances))
	for i, inst := range e.instances {
		out[i] = inst.m
	}
	return out
}

// IsRunning reports whether any instance window is still open
func (e *Emulator) IsRunning() bool {
	for _, inst := range e.instances {
		if !inst.done && inst.m.Running() {
			return true
		}
	}
	return false
}

// Run drives the fleet until every window is closed or ctx is done
// Instance failures do not stop the loop; they are returned together when it ends
func (e *Emulator) Run(ctx context.Context) error {
	var errs error
	for e.IsRunning() {
		if ctx.Err() != nil {
			break
		}
		errs = multierr.Append(errs, e.Tick())
	}
	return errs
}

// Tick advances every live instance once, then realizes the collected spawn requests
func (e *Emulator) Tick() error {
	var errs error
	var pending []minion.Action

	for _, inst := range e.instances {
		if inst.done {
			continue
		}
		if !inst.m.Running() {
			e.retire(inst, nil)
			continue
		}
		if err := inst.m.Advance(); err != nil {
			errs = multierr.Append(errs, e.retire(inst, err))
			continue
		}
		actions, err := inst.m.TriggerEvents()
		pending = append(pending, actions...)
		if err != nil {
			errs = multierr.Append(errs, e.retire(inst, err))
		}
	}

	for _, a := range pending {
		if a.Kind != minion.ActionNewInstance {
			continue
		}
		if _, err := e.Spawn(a.Advanced, a.Pocket); err != nil {
			e.log.Error("spawn failed", zap.Error(err))
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// retire stops driving an instance and tears it down
// Returns cause, or nil for a window closed by the user
func (e *Emulator) retire(inst *instance, cause error) error {
	inst.done = true
	closeErr := inst.m.Close()
	id := inst.m.ID()

	if cause == nil {
		e.log.Info("instance closed", zap.Uint32("instance", id), zap.Error(closeErr))
		return nil
	}
	e.log.Error("instance failed", zap.Uint32("instance", id), zap.Error(cause), zap.NamedError("close", closeErr))
	if e.alert != nil {
		e.alert.PlayError()
	}
	return errors.WithMessagef(cause, "instance %d", id)
}

// Close tears down every instance that is still live
func (e *Emulator) Close() error {
	var errs error
	for _, inst := range e.instances {
		if inst.done {
			continue
		}
		inst.done = true
		errs = multierr.Append(errs, inst.m.Close())
	}
	return errs
}
