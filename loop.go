package main

import "time"

// DefaultMaxFrameDelta bounds catch-up work after a stall
const DefaultMaxFrameDelta = 250 * time.Millisecond

// Simulation is what the loop driver advances
type Simulation interface {
	Update(dt float64)
	Phase() Phase
}

// LoopDriver runs a simulation on a fixed timestep from variable-rate
// frame callbacks.
//
// Each Frame call clamps the real elapsed time, adds it to an accumulator
// and runs whole fixed steps until less than one step remains, then does
// one render pass (or skips it, per the render cadence). Frames do nothing
// unless the driver is started and the simulation is playing; once the
// simulation leaves the playing phase the driver stops itself.
type LoopDriver struct {
	sim         Simulation
	render      func()
	step        time.Duration
	maxFrame    time.Duration
	renderEvery int

	running   bool
	acc       time.Duration
	frames    uint64
	ticks     uint64
	simulated time.Duration
}

// NewLoopDriver creates a stopped driver. renderEvery of 2 renders on every
// other callback; values below 1 are treated as 1. render may be nil.
func NewLoopDriver(sim Simulation, step, maxFrame time.Duration, renderEvery int, render func()) *LoopDriver {
	if step <= 0 {
		step = time.Second / 60
	}
	if maxFrame <= 0 {
		maxFrame = DefaultMaxFrameDelta
	}
	if renderEvery < 1 {
		renderEvery = 1
	}
	return &LoopDriver{
		sim:         sim,
		render:      render,
		step:        step,
		maxFrame:    maxFrame,
		renderEvery: renderEvery,
	}
}

// Start arms the driver with a fresh accumulator
func (d *LoopDriver) Start() {
	d.running = true
	d.acc = 0
	d.frames = 0
}

// Stop disarms the driver. Calling it again is a no-op.
func (d *LoopDriver) Stop() {
	d.running = false
}

// Running reports whether frames are being processed
func (d *LoopDriver) Running() bool {
	return d.running
}

// Frame is the per-callback entry point. It returns how many fixed steps ran.
func (d *LoopDriver) Frame(elapsed time.Duration) int {
	if !d.running {
		return 0
	}
	if d.sim.Phase() != PhasePlaying {
		d.Stop()
		return 0
	}

	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > d.maxFrame {
		elapsed = d.maxFrame
	}
	d.acc += elapsed

	dt := d.step.Seconds()
	n := 0
	for d.acc >= d.step {
		d.sim.Update(dt)
		d.acc -= d.step
		d.ticks++
		d.simulated += d.step
		n++
		if d.sim.Phase() != PhasePlaying {
			break
		}
	}

	if d.frames%uint64(d.renderEvery) == 0 && d.render != nil {
		d.render()
	}
	d.frames++

	if d.sim.Phase() != PhasePlaying {
		d.Stop()
	}
	return n
}

// Alpha is the fraction of a step left in the accumulator, for render interpolation
func (d *LoopDriver) Alpha() float64 {
	return float64(d.acc) / float64(d.step)
}

// Ticks returns the total fixed steps run since the driver was created
func (d *LoopDriver) Ticks() uint64 { return d.ticks }

// Simulated returns the total simulated time since the driver was created
func (d *LoopDriver) Simulated() time.Duration { return d.simulated }

// Pending returns the unsimulated time held in the accumulator
func (d *LoopDriver) Pending() time.Duration { return d.acc }
