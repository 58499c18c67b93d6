package main

import (
	"testing"
	"time"
)

// fakeSim counts updates and can leave the playing phase after n of them
type fakeSim struct {
	phase    Phase
	updates  int
	dts      []float64
	stopAt   int
	stopWith Phase
}

func (f *fakeSim) Update(dt float64) {
	f.updates++
	f.dts = append(f.dts, dt)
	if f.stopAt > 0 && f.updates == f.stopAt {
		f.phase = f.stopWith
	}
}

func (f *fakeSim) Phase() Phase { return f.phase }

const testStep = 10 * time.Millisecond

func newTestDriver(sim Simulation, renderEvery int, renders *int) *LoopDriver {
	return NewLoopDriver(sim, testStep, 250*time.Millisecond, renderEvery, func() { *renders++ })
}

func TestLoopIgnoresFramesUntilStarted(t *testing.T) {
	sim := &fakeSim{phase: PhasePlaying}
	renders := 0
	d := newTestDriver(sim, 1, &renders)

	if n := d.Frame(100 * time.Millisecond); n != 0 {
		t.Errorf("expected no steps before Start, got %d", n)
	}
	if sim.updates != 0 || renders != 0 {
		t.Error("stopped driver should not update or render")
	}
}

func TestLoopFixedStepsAndRemainder(t *testing.T) {
	sim := &fakeSim{phase: PhasePlaying}
	renders := 0
	d := newTestDriver(sim, 1, &renders)
	d.Start()

	if n := d.Frame(35 * time.Millisecond); n != 3 {
		t.Fatalf("expected 3 steps for 35ms, got %d", n)
	}
	if d.Pending() != 5*time.Millisecond {
		t.Errorf("expected 5ms pending, got %v", d.Pending())
	}
	if n := d.Frame(5 * time.Millisecond); n != 1 {
		t.Errorf("expected remainder to complete one step, got %d", n)
	}
	for _, dt := range sim.dts {
		if dt != testStep.Seconds() {
			t.Errorf("expected fixed dt %v, got %v", testStep.Seconds(), dt)
		}
	}
	if d.Ticks() != 4 || d.Simulated() != 40*time.Millisecond {
		t.Errorf("expected 4 ticks / 40ms simulated, got %d / %v", d.Ticks(), d.Simulated())
	}
}

func TestLoopAccumulatorBoundedAfterFrame(t *testing.T) {
	sim := &fakeSim{phase: PhasePlaying}
	renders := 0
	d := newTestDriver(sim, 1, &renders)
	d.Start()

	for _, e := range []time.Duration{3, 17, 9, 42, 1, 250, 11} {
		d.Frame(e * time.Millisecond)
		if d.Pending() < 0 || d.Pending() >= testStep {
			t.Fatalf("accumulator %v out of [0, step)", d.Pending())
		}
	}
}

func TestLoopClampsLongStall(t *testing.T) {
	sim := &fakeSim{phase: PhasePlaying}
	renders := 0
	d := newTestDriver(sim, 1, &renders)
	d.Start()

	n := d.Frame(10 * time.Second)
	if n != 25 {
		t.Errorf("expected stall clamped to 250ms = 25 steps, got %d", n)
	}
	if renders != 1 {
		t.Errorf("expected one render per callback, got %d", renders)
	}
}

func TestLoopNegativeElapsed(t *testing.T) {
	sim := &fakeSim{phase: PhasePlaying}
	renders := 0
	d := newTestDriver(sim, 1, &renders)
	d.Start()

	if n := d.Frame(-time.Second); n != 0 {
		t.Errorf("negative elapsed should run no steps, got %d", n)
	}
	if d.Pending() != 0 {
		t.Errorf("negative elapsed should not change the accumulator, got %v", d.Pending())
	}
}

func TestLoopRenderCadence(t *testing.T) {
	sim := &fakeSim{phase: PhasePlaying}
	renders := 0
	d := newTestDriver(sim, 2, &renders)
	d.Start()

	for i := 0; i < 6; i++ {
		d.Frame(testStep)
	}
	if renders != 3 {
		t.Errorf("render cadence 2 over 6 callbacks should render 3 times, got %d", renders)
	}
	if sim.updates != 6 {
		t.Errorf("cadence must not affect stepping, got %d updates", sim.updates)
	}
}

func TestLoopStopsWhenPhaseLeavesPlaying(t *testing.T) {
	sim := &fakeSim{phase: PhasePlaying, stopAt: 2, stopWith: PhaseGameOver}
	renders := 0
	d := newTestDriver(sim, 1, &renders)
	d.Start()

	n := d.Frame(100 * time.Millisecond)
	if n != 2 {
		t.Errorf("expected stepping to stop after the phase change, ran %d", n)
	}
	if d.Running() {
		t.Error("driver should stop itself")
	}
	before := sim.updates
	d.Frame(100 * time.Millisecond)
	if sim.updates != before {
		t.Error("stopped driver kept updating")
	}
}

func TestLoopRefusesNonPlayingPhase(t *testing.T) {
	sim := &fakeSim{phase: PhasePaused}
	renders := 0
	d := newTestDriver(sim, 1, &renders)
	d.Start()

	if n := d.Frame(50 * time.Millisecond); n != 0 {
		t.Errorf("paused simulation should not step, got %d", n)
	}
	if d.Running() {
		t.Error("driver should stop when the simulation is not playing")
	}
}

func TestLoopRestartResetsAccumulator(t *testing.T) {
	sim := &fakeSim{phase: PhasePlaying}
	renders := 0
	d := newTestDriver(sim, 1, &renders)
	d.Start()
	d.Frame(7 * time.Millisecond)

	d.Stop()
	d.Stop() // idempotent
	d.Start()
	if d.Pending() != 0 {
		t.Errorf("Start should reset the accumulator, got %v", d.Pending())
	}
	if n := d.Frame(7 * time.Millisecond); n != 0 {
		t.Errorf("stale time leaked across restart: %d steps", n)
	}
}

func TestLoopDefaults(t *testing.T) {
	sim := &fakeSim{phase: PhasePlaying}
	d := NewLoopDriver(sim, 0, 0, 0, nil)
	d.Start()
	if n := d.Frame(time.Second); n != 15 {
		// 250ms clamp at 60Hz
		t.Errorf("expected 15 steps with default step and clamp, got %d", n)
	}
}
