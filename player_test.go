package main

import (
	"math"
	"testing"
)

func TestNewPlayerSpawnsBottomCenter(t *testing.T) {
	cfg := DefaultSimConfig()
	p := NewPlayer(cfg)
	if p.X != (cfg.Width-cfg.PlayerWidth)/2 {
		t.Errorf("expected centered X, got %v", p.X)
	}
	if p.Y+p.H > cfg.Height || p.Y < cfg.Height/2 {
		t.Errorf("expected ship near the bottom edge, got Y %v", p.Y)
	}
	if p.W != 32 || p.H != 24 {
		t.Errorf("unexpected ship size %vx%v", p.W, p.H)
	}
}

func TestPlayerMovesWithInput(t *testing.T) {
	cfg := DefaultSimConfig()
	p := NewPlayer(cfg)
	x := p.X
	p.ApplyInput(PlayerInput{Right: true})
	p.Update(0.5, cfg.Bounds())
	if p.X != x+cfg.PlayerSpeed*0.5 {
		t.Errorf("expected X %v, got %v", x+cfg.PlayerSpeed*0.5, p.X)
	}
}

func TestPlayerDiagonalNormalized(t *testing.T) {
	p := NewPlayer(DefaultSimConfig())
	p.ApplyInput(PlayerInput{Left: true, Up: true})
	speed := math.Hypot(p.VX, p.VY)
	if math.Abs(speed-p.Speed) > 1e-9 {
		t.Errorf("diagonal speed %v, want %v", speed, p.Speed)
	}
	if p.VX >= 0 || p.VY >= 0 {
		t.Error("expected up-left velocity")
	}

	p.ApplyInput(PlayerInput{Left: true, Right: true})
	if p.VX != 0 || p.VY != 0 {
		t.Error("opposite directions should cancel")
	}
}

func TestPlayerClampedToBounds(t *testing.T) {
	cfg := DefaultSimConfig()
	p := NewPlayer(cfg)
	p.ApplyInput(PlayerInput{Left: true, Down: true})
	p.Update(10, cfg.Bounds())
	if p.X != 0 {
		t.Errorf("expected X clamped to 0, got %v", p.X)
	}
	if p.Y != cfg.Height-p.H {
		t.Errorf("expected Y clamped to %v, got %v", cfg.Height-p.H, p.Y)
	}
}

func TestPlayerTouchOverride(t *testing.T) {
	cfg := DefaultSimConfig()
	p := NewPlayer(cfg)
	p.ApplyInput(PlayerInput{Left: true, Touch: &Point{X: 400, Y: 300}})
	p.Update(1.0/60, cfg.Bounds())
	if c := p.Center(); c.X != 400 || c.Y != 300 {
		t.Errorf("ship should center on the touch point, got %+v", c)
	}

	p.ApplyInput(PlayerInput{Touch: &Point{X: 5, Y: 5}})
	p.Update(1.0/60, cfg.Bounds())
	if p.X != 0 || p.Y != 0 {
		t.Errorf("touch near the corner should clamp, got (%v, %v)", p.X, p.Y)
	}

	p.ApplyInput(PlayerInput{})
	if p.Override != nil {
		t.Error("releasing touch should clear the override")
	}
}

func TestPlayerCanFire(t *testing.T) {
	cfg := DefaultSimConfig()
	p := NewPlayer(cfg)
	if p.CanFire() {
		t.Error("should not fire without the fire input")
	}
	p.ApplyInput(PlayerInput{Fire: true})
	if !p.CanFire() {
		t.Error("should be able to fire")
	}
	p.FireCD = 0.1
	if p.CanFire() {
		t.Error("should not fire during cooldown")
	}
	p.Update(0.5, cfg.Bounds())
	if p.FireCD != 0 || !p.CanFire() {
		t.Errorf("cooldown should clamp at 0, got %v", p.FireCD)
	}
}

func TestPlayerReset(t *testing.T) {
	cfg := DefaultSimConfig()
	p := NewPlayer(cfg)
	p.ApplyInput(PlayerInput{Fire: true, Touch: &Point{X: 1, Y: 1}})
	p.FireCD = 1
	p.Reset(cfg)
	if p.Firing || p.Override != nil || p.FireCD != 0 || p.VX != 0 {
		t.Error("Reset should drop held input and cooldown")
	}
}
