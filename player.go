package main

import "math"

// Player is the pilot's ship, a box anchored at its top-left corner
type Player struct {
	X, Y     float64
	W, H     float64
	Speed    float64 // pixels/s
	VX, VY   float64
	Override *Point // touch target for the ship center, nil when not touching
	Firing   bool
	FireCD   float64 // fire cooldown remaining, seconds
}

// NewPlayer creates a player parked at the bottom center of the playfield
func NewPlayer(cfg SimConfig) *Player {
	p := &Player{}
	p.Reset(cfg)
	return p
}

// Reset puts the player back at the spawn point with no input held
func (p *Player) Reset(cfg SimConfig) {
	p.W = cfg.PlayerWidth
	p.H = cfg.PlayerHeight
	p.Speed = cfg.PlayerSpeed
	p.X = (cfg.Width - p.W) / 2
	p.Y = cfg.Height - p.H - 16
	if p.Y < 0 {
		p.Y = 0
	}
	p.VX = 0
	p.VY = 0
	p.Override = nil
	p.Firing = false
	p.FireCD = 0
}

// ApplyInput converts held directions into a velocity. Diagonals are
// normalized so they are not faster than straight movement.
func (p *Player) ApplyInput(in PlayerInput) {
	dx, dy := 0.0, 0.0
	if in.Left {
		dx--
	}
	if in.Right {
		dx++
	}
	if in.Up {
		dy--
	}
	if in.Down {
		dy++
	}
	if dx != 0 && dy != 0 {
		dx *= math.Sqrt2 / 2
		dy *= math.Sqrt2 / 2
	}
	p.VX = dx * p.Speed
	p.VY = dy * p.Speed
	p.Firing = in.Fire
	if in.Touch != nil {
		t := *in.Touch
		p.Override = &t
	} else {
		p.Override = nil
	}
}

// Update integrates one step and clamps the ship inside bounds
func (p *Player) Update(dt float64, bounds Rect) {
	if p.Override != nil {
		p.X = p.Override.X - p.W/2
		p.Y = p.Override.Y - p.H/2
	} else {
		p.X += p.VX * dt
		p.Y += p.VY * dt
	}
	p.X = Clamp(p.X, bounds.X, bounds.X+bounds.W-p.W)
	p.Y = Clamp(p.Y, bounds.Y, bounds.Y+bounds.H-p.H)

	if p.FireCD > 0 {
		p.FireCD -= dt
		if p.FireCD < 0 {
			p.FireCD = 0
		}
	}
}

// CanFire returns true if the player is holding fire and the cooldown is spent
func (p *Player) CanFire() bool {
	return p.Firing && p.FireCD <= 0
}

// Bounds returns the ship's hit box
func (p *Player) Bounds() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Center returns the middle of the ship
func (p *Player) Center() Point {
	return Point{X: p.X + p.W/2, Y: p.Y + p.H/2}
}
