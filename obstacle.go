package main

import "math"

const (
	obstacleSpinMin      = 0.5
	obstacleSpinMax      = 2.0
	outlineMinVertices   = 7
	outlineExtraVertices = 5
	outlineJitter        = 0.25 // vertices sit between (1-jitter)*r and r
	fragmentMinCount     = 2
	fragmentExtraCount   = 1 // children = min + [0, extra]
)

// Update moves and spins the obstacle one tick
func (o *Obstacle) Update(dt float64) {
	o.X += o.VX * dt
	o.Y += o.VY * dt
	o.Rotation += o.Spin * dt
}

// OutOfBounds reports whether the obstacle has drifted fully off-map.
// The margin leaves room for rocks that spawn just outside an edge.
func (o *Obstacle) OutOfBounds(bounds Rect) bool {
	margin := o.HitRadius() * 2
	return o.X < bounds.X-margin || o.X > bounds.X+bounds.W+margin ||
		o.Y < bounds.Y-margin || o.Y > bounds.Y+bounds.H+margin
}

// spawnObstacle places a new large rock just outside the top or a side
// edge and aims it into the lower part of the playfield. It returns false
// if the store rejected the rock.
func (g *Game) spawnObstacle() bool {
	w, h := g.cfg.Width, g.cfg.Height
	r := TierRadius(TierLarge)
	speed := (g.cfg.ObstacleMinSpeed + g.rng.Float64()*(g.cfg.ObstacleMaxSpeed-g.cfg.ObstacleMinSpeed)) * g.Difficulty()

	var x, y, tx, ty float64
	switch edge := g.rng.IntN(4); edge {
	case 0: // left
		x = -r
		y = g.rng.Float64() * h / 2
		tx = w/2 + g.rng.Float64()*w/2
		ty = h/2 + g.rng.Float64()*h/2
	case 1: // right
		x = w + r
		y = g.rng.Float64() * h / 2
		tx = g.rng.Float64() * w / 2
		ty = h/2 + g.rng.Float64()*h/2
	default: // top, twice as likely
		x = g.rng.Float64() * w
		y = -r
		tx = g.rng.Float64() * w
		ty = h
	}
	angle := math.Atan2(ty-y, tx-x)

	o := g.store.AcquireObstacle()
	o.Reset(g.nextObstacleID(), TierLarge, x, y, math.Cos(angle)*speed, math.Sin(angle)*speed, 0, g.time)
	g.decorate(o)
	if !g.store.AddObstacle(o) {
		g.store.obstaclePool.Release(o)
		return false
	}
	return true
}

// fragment spawns 2-3 children one tier smaller at the parent's center.
// Scatter direction and speed are resampled rather than inherited. Tier 2
// rocks produce nothing. The parent itself is left for the caller to remove.
// Returns the number of children that made it into the store.
func (g *Game) fragment(parent *Obstacle) int {
	if parent.Tier >= MaxTier {
		return 0
	}
	n := fragmentMinCount + g.rng.IntN(fragmentExtraCount+1)
	added := 0
	for i := 0; i < n; i++ {
		angle := g.rng.Float64() * 2 * math.Pi
		speed := g.cfg.FragmentMinSpeed + g.rng.Float64()*(g.cfg.FragmentMaxSpeed-g.cfg.FragmentMinSpeed)
		child := g.store.AcquireObstacle()
		child.Reset(g.nextObstacleID(), parent.Tier+1, parent.X, parent.Y,
			math.Cos(angle)*speed, math.Sin(angle)*speed, parent.ID, g.time)
		g.decorate(child)
		if !g.store.AddObstacle(child) {
			g.store.obstaclePool.Release(child)
			continue
		}
		added++
	}
	return added
}

// decorate fills the purely visual fields: spin and the jagged outline
func (g *Game) decorate(o *Obstacle) {
	o.Rotation = g.rng.Float64() * 2 * math.Pi
	o.Spin = obstacleSpinMin + g.rng.Float64()*(obstacleSpinMax-obstacleSpinMin)
	if g.rng.IntN(2) == 0 {
		o.Spin = -o.Spin
	}
	n := outlineMinVertices + g.rng.IntN(outlineExtraVertices)
	step := 2 * math.Pi / float64(n)
	for i := 0; i < n; i++ {
		a := float64(i) * step
		d := o.Radius * (1 - outlineJitter*g.rng.Float64())
		o.Outline = append(o.Outline, Point{X: math.Cos(a) * d, Y: math.Sin(a) * d})
	}
}

// updateObstacles integrates every obstacle and drops those that left the map
func (g *Game) updateObstacles(dt float64) {
	bounds := g.cfg.Bounds()
	obstacles := g.store.Obstacles()
	for i := len(obstacles) - 1; i >= 0; i-- {
		o := obstacles[i]
		o.Update(dt)
		if o.OutOfBounds(bounds) {
			g.store.RemoveObstacle(i)
		}
	}
}

func (g *Game) nextObstacleID() uint64 {
	g.obstacleSeq++
	return g.obstacleSeq
}
