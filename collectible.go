package main

// Update moves the collectible down one tick
func (c *Collectible) Update(dt float64) {
	c.Y += c.VY * dt
}

// Bounds returns the pickup box
func (c *Collectible) Bounds() Rect {
	return Rect{X: c.X, Y: c.Y, W: c.Size, H: c.Size}
}

// OutOfBounds reports whether the collectible fell past the bottom edge
// or otherwise left the playfield entirely
func (c *Collectible) OutOfBounds(bounds Rect) bool {
	return !RectOverlap(c.Bounds(), bounds) && c.Y > bounds.Y
}

// maybeDropCollectible rolls for a new collectible each time the drop
// timer elapses. The drop timer only runs while the level is spawning.
func (g *Game) maybeDropCollectible(dt float64) {
	if g.cfg.CollectibleInterval <= 0 {
		return
	}
	g.dropTimer += dt
	if !due(g.dropTimer, g.cfg.CollectibleInterval, dt) {
		return
	}
	g.dropTimer -= g.cfg.CollectibleInterval
	if g.rng.Float64() >= g.cfg.CollectibleChance {
		return
	}
	kind := Capabilities[g.rng.IntN(len(Capabilities))]
	g.dropCollectible(kind, g.rng.Float64()*(g.cfg.Width-g.cfg.CollectibleSize), -g.cfg.CollectibleSize)
}

// dropCollectible adds a falling collectible of the given kind at (x, y)
func (g *Game) dropCollectible(kind Capability, x, y float64) bool {
	c := g.store.AcquireCollectible()
	c.Reset(kind, x, y, g.cfg.CollectibleSize, g.cfg.CollectibleSpeed)
	if !g.store.AddCollectible(c) {
		g.store.collectiblePool.Release(c)
		return false
	}
	g.bus.Publish(TopicCollectibleSpawned, CollectibleSpawned{Capability: kind, Position: Point{X: x, Y: y}})
	return true
}

// updateCollectibles integrates every collectible and drops those that fell off-screen
func (g *Game) updateCollectibles(dt float64) {
	bounds := g.cfg.Bounds()
	collectibles := g.store.Collectibles()
	for i := len(collectibles) - 1; i >= 0; i-- {
		c := collectibles[i]
		c.Update(dt)
		if c.OutOfBounds(bounds) {
			g.store.RemoveCollectible(i)
		}
	}
}
