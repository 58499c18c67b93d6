package main

// doubleFireSpread is the horizontal offset of each barrel from the ship center
const doubleFireSpread = 8.0

// Update moves the projectile one tick
func (p *Projectile) Update(dt float64) {
	p.Y += p.VY * dt
}

// OutOfBounds reports whether the projectile has fully left the playfield
func (p *Projectile) OutOfBounds(bounds Rect) bool {
	return p.Y+p.Radius < bounds.Y || p.Y-p.Radius > bounds.Y+bounds.H ||
		p.X+p.Radius < bounds.X || p.X-p.Radius > bounds.X+bounds.W
}

// fire spawns one volley from the player's nose when the cooldown allows it
func (g *Game) fire() {
	p := g.player
	if !p.CanFire() {
		return
	}
	count := 1
	if g.powerups.IsActive(CapDoubleFire) {
		count = 2
	}
	if g.store.ProjectileCount()+count > g.cfg.MaxProjectiles {
		return
	}

	c := p.Center()
	noseY := p.Y - g.cfg.ProjectileRadius
	if count == 1 {
		g.spawnProjectile(c.X, noseY)
	} else {
		g.spawnProjectile(c.X-doubleFireSpread, noseY)
		g.spawnProjectile(c.X+doubleFireSpread, noseY)
	}

	p.FireCD = g.cfg.FireCooldown
	if g.powerups.IsActive(CapRapidFire) {
		p.FireCD = g.cfg.RapidFireCooldown
	}
	g.bus.Publish(TopicProjectileFired, ProjectileFired{Position: Point{X: c.X, Y: noseY}, Count: count})
}

func (g *Game) spawnProjectile(x, y float64) {
	proj := g.store.AcquireProjectile()
	proj.Reset(x, y, g.cfg.ProjectileRadius, -g.cfg.ProjectileSpeed, g.player)
	if !g.store.AddProjectile(proj) {
		g.store.projectilePool.Release(proj)
	}
}

// updateProjectiles integrates every projectile and drops those that left
// the playfield. Reverse iteration keeps swap-and-pop from skipping elements.
func (g *Game) updateProjectiles(dt float64) {
	bounds := g.cfg.Bounds()
	projectiles := g.store.Projectiles()
	for i := len(projectiles) - 1; i >= 0; i-- {
		p := projectiles[i]
		p.Update(dt)
		if p.OutOfBounds(bounds) {
			g.store.RemoveProjectile(i)
			projectiles = g.store.Projectiles()
		}
	}
}
