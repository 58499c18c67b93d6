package main

// resolveCollisions runs once per fixed step after movement. Checks happen
// in a fixed order: player against obstacles, projectiles against
// obstacles, player against collectibles.
func (g *Game) resolveCollisions() {
	g.collidePlayerObstacles()
	if g.phase != PhasePlaying {
		return
	}
	g.collideProjectileObstacles()
	g.collidePlayerCollectibles()
}

// collidePlayerObstacles tests the ship box against each rock circle. An
// unshielded hit costs a life and removes the rock without score. While the
// shield is up the ship ignores contact; the first shielded contact with a
// rock is still reported so presentation can flash the shield.
func (g *Game) collidePlayerObstacles() {
	pb := g.player.Bounds()
	obstacles := g.store.Obstacles()
	for i := len(obstacles) - 1; i >= 0; i-- {
		o := obstacles[i]
		if !RectCircleOverlap(pb, o.X, o.Y, o.HitRadius()) {
			continue
		}
		if g.powerups.IsActive(CapShield) {
			if !o.shieldContact {
				o.shieldContact = true
				g.bus.Publish(TopicPlayerHit, PlayerHit{LivesRemaining: g.lives, Invulnerable: true})
			}
			continue
		}
		g.store.RemoveObstacle(i)
		g.loseLife()
		if g.phase != PhasePlaying {
			return
		}
	}
}

// collideProjectileObstacles walks projectiles and obstacles in reverse. A
// projectile hits at most one obstacle per tick and is removed at once, so
// it cannot be matched again. Fragments added mid-loop are valid targets
// for the projectiles still to be checked.
func (g *Game) collideProjectileObstacles() {
	projectiles := g.store.Projectiles()
	for pi := len(projectiles) - 1; pi >= 0; pi-- {
		p := projectiles[pi]
		obstacles := g.store.Obstacles()
		for oi := len(obstacles) - 1; oi >= 0; oi-- {
			o := obstacles[oi]
			if !CheckCollision(p.X, p.Y, p.Radius, o.X, o.Y, o.HitRadius()) {
				continue
			}
			g.store.RemoveProjectile(pi)
			g.destroyObstacle(oi)
			break
		}
	}
}

// destroyObstacle fragments the obstacle at index i, removes it and awards
// its score
func (g *Game) destroyObstacle(i int) {
	obstacles := g.store.Obstacles()
	if i < 0 || i >= len(obstacles) {
		return
	}
	parent := obstacles[i]
	evt := ObstacleDestroyed{
		Position: Point{X: parent.X, Y: parent.Y},
		Score:    parent.Score,
		Tier:     parent.Tier,
		Size:     parent.HitRadius(),
	}
	// Children are appended, so index i still points at the parent.
	evt.Fragments = g.fragment(parent)
	g.store.RemoveObstacle(i)

	g.score += evt.Score
	g.kills++
	g.bus.Publish(TopicObstacleDestroyed, evt)
}

// collidePlayerCollectibles activates the capability of every collectible
// the ship box touches. Repeat pickups overwrite the timer.
func (g *Game) collidePlayerCollectibles() {
	pb := g.player.Bounds()
	collectibles := g.store.Collectibles()
	for i := len(collectibles) - 1; i >= 0; i-- {
		c := collectibles[i]
		if !RectOverlap(pb, c.Bounds()) {
			continue
		}
		kind, pos := c.Kind, Point{X: c.X, Y: c.Y}
		g.store.RemoveCollectible(i)
		ticks := g.cfg.PowerupTicks(kind)
		if g.powerups.Activate(kind, ticks) {
			g.bus.Publish(TopicCollectibleCollected, CollectibleCollected{Capability: kind, Duration: ticks, Position: pos})
		}
	}
}

// loseLife takes one life and ends the run when none are left
func (g *Game) loseLife() {
	if g.lives > 0 {
		g.lives--
	}
	g.bus.Publish(TopicPlayerHit, PlayerHit{LivesRemaining: g.lives, Invulnerable: false})
	if g.lives == 0 {
		g.endRun()
	}
}
