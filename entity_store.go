package main

import "math"

// EntityStore owns the live projectile, obstacle and collectible collections
// and the pools behind them.
//
// Removal is swap-and-pop: the last element moves into the removed slot.
// Collection order is therefore not stable across a tick, and callers must
// never keep an index or slice view across a removal.
type EntityStore struct {
	projectiles  []*Projectile
	obstacles    []*Obstacle
	collectibles []*Collectible

	projectilePool  *Pool[Projectile]
	obstaclePool    *Pool[Obstacle]
	collectiblePool *Pool[Collectible]
}

// NewEntityStore creates a store with warm pools sized for a typical level
func NewEntityStore() *EntityStore {
	return &EntityStore{
		projectiles:     make([]*Projectile, 0, 64),
		obstacles:       make([]*Obstacle, 0, 128),
		collectibles:    make([]*Collectible, 0, 4),
		projectilePool:  NewPool[Projectile](64),
		obstaclePool:    NewPool[Obstacle](128),
		collectiblePool: NewPool[Collectible](4),
	}
}

// AcquireProjectile takes an instance from the pool; the caller must Reset it
func (s *EntityStore) AcquireProjectile() *Projectile { return s.projectilePool.Acquire() }

// AcquireObstacle takes an instance from the pool; the caller must Reset it
func (s *EntityStore) AcquireObstacle() *Obstacle { return s.obstaclePool.Acquire() }

// AcquireCollectible takes an instance from the pool; the caller must Reset it
func (s *EntityStore) AcquireCollectible() *Collectible { return s.collectiblePool.Acquire() }

// AddProjectile appends p. nil or non-finite positions are rejected.
func (s *EntityStore) AddProjectile(p *Projectile) bool {
	if p == nil || !finite(p.X, p.Y) {
		return false
	}
	s.projectiles = append(s.projectiles, p)
	return true
}

// AddObstacle appends o. nil or non-finite positions are rejected.
func (s *EntityStore) AddObstacle(o *Obstacle) bool {
	if o == nil || !finite(o.X, o.Y) {
		return false
	}
	s.obstacles = append(s.obstacles, o)
	return true
}

// AddCollectible appends c. nil or non-finite positions are rejected.
func (s *EntityStore) AddCollectible(c *Collectible) bool {
	if c == nil || !finite(c.X, c.Y) {
		return false
	}
	s.collectibles = append(s.collectibles, c)
	return true
}

// RemoveProjectile swap-removes index i and returns the instance to the pool.
// Out of range indices are ignored.
func (s *EntityStore) RemoveProjectile(i int) {
	var p *Projectile
	s.projectiles, p = swapRemove(s.projectiles, i)
	s.projectilePool.Release(p)
}

// RemoveObstacle swap-removes index i and returns the instance to the pool.
// Out of range indices are ignored.
func (s *EntityStore) RemoveObstacle(i int) {
	var o *Obstacle
	s.obstacles, o = swapRemove(s.obstacles, i)
	s.obstaclePool.Release(o)
}

// RemoveCollectible swap-removes index i and returns the instance to the pool.
// Out of range indices are ignored.
func (s *EntityStore) RemoveCollectible(i int) {
	var c *Collectible
	s.collectibles, c = swapRemove(s.collectibles, i)
	s.collectiblePool.Release(c)
}

// Projectiles returns the live projectiles. Read only, valid until the next mutation.
func (s *EntityStore) Projectiles() []*Projectile { return s.projectiles }

// Obstacles returns the live obstacles. Read only, valid until the next mutation.
func (s *EntityStore) Obstacles() []*Obstacle { return s.obstacles }

// Collectibles returns the live collectibles. Read only, valid until the next mutation.
func (s *EntityStore) Collectibles() []*Collectible { return s.collectibles }

// ProjectileCount returns the number of live projectiles
func (s *EntityStore) ProjectileCount() int { return len(s.projectiles) }

// ObstacleCount returns the number of live obstacles
func (s *EntityStore) ObstacleCount() int { return len(s.obstacles) }

// CollectibleCount returns the number of live collectibles
func (s *EntityStore) CollectibleCount() int { return len(s.collectibles) }

// ClearProjectiles releases every live projectile
func (s *EntityStore) ClearProjectiles() {
	for i, p := range s.projectiles {
		s.projectilePool.Release(p)
		s.projectiles[i] = nil
	}
	s.projectiles = s.projectiles[:0]
}

// Clear releases every live entity of every kind
func (s *EntityStore) Clear() {
	s.ClearProjectiles()
	for i, o := range s.obstacles {
		s.obstaclePool.Release(o)
		s.obstacles[i] = nil
	}
	s.obstacles = s.obstacles[:0]
	for i, c := range s.collectibles {
		s.collectiblePool.Release(c)
		s.collectibles[i] = nil
	}
	s.collectibles = s.collectibles[:0]
}

// swapRemove moves the last element into slot i and shrinks the slice.
// It returns the removed element, or nil when i is out of range.
func swapRemove[T any](s []*T, i int) ([]*T, *T) {
	if i < 0 || i >= len(s) {
		return s, nil
	}
	removed := s[i]
	last := len(s) - 1
	s[i] = s[last]
	s[last] = nil
	return s[:last], removed
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
