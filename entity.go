package main

// Point is a 2D position or offset
type Point struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// Obstacle size tiers; fragmentation only ever moves to a higher tier
const (
	TierLarge  = 0
	TierMedium = 1
	TierSmall  = 2
	MaxTier    = TierSmall
)

// TierSpec is the fixed radius and score for one size tier
type TierSpec struct {
	Radius float64
	Score  int
}

var obstacleTiers = [MaxTier + 1]TierSpec{
	TierLarge:  {Radius: 40, Score: 20},
	TierMedium: {Radius: 24, Score: 50},
	TierSmall:  {Radius: 14, Score: 100},
}

// TierRadius returns the fixed radius for a tier, clamping unknown tiers
func TierRadius(tier int) float64 {
	return obstacleTiers[clampTier(tier)].Radius
}

// TierScore returns the score awarded for destroying an obstacle of a tier
func TierScore(tier int) int {
	return obstacleTiers[clampTier(tier)].Score
}

func clampTier(tier int) int {
	if tier < TierLarge {
		return TierLarge
	}
	if tier > MaxTier {
		return MaxTier
	}
	return tier
}

// Projectile is a player shot travelling straight up (or down, for negative speed)
type Projectile struct {
	X, Y   float64
	Radius float64
	VY     float64
	Owner  *Player
}

// Reset overwrites every field; pooled projectiles carry stale state until reset
func (p *Projectile) Reset(x, y, radius, vy float64, owner *Player) {
	p.X = x
	p.Y = y
	p.Radius = radius
	p.VY = vy
	p.Owner = owner
}

// Obstacle is a drifting rock. Parent lineage is kept by ID rather than
// pointer because a destroyed parent goes back to the pool and is reused.
type Obstacle struct {
	ID        uint64
	X, Y      float64
	Radius    float64
	VX, VY    float64
	Tier      int
	ParentID  uint64 // 0 for rocks spawned by the level controller
	Score     int
	CreatedAt float64 // simulated seconds
	Rotation  float64
	Spin      float64
	Outline   []Point // jagged polygon relative to center, may be empty

	shieldContact bool
}

// Reset overwrites every field from the tier table. The outline backing
// array is kept and truncated so reuse does not allocate.
func (o *Obstacle) Reset(id uint64, tier int, x, y, vx, vy float64, parentID uint64, createdAt float64) {
	tier = clampTier(tier)
	o.ID = id
	o.X = x
	o.Y = y
	o.Radius = obstacleTiers[tier].Radius
	o.VX = vx
	o.VY = vy
	o.Tier = tier
	o.ParentID = parentID
	o.Score = obstacleTiers[tier].Score
	o.CreatedAt = createdAt
	o.Rotation = 0
	o.Spin = 0
	o.Outline = o.Outline[:0]
	o.shieldContact = false
}

// IsFragment reports whether the obstacle was produced by fragmentation
func (o *Obstacle) IsFragment() bool {
	return o.ParentID != 0
}

// HitRadius is the radius used for collision, falling back to the tier
// radius when the stored radius is unusable
func (o *Obstacle) HitRadius() float64 {
	if o.Radius > 0 {
		return o.Radius
	}
	return TierRadius(o.Tier)
}

// Collectible is a falling pickup granting a timed capability
type Collectible struct {
	X, Y float64
	Size float64
	Kind Capability
	VY   float64
}

// Reset overwrites every field
func (c *Collectible) Reset(kind Capability, x, y, size, vy float64) {
	c.Kind = kind
	c.X = x
	c.Y = y
	c.Size = size
	c.VY = vy
}
