package main

// ProjectileState is the renderer view of a projectile
type ProjectileState struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
	R float64 `json:"r" msgpack:"r"`
}

// ObstacleState is the renderer view of an obstacle
type ObstacleState struct {
	ID      uint64  `json:"id" msgpack:"id"`
	X       float64 `json:"x" msgpack:"x"`
	Y       float64 `json:"y" msgpack:"y"`
	R       float64 `json:"r" msgpack:"r"`
	Tier    int     `json:"t" msgpack:"t"`
	Rot     float64 `json:"rot" msgpack:"rot"`
	Outline []Point `json:"o,omitempty" msgpack:"o,omitempty"`
}

// CollectibleState is the renderer view of a collectible
type CollectibleState struct {
	X    float64    `json:"x" msgpack:"x"`
	Y    float64    `json:"y" msgpack:"y"`
	Size float64    `json:"s" msgpack:"s"`
	Kind Capability `json:"k" msgpack:"k"`
}

// PlayerState is the renderer view of the player
type PlayerState struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
	W float64 `json:"w" msgpack:"w"`
	H float64 `json:"h" msgpack:"h"`
}

// Snapshot is a read-only copy of everything a renderer draws. The game
// reuses one snapshot's slices between render passes, so a renderer that
// keeps data beyond Render must copy it.
type Snapshot struct {
	Tick         uint64             `json:"tick" msgpack:"tick"`
	Phase        Phase              `json:"phase" msgpack:"phase"`
	Width        float64            `json:"w" msgpack:"w"`
	Height       float64            `json:"h" msgpack:"h"`
	Score        int                `json:"score" msgpack:"score"`
	Lives        int                `json:"lives" msgpack:"lives"`
	Level        int                `json:"level" msgpack:"level"`
	LevelState   string             `json:"ls" msgpack:"ls"`
	Alpha        float64            `json:"alpha" msgpack:"alpha"`
	Player       PlayerState        `json:"p" msgpack:"p"`
	Projectiles  []ProjectileState  `json:"pr" msgpack:"pr"`
	Obstacles    []ObstacleState    `json:"ob" msgpack:"ob"`
	Collectibles []CollectibleState `json:"c" msgpack:"c"`
	Powerups     []PowerupState     `json:"pw" msgpack:"pw"`
}

// Capture copies the game state into s, reusing s's slices. Outlines are
// shared with the live obstacles and only valid until the next update.
func (g *Game) Capture(s *Snapshot, alpha float64) {
	s.Tick = g.tick
	s.Phase = g.phase
	s.Width = g.cfg.Width
	s.Height = g.cfg.Height
	s.Score = g.score
	s.Lives = g.lives
	s.Level = g.level
	s.LevelState = g.flow.State().String()
	s.Alpha = alpha
	s.Player = PlayerState{X: round1(g.player.X), Y: round1(g.player.Y), W: g.player.W, H: g.player.H}

	s.Projectiles = s.Projectiles[:0]
	for _, p := range g.store.Projectiles() {
		s.Projectiles = append(s.Projectiles, ProjectileState{X: round1(p.X), Y: round1(p.Y), R: p.Radius})
	}
	s.Obstacles = s.Obstacles[:0]
	for _, o := range g.store.Obstacles() {
		s.Obstacles = append(s.Obstacles, ObstacleState{
			ID:      o.ID,
			X:       round1(o.X),
			Y:       round1(o.Y),
			R:       o.Radius,
			Tier:    o.Tier,
			Rot:     round1(o.Rotation),
			Outline: o.Outline,
		})
	}
	s.Collectibles = s.Collectibles[:0]
	for _, c := range g.store.Collectibles() {
		s.Collectibles = append(s.Collectibles, CollectibleState{X: round1(c.X), Y: round1(c.Y), Size: c.Size, Kind: c.Kind})
	}
	s.Powerups = g.powerups.AppendActive(s.Powerups[:0])
}
