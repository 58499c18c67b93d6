package main

// LevelState is the level flow controller's state
type LevelState int

const (
	LevelSpawning      LevelState = 0 // spawning allowed, counting new rocks
	LevelClearing      LevelState = 1 // quota reached, waiting for the board to empty
	LevelTransitioning LevelState = 2 // board empty, settle timer running
)

func (s LevelState) String() string {
	switch s {
	case LevelSpawning:
		return "spawning"
	case LevelClearing:
		return "clearing"
	case LevelTransitioning:
		return "transitioning"
	}
	return "unknown"
}

// LevelFlow gates obstacle spawning and fires level transitions.
//
// Each level spawns LevelSpawnBase*(level+1) counted rocks; fragments are
// never counted. Once the quota is met spawning stops. The level advances
// SettleDelay seconds after the board empties, or ClearCeiling seconds
// after spawning stopped if the board never empties. The ceiling counts
// from the end of spawning rather than the start of the level, so a slow
// spawning phase still gets its clearing window. All times are simulated
// seconds; see due for how deadlines map onto fixed steps.
type LevelFlow struct {
	state         LevelState
	spawned       int
	spawnTimer    float64
	clearingSince float64
	clearedAt     float64
}

// NewLevelFlow creates a controller in the spawning state
func NewLevelFlow() *LevelFlow {
	return &LevelFlow{state: LevelSpawning}
}

// State returns the current state
func (f *LevelFlow) State() LevelState { return f.state }

// Spawned returns how many counted rocks the current level has spawned
func (f *LevelFlow) Spawned() int { return f.spawned }

// SpawningEnabled reports whether new rocks may spawn
func (f *LevelFlow) SpawningEnabled() bool { return f.state == LevelSpawning }

// Quota returns the counted spawns required to finish a level
func Quota(cfg SimConfig, level int) int {
	return cfg.LevelSpawnBase * (level + 1)
}

// Reset returns the controller to the start of a level
func (f *LevelFlow) Reset() {
	*f = LevelFlow{state: LevelSpawning}
}

// SpawnCounted spawns one new rock and counts it toward the quota. It is a
// no-op once spawning has been revoked.
func (f *LevelFlow) SpawnCounted(g *Game) bool {
	if f.state != LevelSpawning {
		return false
	}
	if !g.spawnObstacle() {
		return false
	}
	f.spawned++
	if f.spawned >= Quota(g.cfg, g.level) {
		f.state = LevelClearing
		f.clearingSince = g.time
	}
	return true
}

// Update advances the controller by one fixed step
func (f *LevelFlow) Update(g *Game, dt float64) {
	switch f.state {
	case LevelSpawning:
		f.spawnTimer += dt
		interval := g.cfg.SpawnInterval / g.Difficulty()
		for f.state == LevelSpawning && due(f.spawnTimer, interval, dt) {
			f.spawnTimer -= interval
			f.SpawnCounted(g)
		}
		return
	case LevelClearing:
		if g.store.ObstacleCount() == 0 {
			f.state = LevelTransitioning
			f.clearedAt = g.time
		}
	}

	settled := f.state == LevelTransitioning && due(g.time-f.clearedAt, g.cfg.SettleDelay, dt)
	forced := due(g.time-f.clearingSince, g.cfg.ClearCeiling, dt)
	if settled || forced {
		f.advance(g)
	}
}

// due reports whether elapsed simulated time has reached a deadline. The
// step duration is truncated to whole nanoseconds, so N steps can sum to
// slightly less than N*dt; a deadline counts as reached once it is within
// half a step, which lands it on the nearest tick.
func due(elapsed, deadline, dt float64) bool {
	return elapsed >= deadline-dt/2
}

// advance moves to the next level exactly once per quota
func (f *LevelFlow) advance(g *Game) {
	g.level++
	g.store.ClearProjectiles()
	f.spawned = 0
	f.spawnTimer = 0
	f.state = LevelSpawning
	g.bus.Publish(TopicLevelUp, LevelUp{NewLevel: g.level, Difficulty: g.Difficulty()})
}
