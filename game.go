package main

import (
	"math/rand/v2"
)

// Phase is the lifecycle of a run
type Phase string

const (
	PhaseMenu     Phase = "menu"
	PhasePlaying  Phase = "playing"
	PhasePaused   Phase = "paused"
	PhaseGameOver Phase = "gameover"
)

// difficultyPerLevel scales spawn rate and rock speed per level
const difficultyPerLevel = 0.15

// Game is the simulation context for one run. Every subsystem reads and
// writes score, lives, level and phase through it, and changes are
// announced on the event bus. It holds no locks; the owner serializes
// Update with everything else.
type Game struct {
	cfg      SimConfig
	rng      *rand.Rand
	bus      *EventBus
	store    *EntityStore
	player   *Player
	powerups *Powerups
	flow     *LevelFlow

	phase Phase
	score int
	lives int
	level int
	kills int

	time        float64 // simulated seconds since the run started
	tick        uint64
	obstacleSeq uint64
	dropTimer   float64
}

// NewGame creates a simulation in the menu phase. The seed drives every
// random choice so runs can be reproduced in tests.
func NewGame(cfg SimConfig, seed uint64) *Game {
	return &Game{
		cfg:      cfg,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		bus:      NewEventBus(),
		store:    NewEntityStore(),
		player:   NewPlayer(cfg),
		powerups: NewPowerups(),
		flow:     NewLevelFlow(),
		phase:    PhaseMenu,
		lives:    cfg.Lives,
	}
}

// Start begins a fresh run from the menu or after a game over. Starting
// while a run is in progress is ignored.
func (g *Game) Start() bool {
	if g.phase == PhasePlaying || g.phase == PhasePaused {
		return false
	}
	g.store.Clear()
	g.player.Reset(g.cfg)
	g.powerups.Reset()
	g.flow.Reset()
	g.score = 0
	g.lives = g.cfg.Lives
	g.level = 0
	g.kills = 0
	g.time = 0
	g.tick = 0
	g.dropTimer = 0
	g.setPhase(PhasePlaying)
	return true
}

// Restart abandons a run in progress, without a game over, and starts a new one
func (g *Game) Restart() bool {
	if g.phase == PhasePlaying || g.phase == PhasePaused {
		g.setPhase(PhaseMenu)
	}
	return g.Start()
}

// Pause freezes a running game
func (g *Game) Pause() bool {
	if g.phase != PhasePlaying {
		return false
	}
	g.setPhase(PhasePaused)
	return true
}

// Resume continues a paused game
func (g *Game) Resume() bool {
	if g.phase != PhasePaused {
		return false
	}
	g.setPhase(PhasePlaying)
	return true
}

func (g *Game) setPhase(p Phase) {
	if g.phase == p {
		return
	}
	from := g.phase
	g.phase = p
	g.bus.Publish(TopicPhaseChanged, PhaseChanged{From: from, To: p})
}

// endRun switches to game over and reports the final result
func (g *Game) endRun() {
	g.setPhase(PhaseGameOver)
	g.bus.Publish(TopicGameOver, GameOver{
		Score:    g.score,
		Level:    g.level,
		Duration: g.time,
		Kills:    g.kills,
	})
}

// SetInput applies the latest held controls to the player
func (g *Game) SetInput(in PlayerInput) {
	g.player.ApplyInput(in)
}

// Update advances the simulation by one fixed step of dt seconds
func (g *Game) Update(dt float64) {
	if g.phase != PhasePlaying {
		return
	}
	g.tick++
	g.time += dt

	g.player.Update(dt, g.cfg.Bounds())
	g.fire()
	g.updateProjectiles(dt)
	g.updateObstacles(dt)
	g.updateCollectibles(dt)

	g.resolveCollisions()
	if g.phase != PhasePlaying {
		return
	}

	g.flow.Update(g, dt)
	if g.flow.SpawningEnabled() {
		g.maybeDropCollectible(dt)
	}

	g.powerups.Tick(g.onPowerupExpired)
}

func (g *Game) onPowerupExpired(c Capability) {
	g.bus.Publish(TopicCollectibleExpired, CollectibleExpired{Capability: c})
}

// Difficulty grows linearly with the level
func (g *Game) Difficulty() float64 {
	return 1 + difficultyPerLevel*float64(g.level)
}

func (g *Game) Phase() Phase { return g.phase }
func (g *Game) Score() int { return g.score }
func (g *Game) Lives() int { return g.lives }
func (g *Game) Level() int { return g.level }
func (g *Game) Kills() int { return g.kills }
func (g *Game) Time() float64 { return g.time }
func (g *Game) Tick() uint64 { return g.tick }
func (g *Game) Config() SimConfig { return g.cfg }
func (g *Game) Bus() *EventBus { return g.bus }
func (g *Game) Store() *EntityStore { return g.store }
func (g *Game) Player() *Player { return g.player }
func (g *Game) Powerups() *Powerups { return g.powerups }
func (g *Game) Flow() *LevelFlow { return g.flow }
