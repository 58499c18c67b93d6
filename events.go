package main

// Topic names an event bus channel
type Topic string

// Topics published by the simulation
const (
	TopicObstacleDestroyed    Topic = "obstacle-destroyed"
	TopicPlayerHit            Topic = "player-hit"
	TopicLevelUp              Topic = "level-up"
	TopicCollectibleCollected Topic = "collectible-collected"
	TopicCollectibleExpired   Topic = "collectible-expired"
	TopicCollectibleSpawned   Topic = "collectible-spawned"
	TopicProjectileFired      Topic = "projectile-fired"
	TopicGameOver             Topic = "game-over"
	TopicPhaseChanged         Topic = "phase-changed"
)

// AllTopics lists every topic the simulation publishes
var AllTopics = []Topic{
	TopicObstacleDestroyed,
	TopicPlayerHit,
	TopicLevelUp,
	TopicCollectibleCollected,
	TopicCollectibleExpired,
	TopicCollectibleSpawned,
	TopicProjectileFired,
	TopicGameOver,
	TopicPhaseChanged,
}

// ObstacleDestroyed is published when a projectile breaks an obstacle
type ObstacleDestroyed struct {
	Position  Point   `json:"pos"`
	Score     int     `json:"score"`
	Tier      int     `json:"tier"`
	Size      float64 `json:"size"`
	Fragments int     `json:"frags"`
}

// PlayerHit is published when an obstacle touches the player
type PlayerHit struct {
	LivesRemaining int  `json:"lives"`
	Invulnerable   bool `json:"inv"`
}

// LevelUp is published once per level transition
type LevelUp struct {
	NewLevel   int     `json:"level"`
	Difficulty float64 `json:"difficulty"`
}

// CollectibleCollected is published when the player picks up a collectible
type CollectibleCollected struct {
	Capability Capability `json:"cap"`
	Duration   int        `json:"ticks"`
	Position   Point      `json:"pos"`
}

// CollectibleExpired is published when a capability timer runs out
type CollectibleExpired struct {
	Capability Capability `json:"cap"`
}

// CollectibleSpawned is published when a collectible starts falling
type CollectibleSpawned struct {
	Capability Capability `json:"cap"`
	Position   Point      `json:"pos"`
}

// ProjectileFired is published once per volley
type ProjectileFired struct {
	Position Point `json:"pos"`
	Count    int   `json:"count"`
}

// GameOver is published when the last life is lost
type GameOver struct {
	Score    int     `json:"score"`
	Level    int     `json:"level"`
	Duration float64 `json:"duration"`
	Kills    int     `json:"kills"`
}

// PhaseChanged is published on every phase transition
type PhaseChanged struct {
	From Phase `json:"from"`
	To   Phase `json:"to"`
}
