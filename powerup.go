package main

// Capability identifies a timed powerup granted by a collectible
type Capability string

const (
	CapShield     Capability = "shield"      // obstacle contact costs no life
	CapDoubleFire Capability = "double-fire" // two projectiles per volley
	CapRapidFire  Capability = "rapid-fire"  // shorter fire cooldown
)

// Capabilities lists the known capabilities in a fixed order
var Capabilities = []Capability{CapShield, CapDoubleFire, CapRapidFire}

// Known reports whether the capability has a timer
func (c Capability) Known() bool {
	for _, k := range Capabilities {
		if k == c {
			return true
		}
	}
	return false
}

// PowerupTimer tracks one capability, counted in fixed-step ticks
type PowerupTimer struct {
	Active    bool
	Remaining int
}

// Powerups holds one timer per known capability
type Powerups struct {
	timers map[Capability]*PowerupTimer
}

// NewPowerups creates inactive timers for every known capability
func NewPowerups() *Powerups {
	p := &Powerups{timers: make(map[Capability]*PowerupTimer, len(Capabilities))}
	for _, c := range Capabilities {
		p.timers[c] = &PowerupTimer{}
	}
	return p
}

// Activate starts or restarts a capability for ticks steps. A repeat
// activation overwrites the remaining time instead of adding to it.
// Unknown capabilities and non-positive durations are ignored.
func (p *Powerups) Activate(c Capability, ticks int) bool {
	t, ok := p.timers[c]
	if !ok || ticks <= 0 {
		return false
	}
	t.Active = true
	t.Remaining = ticks
	return true
}

// IsActive reports whether the capability is currently running
func (p *Powerups) IsActive(c Capability) bool {
	t, ok := p.timers[c]
	return ok && t.Active
}

// Remaining returns the ticks left on a capability
func (p *Powerups) Remaining(c Capability) int {
	if t, ok := p.timers[c]; ok {
		return t.Remaining
	}
	return 0
}

// Tick decrements every active timer once, clamping at zero, and calls
// expired for each capability that ran out on this tick
func (p *Powerups) Tick(expired func(Capability)) {
	for _, c := range Capabilities {
		t := p.timers[c]
		if !t.Active {
			continue
		}
		t.Remaining--
		if t.Remaining <= 0 {
			t.Remaining = 0
			t.Active = false
			if expired != nil {
				expired(c)
			}
		}
	}
}

// Reset deactivates every timer
func (p *Powerups) Reset() {
	for _, t := range p.timers {
		t.Active = false
		t.Remaining = 0
	}
}

// PowerupState is the snapshot view of one active timer
type PowerupState struct {
	Capability Capability `json:"cap" msgpack:"cap"`
	Remaining  int        `json:"ticks" msgpack:"ticks"`
}

// AppendActive appends the active timers to buf in capability order
func (p *Powerups) AppendActive(buf []PowerupState) []PowerupState {
	for _, c := range Capabilities {
		if t := p.timers[c]; t.Active {
			buf = append(buf, PowerupState{Capability: c, Remaining: t.Remaining})
		}
	}
	return buf
}
