package main

import "testing"

func TestPowerupExpiresOnce(t *testing.T) {
	p := NewPowerups()
	p.Activate(CapDoubleFire, 3)

	var expired []Capability
	for i := 0; i < 6; i++ {
		p.Tick(func(c Capability) { expired = append(expired, c) })
	}
	if len(expired) != 1 || expired[0] != CapDoubleFire {
		t.Fatalf("expected a single double-fire expiry, got %v", expired)
	}
	if p.IsActive(CapDoubleFire) || p.Remaining(CapDoubleFire) != 0 {
		t.Error("expired timer should be inactive at zero")
	}
}

func TestPowerupActivateOverwrites(t *testing.T) {
	p := NewPowerups()
	p.Activate(CapShield, 300)
	for i := 0; i < 120; i++ {
		p.Tick(nil)
	}
	p.Activate(CapShield, 300)
	if p.Remaining(CapShield) != 300 {
		t.Errorf("expected overwrite to 300, got %d", p.Remaining(CapShield))
	}
}

func TestPowerupIgnoresUnknownAndNonPositive(t *testing.T) {
	p := NewPowerups()
	if p.Activate(Capability("warp"), 100) {
		t.Error("unknown capability should be rejected")
	}
	if p.Activate(CapShield, 0) || p.Activate(CapShield, -5) {
		t.Error("non-positive duration should be rejected")
	}
	if p.IsActive(CapShield) || p.IsActive(Capability("warp")) {
		t.Error("nothing should be active")
	}
	if p.Remaining(Capability("warp")) != 0 {
		t.Error("unknown capability should report no time left")
	}
}

func TestPowerupAppendActiveOrder(t *testing.T) {
	p := NewPowerups()
	p.Activate(CapRapidFire, 10)
	p.Activate(CapShield, 20)

	got := p.AppendActive(nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 active, got %d", len(got))
	}
	if got[0].Capability != CapShield || got[1].Capability != CapRapidFire {
		t.Errorf("expected capability order, got %+v", got)
	}

	p.Reset()
	if len(p.AppendActive(got[:0])) != 0 {
		t.Error("Reset should deactivate every timer")
	}
}

func TestGamePublishesExpiry(t *testing.T) {
	g := newTestGame(t)
	events := recordEvents(g)
	g.powerups.Activate(CapRapidFire, 2)

	stepN(g, 5)
	if events.count(TopicCollectibleExpired) != 1 {
		t.Fatalf("expected one expiry event, got %d", events.count(TopicCollectibleExpired))
	}
	if evt := events.last(TopicCollectibleExpired).(CollectibleExpired); evt.Capability != CapRapidFire {
		t.Errorf("unexpected expiry %+v", evt)
	}
}

func TestCapabilityKnown(t *testing.T) {
	for _, c := range Capabilities {
		if !c.Known() {
			t.Errorf("%s should be known", c)
		}
	}
	if Capability("").Known() {
		t.Error("empty capability should be unknown")
	}
}
