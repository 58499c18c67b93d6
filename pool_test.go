package main

import "testing"

func TestPoolPreallocates(t *testing.T) {
	p := NewPool[Projectile](8)
	if p.Allocated() != 8 || p.Free() != 8 {
		t.Fatalf("expected 8 allocated and free, got %d/%d", p.Allocated(), p.Free())
	}
}

func TestPoolAcquireReusesReleased(t *testing.T) {
	p := NewPool[Obstacle](0)
	a := p.Acquire()
	if p.Allocated() != 1 {
		t.Fatalf("expected 1 allocation, got %d", p.Allocated())
	}
	a.ID = 42
	p.Release(a)

	b := p.Acquire()
	if b != a {
		t.Fatal("expected the released instance back")
	}
	// Release does not clear; the caller's Reset does
	if b.ID != 42 {
		t.Errorf("expected stale ID 42 before reset, got %d", b.ID)
	}
	b.Reset(7, TierMedium, 1, 2, 0, 0, 0, 0)
	if b.ID != 7 || b.Radius != TierRadius(TierMedium) {
		t.Errorf("reset did not overwrite fields: %+v", b)
	}
	if p.Allocated() != 1 {
		t.Errorf("reuse should not allocate, got %d", p.Allocated())
	}
}

func TestPoolReleaseNil(t *testing.T) {
	p := NewPool[Collectible](1)
	p.Release(nil)
	if p.Free() != 1 {
		t.Errorf("nil release changed free count to %d", p.Free())
	}
}

func TestPoolConservation(t *testing.T) {
	p := NewPool[Projectile](4)
	var live []*Projectile
	for i := 0; i < 10; i++ {
		live = append(live, p.Acquire())
	}
	for _, v := range live[:6] {
		p.Release(v)
	}
	active := 4
	if p.Free()+active != p.Allocated() {
		t.Errorf("free %d + active %d != allocated %d", p.Free(), active, p.Allocated())
	}
}
