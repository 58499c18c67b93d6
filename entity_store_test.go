package main

import (
	"math"
	"testing"
)

func addObstacles(s *EntityStore, n int) []*Obstacle {
	var out []*Obstacle
	for i := 0; i < n; i++ {
		o := s.AcquireObstacle()
		o.Reset(uint64(i+1), TierLarge, float64(i*10), 0, 0, 0, 0, 0)
		s.AddObstacle(o)
		out = append(out, o)
	}
	return out
}

func TestStoreSwapAndPop(t *testing.T) {
	s := NewEntityStore()
	obs := addObstacles(s, 4)

	s.RemoveObstacle(1)
	got := s.Obstacles()
	if len(got) != 3 {
		t.Fatalf("expected 3 obstacles, got %d", len(got))
	}
	if got[1] != obs[3] {
		t.Errorf("expected last obstacle moved into slot 1, got ID %d", got[1].ID)
	}
	if got[0] != obs[0] || got[2] != obs[2] {
		t.Error("other slots should be untouched")
	}
}

func TestStoreRemoveOutOfRange(t *testing.T) {
	s := NewEntityStore()
	addObstacles(s, 2)
	free := s.obstaclePool.Free()

	s.RemoveObstacle(-1)
	s.RemoveObstacle(2)
	s.RemoveProjectile(0)
	s.RemoveCollectible(5)

	if s.ObstacleCount() != 2 {
		t.Errorf("out of range removal changed count to %d", s.ObstacleCount())
	}
	if s.obstaclePool.Free() != free {
		t.Error("out of range removal touched the pool")
	}
}

func TestStoreRejectsNilAndNonFinite(t *testing.T) {
	s := NewEntityStore()
	if s.AddObstacle(nil) || s.AddProjectile(nil) || s.AddCollectible(nil) {
		t.Error("nil add should be rejected")
	}
	p := s.AcquireProjectile()
	p.Reset(math.NaN(), 0, 3, -100, nil)
	if s.AddProjectile(p) {
		t.Error("NaN position should be rejected")
	}
	o := s.AcquireObstacle()
	o.Reset(1, TierLarge, math.Inf(1), 0, 0, 0, 0, 0)
	if s.AddObstacle(o) {
		t.Error("Inf position should be rejected")
	}
}

func TestStoreRemovalReleasesToPool(t *testing.T) {
	s := NewEntityStore()
	obs := addObstacles(s, 3)
	free := s.obstaclePool.Free()

	s.RemoveObstacle(0)
	if s.obstaclePool.Free() != free+1 {
		t.Fatalf("expected free list to grow by 1, got %d -> %d", free, s.obstaclePool.Free())
	}
	// The released instance is no longer live
	for _, o := range s.Obstacles() {
		if o == obs[0] {
			t.Fatal("removed obstacle still in live collection")
		}
	}
	if s.AcquireObstacle() != obs[0] {
		t.Error("expected the removed instance to be reused")
	}
}

func TestStorePoolConservation(t *testing.T) {
	s := NewEntityStore()
	addObstacles(s, 200) // beyond the warm pool size
	for i := 0; i < 50; i++ {
		s.RemoveObstacle(0)
	}
	pool := s.obstaclePool
	if pool.Free()+s.ObstacleCount() != pool.Allocated() {
		t.Errorf("free %d + active %d != allocated %d", pool.Free(), s.ObstacleCount(), pool.Allocated())
	}

	s.Clear()
	if s.ObstacleCount() != 0 {
		t.Errorf("expected empty store after Clear, got %d", s.ObstacleCount())
	}
	if pool.Free() != pool.Allocated() {
		t.Errorf("expected every instance free after Clear, got %d/%d", pool.Free(), pool.Allocated())
	}
}

func TestStoreClearProjectilesOnly(t *testing.T) {
	s := NewEntityStore()
	addObstacles(s, 2)
	for i := 0; i < 5; i++ {
		p := s.AcquireProjectile()
		p.Reset(float64(i), 100, 3, -600, nil)
		s.AddProjectile(p)
	}
	s.ClearProjectiles()
	if s.ProjectileCount() != 0 {
		t.Errorf("expected 0 projectiles, got %d", s.ProjectileCount())
	}
	if s.ObstacleCount() != 2 {
		t.Errorf("obstacles should survive, got %d", s.ObstacleCount())
	}
	if s.projectilePool.Free() != s.projectilePool.Allocated() {
		t.Error("cleared projectiles should all be free")
	}
}

func TestReverseIterationRemovesEveryMatch(t *testing.T) {
	s := NewEntityStore()
	addObstacles(s, 10)
	obs := s.Obstacles()
	for i := len(obs) - 1; i >= 0; i-- {
		if obs[i].ID%2 == 0 {
			s.RemoveObstacle(i)
		}
	}
	if s.ObstacleCount() != 5 {
		t.Fatalf("expected 5 odd obstacles left, got %d", s.ObstacleCount())
	}
	for _, o := range s.Obstacles() {
		if o.ID%2 == 0 {
			t.Errorf("even obstacle %d survived", o.ID)
		}
	}
}
