package main

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newTestArena(seed int64) (*Arena, *Broadcaster) {
	growth := NewBroadcaster()
	return NewArena(growth, rand.New(rand.NewSource(seed)), testLogger()), growth
}

func TestSeedItemsReportsBatchedProgress(t *testing.T) {
	a, _ := newTestArena(1)
	var reports []float64
	a.SeedItems(func(p float64) { reports = append(reports, p) })

	if got := a.ItemCount(); got != TargetItemCount {
		t.Fatalf("items=%d want=%d", got, TargetItemCount)
	}
	if len(reports) != LoadItemBatches {
		t.Fatalf("reports=%d want=%d", len(reports), LoadItemBatches)
	}
	prev := 0.0
	for i, p := range reports {
		if p < prev {
			t.Fatalf("report %d: progress %v < previous %v", i, p, prev)
		}
		prev = p
	}
	if prev != 1 {
		t.Fatalf("final progress=%v want=1", prev)
	}
}

func TestItemsSpawnInsideArena(t *testing.T) {
	a, _ := newTestArena(2)
	a.SeedItems(func(float64) {})
	for id, it := range a.items {
		if it.X*it.X+it.Z*it.Z > ArenaRadius*ArenaRadius {
			t.Fatalf("item %s at (%v, %v) outside radius %v", id, it.X, it.Z, ArenaRadius)
		}
	}
}

func TestMaintainItemCountBounded(t *testing.T) {
	a, _ := newTestArena(3)
	a.MaintainItemCount()
	if got := a.ItemCount(); got != ItemSpawnPerTick {
		t.Fatalf("items=%d want=%d (top-up is bounded per tick)", got, ItemSpawnPerTick)
	}
	for i := 0; i < TargetItemCount; i++ {
		a.MaintainItemCount()
	}
	if got := a.ItemCount(); got != TargetItemCount {
		t.Fatalf("items=%d want=%d", got, TargetItemCount)
	}
	a.MaintainItemCount()
	if got := a.ItemCount(); got != TargetItemCount {
		t.Fatalf("items=%d want=%d (must not overshoot)", got, TargetItemCount)
	}
}

func TestSweepPickupsFiresOneBroadcastPerItem(t *testing.T) {
	a, growth := newTestArena(4)
	notifications := 0
	growth.Subscribe(func() { notifications++ })

	head := mgl64.Vec3{3, 0, -2}
	a.items["near"] = &Item{ID: "near", X: head.X() + PickupRadius*0.5, Z: head.Z()}
	a.items["far"] = &Item{ID: "far", X: head.X() + PickupRadius*10, Z: head.Z()}

	if got := a.SweepPickups(head); got != 1 {
		t.Fatalf("consumed=%d want=1", got)
	}
	if notifications != 1 {
		t.Fatalf("notifications=%d want=1", notifications)
	}
	if _, ok := a.items["near"]; ok {
		t.Fatalf("consumed item still present")
	}
	if _, ok := a.items["far"]; !ok {
		t.Fatalf("distant item was removed")
	}

	// Nothing left in range: no further broadcasts.
	if got := a.SweepPickups(head); got != 0 {
		t.Fatalf("consumed=%d want=0 on second sweep", got)
	}
	if notifications != 1 {
		t.Fatalf("notifications=%d want=1 after empty sweep", notifications)
	}
}

func TestSegmentTemplateSpawn(t *testing.T) {
	a, _ := newTestArena(5)
	pos := mgl64.Vec3{1, 0, 2}
	seg := a.TailFactory().Spawn(pos, mgl64.QuatIdent())
	vecNear(t, seg.Position, pos, "spawned position")
	if seg.Rotation != mgl64.QuatIdent() {
		t.Fatalf("rotation=%v want identity", seg.Rotation)
	}
}

func TestInitialSegmentListInsideSpawnRadius(t *testing.T) {
	a, _ := newTestArena(6)
	segs := a.InitialSegmentList(InitialSegments)
	if len(segs) != InitialSegments {
		t.Fatalf("segments=%d want=%d", len(segs), InitialSegments)
	}
	head := segs[0].Position
	limit := ArenaRadius - SpawnMargin
	if head.X()*head.X()+head.Z()*head.Z() > limit*limit {
		t.Fatalf("head at %v outside spawn radius %v", head, limit)
	}
	for _, s := range segs {
		vecNear(t, s.Position, head, "pre-layout segment")
	}
}
