package main

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Item is a collectible on the arena floor. Consuming one fires the growth
// broadcast.
type Item struct {
	ID    string
	X     float64
	Z     float64
	Color string
}

// segmentTemplate is the tail segment factory: it describes the parts
// spawned on growth. The template is trivial today but gives the degraded
// no-factory path something concrete to be missing.
type segmentTemplate struct{}

// Spawn creates a segment instance at the given pose.
func (segmentTemplate) Spawn(pos mgl64.Vec3, rot mgl64.Quat) *Segment {
	return NewSegment(pos, rot)
}

// Arena is the stand-in for the host environment: it owns the items, the
// pickup trigger sweep, and the initial segment layout handed to the
// movement controller. The movement core itself does no collision work.
type Arena struct {
	rng    *rand.Rand
	log    *slog.Logger
	growth *Broadcaster

	// mu guards items, grid and itemCounter: the loader goroutine seeds
	// the field while the status API reads counts.
	mu    sync.Mutex
	items map[string]*Item
	grid  *ItemGrid

	itemCounter int
}

// NewArena creates an empty arena around the given growth broadcaster.
func NewArena(growth *Broadcaster, rng *rand.Rand, logger *slog.Logger) *Arena {
	return &Arena{
		rng:    rng,
		log:    logger,
		growth: growth,
		items:  make(map[string]*Item),
		grid:   NewItemGrid(GridCellSize),
	}
}

// InitialSegmentList builds the explicit ordered segment list (head first)
// at a random spawn point inside the arena, SpawnMargin away from the
// boundary. Positions beyond the head are placeholders — the controller
// lays the body out itself once it has drawn a heading.
func (a *Arena) InitialSegmentList(count int) []*Segment {
	spawnRadius := ArenaRadius - SpawnMargin
	r := spawnRadius * math.Sqrt(a.rng.Float64())
	angle := a.rng.Float64() * 2 * math.Pi
	head := mgl64.Vec3{r * math.Cos(angle), 0, r * math.Sin(angle)}

	segments := make([]*Segment, count)
	for i := range segments {
		segments[i] = NewSegment(head, mgl64.QuatIdent())
	}
	return segments
}

// TailFactory returns the configured tail segment factory.
func (a *Arena) TailFactory() SegmentFactory {
	return segmentTemplate{}
}

// SeedItems spawns the initial item set in batches, reporting fractional
// progress after each batch so the loading bar has real steps to show.
// The lock is released between batches so status polls observe the field
// filling up instead of blocking for the whole load.
func (a *Arena) SeedItems(report func(float64)) {
	perBatch := TargetItemCount / LoadItemBatches
	spawned := 0
	for b := 1; b <= LoadItemBatches; b++ {
		n := perBatch
		if b == LoadItemBatches {
			n = TargetItemCount - spawned
		}
		a.mu.Lock()
		for i := 0; i < n; i++ {
			a.spawnItem()
			spawned++
		}
		a.mu.Unlock()
		report(float64(spawned) / float64(TargetItemCount))
	}
	a.mu.Lock()
	a.rebuildGrid()
	a.mu.Unlock()
}

// MaintainItemCount tops items back up to TargetItemCount, bounded per
// tick.
func (a *Arena) MaintainItemCount() {
	a.mu.Lock()
	defer a.mu.Unlock()
	deficit := TargetItemCount - len(a.items)
	if deficit <= 0 {
		return
	}
	if deficit > ItemSpawnPerTick {
		deficit = ItemSpawnPerTick
	}
	for i := 0; i < deficit; i++ {
		a.spawnItem()
	}
}

// SweepPickups removes every item within PickupRadius of the head and
// fires one growth broadcast per item consumed. Returns how many were
// consumed. This is the trigger-overlap stand-in for the host physics.
func (a *Arena) SweepPickups(head mgl64.Vec3) int {
	a.mu.Lock()
	a.rebuildGrid()
	consumed := 0
	for _, id := range a.grid.Nearby(head.X(), head.Z(), PickupRadius) {
		if _, ok := a.items[id]; !ok {
			continue
		}
		delete(a.items, id)
		consumed++
	}
	a.mu.Unlock()
	// Broadcast outside the lock; subscribers grow the chain, not the
	// arena.
	for i := 0; i < consumed; i++ {
		a.growth.Notify()
	}
	return consumed
}

// ItemCount returns the number of items currently on the floor.
func (a *Arena) ItemCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.items)
}

// ItemDTOs returns the current items in wire form.
func (a *Arena) ItemDTOs() []ItemDTO {
	a.mu.Lock()
	defer a.mu.Unlock()
	dtos := make([]ItemDTO, 0, len(a.items))
	for _, it := range a.items {
		dtos = append(dtos, ItemDTO{
			ID:    it.ID,
			X:     roundTo1(it.X),
			Z:     roundTo1(it.Z),
			Color: it.Color,
		})
	}
	return dtos
}

// spawnItem places one item uniformly inside the circular arena using
// sqrt-uniform polar placement. Caller must hold a.mu.
func (a *Arena) spawnItem() {
	r := ArenaRadius * math.Sqrt(a.rng.Float64())
	angle := a.rng.Float64() * 2 * math.Pi
	a.itemCounter++
	it := &Item{
		ID:    fmt.Sprintf("i%d", a.itemCounter),
		X:     r * math.Cos(angle),
		Z:     r * math.Sin(angle),
		Color: ItemColors[a.rng.Intn(len(ItemColors))],
	}
	a.items[it.ID] = it
}

// rebuildGrid re-indexes the current items. Caller must hold a.mu.
func (a *Arena) rebuildGrid() {
	a.grid.Clear()
	for _, it := range a.items {
		a.grid.Insert(it)
	}
}
