package main

import "math"

// cellKey uniquely identifies a grid cell on the XZ plane
type cellKey struct {
	cx, cz int
}

// itemEntry holds an item reference inside a cell
type itemEntry struct {
	itemID string
	x, z   float64
}

// ItemGrid is a hash grid for fast item proximity queries during the
// per-tick pickup sweep.
type ItemGrid struct {
	cells    map[cellKey][]itemEntry
	cellSize float64
}

// NewItemGrid creates an empty grid
func NewItemGrid(cellSize float64) *ItemGrid {
	return &ItemGrid{
		cells:    make(map[cellKey][]itemEntry),
		cellSize: cellSize,
	}
}

// Clear resets all cells
func (g *ItemGrid) Clear() {
	g.cells = make(map[cellKey][]itemEntry)
}

func (g *ItemGrid) keyFor(x, z float64) cellKey {
	return cellKey{
		cx: int(math.Floor(x / g.cellSize)),
		cz: int(math.Floor(z / g.cellSize)),
	}
}

// Insert adds an item to the grid
func (g *ItemGrid) Insert(it *Item) {
	k := g.keyFor(it.X, it.Z)
	g.cells[k] = append(g.cells[k], itemEntry{itemID: it.ID, x: it.X, z: it.Z})
}

// Nearby returns item IDs within radius of (x,z)
func (g *ItemGrid) Nearby(x, z, radius float64) []string {
	results := []string{}
	minCX := int(math.Floor((x - radius) / g.cellSize))
	maxCX := int(math.Floor((x + radius) / g.cellSize))
	minCZ := int(math.Floor((z - radius) / g.cellSize))
	maxCZ := int(math.Floor((z + radius) / g.cellSize))

	r2 := radius * radius
	for cx := minCX; cx <= maxCX; cx++ {
		for cz := minCZ; cz <= maxCZ; cz++ {
			for _, e := range g.cells[cellKey{cx, cz}] {
				dx := e.x - x
				dz := e.z - z
				if dx*dx+dz*dz <= r2 {
					results = append(results, e.itemID)
				}
			}
		}
	}
	return results
}
