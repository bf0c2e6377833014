// Package systems provides the simulation's supporting systems: spatial
// indexing and per-tick vitals bookkeeping.
package systems

import (
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/Jonasi-Deetens/ecodungeon/components"
)

// Neighbor holds a nearby entity with precomputed spatial data.
type Neighbor struct {
	E      ecs.Entity
	DX, DY float32 // Delta from query origin
	DistSq float32 // Squared distance (avoid sqrt in hot path)
}

// SpatialGrid provides O(1) neighbor lookups using a cell-based grid.
// The world is bounded; positions outside the grid clamp to edge cells.
type SpatialGrid struct {
	cellSize float32
	cols     int
	rows     int
	originX  float32
	originY  float32
	cells    [][]ecs.Entity // flat grid of entity lists
}

// NewSpatialGrid creates a spatial grid covering the world rectangle
// from (minX, minY) to (maxX, maxY).
func NewSpatialGrid(minX, minY, maxX, maxY, cellSize float32) *SpatialGrid {
	cols := int((maxX-minX)/cellSize) + 1
	rows := int((maxY-minY)/cellSize) + 1

	cells := make([][]ecs.Entity, cols*rows)
	for i := range cells {
		cells[i] = make([]ecs.Entity, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		originX:  minX,
		originY:  minY,
		cells:    cells,
	}
}

// Clear removes all entities from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity to the grid at the given position.
func (g *SpatialGrid) Insert(e ecs.Entity, x, y float32) {
	idx := g.cellIndex(x, y)
	g.cells[idx] = append(g.cells[idx], e)
}

// MaxQueryResults caps the number of neighbors returned by spatial queries.
// This prevents density spikes from causing unbounded work.
const MaxQueryResults = 128

// QueryRadiusInto finds entities within radius and appends to dst (up to
// MaxQueryResults). Returns the updated slice. Reuse dst across calls to
// avoid allocations.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, x, y, radius float32, exclude ecs.Entity, posMap *ecs.Map1[components.Position]) []Neighbor {
	cellRadius := int(radius/g.cellSize) + 1

	centerCol := g.col(x)
	centerRow := g.row(y)

	minCol := max(centerCol-cellRadius, 0)
	maxCol := min(centerCol+cellRadius, g.cols-1)
	minRow := max(centerRow-cellRadius, 0)
	maxRow := min(centerRow+cellRadius, g.rows-1)

	radiusSq := radius * radius

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			idx := row*g.cols + col

			for _, e := range g.cells[idx] {
				if e == exclude {
					continue
				}

				pos := posMap.Get(e)
				if pos == nil {
					continue
				}

				dx := pos.X - x
				dy := pos.Y - y
				distSq := dx*dx + dy*dy

				if distSq <= radiusSq {
					dst = append(dst, Neighbor{E: e, DX: dx, DY: dy, DistSq: distSq})
					if len(dst) >= MaxQueryResults {
						return dst
					}
				}
			}
		}
	}

	return dst
}

// SortByDistance orders neighbors nearest-first. Behavior updates receive
// their surroundings in this order so distance ties are deterministic.
func SortByDistance(neighbors []Neighbor) {
	sort.Slice(neighbors, func(i, j int) bool {
		return neighbors[i].DistSq < neighbors[j].DistSq
	})
}

func (g *SpatialGrid) col(x float32) int {
	c := int((x - g.originX) / g.cellSize)
	if c < 0 {
		return 0
	}
	if c >= g.cols {
		return g.cols - 1
	}
	return c
}

func (g *SpatialGrid) row(y float32) int {
	r := int((y - g.originY) / g.cellSize)
	if r < 0 {
		return 0
	}
	if r >= g.rows {
		return g.rows - 1
	}
	return r
}

// cellIndex returns the flat index for a world position.
func (g *SpatialGrid) cellIndex(x, y float32) int {
	return g.row(y)*g.cols + g.col(x)
}
