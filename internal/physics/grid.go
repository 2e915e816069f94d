package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase collision detection over a
// bounded viewport. Items are inserted by the center of their box and
// queried through a 3x3 neighborhood lookup.
//
// Cell size must be >= the maximum center distance at which two inserted
// boxes can still overlap, so that all candidates fall inside the
// neighborhood. Positions outside the viewport clamp to the border cells.
type SpatialGrid struct {
	invCellSize float64 // 1 / cell size
	cols        int
	rows        int
	cells       []gridCell
}

// gridCell stores the indices of items whose center falls within a cell.
// The slice is reused between ticks (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a grid covering a width x height viewport.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &SpatialGrid{
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell, cols*rows),
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item (identified by index) at the center of box.
func (g *SpatialGrid) Insert(box Rect, index int) {
	col, row := g.posToCell(box.Center())
	idx := row*g.cols + col
	g.cells[idx].items = append(g.cells[idx].items, index)
}

// QueryAround calls fn for each item index in the 3x3 cell neighborhood
// around the center of box. Neighbors beyond the viewport edge are skipped.
// If fn returns true, iteration stops early.
func (g *SpatialGrid) QueryAround(box Rect, fn func(index int) bool) {
	col, row := g.posToCell(box.Center())

	for r := row - 1; r <= row+1; r++ {
		if r < 0 || r >= g.rows {
			continue
		}
		rowOffset := r * g.cols

		for c := col - 1; c <= col+1; c++ {
			if c < 0 || c >= g.cols {
				continue
			}
			for _, itemIdx := range g.cells[rowOffset+c].items {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// posToCell converts viewport coordinates to grid cell coordinates.
// Clamps to the valid range so off-screen entities land in border cells.
func (g *SpatialGrid) posToCell(x, y float64) (col, row int) {
	col = int(math.Floor(x * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor(y * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
