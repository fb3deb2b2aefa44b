package fold

import (
	"sort"

	"github.com/vovakirdan/foldspace/internal/geom"
)

// Grid is the coordinate-to-cell map for one level. At most one cell exists
// per coordinate; multiplicity after merges lives inside a cell's fragment
// list, never as duplicate grid entries.
//
// Only the fold engine and the undo manager mutate the grid after level
// authoring. All other consumers read it via Cell/ForEachCell and must
// re-fetch cells after any fold or undo.
type Grid struct {
	W, H     int
	CellSize float64

	cells map[Coord]*Cell
}

// NewGrid creates a w x h grid of empty cells, each holding one full-square
// fragment. cellSize is the world-space edge length of a cell.
func NewGrid(w, h int, cellSize float64) *Grid {
	g := &Grid{
		W:        w,
		H:        h,
		CellSize: cellSize,
		cells:    make(map[Coord]*Cell, w*h),
	}
	for y := range h {
		for x := range w {
			c := C(x, y)
			g.cells[c] = NewCell(c, TypeEmpty, g.CellSquare(c))
		}
	}
	return g
}

// InBounds reports whether the coordinate lies inside the configured size.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// Cell returns the cell at the coordinate, or nil if none exists there.
func (g *Grid) Cell(c Coord) *Cell {
	return g.cells[c]
}

// SetCellType replaces the cell's fragments with a single full-square
// fragment of the given type. This is the level-authoring write path; it
// must not be used once a fold has executed.
func (g *Grid) SetCellType(c Coord, t CellType) {
	if !g.InBounds(c) {
		return
	}
	g.cells[c] = NewCell(c, t, g.CellSquare(c))
}

// ForEachCell visits every cell in sorted coordinate order (row-major).
func (g *Grid) ForEachCell(visit func(*Cell)) {
	for _, c := range g.Coords() {
		visit(g.cells[c])
	}
}

// Coords returns the occupied coordinates in row-major order.
func (g *Grid) Coords() []Coord {
	out := make([]Coord, 0, len(g.cells))
	for c := range g.cells {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Len returns the number of occupied coordinates.
func (g *Grid) Len() int {
	return len(g.cells)
}

// CellCenter returns the world-space center of the cell square at c.
func (g *Grid) CellCenter(c Coord) geom.Vec2 {
	return geom.V((float64(c.X)+0.5)*g.CellSize, (float64(c.Y)+0.5)*g.CellSize)
}

// CellSquare returns the world-space polygon of the cell square at c,
// counter-clockwise.
func (g *Grid) CellSquare(c Coord) []geom.Vec2 {
	x0 := float64(c.X) * g.CellSize
	y0 := float64(c.Y) * g.CellSize
	return []geom.Vec2{
		geom.V(x0, y0),
		geom.V(x0+g.CellSize, y0),
		geom.V(x0+g.CellSize, y0+g.CellSize),
		geom.V(x0, y0+g.CellSize),
	}
}

// TotalArea returns the summed fragment area of every cell.
func (g *Grid) TotalArea() float64 {
	total := 0.0
	for _, cell := range g.cells {
		total += cell.Area()
	}
	return total
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make(map[Coord]*Cell, len(g.cells))
	for c, cell := range g.cells {
		cells[c] = cell.Clone()
	}
	return &Grid{
		W:        g.W,
		H:        g.H,
		CellSize: g.CellSize,
		cells:    cells,
	}
}

// Equal reports whether two grids have identical dimensions and cell-by-cell
// contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H || len(g.cells) != len(other.cells) {
		return false
	}
	for c, cell := range g.cells {
		o := other.cells[c]
		if o == nil || !cell.Equal(o) {
			return false
		}
	}
	return true
}

// remove deletes the cell at the coordinate, if any.
func (g *Grid) remove(c Coord) {
	delete(g.cells, c)
}

// insert places a cell at its own coordinate.
func (g *Grid) insert(cell *Cell) {
	g.cells[cell.Pos] = cell
}
