package fold

import (
	"sort"
	"time"

	"github.com/vovakirdan/foldspace/internal/geom"
)

// Cell holds every fragment currently occupying one grid coordinate. A cell
// exists only while it has at least one fragment; the engine deletes cells
// whose fragments are all removed by a fold.
type Cell struct {
	Pos       Coord
	Fragments []*Fragment

	// sources tracks which original coordinates have been merged into this
	// cell over the course of the session.
	sources map[Coord]struct{}

	// history is the chronological list of fold ids that touched this cell.
	history []int

	dominant CellType
}

// NewCell creates a cell with a single full-square fragment of the given
// type. square is the cell's world-space polygon.
func NewCell(pos Coord, t CellType, square []geom.Vec2) *Cell {
	c := &Cell{
		Pos:     pos,
		sources: map[Coord]struct{}{pos: {}},
	}
	if f := NewFragment(square, t, InitialFold); f != nil {
		c.Fragments = append(c.Fragments, f)
	}
	c.recomputeDominant()
	return c
}

// AddFragment appends a fragment unless it is degenerate, in which case the
// fragment is logged and ignored. The dominant type is recomputed.
func (c *Cell) AddFragment(f *Fragment) {
	if f == nil || f.Area() < geom.Epsilon {
		logger.Warn("ignoring degenerate fragment", "cell", c.Pos)
		return
	}
	c.Fragments = append(c.Fragments, f)
	c.recomputeDominant()
}

// DominantType returns the highest-priority type among the cell's fragments.
func (c *Cell) DominantType() CellType {
	return c.dominant
}

// Center returns the cell's representative point: the centroid of its single
// fragment, or the area-weighted average of centroids when it holds several.
// Falls back to the unweighted average if the total area is near zero.
func (c *Cell) Center() geom.Vec2 {
	switch len(c.Fragments) {
	case 0:
		return geom.Vec2{}
	case 1:
		return c.Fragments[0].Centroid()
	}

	var weighted geom.Vec2
	total := 0.0
	for _, f := range c.Fragments {
		a := f.Area()
		weighted = weighted.Add(f.Centroid().Scale(a))
		total += a
	}
	if total < geom.Epsilon {
		var avg geom.Vec2
		for _, f := range c.Fragments {
			avg = avg.Add(f.Centroid())
		}
		return avg.Scale(1 / float64(len(c.Fragments)))
	}
	return weighted.Scale(1 / total)
}

// Area returns the summed area of all fragments.
func (c *Cell) Area() float64 {
	total := 0.0
	for _, f := range c.Fragments {
		total += f.Area()
	}
	return total
}

// Sources returns the original coordinates merged into this cell, sorted.
func (c *Cell) Sources() []Coord {
	out := make([]Coord, 0, len(c.sources))
	for s := range c.sources {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// HasSource reports whether the given original coordinate was merged into
// this cell.
func (c *Cell) HasSource(s Coord) bool {
	_, ok := c.sources[s]
	return ok
}

// FoldHistory returns the chronological fold ids that touched this cell.
func (c *Cell) FoldHistory() []int {
	out := make([]int, len(c.history))
	copy(out, c.history)
	return out
}

// LatestFold returns the newest fold id that touched this cell, or
// InitialFold if none has.
func (c *Cell) LatestFold() int {
	if len(c.history) == 0 {
		return InitialFold
	}
	return c.history[len(c.history)-1]
}

// recordFold appends a fold id to the cell's history unless it is already
// the newest entry.
func (c *Cell) recordFold(foldID int) {
	if c.LatestFold() == foldID {
		return
	}
	c.history = append(c.history, foldID)
}

// MergeWith folds another cell's fragments into this one. Fragments that are
// geometrically congruent to an existing fragment are deduplicated rather
// than stored twice; everything else is appended as an additional piece.
// Source coordinates and fold histories are unioned, and foldID is recorded
// on the result. The other cell must be treated as consumed afterward.
func (c *Cell) MergeWith(other *Cell, foldID int) {
	for _, f := range other.Fragments {
		if c.containsCongruent(f) {
			continue
		}
		c.Fragments = append(c.Fragments, f)
	}

	for s := range other.sources {
		c.sources[s] = struct{}{}
	}
	c.history = mergeHistories(c.history, other.history)
	c.recordFold(foldID)
	c.recomputeDominant()
}

// containsCongruent reports whether the cell already holds a fragment with a
// congruent polygon (full overlap).
func (c *Cell) containsCongruent(f *Fragment) bool {
	for _, g := range c.Fragments {
		if geom.Congruent(g.Polygon, f.Polygon) {
			return true
		}
	}
	return false
}

// SplitFragments splits every fragment by the given cut line, returning the
// fragments on the positive and negative sides of the line. Split halves
// inherit all prior seams plus a new seam for this cut. Fragments the line
// does not truly cross are assigned whole to the side of their centroid.
// The cell itself is not modified; the engine decides which side to keep.
func (c *Cell) SplitFragments(linePoint, normal geom.Vec2, foldID int, kind SeamKind, ts time.Time) (pos, neg []*Fragment) {
	for _, f := range c.Fragments {
		res := geom.SplitByLine(f.Polygon, linePoint, normal)

		posFrag := NewFragment(res.Pos, f.Type, foldID)
		negFrag := NewFragment(res.Neg, f.Type, foldID)

		// The seam runs between the boundary points on the cut line. When the
		// line passes through vertices (a corner-to-corner cut) there are no
		// edge intersections, so the on-line vertices supply the endpoints.
		ends := append([]geom.Vec2(nil), res.Intersections...)
		if len(ends) < 2 {
			for _, v := range f.Polygon {
				if geom.SideOfLine(v, linePoint, normal) == 0 {
					ends = append(ends, v)
				}
			}
		}

		if posFrag == nil || negFrag == nil || len(ends) < 2 {
			// No effective split: the whole fragment goes to one side.
			if geom.SideOfLine(f.Centroid(), linePoint, normal) >= 0 {
				pos = append(pos, f)
			} else {
				neg = append(neg, f)
			}
			continue
		}

		seam := Seam{
			Anchor:    linePoint,
			Normal:    normal,
			Start:     ends[0],
			End:       ends[len(ends)-1],
			FoldID:    foldID,
			Timestamp: ts,
			Kind:      kind,
		}
		for _, half := range []*Fragment{posFrag, negFrag} {
			half.Seams = append(half.Seams, f.Seams...)
			half.Seams = append(half.Seams, seam)
		}
		pos = append(pos, posFrag)
		neg = append(neg, negFrag)
	}
	return pos, neg
}

// translate moves the cell's fragments by delta and rebinds it to a new
// coordinate. The source set keeps the original coordinates.
func (c *Cell) translate(delta geom.Vec2, newPos Coord) {
	for _, f := range c.Fragments {
		f.translate(delta)
	}
	c.Pos = newPos
}

// Clone returns a deep copy of the cell, fragments included.
func (c *Cell) Clone() *Cell {
	frags := make([]*Fragment, len(c.Fragments))
	for i, f := range c.Fragments {
		frags[i] = f.Clone()
	}
	sources := make(map[Coord]struct{}, len(c.sources))
	for s := range c.sources {
		sources[s] = struct{}{}
	}
	history := make([]int, len(c.history))
	copy(history, c.history)
	return &Cell{
		Pos:       c.Pos,
		Fragments: frags,
		sources:   sources,
		history:   history,
		dominant:  c.dominant,
	}
}

// Equal reports whether two cells hold identical state: same coordinate,
// fragments (order-sensitive), sources and fold history.
func (c *Cell) Equal(other *Cell) bool {
	if c.Pos != other.Pos || len(c.Fragments) != len(other.Fragments) ||
		len(c.sources) != len(other.sources) || len(c.history) != len(other.history) {
		return false
	}
	for i, f := range c.Fragments {
		if !f.equal(other.Fragments[i]) {
			return false
		}
	}
	for s := range c.sources {
		if _, ok := other.sources[s]; !ok {
			return false
		}
	}
	for i, id := range c.history {
		if other.history[i] != id {
			return false
		}
	}
	return true
}

func (c *Cell) recomputeDominant() {
	best := TypeVoid
	bestRank := -1
	for _, f := range c.Fragments {
		if r := f.Type.Priority(); r > bestRank {
			bestRank = r
			best = f.Type
		}
	}
	c.dominant = best
}

// mergeHistories merges two chronological fold-id lists, deduplicating while
// preserving order. Fold ids are assigned in increasing order, so a sorted
// merge preserves chronology.
func mergeHistories(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case j >= len(b):
			out = appendUnique(out, a[i])
			i++
		case i >= len(a):
			out = appendUnique(out, b[j])
			j++
		case a[i] <= b[j]:
			out = appendUnique(out, a[i])
			i++
		default:
			out = appendUnique(out, b[j])
			j++
		}
	}
	return out
}

func appendUnique(list []int, id int) []int {
	if len(list) > 0 && list[len(list)-1] == id {
		return list
	}
	return append(list, id)
}
