package fold

import (
	"sort"
	"time"
)

// ShiftMove records one cell relocation performed by a fold.
type ShiftMove struct {
	From Coord `json:"from"`
	To   Coord `json:"to"`
}

// Record is the complete account of one fold: its anchors, every coordinate
// it removed or shifted, deep pre-fold snapshots of every cell it touched,
// the seams it created, and the player's coordinate before the fold. A
// record is created once per successful fold and destroyed only by a
// successful undo.
type Record struct {
	FoldID       int
	Anchor1      Coord
	Anchor2      Coord
	Removed      []Coord
	Shifted      []ShiftMove
	Snapshots    map[Coord]*Cell
	Seams        []Seam
	Timestamp    time.Time
	PlayerBefore Coord

	// occupiedAfter and emptyAfter describe what the fold left behind at its
	// touched coordinates, fixing the undo legality check without rescanning
	// geometry.
	occupiedAfter []Coord
	emptyAfter    []Coord
}

// TouchedCoords returns every coordinate the fold affected: snapshotted
// pre-fold cells plus shift targets. Sorted row-major.
func (r *Record) TouchedCoords() []Coord {
	seen := make(map[Coord]struct{}, len(r.Snapshots)+len(r.Shifted))
	for c := range r.Snapshots {
		seen[c] = struct{}{}
	}
	for _, m := range r.Shifted {
		seen[m.To] = struct{}{}
	}
	out := make([]Coord, 0, len(seen))
	for c := range seen {
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

// touched reports whether the fold affected the coordinate.
func (r *Record) touched(c Coord) bool {
	if _, ok := r.Snapshots[c]; ok {
		return true
	}
	for _, m := range r.Shifted {
		if m.To == c {
			return true
		}
	}
	return false
}

// Step is the persistable essence of a fold: replaying steps in order
// against the initial grid reproduces the live grid exactly. Live undo uses
// the in-memory snapshots instead.
type Step struct {
	Anchor1 Coord `json:"anchor1"`
	Anchor2 Coord `json:"anchor2"`
}

// Step returns the record's replayable step.
func (r *Record) Step() Step {
	return Step{Anchor1: r.Anchor1, Anchor2: r.Anchor2}
}
