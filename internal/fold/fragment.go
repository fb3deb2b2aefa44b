package fold

import (
	"github.com/vovakirdan/foldspace/internal/geom"
)

// Fragment is one polygon piece of a cell. A fragment is exclusively owned
// by exactly one cell at a time; merges duplicate fragments into the target
// cell rather than sharing them.
type Fragment struct {
	Polygon    []geom.Vec2 // World-space vertices, counter-clockwise
	Type       CellType
	OriginFold int // Fold that created this fragment; InitialFold for the starting grid
	Seams      []Seam
}

// NewFragment builds a fragment from a polygon. Degenerate polygons (area
// below geom.Epsilon) are rejected with a nil result; callers treat that as
// "no fragment" rather than an error.
func NewFragment(poly []geom.Vec2, t CellType, originFold int) *Fragment {
	if geom.Area(poly) < geom.Epsilon {
		return nil
	}
	verts := make([]geom.Vec2, len(poly))
	copy(verts, poly)
	return &Fragment{
		Polygon:    verts,
		Type:       t,
		OriginFold: originFold,
	}
}

// Area returns the fragment's polygon area.
func (f *Fragment) Area() float64 {
	return geom.Area(f.Polygon)
}

// Centroid returns the fragment's polygon centroid.
func (f *Fragment) Centroid() geom.Vec2 {
	return geom.Centroid(f.Polygon)
}

// Clone returns a deep copy of the fragment.
func (f *Fragment) Clone() *Fragment {
	poly := make([]geom.Vec2, len(f.Polygon))
	copy(poly, f.Polygon)
	seams := make([]Seam, len(f.Seams))
	copy(seams, f.Seams)
	return &Fragment{
		Polygon:    poly,
		Type:       f.Type,
		OriginFold: f.OriginFold,
		Seams:      seams,
	}
}

// translate moves the fragment and its overlaid seams by delta.
func (f *Fragment) translate(delta geom.Vec2) {
	for i := range f.Polygon {
		f.Polygon[i] = f.Polygon[i].Add(delta)
	}
	for i := range f.Seams {
		f.Seams[i] = f.Seams[i].translated(delta)
	}
}

// hasSeamFrom reports whether the fragment already carries a seam stamped by
// the given fold.
func (f *Fragment) hasSeamFrom(foldID int) bool {
	for _, s := range f.Seams {
		if s.FoldID == foldID {
			return true
		}
	}
	return false
}

// equal reports whether two fragments are identical: congruent polygons,
// same type, same origin fold and the same seam count. Used by tests and
// undo verification.
func (f *Fragment) equal(other *Fragment) bool {
	return f.Type == other.Type &&
		f.OriginFold == other.OriginFold &&
		len(f.Seams) == len(other.Seams) &&
		geom.Congruent(f.Polygon, other.Polygon)
}
