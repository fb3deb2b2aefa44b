package fold

import (
	"time"

	"github.com/vovakirdan/foldspace/internal/geom"
)

// SeamKind distinguishes axis-aligned cuts from diagonal ones.
type SeamKind int

const (
	SeamAxisAligned SeamKind = iota
	SeamDiagonal
)

func (k SeamKind) String() string {
	if k == SeamAxisAligned {
		return "axis-aligned"
	}
	return "diagonal"
}

// Seam records one cut overlaid on a fragment: where the cut line ran, and
// which fold produced it. Seams are immutable once created; an undo removes
// them wholesale by restoring the pre-fold fragment snapshot.
type Seam struct {
	Anchor    geom.Vec2 // A point on the cut line
	Normal    geom.Vec2 // Unit normal of the cut line
	Start     geom.Vec2 // First boundary intersection
	End       geom.Vec2 // Second boundary intersection
	FoldID    int
	Timestamp time.Time
	Kind      SeamKind
}

// translated returns a copy of the seam moved by delta. Used when a fragment
// shifts: the overlaid seam segments travel with the geometry they mark.
func (s Seam) translated(delta geom.Vec2) Seam {
	s.Anchor = s.Anchor.Add(delta)
	s.Start = s.Start.Add(delta)
	s.End = s.End.Add(delta)
	return s
}
