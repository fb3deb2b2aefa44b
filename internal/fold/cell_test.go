package fold

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/foldspace/internal/geom"
)

func unitSquareAt(x, y float64) []geom.Vec2 {
	return []geom.Vec2{
		geom.V(x, y),
		geom.V(x+1, y),
		geom.V(x+1, y+1),
		geom.V(x, y+1),
	}
}

func TestNewCellFullSquare(t *testing.T) {
	c := NewCell(C(2, 3), TypeWall, unitSquareAt(2, 3))

	if len(c.Fragments) != 1 {
		t.Fatalf("Fragments = %d, expected 1", len(c.Fragments))
	}
	if c.DominantType() != TypeWall {
		t.Errorf("DominantType() = %v, expected wall", c.DominantType())
	}
	if !c.HasSource(C(2, 3)) {
		t.Error("cell does not track its own coordinate as a source")
	}
	if c.LatestFold() != InitialFold {
		t.Errorf("LatestFold() = %d, expected InitialFold", c.LatestFold())
	}
	if !c.Center().ApproxEqual(geom.V(2.5, 3.5)) {
		t.Errorf("Center() = %v, expected (2.5, 3.5)", c.Center())
	}
}

func TestAddFragmentIgnoresDegenerate(t *testing.T) {
	c := NewCell(C(0, 0), TypeEmpty, unitSquareAt(0, 0))

	c.AddFragment(nil)
	c.AddFragment(&Fragment{Polygon: []geom.Vec2{geom.V(0, 0), geom.V(1, 0)}, Type: TypeWall})

	if len(c.Fragments) != 1 {
		t.Errorf("Fragments = %d, expected degenerate fragments to be ignored", len(c.Fragments))
	}
	if c.DominantType() != TypeEmpty {
		t.Errorf("DominantType() = %v, expected empty", c.DominantType())
	}
}

func TestDominantTypePriority(t *testing.T) {
	c := NewCell(C(0, 0), TypeWater, unitSquareAt(0, 0))
	c.AddFragment(NewFragment(unitSquareAt(1, 0), TypeGoal, 1))
	c.AddFragment(NewFragment(unitSquareAt(2, 0), TypeEmpty, 1))

	if c.DominantType() != TypeGoal {
		t.Errorf("DominantType() = %v, expected goal to dominate", c.DominantType())
	}
}

func TestCenterAreaWeighted(t *testing.T) {
	c := NewCell(C(0, 0), TypeEmpty, unitSquareAt(0, 0))
	// 2x2 square, area 4, centroid (2, 1).
	c.AddFragment(NewFragment([]geom.Vec2{
		geom.V(1, 0), geom.V(3, 0), geom.V(3, 2), geom.V(1, 2),
	}, TypeEmpty, 1))

	// Weighted: ((0.5,0.5)*1 + (2,1)*4) / 5
	expected := geom.V(1.7, 0.9)
	if !c.Center().ApproxEqual(expected) {
		t.Errorf("Center() = %v, expected %v", c.Center(), expected)
	}
}

func TestMergeWithDeduplicatesCongruent(t *testing.T) {
	a := NewCell(C(1, 1), TypeEmpty, unitSquareAt(1, 1))
	b := NewCell(C(3, 1), TypeEmpty, unitSquareAt(3, 1))
	b.translate(geom.V(-2, 0), C(1, 1))

	a.MergeWith(b, 1)

	if len(a.Fragments) != 1 {
		t.Errorf("Fragments = %d, expected congruent fragment to deduplicate", len(a.Fragments))
	}
	if !a.HasSource(C(1, 1)) || !a.HasSource(C(3, 1)) {
		t.Errorf("Sources() = %v, expected both origins", a.Sources())
	}
	if a.LatestFold() != 1 {
		t.Errorf("LatestFold() = %d, expected 1", a.LatestFold())
	}
}

func TestMergeWithKeepsDistinctFragments(t *testing.T) {
	a := NewCell(C(0, 0), TypeEmpty, unitSquareAt(0, 0))
	a.Fragments = nil
	a.AddFragment(NewFragment([]geom.Vec2{
		geom.V(0, 0), geom.V(0.5, 0), geom.V(0.5, 1), geom.V(0, 1),
	}, TypeEmpty, 1))

	b := NewCell(C(2, 0), TypeWall, unitSquareAt(2, 0))
	b.Fragments = nil
	b.AddFragment(NewFragment([]geom.Vec2{
		geom.V(0.5, 0), geom.V(1, 0), geom.V(1, 1), geom.V(0.5, 1),
	}, TypeWall, 1))

	a.MergeWith(b, 2)

	if len(a.Fragments) != 2 {
		t.Fatalf("Fragments = %d, expected 2", len(a.Fragments))
	}
	if !almost(a.Area(), 1.0) {
		t.Errorf("Area() = %f, expected 1.0", a.Area())
	}
	if a.DominantType() != TypeWall {
		t.Errorf("DominantType() = %v, expected wall", a.DominantType())
	}
}

func TestSplitFragmentsVertical(t *testing.T) {
	c := NewCell(C(0, 0), TypeWater, unitSquareAt(0, 0))
	pos, neg := c.SplitFragments(geom.V(0.5, 0), geom.V(1, 0), 7, SeamAxisAligned, time.Now())

	if len(pos) != 1 || len(neg) != 1 {
		t.Fatalf("split = %d pos, %d neg, expected 1 each", len(pos), len(neg))
	}
	if !almost(pos[0].Area(), 0.5) || !almost(neg[0].Area(), 0.5) {
		t.Errorf("areas = %f, %f, expected 0.5 each", pos[0].Area(), neg[0].Area())
	}
	for _, half := range []*Fragment{pos[0], neg[0]} {
		if half.Type != TypeWater {
			t.Errorf("half type = %v, expected water", half.Type)
		}
		if half.OriginFold != 7 {
			t.Errorf("half origin = %d, expected 7", half.OriginFold)
		}
		if len(half.Seams) != 1 || half.Seams[0].FoldID != 7 {
			t.Fatalf("half seams = %v, expected one seam from fold 7", half.Seams)
		}
	}

	seam := pos[0].Seams[0]
	gotEnds := []geom.Vec2{seam.Start, seam.End}
	wantA, wantB := geom.V(0.5, 0), geom.V(0.5, 1)
	if !(gotEnds[0].ApproxEqual(wantA) && gotEnds[1].ApproxEqual(wantB)) &&
		!(gotEnds[0].ApproxEqual(wantB) && gotEnds[1].ApproxEqual(wantA)) {
		t.Errorf("seam endpoints = %v, expected (0.5,0) and (0.5,1)", gotEnds)
	}

	// The cell itself is untouched.
	if len(c.Fragments) != 1 || !almost(c.Area(), 1.0) {
		t.Error("SplitFragments modified the cell")
	}
}

func TestSplitFragmentsThroughCorners(t *testing.T) {
	// Cut along the anti-diagonal of the cell square: the line meets the
	// boundary exactly at two corners, so the split must still produce two
	// triangles with a corner-to-corner seam.
	c := NewCell(C(0, 0), TypeEmpty, unitSquareAt(0, 0))
	n := math.Sqrt2 / 2
	pos, neg := c.SplitFragments(geom.V(0.5, 0.5), geom.V(n, n), 3, SeamDiagonal, time.Now())

	if len(pos) != 1 || len(neg) != 1 {
		t.Fatalf("split = %d pos, %d neg, expected 1 each", len(pos), len(neg))
	}
	if !almost(pos[0].Area(), 0.5) || !almost(neg[0].Area(), 0.5) {
		t.Errorf("areas = %f, %f, expected 0.5 each", pos[0].Area(), neg[0].Area())
	}

	seam := pos[0].Seams[0]
	if seam.Kind != SeamDiagonal {
		t.Errorf("seam kind = %v, expected diagonal", seam.Kind)
	}
	gotEnds := []geom.Vec2{seam.Start, seam.End}
	wantA, wantB := geom.V(1, 0), geom.V(0, 1)
	if !(gotEnds[0].ApproxEqual(wantA) && gotEnds[1].ApproxEqual(wantB)) &&
		!(gotEnds[0].ApproxEqual(wantB) && gotEnds[1].ApproxEqual(wantA)) {
		t.Errorf("seam endpoints = %v, expected the on-line corners", gotEnds)
	}
}

func TestSplitFragmentsNoCross(t *testing.T) {
	c := NewCell(C(0, 0), TypeEmpty, unitSquareAt(0, 0))
	pos, neg := c.SplitFragments(geom.V(5, 0), geom.V(1, 0), 1, SeamAxisAligned, time.Now())

	if len(pos) != 0 || len(neg) != 1 {
		t.Fatalf("split = %d pos, %d neg, expected whole fragment on the negative side", len(pos), len(neg))
	}
	if len(neg[0].Seams) != 0 {
		t.Errorf("unsplit fragment gained %d seams", len(neg[0].Seams))
	}
}

func TestSplitInheritsPriorSeams(t *testing.T) {
	c := NewCell(C(0, 0), TypeEmpty, unitSquareAt(0, 0))
	_, neg := c.SplitFragments(geom.V(0.5, 0), geom.V(1, 0), 1, SeamAxisAligned, time.Now())
	c.Fragments = neg

	_, neg2 := c.SplitFragments(geom.V(0, 0.5), geom.V(0, 1), 2, SeamAxisAligned, time.Now())
	if len(neg2) != 1 {
		t.Fatalf("second split = %d neg fragments, expected 1", len(neg2))
	}
	if len(neg2[0].Seams) != 2 {
		t.Fatalf("seams = %d, expected prior seam plus the new one", len(neg2[0].Seams))
	}
	if neg2[0].Seams[0].FoldID != 1 || neg2[0].Seams[1].FoldID != 2 {
		t.Errorf("seam fold ids = %d, %d, expected 1 then 2",
			neg2[0].Seams[0].FoldID, neg2[0].Seams[1].FoldID)
	}
}

func TestCloneIsDeep(t *testing.T) {
	c := NewCell(C(1, 1), TypeGoal, unitSquareAt(1, 1))
	c.recordFold(4)

	clone := c.Clone()
	if !c.Equal(clone) {
		t.Fatal("clone is not equal to the original")
	}

	clone.Fragments[0].Polygon[0] = geom.V(99, 99)
	clone.recordFold(5)
	if c.Fragments[0].Polygon[0].ApproxEqual(geom.V(99, 99)) {
		t.Error("mutating the clone's polygon changed the original")
	}
	if c.LatestFold() != 4 {
		t.Error("mutating the clone's history changed the original")
	}
}

func TestMergeHistories(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []int
		expected []int
	}{
		{"disjoint", []int{1, 3}, []int{2, 4}, []int{1, 2, 3, 4}},
		{"overlapping", []int{1, 2}, []int{2, 3}, []int{1, 2, 3}},
		{"one empty", []int{5}, nil, []int{5}},
		{"both empty", nil, nil, []int{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := mergeHistories(tc.a, tc.b)
			if len(got) != len(tc.expected) {
				t.Fatalf("mergeHistories() = %v, expected %v", got, tc.expected)
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Fatalf("mergeHistories() = %v, expected %v", got, tc.expected)
				}
			}
		})
	}
}

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
