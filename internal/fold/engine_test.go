package fold

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/foldspace/internal/geom"
)

func newTestEngine(w, h int, playerAt Coord) (*Engine, *SimplePlayer) {
	g := NewGrid(w, h, 1)
	p := NewPlayer(playerAt)
	return NewEngine(g, p, DefaultEngineConfig()), p
}

func TestFoldVerticalCollapse(t *testing.T) {
	e, p := newTestEngine(5, 5, C(0, 2))

	rec, err := e.Fold(C(1, 2), C(3, 2))
	if err != nil {
		t.Fatalf("Fold() failed: %v", err)
	}
	if rec.FoldID != 1 {
		t.Errorf("FoldID = %d, expected 1", rec.FoldID)
	}

	g := e.Grid()
	if g.Len() != 15 {
		t.Errorf("Len() = %d, expected 15 cells after collapsing two columns", g.Len())
	}
	if !almost(g.TotalArea(), 15) {
		t.Errorf("TotalArea() = %f, expected 15", g.TotalArea())
	}

	for y := range 5 {
		if g.Cell(C(3, y)) != nil || g.Cell(C(4, y)) != nil {
			t.Errorf("row %d: vacated columns 3 and 4 still occupied", y)
		}

		merged := g.Cell(C(1, y))
		if merged == nil {
			t.Fatalf("row %d: no merged cell at column 1", y)
		}
		if len(merged.Fragments) != 2 {
			t.Errorf("row %d: merged cell has %d fragments, expected 2", y, len(merged.Fragments))
		}
		if !almost(merged.Area(), 1) {
			t.Errorf("row %d: merged cell area = %f, expected 1", y, merged.Area())
		}
		if !merged.HasSource(C(1, y)) || !merged.HasSource(C(3, y)) {
			t.Errorf("row %d: merged cell sources = %v, expected both anchor columns", y, merged.Sources())
		}

		shifted := g.Cell(C(2, y))
		if shifted == nil {
			t.Fatalf("row %d: no shifted cell at column 2", y)
		}
		if !shifted.HasSource(C(4, y)) {
			t.Errorf("row %d: shifted cell sources = %v, expected origin (4,%d)", y, shifted.Sources(), y)
		}
	}

	if len(rec.Removed) != 5 {
		t.Errorf("Removed = %d coords, expected the 5-cell strip", len(rec.Removed))
	}
	if len(rec.Shifted) != 10 {
		t.Errorf("Shifted = %d moves, expected 10", len(rec.Shifted))
	}
	if len(rec.Seams) == 0 {
		t.Error("record carries no seams")
	}
	for _, s := range rec.Seams {
		if s.Kind != SeamAxisAligned {
			t.Errorf("seam kind = %v, expected axis-aligned", s.Kind)
		}
	}

	if p.Coordinate() != C(0, 2) {
		t.Errorf("stationary player moved to %v", p.Coordinate())
	}
}

func TestFoldShiftsPlayer(t *testing.T) {
	e, p := newTestEngine(5, 5, C(4, 2))

	if _, err := e.Fold(C(1, 2), C(3, 2)); err != nil {
		t.Fatalf("Fold() failed: %v", err)
	}
	if p.Coordinate() != C(2, 2) {
		t.Errorf("player at %v, expected shift to (2,2)", p.Coordinate())
	}
}

func TestFoldPlayerSafetyGate(t *testing.T) {
	tests := []struct {
		name     string
		playerAt Coord
	}{
		{"player in removed strip", C(2, 2)},
		{"player on first cut line", C(1, 2)},
		{"player on second cut line", C(3, 2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, p := newTestEngine(5, 5, tc.playerAt)
			before := e.Grid().Clone()

			_, err := e.Fold(C(1, 2), C(3, 2))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Fold() = %v, expected a validation error", err)
			}
			if !e.Grid().Equal(before) {
				t.Error("rejected fold mutated the grid")
			}
			if p.Coordinate() != tc.playerAt {
				t.Error("rejected fold moved the player")
			}
			if e.History().Len() != 0 {
				t.Error("rejected fold was recorded")
			}
		})
	}
}

func TestFoldRejectsBadAnchors(t *testing.T) {
	tests := []struct {
		name   string
		a1, a2 Coord
	}{
		{"identical anchors", C(2, 2), C(2, 2)},
		{"first anchor out of bounds", C(-1, 0), C(2, 2)},
		{"second anchor out of bounds", C(2, 2), C(9, 9)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, _ := newTestEngine(5, 5, C(0, 0))
			_, err := e.Fold(tc.a1, tc.a2)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("Fold(%v, %v) = %v, expected a validation error", tc.a1, tc.a2, err)
			}
		})
	}
}

func TestFoldDirection(t *testing.T) {
	e, _ := newTestEngine(5, 5, C(0, 0))

	// Exactly on axis.
	n, kind, err := e.foldDirection(geom.V(0.5, 2.5), geom.V(3.5, 2.5))
	if err != nil {
		t.Fatalf("axis direction rejected: %v", err)
	}
	if kind != SeamAxisAligned || !n.ApproxEqual(geom.V(1, 0)) {
		t.Errorf("axis direction = %v (%v), expected (1,0) axis-aligned", n, kind)
	}

	// 2.9 degrees off axis: snapped.
	n, kind, err = e.foldDirection(geom.V(0.5, 0.5), geom.V(20.5, 1.5))
	if err != nil {
		t.Fatalf("near-axis direction rejected: %v", err)
	}
	if kind != SeamAxisAligned || !n.ApproxEqual(geom.V(1, 0)) {
		t.Errorf("snapped direction = %v (%v), expected (1,0) axis-aligned", n, kind)
	}

	// 5.7 degrees off axis: inside the reject band.
	_, _, err = e.foldDirection(geom.V(0.5, 0.5), geom.V(10.5, 1.5))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("shallow direction = %v, expected a validation error", err)
	}

	// 45 degrees: diagonal.
	n, kind, err = e.foldDirection(geom.V(0.5, 0.5), geom.V(3.5, 3.5))
	if err != nil {
		t.Fatalf("diagonal direction rejected: %v", err)
	}
	root2 := geom.V(1, 1).Normalized()
	if kind != SeamDiagonal || !n.ApproxEqual(root2) {
		t.Errorf("diagonal direction = %v (%v), expected %v diagonal", n, kind, root2)
	}
}

func TestFoldDiagonal(t *testing.T) {
	e, p := newTestEngine(4, 4, C(3, 0))

	rec, err := e.Fold(C(1, 0), C(0, 1))
	if err != nil {
		t.Fatalf("Fold() failed: %v", err)
	}

	g := e.Grid()
	if g.Len() != 9 {
		t.Errorf("Len() = %d, expected 9", g.Len())
	}
	if !almost(g.TotalArea(), 9) {
		t.Errorf("TotalArea() = %f, expected 9", g.TotalArea())
	}

	// The main diagonal strip is gone; (1,1) and (2,2) are reoccupied by
	// shifted cells, the corners stay empty.
	if g.Cell(C(0, 0)) != nil || g.Cell(C(3, 3)) != nil {
		t.Error("diagonal corner cells survived the fold")
	}

	// Boundary cells were split corner-to-corner and merged with the
	// arriving halves.
	for _, c := range []Coord{C(1, 0), C(2, 1), C(3, 2)} {
		cell := g.Cell(c)
		if cell == nil {
			t.Fatalf("no merged cell at %v", c)
		}
		if len(cell.Fragments) != 2 {
			t.Errorf("merged cell %v has %d fragments, expected 2", c, len(cell.Fragments))
		}
		if !almost(cell.Area(), 1) {
			t.Errorf("merged cell %v area = %f, expected 1", c, cell.Area())
		}
		for _, f := range cell.Fragments {
			if !f.hasSeamFrom(rec.FoldID) {
				t.Errorf("merged cell %v fragment lacks the fold seam", c)
			}
			for _, s := range f.Seams {
				if s.Kind != SeamDiagonal {
					t.Errorf("merged cell %v seam kind = %v, expected diagonal", c, s.Kind)
				}
			}
		}
	}

	// Far-side cells shifted down the diagonal.
	shifted := map[Coord]Coord{
		C(1, 1): C(0, 2),
		C(1, 2): C(0, 3),
		C(2, 2): C(1, 3),
	}
	for to, from := range shifted {
		cell := g.Cell(to)
		if cell == nil {
			t.Fatalf("no shifted cell at %v", to)
		}
		if !cell.HasSource(from) {
			t.Errorf("cell %v sources = %v, expected origin %v", to, cell.Sources(), from)
		}
	}

	if p.Coordinate() != C(3, 0) {
		t.Errorf("stationary player moved to %v", p.Coordinate())
	}
	if len(rec.Removed) != 4 || len(rec.Shifted) != 6 {
		t.Errorf("record = %d removed, %d shifted, expected 4 and 6",
			len(rec.Removed), len(rec.Shifted))
	}
}

func TestFoldClipsShiftBeyondGridEdge(t *testing.T) {
	// Anchors a row apart: the snapped horizontal fold shifts column 13 to
	// column 1 AND one row up, pushing the mover from (13,0) to (1,-1).
	e, p := newTestEngine(14, 3, C(0, 1))
	before := e.Grid().Clone()

	rec, err := e.Fold(C(1, 1), C(13, 2))
	if err != nil {
		t.Fatalf("Fold() failed: %v", err)
	}

	g := e.Grid()
	for _, c := range g.Coords() {
		if !g.InBounds(c) {
			t.Errorf("cell at %v lies outside the grid", c)
		}
	}
	if g.Len() != 6 {
		t.Errorf("Len() = %d, expected 6", g.Len())
	}
	if !almost(g.TotalArea(), 5.5) {
		t.Errorf("TotalArea() = %f, expected 5.5", g.TotalArea())
	}

	clipped := false
	for _, c := range rec.Removed {
		if c == C(13, 0) {
			clipped = true
		}
	}
	if !clipped {
		t.Errorf("Removed = %v, expected the clipped mover origin (13,0)", rec.Removed)
	}
	if len(rec.Shifted) != 2 {
		t.Errorf("Shifted = %d moves, expected 2 surviving movers", len(rec.Shifted))
	}
	for _, m := range rec.Shifted {
		if !g.InBounds(m.To) {
			t.Errorf("shift target %v out of bounds", m.To)
		}
	}

	if err := e.Undo(rec.FoldID); err != nil {
		t.Fatalf("Undo() failed: %v", err)
	}
	if !e.Grid().Equal(before) {
		t.Error("undo did not restore the clipped cell")
	}
	if p.Coordinate() != C(0, 1) {
		t.Errorf("player at %v after undo, expected (0,1)", p.Coordinate())
	}
}

func TestStampMergeSeamEndpoints(t *testing.T) {
	// A fragment touching the cut line along one edge, with the on-line
	// vertices out of extremal order in the polygon. The seam must span the
	// full contact segment, not whatever two vertices come first and last.
	poly := []geom.Vec2{
		geom.V(1, 1), geom.V(1, 2), geom.V(0, 2), geom.V(0, 0), geom.V(1, 0),
	}
	cell := NewCell(C(0, 0), TypeEmpty, poly)
	line := cutLine{point: geom.V(1, 0), normal: geom.V(1, 0)}

	stampMergeSeams(cell, line, 1, SeamAxisAligned, time.Now())

	seams := cell.Fragments[0].Seams
	if len(seams) != 1 {
		t.Fatalf("fragment has %d seams, expected 1", len(seams))
	}
	if !seams[0].Start.ApproxEqual(geom.V(1, 0)) || !seams[0].End.ApproxEqual(geom.V(1, 2)) {
		t.Errorf("seam spans %v to %v, expected (1,0) to (1,2)", seams[0].Start, seams[0].End)
	}
}

func TestFoldPreservesCellTypes(t *testing.T) {
	g := NewGrid(5, 5, 1)
	g.SetCellType(C(3, 1), TypeGoal)
	g.SetCellType(C(4, 4), TypeWall)
	p := NewPlayer(C(0, 2))
	e := NewEngine(g, p, DefaultEngineConfig())

	if _, err := e.Fold(C(1, 2), C(3, 2)); err != nil {
		t.Fatalf("Fold() failed: %v", err)
	}

	// The goal half from column 3 merged into column 1; goal dominates the
	// empty half it landed on.
	if got := g.Cell(C(1, 1)).DominantType(); got != TypeGoal {
		t.Errorf("merged cell type = %v, expected goal", got)
	}
	// The wall shifted from (4,4) to (2,4) intact.
	if got := g.Cell(C(2, 4)).DominantType(); got != TypeWall {
		t.Errorf("shifted cell type = %v, expected wall", got)
	}
}

func TestFoldRejectedWhileInProgress(t *testing.T) {
	e, _ := newTestEngine(5, 5, C(0, 2))
	e.busy.Store(true)

	_, err := e.Fold(C(1, 2), C(3, 2))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Fold() = %v, expected rejection while busy", err)
	}

	e.busy.Store(false)
	if _, err := e.Fold(C(1, 2), C(3, 2)); err != nil {
		t.Errorf("Fold() after release failed: %v", err)
	}
}

func TestReplayReproducesGrid(t *testing.T) {
	g := NewGrid(7, 5, 1)
	g.SetCellType(C(6, 2), TypeGoal)
	p := NewPlayer(C(0, 2))
	e := NewEngine(g, p, DefaultEngineConfig())

	if _, err := e.Fold(C(1, 2), C(3, 2)); err != nil {
		t.Fatalf("first fold failed: %v", err)
	}
	if _, err := e.Fold(C(2, 2), C(4, 2)); err != nil {
		t.Fatalf("second fold failed: %v", err)
	}

	steps := e.History().Steps()
	if len(steps) != 2 {
		t.Fatalf("Steps() = %d, expected 2", len(steps))
	}

	fresh := NewGrid(7, 5, 1)
	fresh.SetCellType(C(6, 2), TypeGoal)
	replayed, err := Replay(fresh, NewPlayer(C(0, 2)), DefaultEngineConfig(), steps)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}

	if !replayed.Grid().Equal(e.Grid()) {
		t.Error("replayed grid differs from the live grid")
	}
	if replayed.Player().Coordinate() != p.Coordinate() {
		t.Errorf("replayed player at %v, live player at %v",
			replayed.Player().Coordinate(), p.Coordinate())
	}
}

func TestReplayFailsOnBadStep(t *testing.T) {
	g := NewGrid(5, 5, 1)
	_, err := Replay(g, NewPlayer(C(0, 2)), DefaultEngineConfig(), []Step{
		{Anchor1: C(2, 2), Anchor2: C(2, 2)},
	})
	if err == nil {
		t.Fatal("Replay() accepted an invalid step")
	}
}
