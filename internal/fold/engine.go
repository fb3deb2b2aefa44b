package fold

import (
	"fmt"
	"math"
	"sort"
	"sync/atomic"
	"time"

	"github.com/vovakirdan/foldspace/internal/geom"
)

// EngineConfig holds the numeric tolerances of the fold engine.
type EngineConfig struct {
	// AxisSnapDegrees is the angular tolerance within which a fold direction
	// is treated as axis-aligned. Axis-aligned cuts are numerically more
	// stable; the external semantics are identical.
	AxisSnapDegrees float64

	// NearDegenerateDegrees rejects folds whose direction falls between the
	// snap tolerance and this angle: too oblique to snap, too shallow to cut
	// cleanly.
	NearDegenerateDegrees float64
}

// DefaultEngineConfig returns the standard tolerances.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		AxisSnapDegrees:       5,
		NearDegenerateDegrees: 8,
	}
}

// Engine runs the fold pipeline against one grid: validate, compute cut
// lines, classify every cell, split boundary cells, delete the removed
// strip, shift the far side in two passes, merge collisions, stamp seams and
// record the fold for undo.
//
// The engine is synchronous and non-reentrant: a second Fold or Undo while
// one is in progress is rejected, never queued.
type Engine struct {
	grid    *Grid
	player  Player
	history *History
	cfg     EngineConfig

	nextFold int
	busy     atomic.Bool
}

// NewEngine creates an engine over the given grid and player.
func NewEngine(g *Grid, p Player, cfg EngineConfig) *Engine {
	e := &Engine{
		grid:     g,
		player:   p,
		cfg:      cfg,
		nextFold: 1,
	}
	e.history = newHistory(g, p)
	return e
}

// Grid returns the engine's grid for read-only consumers. Cells must be
// re-fetched after any fold or undo.
func (e *Engine) Grid() *Grid {
	return e.grid
}

// Player returns the player collaborator.
func (e *Engine) Player() Player {
	return e.player
}

// History returns the fold history manager.
func (e *Engine) History() *History {
	return e.history
}

// cutLine is an infinite line given by a point and a unit normal. Both cut
// lines of a fold share the same normal (the normalized anchor-to-anchor
// direction) so one projection axis orders all cells into three regions.
type cutLine struct {
	point  geom.Vec2
	normal geom.Vec2
}

// foldClass is the per-cell classification against the two cut lines.
type foldClass int

const (
	classStationary foldClass = iota
	classBoundaryTarget
	classRemoved
	classBoundarySource
	classShift
)

// Fold folds the grid so that the two anchors coincide. On success the grid
// has mutated, the player may have been relocated, and the returned record
// is appended to the history. On any validation failure nothing has mutated.
func (e *Engine) Fold(a1, a2 Coord) (*Record, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return nil, validationErrorf("fold already in progress")
	}
	defer e.busy.Store(false)

	if a1 == a2 {
		return nil, validationErrorf("anchors are identical: %v", a1)
	}
	if !e.grid.InBounds(a1) || !e.grid.InBounds(a2) {
		return nil, validationErrorf("anchor out of bounds: %v, %v", a1, a2)
	}

	p1 := e.grid.CellCenter(a1)
	p2 := e.grid.CellCenter(a2)
	normal, kind, err := e.foldDirection(p1, p2)
	if err != nil {
		return nil, err
	}

	line1 := cutLine{point: p1, normal: normal}
	line2 := cutLine{point: p2, normal: normal}
	deltaCoord := C(a1.X-a2.X, a1.Y-a2.Y)
	deltaWorld := p1.Sub(p2)

	classes := make(map[Coord]foldClass, e.grid.Len())
	e.grid.ForEachCell(func(c *Cell) {
		classes[c.Pos] = classify(c, line1, line2)
	})

	// Player safety gate: checked before any mutation so a rejection leaves
	// the grid untouched.
	pc := e.player.Coordinate()
	if e.grid.Cell(pc) == nil {
		return nil, validationErrorf("player coordinate %v has no cell", pc)
	}
	switch classes[pc] {
	case classRemoved:
		return nil, validationErrorf("player at %v is inside the removed region", pc)
	case classBoundaryTarget, classBoundarySource:
		return nil, validationErrorf("player cell at %v would be split", pc)
	case classShift:
		if !e.grid.InBounds(pc.Add(deltaCoord)) {
			return nil, validationErrorf("player at %v would be shifted out of bounds", pc)
		}
	}

	foldID := e.nextFold
	ts := time.Now()
	rec := &Record{
		FoldID:       foldID,
		Anchor1:      a1,
		Anchor2:      a2,
		Snapshots:    make(map[Coord]*Cell),
		Timestamp:    ts,
		PlayerBefore: pc,
	}
	for coord, cl := range classes {
		if cl != classStationary {
			rec.Snapshots[coord] = e.grid.Cell(coord).Clone()
		}
	}

	// Pass A: mutate in place. Boundary cells are split, the removed strip
	// is deleted, and every moving cell leaves the grid map without being
	// reinserted yet. Reinserting in the same pass could collide with a
	// cell that has not vacated its coordinate.
	type mover struct {
		cell     *Cell
		from, to Coord
	}
	var movers []mover

	for _, coord := range e.grid.Coords() {
		cell := e.grid.Cell(coord)
		switch classes[coord] {
		case classStationary:

		case classBoundaryTarget:
			_, neg := cell.SplitFragments(line1.point, line1.normal, foldID, kind, ts)
			if len(neg) == 0 {
				e.grid.remove(coord)
				rec.Removed = append(rec.Removed, coord)
				continue
			}
			cell.Fragments = neg
			cell.recomputeDominant()
			cell.recordFold(foldID)
			rec.collectSeams(neg, foldID)

		case classRemoved:
			e.grid.remove(coord)
			rec.Removed = append(rec.Removed, coord)

		case classBoundarySource:
			pos, _ := cell.SplitFragments(line2.point, line2.normal, foldID, kind, ts)
			e.grid.remove(coord)
			if len(pos) == 0 {
				rec.Removed = append(rec.Removed, coord)
				continue
			}
			cell.Fragments = pos
			cell.recomputeDominant()
			cell.recordFold(foldID)
			rec.collectSeams(pos, foldID)
			movers = append(movers, mover{cell: cell, from: coord, to: coord.Add(deltaCoord)})

		case classShift:
			e.grid.remove(coord)
			cell.recordFold(foldID)
			movers = append(movers, mover{cell: cell, from: coord, to: coord.Add(deltaCoord)})
		}
	}

	// Pass B: reinsert movers at their shifted coordinates, merging where
	// the target is occupied. Targets outside the grid are clipped away.
	for _, m := range movers {
		if !e.grid.InBounds(m.to) {
			logger.Debug("mover clipped at grid edge", "from", m.from, "to", m.to)
			rec.Removed = append(rec.Removed, m.from)
			continue
		}
		m.cell.translate(deltaWorld, m.to)
		if existing := e.grid.Cell(m.to); existing != nil {
			existing.MergeWith(m.cell, foldID)
			stampMergeSeams(existing, line1, foldID, kind, ts)
			rec.collectSeams(existing.Fragments, foldID)
		} else {
			e.grid.insert(m.cell)
		}
		rec.Shifted = append(rec.Shifted, ShiftMove{From: m.from, To: m.to})
	}

	if classes[pc] == classShift {
		e.player.SetCoordinate(pc.Add(deltaCoord))
	}

	for _, coord := range rec.TouchedCoords() {
		if e.grid.Cell(coord) != nil {
			rec.occupiedAfter = append(rec.occupiedAfter, coord)
		} else {
			rec.emptyAfter = append(rec.emptyAfter, coord)
		}
	}

	if err := checkInvariants(e.grid); err != nil {
		return nil, err
	}

	e.nextFold++
	e.history.append(rec)
	logger.Info("fold committed", "id", foldID, "anchors", fmt.Sprintf("%v->%v", a1, a2),
		"removed", len(rec.Removed), "shifted", len(rec.Shifted))
	return rec, nil
}

// CanUndo reports whether the fold can be undone. Pure query, no mutation.
func (e *Engine) CanUndo(foldID int) error {
	return e.history.CanUndo(foldID)
}

// Undo reverses the fold, restoring every touched cell from its pre-fold
// snapshot and destroying the record. There is no redo.
func (e *Engine) Undo(foldID int) error {
	if !e.busy.CompareAndSwap(false, true) {
		return validationErrorf("fold already in progress")
	}
	defer e.busy.Store(false)

	if err := e.history.undo(foldID); err != nil {
		return err
	}
	return checkInvariants(e.grid)
}

// foldDirection derives the shared cut-line normal from the two anchor
// points, snapping near-axis directions to the axis and rejecting the
// shallow band between snap and the near-degenerate tolerance.
func (e *Engine) foldDirection(p1, p2 geom.Vec2) (geom.Vec2, SeamKind, error) {
	dir := p2.Sub(p1)
	angle := math.Atan2(dir.Y, dir.X) * 180 / math.Pi

	// Offset from the nearest grid axis, in [-45, 45].
	off := math.Mod(angle, 90)
	if off > 45 {
		off -= 90
	} else if off < -45 {
		off += 90
	}

	if math.Abs(off) <= e.cfg.AxisSnapDegrees {
		snapped := math.Round(angle/90) * 90 * math.Pi / 180
		return geom.V(math.Cos(snapped), math.Sin(snapped)), SeamAxisAligned, nil
	}
	if math.Abs(off) < e.cfg.NearDegenerateDegrees {
		return geom.Vec2{}, 0, validationErrorf(
			"fold angle %.1f too close to axis (snap %.1f, reject below %.1f)",
			math.Abs(off), e.cfg.AxisSnapDegrees, e.cfg.NearDegenerateDegrees)
	}
	return dir.Normalized(), SeamDiagonal, nil
}

// classify orders a cell into one of the three regions bounded by the cut
// lines, detecting boundary cells by vertex span as well as by centroid.
func classify(cell *Cell, line1, line2 cutLine) foldClass {
	min1, max1 := math.Inf(1), math.Inf(-1)
	min2, max2 := math.Inf(1), math.Inf(-1)
	for _, f := range cell.Fragments {
		for _, v := range f.Polygon {
			d1 := geom.SignedDistance(v, line1.point, line1.normal)
			d2 := geom.SignedDistance(v, line2.point, line2.normal)
			min1, max1 = math.Min(min1, d1), math.Max(max1, d1)
			min2, max2 = math.Min(min2, d2), math.Max(max2, d2)
		}
	}
	spans1 := min1 < -geom.Epsilon && max1 > geom.Epsilon
	spans2 := min2 < -geom.Epsilon && max2 > geom.Epsilon

	center := cell.Center()
	s1 := geom.SideOfLine(center, line1.point, line1.normal)
	s2 := geom.SideOfLine(center, line2.point, line2.normal)

	switch {
	case spans1 || s1 == 0:
		return classBoundaryTarget
	case spans2 || s2 == 0:
		return classBoundarySource
	case s1 < 0:
		return classStationary
	case s2 > 0:
		return classShift
	default:
		return classRemoved
	}
}

// stampMergeSeams marks the merge seam on fragments that joined the cell
// without carrying this fold's split seam. The seam runs along the cut line
// where the merged pieces meet; fragments that merely touch the line at a
// single point are left unmarked.
func stampMergeSeams(cell *Cell, line cutLine, foldID int, kind SeamKind, ts time.Time) {
	for _, f := range cell.Fragments {
		if f.hasSeamFrom(foldID) {
			continue
		}
		var onLine []geom.Vec2
		for _, v := range f.Polygon {
			if geom.SideOfLine(v, line.point, line.normal) == 0 {
				onLine = append(onLine, v)
			}
		}
		if len(onLine) < 2 {
			continue
		}
		// Polygon order need not put the extreme contact points first and
		// last, so order the on-line vertices along the line itself.
		along := geom.V(-line.normal.Y, line.normal.X)
		sort.Slice(onLine, func(i, j int) bool {
			return onLine[i].Dot(along) < onLine[j].Dot(along)
		})
		f.Seams = append(f.Seams, Seam{
			Anchor:    line.point,
			Normal:    line.normal,
			Start:     onLine[0],
			End:       onLine[len(onLine)-1],
			FoldID:    foldID,
			Timestamp: ts,
			Kind:      kind,
		})
	}
}

// collectSeams copies the seams this fold stamped on the given fragments
// into the record, for bookkeeping and persistence.
func (r *Record) collectSeams(frags []*Fragment, foldID int) {
	for _, f := range frags {
		for _, s := range f.Seams {
			if s.FoldID == foldID && !r.hasSeam(s) {
				r.Seams = append(r.Seams, s)
			}
		}
	}
}

func (r *Record) hasSeam(s Seam) bool {
	for _, have := range r.Seams {
		if have.FoldID == s.FoldID && have.Start.ApproxEqual(s.Start) && have.End.ApproxEqual(s.End) {
			return true
		}
	}
	return false
}

// checkInvariants verifies the structural invariants after a fold or undo:
// every cell has at least one valid fragment, every cell sits at its map
// coordinate, and no cell lies outside the grid bounds.
func checkInvariants(g *Grid) error {
	for _, coord := range g.Coords() {
		cell := g.Cell(coord)
		if cell.Pos != coord {
			return &InvalidStateError{Detail: fmt.Sprintf("cell at %v claims coordinate %v", coord, cell.Pos)}
		}
		if !g.InBounds(coord) {
			return &InvalidStateError{Detail: fmt.Sprintf("cell at %v outside %dx%d grid", coord, g.W, g.H)}
		}
		if len(cell.Fragments) == 0 {
			return &InvalidStateError{Detail: fmt.Sprintf("cell at %v has no fragments", coord)}
		}
		for _, f := range cell.Fragments {
			if !geom.IsValidPolygon(f.Polygon) {
				return &InvalidStateError{Detail: fmt.Sprintf("cell at %v has an invalid polygon", coord)}
			}
		}
	}
	return nil
}

// Replay re-runs persisted fold steps in order against an initial grid.
// Used as the cross-session consistency check: the result must equal the
// grid that produced the steps.
func Replay(g *Grid, p Player, cfg EngineConfig, steps []Step) (*Engine, error) {
	e := NewEngine(g, p, cfg)
	for i, s := range steps {
		if _, err := e.Fold(s.Anchor1, s.Anchor2); err != nil {
			return nil, fmt.Errorf("fold: replay step %d: %w", i+1, err)
		}
	}
	return e, nil
}
