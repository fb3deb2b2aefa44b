// Package fold implements the space-folding engine: the player picks two
// grid anchors, the strip of space between them is removed, and the far side
// of the grid collapses onto the near side so the anchors coincide. Cells
// crossed by a cut line are split into polygon fragments; cells landing on
// occupied coordinates merge. Every fold is recorded with full pre-fold
// snapshots so it can be undone.
//
// The package is a pure, synchronous state transformer. Rendering, input and
// level I/O live outside it and consume the grid read-only.
package fold

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// logger receives diagnostics such as rejected degenerate fragments.
// Discarded by default; the CLI installs a real logger via SetLogger.
var logger = log.NewWithOptions(io.Discard, log.Options{Prefix: "fold"})

// SetLogger installs a logger for engine diagnostics.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Coord is a grid coordinate.
type Coord struct {
	X, Y int
}

// C is a shorthand constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// Add returns c translated by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{c.X + d.X, c.Y + d.Y}
}

// String formats the coordinate as "x,y" (the level-file key format).
func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// CellType classifies a cell or fragment. The numeric values match the
// level-file codes.
type CellType int

const (
	TypeEmpty CellType = 0
	TypeWall  CellType = 1
	TypeWater CellType = 2
	TypeGoal  CellType = 3
	TypeVoid  CellType = 4
)

// typePriority ranks cell types for dominant-type resolution:
// goal > wall > water > empty > void.
var typePriority = map[CellType]int{
	TypeGoal:  4,
	TypeWall:  3,
	TypeWater: 2,
	TypeEmpty: 1,
	TypeVoid:  0,
}

// Priority returns the dominance rank of the type. Unknown types rank lowest.
func (t CellType) Priority() int {
	return typePriority[t]
}

// Valid reports whether t is one of the defined cell types.
func (t CellType) Valid() bool {
	_, ok := typePriority[t]
	return ok
}

func (t CellType) String() string {
	switch t {
	case TypeEmpty:
		return "empty"
	case TypeWall:
		return "wall"
	case TypeWater:
		return "water"
	case TypeGoal:
		return "goal"
	case TypeVoid:
		return "void"
	default:
		return fmt.Sprintf("celltype(%d)", int(t))
	}
}

// ParseCellType converts a type name to a CellType.
func ParseCellType(s string) (CellType, error) {
	switch s {
	case "empty":
		return TypeEmpty, nil
	case "wall":
		return TypeWall, nil
	case "water":
		return TypeWater, nil
	case "goal":
		return TypeGoal, nil
	case "void":
		return TypeVoid, nil
	default:
		return TypeEmpty, fmt.Errorf("fold: unknown cell type %q", s)
	}
}

// InitialFold is the origin fold id of fragments created at grid
// initialization, before any fold has run.
const InitialFold = -1
