package level

import (
	"fmt"

	"github.com/vovakirdan/foldspace/internal/fold"
)

// Report collects validation findings for one level. Errors make the level
// unplayable; warnings do not.
type Report struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether the level has no errors.
func (r Report) Valid() bool {
	return len(r.Errors) == 0
}

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validate checks the structural rules for a level: positive grid size, a
// player start inside the bounds, at least one goal cell, known cell types,
// and a difficulty in the usual 1-5 range.
func Validate(l *Level) Report {
	var r Report

	if l.ID == "" {
		r.warnf("level has empty ID")
	}
	if l.Name == "" {
		r.errorf("missing level_name")
	}

	if l.Width <= 0 || l.Height <= 0 {
		r.errorf("grid_size must be positive (got %dx%d)", l.Width, l.Height)
	} else {
		p := l.PlayerStart
		if p.X < 0 || p.X >= l.Width || p.Y < 0 || p.Y >= l.Height {
			r.errorf("player_start_position (%d, %d) is outside grid bounds", p.X, p.Y)
		}
	}

	hasGoal := false
	for coord, t := range l.Cells {
		if !t.Valid() {
			r.errorf("cell %s has unknown type code %d", coord, int(t))
			continue
		}
		if t == fold.TypeGoal {
			hasGoal = true
		}
		if l.Width > 0 && l.Height > 0 &&
			(coord.X < 0 || coord.X >= l.Width || coord.Y < 0 || coord.Y >= l.Height) {
			r.warnf("cell %s lies outside the grid and will be ignored", coord)
		}
	}
	if !hasGoal {
		r.errorf("no goal cell defined (cell type %d)", int(fold.TypeGoal))
	}

	if l.Difficulty != 0 && (l.Difficulty < 1 || l.Difficulty > 5) {
		r.warnf("difficulty %d is outside typical range (1-5)", l.Difficulty)
	}

	return r
}
