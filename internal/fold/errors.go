package fold

import (
	"errors"
	"fmt"
)

// ErrUndoNotFound is returned when an undo names a fold id absent from the
// history.
var ErrUndoNotFound = errors.New("fold: no such fold in history")

// ValidationError rejects a fold before any mutation: bad anchors, a
// near-degenerate angle, player safety, or a fold already in progress.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "fold: " + e.Reason
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// UndoBlockedError rejects an undo because a later fold touched one of the
// fold's cells. BlockedBy names the blocking fold when one is known; when a
// cell the fold produced has vanished without any later record touching it,
// Missing names that coordinate instead.
type UndoBlockedError struct {
	FoldID    int
	BlockedBy int
	Missing   *Coord
}

func (e *UndoBlockedError) Error() string {
	if e.Missing != nil {
		return fmt.Sprintf("fold: undo of fold %d blocked: cell at %v is gone", e.FoldID, *e.Missing)
	}
	return fmt.Sprintf("fold: undo of fold %d blocked by later fold %d", e.FoldID, e.BlockedBy)
}

// InvalidStateError reports a post-operation violation of a structural
// invariant (cell without fragments, duplicate coordinates, invalid
// polygon). It indicates a defect, not a user-facing condition.
type InvalidStateError struct {
	Detail string
}

func (e *InvalidStateError) Error() string {
	return "fold: invalid state: " + e.Detail
}
