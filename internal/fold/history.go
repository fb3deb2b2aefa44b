package fold

// History stores fold records in order and owns undo: legality is a pure
// cross-cell dependency query, restoration is a wholesale reinsert of the
// record's pre-fold snapshots. A record is destroyed by a successful undo;
// there is no redo.
type History struct {
	grid    *Grid
	player  Player
	records []*Record
}

func newHistory(g *Grid, p Player) *History {
	return &History{grid: g, player: p}
}

// append stores a committed fold record.
func (h *History) append(r *Record) {
	h.records = append(h.records, r)
}

// Records returns the stored records, oldest first.
func (h *History) Records() []*Record {
	out := make([]*Record, len(h.records))
	copy(out, h.records)
	return out
}

// Steps returns the replayable steps of the stored records, oldest first.
func (h *History) Steps() []Step {
	out := make([]Step, len(h.records))
	for i, r := range h.records {
		out[i] = r.Step()
	}
	return out
}

// Latest returns the newest record, or nil if the history is empty.
func (h *History) Latest() *Record {
	if len(h.records) == 0 {
		return nil
	}
	return h.records[len(h.records)-1]
}

// Len returns the number of stored records.
func (h *History) Len() int {
	return len(h.records)
}

func (h *History) find(foldID int) *Record {
	for _, r := range h.records {
		if r.FoldID == foldID {
			return r
		}
	}
	return nil
}

// CanUndo reports whether the fold can be undone right now. For every
// coordinate the fold left occupied, the cell there must name the fold as
// its newest history entry; every coordinate the fold left empty must still
// be empty. Returns ErrUndoNotFound or an UndoBlockedError naming the
// blocking later fold. Pure query, no mutation.
func (h *History) CanUndo(foldID int) error {
	rec := h.find(foldID)
	if rec == nil {
		return ErrUndoNotFound
	}

	for _, c := range rec.occupiedAfter {
		cell := h.grid.Cell(c)
		if cell == nil {
			if blocker, ok := h.blockerFor(rec, c); ok {
				return &UndoBlockedError{FoldID: foldID, BlockedBy: blocker}
			}
			missing := c
			return &UndoBlockedError{FoldID: foldID, BlockedBy: InitialFold, Missing: &missing}
		}
		if cell.LatestFold() != foldID {
			return &UndoBlockedError{FoldID: foldID, BlockedBy: cell.LatestFold()}
		}
	}
	for _, c := range rec.emptyAfter {
		if cell := h.grid.Cell(c); cell != nil {
			return &UndoBlockedError{FoldID: foldID, BlockedBy: cell.LatestFold()}
		}
	}
	return nil
}

// blockerFor names the later fold that most recently touched the
// coordinate. Reports false when no later record did.
func (h *History) blockerFor(rec *Record, c Coord) (int, bool) {
	blocker := InitialFold
	found := false
	for _, r := range h.records {
		if r.FoldID > rec.FoldID && r.touched(c) {
			blocker = r.FoldID
			found = true
		}
	}
	return blocker, found
}

// undo restores the pre-fold state from the record's snapshots and deletes
// the record. Callers hold the engine's in-progress guard.
func (h *History) undo(foldID int) error {
	if err := h.CanUndo(foldID); err != nil {
		return err
	}
	rec := h.find(foldID)

	// Drop everything the fold left behind, then reinsert the pre-fold
	// snapshots at their original coordinates. Snapshot fidelity, not
	// geometry re-derivation, is what makes this correct.
	for _, c := range rec.occupiedAfter {
		h.grid.remove(c)
	}
	for coord, snap := range rec.Snapshots {
		snap.Pos = coord
		h.grid.insert(snap)
	}
	h.player.SetCoordinate(rec.PlayerBefore)

	for i, r := range h.records {
		if r.FoldID == foldID {
			h.records = append(h.records[:i], h.records[i+1:]...)
			break
		}
	}
	logger.Info("fold undone", "id", foldID)
	return nil
}
