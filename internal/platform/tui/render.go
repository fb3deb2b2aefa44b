package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/foldspace/internal/fold"
)

// typeStyles maps cell types to lipgloss styles.
var typeStyles = map[fold.CellType]lipgloss.Style{
	fold.TypeEmpty: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	fold.TypeWall:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	fold.TypeWater: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	fold.TypeGoal:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	fold.TypeVoid:  lipgloss.NewStyle().Foreground(lipgloss.Color("0")),
}

var (
	playerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	anchorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	gapStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// typeGlyphs maps cell types to their map characters.
var typeGlyphs = map[fold.CellType]rune{
	fold.TypeEmpty: '.',
	fold.TypeWall:  '#',
	fold.TypeWater: '~',
	fold.TypeGoal:  'G',
	fold.TypeVoid:  ' ',
}

// RenderGrid draws the grid with the player, the cursor and the pending
// anchor. Cells holding more than one fragment (merged or split) are marked
// with '+' when showSeams is on.
func RenderGrid(g *fold.Grid, player fold.Coord, cursor fold.Coord, anchor *fold.Coord, showSeams bool) string {
	var sb strings.Builder
	for y := range g.H {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := range g.W {
			coord := fold.C(x, y)
			glyph, style := cellGlyph(g, coord, showSeams)

			switch {
			case coord == player:
				glyph, style = '@', playerStyle
			case anchor != nil && coord == *anchor:
				glyph, style = 'A', anchorStyle
			}
			if coord == cursor {
				style = cursorStyle
			}
			sb.WriteString(style.Render(string(glyph)))
			if x < g.W-1 {
				sb.WriteString(" ")
			}
		}
	}
	return sb.String()
}

func cellGlyph(g *fold.Grid, coord fold.Coord, showSeams bool) (rune, lipgloss.Style) {
	cell := g.Cell(coord)
	if cell == nil {
		return '·', gapStyle
	}
	t := cell.DominantType()
	style, ok := typeStyles[t]
	if !ok {
		style = lipgloss.NewStyle()
	}
	if showSeams && len(cell.Fragments) > 1 {
		return '+', style
	}
	glyph, ok := typeGlyphs[t]
	if !ok {
		glyph = '?'
	}
	return glyph, style
}

// RenderHistory formats the fold history, newest last, flagging entries
// that cannot currently be undone.
func RenderHistory(h *fold.History, limit int) string {
	records := h.Records()
	if len(records) == 0 {
		return faintStyle.Render("no folds yet")
	}
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}

	var sb strings.Builder
	for i, r := range records {
		if i > 0 {
			sb.WriteRune('\n')
		}
		line := fmt.Sprintf("#%d  %v -> %v  (-%d cells, %d shifted)",
			r.FoldID, r.Anchor1, r.Anchor2, len(r.Removed), len(r.Shifted))
		if err := h.CanUndo(r.FoldID); err != nil {
			line += "  [locked]"
			sb.WriteString(faintStyle.Render(line))
		} else {
			sb.WriteString(line)
		}
	}
	return sb.String()
}
