package editor

import (
	"github.com/iw2rmb/doxx/document"
	graphemeutil "github.com/iw2rmb/doxx/internal/grapheme"
)

// screenToDocPos maps viewport-local mouse coordinates to a document position.
//
// Coordinates are in terminal cells and are relative to the editor's viewport:
// (0,0) is the top-left of the visible content region. Clicks on the blank row
// between paragraphs land at the end of the paragraph above; clicks past the
// end of a line land at its end.
func (m *Model) screenToDocPos(x, y int) document.Path {
	if len(m.rows) == 0 {
		return document.Path{}
	}
	row := clampInt(m.viewport.YOffset+y, 0, len(m.rows)-1)
	if !m.rows[row].ok {
		row--
		x = int(^uint(0) >> 1)
	}
	if x < 0 {
		x = 0
	}
	at := m.rows[row].line
	line := m.doc.Content.Line(at)

	cell := 0
	for i, chunk := range line {
		for k, g := range graphemeutil.Split(chunk) {
			w := int(m.cells.MeasureAt(g, float64(cell)))
			if x < cell+w {
				return at.JumpTo(i, k)
			}
			cell += w
		}
	}
	last := len(line) - 1
	return at.JumpTo(last, graphemeutil.Count(line[last]))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
