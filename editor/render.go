package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/doxx/document"
	graphemeutil "github.com/iw2rmb/doxx/internal/grapheme"
)

// renderContent draws one row per line with a blank row between paragraphs.
// It returns the rendered text and the row holding the cursor.
func (m *Model) renderContent() (string, int) {
	if m.doc.Content == nil {
		return "", 0
	}

	sel, selOK := m.doc.SelectionRange()
	cursor := m.doc.Cursor
	cursorRow := 0

	var out []string
	m.rows = nil
	for pi, page := range m.doc.Content {
		for ci, col := range page {
			for p, para := range col {
				if len(out) > 0 {
					out = append(out, "")
					m.rows = append(m.rows, rowRef{})
				}
				for l := range para {
					at := document.Path{Page: pi, Column: ci, Paragraph: p, Line: l}
					if cursor.HasPrefix(at, document.LevelLine) {
						cursorRow = len(out)
					}
					out = append(out, m.renderLine(at, sel, selOK))
					m.rows = append(m.rows, rowRef{line: at, ok: true})
				}
			}
		}
	}
	return strings.Join(out, "\n"), cursorRow
}

// rowRef maps a rendered row back to its line. Separator rows have ok unset.
type rowRef struct {
	line document.Path
	ok   bool
}

type cellState uint8

const (
	cellPlain cellState = iota
	cellSelected
	cellCursor
)

func (m *Model) renderLine(at document.Path, sel document.Selection, selOK bool) string {
	line := m.doc.Content.Line(at)
	st := m.cfg.Style

	cursorOff := -1
	if m.focused && m.doc.Cursor.HasPrefix(at, document.LevelLine) {
		cursorOff = lineOffset(line, m.doc.Cursor)
	}

	var sb strings.Builder
	off, cell := 0, 0
	for i, chunk := range line {
		base := chunkStyle(st.Text, m.doc.StyleAt(at.JumpTo(i, 0)))
		clusters := graphemeutil.Split(chunk)

		var run strings.Builder
		runState := cellPlain
		flush := func() {
			if run.Len() == 0 {
				return
			}
			sb.WriteString(styleFor(st, base, runState).Render(run.String()))
			run.Reset()
		}
		for k, g := range clusters {
			state := cellPlain
			switch {
			case off == cursorOff:
				state = cellCursor
			case selOK && inSelection(sel, at.JumpTo(i, k)):
				state = cellSelected
			}
			if state != runState {
				flush()
				runState = state
			}
			w := m.cells.MeasureAt(g, float64(cell))
			run.WriteString(visible(g, int(w)))
			cell += int(w)
			off++
		}
		flush()
	}
	if cursorOff >= off {
		sb.WriteString(st.Cursor.Render(" "))
	}
	return sb.String()
}

func styleFor(st Style, base lipgloss.Style, state cellState) lipgloss.Style {
	switch state {
	case cellCursor:
		return st.Cursor.Inherit(base)
	case cellSelected:
		return st.Selection.Inherit(base)
	default:
		return base
	}
}

// lineOffset converts a position inside line to a cluster offset from the
// start of the line.
func lineOffset(line document.Line, p document.Path) int {
	off := 0
	for i := 0; i < p.Chunk && i < len(line); i++ {
		off += graphemeutil.Count(line[i])
	}
	return off + p.Char
}

func inSelection(sel document.Selection, p document.Path) bool {
	return document.ComparePaths(sel.Start, p) <= 0 && document.ComparePaths(p, sel.End) < 0
}

// visible returns what is drawn for cluster g occupying w cells.
func visible(g string, w int) string {
	switch g {
	case graphemeutil.NoBreakSpace:
		return " "
	case "\t":
		return strings.Repeat(" ", w)
	}
	return g
}
