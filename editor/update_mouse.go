package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/doxx/document"
)

// updateMouse places the cursor on a left click, extends the selection on
// shift+click and drag, and scrolls on the wheel per the ScrollPolicy.
func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if dir, ok := wheelDirection(msg); ok {
		m.scrollWheel(dir)
		return m, nil
	}
	if !m.focused {
		return m, nil
	}

	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.mouseInBounds(msg.X, msg.Y) {
			return m, nil
		}
		m.mousePress(m.screenToDocPos(msg.X, msg.Y), msg.Shift)
	case tea.MouseActionMotion:
		if m.mouseDragging {
			x, y := m.clampMouseToBounds(msg.X, msg.Y)
			m.selectTo(m.screenToDocPos(x, y))
		}
	case tea.MouseActionRelease:
		m.mouseDragging = false
	}
	return m, nil
}

func (m *Model) mousePress(p document.Path, extend bool) {
	m.mouseDragging = true
	if !extend {
		m.mouseAnchor = p
		m.exec(document.SetCursor{Path: p}, document.ClearSelection{})
		return
	}
	m.mouseAnchor = m.doc.Cursor
	if m.doc.Selection != nil {
		m.mouseAnchor = m.doc.Selection.Start
	}
	m.selectTo(p)
}

// selectTo moves the cursor to p and selects from the drag anchor to p.
func (m *Model) selectTo(p document.Path) {
	m.exec(
		document.SetCursor{Path: p},
		document.MakeSelection{Selection: document.Selection{Start: m.mouseAnchor, End: p}},
	)
}

func (m *Model) scrollWheel(dir int) {
	if dir == 0 {
		return
	}
	switch m.cfg.ScrollPolicy {
	case ScrollByRow:
		m.viewport.SetYOffset(m.viewport.YOffset + dir)
	case ScrollByParagraph:
		if r, ok := nextParagraphRow(m.rows, m.viewport.YOffset, dir); ok {
			m.viewport.SetYOffset(r)
		}
	}
}

// nextParagraphRow finds the first row of the paragraph after (dir > 0) or
// before (dir < 0) row y.
func nextParagraphRow(rows []rowRef, y, dir int) (int, bool) {
	for r := y + dir; r >= 0 && r < len(rows); r += dir {
		if rows[r].ok && (r == 0 || !rows[r-1].ok) {
			return r, true
		}
	}
	return 0, false
}

// wheelDirection reports +1 for wheel down, -1 for wheel up. Horizontal
// wheel events are swallowed with direction 0.
func wheelDirection(msg tea.MouseMsg) (int, bool) {
	if msg.Action != tea.MouseActionPress {
		return 0, false
	}
	switch msg.Button { //nolint:exhaustive
	case tea.MouseButtonWheelDown:
		return 1, true
	case tea.MouseButtonWheelUp:
		return -1, true
	case tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
		return 0, true
	}
	return 0, false
}

func (m Model) mouseInBounds(x, y int) bool {
	w, h := m.viewport.Width, m.viewport.Height
	return w > 0 && h > 0 && x >= 0 && x < w && y >= 0 && y < h
}

func (m Model) clampMouseToBounds(x, y int) (int, int) {
	if m.viewport.Width > 0 {
		x = clampInt(x, 0, m.viewport.Width-1)
	}
	if m.viewport.Height > 0 {
		y = clampInt(y, 0, m.viewport.Height-1)
	}
	return x, y
}
