package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/doxx/document"
	"github.com/iw2rmb/doxx/internal/grapheme"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	// Paste events should always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		if !m.cfg.ReadOnly {
			m.exec(document.TypeText{Text: typed(string(msg.Runes))}, document.ClearSelection{})
		}
		return m, nil
	}

	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Left):
		m.exec(document.ClearSelection{}, document.PressKey{Key: document.KeyLeft})
	case key.Matches(msg, km.Right):
		m.exec(document.ClearSelection{}, document.PressKey{Key: document.KeyRight})
	case key.Matches(msg, km.Up):
		m.exec(document.PressKey{Key: document.KeyUp})
	case key.Matches(msg, km.Down):
		m.exec(document.PressKey{Key: document.KeyDown})

	case key.Matches(msg, km.ShiftLeft):
		m.extendSelection(document.KeyLeft)
	case key.Matches(msg, km.ShiftRight):
		m.extendSelection(document.KeyRight)

	case key.Matches(msg, km.Backspace):
		if !m.cfg.ReadOnly {
			m.exec(document.PressKey{Key: document.KeyBackspace}, document.ClearSelection{})
		}
	case key.Matches(msg, km.Enter):
		if !m.cfg.ReadOnly {
			m.exec(document.PressKey{Key: document.KeyEnter}, document.ClearSelection{})
		}

	case key.Matches(msg, km.Bold):
		m.toggleAttr(AttrBold)
	case key.Matches(msg, km.Italic):
		m.toggleAttr(AttrItalic)
	case key.Matches(msg, km.Underline):
		m.toggleAttr(AttrUnderline)

	case key.Matches(msg, km.Copy):
		m.copySelection()
	case key.Matches(msg, km.Paste):
		if !m.cfg.ReadOnly {
			m.pasteClipboard()
		}

	default:
		if m.cfg.ReadOnly {
			return m, nil
		}
		switch {
		case msg.Type == tea.KeyTab:
			m.exec(document.PressKey{Key: document.KeyTab})
		case msg.Type == tea.KeySpace:
			m.exec(document.TypeCharacter{Char: grapheme.NoBreakSpace}, document.ClearSelection{})
		case msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt:
			m.exec(document.TypeText{Text: typed(string(msg.Runes))}, document.ClearSelection{})
		}
	}

	return m, nil
}

// extendSelection moves the cursor and stretches the selection from its
// anchor, which is the selection start or the cursor when nothing is selected.
func (m *Model) extendSelection(k document.Key) {
	anchor := m.doc.Cursor
	if m.doc.Selection != nil {
		anchor = m.doc.Selection.Start
	}
	next, err := m.engine.Apply(m.doc, document.PressKey{Key: k})
	if err != nil || next.Cursor == m.doc.Cursor {
		return
	}
	m.exec(
		document.PressKey{Key: k},
		document.MakeSelection{Selection: document.Selection{Start: anchor, End: next.Cursor}},
	)
}

// toggleAttr removes attr from the selection when the chunk at the selection
// start has it, and sets it otherwise.
func (m *Model) toggleAttr(attr string) {
	if m.cfg.ReadOnly {
		return
	}
	current, ok := m.doc.SelectedStyle()
	if !ok {
		return
	}
	var v any = true
	if current.Bool(attr) {
		v = nil
	}
	m.exec(document.ApplyStyle{Style: document.Style{attr: v}})
}

// typed converts text the way the keyboard enters it: spaces become
// no-break spaces, the points where reflow may break a line.
func typed(s string) string {
	return strings.ReplaceAll(s, " ", grapheme.NoBreakSpace)
}

// plain undoes typed for text leaving the editor.
func plain(s string) string {
	return strings.ReplaceAll(s, grapheme.NoBreakSpace, " ")
}
