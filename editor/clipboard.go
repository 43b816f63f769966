package editor

import (
	"sync"

	"github.com/iw2rmb/doxx/document"
)

// Clipboard is where ctrl+c puts the selection's plain text and where ctrl+v
// reads from. Failures are logged and otherwise ignored.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

// MemoryClipboard is a process-local Clipboard, safe for concurrent use.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

func (c *MemoryClipboard) ReadText() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, nil
}

func (c *MemoryClipboard) WriteText(s string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = s
	return nil
}

// copySelection writes the selected text with typed spaces turned back into
// ordinary ones. Style is not carried.
func (m Model) copySelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	sel, ok := m.doc.SelectionRange()
	if !ok {
		return
	}
	s := plain(m.doc.Content.TextIn(sel))
	if s == "" {
		return
	}
	if err := m.cfg.Clipboard.WriteText(s); err != nil {
		m.log.Warn("clipboard write failed", "err", err)
	}
}

func (m *Model) pasteClipboard() {
	if m.cfg.Clipboard == nil {
		return
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil {
		m.log.Warn("clipboard read failed", "err", err)
		return
	}
	if s == "" {
		return
	}
	m.exec(document.TypeText{Text: typed(s)}, document.ClearSelection{})
}
