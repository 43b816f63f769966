package editor

import "github.com/iw2rmb/doxx/document"

// ChangeEvent is delivered to Config.OnChange after the document changed.
type ChangeEvent struct {
	document.Change

	// Text is the whole document after the change, paragraphs joined by "\n".
	Text string
}

func buildChangeEvent(ch document.Change, d document.Document) ChangeEvent {
	return ChangeEvent{Change: ch, Text: d.Text()}
}
