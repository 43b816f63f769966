package server

import "github.com/iw2rmb/doxx/document"

// DocumentView is the JSON form of a snapshot.
type DocumentView struct {
	Version    uint64          `json:"version"`
	Text       string          `json:"text"`
	Cursor     []int           `json:"cursor"`
	Selection  *SelectionView  `json:"selection,omitempty"`
	Paragraphs []ParagraphView `json:"paragraphs"`
}

type SelectionView struct {
	Start []int `json:"start"`
	End   []int `json:"end"`
}

// ParagraphView is one paragraph; Path holds its page, column and paragraph
// indices.
type ParagraphView struct {
	Path  []int         `json:"path"`
	Lines [][]ChunkView `json:"lines"`
}

type ChunkView struct {
	Text  string         `json:"text"`
	Style document.Style `json:"style,omitempty"`
}

// ChangeView is the JSON form of one effective command.
type ChangeView struct {
	Kind           document.CommandKind `json:"kind"`
	VersionBefore  uint64               `json:"version_before"`
	VersionAfter   uint64               `json:"version_after"`
	Cursor         []int                `json:"cursor"`
	TextChanged    bool                 `json:"text_changed"`
	ContentChanged bool                 `json:"content_changed"`
	StyleChanged   bool                 `json:"style_changed"`
}

func viewOf(d document.Document) DocumentView {
	v := DocumentView{
		Version: d.Version,
		Text:    d.Text(),
		Cursor:  components(d.Cursor),
	}
	if d.Selection != nil {
		v.Selection = &SelectionView{
			Start: components(d.Selection.Start),
			End:   components(d.Selection.End),
		}
	}
	for pi, page := range d.Content {
		for ci, col := range page {
			for p, para := range col {
				pv := ParagraphView{Path: []int{pi, ci, p}}
				for l, line := range para {
					chunks := make([]ChunkView, len(line))
					for c, text := range line {
						at := document.Path{Page: pi, Column: ci, Paragraph: p, Line: l, Chunk: c}
						chunks[c] = ChunkView{Text: text, Style: d.StyleAt(at)}
					}
					pv.Lines = append(pv.Lines, chunks)
				}
				v.Paragraphs = append(v.Paragraphs, pv)
			}
		}
	}
	return v
}

func changeViewOf(ch document.Change) ChangeView {
	return ChangeView{
		Kind:           ch.Kind,
		VersionBefore:  ch.VersionBefore,
		VersionAfter:   ch.VersionAfter,
		Cursor:         components(ch.CursorAfter),
		TextChanged:    ch.TextChanged,
		ContentChanged: ch.ContentChanged,
		StyleChanged:   ch.StyleChanged,
	}
}

func components(p document.Path) []int {
	c := p.Components()
	return c[:]
}
