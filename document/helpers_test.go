package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iw2rmb/doxx/internal/grapheme"
)

const nbsp = grapheme.NoBreakSpace

func line(chunks ...string) Line { return Line(chunks) }

func para(lines ...Line) Paragraph { return Paragraph(lines) }

// oneLine is a paragraph holding a single line.
func oneLine(chunks ...string) Paragraph { return para(line(chunks...)) }

// at addresses the first page and column.
func at(paragraph, line, chunk, char int) Path {
	return Path{Paragraph: paragraph, Line: line, Chunk: chunk, Char: char}
}

func key(paragraph, line, chunk int) ChunkKey {
	return at(paragraph, line, chunk, 0).Key()
}

func docOf(cursor Path, paragraphs ...Paragraph) Document {
	return Document{Content: ContentOf(paragraphs...), Cursor: cursor}
}

// cells measures one unit per grapheme cluster.
var cells = MeasureFunc(func(s string) float64 { return float64(grapheme.Count(s)) })

func apply(t *testing.T, e *Engine, d Document, cmds ...Command) Document {
	t.Helper()
	for _, cmd := range cmds {
		var err error
		d, err = e.Apply(d, cmd)
		if err != nil {
			t.Fatalf("Apply(%s): %v", cmd.Kind(), err)
		}
	}
	return d
}

func wantContent(t *testing.T, d Document, paragraphs ...Paragraph) {
	t.Helper()
	if diff := cmp.Diff(ContentOf(paragraphs...), d.Content); diff != "" {
		t.Fatalf("content mismatch (-want +got):\n%s", diff)
	}
}

func wantCursor(t *testing.T, d Document, want Path) {
	t.Helper()
	if d.Cursor != want {
		t.Fatalf("cursor=%v, want %v", d.Cursor, want)
	}
}

func bold() Style { return Style{"bold": true} }
