package document

import (
	"errors"
	"testing"
)

func TestTypeCharacter_InsertsAtCursor(t *testing.T) {
	e := NewEngine()
	cases := []struct {
		name   string
		text   string
		char   int
		want   string
		cursor int
	}{
		{name: "empty", text: "", char: 0, want: "a", cursor: 1},
		{name: "before", text: "b", char: 0, want: "ab", cursor: 1},
		{name: "after", text: "b", char: 1, want: "ba", cursor: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := apply(t, e, docOf(at(0, 0, 0, tc.char), oneLine(tc.text)), TypeCharacter{Char: "a"})
			wantContent(t, d, oneLine(tc.want))
			wantCursor(t, d, at(0, 0, 0, tc.cursor))
		})
	}
}

func TestTypeCharacter_CountsGraphemeClusters(t *testing.T) {
	e := NewEngine()
	d := apply(t, e, docOf(at(0, 0, 0, 1), oneLine("ab")), TypeCharacter{Char: "é"})
	wantContent(t, d, oneLine("aéb"))
	wantCursor(t, d, at(0, 0, 0, 2))
}

func TestTypeCharacter_RejectsMarkThatJoinsNeighbour(t *testing.T) {
	e := NewEngine()
	for _, tc := range []struct {
		name string
		text string
		char int
		in   string
	}{
		{name: "after base", text: "e", char: 1, in: "\u0301"},
		{name: "before mark", text: "\u0301", char: 0, in: "e"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d := docOf(at(0, 0, 0, tc.char), oneLine(tc.text))
			out, err := e.Apply(d, TypeCharacter{Char: tc.in})
			if !errors.Is(err, ErrInvalidCommand) {
				t.Fatalf("err=%v, want ErrInvalidCommand", err)
			}
			wantContent(t, out, oneLine(tc.text))
			wantCursor(t, out, at(0, 0, 0, tc.char))
		})
	}
}

func TestTypeCharacterThenBackspace_RestoresChunk(t *testing.T) {
	e := NewEngine()
	for _, char := range []string{"a", "é", "e\u0301", "\U0001F44D\U0001F3FD", nbsp} {
		start := docOf(at(0, 0, 0, 1), oneLine("xy"))
		d := apply(t, e, start, TypeCharacter{Char: char})
		wantCursor(t, d, at(0, 0, 0, 2))
		d = apply(t, e, d, PressKey{Key: KeyBackspace})
		wantContent(t, d, oneLine("xy"))
		wantCursor(t, d, at(0, 0, 0, 1))
	}
}

func TestBackspace_WithinChunk(t *testing.T) {
	e := NewEngine()
	cases := []struct {
		name       string
		text       string
		char       int
		want       string
		wantCursor int
	}{
		{name: "empty document", text: "", char: 0, want: "", wantCursor: 0},
		{name: "start of chunk", text: "a", char: 0, want: "a", wantCursor: 0},
		{name: "only character", text: "a", char: 1, want: "", wantCursor: 0},
		{name: "middle", text: "abc", char: 2, want: "ac", wantCursor: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := apply(t, e, docOf(at(0, 0, 0, tc.char), oneLine(tc.text)), PressKey{Key: KeyBackspace})
			wantContent(t, d, oneLine(tc.want))
			wantCursor(t, d, at(0, 0, 0, tc.wantCursor))
		})
	}
}

func TestBackspace_AtDocumentStartIsNoop(t *testing.T) {
	e := NewEngine()
	before := docOf(at(0, 0, 0, 0), oneLine("abc"), oneLine("def"))
	after, err := e.Apply(before, PressKey{Key: KeyBackspace})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if after.Version != before.Version {
		t.Fatalf("version=%d, want %d", after.Version, before.Version)
	}
	wantContent(t, after, oneLine("abc"), oneLine("def"))
}

func TestBackspace_MergesEqualStyledChunks(t *testing.T) {
	d := docOf(at(0, 0, 1, 0), oneLine("ab", "cd"))
	d = apply(t, NewEngine(), d, PressKey{Key: KeyBackspace})
	wantContent(t, d, oneLine("acd"))
	wantCursor(t, d, at(0, 0, 0, 1))
}

func TestBackspace_StepsAcrossDifferentlyStyledChunks(t *testing.T) {
	d := docOf(at(0, 0, 1, 0), oneLine("ab", "cd"))
	d.Style = Overlay{key(0, 0, 1): bold()}
	d = apply(t, NewEngine(), d, PressKey{Key: KeyBackspace})
	wantContent(t, d, oneLine("a", "cd"))
	wantCursor(t, d, at(0, 0, 0, 1))
	if !d.StyleAt(at(0, 0, 1, 0)).Bool("bold") {
		t.Fatalf("expected second chunk to stay bold")
	}
}

func TestBackspace_RemovesEmptiedChunk(t *testing.T) {
	d := docOf(at(0, 0, 1, 1), oneLine("a", "b", "c"))
	d.Style = Overlay{key(0, 0, 1): bold(), key(0, 0, 2): {"italic": true}}
	d = apply(t, NewEngine(), d, PressKey{Key: KeyBackspace})
	wantContent(t, d, oneLine("a", "c"))
	wantCursor(t, d, at(0, 0, 0, 1))
	if len(d.Style) != 1 || !d.StyleAt(at(0, 0, 1, 0)).Bool("italic") {
		t.Fatalf("style=%v, want italic on chunk 1 only", d.Style)
	}
}

func TestBackspace_MergesSoftLinesAndDeletes(t *testing.T) {
	d := docOf(at(0, 1, 0, 0), para(line("ab"), line("cd")))
	d = apply(t, NewEngine(), d, PressKey{Key: KeyBackspace})
	wantContent(t, d, oneLine("acd"))
	wantCursor(t, d, at(0, 0, 0, 1))
}

func TestBackspace_BlankSoftLineIsRemoved(t *testing.T) {
	d := docOf(at(0, 1, 0, 0), para(line("ab"), line(""), line("cd")))
	d = apply(t, NewEngine(), d, PressKey{Key: KeyBackspace})
	wantContent(t, d, para(line("ab"), line("cd")))
	wantCursor(t, d, at(0, 0, 0, 2))
}

func TestBackspace_MergesParagraphs(t *testing.T) {
	d := docOf(at(1, 0, 0, 0), oneLine("ab"), oneLine("cd"), oneLine("ef"))
	d.Style = Overlay{key(2, 0, 0): bold()}
	d.Selection = &Selection{Start: at(1, 0, 0, 1), End: at(2, 0, 0, 1)}

	d = apply(t, NewEngine(), d, PressKey{Key: KeyBackspace})
	wantContent(t, d, oneLine("abcd"), oneLine("ef"))
	wantCursor(t, d, at(0, 0, 0, 2))
	if !d.StyleAt(at(1, 0, 0, 0)).Bool("bold") || len(d.Style) != 1 {
		t.Fatalf("style=%v, want bold on the last paragraph", d.Style)
	}
	if want := (Selection{Start: at(0, 0, 0, 3), End: at(1, 0, 0, 1)}); *d.Selection != want {
		t.Fatalf("selection=%v, want %v", *d.Selection, want)
	}
}

func TestBackspace_KeepsStyleBoundaryOnParagraphMerge(t *testing.T) {
	d := docOf(at(1, 0, 0, 0), oneLine("ab"), oneLine("cd"))
	d.Style = Overlay{key(1, 0, 0): bold()}
	d = apply(t, NewEngine(), d, PressKey{Key: KeyBackspace})
	wantContent(t, d, oneLine("ab", "cd"))
	wantCursor(t, d, at(0, 0, 0, 2))
	if !d.StyleAt(at(0, 0, 1, 0)).Bool("bold") {
		t.Fatalf("style=%v, want bold on chunk 1", d.Style)
	}
}

func TestBackspace_MergesIntoMultiLineParagraph(t *testing.T) {
	d := docOf(at(1, 0, 0, 0),
		para(line("p1line1"), line("p1line2chunk1", "p1line2chunk2")),
		para(line("para2"), line("more")),
	)
	d.Style = Overlay{key(0, 1, 1): bold()}
	d = apply(t, NewEngine(), d, PressKey{Key: KeyBackspace})
	wantContent(t, d, para(line("p1line1"), line("p1line2chunk1", "p1line2chunk2", "para2"), line("more")))
	wantCursor(t, d, at(0, 1, 1, 13))
}

func TestBackspace_RemovesBlankParagraph(t *testing.T) {
	d := docOf(at(1, 0, 0, 0), oneLine("foo"), oneLine(""))
	d = apply(t, NewEngine(), d, PressKey{Key: KeyBackspace})
	wantContent(t, d, oneLine("foo"))
	wantCursor(t, d, at(0, 0, 0, 3))
}

func TestEnter_SplitsParagraph(t *testing.T) {
	e := NewEngine()
	cases := []struct {
		name   string
		in     []Paragraph
		cursor Path
		want   []Paragraph
	}{
		{
			name:   "empty",
			in:     []Paragraph{oneLine("")},
			cursor: at(0, 0, 0, 0),
			want:   []Paragraph{oneLine(""), oneLine("")},
		},
		{
			name:   "end of text",
			in:     []Paragraph{oneLine("foo")},
			cursor: at(0, 0, 0, 3),
			want:   []Paragraph{oneLine("foo"), oneLine("")},
		},
		{
			name:   "middle of chunk",
			in:     []Paragraph{oneLine("catfish")},
			cursor: at(0, 0, 0, 3),
			want:   []Paragraph{oneLine("cat"), oneLine("fish")},
		},
		{
			name:   "later chunks follow",
			in:     []Paragraph{oneLine("Good ", "morning", " Vietnam")},
			cursor: at(0, 0, 1, 3),
			want:   []Paragraph{oneLine("Good ", "mor"), oneLine("ning", " Vietnam")},
		},
		{
			name:   "start of later chunk",
			in:     []Paragraph{oneLine("ab", "cd")},
			cursor: at(0, 0, 1, 0),
			want:   []Paragraph{oneLine("ab"), oneLine("cd")},
		},
		{
			name:   "later lines follow",
			in:     []Paragraph{para(line("ab"), line("cd"))},
			cursor: at(0, 0, 0, 1),
			want:   []Paragraph{oneLine("a"), para(line("b"), line("cd"))},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := apply(t, e, docOf(tc.cursor, tc.in...), PressKey{Key: KeyEnter})
			wantContent(t, d, tc.want...)
			wantCursor(t, d, at(1, 0, 0, 0))
		})
	}
}

func TestEnter_CopiesStyleToBothHalves(t *testing.T) {
	d := docOf(at(0, 0, 0, 2), oneLine("bold"), oneLine("next"))
	d.Style = Overlay{key(0, 0, 0): bold(), key(1, 0, 0): {"italic": true}}
	d = apply(t, NewEngine(), d, PressKey{Key: KeyEnter})
	wantContent(t, d, oneLine("bo"), oneLine("ld"), oneLine("next"))
	for _, k := range []ChunkKey{key(0, 0, 0), key(1, 0, 0)} {
		if !d.Style.At(k).Bool("bold") {
			t.Fatalf("style at %v=%v, want bold", k, d.Style.At(k))
		}
	}
	if !d.Style.At(key(2, 0, 0)).Bool("italic") {
		t.Fatalf("style=%v, want italic moved to paragraph 2", d.Style)
	}
}

func TestEnterThenBackspace_RestoresParagraph(t *testing.T) {
	e := NewEngine()
	cases := []struct {
		name   string
		in     Paragraph
		cursor Path
	}{
		{name: "middle", in: oneLine("catfish"), cursor: at(0, 0, 0, 3)},
		{name: "end", in: oneLine("foo"), cursor: at(0, 0, 0, 3)},
		{name: "chunks", in: oneLine("Good ", "morning", " Vietnam"), cursor: at(0, 0, 1, 3)},
		{name: "lines", in: para(line("ab"), line("cd")), cursor: at(0, 0, 0, 1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start := docOf(tc.cursor, tc.in)
			d := apply(t, e, start, PressKey{Key: KeyEnter}, PressKey{Key: KeyBackspace})
			if got, want := d.Content.Paragraph(at(0, 0, 0, 0)).Text(), tc.in.Text(); got != want {
				t.Fatalf("text=%q, want %q", got, want)
			}
			wantContent(t, d, tc.in)
			wantCursor(t, d, tc.cursor)
		})
	}
}

func TestTypeThenBackspace_RestoresDocument(t *testing.T) {
	e := NewEngine()
	start := docOf(at(0, 0, 1, 2), oneLine("ab", "cde"))
	d := apply(t, e, start, TypeCharacter{Char: "x"}, PressKey{Key: KeyBackspace})
	wantContent(t, d, oneLine("ab", "cde"))
	wantCursor(t, d, start.Cursor)
}

func TestEdits_LeaveInputSnapshotUntouched(t *testing.T) {
	e := NewEngine()
	start := docOf(at(0, 0, 0, 3), oneLine("catfish"), oneLine("tail"))
	start.Style = Overlay{key(1, 0, 0): bold()}
	apply(t, e, start,
		PressKey{Key: KeyEnter},
		TypeText{Text: "xyz"},
		PressKey{Key: KeyBackspace},
		PressKey{Key: KeyBackspace},
	)
	wantContent(t, start, oneLine("catfish"), oneLine("tail"))
	if len(start.Style) != 1 || !start.Style.At(key(1, 0, 0)).Bool("bold") {
		t.Fatalf("input style changed: %v", start.Style)
	}
	wantCursor(t, start, at(0, 0, 0, 3))
}
