package document

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

type bogusCommand struct{}

func (bogusCommand) Kind() CommandKind { return "BOGUS" }

func TestEngine_ConcreteScenarios(t *testing.T) {
	e := NewEngine()

	d := apply(t, e, New(), TypeCharacter{Char: "a"})
	wantContent(t, d, oneLine("a"))
	wantCursor(t, d, at(0, 0, 0, 1))

	d = apply(t, e, docOf(at(0, 0, 0, 3), oneLine("catfish")), PressKey{Key: KeyEnter})
	wantContent(t, d, oneLine("cat"), oneLine("fish"))
	wantCursor(t, d, at(1, 0, 0, 0))

	d = apply(t, e, docOf(at(0, 0, 1, 0), oneLine("chunk1", "chunk2")), PressKey{Key: KeyLeft})
	wantCursor(t, d, at(0, 0, 0, 6))

	d = apply(t, e, docOf(at(0, 0, 0, 0), oneLine("Good morning Vietnam")),
		MakeSelection{Selection: Selection{Start: at(0, 0, 0, 5), End: at(0, 0, 0, 12)}},
		ApplyStyle{Style: bold()},
	)
	wantContent(t, d, oneLine("Good ", "morning", " Vietnam"))
	if !d.StyleAt(at(0, 0, 1, 0)).Bool("bold") {
		t.Fatalf("style=%v, want chunk 1 bold", d.Style)
	}
}

func TestEngine_VersionsEffectiveCommandsOnly(t *testing.T) {
	e := NewEngine()
	d := New()
	d = apply(t, e, d, TypeText{Text: "ab"})
	if d.Version != 1 {
		t.Fatalf("version=%d, want 1", d.Version)
	}
	d = apply(t, e, d, PressKey{Key: KeyRight})
	if d.Version != 1 {
		t.Fatalf("version=%d, want 1 after move at end", d.Version)
	}
	d = apply(t, e, d, PressKey{Key: KeyLeft}, PressKey{Key: KeyUp}, PressKey{Key: KeyTab})
	if d.Version != 2 {
		t.Fatalf("version=%d, want 2", d.Version)
	}
	d = apply(t, e, d, TypeText{})
	if d.Version != 2 {
		t.Fatalf("version=%d, want 2 after empty text", d.Version)
	}
}

func TestEngine_TypeTextSplitsAtLineBreaks(t *testing.T) {
	d := apply(t, NewEngine(), New(), TypeText{Text: "ab\r\ncd\ref"})
	wantContent(t, d, oneLine("ab"), oneLine("cd"), oneLine("ef"))
	wantCursor(t, d, at(2, 0, 0, 2))

	d = apply(t, NewEngine(), New(), TypeCharacter{Char: "\n"})
	wantContent(t, d, oneLine(""), oneLine(""))
}

func TestEngine_SetCursorClamps(t *testing.T) {
	e := NewEngine()
	d := docOf(at(0, 0, 0, 0), oneLine("abc"), oneLine("de"))
	d = apply(t, e, d, SetCursor{Path: at(1, 0, 0, 99)})
	wantCursor(t, d, at(1, 0, 0, 2))
	d = apply(t, e, d, SetCursor{Path: Path{Page: 3, Paragraph: 9}})
	wantCursor(t, d, at(1, 0, 0, 0))
}

func TestEngine_MakeSelectionClampsAndKeepsOrder(t *testing.T) {
	e := NewEngine()
	d := docOf(at(0, 0, 0, 0), oneLine("abc"))
	d = apply(t, e, d, MakeSelection{Selection: Selection{Start: at(0, 0, 0, 9), End: at(0, 0, 0, 1)}})
	if want := (Selection{Start: at(0, 0, 0, 3), End: at(0, 0, 0, 1)}); *d.Selection != want {
		t.Fatalf("selection=%v, want %v", *d.Selection, want)
	}
	v := d.Version
	d = apply(t, e, d, MakeSelection{Selection: *d.Selection})
	if d.Version != v {
		t.Fatalf("expected same selection to be a no-op")
	}
	d = apply(t, e, d, ClearSelection{})
	if d.Selection != nil {
		t.Fatalf("expected selection cleared")
	}
}

func TestEngine_Errors(t *testing.T) {
	e := NewEngine()
	d := New()

	out, err := e.Apply(d, TypeCharacter{Char: "ab"})
	if !errors.Is(err, ErrInvalidCommand) {
		t.Fatalf("err=%v, want ErrInvalidCommand", err)
	}
	if out.Version != d.Version {
		t.Fatalf("expected input snapshot back on error")
	}

	if _, err := e.Apply(d, bogusCommand{}); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("err=%v, want ErrUnknownCommand", err)
	}
	if _, err := e.Apply(d, nil); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("err=%v, want ErrUnknownCommand", err)
	}
}

func TestEngine_LogsNoops(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := NewEngine(WithLogger(logger))

	apply(t, e, New(), PressKey{Key: KeyBackspace})
	out := buf.String()
	if !strings.Contains(out, "status=no-more-chunks") {
		t.Fatalf("log=%q, want backspace status", out)
	}
	if !strings.Contains(out, "kind=PRESS_KEY") {
		t.Fatalf("log=%q, want command kind", out)
	}
}

func TestEngine_Options(t *testing.T) {
	e := NewEngine(WithColumnWidth(-1))
	if e.ColumnWidth() != DefaultColumnWidth {
		t.Fatalf("width=%v, want default", e.ColumnWidth())
	}
	if e.Measurer() != nil {
		t.Fatalf("expected no measurer by default")
	}
	e = NewEngine(WithColumnWidth(42), WithMeasurer(cells))
	if e.ColumnWidth() != 42 || e.Measurer() == nil {
		t.Fatalf("options not applied")
	}
}

func TestMeasureLine_LaysOutChunks(t *testing.T) {
	got := MeasureLine(cells, line("ab", "", "cde"))
	want := []Extent{{0, 2}, {2, 2}, {2, 5}}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("extent %d=%v, want %v", i, got[i], want[i])
		}
	}
}

func TestNewChange_SeparatesTextFromStructure(t *testing.T) {
	styled := docOf(at(0, 0, 0, 0), oneLine("Good morning"))
	styled.Selection = &Selection{Start: at(0, 0, 0, 5), End: at(0, 0, 0, 12)}
	reflowed := docOf(at(0, 0, 0, 0), oneLine("Good"+nbsp+"morning"+nbsp+"Vietnam"))

	cases := []struct {
		name                             string
		e                                *Engine
		before                           Document
		cmd                              Command
		wantText, wantContent, wantStyle bool
	}{
		{name: "style splits a chunk", e: NewEngine(), before: styled, cmd: ApplyStyle{Style: bold()},
			wantContent: true, wantStyle: true},
		{name: "reflow moves a line break", e: reflowEngine(), before: reflowed, cmd: ReflowLine{},
			wantContent: true},
		{name: "typing", e: NewEngine(), before: styled, cmd: TypeCharacter{Char: "x"},
			wantText: true, wantContent: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			after := apply(t, tc.e, tc.before, tc.cmd)
			ch, ok := NewChange(ChangeSourceLocal, tc.cmd.Kind(), tc.before, after)
			if !ok {
				t.Fatalf("expected change")
			}
			if ch.TextChanged != tc.wantText || ch.ContentChanged != tc.wantContent || ch.StyleChanged != tc.wantStyle {
				t.Fatalf("text=%v content=%v style=%v, want %v/%v/%v",
					ch.TextChanged, ch.ContentChanged, ch.StyleChanged, tc.wantText, tc.wantContent, tc.wantStyle)
			}
		})
	}
}

func TestNewChange_DescribesEffectiveCommand(t *testing.T) {
	e := NewEngine()
	before := docOf(at(0, 0, 0, 3), oneLine("catfish"))
	after := apply(t, e, before, PressKey{Key: KeyEnter})

	ch, ok := NewChange(ChangeSourceLocal, KindPressKey, before, after)
	if !ok {
		t.Fatalf("expected change")
	}
	if ch.VersionBefore != 0 || ch.VersionAfter != 1 {
		t.Fatalf("versions=%d->%d, want 0->1", ch.VersionBefore, ch.VersionAfter)
	}
	if ch.CursorAfter != at(1, 0, 0, 0) || !ch.TextChanged || ch.StyleChanged {
		t.Fatalf("change=%+v", ch)
	}
	if _, ok := NewChange(ChangeSourceLocal, KindPressKey, after, after); ok {
		t.Fatalf("expected no change for identical snapshots")
	}
}
