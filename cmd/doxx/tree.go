package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"

	"github.com/iw2rmb/doxx/document"
	"github.com/iw2rmb/doxx/internal/grapheme"
)

// treePrinter writes a snapshot as an indented content tree:
//
//	v6 cursor [0 0 1 0 0 1]
//	¶ 0/0/0
//	  │ [The·quick·][brown]{bold}
//
// Chunks are bracketed, typed spaces show as "·" and the cursor as "|".
type treePrinter struct {
	w io.Writer

	paragraph func(a ...any) string
	bracket   func(a ...any) string
	styled    func(a ...any) string
	caret     func(a ...any) string
}

func newTreePrinter(w io.Writer, colored bool) *treePrinter {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return &treePrinter{
		w:         w,
		paragraph: mk(color.FgBlue, color.Bold),
		bracket:   mk(color.FgHiBlack),
		styled:    mk(color.FgYellow),
		caret:     mk(color.FgMagenta, color.Bold),
	}
}

func (tp *treePrinter) print(d document.Document) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "v%d cursor %s", d.Version, d.Cursor)
	if s, ok := d.SelectionRange(); ok {
		fmt.Fprintf(&sb, " selection %s..%s", s.Start, s.End)
	}
	sb.WriteByte('\n')
	for pi, page := range d.Content {
		for ci, col := range page {
			for p, para := range col {
				fmt.Fprintf(&sb, "%s %d/%d/%d\n", tp.paragraph("¶"), pi, ci, p)
				for l, line := range para {
					sb.WriteString("  │ ")
					for c, text := range line {
						at := document.Path{Page: pi, Column: ci, Paragraph: p, Line: l, Chunk: c}
						sb.WriteString(tp.chunk(d, at, text))
					}
					sb.WriteByte('\n')
				}
			}
		}
	}
	_, err := io.WriteString(tp.w, sb.String())
	return err
}

func (tp *treePrinter) chunk(d document.Document, at document.Path, text string) string {
	style := d.StyleAt(at)
	paint := func(s string) string {
		s = strings.ReplaceAll(s, grapheme.NoBreakSpace, "·")
		if len(style) > 0 && s != "" {
			return tp.styled(s)
		}
		return s
	}

	body := paint(text)
	if d.Cursor.Key() == at.Key() {
		head, tail := grapheme.Cut(text, d.Cursor.Char)
		body = paint(head) + tp.caret("|") + paint(tail)
	}
	out := tp.bracket("[") + body + tp.bracket("]")
	if len(style) > 0 {
		out += tp.bracket(styleString(style))
	}
	return out
}

// styleString renders s as {bold,size=12} with keys sorted. True flags show
// by name; false flags are omitted.
func styleString(s document.Style) string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		switch v := s[k].(type) {
		case bool:
			if v {
				parts = append(parts, k)
			}
		default:
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
	}
	return "{" + strings.Join(parts, ",") + "}"
}
