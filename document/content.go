package document

import (
	"slices"
	"strings"

	"github.com/iw2rmb/doxx/internal/grapheme"
)

// Line is an ordered run of chunks. A chunk is plain text sharing one style.
type Line []string

// Paragraph is an ordered list of soft-wrapped lines.
type Paragraph []Line

// Column is an ordered list of paragraphs.
type Column []Paragraph

// Page is an ordered list of columns.
type Page []Column

// Content is the page → column → paragraph → line → chunk tree.
//
// Content values are never mutated in place. Updates copy the spine from the
// root down to the edited node and share every other subtree.
type Content []Page

// NewContent returns the degenerate tree: one empty chunk.
func NewContent() Content {
	return Content{Page{Column{Paragraph{Line{""}}}}}
}

// ContentOf builds a single page, single column tree from paragraphs.
func ContentOf(paragraphs ...Paragraph) Content {
	if len(paragraphs) == 0 {
		return NewContent()
	}
	return Content{Page{Column(paragraphs)}}
}

func (l Line) Text() string {
	return strings.Join(l, "")
}

// IsBlank reports whether the line is the single empty chunk.
func (l Line) IsBlank() bool {
	return len(l) == 1 && l[0] == ""
}

func (p Paragraph) Text() string {
	var sb strings.Builder
	for _, l := range p {
		sb.WriteString(l.Text())
	}
	return sb.String()
}

func (c Content) Page(p Path) Page { return c[p.Page] }
func (c Content) Column(p Path) Column { return c[p.Page][p.Column] }
func (c Content) Paragraph(p Path) Paragraph { return c[p.Page][p.Column][p.Paragraph] }
func (c Content) Line(p Path) Line { return c[p.Page][p.Column][p.Paragraph][p.Line] }
func (c Content) Chunk(p Path) string { return c[p.Page][p.Column][p.Paragraph][p.Line][p.Chunk] }

// Text concatenates every chunk, separating paragraphs with "\n".
func (c Content) Text() string {
	var parts []string
	for _, page := range c {
		for _, col := range page {
			for _, para := range col {
				parts = append(parts, para.Text())
			}
		}
	}
	return strings.Join(parts, "\n")
}

// Count returns how many siblings exist at level l under the ancestor of p.
// For LevelChar it is the grapheme length of the chunk at p.
func (c Content) Count(p Path, l Level) int {
	switch l {
	case LevelPage:
		return len(c)
	case LevelColumn:
		return len(c.Page(p))
	case LevelParagraph:
		return len(c.Column(p))
	case LevelLine:
		return len(c.Paragraph(p))
	case LevelChunk:
		return len(c.Line(p))
	case LevelChar:
		return grapheme.Count(c.Chunk(p))
	default:
		return 0
	}
}

// Valid reports whether every component of p addresses an existing node.
func (c Content) Valid(p Path) bool {
	for l := LevelPage; l <= LevelChar; l++ {
		v := p.At(l)
		if v < 0 {
			return false
		}
		n := c.Count(p, l)
		if l == LevelChar {
			return v <= n
		}
		if v >= n {
			return false
		}
	}
	return true
}

// Clamp moves each component of p into bounds, outermost first.
func (c Content) Clamp(p Path) Path {
	for l := LevelPage; l <= LevelChar; l++ {
		hi := c.Count(p, l)
		if l != LevelChar {
			hi--
		}
		p = p.Set(l, clampInt(p.At(l), 0, hi))
	}
	return p
}

// TextIn returns the text between the endpoints of s in document order, with
// "\n" between paragraphs.
func (c Content) TextIn(s Selection) string {
	s = s.Normalize()
	var sb strings.Builder
	prev := Path{Page: -1}
	c.walkChunks(s.Start, s.End, func(k ChunkKey) {
		p := k.Path()
		if prev.Page >= 0 && !p.HasPrefix(prev, LevelParagraph) {
			sb.WriteByte('\n')
		}
		prev = p
		text := c.Chunk(p)
		from, to := 0, grapheme.Count(text)
		if k == s.Start.Key() {
			from = s.Start.Char
		}
		if k == s.End.Key() {
			to = s.End.Char
		}
		sb.WriteString(grapheme.Slice(text, from, to))
	})
	return sb.String()
}

func (c Content) withPage(p Path, page Page) Content {
	out := slices.Clone(c)
	out[p.Page] = page
	return out
}

func (c Content) withColumn(p Path, col Column) Content {
	page := slices.Clone(c.Page(p))
	page[p.Column] = col
	return c.withPage(p, page)
}

func (c Content) withParagraph(p Path, para Paragraph) Content {
	col := slices.Clone(c.Column(p))
	col[p.Paragraph] = para
	return c.withColumn(p, col)
}

func (c Content) withLine(p Path, line Line) Content {
	para := slices.Clone(c.Paragraph(p))
	para[p.Line] = line
	return c.withParagraph(p, para)
}

func (c Content) withChunk(p Path, text string) Content {
	line := slices.Clone(c.Line(p))
	line[p.Chunk] = text
	return c.withLine(p, line)
}

// splice returns s[:i] + repl + s[j:] as a fresh slice.
func splice[S ~[]E, E any](s S, i, j int, repl ...E) S {
	out := make(S, 0, len(s)-(j-i)+len(repl))
	out = append(out, s[:i]...)
	out = append(out, repl...)
	return append(out, s[j:]...)
}

// lineJoin describes b appended onto a. A blank side is dropped so the
// result never holds an empty chunk next to text. With coalesce the last chunk
// of a and the first chunk of b become one chunk.
type lineJoin struct {
	line       Line
	offset     int // index of b's first chunk in line
	shift      int // char shift of b's first chunk when coalesced
	coalesced  bool
	dropFirst  bool
	dropSecond bool
	endChunk   int // position after the last character of a
	endChar    int
}

func joinLines(a, b Line, coalesce bool) lineJoin {
	switch {
	case a.IsBlank():
		return lineJoin{line: slices.Clone(b), dropFirst: true}
	case b.IsBlank():
		last := len(a) - 1
		w := grapheme.Count(a[last])
		return lineJoin{line: slices.Clone(a), offset: len(a), dropSecond: true, endChunk: last, endChar: w}
	}
	last := len(a) - 1
	w := grapheme.Count(a[last])
	j := lineJoin{offset: len(a), endChunk: last, endChar: w}
	if !coalesce {
		j.line = splice(a, len(a), len(a), b...)
		return j
	}
	j.line = splice(a, last, len(a), a[last]+b[0])
	j.line = append(j.line, b[1:]...)
	j.offset = last
	j.shift = w
	j.coalesced = true
	return j
}

// place maps a (chunk, char) position of b into the joined line.
func (j lineJoin) place(chunk, char int) (int, int) {
	switch {
	case j.dropSecond:
		return j.endChunk, j.endChar
	case chunk == 0 && j.coalesced:
		return j.offset, char + j.shift
	default:
		return j.offset + chunk, char
	}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
