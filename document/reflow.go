package document

import (
	"fmt"

	"github.com/iw2rmb/doxx/internal/grapheme"
)

// Extent is the horizontal span of one rendered chunk, in the same unit as
// the column width.
type Extent struct {
	Left  float64 `json:"left" yaml:"left"`
	Right float64 `json:"right" yaml:"right"`
}

// reflowLine performs one step of reflow for the line at p: it pushes the
// overflowing tail of the line onto the next line, or pulls the first chunk
// of the next line up when it fits. It reports whether anything moved.
func reflowLine(d Document, p Path, dims []Extent, width float64, m Measurer) (Document, bool, error) {
	p = p.Prefix(LevelLine)
	line := d.Content.Line(p)
	if len(dims) != len(line) {
		return d, false, fmt.Errorf("%w: %d extents for %d chunks", ErrDimsMismatch, len(dims), len(line))
	}
	if dims[len(dims)-1].Right > width {
		out, ok := overflowLine(d, p, dims, width, m)
		return out, ok, nil
	}
	out, ok := joinNextLine(d, p, dims[len(dims)-1].Right, width, m)
	return out, ok, nil
}

// breakLength returns how many leading clusters of text fit in budget when
// the line may only break at the end of text or next to a break cluster.
// With force the longest fitting prefix is used when no break point fits,
// and at least one cluster is taken.
func breakLength(text string, budget float64, m Measurer, force bool) int {
	clusters := grapheme.Split(text)
	fits := func(k int) bool {
		return m.Measure(grapheme.Slice(text, 0, k)) < budget
	}
	for k := len(clusters); k > 0; k-- {
		atBreak := k == len(clusters) || grapheme.IsBreak(clusters[k-1]) || grapheme.IsBreak(clusters[k])
		if atBreak && fits(k) {
			return k
		}
	}
	if !force {
		return 0
	}
	for k := len(clusters) - 1; k > 1; k-- {
		if fits(k) {
			return k
		}
	}
	return min(1, len(clusters))
}

func overflowLine(d Document, p Path, dims []Extent, width float64, m Measurer) (Document, bool) {
	para := d.Content.Paragraph(p)
	line := para[p.Line]

	c := 0
	for dims[c].Right <= width {
		c++
	}
	text := line[c]
	n := breakLength(text, width-dims[c].Left, m, c == 0)
	head, tail := grapheme.Cut(text, n)

	kept := append(Line{}, line[:c]...)
	if head != "" {
		kept = append(kept, head)
	}
	var moved Line
	if tail != "" {
		moved = append(moved, tail)
	}
	moved = append(moved, line[c+1:]...)
	if len(moved) == 0 {
		return d, false
	}
	movedBase := c + 1
	if tail != "" {
		movedBase = c
	}

	next := p.Line + 1
	hasNext := next < len(para)
	replaceNext := hasNext && para[next].IsBlank()
	var nextLine Line
	switch {
	case !hasNext || replaceNext:
		nextLine = moved
	default:
		nextLine = splice(para[next], 0, 0, moved...)
	}

	out := splice(para, p.Line, p.Line+1, kept)
	if hasNext {
		out[next] = nextLine
	} else {
		out = append(out, nextLine)
	}

	var copies [][2]ChunkKey
	if head != "" && tail != "" {
		copies = append(copies, [2]ChunkKey{
			p.JumpTo(c, 0).Key(),
			p.JumpTo(next, 0, 0).Key(),
		})
	}
	var drop []ChunkKey
	if replaceNext {
		drop = append(drop, p.JumpTo(next, 0, 0).Key())
	}
	lastMoved := len(moved) - 1
	movedEnd := grapheme.Count(moved[lastMoved])

	return d.relocate(d.Content.withParagraph(p, out), relocation{
		move: func(q Path) Path {
			if !q.HasPrefix(p, LevelParagraph) {
				return q
			}
			switch {
			case q.Line == next && replaceNext:
				return q.JumpTo(next, lastMoved, movedEnd)
			case q.Line == next:
				q.Chunk += len(moved)
				return q
			case q.Line != p.Line || q.Chunk < c:
				return q
			case q.Chunk == c && (q.Char < n || tail == ""):
				return q
			case q.Chunk == c:
				return q.JumpTo(next, 0, q.Char-n)
			default:
				return q.JumpTo(next, q.Chunk-movedBase, q.Char)
			}
		},
		drop:   drop,
		copies: copies,
	}), true
}

// joinNextLine moves the first chunk of the line after p onto the end of p
// when the leading word of that chunk fits after right. A blank next line is
// removed outright, as is a next line left empty by the join.
func joinNextLine(d Document, p Path, right, width float64, m Measurer) (Document, bool) {
	para := d.Content.Paragraph(p)
	next := p.Line + 1
	if next >= len(para) {
		return d, false
	}
	line := para[p.Line]
	endChunk, endChar := lineEnd(line)

	if para[next].IsBlank() {
		return d.relocate(d.Content.withParagraph(p, splice(para, next, next+1)), relocation{
			move: func(q Path) Path {
				if !q.HasPrefix(p, LevelParagraph) || q.Line < next {
					return q
				}
				if q.Line == next {
					return q.JumpTo(p.Line, endChunk, endChar)
				}
				q.Line--
				return q
			},
			drop: []ChunkKey{p.JumpTo(next, 0, 0).Key()},
		}), true
	}

	first := para[next][0]
	if right+m.Measure(grapheme.First(first)) >= width {
		return d, false
	}

	j := joinLines(line, Line{first}, false)
	rest := para[next][1:]
	removeNext := len(rest) == 0

	out := splice(para, p.Line, p.Line+1, j.line)
	if removeNext {
		out = splice(out, next, next+1)
	} else {
		out[next] = rest
	}

	var drop []ChunkKey
	if j.dropFirst {
		drop = append(drop, p.Key())
	}
	return d.relocate(d.Content.withParagraph(p, out), relocation{
		move: func(q Path) Path {
			if !q.HasPrefix(p, LevelParagraph) || q.Line < p.Line {
				return q
			}
			switch {
			case q.Line == p.Line && j.dropFirst:
				return q.JumpTo(p.Line, 0, 0)
			case q.Line == p.Line:
				return q
			case q.Line == next && q.Chunk == 0:
				chunk, char := j.place(0, q.Char)
				return q.JumpTo(p.Line, chunk, char)
			case q.Line == next:
				q.Chunk--
				return q
			case removeNext:
				q.Line--
				return q
			default:
				return q
			}
		},
		drop: drop,
	}), true
}

// lineEnd returns the position after the last character of l.
func lineEnd(l Line) (chunk, char int) {
	last := len(l) - 1
	return last, grapheme.Count(l[last])
}
