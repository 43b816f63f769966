package document

import (
	"github.com/iw2rmb/doxx/internal/grapheme"
)

// insertText splices text into the chunk under the cursor. The cursor and any
// position at or after it in the same chunk shift past the inserted clusters.
func insertText(d Document, text string) Document {
	at := d.Cursor
	chunk := d.Content.Chunk(at)
	head, tail := grapheme.Cut(chunk, at.Char)
	next := head + text + tail

	delta := grapheme.Count(next) - grapheme.Count(chunk)
	key := at.Key()
	return d.relocate(d.Content.withChunk(at, next), relocation{
		move: func(p Path) Path {
			if p.Key() == key && p.Char >= at.Char {
				p.Char += delta
			}
			return p
		},
	})
}

// addsOneCluster reports whether inserting char at the cursor grows its chunk
// by exactly one grapheme cluster.
func addsOneCluster(d Document, char string) bool {
	if char == "\n" || char == "\r" || char == "\r\n" {
		return true
	}
	chunk := d.Content.Chunk(d.Cursor)
	head, tail := grapheme.Cut(chunk, d.Cursor.Char)
	return grapheme.Count(head+char+tail) == grapheme.Count(chunk)+1
}

// status is the tagged outcome of one level of the backspace recursion.
type status int

const (
	deleted      status = iota // a character or boundary was removed
	noMoreChars                // the cursor sits at the start of its chunk
	noMoreChunks               // nothing precedes the cursor in this subtree
)

func (s status) String() string {
	switch s {
	case deleted:
		return "deleted"
	case noMoreChars:
		return "no-more-chars"
	case noMoreChunks:
		return "no-more-chunks"
	default:
		return "unknown"
	}
}

// backspace deletes the character before the cursor, merging across
// structural boundaries when the cursor sits at the start of one.
func backspace(d Document) (Document, status) {
	return backspaceAt(d, LevelPage)
}

// backspaceAt handles the subtree whose children are indexed by level l.
// It first lets the child under the cursor try; when the child has nothing
// left before the cursor, the child is merged into its previous sibling.
func backspaceAt(d Document, l Level) (Document, status) {
	if l == LevelChar {
		return deleteChar(d)
	}
	next, st := backspaceAt(d, l+1)
	if st == deleted {
		return next, st
	}
	if d.Cursor.At(l) == 0 {
		return d, noMoreChunks
	}
	merged, retry := mergePrevious(d, l)
	if !retry {
		return merged, deleted
	}
	return backspaceAt(merged, l)
}

func deleteChar(d Document) (Document, status) {
	at := d.Cursor
	if at.Char == 0 {
		return d, noMoreChars
	}
	key := at.Key()
	text := grapheme.Remove(d.Content.Chunk(at), at.Char-1)
	line := d.Content.Line(at)

	if text != "" || len(line) == 1 {
		return d.relocate(d.Content.withChunk(at, text), relocation{
			move: func(p Path) Path {
				if p.Key() == key && p.Char >= at.Char {
					p.Char--
				}
				return p
			},
		}), deleted
	}

	// The chunk emptied out next to other chunks: remove it.
	landing := at.JumpTo(0, 0)
	if at.Chunk > 0 {
		landing = at.JumpTo(at.Chunk-1, grapheme.Count(line[at.Chunk-1]))
	}
	content := d.Content.withLine(at, splice(line, at.Chunk, at.Chunk+1))
	return d.relocate(content, relocation{
		move: func(p Path) Path {
			if !p.HasPrefix(at, LevelLine) || p.Chunk < at.Chunk {
				return p
			}
			if p.Chunk == at.Chunk {
				return landing
			}
			p.Chunk--
			return p
		},
		drop: []ChunkKey{key},
	}), deleted
}

// mergePrevious merges the child at index d.Cursor.At(l) into its previous
// sibling. It reports whether the deletion must be retried inside the merged
// region. A paragraph merge removes the paragraph break and a line merge that
// drops a blank line removes that line; both count as the deletion.
func mergePrevious(d Document, l Level) (Document, bool) {
	switch l {
	case LevelChunk:
		return mergeChunk(d), true
	case LevelLine:
		return mergeLine(d)
	case LevelParagraph:
		return mergeParagraph(d), false
	case LevelColumn:
		return mergeColumn(d), true
	default:
		return mergePage(d), true
	}
}

// mergeChunk joins the chunk under the cursor with the previous chunk when
// both carry the same style. Otherwise the chunk boundary stays and the cursor
// steps to the end of the previous chunk.
func mergeChunk(d Document) Document {
	at := d.Cursor
	line := d.Content.Line(at)
	prev, cur := line[at.Chunk-1], line[at.Chunk]
	prevKey := at.WithSuffix(LevelChunk, at.Chunk-1).Key()
	width := grapheme.Count(prev)

	if !d.Style.At(prevKey).Equal(d.Style.At(at.Key())) {
		d.Cursor = at.JumpTo(at.Chunk-1, width)
		return d
	}

	content := d.Content.withLine(at, splice(line, at.Chunk-1, at.Chunk+1, prev+cur))
	return d.relocate(content, relocation{
		move: func(p Path) Path {
			if !p.HasPrefix(at, LevelLine) || p.Chunk < at.Chunk {
				return p
			}
			if p.Chunk == at.Chunk {
				p.Char += width
			}
			p.Chunk--
			return p
		},
		drop: []ChunkKey{at.Key()},
	})
}

// sameBoundaryStyle reports whether the last chunk of line a and the first
// chunk of line b carry the same style.
func sameBoundaryStyle(d Document, a Path, aLen int, b Path) bool {
	ak := a.Prefix(LevelLine).Set(LevelChunk, aLen-1).Key()
	bk := b.Prefix(LevelLine).Key()
	return d.Style.At(ak).Equal(d.Style.At(bk))
}

// joinDrops lists the keys that disappear when the line at b is joined onto
// the line at a.
func joinDrops(j lineJoin, a, b Path) []ChunkKey {
	var drop []ChunkKey
	if j.dropFirst {
		drop = append(drop, a.Prefix(LevelLine).Key())
	}
	if j.dropSecond || j.coalesced {
		drop = append(drop, b.Prefix(LevelLine).Key())
	}
	return drop
}

// mergeLine appends the soft line under the cursor onto the previous line of
// the same paragraph.
func mergeLine(d Document) (Document, bool) {
	at := d.Cursor
	para := d.Content.Paragraph(at)
	prevAt := at.WithSuffix(LevelLine, at.Line-1)
	prev := para[at.Line-1]
	j := joinLines(prev, para[at.Line], sameBoundaryStyle(d, prevAt, len(prev), at))

	content := d.Content.withParagraph(at, splice(para, at.Line-1, at.Line+1, j.line))
	out := d.relocate(content, relocation{
		move: func(p Path) Path {
			if !p.HasPrefix(at, LevelParagraph) {
				return p
			}
			switch {
			case p.Line == at.Line-1 && j.dropFirst:
				return p.JumpTo(at.Line-1, 0, 0)
			case p.Line < at.Line:
				return p
			case p.Line == at.Line:
				chunk, char := j.place(p.Chunk, p.Char)
				return p.JumpTo(at.Line-1, chunk, char)
			default:
				p.Line--
				return p
			}
		},
		drop: joinDrops(j, prevAt, at),
	})
	return out, !j.dropFirst && !j.dropSecond
}

// mergeParagraph joins the paragraph under the cursor onto the previous one:
// its first line continues the previous paragraph's last line and its other
// lines follow. The cursor lands on the join point.
func mergeParagraph(d Document) Document {
	at := d.Cursor
	col := d.Content.Column(at)
	prev, cur := col[at.Paragraph-1], col[at.Paragraph]
	last := len(prev) - 1
	lastAt := at.WithSuffix(LevelParagraph, at.Paragraph-1).JumpTo(last, 0, 0)
	firstAt := at.WithSuffix(LevelParagraph, at.Paragraph)
	j := joinLines(prev[last], cur[0], sameBoundaryStyle(d, lastAt, len(prev[last]), firstAt))

	merged := make(Paragraph, 0, len(prev)+len(cur)-1)
	merged = append(merged, prev[:last]...)
	merged = append(merged, j.line)
	merged = append(merged, cur[1:]...)

	content := d.Content.withColumn(at, splice(col, at.Paragraph-1, at.Paragraph+1, merged))
	joinPoint := lastAt.JumpTo(j.endChunk, j.endChar)
	out := d.relocate(content, relocation{
		move: func(p Path) Path {
			if !p.HasPrefix(at, LevelColumn) || p.Paragraph < at.Paragraph-1 {
				return p
			}
			switch {
			case p.Paragraph == at.Paragraph-1:
				if p.Line == last && j.dropFirst {
					return p.JumpTo(last, 0, 0)
				}
				return p
			case p.Paragraph > at.Paragraph:
				p.Paragraph--
				return p
			case p.Line > 0:
				return p.JumpTo(at.Paragraph-1, last+p.Line, p.Chunk, p.Char)
			default:
				chunk, char := j.place(p.Chunk, p.Char)
				return p.JumpTo(at.Paragraph-1, last, chunk, char)
			}
		},
		drop: joinDrops(j, lastAt, firstAt),
	})
	out.Cursor = joinPoint
	return out
}

// mergeColumn appends the paragraphs of the column under the cursor to the
// previous column of the page.
func mergeColumn(d Document) Document {
	at := d.Cursor
	page := d.Content.Page(at)
	prev, cur := page[at.Column-1], page[at.Column]
	shift := len(prev)

	merged := make(Column, 0, len(prev)+len(cur))
	merged = append(append(merged, prev...), cur...)
	content := d.Content.withPage(at, splice(page, at.Column-1, at.Column+1, merged))
	return d.relocate(content, relocation{
		move: func(p Path) Path {
			if p.Page != at.Page || p.Column < at.Column {
				return p
			}
			if p.Column == at.Column {
				p.Paragraph += shift
			}
			p.Column--
			return p
		},
	})
}

// mergePage appends the columns of the page under the cursor to the previous page.
func mergePage(d Document) Document {
	at := d.Cursor
	prev, cur := d.Content[at.Page-1], d.Content[at.Page]
	shift := len(prev)

	merged := make(Page, 0, len(prev)+len(cur))
	merged = append(append(merged, prev...), cur...)
	content := splice(d.Content, at.Page-1, at.Page+1, merged)
	return d.relocate(content, relocation{
		move: func(p Path) Path {
			if p.Page < at.Page {
				return p
			}
			if p.Page == at.Page {
				p.Column += shift
			}
			p.Page--
			return p
		},
	})
}

// splitParagraph breaks the paragraph at the cursor. The rest of the current
// chunk, the chunks after it and the lines after the current line move into a
// new paragraph inserted after the current one.
func splitParagraph(d Document) Document {
	at := d.Cursor
	col := d.Content.Column(at)
	para := col[at.Paragraph]
	line := para[at.Line]
	head, tail := grapheme.Cut(line[at.Chunk], at.Char)

	keepHead := head != "" || at.Chunk == 0
	keepTail := tail != "" || at.Chunk == len(line)-1

	kept := append(Line{}, line[:at.Chunk]...)
	if keepHead {
		kept = append(kept, head)
	}
	moved := Line{}
	if keepTail {
		moved = append(moved, tail)
	}
	moved = append(moved, line[at.Chunk+1:]...)
	firstMoved := at.Chunk + 1
	if keepTail {
		firstMoved = at.Chunk
	}

	before := append(Paragraph{}, para[:at.Line]...)
	before = append(before, kept)
	after := Paragraph{moved}
	after = append(after, para[at.Line+1:]...)

	content := d.Content.withColumn(at, splice(col, at.Paragraph, at.Paragraph+1, before, after))

	var copies [][2]ChunkKey
	if keepHead && keepTail && head != "" {
		copies = append(copies, [2]ChunkKey{
			at.Key(),
			at.WithSuffix(LevelParagraph, at.Paragraph+1).Key(),
		})
	}

	out := d.relocate(content, relocation{
		copies: copies,
		move: func(p Path) Path {
			if !p.HasPrefix(at, LevelColumn) || p.Paragraph < at.Paragraph {
				return p
			}
			switch {
			case p.Paragraph > at.Paragraph:
				p.Paragraph++
				return p
			case p.Line < at.Line:
				return p
			case p.Line > at.Line:
				return p.JumpTo(at.Paragraph+1, p.Line-at.Line, p.Chunk, p.Char)
			case p.Chunk < at.Chunk:
				return p
			case p.Chunk == at.Chunk && p.Char < at.Char:
				return p
			case p.Chunk == at.Chunk && keepTail:
				return p.JumpTo(at.Paragraph+1, 0, 0, p.Char-at.Char)
			case p.Chunk == at.Chunk:
				return p.JumpTo(at.Paragraph+1, 0, 0, 0)
			default:
				return p.JumpTo(at.Paragraph+1, 0, p.Chunk-firstMoved, p.Char)
			}
		},
	})
	out.Cursor = at.WithSuffix(LevelParagraph, at.Paragraph+1)
	return out
}
