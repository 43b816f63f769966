package document

import (
	"maps"

	"github.com/iw2rmb/doxx/internal/grapheme"
)

func identity(p Path) Path { return p }

// splitAt splits the chunk at p into chunk[:p.Char] and chunk[p.Char:] and
// returns the mapping it applied to outstanding paths. Offsets at either end
// of the chunk are already boundaries and leave d unchanged.
func splitAt(d Document, p Path) (Document, func(Path) Path) {
	chunk := d.Content.Chunk(p)
	if p.Char <= 0 || p.Char >= grapheme.Count(chunk) {
		return d, identity
	}
	head, tail := grapheme.Cut(chunk, p.Char)
	line := d.Content.Line(p)
	content := d.Content.withLine(p, splice(line, p.Chunk, p.Chunk+1, head, tail))

	move := func(q Path) Path {
		if !q.HasPrefix(p, LevelLine) || q.Chunk < p.Chunk {
			return q
		}
		if q.Chunk == p.Chunk {
			if q.Char < p.Char {
				return q
			}
			return q.JumpTo(p.Chunk+1, q.Char-p.Char)
		}
		q.Chunk++
		return q
	}
	return d.relocate(content, relocation{
		move:   move,
		copies: [][2]ChunkKey{{p.Key(), p.JumpTo(p.Chunk+1, 0).Key()}},
	}), move
}

// applyStyle merges style into every chunk covered by the selection. The
// chunks at both selection edges are split first so the edges fall on chunk
// boundaries.
func applyStyle(d Document, style Style) (Document, bool) {
	sel, ok := d.SelectionRange()
	if !ok || len(style) == 0 {
		return d, false
	}
	before := d.Content

	// Split the later edge first; the earlier one keeps its indices.
	d, moveEnd := splitAt(d, sel.End)
	start, end := sel.Start, moveEnd(sel.End)
	d, moveStart := splitAt(d, start)
	start, end = moveStart(start), moveStart(end)

	overlay := maps.Clone(d.Style)
	if overlay == nil {
		overlay = Overlay{}
	}
	changed := false
	d.Content.walkCovered(start, end, func(k ChunkKey) {
		prev := overlay[k]
		next := prev.Merge(style)
		if next.Equal(prev) {
			return
		}
		if next == nil {
			delete(overlay, k)
		} else {
			overlay[k] = next
		}
		changed = true
	})
	if changed {
		d.Style = overlay
	}
	return d, changed || !sameSpine(before, d.Content)
}

// SelectedStyle returns the style of the first chunk with selected text in it.
func (d Document) SelectedStyle() (Style, bool) {
	sel, ok := d.SelectionRange()
	if !ok {
		return nil, false
	}
	var (
		style Style
		found bool
	)
	d.Content.walkCovered(sel.Start, sel.End, func(k ChunkKey) {
		if !found {
			style, found = d.Style.At(k), true
		}
	})
	return style, found
}

// walkCovered is walkChunks without the chunks that from and to only touch at
// their end and start.
func (c Content) walkCovered(from, to Path, fn func(ChunkKey)) {
	c.walkChunks(from, to, func(k ChunkKey) {
		if k == to.Key() && to.Char == 0 {
			return
		}
		if k == from.Key() && from.Char >= grapheme.Count(c.Chunk(from)) {
			return
		}
		fn(k)
	})
}

// walkChunks visits, in document order, every chunk whose key lies between
// the keys of from and to inclusive. At each level the index range is bounded
// by from and to only while the walk stays on their ancestors.
func (c Content) walkChunks(from, to Path, fn func(ChunkKey)) {
	c.walkLevel(Path{}, LevelPage, from, to, true, true, fn)
}

func (c Content) walkLevel(at Path, l Level, from, to Path, low, high bool, fn func(ChunkKey)) {
	lo, hi := 0, c.Count(at, l)-1
	if low {
		lo = from.At(l)
	}
	if high {
		hi = min(hi, to.At(l))
	}
	for i := lo; i <= hi; i++ {
		p := at.Set(l, i)
		if l == LevelChunk {
			fn(p.Key())
			continue
		}
		c.walkLevel(p, l+1, from, to, low && i == lo, high && i == to.At(l), fn)
	}
}

// sameSpine reports whether b is a and not an edited copy of it.
func sameSpine(a, b Content) bool {
	return len(a) == len(b) && (len(a) == 0 || &a[0] == &b[0])
}
