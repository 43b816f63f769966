package document

import "slices"

// Document is one immutable snapshot of the editing session. Content, Style,
// Cursor and Selection are always consistent with each other.
type Document struct {
	Content   Content
	Style     Overlay
	Cursor    Path
	Selection *Selection

	// Version increases by one for every command that changed the snapshot.
	Version uint64
}

// New returns the degenerate document: one empty chunk, cursor at the start.
func New() Document {
	return Document{Content: NewContent()}
}

// Text concatenates all chunk text, one "\n" between paragraphs.
func (d Document) Text() string {
	return d.Content.Text()
}

// StyleAt returns the style of the chunk p points into.
func (d Document) StyleAt(p Path) Style {
	return d.Style.At(p.Key())
}

// SelectionRange returns the ordered selection, if one is set and non-empty.
func (d Document) SelectionRange() (Selection, bool) {
	if d.Selection == nil {
		return Selection{}, false
	}
	s := d.Selection.Normalize()
	if s.IsEmpty() {
		return Selection{}, false
	}
	return s, true
}

// relocation describes where every position of the old content lands after
// a structural edit. The same mapping moves the cursor, both selection
// endpoints and the overlay keys, which keeps the four pieces co-indexed.
type relocation struct {
	move func(Path) Path

	// drop lists old chunk keys whose style is discarded with the chunk.
	drop []ChunkKey

	// copies lists new-space key pairs; the style at [0] is copied to [1].
	// A chunk split in two keeps its style on both halves.
	copies [][2]ChunkKey
}

func (d Document) relocate(content Content, r relocation) Document {
	d.Content = content
	d.Cursor = r.move(d.Cursor)
	if d.Selection != nil {
		d.Selection = &Selection{
			Start: r.move(d.Selection.Start),
			End:   r.move(d.Selection.End),
		}
	}
	d.Style = d.Style.relocate(r)
	return d
}

func (o Overlay) relocate(r relocation) Overlay {
	if len(o) == 0 {
		return o
	}
	out := make(Overlay, len(o)+len(r.copies))
	for k, s := range o {
		if slices.Contains(r.drop, k) {
			continue
		}
		out[r.move(k.Path()).Key()] = s
	}
	for _, c := range r.copies {
		if s, ok := out[c[0]]; ok {
			out[c[1]] = s
		}
	}
	return out
}
