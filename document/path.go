package document

import "fmt"

// Level names one component of a Path, outermost first.
type Level int

const (
	LevelPage Level = iota
	LevelColumn
	LevelParagraph
	LevelLine
	LevelChunk
	LevelChar
)

func (l Level) String() string {
	switch l {
	case LevelPage:
		return "page"
	case LevelColumn:
		return "column"
	case LevelParagraph:
		return "paragraph"
	case LevelLine:
		return "line"
	case LevelChunk:
		return "chunk"
	case LevelChar:
		return "char"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Path addresses a position in the content tree. Char counts grapheme
// clusters and may equal the chunk length (the position after the last one).
type Path struct {
	Page      int
	Column    int
	Paragraph int
	Line      int
	Chunk     int
	Char      int
}

// ChunkKey is a Path truncated at the chunk level. It keys the style overlay.
type ChunkKey [5]int

// At returns the component at level l.
func (p Path) At(l Level) int {
	switch l {
	case LevelPage:
		return p.Page
	case LevelColumn:
		return p.Column
	case LevelParagraph:
		return p.Paragraph
	case LevelLine:
		return p.Line
	case LevelChunk:
		return p.Chunk
	case LevelChar:
		return p.Char
	default:
		return 0
	}
}

// Set returns p with the component at level l replaced by v.
func (p Path) Set(l Level, v int) Path {
	switch l {
	case LevelPage:
		p.Page = v
	case LevelColumn:
		p.Column = v
	case LevelParagraph:
		p.Paragraph = v
	case LevelLine:
		p.Line = v
	case LevelChunk:
		p.Chunk = v
	case LevelChar:
		p.Char = v
	}
	return p
}

// Components returns the six components in order.
func (p Path) Components() [6]int {
	return [6]int{p.Page, p.Column, p.Paragraph, p.Line, p.Chunk, p.Char}
}

// Prefix keeps the components up to and including depth and zeroes the rest.
// It resolves the structural ancestor of a position at any level.
func (p Path) Prefix(depth Level) Path {
	out := Path{}
	for l := LevelPage; l <= depth && l <= LevelChar; l++ {
		out = out.Set(l, p.At(l))
	}
	return out
}

// HasPrefix reports whether p and q agree on every component up to depth.
func (p Path) HasPrefix(q Path, depth Level) bool {
	return p.Prefix(depth) == q.Prefix(depth)
}

// WithSuffix returns the prefix at depth with its last component set to v,
// which addresses a sibling of the ancestor at depth.
func (p Path) WithSuffix(depth Level, v int) Path {
	return p.Prefix(depth).Set(depth, v)
}

// JumpTo replaces the trailing len(suffix) components of p.
func (p Path) JumpTo(suffix ...int) Path {
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	first := LevelChar - Level(len(suffix)) + 1
	for i, v := range suffix {
		p = p.Set(first+Level(i), v)
	}
	return p
}

// Key returns the chunk the path points into.
func (p Path) Key() ChunkKey {
	return ChunkKey{p.Page, p.Column, p.Paragraph, p.Line, p.Chunk}
}

// Path returns the position at the start of the chunk.
func (k ChunkKey) Path() Path {
	return Path{Page: k[0], Column: k[1], Paragraph: k[2], Line: k[3], Chunk: k[4]}
}

func (p Path) String() string {
	return fmt.Sprint(p.Components())
}

// ComparePaths orders paths lexicographically.
func ComparePaths(a, b Path) int {
	ac, bc := a.Components(), b.Components()
	for i := range ac {
		if ac[i] < bc[i] {
			return -1
		}
		if ac[i] > bc[i] {
			return 1
		}
	}
	return 0
}

// Selection is a pair of paths. Start and End are stored as given; callers
// that need document order use Normalize.
type Selection struct {
	Start Path
	End   Path
}

// Normalize orders the endpoints so Start <= End.
func (s Selection) Normalize() Selection {
	if ComparePaths(s.Start, s.End) <= 0 {
		return s
	}
	return Selection{Start: s.End, End: s.Start}
}

func (s Selection) IsEmpty() bool {
	return s.Start == s.End
}
