package measure

import (
	"slices"

	"github.com/iw2rmb/doxx/document"
)

// DefaultMaxPasses bounds Settle when maxPasses is not positive.
const DefaultMaxPasses = 64

// Extents lays the chunks of l out left to right with m, measuring from each
// chunk's start column when m is positional.
func Extents(m document.Measurer, l document.Line) []document.Extent {
	return document.MeasureLine(m, l)
}

// Settle reflows the paragraph containing line, starting one line above it,
// until no line moves or maxPasses passes ran. Each step re-measures the line
// against the current snapshot, so measurement and reflow never interleave
// with other edits.
func Settle(e *document.Engine, d document.Document, line document.Path, maxPasses int) (document.Document, error) {
	m := e.Measurer()
	if m == nil {
		return d, document.ErrNoMeasurer
	}
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	line = d.Content.Clamp(line).Prefix(document.LevelLine)
	first := max(line.Line-1, 0)

	for pass := 0; pass < maxPasses; pass++ {
		moved := false
		for i := first; i < len(d.Content.Paragraph(line)); i++ {
			p := line.WithSuffix(document.LevelLine, i)
			next, err := reflowLine(e, m, d, p)
			if err != nil {
				return d, err
			}
			moved = moved || next.Version != d.Version
			d = next
		}
		if !moved {
			break
		}
	}
	return d, nil
}

// reflowLine measures and reflows line p once. A join that the next overflow
// would push straight back, or the reverse, keeps whichever of the two
// snapshots has p within the column width.
func reflowLine(e *document.Engine, m document.Measurer, d document.Document, p document.Path) (document.Document, error) {
	next, err := e.Apply(d, document.ReflowLine{Line: &p, Dims: Extents(m, d.Content.Line(p))})
	if err != nil || next.Version == d.Version {
		return next, err
	}
	again, err := e.Apply(next, document.ReflowLine{Line: &p, Dims: Extents(m, next.Content.Line(p))})
	if err != nil {
		return d, err
	}
	if again.Version == next.Version || !sameParagraph(again.Content.Paragraph(p), d.Content.Paragraph(p)) {
		return next, nil
	}
	if fits(m, e.ColumnWidth(), d.Content.Line(p)) {
		return d, nil
	}
	return next, nil
}

func fits(m document.Measurer, width float64, l document.Line) bool {
	ext := Extents(m, l)
	return len(ext) == 0 || ext[len(ext)-1].Right <= width
}

func sameParagraph(a, b document.Paragraph) bool {
	return slices.EqualFunc(a, b, func(x, y document.Line) bool { return slices.Equal(x, y) })
}

// SettleAll settles every paragraph of d in document order.
func SettleAll(e *document.Engine, d document.Document, maxPasses int) (document.Document, error) {
	for pi, page := range d.Content {
		for ci, col := range page {
			for p := range col {
				var err error
				d, err = Settle(e, d, document.Path{Page: pi, Column: ci, Paragraph: p}, maxPasses)
				if err != nil {
					return d, err
				}
			}
		}
	}
	return d, nil
}
