package measure

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/iw2rmb/doxx/internal/grapheme"
)

// DefaultTabWidth is the tab stop distance used when TabWidth is unset.
const DefaultTabWidth = 4

// Cells measures text in terminal cells. Wide runes take two cells and tabs
// advance to the next tab stop.
type Cells struct {
	TabWidth int
}

// Measure returns the cell width of text starting at column 0.
func (c Cells) Measure(text string) float64 {
	return c.MeasureAt(text, 0)
}

// MeasureAt returns the cell width of text starting at cell column col.
func (c Cells) MeasureAt(text string, col float64) float64 {
	start := int(col)
	at := start
	for _, g := range grapheme.Split(text) {
		at += clusterWidth(g, at, c.TabWidth)
	}
	return float64(at - start)
}

func clusterWidth(g string, col, tabWidth int) int {
	if g == "\t" {
		return tabAdvance(col, tabWidth)
	}
	if g == grapheme.NoBreakSpace {
		return 1
	}
	w := runewidth.StringWidth(g)
	if w < 0 {
		w = 0
	}
	if w == 0 {
		w = max(w, uniseg.StringWidth(g))
	}
	return w
}

func tabAdvance(col, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	return max(tabWidth-col%tabWidth, 1)
}
