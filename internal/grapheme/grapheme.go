// Package grapheme indexes chunk text by grapheme cluster. Every char offset
// in a document path counts clusters, not bytes or runes.
package grapheme

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// NoBreakSpace is what hosts type for a space; reflow breaks lines next to it.
const NoBreakSpace = "\u00a0"

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// Offset returns the byte offset of cluster index n, clamped to [0, len(text)].
func Offset(text string, n int) int {
	if n <= 0 || text == "" {
		return 0
	}
	g := uniseg.NewGraphemes(text)
	idx := 0
	for g.Next() {
		if idx == n {
			from, _ := g.Positions()
			return from
		}
		idx++
	}
	return len(text)
}

// Cut splits text before cluster index n.
func Cut(text string, n int) (head, tail string) {
	off := Offset(text, n)
	return text[:off], text[off:]
}

// Slice returns the grapheme-safe substring for [start, end).
func Slice(text string, start, end int) string {
	if end <= start {
		return ""
	}
	from := Offset(text, start)
	to := Offset(text, end)
	return text[from:to]
}

// Insert splices s into text before cluster index n.
func Insert(text string, n int, s string) string {
	head, tail := Cut(text, n)
	return head + s + tail
}

// Remove deletes the cluster at index n. Out-of-range n leaves text as is.
func Remove(text string, n int) string {
	if n < 0 {
		return text
	}
	from := Offset(text, n)
	to := Offset(text, n+1)
	return text[:from] + text[to:]
}

// First returns the first cluster of text, or "".
func First(text string) string {
	if text == "" {
		return ""
	}
	g := uniseg.NewGraphemes(text)
	g.Next()
	return g.Str()
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsBreak reports whether a line may break next to cluster.
func IsBreak(cluster string) bool {
	return cluster == NoBreakSpace || cluster == " "
}
