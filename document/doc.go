// Package document is an immutable rich-text document engine.
//
// A Document is a snapshot of a page → column → paragraph → line → chunk
// content tree, a sparse style overlay keyed by chunk, a cursor and an
// optional selection. Positions are six-component Paths whose Char counts
// grapheme clusters.
//
// Engine.Apply turns one snapshot and one Command into the next snapshot.
// Snapshots are never mutated; unchanged subtrees are shared between them.
//
//	e := document.NewEngine(document.WithMeasurer(m))
//	d := document.New()
//	d, _ = e.Apply(d, document.TypeText{Text: "hello"})
//	d, _ = e.Apply(d, document.PressKey{Key: document.KeyEnter})
package document
