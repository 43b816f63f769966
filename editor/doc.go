// Package editor provides a Bubble Tea rich-text editor component backed by
// the document engine.
//
// The package translates key presses into document commands, reflows edited
// paragraphs against the column width with terminal cell measurement, and
// renders the page with chunk styles, cursor and selection.
package editor
