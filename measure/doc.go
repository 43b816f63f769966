// Package measure provides text measurement for document reflow: terminal
// cell widths, font metrics, a memoizing cache and a settle loop that reflows
// lines until they stop moving.
package measure
