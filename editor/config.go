package editor

import (
	"log/slog"

	"github.com/iw2rmb/doxx/document"
)

// Config configures the editor Model.
type Config struct {
	// Initial snapshot. When its Content is nil, Text is typed into an empty
	// document instead.
	Document document.Document
	Text     string

	// ColumnWidth is the reflow budget in cells. Zero follows the viewport
	// width, keeping one cell free for the cursor.
	ColumnWidth int
	TabWidth    int

	// MaxReflowPasses bounds the reflow loop after each edit.
	MaxReflowPasses int

	// Measurer overrides terminal cell measurement.
	Measurer document.Measurer

	Style        Style
	KeyMap       KeyMap
	ScrollPolicy ScrollPolicy
	ReadOnly     bool
	Clipboard    Clipboard

	// OnChange is called after every command batch that changed the document.
	OnChange func(ChangeEvent)

	Logger *slog.Logger
}
