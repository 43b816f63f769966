package editor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/doxx/document"
)

// Style controls the editor's rendering.
type Style struct {
	Text      lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style
}

func DefaultStyle() Style {
	return Style{
		Text:      lipgloss.NewStyle(),
		Selection: lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:    lipgloss.NewStyle().Reverse(true),
	}
}

// Attribute names understood by the renderer. Other attributes are kept in
// the document and ignored on screen.
const (
	AttrBold          = "bold"
	AttrItalic        = "italic"
	AttrUnderline     = "underline"
	AttrStrikethrough = "strikethrough"
	AttrColor         = "color"
	AttrBackground    = "background"
)

// chunkStyle layers the attributes of a chunk over base.
func chunkStyle(base lipgloss.Style, s document.Style) lipgloss.Style {
	if len(s) == 0 {
		return base
	}
	st := base
	if s.Bool(AttrBold) {
		st = st.Bold(true)
	}
	if s.Bool(AttrItalic) {
		st = st.Italic(true)
	}
	if s.Bool(AttrUnderline) {
		st = st.Underline(true)
	}
	if s.Bool(AttrStrikethrough) {
		st = st.Strikethrough(true)
	}
	if c, ok := s[AttrColor].(string); ok && c != "" {
		st = st.Foreground(lipgloss.Color(c))
	}
	if c, ok := s[AttrBackground].(string); ok && c != "" {
		st = st.Background(lipgloss.Color(c))
	}
	return st
}
