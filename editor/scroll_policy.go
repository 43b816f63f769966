package editor

// ScrollPolicy decides what the mouse wheel does to the viewport. Keyboard
// edits always bring the cursor row back into view.
type ScrollPolicy int

const (
	// ScrollFollowCursor ignores the wheel; only cursor movement scrolls.
	ScrollFollowCursor ScrollPolicy = iota
	// ScrollByRow lets the wheel scroll freely, row by row.
	ScrollByRow
	// ScrollByParagraph makes each wheel step bring the next or previous
	// paragraph to the top of the viewport.
	ScrollByParagraph
)

func (p ScrollPolicy) String() string {
	switch p {
	case ScrollFollowCursor:
		return "follow-cursor"
	case ScrollByRow:
		return "row"
	case ScrollByParagraph:
		return "paragraph"
	default:
		return "unknown"
	}
}
