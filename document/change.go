package document

// ChangeSource identifies where a change originated.
type ChangeSource uint8

const (
	ChangeSourceLocal ChangeSource = iota
	ChangeSourceRemote
)

func (s ChangeSource) String() string {
	if s == ChangeSourceRemote {
		return "remote"
	}
	return "local"
}

// SelectionState captures normalized selection state at a point in time.
type SelectionState struct {
	Active bool
	Range  Selection
}

// Change describes one effective command: the versions and positions on
// either side of it. TextChanged reports a different document text, while
// ContentChanged also covers edits that only move chunk or line boundaries.
type Change struct {
	Source          ChangeSource
	Kind            CommandKind
	VersionBefore   uint64
	VersionAfter    uint64
	CursorBefore    Path
	CursorAfter     Path
	SelectionBefore SelectionState
	SelectionAfter  SelectionState
	TextChanged     bool
	ContentChanged  bool
	StyleChanged    bool
}

// NewChange compares two snapshots produced by one command. It reports false
// when the command had no effect.
func NewChange(source ChangeSource, kind CommandKind, before, after Document) (Change, bool) {
	if after.Version == before.Version {
		return Change{}, false
	}
	contentChanged := !sameSpine(before.Content, after.Content)
	return Change{
		Source:          source,
		Kind:            kind,
		VersionBefore:   before.Version,
		VersionAfter:    after.Version,
		CursorBefore:    before.Cursor,
		CursorAfter:     after.Cursor,
		SelectionBefore: selectionStateOf(before),
		SelectionAfter:  selectionStateOf(after),
		TextChanged:     contentChanged && before.Content.Text() != after.Content.Text(),
		ContentChanged:  contentChanged,
		StyleChanged:    !sameOverlay(before.Style, after.Style),
	}, true
}

func selectionStateOf(d Document) SelectionState {
	s, ok := d.SelectionRange()
	if !ok {
		return SelectionState{}
	}
	return SelectionState{Active: true, Range: s}
}

func sameOverlay(a, b Overlay) bool {
	if len(a) != len(b) {
		return false
	}
	for k, s := range a {
		t, ok := b[k]
		if !ok || !s.Equal(t) {
			return false
		}
	}
	return true
}
