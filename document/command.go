package document

import (
	"fmt"
	"strconv"
	"strings"
)

// Key is a key code carried by PressKey.
type Key int

const (
	KeyBackspace Key = 8
	KeyTab       Key = 9
	KeyEnter     Key = 13
	KeyLeft      Key = 37
	KeyUp        Key = 38
	KeyRight     Key = 39
	KeyDown      Key = 40
)

var keyNames = map[Key]string{
	KeyBackspace: "BACKSPACE",
	KeyTab:       "TAB",
	KeyEnter:     "ENTER",
	KeyLeft:      "LEFT_ARROW",
	KeyUp:        "UP_ARROW",
	KeyRight:     "RIGHT_ARROW",
	KeyDown:      "DOWN_ARROW",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return strconv.Itoa(int(k))
}

// ParseKey accepts a key name such as "ENTER" or "left_arrow", or a decimal
// key code.
func ParseKey(s string) (Key, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for k, n := range keyNames {
		if n == name {
			return k, nil
		}
	}
	code, err := strconv.Atoi(name)
	if err != nil {
		return 0, fmt.Errorf("%w: key %q", ErrInvalidCommand, s)
	}
	return Key(code), nil
}

// CommandKind names a command on the wire and in logs.
type CommandKind string

const (
	KindTypeCharacter  CommandKind = "TYPE_CHARACTER"
	KindTypeText       CommandKind = "TYPE_TEXT"
	KindPressKey       CommandKind = "PRESS_KEY"
	KindSetCursor      CommandKind = "SET_CURSOR"
	KindMakeSelection  CommandKind = "MAKE_SELECTION"
	KindClearSelection CommandKind = "CLEAR_SELECTION"
	KindApplyStyle     CommandKind = "APPLY_STYLE"
	KindReflowLine     CommandKind = "REFLOW_LINE"
)

// Command is one edit request handed to Engine.Apply.
type Command interface {
	Kind() CommandKind
}

// TypeCharacter inserts one grapheme cluster at the cursor.
type TypeCharacter struct {
	Char string
}

// TypeText inserts text at the cursor. Line breaks split the paragraph.
type TypeText struct {
	Text string
}

// PressKey handles BACKSPACE, ENTER, LEFT_ARROW and RIGHT_ARROW. Other keys
// are accepted and ignored.
type PressKey struct {
	Key Key
}

// SetCursor replaces the cursor. The path is clamped to the content.
type SetCursor struct {
	Path Path
}

// MakeSelection replaces the selection. Both endpoints are clamped.
type MakeSelection struct {
	Selection Selection
}

// ClearSelection removes the selection.
type ClearSelection struct{}

// ApplyStyle merges Style into every chunk covered by the selection.
type ApplyStyle struct {
	Style Style
}

// ReflowLine reflows one line against the column width. Line defaults to the
// cursor's line. Dims holds one extent per chunk; when nil the engine
// measures the line itself.
type ReflowLine struct {
	Line *Path
	Dims []Extent
}

func (TypeCharacter) Kind() CommandKind  { return KindTypeCharacter }
func (TypeText) Kind() CommandKind       { return KindTypeText }
func (PressKey) Kind() CommandKind       { return KindPressKey }
func (SetCursor) Kind() CommandKind      { return KindSetCursor }
func (MakeSelection) Kind() CommandKind  { return KindMakeSelection }
func (ClearSelection) Kind() CommandKind { return KindClearSelection }
func (ApplyStyle) Kind() CommandKind     { return KindApplyStyle }
func (ReflowLine) Kind() CommandKind     { return KindReflowLine }
