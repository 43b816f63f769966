package document

import (
	"fmt"
)

// CommandSpec is the flat JSON and YAML form of a Command:
//
//	{"kind": "TYPE_CHARACTER", "char": "a"}
//	{"kind": "PRESS_KEY", "key": "ENTER"}
//	{"kind": "MAKE_SELECTION", "start": [0, 0, 5], "end": [0, 0, 12]}
//
// Paths may be shorter than six components; they fill the trailing levels and
// leave the leading ones at zero, so [paragraph, line, chunk, char] addresses
// the first page and column.
type CommandSpec struct {
	Kind  CommandKind `json:"kind" yaml:"kind"`
	Char  string      `json:"char,omitempty" yaml:"char,omitempty"`
	Text  string      `json:"text,omitempty" yaml:"text,omitempty"`
	Key   any         `json:"key,omitempty" yaml:"key,omitempty"`
	Path  []int       `json:"path,omitempty" yaml:"path,omitempty"`
	Start []int       `json:"start,omitempty" yaml:"start,omitempty"`
	End   []int       `json:"end,omitempty" yaml:"end,omitempty"`
	Style Style       `json:"style,omitempty" yaml:"style,omitempty"`
	Line  []int       `json:"line,omitempty" yaml:"line,omitempty"`
	Dims  []Extent    `json:"dims,omitempty" yaml:"dims,omitempty"`
}

// Command decodes s.
func (s CommandSpec) Command() (Command, error) {
	switch s.Kind {
	case KindTypeCharacter:
		return TypeCharacter{Char: s.Char}, nil
	case KindTypeText:
		return TypeText{Text: s.Text}, nil
	case KindPressKey:
		if s.Key == nil {
			return nil, fmt.Errorf("%w: %s without key", ErrInvalidCommand, s.Kind)
		}
		k, err := ParseKey(fmt.Sprint(s.Key))
		if err != nil {
			return nil, err
		}
		return PressKey{Key: k}, nil
	case KindSetCursor:
		p, err := pathOf("path", s.Path)
		if err != nil {
			return nil, err
		}
		return SetCursor{Path: p}, nil
	case KindMakeSelection:
		start, err := pathOf("start", s.Start)
		if err != nil {
			return nil, err
		}
		end, err := pathOf("end", s.End)
		if err != nil {
			return nil, err
		}
		return MakeSelection{Selection: Selection{Start: start, End: end}}, nil
	case KindClearSelection:
		return ClearSelection{}, nil
	case KindApplyStyle:
		return ApplyStyle{Style: s.Style}, nil
	case KindReflowLine:
		c := ReflowLine{Dims: s.Dims}
		if s.Line != nil {
			p, err := pathOf("line", s.Line)
			if err != nil {
				return nil, err
			}
			c.Line = &p
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, s.Kind)
	}
}

// SpecOf encodes cmd in its wire form.
func SpecOf(cmd Command) CommandSpec {
	s := CommandSpec{Kind: kindOf(cmd)}
	switch c := cmd.(type) {
	case TypeCharacter:
		s.Char = c.Char
	case TypeText:
		s.Text = c.Text
	case PressKey:
		s.Key = c.Key.String()
	case SetCursor:
		s.Path = pathSlice(c.Path)
	case MakeSelection:
		s.Start = pathSlice(c.Selection.Start)
		s.End = pathSlice(c.Selection.End)
	case ApplyStyle:
		s.Style = c.Style
	case ReflowLine:
		if c.Line != nil {
			s.Line = pathSlice(*c.Line)
		}
		s.Dims = c.Dims
	}
	return s
}

func pathOf(field string, xs []int) (Path, error) {
	if len(xs) == 0 || len(xs) > 6 {
		return Path{}, fmt.Errorf("%w: %s needs 1 to 6 components, got %d", ErrInvalidCommand, field, len(xs))
	}
	for _, v := range xs {
		if v < 0 {
			return Path{}, fmt.Errorf("%w: %s has negative component %d", ErrInvalidCommand, field, v)
		}
	}
	return Path{}.JumpTo(xs...), nil
}

func pathSlice(p Path) []int {
	c := p.Components()
	return c[:]
}
