package document

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/iw2rmb/doxx/internal/grapheme"
)

// DefaultColumnWidth is the width budget used when none is configured.
const DefaultColumnWidth = 100

// Measurer reports the rendered width of text. It must be deterministic for a
// fixed style context.
type Measurer interface {
	Measure(text string) float64
}

// PositionalMeasurer is a Measurer whose widths depend on where text starts,
// such as terminal cells with tab stops.
type PositionalMeasurer interface {
	Measurer
	MeasureAt(text string, start float64) float64
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(text string) float64

func (f MeasureFunc) Measure(text string) float64 { return f(text) }

// Engine applies commands to document snapshots. It holds no document state
// and is safe for concurrent use.
type Engine struct {
	columnWidth float64
	measurer    Measurer
	logger      *slog.Logger
}

// Option configures an Engine during creation.
type Option func(*Engine)

// WithColumnWidth sets the width budget for reflow.
func WithColumnWidth(width float64) Option {
	return func(e *Engine) {
		if width > 0 {
			e.columnWidth = width
		}
	}
}

// WithMeasurer sets the text measurement used by reflow.
func WithMeasurer(m Measurer) Option {
	return func(e *Engine) {
		e.measurer = m
	}
}

// WithLogger sets the logger. No-op commands are logged at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an engine with the given options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		columnWidth: DefaultColumnWidth,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) ColumnWidth() float64 { return e.columnWidth }
func (e *Engine) Measurer() Measurer   { return e.measurer }

// Apply returns the snapshot produced by cmd. The input snapshot is never
// modified. When cmd has no effect d is returned as is; when cmd is malformed
// d is returned with an error. Every effective command bumps Version.
func (e *Engine) Apply(d Document, cmd Command) (Document, error) {
	next, changed, err := e.apply(d, cmd)
	if err != nil {
		e.logger.Debug("command rejected", "kind", kindOf(cmd), "err", err)
		return d, err
	}
	if !changed {
		e.logger.Debug("command had no effect", "kind", kindOf(cmd), "cursor", d.Cursor.String())
		return d, nil
	}
	next.Version = d.Version + 1
	return next, nil
}

func kindOf(cmd Command) CommandKind {
	if cmd == nil {
		return ""
	}
	return cmd.Kind()
}

func (e *Engine) apply(d Document, cmd Command) (Document, bool, error) {
	switch c := cmd.(type) {
	case TypeCharacter:
		if grapheme.Count(c.Char) != 1 {
			return d, false, fmt.Errorf("%w: %s wants one character, got %q", ErrInvalidCommand, c.Kind(), c.Char)
		}
		if !addsOneCluster(d, c.Char) {
			return d, false, fmt.Errorf("%w: %s %q would merge with its neighbours", ErrInvalidCommand, c.Kind(), c.Char)
		}
		next, changed := typeText(d, c.Char)
		return next, changed, nil
	case TypeText:
		next, changed := typeText(d, c.Text)
		return next, changed, nil
	case PressKey:
		next, changed := e.pressKey(d, c.Key)
		return next, changed, nil
	case SetCursor:
		p := d.Content.Clamp(c.Path)
		if p == d.Cursor {
			return d, false, nil
		}
		d.Cursor = p
		return d, true, nil
	case MakeSelection:
		s := Selection{Start: d.Content.Clamp(c.Selection.Start), End: d.Content.Clamp(c.Selection.End)}
		if d.Selection != nil && *d.Selection == s {
			return d, false, nil
		}
		d.Selection = &s
		return d, true, nil
	case ClearSelection:
		if d.Selection == nil {
			return d, false, nil
		}
		d.Selection = nil
		return d, true, nil
	case ApplyStyle:
		next, changed := applyStyle(d, c.Style)
		return next, changed, nil
	case ReflowLine:
		return e.reflow(d, c)
	default:
		return d, false, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
}

func (e *Engine) pressKey(d Document, k Key) (Document, bool) {
	switch k {
	case KeyBackspace:
		next, st := backspace(d)
		if st != deleted {
			e.logger.Debug("backspace stopped", "status", st.String())
			return d, false
		}
		return next, true
	case KeyEnter:
		return splitParagraph(d), true
	case KeyLeft:
		return moveLeft(d)
	case KeyRight:
		return moveRight(d)
	default:
		return d, false
	}
}

func (e *Engine) reflow(d Document, c ReflowLine) (Document, bool, error) {
	if e.measurer == nil {
		return d, false, ErrNoMeasurer
	}
	p := d.Cursor
	if c.Line != nil {
		p = d.Content.Clamp(*c.Line)
	}
	dims := c.Dims
	if dims == nil {
		dims = MeasureLine(e.measurer, d.Content.Line(p))
	}
	return reflowLine(d, p, dims, e.columnWidth, e.measurer)
}

// MeasureLine lays the chunks of l out left to right and returns their extents.
// A PositionalMeasurer measures each chunk from where it starts.
func MeasureLine(m Measurer, l Line) []Extent {
	width := func(text string, _ float64) float64 { return m.Measure(text) }
	if p, ok := m.(PositionalMeasurer); ok {
		width = p.MeasureAt
	}
	out := make([]Extent, len(l))
	x := 0.0
	for i, chunk := range l {
		w := width(chunk, x)
		out[i] = Extent{Left: x, Right: x + w}
		x += w
	}
	return out
}

// typeText inserts text cluster run by cluster run, splitting the paragraph
// at every line break.
func typeText(d Document, text string) (Document, bool) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if text == "" {
		return d, false
	}
	for i, part := range strings.Split(text, "\n") {
		if i > 0 {
			d = splitParagraph(d)
		}
		if part != "" {
			d = insertText(d, part)
		}
	}
	return d, true
}
