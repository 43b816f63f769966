package editor

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/doxx/document"
	"github.com/iw2rmb/doxx/measure"
)

// Model is a Bubble Tea component that renders and edits a document.
type Model struct {
	cfg    Config
	log    *slog.Logger
	engine *document.Engine
	doc    document.Document
	cells  measure.Cells

	focused bool

	viewport  viewport.Model
	cursorRow int
	rows      []rowRef

	mouseDragging bool
	mouseAnchor   document.Path
}

func New(cfg Config) Model {
	if cfg.KeyMap.isZero() {
		cfg.KeyMap = DefaultKeyMap()
	}
	if cfg.Measurer == nil {
		cfg.Measurer = measure.NewCache(measure.Cells{TabWidth: cfg.TabWidth}, 0)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m := Model{
		cfg:      cfg,
		log:      cfg.Logger.With("component", "editor"),
		cells:    measure.Cells{TabWidth: cfg.TabWidth},
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	m.engine = m.newEngine(cfg.ColumnWidth)

	m.doc = cfg.Document
	if m.doc.Content == nil {
		m.doc = document.New()
		if cfg.Text != "" {
			m.doc = m.applyAll(m.doc, document.TypeText{Text: typed(cfg.Text)})
			m.doc = m.reflowAll(m.doc)
			m.doc = m.applyAll(m.doc, document.SetCursor{})
		}
	}
	m.rebuildContent()
	return m
}

func (m Model) newEngine(width int) *document.Engine {
	opts := []document.Option{
		document.WithMeasurer(m.cfg.Measurer),
		document.WithLogger(m.cfg.Logger),
	}
	if width > 0 {
		opts = append(opts, document.WithColumnWidth(float64(width)))
	}
	return document.NewEngine(opts...)
}

// Document returns the current snapshot.
func (m Model) Document() document.Document { return m.doc }

// Engine returns the engine the model applies commands with.
func (m Model) Engine() *document.Engine { return m.engine }

// SetDocument replaces the snapshot without emitting a change event.
func (m Model) SetDocument(d document.Document) Model {
	m.doc = d
	m.rebuildContent()
	m.followCursor()
	return m
}

// Apply runs host commands through the same path as key presses.
func (m Model) Apply(cmds ...document.Command) Model {
	m.exec(cmds...)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	if m.cfg.ColumnWidth == 0 && width > 1 {
		m.engine = m.newEngine(width - 1)
		m.doc = m.reflowAll(m.doc)
	}
	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	default:
		return m, nil
	}
}

func (m Model) View() string { return m.viewport.View() }

// exec applies cmds in order, reflows the paragraph under the cursor when
// text changed and reports the batch to OnChange.
func (m *Model) exec(cmds ...document.Command) {
	if len(cmds) == 0 {
		return
	}
	before := m.doc
	d := m.applyAll(before, cmds...)
	textChanged := !sameText(before, d)
	if textChanged {
		var err error
		d, err = measure.Settle(m.engine, d, d.Cursor, m.cfg.MaxReflowPasses)
		if err != nil {
			m.log.Warn("reflow failed", "err", err)
		}
	}
	m.doc = d

	if ch, ok := document.NewChange(document.ChangeSourceLocal, cmds[len(cmds)-1].Kind(), before, d); ok {
		m.log.Debug("document changed",
			"kind", ch.Kind,
			"version", ch.VersionAfter,
			"cursor", ch.CursorAfter.String(),
		)
		if m.cfg.OnChange != nil {
			m.cfg.OnChange(buildChangeEvent(ch, d))
		}
	}
	m.rebuildContent()
	m.followCursor()
}

func (m Model) applyAll(d document.Document, cmds ...document.Command) document.Document {
	for _, cmd := range cmds {
		next, err := m.engine.Apply(d, cmd)
		if err != nil {
			m.log.Warn("command failed", "kind", cmd.Kind(), "err", err)
			continue
		}
		d = next
	}
	return d
}

// reflowAll settles every paragraph, keeping the cursor where it was.
func (m Model) reflowAll(d document.Document) document.Document {
	out, err := measure.SettleAll(m.engine, d, m.cfg.MaxReflowPasses)
	if err != nil {
		m.log.Warn("reflow failed", "err", err)
	}
	return out
}

func sameText(a, b document.Document) bool {
	return a.Content.Text() == b.Content.Text()
}

func (m *Model) rebuildContent() {
	content, row := m.renderContent()
	m.cursorRow = row
	m.viewport.SetContent(content)
}

func (m *Model) followCursor() {
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}

	y := m.viewport.YOffset
	if m.cursorRow < y {
		m.viewport.SetYOffset(m.cursorRow)
		return
	}
	if m.cursorRow >= y+h {
		m.viewport.SetYOffset(m.cursorRow - h + 1)
	}
}
