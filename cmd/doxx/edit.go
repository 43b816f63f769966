package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/scott-cotton/cli"

	"github.com/iw2rmb/doxx/editor"
	"github.com/iw2rmb/doxx/measure"
)

func edit(cfg *EditConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Edit.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: at most one text file", cli.ErrUsage)
	}
	c, err := cfg.load()
	if err != nil {
		return err
	}
	// The terminal belongs to the editor, so logs only go to log.file.
	log, closeLog, err := newLogger(c.Log, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	var text string
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("could not open %q: %w", args[0], err)
		}
		text = string(data)
	}

	width := cfg.Width
	if width == 0 {
		width = int(c.Layout.ColumnWidth)
	}
	ed := editor.New(editor.Config{
		Text:            text,
		ColumnWidth:     width,
		TabWidth:        c.Layout.TabWidth,
		MaxReflowPasses: c.Layout.MaxReflowPasses,
		Measurer:        measure.NewCache(measure.Cells{TabWidth: c.Layout.TabWidth}, c.Layout.CacheSize),
		Style:           editor.DefaultStyle(),
		ReadOnly:        cfg.ReadOnly,
		Clipboard:       &editor.MemoryClipboard{},
		Logger:          log,
	})
	log.Info("editor started", "file", cfg.fileName(args), "width", width)

	p := tea.NewProgram(app{editor: ed}, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if a, ok := final.(app); ok {
		d := a.editor.Document()
		log.Info("editor closed", "version", d.Version)
		if cfg.Print {
			fmt.Fprintln(cc.Out, d.Text())
		}
	}
	return nil
}

func (cfg *EditConfig) fileName(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// app hosts the editor and owns the quit keys; ctrl+c is the editor's copy.
type app struct {
	editor editor.Model
}

func (a app) Init() tea.Cmd { return a.editor.Init() }

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "ctrl+q", "esc":
			return a, tea.Quit
		}
	}
	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	return a, cmd
}

func (a app) View() string { return a.editor.View() }
