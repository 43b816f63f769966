package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/iw2rmb/doxx/document"
	"github.com/iw2rmb/doxx/measure"
)

// Script is a replayable editing session. In YAML it is either a bare list
// of commands or a mapping:
//
//	text: "The quick brown fox"
//	reflow: true
//	commands:
//	  - {kind: PRESS_KEY, key: ENTER}
//	  - {kind: TYPE_TEXT, text: jumps}
type Script struct {
	Text     string                 `yaml:"text"`
	Reflow   bool                   `yaml:"reflow"`
	Commands []document.CommandSpec `yaml:"commands"`
}

func parseScript(data []byte) (Script, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Script{}, nil
	}
	if trimmed[0] == '-' || trimmed[0] == '[' {
		var specs []document.CommandSpec
		if err := yaml.Unmarshal(data, &specs); err != nil {
			return Script{}, fmt.Errorf("decoding command list: %w", err)
		}
		return Script{Commands: specs}, nil
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("decoding script: %w", err)
	}
	return s, nil
}

// run applies s to an empty document. Initial text is typed, settled when
// reflow is on and the cursor returned to the start. step, when set, sees
// the snapshot after every command.
func (s Script) run(e *document.Engine, reflow bool, maxPasses int, step func(int, document.CommandSpec, document.Document) error) (document.Document, error) {
	d := document.New()
	var err error
	if s.Text != "" {
		if d, err = e.Apply(d, document.TypeText{Text: s.Text}); err != nil {
			return d, err
		}
		if reflow {
			if d, err = measure.SettleAll(e, d, maxPasses); err != nil {
				return d, err
			}
		}
		if d, err = e.Apply(d, document.SetCursor{}); err != nil {
			return d, err
		}
	}
	for i, spec := range s.Commands {
		cmd, err := spec.Command()
		if err != nil {
			return d, fmt.Errorf("command %d: %w", i, err)
		}
		next, err := e.Apply(d, cmd)
		if err != nil {
			return d, fmt.Errorf("command %d (%s): %w", i, spec.Kind, err)
		}
		if reflow && next.Content.Text() != d.Content.Text() {
			if next, err = measure.Settle(e, next, next.Cursor, maxPasses); err != nil {
				return d, fmt.Errorf("command %d reflow: %w", i, err)
			}
		}
		d = next
		if step != nil {
			if err := step(i, spec, d); err != nil {
				return d, err
			}
		}
	}
	return d, nil
}

func replay(cfg *ReplayConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Replay.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: replay needs one script file", cli.ErrUsage)
	}
	c, err := cfg.load()
	if err != nil {
		return err
	}
	if cfg.Width != "" {
		w, err := strconv.ParseFloat(cfg.Width, 64)
		if err != nil || w <= 0 {
			return fmt.Errorf("%w: bad -width %q", cli.ErrUsage, cfg.Width)
		}
		c.Layout.ColumnWidth = w
	}
	log, closeLog, err := newLogger(c.Log, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	data, err := readScript(cc, args[0])
	if err != nil {
		return err
	}
	script, err := parseScript(data)
	if err != nil {
		return fmt.Errorf("error processing %s: %w", args[0], err)
	}

	m, err := c.Measurer()
	if err != nil {
		return err
	}
	opts := []document.Option{document.WithMeasurer(m), document.WithLogger(log)}
	if c.Layout.ColumnWidth > 0 {
		opts = append(opts, document.WithColumnWidth(c.Layout.ColumnWidth))
	}
	e := document.NewEngine(opts...)

	tp := newTreePrinter(cc.Out, cfg.colored(cc.Out))
	var step func(int, document.CommandSpec, document.Document) error
	if cfg.Steps {
		step = func(i int, spec document.CommandSpec, d document.Document) error {
			fmt.Fprintf(cc.Out, "# %d %s\n", i, spec.Kind)
			return tp.print(d)
		}
	}
	d, err := script.run(e, cfg.Reflow || script.Reflow, c.Layout.MaxReflowPasses, step)
	if err != nil {
		return err
	}
	log.Debug("replay finished", "commands", len(script.Commands), "version", d.Version)
	if cfg.Steps {
		return nil
	}
	return tp.print(d)
}

func readScript(cc *cli.Context, file string) ([]byte, error) {
	if file == "-" {
		data, err := io.ReadAll(cc.In)
		if err != nil {
			return nil, fmt.Errorf("error reading: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", file, err)
	}
	return data, nil
}
