package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/iw2rmb/doxx/internal/config"
)

type MainConfig struct {
	ConfigFile string `cli:"name=config desc='TOML configuration file'"`
	LogLevel   string `cli:"name=log-level desc='log level (debug|info|warn|error)'"`

	Main *cli.Command
}

// load reads the configuration file and environment. -log-level wins over both.
func (cfg *MainConfig) load() (config.Config, error) {
	c, err := config.Load(cfg.ConfigFile)
	if err != nil {
		return c, err
	}
	if cfg.LogLevel != "" {
		c.Log.Level = cfg.LogLevel
		if err := c.Validate(); err != nil {
			return c, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	return c, nil
}

type EditConfig struct {
	*MainConfig

	Width    int  `cli:"name=width desc='column width in cells (0 follows the terminal)'"`
	ReadOnly bool `cli:"name=read-only desc='open the document without editing'"`
	Print    bool `cli:"name=print desc='print the final text on exit'"`

	Edit *cli.Command
}

type ReplayConfig struct {
	*MainConfig

	Width  string `cli:"name=width desc='column width overriding layout.column_width'"`
	Reflow bool   `cli:"name=reflow desc='settle the cursor paragraph after every text change'"`
	Steps  bool   `cli:"name=steps desc='print the tree after every command'"`
	Color  bool   `cli:"name=color desc='print in color'"`

	Replay *cli.Command
}

// colored reports whether output to w gets color: -color forces it,
// otherwise terminals get color.
func (cfg *ReplayConfig) colored(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type ServeConfig struct {
	*MainConfig

	Addr string `cli:"name=addr desc='listen address overriding server.listen'"`

	Serve *cli.Command
}

// newLogger builds the process logger. It writes to c.File when set and to
// fallback otherwise; the returned func closes the file.
func newLogger(c config.Log, fallback io.Writer) (*slog.Logger, func() error, error) {
	lvl, err := c.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	w, closeFn := fallback, func() error { return nil }
	if c.File != "" {
		f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w, closeFn = f, f.Close
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), closeFn, nil
}
