// Package config loads settings for the doxx binary from a TOML file and
// DOXX_* environment variables. Environment values override the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/iw2rmb/doxx/document"
	"github.com/iw2rmb/doxx/measure"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DOXX_"

type Config struct {
	Layout Layout `toml:"layout"`
	Font   Font   `toml:"font"`
	Server Server `toml:"server"`
	Log    Log    `toml:"log"`
}

// Layout holds reflow settings. ColumnWidth is in the measurer's unit:
// terminal cells, or millimetres when a font is configured. Zero lets the
// editor follow the terminal width.
type Layout struct {
	ColumnWidth     float64 `toml:"column_width"`
	TabWidth        int     `toml:"tab_width"`
	MaxReflowPasses int     `toml:"max_reflow_passes"`
	CacheSize       int     `toml:"cache_size"`
}

// Font selects font-metric measurement. Path wins over Family.
type Font struct {
	Path   string  `toml:"path"`
	Family string  `toml:"family"`
	Size   float64 `toml:"size"`
}

type Server struct {
	Listen string `toml:"listen"`
	// MaxSessions caps live sessions. Zero means unlimited.
	MaxSessions int `toml:"max_sessions"`
}

type Log struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Layout: Layout{
			TabWidth:        measure.DefaultTabWidth,
			MaxReflowPasses: measure.DefaultMaxPasses,
			CacheSize:       measure.DefaultCacheSize,
		},
		Font:   Font{Size: 12},
		Server: Server{Listen: ":8090"},
		Log:    Log{Level: "info"},
	}
}

// Load reads path over the defaults and applies environment overrides. An
// empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := cfg.decode(path, data); err != nil {
			return cfg, err
		}
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) decode(source string, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Layout.ColumnWidth = envFloat("LAYOUT_COLUMN_WIDTH", c.Layout.ColumnWidth)
	c.Layout.TabWidth = envInt("LAYOUT_TAB_WIDTH", c.Layout.TabWidth)
	c.Layout.MaxReflowPasses = envInt("LAYOUT_MAX_REFLOW_PASSES", c.Layout.MaxReflowPasses)
	c.Layout.CacheSize = envInt("LAYOUT_CACHE_SIZE", c.Layout.CacheSize)

	c.Font.Path = envOr("FONT_PATH", c.Font.Path)
	c.Font.Family = envOr("FONT_FAMILY", c.Font.Family)
	c.Font.Size = envFloat("FONT_SIZE", c.Font.Size)

	c.Server.Listen = envOr("SERVER_LISTEN", c.Server.Listen)
	c.Server.MaxSessions = envInt("SERVER_MAX_SESSIONS", c.Server.MaxSessions)

	c.Log.Level = envOr("LOG_LEVEL", c.Log.Level)
	c.Log.File = envOr("LOG_FILE", c.Log.File)
}

func (c Config) Validate() error {
	if c.Layout.ColumnWidth < 0 {
		return fmt.Errorf("layout.column_width must not be negative, got %v", c.Layout.ColumnWidth)
	}
	if c.Layout.TabWidth <= 0 {
		return fmt.Errorf("layout.tab_width must be positive, got %d", c.Layout.TabWidth)
	}
	if c.Server.MaxSessions < 0 {
		return fmt.Errorf("server.max_sessions must not be negative, got %d", c.Server.MaxSessions)
	}
	if (c.Font.Path != "" || c.Font.Family != "") && c.Font.Size <= 0 {
		return fmt.Errorf("font.size must be positive, got %v", c.Font.Size)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses Level ("debug", "info", "warn", "error").
func (l Log) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(l.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}

// Measurer builds the configured text measurement, memoized. A font path or
// family selects font metrics; otherwise text is measured in terminal cells.
func (c Config) Measurer() (document.Measurer, error) {
	var m document.Measurer = measure.Cells{TabWidth: c.Layout.TabWidth}
	switch {
	case c.Font.Path != "":
		f, err := measure.LoadFace(c.Font.Path, c.Font.Size)
		if err != nil {
			return nil, err
		}
		m = f
	case c.Font.Family != "":
		f, err := measure.SystemFace(c.Font.Family, c.Font.Size)
		if err != nil {
			return nil, err
		}
		m = f
	}
	return measure.NewCache(m, c.Layout.CacheSize), nil
}

// ParseError reports a malformed config file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
