package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iw2rmb/doxx/measure"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doxx.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config (-want +got):\n%s", diff)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
[layout]
column_width = 72
tab_width = 8

[server]
listen = "127.0.0.1:9000"
max_sessions = 16

[log]
level = "debug"
file = "/tmp/doxx.log"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	want.Layout.ColumnWidth = 72
	want.Layout.TabWidth = 8
	want.Server = Server{Listen: "127.0.0.1:9000", MaxSessions: 16}
	want.Log = Log{Level: "debug", File: "/tmp/doxx.log"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config (-want +got):\n%s", diff)
	}
	if lvl, _ := cfg.Log.SlogLevel(); lvl != slog.LevelDebug {
		t.Fatalf("level=%v, want %v", lvl, slog.LevelDebug)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "[layout]\ncolumn_width = 72\n")
	t.Setenv("DOXX_LAYOUT_COLUMN_WIDTH", "40.5")
	t.Setenv("DOXX_SERVER_LISTEN", ":7000")
	t.Setenv("DOXX_LAYOUT_TAB_WIDTH", "not-a-number")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := cfg.Layout.ColumnWidth, 40.5; got != want {
		t.Fatalf("column_width=%v, want %v", got, want)
	}
	if got, want := cfg.Server.Listen, ":7000"; got != want {
		t.Fatalf("listen=%q, want %q", got, want)
	}
	if got, want := cfg.Layout.TabWidth, measure.DefaultTabWidth; got != want {
		t.Fatalf("tab_width=%d, want %d", got, want)
	}
}

func TestLoad_UnknownKeyIsParseError(t *testing.T) {
	path := writeFile(t, "[layout]\ncolumn_widht = 72\n")
	_, err := Load(path)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err=%v, want *ParseError", err)
	}
	if perr.Path != path {
		t.Fatalf("path=%q, want %q", perr.Path, path)
	}
}

func TestLoad_SyntaxErrorHasPosition(t *testing.T) {
	path := writeFile(t, "[layout]\ncolumn_width = = 1\n")
	_, err := Load(path)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err=%v, want *ParseError", err)
	}
	if perr.Line != 2 {
		t.Fatalf("line=%d, want %d", perr.Line, 2)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err=%v, want ErrNotExist", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative width", func(c *Config) { c.Layout.ColumnWidth = -1 }},
		{"zero tab", func(c *Config) { c.Layout.TabWidth = 0 }},
		{"font without size", func(c *Config) { c.Font = Font{Path: "x.ttf"} }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"negative sessions", func(c *Config) { c.Server.MaxSessions = -1 }},
	}
	for _, tt := range tests {
		cfg := Default()
		tt.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected an error", tt.name)
		}
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config: %v", err)
	}
}

func TestMeasurer_CellsByDefault(t *testing.T) {
	m, err := Default().Measurer()
	if err != nil {
		t.Fatalf("Measurer: %v", err)
	}
	if got := m.Measure("ab\u754c"); got != 4 {
		t.Fatalf("width=%v, want %v", got, 4)
	}
}

func TestMeasurer_MissingFont(t *testing.T) {
	cfg := Default()
	cfg.Font.Path = filepath.Join(t.TempDir(), "missing.ttf")
	if _, err := cfg.Measurer(); err == nil {
		t.Fatalf("expected an error for a missing font")
	}
}
