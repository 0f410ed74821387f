package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/duedo/internal/config"
	"github.com/idilsaglam/duedo/internal/store"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.InfoLevel},
		{"bogus", log.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormatter(t *testing.T) {
	tests := []struct {
		in   string
		want log.Formatter
	}{
		{"json", log.JSONFormatter},
		{"logfmt", log.LogfmtFormatter},
		{"text", log.TextFormatter},
		{"", log.TextFormatter},
	}
	for _, tt := range tests {
		if got := ParseFormatter(tt.in); got != tt.want {
			t.Errorf("ParseFormatter(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewWithoutFileDiscards(t *testing.T) {
	l, err := New(config.LogConfig{Level: "debug"})
	if err != nil {
		t.Fatal(err)
	}
	l.Info("nobody hears this")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewWritesToFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "logs", "duedo.log")
	l, err := New(config.LogConfig{Level: "info", Format: "logfmt", File: p})
	if err != nil {
		t.Fatal(err)
	}
	l.Info("started", "items", 0)
	l.Debug("hidden")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	out := string(b)
	if !strings.Contains(out, "msg=started") || !strings.Contains(out, "items=0") {
		t.Errorf("missing record in %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written at info level: %q", out)
	}
}

func TestApply(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, config.LogConfig{Level: "info"})
	l.Debug("before")
	l.Apply(config.LogConfig{Level: "debug", Format: "text"})
	l.Debug("after")

	out := buf.String()
	if strings.Contains(out, "before") {
		t.Errorf("debug logged before Apply: %q", out)
	}
	if !strings.Contains(out, "after") {
		t.Errorf("debug not logged after Apply: %q", out)
	}
}

func TestStoreObserver(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, config.LogConfig{Level: "debug", Format: "logfmt"})

	s := store.New()
	s.Subscribe(l.StoreObserver())
	it, err := s.Add("Buy milk", "2024-01-01")
	if err != nil {
		t.Fatal(err)
	}
	_ = s.ToggleComplete(it.ID)

	out := buf.String()
	for _, want := range []string{"op=add", "op=toggle", "complete=true", "version=2", "id=" + it.ID.String()} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
