package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type staticChecker bool

func (s staticChecker) IsVerbose() bool { return bool(s) }

func TestDebugRespectsVerbose(t *testing.T) {
	var buf bytes.Buffer
	quiet := NewWithWriter("tour", staticChecker(false), &buf)
	quiet.Debug("frame %d", 1)
	quiet.Info("started")
	if buf.Len() != 0 {
		t.Fatalf("expected no output when not verbose, got %q", buf.String())
	}

	loud := NewWithWriter("tour", staticChecker(true), &buf)
	loud.Debug("frame %d", 7)
	if !strings.Contains(buf.String(), "frame 7") {
		t.Errorf("expected debug line, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "tour") {
		t.Errorf("expected component prefix, got %q", buf.String())
	}
}

func TestWarnAlwaysShown(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("state", nil, &buf)
	l.Warn("flag write failed")
	if !strings.Contains(buf.String(), "flag write failed") {
		t.Errorf("expected warning, got %q", buf.String())
	}
}

func TestFieldsAreRendered(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("ai", staticChecker(true), &buf)
	l.DebugWithFields("summary done", []Field{F("provider", "gemini"), Count(3), Error(errors.New("boom"))})

	out := buf.String()
	for _, want := range []string{"summary done", "provider", "gemini", "count", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestWithComponentKeepsChecker(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("root", staticChecker(true), &buf).WithComponent("faucet")
	l.Info("claimed")
	if !strings.Contains(buf.String(), "faucet") {
		t.Errorf("expected new component prefix, got %q", buf.String())
	}
}

func TestCallbackChecker(t *testing.T) {
	verbose := false
	var buf bytes.Buffer
	l := NewWithCallback("cli", func() bool { return verbose })
	l.base.SetOutput(&buf)

	l.Debug("hidden")
	verbose = true
	l.Debug("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("did not expect hidden line: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected shown line: %q", buf.String())
	}
}
