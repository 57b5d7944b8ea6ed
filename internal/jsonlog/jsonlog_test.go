package jsonlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestJSONLogger(t *testing.T) {
	type entry struct {
		Level      string            `json:"level"`
		Message    string            `json:"message"`
		Properties map[string]string `json:"properties"`
		Trace      string            `json:"trace"`
	}

	decode := func(t *testing.T, buf *bytes.Buffer) entry {
		t.Helper()
		var e entry
		if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
			t.Fatalf("log line is not valid JSON: %v", err)
		}
		return e
	}

	t.Run("INFO level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelInfo)
		l.PrintInfo("starting server", map[string]string{"addr": ":4000"})
		e := decode(t, &buf)
		if e.Level != "INFO" {
			t.Errorf("expected level INFO; got %s", e.Level)
		}
		if e.Message != "starting server" {
			t.Errorf("unexpected message %q", e.Message)
		}
		if e.Properties["addr"] != ":4000" {
			t.Errorf("expected addr property; got %v", e.Properties)
		}
		if e.Trace != "" {
			t.Error("INFO entries should not carry a stack trace")
		}
	})

	t.Run("WARNING level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelInfo)
		l.PrintWarning("mailbox check failed", nil)
		e := decode(t, &buf)
		if e.Level != "WARNING" {
			t.Errorf("expected level WARNING; got %s", e.Level)
		}
	})

	t.Run("ERROR level includes trace", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelInfo)
		l.PrintError(errors.New("boom"), nil)
		e := decode(t, &buf)
		if e.Level != "ERROR" {
			t.Errorf("expected level ERROR; got %s", e.Level)
		}
		if e.Trace == "" {
			t.Error("ERROR entries should carry a stack trace")
		}
	})

	t.Run("below minimum level is dropped", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelError)
		l.PrintInfo("noise", nil)
		l.PrintWarning("more noise", nil)
		if buf.Len() != 0 {
			t.Errorf("expected no output; got %q", buf.String())
		}
	})
}
