package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func resetLogger() {
	Init(Options{})
}

func TestInit_Levels(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		logged    []string
		notLogged []string
	}{
		{
			name:      "default",
			logged:    []string{"info msg", "warn msg", "error msg"},
			notLogged: []string{"debug msg"},
		},
		{
			name:   "debug",
			opts:   Options{Debug: true},
			logged: []string{"debug msg", "info msg", "warn msg", "error msg"},
		},
		{
			name:      "quiet",
			opts:      Options{Quiet: true},
			logged:    []string{"error msg"},
			notLogged: []string{"debug msg", "info msg", "warn msg"},
		},
		{
			name:      "quiet wins over debug",
			opts:      Options{Quiet: true, Debug: true},
			logged:    []string{"error msg"},
			notLogged: []string{"debug msg", "info msg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			opts := tt.opts
			opts.Output = buf
			Init(opts)
			defer resetLogger()

			Debug("debug msg")
			Info("info msg")
			Warn("warn msg")
			Error("error msg")

			out := buf.String()
			for _, msg := range tt.logged {
				if !strings.Contains(out, msg) {
					t.Errorf("expected %q to be logged", msg)
				}
			}
			for _, msg := range tt.notLogged {
				if strings.Contains(out, msg) {
					t.Errorf("expected %q to be suppressed", msg)
				}
			}
		})
	}
}

func TestInit_JSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{JSON: true, Output: buf})
	defer resetLogger()

	Info("converted rows", "rows", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "converted rows" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["rows"] != float64(3) {
		t.Errorf("rows = %v", entry["rows"])
	}
}

func TestInit_CustomLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Logger: slog.New(slog.NewTextHandler(buf, nil)), Quiet: true})
	defer resetLogger()

	Info("from custom logger")

	if !strings.Contains(buf.String(), "from custom logger") {
		t.Error("custom logger should ignore the other options")
	}
}

func TestWith_CarriesAttributes(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	With("input", "columns.html").Info("reading")

	out := buf.String()
	if !strings.Contains(out, "input=columns.html") {
		t.Errorf("expected attribute in output, got %q", out)
	}
}
