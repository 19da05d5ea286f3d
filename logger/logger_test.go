package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestConfigureLevels(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"TRACE", logrus.TraceLevel},
		{"warn", logrus.WarnLevel},
		{"", logrus.InfoLevel},
		{"chatty", logrus.InfoLevel},
	}
	for _, tt := range tests {
		l := logrus.New()
		Configure(l, &bytes.Buffer{}, tt.level, "")
		if l.GetLevel() != tt.want {
			t.Errorf("level %q -> %v, want %v", tt.level, l.GetLevel(), tt.want)
		}
	}
}

func TestConfigureJSON(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	Configure(l, &buf, "info", "JSON")
	l.WithField("frame", 12).Info("attempt finished")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if rec["msg"] != "attempt finished" || rec["frame"] != float64(12) {
		t.Errorf("record = %v", rec)
	}
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, logrus.InfoLevel)
	l.Debug("hidden")
	l.WithField("state", "Exploded").Info("craft state changed")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug line leaked through an info logger")
	}
	if !strings.Contains(out, "state=Exploded") {
		t.Errorf("missing field in %q", out)
	}
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roads.log")
	c, err := ToFile(path)
	if err != nil {
		t.Fatalf("ToFile: %v", err)
	}
	Log.Warn("written to file")
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file = %q", data)
	}
	if Log.Out != os.Stderr {
		t.Error("Close should restore stderr")
	}
}
