package workflows

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/ghuser/worktrack/pkg/logger"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var m map[string]any
		if err := json.Unmarshal(line, &m); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestTemporalLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := temporalLogger{logger.NewWithWriter(&buf, "debug")}

	l.Info("started worker", "task_queue", "worktrack-content")
	l.Warn("retrying", "attempt", 2)
	l.Error("activity failed")

	lines := decodeLines(t, &buf)
	if len(lines) != 3 {
		t.Fatalf("expected 3 log lines, got %d: %s", len(lines), buf.String())
	}
	for i, want := range []string{"DEBUG", "WARN", "ERROR"} {
		if lines[i]["level"] != want {
			t.Errorf("line %d: level %v, want %s", i, lines[i]["level"], want)
		}
	}
	if lines[0]["task_queue"] != "worktrack-content" {
		t.Errorf("fields not forwarded: %v", lines[0])
	}
}

// SDK info lines are hidden at the default info level.
func TestTemporalLogger_InfoHiddenAtInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	l := temporalLogger{logger.NewWithWriter(&buf, "info")}
	l.Info("polling")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %s", buf.String())
	}
}

func TestTemporalLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l := temporalLogger{logger.NewWithWriter(&buf, "debug")}.With("workflow_id", "content-cleanup-1")
	l.Warn("cleanup slow")

	if got := decodeLines(t, &buf)[0]["workflow_id"]; got != "content-cleanup-1" {
		t.Errorf("workflow_id: got %v", got)
	}
}
