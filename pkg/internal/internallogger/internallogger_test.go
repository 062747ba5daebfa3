package internallogger_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joeydtaylor/audiovis/pkg/internal/internallogger"
	"github.com/joeydtaylor/audiovis/pkg/internal/types"
	"github.com/joeydtaylor/audiovis/pkg/logschema"
)

func TestNewLogger_DefaultLevel(t *testing.T) {
	logger := internallogger.NewLogger()
	if got := logger.GetLevel(); got != types.InfoLevel {
		t.Fatalf("expected InfoLevel, got %v", got)
	}
}

func TestNewLogger_WithLevel(t *testing.T) {
	logger := internallogger.NewLogger(internallogger.LoggerWithLevel("debug"))
	if got := logger.GetLevel(); got != types.DebugLevel {
		t.Fatalf("expected DebugLevel, got %v", got)
	}

	logger = internallogger.NewLogger(internallogger.LoggerWithLevel("unknown"))
	if got := logger.GetLevel(); got != types.InfoLevel {
		t.Fatalf("expected InfoLevel on unknown level, got %v", got)
	}
}

func TestLogger_SetLevel(t *testing.T) {
	logger := internallogger.NewLogger()
	logger.SetLevel(types.ErrorLevel)
	if got := logger.GetLevel(); got != types.ErrorLevel {
		t.Fatalf("expected ErrorLevel, got %v", got)
	}
}

func TestLogger_AddRemoveListSinks(t *testing.T) {
	logger := internallogger.NewLogger(internallogger.LoggerWithLevel("debug"))

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "app.log")

	if err := logger.AddSink("file", types.SinkConfig{Type: "file", Config: map[string]interface{}{"path": path}}); err != nil {
		t.Fatalf("AddSink(file) error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}

	if err := logger.AddSink("stdout", types.SinkConfig{Type: "stdout"}); err != nil {
		t.Fatalf("AddSink(stdout) error: %v", err)
	}

	sinks, err := logger.ListSinks()
	if err != nil {
		t.Fatalf("ListSinks error: %v", err)
	}
	if len(sinks) != 2 || sinks[0] != "file" || sinks[1] != "stdout" {
		t.Fatalf("expected sorted [file stdout], got %v", sinks)
	}

	if err := logger.RemoveSink("stdout"); err != nil {
		t.Fatalf("RemoveSink error: %v", err)
	}
	if err := logger.RemoveSink("missing"); !errors.Is(err, internallogger.ErrSinkNotFound) {
		t.Fatalf("expected ErrSinkNotFound, got %v", err)
	}
}

func TestLogger_AddSinkInvalidConfig(t *testing.T) {
	logger := internallogger.NewLogger()

	if err := logger.AddSink("file", types.SinkConfig{Type: "file", Config: map[string]interface{}{}}); !errors.Is(err, internallogger.ErrSinkConfig) {
		t.Fatalf("expected ErrSinkConfig for a missing file path, got %v", err)
	}
	if err := logger.AddSink("network", types.SinkConfig{Type: "network"}); !errors.Is(err, internallogger.ErrSinkConfig) {
		t.Fatalf("expected ErrSinkConfig for an unsupported sink type, got %v", err)
	}
}

func TestLogger_LogHandlesOddKeys(t *testing.T) {
	logger := internallogger.NewLogger(internallogger.LoggerWithLevel("debug"))

	logger.Log(types.InfoLevel, "odd keys", "key", "value", "orphan")
	logger.Log(types.InfoLevel, "non-string key", 123, "value")
}

func TestLogger_Flush(t *testing.T) {
	logger := internallogger.NewLogger()
	if err := logger.Flush(); err != nil {
		t.Fatalf("Flush error: %v", err)
	}
}

func readLines(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(string(raw)), "\n") {
		var rec map[string]interface{}
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("log line is not JSON: %v (%q)", err, line)
		}
		out = append(out, rec)
	}
	return out
}

func TestLogger_CallerAndStaticFields(t *testing.T) {
	dir := t.TempDir()
	for _, caller := range []bool{true, false} {
		logger := internallogger.NewLogger(
			internallogger.LoggerWithCaller(caller),
			internallogger.LoggerWithFormat(internallogger.FormatConsole),
			internallogger.LoggerWithFields(map[string]interface{}{
				"host":                "render-01",
				logschema.FieldSchema: "other",
				"":                    "dropped",
			}),
		)
		path := filepath.Join(dir, fmt.Sprintf("caller-%v.log", caller))
		if err := logger.AddSink("file", types.SinkConfig{Type: "file", Config: map[string]interface{}{"path": path}}); err != nil {
			t.Fatalf("AddSink(file) error: %v", err)
		}
		logger.Info("hello")
		if err := logger.RemoveSink("file"); err != nil {
			t.Fatalf("RemoveSink error: %v", err)
		}

		rec := readLines(t, path)[0]
		if _, ok := rec[logschema.FieldCaller]; ok != caller {
			t.Fatalf("caller=%v: unexpected caller field presence in %v", caller, rec)
		}
		if caller && !strings.HasPrefix(rec[logschema.FieldCaller].(string), "internallogger/internallogger_test.go") {
			t.Fatalf("expected the caller to point at this test, got %v", rec[logschema.FieldCaller])
		}
		if rec["host"] != "render-01" || rec[logschema.FieldSchema] != logschema.SchemaID {
			t.Fatalf("unexpected static fields %v", rec)
		}
		if _, ok := rec[""]; ok {
			t.Fatalf("expected the empty key to be dropped, got %v", rec)
		}
	}
}

func TestLogger_FileSinkCarriesSchemaAndComponent(t *testing.T) {
	logger := internallogger.NewLogger(internallogger.LoggerWithLevel("debug"))
	path := filepath.Join(t.TempDir(), "run.log")

	if err := logger.AddSink("file", types.SinkConfig{Type: "file", Config: map[string]interface{}{"path": path}}); err != nil {
		t.Fatalf("AddSink(file) error: %v", err)
	}
	if err := logger.AddSink("file", types.SinkConfig{Type: "file", Config: map[string]interface{}{"path": path}}); !errors.Is(err, internallogger.ErrSinkExists) {
		t.Fatalf("expected ErrSinkExists for a duplicate sink id, got %v", err)
	}

	logger.Info("chunk done",
		"component", types.ComponentMetadata{ID: "abc", Type: "ORCHESTRATOR"},
		"chunk", 3,
	)
	if err := logger.Flush(); err != nil {
		t.Fatalf("Flush error: %v", err)
	}

	rec := readLines(t, path)[0]
	if rec[logschema.FieldSchema] != logschema.SchemaID {
		t.Fatalf("expected schema %q, got %v", logschema.SchemaID, rec[logschema.FieldSchema])
	}
	comp, ok := rec["component"].(map[string]interface{})
	if !ok || comp["type"] != "ORCHESTRATOR" || comp["id"] != "abc" {
		t.Fatalf("expected component map, got %v", rec["component"])
	}
	if rec["chunk"] != float64(3) {
		t.Fatalf("expected chunk 3, got %v", rec["chunk"])
	}
}
