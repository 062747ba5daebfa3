package internallogger

import (
	"errors"
	"strings"
	"testing"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLog_WritesFields(t *testing.T) {
	logger := NewLogger()
	core, obs := observer.New(zapcore.DebugLevel)

	logger.mu.Lock()
	logger.logger = zap.New(core)
	logger.mu.Unlock()

	logger.Log(types.InfoLevel, "msg", "a", "b", "c", 3, "orphan")

	entries := obs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].Context
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}

	if fields[0].Key != "a" || fields[1].Key != "c" {
		t.Fatalf("unexpected field keys: %v, %v", fields[0].Key, fields[1].Key)
	}
}

func TestLog_IgnoresNonStringKeys(t *testing.T) {
	logger := NewLogger()
	core, obs := observer.New(zapcore.DebugLevel)

	logger.mu.Lock()
	logger.logger = zap.New(core)
	logger.mu.Unlock()

	logger.Log(types.InfoLevel, "msg", 123, "skip", "k", "v")

	entries := obs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].Context
	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}
	if fields[0].Key != "k" {
		t.Fatalf("expected field key 'k', got %q", fields[0].Key)
	}
}

func TestLog_RespectsCoreLevel(t *testing.T) {
	logger := NewLogger()
	core, obs := observer.New(zapcore.WarnLevel)

	logger.mu.Lock()
	logger.logger = zap.New(core)
	logger.mu.Unlock()

	logger.Log(types.InfoLevel, "info")
	logger.Log(types.WarnLevel, "warn")

	entries := obs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Entry.Level != zapcore.WarnLevel {
		t.Fatalf("expected warn entry, got %v", entries[0].Entry.Level)
	}
}

func TestLog_NilLoggerNoPanic(t *testing.T) {
	logger := NewLogger()
	logger.mu.Lock()
	logger.logger = nil
	logger.mu.Unlock()

	logger.Log(types.InfoLevel, "msg")
}

func TestFlush_NilLogger(t *testing.T) {
	logger := NewLogger()
	logger.mu.Lock()
	logger.logger = nil
	logger.mu.Unlock()

	if err := logger.Flush(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestConvertLevel_Defaults(t *testing.T) {
	if got := ConvertLevel(types.LogLevel(99)); got != zapcore.InfoLevel {
		t.Fatalf("expected default zapcore.InfoLevel, got %v", got)
	}
	if got := convertZapLevel(zapcore.Level(99)); got != types.InfoLevel {
		t.Fatalf("expected default types.InfoLevel, got %v", got)
	}
}

func TestConvertLevel_RoundTrip(t *testing.T) {
	want := map[types.LogLevel]zapcore.Level{
		types.DebugLevel:  zapcore.DebugLevel,
		types.InfoLevel:   zapcore.InfoLevel,
		types.WarnLevel:   zapcore.WarnLevel,
		types.ErrorLevel:  zapcore.ErrorLevel,
		types.DPanicLevel: zapcore.DPanicLevel,
		types.PanicLevel:  zapcore.PanicLevel,
		types.FatalLevel:  zapcore.FatalLevel,
	}
	for lvl, zl := range want {
		if got := ConvertLevel(lvl); got != zl {
			t.Fatalf("ConvertLevel(%v) = %v, expected %v", lvl, got, zl)
		}
		if got := convertZapLevel(zl); got != lvl {
			t.Fatalf("convertZapLevel(%v) = %v, expected %v", zl, got, lvl)
		}
	}
}

func TestLog_ComponentIsFlatObject(t *testing.T) {
	logger := NewLogger()
	core, obs := observer.New(zapcore.DebugLevel)

	logger.mu.Lock()
	logger.logger = zap.New(core)
	logger.mu.Unlock()

	var missing *types.ComponentMetadata
	logger.Log(types.InfoLevel, "msg",
		"component", types.ComponentMetadata{ID: "abc", Type: "EXPORTER"},
		"named", &types.ComponentMetadata{ID: "def", Type: "SINK", Name: "s3"},
		"missing", missing,
		"error", errors.New("boom"),
	)

	ctx := obs.All()[0].ContextMap()
	comp, ok := ctx["component"].(map[string]interface{})
	if !ok || comp["id"] != "abc" || comp["type"] != "EXPORTER" {
		t.Fatalf("unexpected component %v", ctx["component"])
	}
	if _, ok := comp["name"]; ok {
		t.Fatalf("expected an empty name to be omitted, got %v", comp)
	}
	if named := ctx["named"].(map[string]interface{}); named["name"] != "s3" {
		t.Fatalf("unexpected named component %v", named)
	}
	if _, ok := ctx["missing"]; ok {
		t.Fatalf("expected a nil component to be skipped, got %v", ctx)
	}
	if ctx["error"] != "boom" {
		t.Fatalf("expected the error message, got %v", ctx["error"])
	}
}

func TestNewEncoder_Console(t *testing.T) {
	entry := zapcore.Entry{Level: zapcore.WarnLevel, Message: "hello"}
	buf, err := newEncoder(FormatConsole).EncodeEntry(entry, []zapcore.Field{zap.String("k", "v")})
	if err != nil {
		t.Fatalf("EncodeEntry error: %v", err)
	}
	line := buf.String()
	if strings.HasPrefix(line, "{") || !strings.Contains(line, "WARN") || !strings.Contains(line, `{"k": "v"}`) {
		t.Fatalf("expected a console line, got %q", line)
	}

	buf, err = newEncoder("").EncodeEntry(entry, nil)
	if err != nil {
		t.Fatalf("EncodeEntry error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("expected JSON by default, got %q", buf.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]types.LogLevel{
		"debug":   types.DebugLevel,
		"info":    types.InfoLevel,
		"warn":    types.WarnLevel,
		"WARNING": types.WarnLevel,
		"error":   types.ErrorLevel,
		"dpanic":  types.DPanicLevel,
		"panic":   types.PanicLevel,
		"fatal":   types.FatalLevel,
		"bogus":   types.InfoLevel,
	}

	for input, expect := range cases {
		if got := ParseLogLevel(input); got != expect {
			t.Fatalf("ParseLogLevel(%q) = %v, expected %v", input, got, expect)
		}
	}
}
