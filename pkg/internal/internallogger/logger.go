// Package internallogger adapts zap to types.Logger. Every line carries the audiovis log schema
// identifier, and component metadata values are flattened to id, type and name.
package internallogger

import (
	"os"
	"sort"
	"sync"

	"github.com/joeydtaylor/audiovis/pkg/logschema"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// callerSkip hides the adapter's own frames: the level method and Log.
const callerSkip = 2

type ZapLoggerAdapter struct {
	mu          sync.Mutex
	logger      *zap.Logger
	atomicLevel zap.AtomicLevel
	baseCore    zapcore.Core
	baseFields  []zap.Field
	caller      bool
	sinks       map[string]sinkEntry
}

// NewLogger builds an adapter that writes to stderr, keeping stdout free for command output. Without
// options it logs JSON at info with the caller attached.
func NewLogger(options ...LoggerOption) *ZapLoggerAdapter {
	s := settings{
		level:  zapcore.InfoLevel,
		format: FormatJSON,
		caller: true,
		fields: map[string]interface{}{},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&s)
	}
	s.fields[logschema.FieldSchema] = logschema.SchemaID

	z := &ZapLoggerAdapter{
		atomicLevel: zap.NewAtomicLevelAt(s.level),
		baseFields:  sortedFields(s.fields),
		caller:      s.caller,
		sinks:       make(map[string]sinkEntry),
	}
	z.baseCore = zapcore.NewCore(newEncoder(s.format), zapcore.Lock(os.Stderr), z.atomicLevel)

	z.mu.Lock()
	z.rebuildLocked()
	z.mu.Unlock()
	return z
}

// sortedFields turns the static fields into zap fields in key order so lines are stable.
func sortedFields(fields map[string]interface{}) []zap.Field {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, field(k, fields[k]))
	}
	return out
}

// rebuildLocked tees the stderr core with every sink core. z.mu must be held.
func (z *ZapLoggerAdapter) rebuildLocked() {
	cores := make([]zapcore.Core, 0, 1+len(z.sinks))
	cores = append(cores, z.baseCore)
	for _, id := range z.sinkIDsLocked() {
		cores = append(cores, z.sinks[id].core)
	}
	opts := []zap.Option{zap.AddCallerSkip(callerSkip)}
	if z.caller {
		opts = append(opts, zap.AddCaller())
	}
	z.logger = zap.New(zapcore.NewTee(cores...), opts...).With(z.baseFields...)
}
