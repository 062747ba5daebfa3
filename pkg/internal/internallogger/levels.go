package internallogger

import (
	"strings"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
	"go.uber.org/zap/zapcore"
)

// types.LogLevel and zapcore.Level list the same levels in the same order, offset by one.
const levelOffset = types.LogLevel(zapcore.DebugLevel) - types.DebugLevel

// ParseLogLevel converts a level name to types.LogLevel. "warning" is accepted for warn and
// unknown names map to info.
func ParseLogLevel(levelStr string) types.LogLevel {
	name := strings.ToLower(strings.TrimSpace(levelStr))
	if name == "warning" {
		name = "warn"
	}
	lvl, err := zapcore.ParseLevel(name)
	if err != nil || name == "" {
		return types.InfoLevel
	}
	return convertZapLevel(lvl)
}

// ConvertLevel converts a types.LogLevel to a zap level. Out of range values map to info.
func ConvertLevel(level types.LogLevel) zapcore.Level {
	if level < types.DebugLevel || level > types.FatalLevel {
		return zapcore.InfoLevel
	}
	return zapcore.Level(level + levelOffset)
}

func convertZapLevel(level zapcore.Level) types.LogLevel {
	if level < zapcore.DebugLevel || level > zapcore.FatalLevel {
		return types.InfoLevel
	}
	return types.LogLevel(level) - levelOffset
}
