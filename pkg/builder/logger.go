package builder

import (
	internalLogger "github.com/joeydtaylor/audiovis/pkg/internal/internallogger"
	"github.com/joeydtaylor/audiovis/pkg/internal/types"
	"github.com/joeydtaylor/audiovis/pkg/logschema"
)

type LoggerOption = internalLogger.LoggerOption

type SinkConfig = types.SinkConfig

type SinkType = types.SinkType

type Logger = types.Logger

const (
	FileSink   SinkType = "file"
	StdoutSink SinkType = "stdout"
)

func NewLogger(options ...internalLogger.LoggerOption) types.Logger {
	return internalLogger.NewLogger(options...)
}

// LoggerWithLevel configures the logger to use the specified log level
func LoggerWithLevel(levelStr string) LoggerOption {
	return internalLogger.LoggerWithLevel(levelStr)
}

// Log encodings accepted by LoggerWithFormat.
const (
	LogFormatJSON    = internalLogger.FormatJSON
	LogFormatConsole = internalLogger.FormatConsole
)

// LoggerWithFormat selects JSON or console encoding for the stderr output.
func LoggerWithFormat(format string) LoggerOption {
	return internalLogger.LoggerWithFormat(format)
}

// LoggerWithCaller turns the caller field on or off.
func LoggerWithCaller(on bool) LoggerOption {
	return internalLogger.LoggerWithCaller(on)
}

// LoggerWithFields attaches fields to every log line.
func LoggerWithFields(fields map[string]interface{}) LoggerOption {
	return internalLogger.LoggerWithFields(fields)
}

// Log schema constants for the standard audiovis log format.
const (
	LogSchemaID    = logschema.SchemaID
	LogSchemaField = logschema.FieldSchema
)

// LogLevel is exported from the internal types package.
type LogLevel = types.LogLevel

// Export log levels to be accessible under the builder package
const (
	DebugLevel  = types.DebugLevel
	InfoLevel   = types.InfoLevel
	WarnLevel   = types.WarnLevel
	ErrorLevel  = types.ErrorLevel
	DPanicLevel = types.DPanicLevel
	PanicLevel  = types.PanicLevel
	FatalLevel  = types.FatalLevel
)
