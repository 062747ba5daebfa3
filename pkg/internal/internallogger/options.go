package internallogger

import "go.uber.org/zap/zapcore"

// Encoding names accepted by LoggerWithFormat.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// settings collects what NewLogger needs before the first core is built.
type settings struct {
	level  zapcore.Level
	format string
	caller bool
	fields map[string]interface{}
}

// LoggerOption adjusts the logger settings before it is built.
type LoggerOption func(*settings)

// LoggerWithLevel sets the starting level. Unknown names fall back to info.
func LoggerWithLevel(levelStr string) LoggerOption {
	return func(s *settings) {
		s.level = ConvertLevel(ParseLogLevel(levelStr))
	}
}

// LoggerWithFormat selects the encoding of the stderr output. Anything other than "console" is JSON.
// Added sinks always write JSON.
func LoggerWithFormat(format string) LoggerOption {
	return func(s *settings) {
		s.format = format
	}
}

// LoggerWithCaller turns the caller field on or off.
func LoggerWithCaller(on bool) LoggerOption {
	return func(s *settings) {
		s.caller = on
	}
}

// LoggerWithFields attaches fields to every log line. Empty keys are dropped and the schema field
// cannot be replaced.
func LoggerWithFields(fields map[string]interface{}) LoggerOption {
	return func(s *settings) {
		for key, value := range fields {
			if key == "" {
				continue
			}
			s.fields[key] = value
		}
	}
}
