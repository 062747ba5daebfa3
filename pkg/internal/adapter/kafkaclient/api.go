package kafkaclient

import (
	"sort"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

// GetComponentMetadata returns the notifier's metadata.
func (n *Notifier) GetComponentMetadata() types.ComponentMetadata {
	return n.componentMetadata
}

// SetComponentMetadata sets the name and id.
func (n *Notifier) SetComponentMetadata(name string, id string) {
	n.componentMetadata.Name = name
	n.componentMetadata.ID = id
}

// ConnectLogger attaches loggers.
func (n *Notifier) ConnectLogger(loggers ...types.Logger) {
	n.loggersLock.Lock()
	defer n.loggersLock.Unlock()
	n.loggers = append(n.loggers, loggers...)
}

// NotifyLoggers emits a log event to all attached loggers at or below their level.
func (n *Notifier) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	n.loggersLock.Lock()
	loggers := append([]types.Logger(nil), n.loggers...)
	n.loggersLock.Unlock()

	for _, logger := range loggers {
		if logger == nil || logger.GetLevel() > level {
			continue
		}
		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		default:
			logger.Error(msg, keysAndValues...)
		}
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
