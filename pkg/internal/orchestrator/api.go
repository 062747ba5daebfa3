package orchestrator

import "github.com/joeydtaylor/audiovis/pkg/internal/types"

// GetComponentMetadata returns the orchestrator's metadata.
func (o *Orchestrator) GetComponentMetadata() types.ComponentMetadata {
	return o.componentMetadata
}

// SetComponentMetadata sets the name and id.
func (o *Orchestrator) SetComponentMetadata(name string, id string) {
	o.componentMetadata.Name = name
	o.componentMetadata.ID = id
}

// ConnectLogger attaches loggers.
func (o *Orchestrator) ConnectLogger(loggers ...types.Logger) {
	o.loggersLock.Lock()
	defer o.loggersLock.Unlock()
	o.loggers = append(o.loggers, loggers...)
}

// ConnectSensor attaches sensors.
func (o *Orchestrator) ConnectSensor(sensors ...types.Sensor) {
	o.sensorsLock.Lock()
	defer o.sensorsLock.Unlock()
	o.sensors = append(o.sensors, sensors...)
}

// Workers returns the pool size.
func (o *Orchestrator) Workers() int {
	return o.workers
}

// NotifyLoggers emits a log event to all attached loggers at or below their level.
func (o *Orchestrator) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	o.loggersLock.Lock()
	loggers := append([]types.Logger(nil), o.loggers...)
	o.loggersLock.Unlock()

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

func (o *Orchestrator) snapshotSensors() []types.Sensor {
	o.sensorsLock.Lock()
	defer o.sensorsLock.Unlock()
	out := make([]types.Sensor, 0, len(o.sensors))
	for _, s := range o.sensors {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}
