package exporter

import "github.com/joeydtaylor/audiovis/pkg/internal/types"

func (e *Exporter) GetComponentMetadata() types.ComponentMetadata {
	return e.componentMetadata
}

func (e *Exporter) SetComponentMetadata(name string, id string) {
	e.componentMetadata.Name = name
	e.componentMetadata.ID = id
}

func (e *Exporter) ConnectLogger(loggers ...types.Logger) {
	e.loggersLock.Lock()
	defer e.loggersLock.Unlock()
	e.loggers = append(e.loggers, loggers...)
}

func (e *Exporter) ConnectSensor(sensors ...types.Sensor) {
	e.sensorsLock.Lock()
	defer e.sensorsLock.Unlock()
	e.sensors = append(e.sensors, sensors...)
}

// ConnectSink adds artifact destinations. Artifacts go to sinks in connection order.
func (e *Exporter) ConnectSink(sinks ...types.ArtifactSink) {
	for _, s := range sinks {
		if s != nil {
			e.sinks = append(e.sinks, s)
		}
	}
}

// ConnectNotifier adds completion notifiers.
func (e *Exporter) ConnectNotifier(notifiers ...types.Notifier) {
	for _, n := range notifiers {
		if n != nil {
			e.notifiers = append(e.notifiers, n)
		}
	}
}

func (e *Exporter) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	e.loggersLock.Lock()
	loggers := append([]types.Logger(nil), e.loggers...)
	e.loggersLock.Unlock()

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

func (e *Exporter) snapshotSensors() []types.Sensor {
	e.sensorsLock.Lock()
	defer e.sensorsLock.Unlock()
	out := make([]types.Sensor, 0, len(e.sensors))
	for _, s := range e.sensors {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}
