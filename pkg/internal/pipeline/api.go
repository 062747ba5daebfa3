package pipeline

import "github.com/joeydtaylor/audiovis/pkg/internal/types"

// GetComponentMetadata returns the pipeline's metadata.
func (p *Pipeline) GetComponentMetadata() types.ComponentMetadata {
	return p.componentMetadata
}

// SetComponentMetadata sets the name and id.
func (p *Pipeline) SetComponentMetadata(name string, id string) {
	p.componentMetadata.Name = name
	p.componentMetadata.ID = id
}

// ConnectLogger attaches loggers to the pipeline only. Stage components receive the loggers
// given at construction.
func (p *Pipeline) ConnectLogger(loggers ...types.Logger) {
	p.loggersLock.Lock()
	defer p.loggersLock.Unlock()
	p.loggers = append(p.loggers, loggers...)
}

// ConnectSensor attaches sensors to the pipeline only.
func (p *Pipeline) ConnectSensor(sensors ...types.Sensor) {
	p.sensorsLock.Lock()
	defer p.sensorsLock.Unlock()
	p.sensors = append(p.sensors, sensors...)
}

// NotifyLoggers emits a log event to all attached loggers at or below their level.
func (p *Pipeline) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	for _, logger := range p.snapshotLoggers() {
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

func (p *Pipeline) snapshotLoggers() []types.Logger {
	p.loggersLock.Lock()
	defer p.loggersLock.Unlock()
	return append([]types.Logger(nil), p.loggers...)
}

func (p *Pipeline) snapshotSensors() []types.Sensor {
	p.sensorsLock.Lock()
	defer p.sensorsLock.Unlock()
	out := make([]types.Sensor, 0, len(p.sensors))
	for _, s := range p.sensors {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}
