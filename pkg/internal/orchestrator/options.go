package orchestrator

import "github.com/joeydtaylor/audiovis/pkg/internal/types"

// WithLogger attaches loggers.
func WithLogger(loggers ...types.Logger) types.Option[*Orchestrator] {
	return func(o *Orchestrator) {
		o.ConnectLogger(loggers...)
	}
}

// WithSensor attaches sensors.
func WithSensor(sensors ...types.Sensor) types.Option[*Orchestrator] {
	return func(o *Orchestrator) {
		o.ConnectSensor(sensors...)
	}
}

// WithWorkers overrides the pool size; 1 processes chunks one after another.
func WithWorkers(n int) types.Option[*Orchestrator] {
	return func(o *Orchestrator) {
		o.workers = n
	}
}

// WithHarmonics toggles the harmonic analysis pass.
func WithHarmonics(enabled bool) types.Option[*Orchestrator] {
	return func(o *Orchestrator) {
		o.harmonic = enabled
	}
}

// WithComponentMetadata sets a name and id.
func WithComponentMetadata(name string, id string) types.Option[*Orchestrator] {
	return func(o *Orchestrator) {
		o.SetComponentMetadata(name, id)
	}
}
