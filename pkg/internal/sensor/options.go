// Package sensor provides options for configuring Sensor components.
//
// Callbacks registered here fire from the orchestrator, pipeline and exporter at well-defined
// points of a track run.
package sensor

import (
	"time"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

// WithLogger creates an option to add a logger to a Sensor.
func WithLogger(logger ...types.Logger) types.Option[types.Sensor] {
	return func(m types.Sensor) {
		m.ConnectLogger(logger...)
	}
}

// WithMeter connects meters that the sensor keeps up to date.
func WithMeter(meter ...types.Meter) types.Option[types.Sensor] {
	return func(m types.Sensor) {
		m.ConnectMeter(meter...)
	}
}

// WithOnChunkStartFunc registers a callback for chunk start events.
func WithOnChunkStartFunc(callback ...func(c types.ComponentMetadata, index int, samples int)) types.Option[types.Sensor] {
	return func(m types.Sensor) {
		m.RegisterOnChunkStart(callback...)
	}
}

// WithOnChunkCompleteFunc registers a callback for chunk completion events.
func WithOnChunkCompleteFunc(callback ...func(c types.ComponentMetadata, index int, frames int, elapsed time.Duration)) types.Option[types.Sensor] {
	return func(m types.Sensor) {
		m.RegisterOnChunkComplete(callback...)
	}
}

// WithOnChunkErrorFunc registers a callback for chunk failure events.
func WithOnChunkErrorFunc(callback ...func(c types.ComponentMetadata, index int, err error)) types.Option[types.Sensor] {
	return func(m types.Sensor) {
		m.RegisterOnChunkError(callback...)
	}
}

// WithOnStageStartFunc registers a callback for stage start events.
func WithOnStageStartFunc(callback ...func(c types.ComponentMetadata, stage string)) types.Option[types.Sensor] {
	return func(m types.Sensor) {
		m.RegisterOnStageStart(callback...)
	}
}

// WithOnStageCompleteFunc registers a callback for stage completion events.
func WithOnStageCompleteFunc(callback ...func(c types.ComponentMetadata, stage string, elapsed time.Duration)) types.Option[types.Sensor] {
	return func(m types.Sensor) {
		m.RegisterOnStageComplete(callback...)
	}
}

// WithOnTrackCompleteFunc registers a callback for track completion events.
func WithOnTrackCompleteFunc(callback ...func(c types.ComponentMetadata, track string, frames int, allQuiet bool)) types.Option[types.Sensor] {
	return func(m types.Sensor) {
		m.RegisterOnTrackComplete(callback...)
	}
}

// WithOnArtifactStoredFunc registers a callback for stored artifact events.
func WithOnArtifactStoredFunc(callback ...func(c types.ComponentMetadata, location string, size int)) types.Option[types.Sensor] {
	return func(m types.Sensor) {
		m.RegisterOnArtifactStored(callback...)
	}
}

// WithOnArtifactErrorFunc registers a callback for artifact failure events.
func WithOnArtifactErrorFunc(callback ...func(c types.ComponentMetadata, name string, err error)) types.Option[types.Sensor] {
	return func(m types.Sensor) {
		m.RegisterOnArtifactError(callback...)
	}
}
