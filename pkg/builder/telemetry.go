package builder

import (
	"context"
	"time"

	"github.com/joeydtaylor/audiovis/pkg/internal/meter"
	"github.com/joeydtaylor/audiovis/pkg/internal/sensor"
	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

type Sensor = types.Sensor

type Meter = types.Meter

// Metric names fed by the sensor.
const (
	MetricChunksStartedCount   = types.MetricChunksStartedCount
	MetricChunksCompletedCount = types.MetricChunksCompletedCount
	MetricChunkErrorCount      = types.MetricChunkErrorCount
	MetricFramesEmittedCount   = types.MetricFramesEmittedCount
	MetricTracksCompletedCount = types.MetricTracksCompletedCount
	MetricQuietTracksCount     = types.MetricQuietTracksCount
	MetricArtifactsStoredCount = types.MetricArtifactsStoredCount
	MetricArtifactBytesTotal   = types.MetricArtifactBytesTotal
	MetricArtifactErrorCount   = types.MetricArtifactErrorCount
)

// NewSensor creates a sensor; attach it to a pipeline with PipelineWithSensor.
func NewSensor(options ...types.Option[types.Sensor]) types.Sensor {
	return sensor.NewSensor(options...)
}

// SensorWithLogger attaches loggers.
func SensorWithLogger(loggers ...types.Logger) types.Option[types.Sensor] {
	return sensor.WithLogger(loggers...)
}

// SensorWithMeter feeds the meters from sensor events.
func SensorWithMeter(meters ...types.Meter) types.Option[types.Sensor] {
	return sensor.WithMeter(meters...)
}

// SensorWithOnChunkCompleteFunc registers a callback for the OnChunkComplete event.
func SensorWithOnChunkCompleteFunc(callback ...func(c ComponentMetadata, index int, frames int, elapsed time.Duration)) types.Option[types.Sensor] {
	return sensor.WithOnChunkCompleteFunc(callback...)
}

// SensorWithOnStageCompleteFunc registers a callback for the OnStageComplete event.
func SensorWithOnStageCompleteFunc(callback ...func(c ComponentMetadata, stage string, elapsed time.Duration)) types.Option[types.Sensor] {
	return sensor.WithOnStageCompleteFunc(callback...)
}

// SensorWithOnTrackCompleteFunc registers a callback for the OnTrackComplete event.
func SensorWithOnTrackCompleteFunc(callback ...func(c ComponentMetadata, track string, frames int, allQuiet bool)) types.Option[types.Sensor] {
	return sensor.WithOnTrackCompleteFunc(callback...)
}

// SensorWithOnArtifactStoredFunc registers a callback for the OnArtifactStored event.
func SensorWithOnArtifactStoredFunc(callback ...func(c ComponentMetadata, location string, size int)) types.Option[types.Sensor] {
	return sensor.WithOnArtifactStoredFunc(callback...)
}

// NewMeter creates a meter. A positive sample interval samples CPU and memory until ctx ends.
func NewMeter(ctx context.Context, options ...types.Option[*meter.Meter]) *meter.Meter {
	return meter.NewMeter(ctx, options...)
}

// MeterWithLogger attaches loggers.
func MeterWithLogger(loggers ...types.Logger) types.Option[*meter.Meter] {
	return meter.WithLogger(loggers...)
}

// MeterWithSampleInterval starts periodic resource sampling.
func MeterWithSampleInterval(d time.Duration) types.Option[*meter.Meter] {
	return meter.WithSampleInterval(d)
}

// MeterWithoutCPUSampling skips the CPU probe.
func MeterWithoutCPUSampling() types.Option[*meter.Meter] {
	return meter.WithoutCPUSampling()
}
