package meter

import (
	"time"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

// WithComponentMetadata sets the component metadata for the Meter.
func WithComponentMetadata(name string, id string) types.Option[*Meter] {
	return func(m *Meter) {
		m.SetComponentMetadata(name, id)
	}
}

// WithLogger adds loggers to the Meter for outputting logs.
func WithLogger(loggers ...types.Logger) types.Option[*Meter] {
	return func(m *Meter) {
		m.ConnectLogger(loggers...)
	}
}

// WithSampleInterval samples CPU, RAM and goroutines in the background at the given interval.
func WithSampleInterval(d time.Duration) types.Option[*Meter] {
	return func(m *Meter) {
		m.sampleInterval = d
	}
}

// WithoutCPUSampling skips the CPU gauge, which blocks briefly on some platforms.
func WithoutCPUSampling() types.Option[*Meter] {
	return func(m *Meter) {
		m.sampleCPU = false
	}
}

// WithInitialMetricCount sets an initial count for a specific metric.
func WithInitialMetricCount(metricName string, count uint64) types.Option[*Meter] {
	return func(m *Meter) {
		m.AddToCount(metricName, count)
	}
}
