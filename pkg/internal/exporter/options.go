package exporter

import "github.com/joeydtaylor/audiovis/pkg/internal/types"

// WithScaleRange sets the largest exported integer (at most 65535).
func WithScaleRange(r int) types.Option[*Exporter] {
	return func(e *Exporter) {
		if r > 0 && r <= 65535 {
			e.scaleRange = r
		}
	}
}

// WithCompression adds a compressed copy of the data blob. Use ParseCompression to validate names.
func WithCompression(name string) types.Option[*Exporter] {
	return func(e *Exporter) {
		e.compression = name
	}
}

// WithFrameTable adds a per-frame parquet table; compression is snappy, zstd or gzip.
func WithFrameTable(compression string) types.Option[*Exporter] {
	return func(e *Exporter) {
		e.parquet = true
		e.parquetCompression = compression
	}
}

func WithSink(sinks ...types.ArtifactSink) types.Option[*Exporter] {
	return func(e *Exporter) {
		e.ConnectSink(sinks...)
	}
}

func WithNotifier(notifiers ...types.Notifier) types.Option[*Exporter] {
	return func(e *Exporter) {
		e.ConnectNotifier(notifiers...)
	}
}

func WithLogger(loggers ...types.Logger) types.Option[*Exporter] {
	return func(e *Exporter) {
		e.ConnectLogger(loggers...)
	}
}

func WithSensor(sensors ...types.Sensor) types.Option[*Exporter] {
	return func(e *Exporter) {
		e.ConnectSensor(sensors...)
	}
}

func WithComponentMetadata(name string, id string) types.Option[*Exporter] {
	return func(e *Exporter) {
		e.SetComponentMetadata(name, id)
	}
}
