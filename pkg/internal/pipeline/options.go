package pipeline

import (
	"github.com/joeydtaylor/audiovis/pkg/internal/exporter"
	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

// WithLogger attaches loggers to the pipeline and every stage component.
func WithLogger(loggers ...types.Logger) types.Option[*Pipeline] {
	return func(p *Pipeline) {
		p.ConnectLogger(loggers...)
	}
}

// WithSensor attaches sensors to the pipeline, the orchestrator and the exporter.
func WithSensor(sensors ...types.Sensor) types.Option[*Pipeline] {
	return func(p *Pipeline) {
		p.ConnectSensor(sensors...)
	}
}

// WithAnalyzer replaces the default analysis model.
func WithAnalyzer(a types.Analyzer) types.Option[*Pipeline] {
	return func(p *Pipeline) {
		p.analyzer = a
	}
}

// WithHarmonics toggles the harmonic pass. Without it every pitch is zero.
func WithHarmonics(enabled bool) types.Option[*Pipeline] {
	return func(p *Pipeline) {
		p.harmonic = enabled
	}
}

// WithExporterOptions forwards options to the exporter, e.g. sinks and compression.
func WithExporterOptions(options ...types.Option[*exporter.Exporter]) types.Option[*Pipeline] {
	return func(p *Pipeline) {
		p.exportOpts = append(p.exportOpts, options...)
	}
}

// WithComponentMetadata sets a name and id.
func WithComponentMetadata(name string, id string) types.Option[*Pipeline] {
	return func(p *Pipeline) {
		p.SetComponentMetadata(name, id)
	}
}
