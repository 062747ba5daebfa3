package analysis

import "github.com/joeydtaylor/audiovis/pkg/internal/types"

// WithSpectrumParams replaces the spectrum grid.
func WithSpectrumParams(p SpectrumParams) types.Option[*Model] {
	return func(m *Model) {
		m.spectrum = p
	}
}

// WithHarmonicParams replaces the harmonic tracker settings.
func WithHarmonicParams(p HarmonicParams) types.Option[*Model] {
	return func(m *Model) {
		m.harmonic = p
	}
}

// WithF0Range narrows the fundamental search range.
func WithF0Range(minF0, maxF0 float64) types.Option[*Model] {
	return func(m *Model) {
		m.harmonic.MinF0 = minF0
		m.harmonic.MaxF0 = maxF0
	}
}

// WithLogger attaches loggers.
func WithLogger(loggers ...types.Logger) types.Option[*Model] {
	return func(m *Model) {
		m.ConnectLogger(loggers...)
	}
}

// WithComponentMetadata sets a name and id.
func WithComponentMetadata(name string, id string) types.Option[*Model] {
	return func(m *Model) {
		m.componentMetadata.Name = name
		m.componentMetadata.ID = id
	}
}
