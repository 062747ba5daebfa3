package types

import (
	"context"
	"errors"
)

// AnalysisKind selects which model an Analyzer runs over a buffer.
type AnalysisKind int

const (
	KindSpectrum   AnalysisKind = iota // Short-time magnitude spectrum in dB.
	KindHarmonic                       // Harmonic partial tracks (frequency, magnitude, phase).
	KindSinusoidal                     // Free sinusoidal tracks.
	KindResidual                       // Harmonic-plus-residual decomposition.
)

func (k AnalysisKind) String() string {
	switch k {
	case KindSpectrum:
		return "spectrum"
	case KindHarmonic:
		return "harmonic"
	case KindSinusoidal:
		return "sinusoidal"
	case KindResidual:
		return "residual"
	default:
		return "unknown"
	}
}

// ErrUnsupportedKind is returned by analyzers that do not implement a requested model.
var ErrUnsupportedKind = errors.New("analysis kind not supported")

// AnalysisResult is the native-rate output of one analysis run over one channel of one chunk.
//
// For KindSpectrum only Magnitudes is populated (frames x bins, dB).
// For KindHarmonic Frequencies (Hz), Magnitudes (dB) and Phases are frames x harmonic slots.
type AnalysisResult struct {
	Kind        AnalysisKind
	HopSize     int
	Magnitudes  [][]float64
	Frequencies [][]float64
	Phases      [][]float64
}

// FrameCount returns the number of native analysis frames.
func (r *AnalysisResult) FrameCount() int {
	if r == nil {
		return 0
	}
	return len(r.Magnitudes)
}

// Width returns the number of bins (spectrum) or slots (harmonic) per frame.
func (r *AnalysisResult) Width() int {
	if r == nil || len(r.Magnitudes) == 0 {
		return 0
	}
	return len(r.Magnitudes[0])
}

// Analyzer is the external spectral/harmonic model the pipeline consumes.
type Analyzer interface {
	Analyze(ctx context.Context, sampleRate int, samples []float64, kind AnalysisKind) (*AnalysisResult, error)
}

// AnalyzerFunc adapts a plain function to the Analyzer interface.
type AnalyzerFunc func(ctx context.Context, sampleRate int, samples []float64, kind AnalysisKind) (*AnalysisResult, error)

// Analyze calls f.
func (f AnalyzerFunc) Analyze(ctx context.Context, sampleRate int, samples []float64, kind AnalysisKind) (*AnalysisResult, error) {
	return f(ctx, sampleRate, samples, kind)
}
