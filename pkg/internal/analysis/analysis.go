// Package analysis is the default short-time spectral and harmonic model behind types.Analyzer.
//
// Frames are taken with zero-phase windowing and half-window zero padding at both ends, so a
// buffer of n samples analysed with hop H yields floor(n/H)+1 frames. Magnitudes are reported in
// dB relative to a unit-sum window; a full-scale sine peaks near -6 dB and digital silence sits at
// 20*log10(machine epsilon), about -313 dB.
package analysis

import (
	"context"
	"fmt"
	"sync"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
	"github.com/joeydtaylor/audiovis/pkg/internal/utils"
	"github.com/joeydtaylor/audiovis/pkg/logschema"
)

// Frame describes one short-time analysis grid.
type Frame struct {
	Window     WindowKind
	WindowSize int
	FFTSize    int
	HopSize    int
}

// SpectrumParams configures KindSpectrum.
type SpectrumParams struct {
	Frame
}

// HarmonicParams configures KindHarmonic.
type HarmonicParams struct {
	Frame
	Threshold       float64 // peak floor in dB
	Harmonics       int     // slots per frame
	MinF0           float64
	MaxF0           float64
	ErrorThreshold  float64 // two-way mismatch error above which no f0 is reported
	DevSlope        float64 // harmonic deviation growth per Hz
	MinTrackSeconds float64 // shorter partial runs are dropped
}

// DefaultSpectrumParams is a 2048-point Hann grid with a 512-sample hop.
func DefaultSpectrumParams() SpectrumParams {
	return SpectrumParams{Frame: Frame{Window: WindowHann, WindowSize: 2048, FFTSize: 2048, HopSize: 512}}
}

// DefaultHarmonicParams tracks ten partials of a 30-3000 Hz fundamental on a 128-sample hop.
func DefaultHarmonicParams() HarmonicParams {
	return HarmonicParams{
		Frame:           Frame{Window: WindowBlackman, WindowSize: 2048, FFTSize: 2048, HopSize: 128},
		Threshold:       -90,
		Harmonics:       10,
		MinF0:           30,
		MaxF0:           3000,
		ErrorThreshold:  7,
		DevSlope:        0.01,
		MinTrackSeconds: 0.1,
	}
}

// Model is the default Analyzer.
type Model struct {
	componentMetadata types.ComponentMetadata
	spectrum          SpectrumParams
	harmonic          HarmonicParams

	windowsMu sync.Mutex
	windows   map[Frame][]float64

	loggers     []types.Logger
	loggersLock sync.Mutex
}

// NewModel builds a Model with the default grids.
func NewModel(options ...types.Option[*Model]) *Model {
	m := &Model{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "ANALYZER",
		},
		spectrum: DefaultSpectrumParams(),
		harmonic: DefaultHarmonicParams(),
		windows:  make(map[Frame][]float64),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m
}

// Analyze runs the requested model over samples. It is safe for concurrent use.
func (m *Model) Analyze(ctx context.Context, sampleRate int, samples []float64, kind types.AnalysisKind) (*types.AnalysisResult, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("analysis: sample rate %d", sampleRate)
	}
	switch kind {
	case types.KindSpectrum:
		if err := m.spectrum.Frame.validate(); err != nil {
			return nil, err
		}
		return m.analyzeSpectrum(ctx, samples)
	case types.KindHarmonic:
		if err := m.harmonic.Frame.validate(); err != nil {
			return nil, err
		}
		return m.analyzeHarmonic(ctx, sampleRate, samples)
	default:
		m.NotifyLoggers(types.WarnLevel, "unsupported analysis kind",
			logschema.FieldComponent, m.componentMetadata,
			logschema.FieldEvent, logschema.EventAnalyze,
			"kind", kind,
		)
		return nil, fmt.Errorf("analysis: %s: %w", kind, types.ErrUnsupportedKind)
	}
}

// GetComponentMetadata returns the model's metadata.
func (m *Model) GetComponentMetadata() types.ComponentMetadata {
	return m.componentMetadata
}

// ConnectLogger attaches loggers.
func (m *Model) ConnectLogger(loggers ...types.Logger) {
	m.loggersLock.Lock()
	defer m.loggersLock.Unlock()
	m.loggers = append(m.loggers, loggers...)
}

func (f Frame) validate() error {
	switch {
	case f.WindowSize <= 0:
		return fmt.Errorf("analysis: window size %d", f.WindowSize)
	case f.FFTSize < f.WindowSize:
		return fmt.Errorf("analysis: fft size %d smaller than window %d", f.FFTSize, f.WindowSize)
	case f.FFTSize&(f.FFTSize-1) != 0:
		return fmt.Errorf("analysis: fft size %d is not a power of two", f.FFTSize)
	case f.HopSize <= 0:
		return fmt.Errorf("analysis: hop size %d", f.HopSize)
	}
	return nil
}

func (m *Model) window(f Frame) []float64 {
	m.windowsMu.Lock()
	defer m.windowsMu.Unlock()
	if w, ok := m.windows[f]; ok {
		return w
	}
	w := normalizedWindow(f.Window, f.WindowSize)
	m.windows[f] = w
	return w
}

// NotifyLoggers emits a log event to all attached loggers at or below their level.
func (m *Model) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	m.loggersLock.Lock()
	loggers := append([]types.Logger(nil), m.loggers...)
	m.loggersLock.Unlock()

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
