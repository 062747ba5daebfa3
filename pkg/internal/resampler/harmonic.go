package resampler

import (
	"fmt"
	"math"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

// HarmonicFrame is the channel-averaged harmonic summary of one span.
type HarmonicFrame struct {
	Freqs []float64 // Hz
	Mags  []float64 // linear amplitude
}

// averageSlots returns per-slot means over span: frequency rounded to whole Hz and magnitude
// converted from dB to linear amplitude. An empty span averages to 0 Hz at 0 dB, which is a
// linear magnitude of 1.
func averageSlots(freqs, mags [][]float64, span Span, slots int) ([]float64, []float64) {
	f := make([]float64, slots)
	m := make([]float64, slots)
	if span.Len() <= 0 {
		for s := range m {
			m[s] = 1
		}
		return f, m
	}
	for i := span.Start; i < span.End; i++ {
		for s := 0; s < slots; s++ {
			f[s] += freqs[i][s]
			m[s] += mags[i][s]
		}
	}
	n := float64(span.Len())
	for s := 0; s < slots; s++ {
		f[s] = math.RoundToEven(f[s] / n)
		m[s] = math.Pow(10, m[s]/n/20)
	}
	return f, m
}

// ResampleHarmonic summarizes a left/right harmonic pair at the target rate.
func ResampleHarmonic(sampleRate, fps int, left, right *types.AnalysisResult) ([]HarmonicFrame, error) {
	if err := checkPair(left, right); err != nil {
		return nil, err
	}
	for _, res := range []*types.AnalysisResult{left, right} {
		if len(res.Frequencies) != res.FrameCount() {
			return nil, fmt.Errorf("%w: %d frequency rows for %d frames", ErrMismatchedChannels, len(res.Frequencies), res.FrameCount())
		}
		if err := checkRows(res.Frequencies, res.Width(), "frequency"); err != nil {
			return nil, err
		}
	}
	ratio, err := Ratio(sampleRate, fps, left.HopSize)
	if err != nil {
		return nil, err
	}

	slots := left.Width()
	spans := Spans(left.FrameCount(), ratio)
	out := make([]HarmonicFrame, len(spans))
	for n, span := range spans {
		fl, ml := averageSlots(left.Frequencies, left.Magnitudes, span, slots)
		fr, mr := averageSlots(right.Frequencies, right.Magnitudes, span, slots)
		hf := HarmonicFrame{Freqs: make([]float64, slots), Mags: make([]float64, slots)}
		for s := 0; s < slots; s++ {
			hf.Freqs[s] = (fl[s] + fr[s]) / 2
			hf.Mags[s] = (ml[s] + mr[s]) / 2
		}
		out[n] = hf
	}
	return out, nil
}
