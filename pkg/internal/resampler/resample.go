package resampler

import (
	"fmt"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

// Input is the native-rate analysis of one chunk. Harmonic may be left empty.
type Input struct {
	Spectrum [2]*types.AnalysisResult // left, right
	Harmonic [2]*types.AnalysisResult // left, right
}

// Resample produces the output frames of one chunk. The spectral path defines the frame count;
// harmonic summaries are matched by index, surplus ones are dropped and missing ones repeat the
// last available summary.
func Resample(sampleRate, fps int, in Input) ([]types.OutputFrame, error) {
	spectral, err := ResampleSpectrum(sampleRate, fps, in.Spectrum[0], in.Spectrum[1])
	if err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}

	var harm []HarmonicFrame
	if in.Harmonic[0] != nil || in.Harmonic[1] != nil {
		harm, err = ResampleHarmonic(sampleRate, fps, in.Harmonic[0], in.Harmonic[1])
		if err != nil {
			return nil, fmt.Errorf("harmonic: %w", err)
		}
	}

	frames := make([]types.OutputFrame, len(spectral))
	for i, s := range spectral {
		frames[i] = types.OutputFrame{
			Left:    s.Left,
			Right:   s.Right,
			Volume:  s.Volume,
			Balance: s.Balance,
			Width:   s.Width,
		}
		if h, ok := alignHarmonic(harm, i); ok {
			frames[i].HarmonicFreqs = append([]float64(nil), h.Freqs...)
			frames[i].HarmonicMags = append([]float64(nil), h.Mags...)
		}
	}
	return frames, nil
}

func alignHarmonic(harm []HarmonicFrame, i int) (HarmonicFrame, bool) {
	if len(harm) == 0 {
		return HarmonicFrame{}, false
	}
	if i < len(harm) {
		return harm[i], true
	}
	return harm[len(harm)-1], true
}
