package resampler

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

// SpectralFrame is the peak-held, linear summary of one span of both channels.
type SpectralFrame struct {
	Left    []float64
	Right   []float64
	Volume  float64
	Balance float64
	Width   float64
}

func checkPair(left, right *types.AnalysisResult) error {
	if left == nil || right == nil || left.FrameCount() == 0 || right.FrameCount() == 0 {
		return ErrEmptyAnalysis
	}
	if left.HopSize <= 0 || right.HopSize <= 0 {
		return ErrZeroHopSize
	}
	if left.FrameCount() != right.FrameCount() {
		return fmt.Errorf("%w: %d vs %d frames", ErrMismatchedChannels, left.FrameCount(), right.FrameCount())
	}
	if left.HopSize != right.HopSize {
		return fmt.Errorf("%w: hop %d vs %d", ErrMismatchedChannels, left.HopSize, right.HopSize)
	}
	if left.Width() != right.Width() {
		return fmt.Errorf("%w: %d vs %d bins", ErrMismatchedChannels, left.Width(), right.Width())
	}
	if err := checkRows(left.Magnitudes, left.Width(), "left magnitude"); err != nil {
		return err
	}
	return checkRows(right.Magnitudes, right.Width(), "right magnitude")
}

// checkRows rejects any row whose length differs from width.
func checkRows(rows [][]float64, width int, what string) error {
	for i, row := range rows {
		if len(row) != width {
			return fmt.Errorf("%w: %s row %d has %d values, expected %d", ErrMismatchedChannels, what, i, len(row), width)
		}
	}
	return nil
}

// peakHold returns the per-bin maximum of rows[span] converted from dB to linear power.
// An empty span yields all zeros.
func peakHold(rows [][]float64, span Span, bins int) []float64 {
	out := make([]float64, bins)
	if span.Len() <= 0 {
		return out
	}
	for k := 0; k < bins; k++ {
		m := math.Inf(-1)
		for i := span.Start; i < span.End; i++ {
			if v := rows[i][k]; v > m {
				m = v
			}
		}
		out[k] = math.Pow(10, m/10)
	}
	return out
}

// ResampleSpectrum summarizes a left/right spectrum pair at the target rate.
func ResampleSpectrum(sampleRate, fps int, left, right *types.AnalysisResult) ([]SpectralFrame, error) {
	if err := checkPair(left, right); err != nil {
		return nil, err
	}
	ratio, err := Ratio(sampleRate, fps, left.HopSize)
	if err != nil {
		return nil, err
	}

	bins := left.Width()
	spans := Spans(left.FrameCount(), ratio)
	out := make([]SpectralFrame, len(spans))
	for n, span := range spans {
		l := peakHold(left.Magnitudes, span, bins)
		r := peakHold(right.Magnitudes, span, bins)

		sumL, sumR := floats.Sum(l), floats.Sum(r)
		width := 0.0
		if bins > 0 {
			width = floats.Distance(l, r, 1) / float64(bins)
		}

		out[n] = SpectralFrame{
			Left:    l,
			Right:   r,
			Volume:  math.Max(sumL, sumR),
			Balance: sumR - sumL,
			Width:   width,
		}
	}
	return out, nil
}
