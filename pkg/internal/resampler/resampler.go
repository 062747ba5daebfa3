// Package resampler collapses native-rate analysis frames into fixed-FPS output frames.
//
// The walk keeps r = i mod R, where R is the number of native frames per output frame, and emits
// whenever r wraps or the last native frame is reached. Each output frame summarizes the native
// frames accumulated since the previous emission, so span lengths alternate between floor(R) and
// ceil(R) and the long-run rate stays exact without tracking fractional time.
package resampler

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidRate        = errors.New("resampler: sample rate and fps must be positive")
	ErrZeroHopSize        = errors.New("resampler: zero hop size")
	ErrEmptyAnalysis      = errors.New("resampler: empty analysis")
	ErrMismatchedChannels = errors.New("resampler: left and right analyses differ")
)

// Span is the half-open range of native frames [Start, End) behind one output frame.
// An empty span only occurs for a single-frame analysis.
type Span struct {
	Start int
	End   int
}

// Len returns the number of native frames in the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Ratio returns the real-valued number of native frames per output frame.
func Ratio(sampleRate, fps, hopSize int) (float64, error) {
	if sampleRate <= 0 || fps <= 0 {
		return 0, fmt.Errorf("%w: %d Hz at %d fps", ErrInvalidRate, sampleRate, fps)
	}
	if hopSize <= 0 {
		return 0, ErrZeroHopSize
	}
	ratio := float64(sampleRate) / float64(fps) / float64(hopSize)
	if ratio <= 1 {
		// i mod R never wraps, every chunk would collapse into a single frame
		return 0, fmt.Errorf("%w: %.3f native frames per output frame", ErrInvalidRate, ratio)
	}
	return ratio, nil
}

// Spans walks frames native frames and returns the span of every emitted output frame.
func Spans(frames int, ratio float64) []Span {
	if frames <= 0 || ratio <= 0 {
		return nil
	}
	spans := make([]Span, 0, int(float64(frames)/ratio)+1)
	rPrev := 0.0
	delta := 0
	for i := 0; i < frames; i++ {
		r := math.Mod(float64(i), ratio)
		if r < rPrev || i == frames-1 {
			spans = append(spans, Span{Start: i - delta + 1, End: i + 1})
			delta = 0
		}
		rPrev = r
		delta++
	}
	return spans
}
