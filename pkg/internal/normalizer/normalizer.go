// Package normalizer rescales every output frame's spectral vectors to a peak of one and picks out
// the frames loud enough to train the codebook on.
package normalizer

import (
	"gonum.org/v1/gonum/floats"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

// DefaultEpsilon replaces a zero maximum so silent vectors stay all-zero instead of dividing by zero.
const DefaultEpsilon = 1e-10

// Normalize divides each frame's left and right vectors by their own maximum, in place.
// Frames that are already unit-peak come out unchanged.
func Normalize(frames []types.OutputFrame, epsilon float64) {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	for i := range frames {
		normalizeVector(frames[i].Left, epsilon)
		normalizeVector(frames[i].Right, epsilon)
	}
}

func normalizeVector(v []float64, epsilon float64) {
	if len(v) == 0 {
		return
	}
	m := floats.Max(v)
	if m == 0 {
		m = epsilon
	}
	if m == 1 {
		return
	}
	for k := range v {
		v[k] /= m
	}
}

// NonQuiet returns the indices of frames whose volume reaches the threshold.
// Volume is measured before normalization, so the pipeline calls this on the raw frames.
func NonQuiet(frames []types.OutputFrame, threshold float64) []int {
	out := make([]int, 0, len(frames))
	for i := range frames {
		if frames[i].Volume >= threshold {
			out = append(out, i)
		}
	}
	return out
}
