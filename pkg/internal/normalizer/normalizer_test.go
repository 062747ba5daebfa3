package normalizer_test

import (
	"testing"

	"github.com/joeydtaylor/audiovis/pkg/internal/normalizer"
	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

func TestNormalize_UnitPeakAndIdempotent(t *testing.T) {
	frames := []types.OutputFrame{
		{Left: []float64{2, 4, 1}, Right: []float64{0.5, 0.25, 2}},
		{Left: []float64{1, 0.5, 0.25}, Right: []float64{3, 3, 1.5}},
	}
	normalizer.Normalize(frames, 0)

	want := []types.OutputFrame{
		{Left: []float64{0.5, 1, 0.25}, Right: []float64{0.25, 0.125, 1}},
		{Left: []float64{1, 0.5, 0.25}, Right: []float64{1, 1, 0.5}},
	}
	for i := range frames {
		for k := range frames[i].Left {
			if frames[i].Left[k] != want[i].Left[k] || frames[i].Right[k] != want[i].Right[k] {
				t.Fatalf("frame %d bin %d: got %v/%v, want %v/%v", i, k,
					frames[i].Left[k], frames[i].Right[k], want[i].Left[k], want[i].Right[k])
			}
		}
	}

	snapshot := make([][]float64, 0, 4)
	for _, f := range frames {
		snapshot = append(snapshot, append([]float64(nil), f.Left...), append([]float64(nil), f.Right...))
	}
	normalizer.Normalize(frames, 0)
	for i, f := range frames {
		for k := range f.Left {
			if f.Left[k] != snapshot[2*i][k] || f.Right[k] != snapshot[2*i+1][k] {
				t.Fatalf("second pass changed frame %d bin %d", i, k)
			}
		}
	}
}

func TestNormalize_SilentVectorStaysZero(t *testing.T) {
	frames := []types.OutputFrame{{Left: []float64{0, 0}, Right: []float64{0, 0}}}
	normalizer.Normalize(frames, 1e-10)
	for k := range frames[0].Left {
		if frames[0].Left[k] != 0 || frames[0].Right[k] != 0 {
			t.Fatalf("expected zeros, got %v %v", frames[0].Left, frames[0].Right)
		}
	}
}

func TestNonQuiet(t *testing.T) {
	frames := []types.OutputFrame{
		{Volume: 0},
		{Volume: 0.0001},
		{Volume: 0.00009},
		{Volume: 3},
	}
	got := normalizer.NonQuiet(frames, 0.0001)
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("expected [1 3], got %v", got)
	}
	if got := normalizer.NonQuiet(nil, 0.0001); len(got) != 0 {
		t.Fatalf("expected no indices for no frames, got %v", got)
	}
}
