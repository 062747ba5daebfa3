package resampler_test

import (
	"errors"
	"math"
	"testing"

	"github.com/joeydtaylor/audiovis/pkg/internal/resampler"
	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

const (
	hop  = 512
	fps  = 24
	rate = fps * hop * 2 // two native frames per output frame
)

func spectrum(rows ...[]float64) *types.AnalysisResult {
	return &types.AnalysisResult{Kind: types.KindSpectrum, HopSize: hop, Magnitudes: rows}
}

func constRows(n int, v ...float64) [][]float64 {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = append([]float64(nil), v...)
	}
	return rows
}

func TestSpans_CoverEveryFrameButTheFirst(t *testing.T) {
	ratio, err := resampler.Ratio(44100, 24, 512)
	if err != nil {
		t.Fatalf("Ratio error: %v", err)
	}
	spans := resampler.Spans(173, ratio)
	if len(spans) != 48 {
		t.Fatalf("expected 48 output frames for a 2 s chunk, got %d", len(spans))
	}
	if spans[0].Start != 1 {
		t.Fatalf("expected first span to start at 1, got %d", spans[0].Start)
	}
	if spans[len(spans)-1].End != 173 {
		t.Fatalf("expected last span to end at 173, got %d", spans[len(spans)-1].End)
	}
	for i := 1; i < len(spans); i++ {
		if spans[i].Start != spans[i-1].End {
			t.Fatalf("gap between span %d and %d: %v %v", i-1, i, spans[i-1], spans[i])
		}
	}
	for i, s := range spans[:len(spans)-1] {
		if s.Len() < 3 || s.Len() > 4 {
			t.Fatalf("span %d has %d frames, expected 3 or 4", i, s.Len())
		}
	}
}

func TestSpans_SingleFrameIsGuarded(t *testing.T) {
	spans := resampler.Spans(1, 3.5)
	if len(spans) != 1 || spans[0].Len() != 0 {
		t.Fatalf("expected one empty span, got %v", spans)
	}
	if resampler.Spans(0, 2) != nil {
		t.Fatalf("expected no spans for no frames")
	}
}

func TestResampleSpectrum_PeakHoldAndStereoFeatures(t *testing.T) {
	left := make([][]float64, 8)
	for i := range left {
		left[i] = []float64{10 * math.Log10(float64(i+1)), 0}
	}
	right := constRows(8, 0, 0)

	frames, err := resampler.ResampleSpectrum(rate, fps, spectrum(left...), spectrum(right...))
	if err != nil {
		t.Fatalf("ResampleSpectrum error: %v", err)
	}
	if len(frames) != 4 {
		t.Fatalf("expected 4 frames, got %d", len(frames))
	}

	f := frames[0] // native frames 1 and 2
	if math.Abs(f.Left[0]-3) > 1e-9 || math.Abs(f.Left[1]-1) > 1e-9 {
		t.Fatalf("unexpected left peak-hold %v", f.Left)
	}
	if math.Abs(f.Volume-4) > 1e-9 {
		t.Fatalf("expected volume 4, got %v", f.Volume)
	}
	if math.Abs(f.Balance+2) > 1e-9 {
		t.Fatalf("expected balance -2, got %v", f.Balance)
	}
	if math.Abs(f.Width-1) > 1e-9 {
		t.Fatalf("expected width 1, got %v", f.Width)
	}

	last := frames[3] // forced emission of native frame 7
	if math.Abs(last.Left[0]-8) > 1e-9 {
		t.Fatalf("expected last frame to hold 8, got %v", last.Left[0])
	}
}

func TestResampleSpectrum_IdenticalChannelsAreCentered(t *testing.T) {
	rows := constRows(20, -3, -6, -9)
	frames, err := resampler.ResampleSpectrum(rate, fps, spectrum(rows...), spectrum(constRows(20, -3, -6, -9)...))
	if err != nil {
		t.Fatalf("ResampleSpectrum error: %v", err)
	}
	for i, f := range frames {
		if f.Balance != 0 || f.Width != 0 {
			t.Fatalf("frame %d: expected zero balance and width, got %v %v", i, f.Balance, f.Width)
		}
	}
}

func TestResampleSpectrum_Errors(t *testing.T) {
	good := spectrum(constRows(4, 0, 0)...)

	if _, err := resampler.ResampleSpectrum(rate, fps, good, spectrum(constRows(3, 0, 0)...)); !errors.Is(err, resampler.ErrMismatchedChannels) {
		t.Fatalf("expected ErrMismatchedChannels, got %v", err)
	}
	zeroHop := &types.AnalysisResult{HopSize: 0, Magnitudes: constRows(4, 0, 0)}
	if _, err := resampler.ResampleSpectrum(rate, fps, zeroHop, zeroHop); !errors.Is(err, resampler.ErrZeroHopSize) {
		t.Fatalf("expected ErrZeroHopSize, got %v", err)
	}
	if _, err := resampler.ResampleSpectrum(rate, 0, good, good); !errors.Is(err, resampler.ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}
	if _, err := resampler.ResampleSpectrum(rate, fps, nil, good); !errors.Is(err, resampler.ErrEmptyAnalysis) {
		t.Fatalf("expected ErrEmptyAnalysis, got %v", err)
	}
}

func TestResampleSpectrum_RaggedRowIsRejected(t *testing.T) {
	rows := constRows(4, 0, 0)
	rows[3] = []float64{0}

	if _, err := resampler.ResampleSpectrum(rate, fps, spectrum(constRows(4, 0, 0)...), spectrum(rows...)); !errors.Is(err, resampler.ErrMismatchedChannels) {
		t.Fatalf("expected ErrMismatchedChannels for a short right row, got %v", err)
	}
	if _, err := resampler.ResampleSpectrum(rate, fps, spectrum(rows...), spectrum(constRows(4, 0, 0)...)); !errors.Is(err, resampler.ErrMismatchedChannels) {
		t.Fatalf("expected ErrMismatchedChannels for a short left row, got %v", err)
	}
}

func TestResampleHarmonic_RaggedFrequencyRowIsRejected(t *testing.T) {
	freqs := constRows(4, 100, 200)
	freqs[2] = []float64{100}
	bad := &types.AnalysisResult{Kind: types.KindHarmonic, HopSize: hop, Frequencies: freqs, Magnitudes: constRows(4, 0, 0)}
	good := &types.AnalysisResult{Kind: types.KindHarmonic, HopSize: hop, Frequencies: constRows(4, 100, 200), Magnitudes: constRows(4, 0, 0)}

	if _, err := resampler.ResampleHarmonic(rate, fps, good, bad); !errors.Is(err, resampler.ErrMismatchedChannels) {
		t.Fatalf("expected ErrMismatchedChannels, got %v", err)
	}
}

func TestResampleHarmonic_EmptySpanIsUnitMagnitude(t *testing.T) {
	one := func() *types.AnalysisResult {
		return &types.AnalysisResult{Kind: types.KindHarmonic, HopSize: hop, Frequencies: [][]float64{{440, 880}}, Magnitudes: [][]float64{{-6, -12}}}
	}
	frames, err := resampler.ResampleHarmonic(rate, fps, one(), one())
	if err != nil {
		t.Fatalf("ResampleHarmonic error: %v", err)
	}
	if len(frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(frames))
	}
	for s := range frames[0].Mags {
		if frames[0].Freqs[s] != 0 || frames[0].Mags[s] != 1 {
			t.Fatalf("slot %d: expected 0 Hz at magnitude 1, got %v Hz at %v", s, frames[0].Freqs[s], frames[0].Mags[s])
		}
	}
}

func TestResampleHarmonic_AveragesAndMergesChannels(t *testing.T) {
	harm := func(freqs, mags [][]float64) *types.AnalysisResult {
		return &types.AnalysisResult{Kind: types.KindHarmonic, HopSize: hop, Frequencies: freqs, Magnitudes: mags}
	}
	lf := [][]float64{{0}, {100}, {101}, {0}}
	lm := [][]float64{{0}, {-20}, {0}, {0}}
	rf := constRows(4, 200)
	rm := constRows(4, 0)

	frames, err := resampler.ResampleHarmonic(rate, fps, harm(lf, lm), harm(rf, rm))
	if err != nil {
		t.Fatalf("ResampleHarmonic error: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	// left averages 100.5 Hz, rounded half to even
	if frames[0].Freqs[0] != 150 {
		t.Fatalf("expected merged 150 Hz, got %v", frames[0].Freqs[0])
	}
	wantMag := (math.Pow(10, -10.0/20) + 1) / 2
	if math.Abs(frames[0].Mags[0]-wantMag) > 1e-12 {
		t.Fatalf("expected merged magnitude %v, got %v", wantMag, frames[0].Mags[0])
	}
}

func TestResample_AlignsHarmonicToSpectralFrames(t *testing.T) {
	coarse := func() *types.AnalysisResult {
		return &types.AnalysisResult{
			Kind:        types.KindHarmonic,
			HopSize:     hop / 2,
			Frequencies: [][]float64{{0}, {100}, {100}, {100}, {100}, {300}, {300}, {300}},
			Magnitudes:  constRows(8, 0),
		}
	}
	in := resampler.Input{
		Spectrum: [2]*types.AnalysisResult{spectrum(constRows(8, 0)...), spectrum(constRows(8, 0)...)},
		Harmonic: [2]*types.AnalysisResult{coarse(), coarse()},
	}
	frames, err := resampler.Resample(rate, fps, in)
	if err != nil {
		t.Fatalf("Resample error: %v", err)
	}
	if len(frames) != 4 {
		t.Fatalf("expected spectral path to define 4 frames, got %d", len(frames))
	}
	want := []float64{100, 300, 300, 300}
	for i, f := range frames {
		if f.Pitch() != want[i] {
			t.Fatalf("frame %d: expected pitch %v, got %v", i, want[i], f.Pitch())
		}
	}
}

func TestResample_WithoutHarmonics(t *testing.T) {
	in := resampler.Input{
		Spectrum: [2]*types.AnalysisResult{spectrum(constRows(8, 0)...), spectrum(constRows(8, 0)...)},
	}
	frames, err := resampler.Resample(rate, fps, in)
	if err != nil {
		t.Fatalf("Resample error: %v", err)
	}
	for _, f := range frames {
		if f.HarmonicFreqs != nil || f.Pitch() != 0 {
			t.Fatalf("expected no harmonic data, got %v", f.HarmonicFreqs)
		}
	}
}

func TestRatio_RejectsSubUnitRatios(t *testing.T) {
	if _, err := resampler.Ratio(fps*hop, fps, hop); !errors.Is(err, resampler.ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate for a ratio of 1, got %v", err)
	}
	r, err := resampler.Ratio(44100, 24, 128)
	if err != nil || math.Abs(r-14.35546875) > 1e-9 {
		t.Fatalf("unexpected ratio %v, %v", r, err)
	}
}
