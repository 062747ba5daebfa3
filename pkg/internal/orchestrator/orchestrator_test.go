package orchestrator_test

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joeydtaylor/audiovis/pkg/internal/orchestrator"
	"github.com/joeydtaylor/audiovis/pkg/internal/resampler"
	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

const (
	hop  = 512
	fps  = 24
	rate = fps * hop * 2 // two native frames per output frame
)

// stampedTrack fills every sample of chunk c with the value c, so each frame can be traced back
// to the chunk it came from.
func stampedTrack(chunkLen, samples int) ([]float64, []float64) {
	left := make([]float64, samples)
	right := make([]float64, samples)
	for i := range left {
		left[i] = float64(i / chunkLen)
		right[i] = float64(i / chunkLen)
	}
	return left, right
}

// fakeAnalyzer reports a flat spectrum at (stamp+1) linear power and a single harmonic slot at
// 100*(stamp+1) Hz. Later chunks answer faster so workers finish out of order.
func fakeAnalyzer(fail float64) types.AnalyzerFunc {
	return func(ctx context.Context, sampleRate int, samples []float64, kind types.AnalysisKind) (*types.AnalysisResult, error) {
		stamp := samples[0]
		if stamp == fail {
			return nil, errors.New("boom")
		}
		time.Sleep(time.Duration(8-int(stamp)) * time.Millisecond)
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n := len(samples)/hop + 1
		res := &types.AnalysisResult{Kind: kind, HopSize: hop, Magnitudes: make([][]float64, n)}
		switch kind {
		case types.KindSpectrum:
			db := 10 * math.Log10(stamp+1)
			for i := range res.Magnitudes {
				res.Magnitudes[i] = []float64{db, db}
			}
		case types.KindHarmonic:
			res.Frequencies = make([][]float64, n)
			for i := range res.Magnitudes {
				res.Magnitudes[i] = []float64{0}
				res.Frequencies[i] = []float64{100 * (stamp + 1)}
			}
		}
		return res, nil
	}
}

func testConfig(workers int) types.Config {
	cfg := types.DefaultConfig()
	cfg.ChunkSeconds = 1
	cfg.Workers = workers
	return cfg
}

func TestSplit_FullChunksPlusRemainder(t *testing.T) {
	left := make([]float64, 10)
	right := make([]float64, 10)
	chunks, err := orchestrator.Split(left, right, 4)
	if err != nil {
		t.Fatalf("Split error: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	wantLens := []int{4, 4, 2}
	for i, c := range chunks {
		if c.Index != i || c.Offset != i*4 || c.Len() != wantLens[i] || len(c.Right) != wantLens[i] {
			t.Fatalf("chunk %d: unexpected shape %+v", i, c)
		}
	}

	exact, err := orchestrator.Split(make([]float64, 8), make([]float64, 8), 4)
	if err != nil || len(exact) != 2 {
		t.Fatalf("expected 2 chunks for an exact multiple, got %d (err=%v)", len(exact), err)
	}
}

func TestSplit_RejectsMismatchedChannels(t *testing.T) {
	_, err := orchestrator.Split(make([]float64, 10), make([]float64, 9), 4)
	if !errors.Is(err, orchestrator.ErrChannelLength) {
		t.Fatalf("expected ErrChannelLength, got %v", err)
	}
	if _, err := orchestrator.Split(nil, nil, 0); !errors.Is(err, types.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for zero chunk length, got %v", err)
	}
}

func TestRun_OrderIsIndependentOfWorkerCount(t *testing.T) {
	left, right := stampedTrack(rate, rate*5/2)

	var outputs [][]types.OutputFrame
	for _, workers := range []int{1, 4} {
		o := orchestrator.NewOrchestrator(fakeAnalyzer(-1), testConfig(workers))
		frames, err := o.Run(context.Background(), rate, left, right)
		if err != nil {
			t.Fatalf("workers=%d: Run error: %v", workers, err)
		}
		outputs = append(outputs, frames)
	}

	// 24 frames per full one second chunk, 12 for the trailing half second.
	if len(outputs[0]) != 60 {
		t.Fatalf("expected 60 frames, got %d", len(outputs[0]))
	}
	if len(outputs[0]) != len(outputs[1]) {
		t.Fatalf("frame counts differ: %d vs %d", len(outputs[0]), len(outputs[1]))
	}
	for i := range outputs[0] {
		a, b := outputs[0][i], outputs[1][i]
		if a.Left[0] != b.Left[0] || a.Pitch() != b.Pitch() {
			t.Fatalf("frame %d differs between worker counts: %v/%v vs %v/%v", i, a.Left[0], a.Pitch(), b.Left[0], b.Pitch())
		}
	}

	for i, f := range outputs[1] {
		chunk := 0
		if i >= 24 {
			chunk = 1
		}
		if i >= 48 {
			chunk = 2
		}
		if math.Abs(f.Left[0]-float64(chunk+1)) > 1e-9 {
			t.Fatalf("frame %d: expected chunk %d power %d, got %v", i, chunk, chunk+1, f.Left[0])
		}
		if f.Pitch() != float64(100*(chunk+1)) {
			t.Fatalf("frame %d: expected pitch %d, got %v", i, 100*(chunk+1), f.Pitch())
		}
	}
}

func TestRun_ChunkFailureCarriesIndex(t *testing.T) {
	left, right := stampedTrack(rate, rate*4)
	o := orchestrator.NewOrchestrator(fakeAnalyzer(2), testConfig(4))

	frames, err := o.Run(context.Background(), rate, left, right)
	if err == nil {
		t.Fatalf("expected an error")
	}
	if frames != nil {
		t.Fatalf("expected no partial output, got %d frames", len(frames))
	}
	var ce *orchestrator.ChunkError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ChunkError, got %T: %v", err, err)
	}
	if ce.Index != 2 {
		t.Fatalf("expected failing chunk 2, got %d", ce.Index)
	}
}

func TestRun_RaggedAnalysisFailsTheChunk(t *testing.T) {
	analyzer := types.AnalyzerFunc(func(ctx context.Context, sampleRate int, samples []float64, kind types.AnalysisKind) (*types.AnalysisResult, error) {
		n := len(samples)/hop + 1
		res := &types.AnalysisResult{Kind: kind, HopSize: hop, Magnitudes: make([][]float64, n)}
		if kind == types.KindHarmonic {
			res.Frequencies = make([][]float64, n)
			for i := range res.Magnitudes {
				res.Magnitudes[i] = []float64{0}
				res.Frequencies[i] = []float64{100}
			}
			return res, nil
		}
		for i := range res.Magnitudes {
			res.Magnitudes[i] = []float64{0, 0}
		}
		res.Magnitudes[n-1] = []float64{0}
		return res, nil
	})
	left, right := stampedTrack(rate, rate*2)
	o := orchestrator.NewOrchestrator(analyzer, testConfig(2))

	frames, err := o.Run(context.Background(), rate, left, right)
	if frames != nil {
		t.Fatalf("expected no partial output, got %d frames", len(frames))
	}
	var ce *orchestrator.ChunkError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ChunkError, got %T: %v", err, err)
	}
	if !errors.Is(err, resampler.ErrMismatchedChannels) {
		t.Fatalf("expected ErrMismatchedChannels, got %v", err)
	}
}

func TestRun_WithoutHarmonics(t *testing.T) {
	var harmonicCalls atomic.Int32
	inner := fakeAnalyzer(-1)
	counting := types.AnalyzerFunc(func(ctx context.Context, sampleRate int, samples []float64, kind types.AnalysisKind) (*types.AnalysisResult, error) {
		if kind == types.KindHarmonic {
			harmonicCalls.Add(1)
		}
		return inner(ctx, sampleRate, samples, kind)
	})

	left, right := stampedTrack(rate, rate)
	o := orchestrator.NewOrchestrator(counting, testConfig(2), orchestrator.WithHarmonics(false))
	frames, err := o.Run(context.Background(), rate, left, right)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if harmonicCalls.Load() != 0 {
		t.Fatalf("expected no harmonic analysis, got %d calls", harmonicCalls.Load())
	}
	for i, f := range frames {
		if f.Pitch() != 0 || f.HarmonicFreqs != nil {
			t.Fatalf("frame %d: expected no harmonic data", i)
		}
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	left, right := stampedTrack(rate, rate*2)
	o := orchestrator.NewOrchestrator(fakeAnalyzer(-1), testConfig(1))
	if _, err := o.Run(ctx, rate, left, right); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRun_EmptyTrack(t *testing.T) {
	o := orchestrator.NewOrchestrator(fakeAnalyzer(-1), testConfig(1))
	frames, err := o.Run(context.Background(), rate, nil, nil)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(frames) != 0 {
		t.Fatalf("expected no frames, got %d", len(frames))
	}
}
