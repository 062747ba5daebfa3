// Package orchestrator splits a stereo track into fixed-length chunks, analyzes and resamples
// every chunk on a bounded worker pool and merges the results in chunk order.
//
// Results land in an arena pre-sized to the chunk count and indexed by chunk number, so the
// completion order of workers never affects the output. The first failing chunk cancels the
// remaining work and the whole track fails; there are no partial results.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/joeydtaylor/audiovis/pkg/internal/resampler"
	"github.com/joeydtaylor/audiovis/pkg/internal/types"
	"github.com/joeydtaylor/audiovis/pkg/internal/utils"
	"github.com/joeydtaylor/audiovis/pkg/logschema"
	"golang.org/x/sync/errgroup"
)

// ErrChannelLength is returned when the two channels carry a different number of samples.
var ErrChannelLength = errors.New("orchestrator: left and right channel lengths differ")

// ChunkError attributes a failure to the chunk that caused it.
type ChunkError struct {
	Index int
	Err   error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk %d: %v", e.Index, e.Err)
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}

// Orchestrator drives the per-chunk analysis of one track at a time.
type Orchestrator struct {
	componentMetadata types.ComponentMetadata
	analyzer          types.Analyzer
	fps               int
	chunkSeconds      float64
	workers           int
	harmonic          bool

	loggers     []types.Logger
	loggersLock sync.Mutex
	sensors     []types.Sensor
	sensorsLock sync.Mutex
}

// NewOrchestrator builds an orchestrator from the run configuration.
func NewOrchestrator(analyzer types.Analyzer, cfg types.Config, options ...types.Option[*Orchestrator]) *Orchestrator {
	o := &Orchestrator{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "ORCHESTRATOR",
		},
		analyzer:     analyzer,
		fps:          cfg.TargetFPS,
		chunkSeconds: cfg.ChunkSeconds,
		workers:      cfg.Workers,
		harmonic:     true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.workers < 1 {
		o.workers = 1
	}
	return o
}

// Split cuts both channels into chunks of chunkLen samples plus one trailing partial chunk.
func Split(left, right []float64, chunkLen int) ([]types.Chunk, error) {
	if len(left) != len(right) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrChannelLength, len(left), len(right))
	}
	if chunkLen <= 0 {
		return nil, fmt.Errorf("%w: chunk length %d", types.ErrInvalidConfig, chunkLen)
	}
	total := len(left)
	full := total / chunkLen
	count := full
	if total%chunkLen != 0 {
		count++
	}

	chunks := make([]types.Chunk, count)
	for i := range chunks {
		start := i * chunkLen
		end := min(start+chunkLen, total)
		chunks[i] = types.Chunk{
			Index:  i,
			Offset: start,
			Left:   left[start:end],
			Right:  right[start:end],
		}
	}
	return chunks, nil
}

// Run analyzes the whole track and returns its output frames in time order.
func (o *Orchestrator) Run(ctx context.Context, sampleRate int, left, right []float64) ([]types.OutputFrame, error) {
	if o.analyzer == nil {
		return nil, fmt.Errorf("%w: no analyzer", types.ErrInvalidConfig)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", types.ErrInvalidConfig, sampleRate)
	}
	chunks, err := Split(left, right, int(float64(sampleRate)*o.chunkSeconds))
	if err != nil {
		return nil, err
	}

	arena := make([][]types.OutputFrame, len(chunks))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(o.workers)
	for _, c := range chunks {
		eg.Go(func() error {
			frames, err := o.ProcessChunk(egCtx, sampleRate, c)
			if err != nil {
				return err
			}
			arena[c.Index] = frames
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, frames := range arena {
		total += len(frames)
	}
	out := make([]types.OutputFrame, 0, total)
	for _, frames := range arena {
		out = append(out, frames...)
	}
	return out, nil
}

// ProcessChunk analyzes and resamples a single chunk.
func (o *Orchestrator) ProcessChunk(ctx context.Context, sampleRate int, c types.Chunk) ([]types.OutputFrame, error) {
	start := time.Now()
	for _, s := range o.snapshotSensors() {
		s.InvokeOnChunkStart(o.componentMetadata, c.Index, c.Len())
	}
	o.NotifyLoggers(types.DebugLevel, "chunk start",
		logschema.FieldComponent, o.componentMetadata,
		logschema.FieldEvent, logschema.EventChunkStart,
		logschema.FieldChunk, c.Index,
		"samples", c.Len(),
	)

	frames, err := o.processChunk(ctx, sampleRate, c)
	if err != nil {
		for _, s := range o.snapshotSensors() {
			s.InvokeOnChunkError(o.componentMetadata, c.Index, err)
		}
		if !errors.Is(err, context.Canceled) {
			o.NotifyLoggers(types.ErrorLevel, "chunk failed",
				logschema.FieldComponent, o.componentMetadata,
				logschema.FieldEvent, logschema.EventChunkError,
				logschema.FieldChunk, c.Index,
				logschema.FieldError, err,
			)
		}
		return nil, &ChunkError{Index: c.Index, Err: err}
	}

	elapsed := time.Since(start)
	for _, s := range o.snapshotSensors() {
		s.InvokeOnChunkComplete(o.componentMetadata, c.Index, len(frames), elapsed)
	}
	o.NotifyLoggers(types.DebugLevel, "chunk complete",
		logschema.FieldComponent, o.componentMetadata,
		logschema.FieldEvent, logschema.EventChunkComplete,
		logschema.FieldChunk, c.Index,
		logschema.FieldFrames, len(frames),
		logschema.FieldElapsed, elapsed,
	)
	return frames, nil
}

func (o *Orchestrator) processChunk(ctx context.Context, sampleRate int, c types.Chunk) ([]types.OutputFrame, error) {
	var in resampler.Input
	channels := [2][]float64{c.Left, c.Right}
	for ch, samples := range channels {
		res, err := o.analyzer.Analyze(ctx, sampleRate, samples, types.KindSpectrum)
		if err != nil {
			return nil, fmt.Errorf("spectrum analysis: %w", err)
		}
		in.Spectrum[ch] = res
	}
	if o.harmonic {
		for ch, samples := range channels {
			res, err := o.analyzer.Analyze(ctx, sampleRate, samples, types.KindHarmonic)
			if err != nil {
				return nil, fmt.Errorf("harmonic analysis: %w", err)
			}
			in.Harmonic[ch] = res
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return resampler.Resample(sampleRate, o.fps, in)
}
