// Package pipeline runs one recording through analysis, normalization, clustering and
// quantization and hands the finished track to the exporter.
package pipeline

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/joeydtaylor/audiovis/pkg/internal/analysis"
	"github.com/joeydtaylor/audiovis/pkg/internal/codebook"
	"github.com/joeydtaylor/audiovis/pkg/internal/exporter"
	"github.com/joeydtaylor/audiovis/pkg/internal/normalizer"
	"github.com/joeydtaylor/audiovis/pkg/internal/orchestrator"
	"github.com/joeydtaylor/audiovis/pkg/internal/quantizer"
	"github.com/joeydtaylor/audiovis/pkg/internal/types"
	"github.com/joeydtaylor/audiovis/pkg/internal/utils"
	"github.com/joeydtaylor/audiovis/pkg/logschema"
)

// Stage names reported in StageError and to sensors.
const (
	StageValidate  = "validate"
	StageAnalyze   = "analyze"
	StageNormalize = "normalize"
	StageCodebook  = "codebook"
	StageQuantize  = "quantize"
	StageExport    = "export"
)

// StageError attributes a failure to the pipeline stage that raised it.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline: %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Pipeline processes tracks with a fixed configuration. It may be reused for many tracks.
type Pipeline struct {
	componentMetadata types.ComponentMetadata
	cfg               types.Config

	analyzer     types.Analyzer
	harmonic     bool
	orchestrator *orchestrator.Orchestrator
	builder      *codebook.Builder
	exporter     *exporter.Exporter
	exportOpts   []types.Option[*exporter.Exporter]

	loggers     []types.Logger
	loggersLock sync.Mutex
	sensors     []types.Sensor
	sensorsLock sync.Mutex
}

// NewPipeline wires the stage components for cfg. Without WithAnalyzer the default analysis model
// is used, searching fundamentals in [cfg.MinF0, cfg.MaxF0].
func NewPipeline(cfg types.Config, options ...types.Option[*Pipeline]) *Pipeline {
	p := &Pipeline{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "PIPELINE",
		},
		cfg:      cfg,
		harmonic: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}

	loggers := p.snapshotLoggers()
	sensors := p.snapshotSensors()
	if p.analyzer == nil {
		p.analyzer = analysis.NewModel(
			analysis.WithF0Range(cfg.MinF0, cfg.MaxF0),
			analysis.WithLogger(loggers...),
		)
	}
	p.orchestrator = orchestrator.NewOrchestrator(p.analyzer, cfg,
		orchestrator.WithLogger(loggers...),
		orchestrator.WithSensor(sensors...),
		orchestrator.WithHarmonics(p.harmonic),
	)
	p.builder = codebook.NewBuilder(cfg, codebook.WithLogger(loggers...))
	p.exporter = exporter.NewExporter(append([]types.Option[*exporter.Exporter]{
		exporter.WithScaleRange(cfg.ScaleRange),
		exporter.WithLogger(loggers...),
		exporter.WithSensor(sensors...),
	}, p.exportOpts...)...)
	return p
}

// Config returns the run configuration.
func (p *Pipeline) Config() types.Config {
	return p.cfg
}

// Exporter returns the exporter used by Export.
func (p *Pipeline) Exporter() *exporter.Exporter {
	return p.exporter
}

// Process turns a stereo recording into a finished track. Configuration problems are reported
// before any chunk is analyzed. A track with no frame at or above the noise threshold comes back
// with AllQuiet set and no codebook.
func (p *Pipeline) Process(ctx context.Context, name string, sampleRate int, left, right []float64) (*types.Track, error) {
	start := time.Now()
	if err := p.stage(StageValidate, func() error {
		return p.validate(sampleRate, left, right)
	}); err != nil {
		return nil, err
	}

	track := &types.Track{
		Name:       name,
		SampleRate: sampleRate,
		FPS:        p.cfg.TargetFPS,
		MinF0:      p.cfg.MinF0,
		MaxF0:      p.cfg.MaxF0,
	}

	if err := p.stage(StageAnalyze, func() error {
		frames, err := p.orchestrator.Run(ctx, sampleRate, left, right)
		track.Frames = frames
		return err
	}); err != nil {
		return nil, err
	}

	if err := p.stage(StageNormalize, func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		track.NonQuiet = normalizer.NonQuiet(track.Frames, p.cfg.NoiseThreshold)
		normalizer.Normalize(track.Frames, p.cfg.Epsilon)
		return nil
	}); err != nil {
		return nil, err
	}

	if len(track.NonQuiet) == 0 {
		track.AllQuiet = true
		p.NotifyLoggers(types.InfoLevel, "track is silent",
			logschema.FieldComponent, p.componentMetadata,
			logschema.FieldEvent, logschema.EventTrackSilent,
			logschema.FieldTrack, name,
			logschema.FieldFrames, track.Len(),
		)
		p.complete(track, start)
		return track, nil
	}

	if err := p.stage(StageCodebook, func() error {
		res, err := p.builder.Train(ctx, track.LeftSpectra(), track.RightSpectra(), track.NonQuiet)
		if err != nil {
			return err
		}
		track.Centroids = res.Centroids
		return nil
	}); err != nil {
		return nil, err
	}

	if err := p.stage(StageQuantize, func() error {
		idx, err := quantizer.Quantize(ctx, track.LeftSpectra(), track.Centroids, quantizer.Options{
			Metric:  p.cfg.Metric,
			Workers: p.cfg.Workers,
		})
		if err != nil {
			return err
		}
		for i := range idx {
			track.Frames[i].CentroidIndex = idx[i]
		}
		return nil
	}); err != nil {
		return nil, err
	}

	p.complete(track, start)
	return track, nil
}

// Export writes the track's artifacts to every configured sink.
func (p *Pipeline) Export(ctx context.Context, track *types.Track) ([]string, error) {
	var locations []string
	err := p.stage(StageExport, func() error {
		var err error
		locations, err = p.exporter.Export(ctx, track)
		return err
	})
	return locations, err
}

// validate runs the checks that must pass before chunk processing starts.
func (p *Pipeline) validate(sampleRate int, left, right []float64) error {
	if err := p.cfg.Validate(); err != nil {
		return err
	}
	if err := p.cfg.ValidateInput(sampleRate, len(left)); err != nil {
		return err
	}
	if len(left) != len(right) {
		return fmt.Errorf("%w: %d vs %d", orchestrator.ErrChannelLength, len(left), len(right))
	}
	if len(left) == 0 {
		return nil
	}
	if bound := p.MaxTrainingVectors(sampleRate, len(left)); p.cfg.CentroidCount > bound {
		return fmt.Errorf("%w: %d centroids, at most %d training vectors", codebook.ErrTooFewSamples, p.cfg.CentroidCount, bound)
	}
	return nil
}

// MaxTrainingVectors bounds the clustering input a recording of n samples can produce: one output
// frame more than the nominal rate per chunk, strided.
func (p *Pipeline) MaxTrainingVectors(sampleRate, n int) int {
	chunkLen := p.cfg.ChunkLen(sampleRate)
	if chunkLen <= 0 || p.cfg.StrideStep <= 0 {
		return 0
	}
	chunks := (n + chunkLen - 1) / chunkLen
	perChunk := int(math.Ceil(p.cfg.ChunkSeconds*float64(p.cfg.TargetFPS))) + 1
	frames := chunks * perChunk
	return (frames + p.cfg.StrideStep - 1) / p.cfg.StrideStep
}

func (p *Pipeline) stage(name string, fn func() error) error {
	start := time.Now()
	sensors := p.snapshotSensors()
	for _, s := range sensors {
		s.InvokeOnStageStart(p.componentMetadata, name)
	}
	p.NotifyLoggers(types.DebugLevel, "stage start",
		logschema.FieldComponent, p.componentMetadata,
		logschema.FieldEvent, logschema.EventStageStart,
		logschema.FieldStage, name,
	)

	if err := fn(); err != nil {
		p.NotifyLoggers(types.ErrorLevel, "stage failed",
			logschema.FieldComponent, p.componentMetadata,
			logschema.FieldEvent, logschema.EventStageError,
			logschema.FieldStage, name,
			logschema.FieldError, err,
		)
		return &StageError{Stage: name, Err: err}
	}

	elapsed := time.Since(start)
	for _, s := range sensors {
		s.InvokeOnStageComplete(p.componentMetadata, name, elapsed)
	}
	p.NotifyLoggers(types.DebugLevel, "stage complete",
		logschema.FieldComponent, p.componentMetadata,
		logschema.FieldEvent, logschema.EventStageComplete,
		logschema.FieldStage, name,
		logschema.FieldElapsed, elapsed,
	)
	return nil
}

func (p *Pipeline) complete(track *types.Track, start time.Time) {
	for _, s := range p.snapshotSensors() {
		s.InvokeOnTrackComplete(p.componentMetadata, track.Name, track.Len(), track.AllQuiet)
	}
	p.NotifyLoggers(types.InfoLevel, "track processed",
		logschema.FieldComponent, p.componentMetadata,
		logschema.FieldEvent, logschema.EventTrackComplete,
		logschema.FieldTrack, track.Name,
		logschema.FieldFrames, track.Len(),
		"non_quiet", len(track.NonQuiet),
		"silent", track.AllQuiet,
		logschema.FieldElapsed, time.Since(start),
	)
}
