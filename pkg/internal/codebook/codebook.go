// Package codebook clusters normalized spectral vectors into a fixed-size codebook.
//
// Two strategies share one Lloyd loop: k-means++ seeding (the default) and the legacy iterative
// seeding that starts from the first distinct samples. The assign phase runs over blocks of
// samples on a bounded pool and always completes before centroids are updated.
package codebook

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
	"github.com/joeydtaylor/audiovis/pkg/internal/utils"
	"github.com/joeydtaylor/audiovis/pkg/logschema"
)

// ErrTooFewSamples is a configuration error: the codebook asks for more centroids than there are
// vectors to cluster. It is raised before any clustering work.
var ErrTooFewSamples = fmt.Errorf("%w: fewer training vectors than centroids", types.ErrInvalidConfig)

// ErrRaggedInput is returned when training vectors differ in length.
var ErrRaggedInput = errors.New("codebook: training vectors differ in length")

// Builder trains codebooks for one configuration.
type Builder struct {
	componentMetadata types.ComponentMetadata

	centroidCount int
	maxIterations int
	tolerance     float64
	seed          uint64
	strideStep    int
	trainOn       types.TrainingSource
	strategy      types.ClusterStrategy
	workers       int

	loggers     []types.Logger
	loggersLock sync.Mutex
}

// Result is a trained codebook together with the assignment of the training vectors.
type Result struct {
	Centroids  [][]float64
	Labels     []int
	Iterations int
	Inertia    float64
	Converged  bool
}

// NewBuilder creates a builder from the run configuration.
func NewBuilder(cfg types.Config, options ...types.Option[*Builder]) *Builder {
	b := &Builder{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "CODEBOOK",
		},
		centroidCount: cfg.CentroidCount,
		maxIterations: cfg.MaxIterations(),
		tolerance:     cfg.Tolerance,
		seed:          cfg.Seed,
		strideStep:    cfg.StrideStep,
		trainOn:       cfg.TrainOn,
		strategy:      cfg.Strategy,
		workers:       cfg.Workers,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	if b.workers < 1 {
		b.workers = 1
	}
	if b.strideStep < 1 {
		b.strideStep = 1
	}
	return b
}

// TrainingSet picks one channel per non-quiet frame with a seeded coin flip.
func TrainingSet(left, right [][]float64, nonQuiet []int, seed uint64) [][]float64 {
	rng := rand.New(rand.NewPCG(seed, seed))
	out := make([][]float64, 0, len(nonQuiet))
	for _, i := range nonQuiet {
		if i < 0 || i >= len(left) || i >= len(right) {
			continue
		}
		if rng.IntN(2) == 0 {
			out = append(out, left[i])
		} else {
			out = append(out, right[i])
		}
	}
	return out
}

// Stride returns every step-th vector starting at the first.
func Stride(samples [][]float64, step int) [][]float64 {
	if step < 1 {
		step = 1
	}
	out := make([][]float64, 0, (len(samples)+step-1)/step)
	for i := 0; i < len(samples); i += step {
		out = append(out, samples[i])
	}
	return out
}

// Input returns the vectors the configured training source clusters.
func (b *Builder) Input(left, right [][]float64, nonQuiet []int) [][]float64 {
	if b.trainOn == types.TrainOnMixed {
		return Stride(TrainingSet(left, right, nonQuiet, b.seed), b.strideStep)
	}
	return Stride(left, b.strideStep)
}

// Validate reports ErrTooFewSamples for an input that cannot carry the configured codebook.
func (b *Builder) Validate(n int) error {
	if b.centroidCount <= 0 || b.centroidCount > n {
		return fmt.Errorf("%w: %d centroids from %d vectors", ErrTooFewSamples, b.centroidCount, n)
	}
	return nil
}

// Train selects the clustering input from the track's spectra and fits the codebook.
func (b *Builder) Train(ctx context.Context, left, right [][]float64, nonQuiet []int) (*Result, error) {
	return b.Fit(ctx, b.Input(left, right, nonQuiet))
}

// Fit clusters samples into the configured number of centroids.
func (b *Builder) Fit(ctx context.Context, samples [][]float64) (*Result, error) {
	if err := b.Validate(len(samples)); err != nil {
		return nil, err
	}
	dim := len(samples[0])
	for i, s := range samples {
		if len(s) != dim {
			return nil, fmt.Errorf("%w: vector %d has %d values, expected %d", ErrRaggedInput, i, len(s), dim)
		}
	}

	start := time.Now()
	b.NotifyLoggers(types.DebugLevel, "codebook fit start",
		logschema.FieldComponent, b.componentMetadata,
		logschema.FieldEvent, logschema.EventStageStart,
		"samples", len(samples),
		"centroids", b.centroidCount,
		"strategy", string(b.strategy),
	)

	var initial [][]float64
	switch b.strategy {
	case types.StrategyIterative:
		initial = firstDistinct(samples, b.centroidCount)
	default:
		rng := rand.New(rand.NewPCG(b.seed, b.seed))
		initial = kmeansPlusPlus(samples, b.centroidCount, rng)
	}

	res, err := b.lloyd(ctx, samples, initial)
	if err != nil {
		return nil, err
	}

	b.NotifyLoggers(types.InfoLevel, "codebook fit complete",
		logschema.FieldComponent, b.componentMetadata,
		logschema.FieldEvent, logschema.EventStageComplete,
		"iterations", res.Iterations,
		"converged", res.Converged,
		"inertia", res.Inertia,
		logschema.FieldElapsed, time.Since(start),
	)
	return res, nil
}

// GetComponentMetadata returns the builder's metadata.
func (b *Builder) GetComponentMetadata() types.ComponentMetadata {
	return b.componentMetadata
}

// SetComponentMetadata sets the name and id.
func (b *Builder) SetComponentMetadata(name string, id string) {
	b.componentMetadata.Name = name
	b.componentMetadata.ID = id
}

// ConnectLogger attaches loggers.
func (b *Builder) ConnectLogger(loggers ...types.Logger) {
	b.loggersLock.Lock()
	defer b.loggersLock.Unlock()
	b.loggers = append(b.loggers, loggers...)
}

func (b *Builder) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	b.loggersLock.Lock()
	loggers := append([]types.Logger(nil), b.loggers...)
	b.loggersLock.Unlock()

	for _, logger := range loggers {
		if logger == nil || logger.GetLevel() > level {
			continue
		}
		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		default:
			logger.Error(msg, keysAndValues...)
		}
	}
}

func sqDist(a, b []float64) float64 {
	var s float64
	for k := range a {
		d := a[k] - b[k]
		s += d * d
	}
	return s
}

// nearest returns the closest centroid; ties go to the lowest index.
func nearest(x []float64, centroids [][]float64) (int, float64) {
	best, bestD := 0, math.Inf(1)
	for c, ctr := range centroids {
		if d := sqDist(x, ctr); d < bestD {
			best, bestD = c, d
		}
	}
	return best, bestD
}

func clone(v []float64) []float64 {
	return append([]float64(nil), v...)
}
