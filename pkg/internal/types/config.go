package types

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is the root of every configuration failure. Configuration errors are raised
// before any chunk is analyzed.
var ErrInvalidConfig = errors.New("invalid configuration")

// TrainingSource selects which vectors the codebook clusters.
type TrainingSource string

const (
	// TrainOnStride clusters every StrideStep-th left-channel frame of the whole track.
	TrainOnStride TrainingSource = "stride"
	// TrainOnMixed clusters every StrideStep-th vector of the channel-mixed non-quiet training set.
	TrainOnMixed TrainingSource = "mixed"
)

// DistanceMetric selects the quantizer distance.
type DistanceMetric string

const (
	MetricEuclidean DistanceMetric = "euclidean"
	// Deprecated: MetricLogDistance compares log10 values and does not agree with the
	// Euclidean codebook. Kept for reproducing old exports.
	MetricLogDistance DistanceMetric = "log10"
)

// ClusterStrategy selects the codebook clustering algorithm.
type ClusterStrategy string

const (
	StrategyKMeansPlusPlus ClusterStrategy = "kmeans++"
	StrategyIterative      ClusterStrategy = "iterative"
)

// Config carries every tunable of a track run. It is passed explicitly at construction time.
type Config struct {
	SampleRate   int     `yaml:"sample_rate"` // expected input rate; 0 accepts whatever the input carries
	TargetFPS    int     `yaml:"fps"`
	ChunkSeconds float64 `yaml:"chunk_seconds"`
	Workers      int     `yaml:"workers"`

	CentroidCount       int             `yaml:"centroid_count"`
	QualityBudget       int             `yaml:"quality"`
	IterationMultiplier int             `yaml:"iteration_multiplier"`
	Tolerance           float64         `yaml:"tolerance"`
	Seed                uint64          `yaml:"seed"`
	StrideStep          int             `yaml:"stride_step"`
	TrainOn             TrainingSource  `yaml:"train_on"`
	Strategy            ClusterStrategy `yaml:"strategy"`
	Metric              DistanceMetric  `yaml:"metric"`

	NoiseThreshold float64 `yaml:"noise_threshold"`
	Epsilon        float64 `yaml:"epsilon"`

	MinF0      float64 `yaml:"min_f0"`
	MaxF0      float64 `yaml:"max_f0"`
	ScaleRange int     `yaml:"scale_range"`
}

// DefaultConfig returns the canonical settings: 24 fps, 2 s chunks, 24 centroids.
func DefaultConfig() Config {
	return Config{
		TargetFPS:           24,
		ChunkSeconds:        2,
		Workers:             1,
		CentroidCount:       24,
		QualityBudget:       1,
		IterationMultiplier: 100,
		Tolerance:           1e-4,
		Seed:                42,
		StrideStep:          4,
		TrainOn:             TrainOnStride,
		Strategy:            StrategyKMeansPlusPlus,
		Metric:              MetricEuclidean,
		NoiseThreshold:      0.0001,
		Epsilon:             1e-10,
		MinF0:               30,
		MaxF0:               3000,
		ScaleRange:          65535,
	}
}

// MaxIterations is the clustering budget: quality times the fixed multiplier.
func (c Config) MaxIterations() int {
	return c.QualityBudget * c.IterationMultiplier
}

// ChunkLen returns the chunk length in samples for the given rate.
func (c Config) ChunkLen(sampleRate int) int {
	return int(float64(sampleRate) * c.ChunkSeconds)
}

// Validate checks the settings that do not depend on the input.
func (c Config) Validate() error {
	switch {
	case c.SampleRate < 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.SampleRate)
	case c.TargetFPS <= 0:
		return fmt.Errorf("%w: target fps %d", ErrInvalidConfig, c.TargetFPS)
	case c.ChunkSeconds <= 0:
		return fmt.Errorf("%w: chunk seconds %v", ErrInvalidConfig, c.ChunkSeconds)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	case c.CentroidCount <= 0 || c.CentroidCount > c.ScaleRange+1:
		return fmt.Errorf("%w: centroid count %d", ErrInvalidConfig, c.CentroidCount)
	case c.QualityBudget <= 0 || c.IterationMultiplier <= 0:
		return fmt.Errorf("%w: iteration budget %dx%d", ErrInvalidConfig, c.QualityBudget, c.IterationMultiplier)
	case c.StrideStep <= 0:
		return fmt.Errorf("%w: stride step %d", ErrInvalidConfig, c.StrideStep)
	case c.Epsilon <= 0:
		return fmt.Errorf("%w: epsilon %v", ErrInvalidConfig, c.Epsilon)
	case c.MaxF0 <= 0 || c.MinF0 < 0 || c.MinF0 >= c.MaxF0:
		return fmt.Errorf("%w: f0 range [%v, %v]", ErrInvalidConfig, c.MinF0, c.MaxF0)
	case c.ScaleRange <= 0 || c.ScaleRange > 65535:
		return fmt.Errorf("%w: scale range %d", ErrInvalidConfig, c.ScaleRange)
	}
	switch c.TrainOn {
	case TrainOnStride, TrainOnMixed:
	default:
		return fmt.Errorf("%w: train_on %q", ErrInvalidConfig, c.TrainOn)
	}
	switch c.Strategy {
	case StrategyKMeansPlusPlus, StrategyIterative:
	default:
		return fmt.Errorf("%w: strategy %q", ErrInvalidConfig, c.Strategy)
	}
	switch c.Metric {
	case MetricEuclidean, MetricLogDistance:
	default:
		return fmt.Errorf("%w: metric %q", ErrInvalidConfig, c.Metric)
	}
	return nil
}

// ValidateInput checks the settings against an actual recording.
func (c Config) ValidateInput(sampleRate, samples int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, sampleRate)
	}
	if c.SampleRate > 0 && c.SampleRate != sampleRate {
		return fmt.Errorf("%w: sample rate %d, expected %d", ErrInvalidConfig, sampleRate, c.SampleRate)
	}
	if c.TargetFPS > sampleRate {
		return fmt.Errorf("%w: target fps %d above sample rate %d", ErrInvalidConfig, c.TargetFPS, sampleRate)
	}
	if c.ChunkLen(sampleRate) <= 0 {
		return fmt.Errorf("%w: chunk of %v s at %d Hz is empty", ErrInvalidConfig, c.ChunkSeconds, sampleRate)
	}
	if samples < 0 {
		return fmt.Errorf("%w: negative sample count", ErrInvalidConfig)
	}
	return nil
}
