// Package builder is the public entry point to audiovis. It re-exports the component
// constructors and options under one import so callers never reach into pkg/internal.
package builder

import (
	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

type (
	ComponentMetadata = types.ComponentMetadata
	Config            = types.Config
	Track             = types.Track
	OutputFrame       = types.OutputFrame
	StereoPCM         = types.StereoPCM
	Artifact          = types.Artifact
	ArtifactSink      = types.ArtifactSink
	ArtifactSinkFunc  = types.ArtifactSinkFunc
	Notifier          = types.Notifier
	Analyzer          = types.Analyzer
	AnalyzerFunc      = types.AnalyzerFunc
	AnalysisKind      = types.AnalysisKind
	AnalysisResult    = types.AnalysisResult
	TrainingSource    = types.TrainingSource
	ClusterStrategy   = types.ClusterStrategy
	DistanceMetric    = types.DistanceMetric
)

const (
	TrainOnStride          = types.TrainOnStride
	TrainOnMixed           = types.TrainOnMixed
	StrategyKMeansPlusPlus = types.StrategyKMeansPlusPlus
	StrategyIterative      = types.StrategyIterative
	MetricEuclidean        = types.MetricEuclidean
	// Deprecated: see types.MetricLogDistance.
	MetricLogDistance = types.MetricLogDistance
)

// ErrInvalidConfig is the root of every configuration error.
var ErrInvalidConfig = types.ErrInvalidConfig

// DefaultConfig returns the canonical settings.
func DefaultConfig() Config {
	return types.DefaultConfig()
}
