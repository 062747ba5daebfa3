package builder

import (
	"github.com/joeydtaylor/audiovis/pkg/internal/analysis"
	"github.com/joeydtaylor/audiovis/pkg/internal/exporter"
	"github.com/joeydtaylor/audiovis/pkg/internal/pipeline"
	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

type Pipeline = pipeline.Pipeline

type StageError = pipeline.StageError

type Exporter = exporter.Exporter

type Manifest = exporter.Manifest

type DirSink = exporter.DirSink

// PipelineOption configures a Pipeline.
type PipelineOption = types.Option[*Pipeline]

// ExporterOption configures the pipeline's Exporter.
type ExporterOption = types.Option[*Exporter]

// NewPipeline wires a track pipeline for cfg.
func NewPipeline(cfg Config, options ...types.Option[*Pipeline]) *Pipeline {
	return pipeline.NewPipeline(cfg, options...)
}

// PipelineWithLogger attaches loggers to the pipeline and its stages.
func PipelineWithLogger(loggers ...types.Logger) types.Option[*Pipeline] {
	return pipeline.WithLogger(loggers...)
}

// PipelineWithSensor attaches sensors to the pipeline and its stages.
func PipelineWithSensor(sensors ...types.Sensor) types.Option[*Pipeline] {
	return pipeline.WithSensor(sensors...)
}

// PipelineWithAnalyzer replaces the default analysis model.
func PipelineWithAnalyzer(a Analyzer) types.Option[*Pipeline] {
	return pipeline.WithAnalyzer(a)
}

// PipelineWithHarmonics toggles pitch tracking.
func PipelineWithHarmonics(enabled bool) types.Option[*Pipeline] {
	return pipeline.WithHarmonics(enabled)
}

// PipelineWithExporterOptions forwards options to the pipeline's exporter.
func PipelineWithExporterOptions(options ...types.Option[*Exporter]) types.Option[*Pipeline] {
	return pipeline.WithExporterOptions(options...)
}

// PipelineWithComponentMetadata sets a name and id.
func PipelineWithComponentMetadata(name string, id string) types.Option[*Pipeline] {
	return pipeline.WithComponentMetadata(name, id)
}

// NewAnalysisModel returns the default spectral and harmonic analyzer.
func NewAnalysisModel(minF0, maxF0 float64, loggers ...types.Logger) Analyzer {
	return analysis.NewModel(analysis.WithF0Range(minF0, maxF0), analysis.WithLogger(loggers...))
}

// NewDirSink writes artifacts under dir.
func NewDirSink(dir string) *DirSink {
	return exporter.NewDirSink(dir)
}

// ExporterWithSink adds artifact sinks.
func ExporterWithSink(sinks ...ArtifactSink) types.Option[*Exporter] {
	return exporter.WithSink(sinks...)
}

// ExporterWithNotifier adds notifiers called after every export.
func ExporterWithNotifier(notifiers ...Notifier) types.Option[*Exporter] {
	return exporter.WithNotifier(notifiers...)
}

// ExporterWithCompression adds a compressed copy of the data blob.
func ExporterWithCompression(name string) types.Option[*Exporter] {
	return exporter.WithCompression(name)
}

// ExporterWithFrameTable adds a per-frame Parquet table.
func ExporterWithFrameTable(compression string) types.Option[*Exporter] {
	return exporter.WithFrameTable(compression)
}

// ParseCompression normalizes a compression name.
func ParseCompression(name string) (string, error) {
	return exporter.ParseCompression(name)
}

// ParseManifest decodes a manifest file.
func ParseManifest(data []byte) (Manifest, error) {
	return exporter.ParseManifest(data)
}

// ReadData splits a data blob into its fields.
func ReadData(data []byte, m Manifest) (exporter.FieldValues, error) {
	return exporter.ReadData(data, m)
}

// Decompress reverses a compressed data artifact.
func Decompress(data []byte, name string) ([]byte, error) {
	return exporter.Decompress(data, name)
}

// ManifestName returns the manifest artifact name for a track.
func ManifestName(track string) string {
	return exporter.ManifestName(track)
}

// DataName returns the raw data artifact name for a track.
func DataName(track string) string {
	return exporter.DataName(track)
}

// FileListName is the session index written next to the track artifacts.
const FileListName = exporter.FileListName

// MarshalFileList encodes the session index.
func MarshalFileList(master string, tracks []string) ([]byte, error) {
	return exporter.MarshalFileList(master, tracks)
}

// MasterName returns the compressed master mix name for a recording path.
func MasterName(path string) string {
	return exporter.MasterName(path)
}

// CompressionSuffix returns the file suffix of a compressed data copy.
func CompressionSuffix(name string) string {
	return exporter.CompressionSuffix(name)
}
