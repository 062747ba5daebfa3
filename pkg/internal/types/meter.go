package types

import "time"

const (
	MetricChunksStartedCount     = "chunks_started_count"
	MetricChunksCompletedCount   = "chunks_completed_count"
	MetricChunkErrorCount        = "chunk_error_count"
	MetricFramesEmittedCount     = "frames_emitted_count"
	MetricTracksCompletedCount   = "tracks_completed_count"
	MetricQuietTracksCount       = "quiet_tracks_count"
	MetricArtifactsStoredCount   = "artifacts_stored_count"
	MetricArtifactBytesTotal     = "artifact_bytes_total"
	MetricArtifactErrorCount     = "artifact_error_count"
	MetricCurrentCpuPercentage   = "current_cpu_percentage"
	MetricCurrentRamPercentage   = "current_ram_percentage"
	MetricCurrentGoRoutines      = "current_go_routines_active"
	MetricPeakGoRoutines         = "peak_go_routines_active"
	MetricStageDurationPrefix    = "stage_duration_"
	MetricChunkDurationTotal     = "chunk_duration_total"
	MetricTrackDurationTotal     = "track_duration_total"
	MetricResourceSamplesCounted = "resource_samples_count"
)

// Meter accumulates counters, durations and resource samples for a run.
type Meter interface {
	GetComponentMetadata() ComponentMetadata
	ConnectLogger(...Logger)

	IncrementCount(name string)
	AddToCount(name string, delta uint64)
	GetMetricCount(name string) uint64

	AddDuration(name string, d time.Duration)
	GetDuration(name string) time.Duration
	StartTimer(name string)
	StopTimer(name string) time.Duration

	SetGauge(name string, value float64)
	GetGauge(name string) float64

	SampleResources()
	Snapshot() map[string]float64
	ReportData()
}
