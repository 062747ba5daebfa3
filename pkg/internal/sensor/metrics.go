package sensor

import (
	"time"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

func (s *Sensor) snapshotMeters() []types.Meter {
	s.metersLock.Lock()
	meters := append([]types.Meter(nil), s.meters...)
	s.metersLock.Unlock()
	return meters
}

func (s *Sensor) incrementMeterCounters(metric string) {
	for _, m := range s.snapshotMeters() {
		m.IncrementCount(metric)
	}
}

func (s *Sensor) addToMeterCounters(metric string, delta uint64) {
	for _, m := range s.snapshotMeters() {
		m.AddToCount(metric, delta)
	}
}

func (s *Sensor) addMeterDurations(metric string, d time.Duration) {
	for _, m := range s.snapshotMeters() {
		m.AddDuration(metric, d)
	}
}

func (s *Sensor) sampleAndReport() {
	for _, m := range s.snapshotMeters() {
		m.SampleResources()
		m.ReportData()
	}
}

func (s *Sensor) decorateCallbacks(options ...types.Option[types.Sensor]) []types.Option[types.Sensor] {
	return append(
		options,
		WithOnChunkStartFunc(func(c types.ComponentMetadata, index int, samples int) {
			s.incrementMeterCounters(types.MetricChunksStartedCount)
		}),
		WithOnChunkCompleteFunc(func(c types.ComponentMetadata, index int, frames int, elapsed time.Duration) {
			s.incrementMeterCounters(types.MetricChunksCompletedCount)
			s.addToMeterCounters(types.MetricFramesEmittedCount, uint64(frames))
			s.addMeterDurations(types.MetricChunkDurationTotal, elapsed)
		}),
		WithOnChunkErrorFunc(func(c types.ComponentMetadata, index int, err error) {
			s.incrementMeterCounters(types.MetricChunkErrorCount)
		}),
		WithOnStageCompleteFunc(func(c types.ComponentMetadata, stage string, elapsed time.Duration) {
			s.addMeterDurations(types.MetricStageDurationPrefix+stage, elapsed)
		}),
		WithOnTrackCompleteFunc(func(c types.ComponentMetadata, track string, frames int, allQuiet bool) {
			s.incrementMeterCounters(types.MetricTracksCompletedCount)
			if allQuiet {
				s.incrementMeterCounters(types.MetricQuietTracksCount)
			}
			s.sampleAndReport()
		}),
		WithOnArtifactStoredFunc(func(c types.ComponentMetadata, location string, size int) {
			s.incrementMeterCounters(types.MetricArtifactsStoredCount)
			s.addToMeterCounters(types.MetricArtifactBytesTotal, uint64(size))
		}),
		WithOnArtifactErrorFunc(func(c types.ComponentMetadata, name string, err error) {
			s.incrementMeterCounters(types.MetricArtifactErrorCount)
		}),
	)
}
