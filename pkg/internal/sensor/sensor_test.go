package sensor_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joeydtaylor/audiovis/pkg/internal/meter"
	"github.com/joeydtaylor/audiovis/pkg/internal/sensor"
	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

func TestSensorCallbacks(t *testing.T) {
	var starts, completes, errs, stages, tracks, stored, failed int64

	s := sensor.NewSensor(
		sensor.WithOnChunkStartFunc(func(c types.ComponentMetadata, index int, samples int) { atomic.AddInt64(&starts, 1) }),
		sensor.WithOnChunkCompleteFunc(func(c types.ComponentMetadata, index int, frames int, elapsed time.Duration) {
			atomic.AddInt64(&completes, int64(frames))
		}),
		sensor.WithOnChunkErrorFunc(func(c types.ComponentMetadata, index int, err error) { atomic.AddInt64(&errs, 1) }),
		sensor.WithOnStageStartFunc(func(c types.ComponentMetadata, stage string) { atomic.AddInt64(&stages, 1) }),
		sensor.WithOnTrackCompleteFunc(func(c types.ComponentMetadata, track string, frames int, allQuiet bool) {
			atomic.AddInt64(&tracks, 1)
		}),
		sensor.WithOnArtifactStoredFunc(func(c types.ComponentMetadata, location string, size int) { atomic.AddInt64(&stored, int64(size)) }),
		sensor.WithOnArtifactErrorFunc(func(c types.ComponentMetadata, name string, err error) { atomic.AddInt64(&failed, 1) }),
	)

	c := types.ComponentMetadata{Type: "ORCHESTRATOR"}
	s.InvokeOnChunkStart(c, 0, 88200)
	s.InvokeOnChunkStart(c, 1, 88200)
	s.InvokeOnChunkComplete(c, 0, 48, time.Millisecond)
	s.InvokeOnChunkComplete(c, 1, 48, time.Millisecond)
	s.InvokeOnChunkError(c, 2, errors.New("boom"))
	s.InvokeOnStageStart(c, "codebook")
	s.InvokeOnTrackComplete(c, "song", 96, false)
	s.InvokeOnArtifactStored(c, "out/song_analysis.data", 1024)
	s.InvokeOnArtifactError(c, "song_analysis.json", errors.New("denied"))

	if starts != 2 || completes != 96 || errs != 1 || stages != 1 || tracks != 1 || stored != 1024 || failed != 1 {
		t.Fatalf("unexpected callback counts: starts=%d frames=%d errs=%d stages=%d tracks=%d bytes=%d failed=%d",
			starts, completes, errs, stages, tracks, stored, failed)
	}
}

func TestSensorFeedsMeter(t *testing.T) {
	m := meter.NewMeter(context.Background(), meter.WithoutCPUSampling())
	s := sensor.NewSensor(sensor.WithMeter(m))
	if len(s.GetMeters()) != 1 {
		t.Fatalf("expected one connected meter")
	}

	c := types.ComponentMetadata{Type: "PIPELINE"}
	s.InvokeOnChunkStart(c, 0, 100)
	s.InvokeOnChunkComplete(c, 0, 24, 10*time.Millisecond)
	s.InvokeOnChunkComplete(c, 1, 24, 10*time.Millisecond)
	s.InvokeOnStageComplete(c, "quantize", 3*time.Millisecond)
	s.InvokeOnTrackComplete(c, "quiet", 0, true)
	s.InvokeOnArtifactStored(c, "a", 10)
	s.InvokeOnArtifactStored(c, "b", 5)

	checks := map[string]uint64{
		types.MetricChunksStartedCount:   1,
		types.MetricChunksCompletedCount: 2,
		types.MetricFramesEmittedCount:   48,
		types.MetricTracksCompletedCount: 1,
		types.MetricQuietTracksCount:     1,
		types.MetricArtifactsStoredCount: 2,
		types.MetricArtifactBytesTotal:   15,
	}
	for name, want := range checks {
		if got := m.GetMetricCount(name); got != want {
			t.Fatalf("%s: got %d want %d", name, got, want)
		}
	}
	if got := m.GetDuration(types.MetricChunkDurationTotal); got != 20*time.Millisecond {
		t.Fatalf("expected 20ms of chunk time, got %v", got)
	}
	if got := m.GetDuration(types.MetricStageDurationPrefix + "quantize"); got != 3*time.Millisecond {
		t.Fatalf("expected 3ms of quantize time, got %v", got)
	}
	if m.GetMetricCount(types.MetricResourceSamplesCounted) != 1 {
		t.Fatalf("expected track completion to sample resources")
	}
}
