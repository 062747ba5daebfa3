package meter

import (
	"context"
	"sync"
	"time"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
	"github.com/joeydtaylor/audiovis/pkg/internal/utils"
)

// Meter accumulates counters, durations and gauges for a batch of tracks.
type Meter struct {
	componentMetadata types.ComponentMetadata

	mu         sync.Mutex
	counts     map[string]uint64
	durations  map[string]time.Duration
	gauges     map[string]float64
	startTimes map[string]time.Time
	startTime  time.Time
	lastReport time.Time

	sampleInterval time.Duration
	sampleCPU      bool

	loggers   []types.Logger
	loggersMu sync.Mutex
}

// NewMeter creates a meter. When a sample interval is configured, resources are sampled in the
// background until ctx is done.
func NewMeter(ctx context.Context, options ...types.Option[*Meter]) *Meter {
	m := &Meter{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "METER",
		},
		counts:     make(map[string]uint64),
		durations:  make(map[string]time.Duration),
		gauges:     make(map[string]float64),
		startTimes: make(map[string]time.Time),
		startTime:  time.Now(),
		sampleCPU:  true,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}

	if m.sampleInterval > 0 {
		go m.sampleLoop(ctx, m.sampleInterval)
	}
	return m
}

// GetComponentMetadata returns the meter metadata.
func (m *Meter) GetComponentMetadata() types.ComponentMetadata {
	return m.componentMetadata
}

// SetComponentMetadata sets the name and id.
func (m *Meter) SetComponentMetadata(name string, id string) {
	m.componentMetadata.Name = name
	m.componentMetadata.ID = id
}

// Elapsed returns the time since the meter was created.
func (m *Meter) Elapsed() time.Duration {
	return time.Since(m.startTime)
}
