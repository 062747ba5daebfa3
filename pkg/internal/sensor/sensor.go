package sensor

import (
	"sync"
	"time"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
	"github.com/joeydtaylor/audiovis/pkg/internal/utils"
)

// Sensor provides callback hooks for component telemetry.
type Sensor struct {
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	OnChunkStart     []func(types.ComponentMetadata, int, int)
	OnChunkComplete  []func(types.ComponentMetadata, int, int, time.Duration)
	OnChunkError     []func(types.ComponentMetadata, int, error)
	OnStageStart     []func(types.ComponentMetadata, string)
	OnStageComplete  []func(types.ComponentMetadata, string, time.Duration)
	OnTrackComplete  []func(types.ComponentMetadata, string, int, bool)
	OnArtifactStored []func(types.ComponentMetadata, string, int)
	OnArtifactError  []func(types.ComponentMetadata, string, error)

	callbackLock sync.Mutex
	loggers      []types.Logger
	loggersLock  sync.Mutex
	meters       []types.Meter
	metersLock   sync.Mutex
}

// NewSensor constructs a Sensor with optional configuration. Connected meters are fed from the
// sensor's own callbacks.
func NewSensor(options ...types.Option[types.Sensor]) types.Sensor {
	s := &Sensor{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "SENSOR",
		},
	}

	for _, opt := range s.decorateCallbacks(options...) {
		if opt == nil {
			continue
		}
		opt(s)
	}

	return s
}
