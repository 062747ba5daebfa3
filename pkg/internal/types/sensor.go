package types

import "time"

// Sensor collects callbacks that components fire at well-defined points of a track run.
// Registration is safe at any time; invocation never blocks on the callbacks' owners.
type Sensor interface {
	GetComponentMetadata() ComponentMetadata
	ConnectLogger(...Logger)
	ConnectMeter(...Meter)
	GetMeters() []Meter
	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})

	RegisterOnChunkStart(...func(c ComponentMetadata, index int, samples int))
	RegisterOnChunkComplete(...func(c ComponentMetadata, index int, frames int, elapsed time.Duration))
	RegisterOnChunkError(...func(c ComponentMetadata, index int, err error))
	RegisterOnStageStart(...func(c ComponentMetadata, stage string))
	RegisterOnStageComplete(...func(c ComponentMetadata, stage string, elapsed time.Duration))
	RegisterOnTrackComplete(...func(c ComponentMetadata, track string, frames int, allQuiet bool))
	RegisterOnArtifactStored(...func(c ComponentMetadata, location string, size int))
	RegisterOnArtifactError(...func(c ComponentMetadata, name string, err error))

	InvokeOnChunkStart(c ComponentMetadata, index int, samples int)
	InvokeOnChunkComplete(c ComponentMetadata, index int, frames int, elapsed time.Duration)
	InvokeOnChunkError(c ComponentMetadata, index int, err error)
	InvokeOnStageStart(c ComponentMetadata, stage string)
	InvokeOnStageComplete(c ComponentMetadata, stage string, elapsed time.Duration)
	InvokeOnTrackComplete(c ComponentMetadata, track string, frames int, allQuiet bool)
	InvokeOnArtifactStored(c ComponentMetadata, location string, size int)
	InvokeOnArtifactError(c ComponentMetadata, name string, err error)
}
