package sensor

import (
	"time"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

// RegisterOnChunkStart registers callbacks for chunk start events.
func (s *Sensor) RegisterOnChunkStart(callback ...func(types.ComponentMetadata, int, int)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnChunkStart = append(s.OnChunkStart, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnChunkStart invokes registered chunk start callbacks.
func (s *Sensor) InvokeOnChunkStart(c types.ComponentMetadata, index int, samples int) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnChunkStart) {
		if cb == nil {
			continue
		}
		cb(c, index, samples)
	}
}

// RegisterOnChunkComplete registers callbacks for chunk completion events.
func (s *Sensor) RegisterOnChunkComplete(callback ...func(types.ComponentMetadata, int, int, time.Duration)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnChunkComplete = append(s.OnChunkComplete, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnChunkComplete invokes registered chunk completion callbacks.
func (s *Sensor) InvokeOnChunkComplete(c types.ComponentMetadata, index int, frames int, elapsed time.Duration) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnChunkComplete) {
		if cb == nil {
			continue
		}
		cb(c, index, frames, elapsed)
	}
}

// RegisterOnChunkError registers callbacks for chunk failure events.
func (s *Sensor) RegisterOnChunkError(callback ...func(types.ComponentMetadata, int, error)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnChunkError = append(s.OnChunkError, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnChunkError invokes registered chunk failure callbacks.
func (s *Sensor) InvokeOnChunkError(c types.ComponentMetadata, index int, err error) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnChunkError) {
		if cb == nil {
			continue
		}
		cb(c, index, err)
	}
}

// RegisterOnStageStart registers callbacks for stage start events.
func (s *Sensor) RegisterOnStageStart(callback ...func(types.ComponentMetadata, string)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnStageStart = append(s.OnStageStart, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnStageStart invokes registered stage start callbacks.
func (s *Sensor) InvokeOnStageStart(c types.ComponentMetadata, stage string) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnStageStart) {
		if cb == nil {
			continue
		}
		cb(c, stage)
	}
}

// RegisterOnStageComplete registers callbacks for stage completion events.
func (s *Sensor) RegisterOnStageComplete(callback ...func(types.ComponentMetadata, string, time.Duration)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnStageComplete = append(s.OnStageComplete, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnStageComplete invokes registered stage completion callbacks.
func (s *Sensor) InvokeOnStageComplete(c types.ComponentMetadata, stage string, elapsed time.Duration) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnStageComplete) {
		if cb == nil {
			continue
		}
		cb(c, stage, elapsed)
	}
}

// RegisterOnTrackComplete registers callbacks for track completion events.
func (s *Sensor) RegisterOnTrackComplete(callback ...func(types.ComponentMetadata, string, int, bool)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnTrackComplete = append(s.OnTrackComplete, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnTrackComplete invokes registered track completion callbacks.
func (s *Sensor) InvokeOnTrackComplete(c types.ComponentMetadata, track string, frames int, allQuiet bool) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnTrackComplete) {
		if cb == nil {
			continue
		}
		cb(c, track, frames, allQuiet)
	}
}

// RegisterOnArtifactStored registers callbacks for stored artifact events.
func (s *Sensor) RegisterOnArtifactStored(callback ...func(types.ComponentMetadata, string, int)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnArtifactStored = append(s.OnArtifactStored, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnArtifactStored invokes registered stored artifact callbacks.
func (s *Sensor) InvokeOnArtifactStored(c types.ComponentMetadata, location string, size int) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnArtifactStored) {
		if cb == nil {
			continue
		}
		cb(c, location, size)
	}
}

// RegisterOnArtifactError registers callbacks for artifact failure events.
func (s *Sensor) RegisterOnArtifactError(callback ...func(types.ComponentMetadata, string, error)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnArtifactError = append(s.OnArtifactError, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnArtifactError invokes registered artifact failure callbacks.
func (s *Sensor) InvokeOnArtifactError(c types.ComponentMetadata, name string, err error) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnArtifactError) {
		if cb == nil {
			continue
		}
		cb(c, name, err)
	}
}
