package s3client

import (
	"time"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

// WithPrefix stores objects under prefix.
func WithPrefix(prefix string) types.Option[*Sink] {
	return func(s *Sink) {
		s.prefix = prefix
	}
}

// WithSSE sets server-side encryption: "AES256" or "aws:kms" with an optional key id.
func WithSSE(mode, kmsKey string) types.Option[*Sink] {
	return func(s *Sink) {
		s.sseMode = mode
		s.kmsKey = kmsKey
	}
}

// WithRetry overrides the attempt budget and backoff bounds.
func WithRetry(maxAttempts int, base, ceiling time.Duration) types.Option[*Sink] {
	return func(s *Sink) {
		s.maxAttempts = maxAttempts
		s.baseBackoff = base
		s.maxBackoff = ceiling
	}
}

// WithLogger attaches loggers.
func WithLogger(loggers ...types.Logger) types.Option[*Sink] {
	return func(s *Sink) {
		s.ConnectLogger(loggers...)
	}
}

// WithComponentMetadata sets a name and id.
func WithComponentMetadata(name string, id string) types.Option[*Sink] {
	return func(s *Sink) {
		s.SetComponentMetadata(name, id)
	}
}
