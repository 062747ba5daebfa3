package codebook

import "github.com/joeydtaylor/audiovis/pkg/internal/types"

// WithLogger attaches loggers.
func WithLogger(loggers ...types.Logger) types.Option[*Builder] {
	return func(b *Builder) {
		b.ConnectLogger(loggers...)
	}
}

// WithComponentMetadata sets a name and id.
func WithComponentMetadata(name string, id string) types.Option[*Builder] {
	return func(b *Builder) {
		b.SetComponentMetadata(name, id)
	}
}

// WithWorkers overrides the assign-phase pool size.
func WithWorkers(n int) types.Option[*Builder] {
	return func(b *Builder) {
		b.workers = n
	}
}

// WithSeed overrides the seed for channel picks and k-means++ draws.
func WithSeed(seed uint64) types.Option[*Builder] {
	return func(b *Builder) {
		b.seed = seed
	}
}
