package types

import "context"

// Artifact is one named output of an export: the manifest, the packed data blob or a side table.
type Artifact struct {
	Name        string // file name, e.g. "song_analysis.json"
	ContentType string
	Body        []byte
}

// ArtifactSink persists artifacts. Put must be safe to call from one goroutine at a time per sink.
// It returns the location the artifact was stored at.
type ArtifactSink interface {
	Put(ctx context.Context, artifact Artifact) (string, error)
}

// ArtifactSinkFunc adapts a function to ArtifactSink.
type ArtifactSinkFunc func(ctx context.Context, artifact Artifact) (string, error)

// Put calls f.
func (f ArtifactSinkFunc) Put(ctx context.Context, artifact Artifact) (string, error) {
	return f(ctx, artifact)
}

// Notifier announces a finished export. The payload is the manifest JSON.
type Notifier interface {
	Notify(ctx context.Context, track string, manifest []byte) error
	Close() error
}
