package kafkaclient

import "github.com/joeydtaylor/audiovis/pkg/internal/types"

// WithHeader adds a static header to every message.
func WithHeader(key, value string) types.Option[*Notifier] {
	return func(n *Notifier) {
		n.headers[key] = value
	}
}

// WithLogger attaches loggers.
func WithLogger(loggers ...types.Logger) types.Option[*Notifier] {
	return func(n *Notifier) {
		n.ConnectLogger(loggers...)
	}
}

// WithComponentMetadata sets a name and id.
func WithComponentMetadata(name string, id string) types.Option[*Notifier] {
	return func(n *Notifier) {
		n.SetComponentMetadata(name, id)
	}
}
