// Package kafkaclient announces finished exports on a Kafka topic.
package kafkaclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
	"github.com/joeydtaylor/audiovis/pkg/internal/utils"
	"github.com/joeydtaylor/audiovis/pkg/logschema"
)

// MessageWriter is the part of *kafka.Writer the notifier uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ErrClosed is returned by Notify after Close.
var ErrClosed = errors.New("kafkaclient: notifier closed")

// Notifier publishes one message per exported track, keyed by track name, carrying the manifest.
type Notifier struct {
	componentMetadata types.ComponentMetadata

	writer  MessageWriter
	topic   string
	headers map[string]string

	mu     sync.Mutex
	closed bool

	loggers     []types.Logger
	loggersLock sync.Mutex
}

// NewNotifier wraps an existing writer. topic is set on every message, so it must be empty when
// the writer carries its own topic.
func NewNotifier(w MessageWriter, topic string, options ...types.Option[*Notifier]) *Notifier {
	n := &Notifier{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "KAFKA_NOTIFIER",
		},
		writer:  w,
		topic:   strings.TrimSpace(topic),
		headers: map[string]string{"content-type": "application/json"},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(n)
	}
	return n
}

// NewWriter builds a kafka-go writer for brokers. The topic comes from each message.
func NewWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           200 * time.Millisecond,
		BatchSize:              1,
		RequiredAcks:           kafka.RequireAll,
		Async:                  false,
		AllowAutoTopicCreation: true,
	}
}

// Message renders the notification for a track.
func (n *Notifier) Message(track string, manifest []byte) kafka.Message {
	msg := kafka.Message{
		Topic: n.topic,
		Key:   []byte(track),
		Value: manifest,
	}
	if len(n.headers) > 0 {
		msg.Headers = make([]kafka.Header, 0, len(n.headers)+1)
		for _, k := range sortedKeys(n.headers) {
			msg.Headers = append(msg.Headers, kafka.Header{Key: k, Value: []byte(n.headers[k])})
		}
	}
	msg.Headers = append(msg.Headers, kafka.Header{Key: "track", Value: []byte(track)})
	return msg
}

// Notify implements types.Notifier.
func (n *Notifier) Notify(ctx context.Context, track string, manifest []byte) error {
	n.mu.Lock()
	closed := n.closed
	n.mu.Unlock()
	if closed {
		return ErrClosed
	}

	start := time.Now()
	if err := n.writer.WriteMessages(ctx, n.Message(track, manifest)); err != nil {
		n.NotifyLoggers(types.ErrorLevel, "notification failed",
			logschema.FieldComponent, n.componentMetadata,
			logschema.FieldEvent, logschema.EventNotify,
			logschema.FieldTrack, track,
			logschema.FieldError, err,
		)
		return fmt.Errorf("kafkaclient: write %s: %w", track, err)
	}
	n.NotifyLoggers(types.DebugLevel, "notification sent",
		logschema.FieldComponent, n.componentMetadata,
		logschema.FieldEvent, logschema.EventNotify,
		logschema.FieldTrack, track,
		logschema.FieldBytes, len(manifest),
		logschema.FieldElapsed, time.Since(start),
	)
	return nil
}

// Close flushes and closes the writer. It is safe to call more than once.
func (n *Notifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return nil
	}
	n.closed = true
	return n.writer.Close()
}
