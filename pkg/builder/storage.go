package builder

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/joeydtaylor/audiovis/pkg/internal/adapter/kafkaclient"
	"github.com/joeydtaylor/audiovis/pkg/internal/adapter/s3client"
	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

type S3ClientConfig = s3client.ClientConfig

type S3Sink = s3client.Sink

type KafkaNotifier = kafkaclient.Notifier

// NewS3Client builds an S3 client from static keys, an assumed role or the default chain.
func NewS3Client(ctx context.Context, cfg S3ClientConfig) (*s3.Client, error) {
	return s3client.NewClient(ctx, cfg)
}

// NewS3Sink uploads artifacts to bucket.
func NewS3Sink(cli s3client.PutObjectAPI, bucket string, options ...types.Option[*S3Sink]) *S3Sink {
	return s3client.NewSink(cli, bucket, options...)
}

// S3SinkWithPrefix stores objects under prefix.
func S3SinkWithPrefix(prefix string) types.Option[*S3Sink] {
	return s3client.WithPrefix(prefix)
}

// S3SinkWithSSE sets server-side encryption.
func S3SinkWithSSE(mode, kmsKey string) types.Option[*S3Sink] {
	return s3client.WithSSE(mode, kmsKey)
}

// S3SinkWithRetry overrides the retry budget.
func S3SinkWithRetry(maxAttempts int, base, ceiling time.Duration) types.Option[*S3Sink] {
	return s3client.WithRetry(maxAttempts, base, ceiling)
}

// S3SinkWithLogger attaches loggers.
func S3SinkWithLogger(loggers ...types.Logger) types.Option[*S3Sink] {
	return s3client.WithLogger(loggers...)
}

// NewKafkaNotifier publishes manifests to topic on brokers.
func NewKafkaNotifier(brokers []string, topic string, options ...types.Option[*KafkaNotifier]) *KafkaNotifier {
	return kafkaclient.NewNotifier(kafkaclient.NewWriter(brokers), topic, options...)
}

// KafkaNotifierWithHeader adds a static message header.
func KafkaNotifierWithHeader(key, value string) types.Option[*KafkaNotifier] {
	return kafkaclient.WithHeader(key, value)
}

// KafkaNotifierWithLogger attaches loggers.
func KafkaNotifierWithLogger(loggers ...types.Logger) types.Option[*KafkaNotifier] {
	return kafkaclient.WithLogger(loggers...)
}
