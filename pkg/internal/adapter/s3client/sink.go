// Package s3client stores exported artifacts in an S3 compatible object store.
package s3client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3api "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
	"github.com/joeydtaylor/audiovis/pkg/internal/utils"
	"github.com/joeydtaylor/audiovis/pkg/logschema"
)

// PutObjectAPI is the part of *s3.Client the sink uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3api.PutObjectInput, optFns ...func(*s3api.Options)) (*s3api.PutObjectOutput, error)
}

// ErrNoBucket is returned when the sink has no bucket to write to.
var ErrNoBucket = errors.New("s3client: bucket is required")

// Sink uploads each artifact as one object under an optional key prefix.
type Sink struct {
	componentMetadata types.ComponentMetadata

	cli    PutObjectAPI
	bucket string
	prefix string

	sseMode string // "" | "AES256" | "aws:kms"
	kmsKey  string

	maxAttempts int
	baseBackoff time.Duration
	maxBackoff  time.Duration

	loggers     []types.Logger
	loggersLock sync.Mutex
}

// NewSink returns a sink writing to bucket through cli.
func NewSink(cli PutObjectAPI, bucket string, options ...types.Option[*Sink]) *Sink {
	s := &Sink{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "S3_SINK",
		},
		cli:         cli,
		bucket:      bucket,
		maxAttempts: defaultMaxAttempts,
		baseBackoff: defaultBaseBackoff,
		maxBackoff:  defaultMaxBackoff,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.maxAttempts < 1 {
		s.maxAttempts = 1
	}
	return s
}

// Key returns the object key an artifact name is stored under.
func (s *Sink) Key(name string) string {
	p := strings.Trim(s.prefix, "/")
	if p == "" {
		return name
	}
	return path.Join(p, name)
}

// Put uploads the artifact and returns its s3:// location.
func (s *Sink) Put(ctx context.Context, a types.Artifact) (string, error) {
	if s.bucket == "" {
		return "", ErrNoBucket
	}
	if s.cli == nil {
		return "", fmt.Errorf("s3client: no client configured")
	}
	if a.Name == "" {
		return "", fmt.Errorf("s3client: artifact has no name")
	}

	key := s.Key(a.Name)
	put := &s3api.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(a.Body),
		ContentLength: aws.Int64(int64(len(a.Body))),
	}
	if a.ContentType != "" {
		put.ContentType = aws.String(a.ContentType)
	}
	switch strings.ToLower(s.sseMode) {
	case "aes256":
		put.ServerSideEncryption = s3types.ServerSideEncryptionAes256
	case "aws:kms":
		put.ServerSideEncryption = s3types.ServerSideEncryptionAwsKms
		if s.kmsKey != "" {
			put.SSEKMSKeyId = aws.String(s.kmsKey)
		}
	}

	dur, err := s.putWithRetry(ctx, put, key)
	if err != nil {
		return "", fmt.Errorf("s3client: put %s: %w", key, err)
	}
	s.NotifyLoggers(types.DebugLevel, "object stored",
		logschema.FieldComponent, s.componentMetadata,
		logschema.FieldEvent, logschema.EventPutObject,
		"bucket", s.bucket,
		"key", key,
		logschema.FieldBytes, len(a.Body),
		logschema.FieldElapsed, dur,
	)
	return "s3://" + s.bucket + "/" + key, nil
}

func (s *Sink) putWithRetry(ctx context.Context, put *s3api.PutObjectInput, key string) (time.Duration, error) {
	rs, ok := put.Body.(io.ReadSeeker)
	if !ok {
		return 0, fmt.Errorf("putWithRetry requires io.ReadSeeker body")
	}

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return 0, err
		}

		start := time.Now()
		_, err := s.cli.PutObject(ctx, put)
		if err == nil {
			return time.Since(start), nil
		}

		lastErr = err
		s.NotifyLoggers(types.WarnLevel, "PutObject retry",
			logschema.FieldComponent, s.componentMetadata,
			logschema.FieldEvent, logschema.EventPutObject,
			"attempt", attempt,
			"max_attempts", s.maxAttempts,
			"key", key,
			logschema.FieldError, err,
		)
		if !isRetryable(err) || attempt == s.maxAttempts || ctx.Err() != nil {
			return 0, err
		}

		select {
		case <-time.After(backoffDuration(attempt, s.baseBackoff, s.maxBackoff)):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	return 0, lastErr
}
