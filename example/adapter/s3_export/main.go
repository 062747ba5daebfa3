package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/joeydtaylor/audiovis/pkg/builder"
)

// Works against LocalStack or MinIO out of the box:
//
//	docker run -p 4566:4566 localstack/localstack
//	aws --endpoint-url http://localhost:4566 s3 mb s3://audiovis
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	logger := builder.NewLogger(builder.LoggerWithLevel("debug"))
	defer logger.Flush()

	cli, err := builder.NewS3Client(ctx, builder.S3ClientConfig{
		Region:          builder.EnvOr("AWS_REGION", "us-east-1"),
		Endpoint:        builder.EnvOr("S3_ENDPOINT", "http://localhost:4566"),
		ForcePathStyle:  true,
		AccessKeyID:     builder.EnvOr("AWS_ACCESS_KEY_ID", "test"),
		SecretAccessKey: builder.EnvOr("AWS_SECRET_ACCESS_KEY", "test"),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "s3 client:", err)
		os.Exit(1)
	}
	sink := builder.NewS3Sink(cli, builder.EnvOr("S3_BUCKET", "audiovis"),
		builder.S3SinkWithPrefix("tracks/demo"),
		builder.S3SinkWithSSE("AES256", ""),
		builder.S3SinkWithRetry(4, 200*time.Millisecond, 2*time.Second),
		builder.S3SinkWithLogger(logger),
	)

	cfg := builder.DefaultConfig()
	cfg.CentroidCount = 6
	p := builder.NewPipeline(cfg,
		builder.PipelineWithLogger(logger),
		builder.PipelineWithExporterOptions(
			builder.ExporterWithSink(sink),
			builder.ExporterWithFrameTable("zstd"),
		),
	)

	n := 5 * 44100
	left := make([]float64, n)
	right := make([]float64, n)
	for i := range left {
		left[i] = 0.5 * math.Sin(2*math.Pi*196*float64(i)/44100)
		right[i] = 0.5 * math.Sin(2*math.Pi*196*float64(i)/44100+0.7)
	}

	track, err := p.Process(ctx, "wide_tone", 44100, left, right)
	if err != nil {
		fmt.Fprintln(os.Stderr, "process:", err)
		os.Exit(1)
	}
	locations, err := p.Export(ctx, track)
	if err != nil {
		fmt.Fprintln(os.Stderr, "export:", err)
		os.Exit(1)
	}
	for _, loc := range locations {
		fmt.Println(loc)
	}
}
