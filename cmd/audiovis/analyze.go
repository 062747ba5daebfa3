package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joeydtaylor/audiovis/pkg/builder"
	"github.com/joeydtaylor/audiovis/pkg/logschema"
)

// AnalyzeCmd turns recordings into manifests and data files.
type AnalyzeCmd struct {
	Paths []string `arg:"" name:"paths" help:"WAV files, or directories to scan for them" type:"existingpath"`

	Out          string   `short:"o" type:"path" help:"Output directory (default from config)"`
	Prefix       string   `help:"Only analyse directory entries starting with this prefix; PREFIX.wav is the master mix"`
	Limit        int      `default:"100" help:"Maximum recordings taken from one directory"`
	Start        float64  `help:"Seconds trimmed from the start of every recording"`
	FPS          int      `name:"fps" help:"Output frame rate"`
	ChunkSeconds float64  `help:"Analysis chunk length in seconds"`
	Centroids    int      `help:"Codebook size"`
	Workers      int      `short:"j" help:"Concurrent analysis workers"`
	Quality      int      `help:"Codebook quality budget"`
	Compression  string   `help:"Extra compressed data copy (gzip, snappy, zstd, brotli, lz4)"`
	Parquet      bool     `help:"Also write a per-frame Parquet table"`
	NoHarmonics  bool     `help:"Skip the harmonic analysis"`
	S3Bucket     string   `name:"s3-bucket" help:"Also upload artifacts to this bucket"`
	S3Prefix     string   `name:"s3-prefix" help:"Key prefix for uploaded artifacts"`
	KafkaBrokers []string `help:"Kafka brokers announcing exported manifests"`
	KafkaTopic   string   `help:"Kafka topic for export notifications"`
	Metrics      bool     `help:"Print a metrics summary when done"`
}

// apply copies every flag that was given over the loaded configuration.
func (a *AnalyzeCmd) apply(cfg *builder.ConfigFile) {
	if a.Out != "" {
		cfg.Export.OutDir = a.Out
	}
	if a.Start > 0 {
		cfg.Input.StartSeconds = a.Start
	}
	if a.FPS > 0 {
		cfg.Analysis.TargetFPS = a.FPS
	}
	if a.ChunkSeconds > 0 {
		cfg.Analysis.ChunkSeconds = a.ChunkSeconds
	}
	if a.Centroids > 0 {
		cfg.Analysis.CentroidCount = a.Centroids
	}
	if a.Workers > 0 {
		cfg.Analysis.Workers = a.Workers
	}
	if a.Quality > 0 {
		cfg.Analysis.QualityBudget = a.Quality
	}
	if a.Compression != "" {
		cfg.Export.Compression = a.Compression
	}
	if a.Parquet {
		cfg.Export.FrameTable = true
	}
	if a.S3Bucket != "" {
		cfg.Export.S3.Bucket = a.S3Bucket
	}
	if a.S3Prefix != "" {
		cfg.Export.S3.Prefix = a.S3Prefix
	}
	if len(a.KafkaBrokers) > 0 {
		cfg.Export.Kafka.Brokers = a.KafkaBrokers
	}
	if a.KafkaTopic != "" {
		cfg.Export.Kafka.Topic = a.KafkaTopic
	}
}

func (a *AnalyzeCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	a.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	files, err := collectRecordings(a.Paths, a.Prefix, a.Limit)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no recordings found")
	}

	sinks, notifiers, closeOutputs, err := buildOutputs(ctx, cfg.Export, logger)
	if err != nil {
		return err
	}
	defer closeOutputs()

	compression, err := builder.ParseCompression(cfg.Export.Compression)
	if err != nil {
		return err
	}
	exportOpts := []builder.ExporterOption{
		builder.ExporterWithSink(sinks...),
		builder.ExporterWithNotifier(notifiers...),
		builder.ExporterWithCompression(compression),
	}
	if cfg.Export.FrameTable {
		exportOpts = append(exportOpts, builder.ExporterWithFrameTable(cfg.Export.FrameTableCompression))
	}

	meter := builder.NewMeter(ctx, builder.MeterWithLogger(logger))
	sensor := builder.NewSensor(builder.SensorWithMeter(meter), builder.SensorWithLogger(logger))

	p := builder.NewPipeline(cfg.Analysis,
		builder.PipelineWithLogger(logger),
		builder.PipelineWithSensor(sensor),
		builder.PipelineWithHarmonics(!a.NoHarmonics),
		builder.PipelineWithExporterOptions(exportOpts...),
	)

	var (
		done   []string
		failed int
	)
	for _, path := range files {
		name, err := analyzeFile(ctx, p, path, cfg.Input.StartSeconds)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failed++
			logger.Error("recording failed", logschema.FieldEvent, logschema.EventTrackError, "path", path, logschema.FieldError, err)
			continue
		}
		done = append(done, name)
		fmt.Println(name)
	}

	if err := writeFileList(ctx, sinks, masterFor(a.Paths, a.Prefix), done); err != nil {
		return err
	}
	if a.Metrics {
		if err := meter.PrintSummary(os.Stderr); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d recordings failed", failed, len(files))
	}
	return nil
}

// analyzeFile decodes, trims, analyses and exports one recording. The track is named after the
// file, extension included.
func analyzeFile(ctx context.Context, p *builder.Pipeline, path string, startSeconds float64) (string, error) {
	pcm, err := builder.DecodeWAVFile(path)
	if err != nil {
		return "", err
	}
	builder.Trim(pcm, startSeconds)

	name := filepath.Base(path)
	track, err := p.Process(ctx, name, pcm.SampleRate, pcm.Left, pcm.Right)
	if err != nil {
		return "", err
	}
	if _, err := p.Export(ctx, track); err != nil {
		return "", err
	}
	return name, nil
}

// buildOutputs creates the local directory sink plus the S3 sink and Kafka notifier the config
// enables. The returned func releases them.
func buildOutputs(ctx context.Context, cfg builder.ExportConfig, logger builder.Logger) ([]builder.ArtifactSink, []builder.Notifier, func(), error) {
	sinks := []builder.ArtifactSink{builder.NewDirSink(cfg.OutDir)}
	var notifiers []builder.Notifier
	closers := []func(){}
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	if cfg.S3.Enabled() {
		cli, err := builder.NewS3Client(ctx, builder.S3ClientConfig{
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			ForcePathStyle:  cfg.S3.ForcePathStyle,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			RoleARN:         cfg.S3.RoleARN,
		})
		if err != nil {
			return nil, nil, closeAll, fmt.Errorf("s3 client: %w", err)
		}
		sinks = append(sinks, builder.NewS3Sink(cli, cfg.S3.Bucket,
			builder.S3SinkWithPrefix(cfg.S3.Prefix),
			builder.S3SinkWithLogger(logger),
		))
	}

	if cfg.Kafka.Enabled() {
		n := builder.NewKafkaNotifier(cfg.Kafka.Brokers, cfg.Kafka.Topic, builder.KafkaNotifierWithLogger(logger))
		notifiers = append(notifiers, n)
		closers = append(closers, func() {
			if err := n.Close(); err != nil {
				logger.Warn("kafka close failed", "error", err)
			}
		})
	}
	return sinks, notifiers, closeAll, nil
}

// writeFileList stores the session index in every sink.
func writeFileList(ctx context.Context, sinks []builder.ArtifactSink, master string, tracks []string) error {
	body, err := builder.MarshalFileList(master, tracks)
	if err != nil {
		return err
	}
	a := builder.Artifact{Name: builder.FileListName, ContentType: "application/json", Body: body}
	for _, s := range sinks {
		if _, err := s.Put(ctx, a); err != nil {
			return fmt.Errorf("write %s: %w", builder.FileListName, err)
		}
	}
	return nil
}
