// Package config loads run settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joeydtaylor/audiovis/pkg/internal/exporter"
	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

// File is the on-disk configuration layout.
type File struct {
	Analysis types.Config `yaml:"analysis"`
	Input    InputConfig  `yaml:"input"`
	Log      LogConfig    `yaml:"log"`
	Export   ExportConfig `yaml:"export"`
}

// InputConfig controls how recordings are read.
type InputConfig struct {
	StartSeconds float64 `yaml:"start_seconds"`
}

// LogConfig selects the log level, encoding and destination ("stdout" or a file path). Fields are
// attached to every line.
type LogConfig struct {
	Level  string            `yaml:"level"`
	Output string            `yaml:"output"`
	Format string            `yaml:"format"`
	Caller bool              `yaml:"caller"`
	Fields map[string]string `yaml:"fields"`
}

// ExportConfig selects where and how artifacts are written.
type ExportConfig struct {
	OutDir                string      `yaml:"out_dir"`
	Compression           string      `yaml:"compression"`
	FrameTable            bool        `yaml:"frame_table"`
	FrameTableCompression string      `yaml:"frame_table_compression"`
	S3                    S3Config    `yaml:"s3"`
	Kafka                 KafkaConfig `yaml:"kafka"`
}

// S3Config enables the object store sink when Bucket is set.
type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	RoleARN         string `yaml:"role_arn"`
	ForcePathStyle  bool   `yaml:"force_path_style"`
}

// Enabled reports whether an S3 sink should be built.
func (c S3Config) Enabled() bool { return c.Bucket != "" }

// KafkaConfig enables export notifications when Brokers and Topic are set.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// Enabled reports whether a Kafka notifier should be built.
func (c KafkaConfig) Enabled() bool { return len(c.Brokers) > 0 && c.Topic != "" }

// Default returns the settings used when no file is given.
func Default() File {
	return File{
		Analysis: types.DefaultConfig(),
		Log:      LogConfig{Level: "info", Output: "stdout", Format: "json", Caller: true},
		Export:   ExportConfig{OutDir: "."},
	}
}

// Load reads path over the defaults and then applies AUDIOVIS_* environment overrides.
// An empty path skips the file.
func Load(path string) (*File, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("config: open %q: %w", path, err)
		}
		defer f.Close()
		if err := decode(f, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %q: %w", path, err)
		}
	}
	ApplyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromReader decodes YAML from r over the defaults without consulting the environment.
func LoadFromReader(r io.Reader) (*File, error) {
	cfg := Default()
	if err := decode(r, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decode(r io.Reader, cfg *File) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: decode yaml: %w", err)
	}
	return nil
}

// Validate checks every section and joins the failures.
func (f *File) Validate() error {
	var errs []error
	if err := f.Analysis.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("analysis: %w", err))
	}
	if f.Input.StartSeconds < 0 {
		errs = append(errs, fmt.Errorf("%w: input.start_seconds %v", types.ErrInvalidConfig, f.Input.StartSeconds))
	}
	switch strings.ToLower(strings.TrimSpace(f.Log.Level)) {
	case "", "debug", "info", "warn", "warning", "error", "dpanic", "panic", "fatal":
	default:
		errs = append(errs, fmt.Errorf("%w: log.level %q", types.ErrInvalidConfig, f.Log.Level))
	}
	switch strings.ToLower(strings.TrimSpace(f.Log.Format)) {
	case "", "json", "console":
	default:
		errs = append(errs, fmt.Errorf("%w: log.format %q", types.ErrInvalidConfig, f.Log.Format))
	}
	if _, err := exporter.ParseCompression(f.Export.Compression); err != nil {
		errs = append(errs, fmt.Errorf("export.compression: %w", err))
	}
	if f.Export.S3.RoleARN != "" && f.Export.S3.AccessKeyID != "" {
		errs = append(errs, fmt.Errorf("%w: export.s3 sets both role_arn and static keys", types.ErrInvalidConfig))
	}
	if (f.Export.S3.AccessKeyID == "") != (f.Export.S3.SecretAccessKey == "") {
		errs = append(errs, fmt.Errorf("%w: export.s3 static credentials need both key id and secret", types.ErrInvalidConfig))
	}
	if len(f.Export.Kafka.Brokers) > 0 && f.Export.Kafka.Topic == "" {
		errs = append(errs, fmt.Errorf("%w: export.kafka.topic is required with brokers", types.ErrInvalidConfig))
	}
	return errors.Join(errs...)
}
