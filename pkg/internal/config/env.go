package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variables read by ApplyEnv.
const (
	EnvFPS          = "AUDIOVIS_FPS"
	EnvChunkSeconds = "AUDIOVIS_CHUNK_SECONDS"
	EnvWorkers      = "AUDIOVIS_WORKERS"
	EnvCentroids    = "AUDIOVIS_CENTROIDS"
	EnvQuality      = "AUDIOVIS_QUALITY"
	EnvSeed         = "AUDIOVIS_SEED"
	EnvStartSeconds = "AUDIOVIS_START_SECONDS"
	EnvLogLevel     = "AUDIOVIS_LOG_LEVEL"
	EnvLogFormat    = "AUDIOVIS_LOG_FORMAT"
	EnvOutDir       = "AUDIOVIS_OUT_DIR"
	EnvCompression  = "AUDIOVIS_COMPRESSION"
	EnvS3Bucket     = "AUDIOVIS_S3_BUCKET"
	EnvS3Prefix     = "AUDIOVIS_S3_PREFIX"
	EnvS3Region     = "AUDIOVIS_S3_REGION"
	EnvS3Endpoint   = "AUDIOVIS_S3_ENDPOINT"
	EnvS3RoleARN    = "AUDIOVIS_S3_ROLE_ARN"
	EnvKafkaBrokers = "AUDIOVIS_KAFKA_BROKERS"
	EnvKafkaTopic   = "AUDIOVIS_KAFKA_TOPIC"
)

// EnvOr returns the trimmed env value or def when empty.
func EnvOr(key, def string) string {
	v := strings.TrimSpace(strings.Trim(os.Getenv(key), `"`))
	if v == "" {
		return def
	}
	return v
}

// EnvIntOr returns the parsed int env value or def on empty/parse failure.
func EnvIntOr(key string, def int) int {
	v := EnvOr(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// EnvFloatOr returns the parsed float env value or def on empty/parse failure.
func EnvFloatOr(key string, def float64) float64 {
	v := EnvOr(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// EnvListOr splits a comma separated env value, dropping empty items.
func EnvListOr(key string, def []string) []string {
	v := EnvOr(key, "")
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// ApplyEnv overrides cfg with any AUDIOVIS_* variables that are set.
func ApplyEnv(cfg *File) {
	a := &cfg.Analysis
	a.TargetFPS = EnvIntOr(EnvFPS, a.TargetFPS)
	a.ChunkSeconds = EnvFloatOr(EnvChunkSeconds, a.ChunkSeconds)
	a.Workers = EnvIntOr(EnvWorkers, a.Workers)
	a.CentroidCount = EnvIntOr(EnvCentroids, a.CentroidCount)
	a.QualityBudget = EnvIntOr(EnvQuality, a.QualityBudget)
	if v := EnvOr(EnvSeed, ""); v != "" {
		if seed, err := strconv.ParseUint(v, 10, 64); err == nil {
			a.Seed = seed
		}
	}

	cfg.Input.StartSeconds = EnvFloatOr(EnvStartSeconds, cfg.Input.StartSeconds)
	cfg.Log.Level = EnvOr(EnvLogLevel, cfg.Log.Level)
	cfg.Log.Format = EnvOr(EnvLogFormat, cfg.Log.Format)

	e := &cfg.Export
	e.OutDir = EnvOr(EnvOutDir, e.OutDir)
	e.Compression = EnvOr(EnvCompression, e.Compression)
	e.S3.Bucket = EnvOr(EnvS3Bucket, e.S3.Bucket)
	e.S3.Prefix = EnvOr(EnvS3Prefix, e.S3.Prefix)
	e.S3.Region = EnvOr(EnvS3Region, e.S3.Region)
	e.S3.Endpoint = EnvOr(EnvS3Endpoint, e.S3.Endpoint)
	e.S3.RoleARN = EnvOr(EnvS3RoleARN, e.S3.RoleARN)
	e.Kafka.Brokers = EnvListOr(EnvKafkaBrokers, e.Kafka.Brokers)
	e.Kafka.Topic = EnvOr(EnvKafkaTopic, e.Kafka.Topic)
}
