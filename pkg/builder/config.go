package builder

import "github.com/joeydtaylor/audiovis/pkg/internal/config"

type (
	ConfigFile   = config.File
	InputConfig  = config.InputConfig
	LogConfig    = config.LogConfig
	ExportConfig = config.ExportConfig
	S3Config     = config.S3Config
	KafkaConfig  = config.KafkaConfig
)

// LoadConfig reads a YAML file over the defaults and applies AUDIOVIS_* overrides. An empty path
// yields the defaults plus the environment.
func LoadConfig(path string) (*ConfigFile, error) {
	return config.Load(path)
}

// DefaultConfigFile returns the defaults without reading anything.
func DefaultConfigFile() ConfigFile {
	return config.Default()
}

// ApplyEnv overrides cfg with the AUDIOVIS_* variables that are set.
func ApplyEnv(cfg *ConfigFile) {
	config.ApplyEnv(cfg)
}
