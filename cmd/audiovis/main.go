package main

import (
	"github.com/alecthomas/kong"

	"github.com/joeydtaylor/audiovis/pkg/builder"
)

var (
	version = "0.1.0"
)

// Globals are the flags shared by every command.
type Globals struct {
	Config   string `short:"c" type:"path" help:"Path to YAML config file (optional)"`
	LogLevel string `name:"log-level" help:"Override the configured log level (debug, info, warn, error)"`
}

// CLI defines the command-line interface
type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version information"`
	Analyze AnalyzeCmd       `cmd:"" help:"Analyse recordings into visualization data"`
	Inspect InspectCmd       `cmd:"" help:"Summarize an exported manifest and its data file"`
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("audiovis"),
		kong.Description("Stereo audio to fixed frame rate visualization data"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
	)
	ctx.FatalIfErrorf(ctx.Run(&cli.Globals))
}

// load reads the config file and environment, then applies the global overrides.
func (g *Globals) load() (*builder.ConfigFile, error) {
	cfg, err := builder.LoadConfig(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	return cfg, nil
}

// newLogger builds the run logger. Output other than stdout or stderr is a log file path.
func newLogger(cfg builder.LogConfig) (builder.Logger, error) {
	fields := make(map[string]interface{}, len(cfg.Fields))
	for k, v := range cfg.Fields {
		fields[k] = v
	}
	logger := builder.NewLogger(
		builder.LoggerWithLevel(cfg.Level),
		builder.LoggerWithFormat(cfg.Format),
		builder.LoggerWithCaller(cfg.Caller),
		builder.LoggerWithFields(fields),
	)
	switch cfg.Output {
	case "", "stdout", "stderr":
		return logger, nil
	}
	err := logger.AddSink("file", builder.SinkConfig{
		Type:   string(builder.FileSink),
		Config: map[string]interface{}{"path": cfg.Output},
	})
	if err != nil {
		return nil, err
	}
	return logger, nil
}
