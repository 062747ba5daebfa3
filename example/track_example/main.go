package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/joeydtaylor/audiovis/pkg/builder"
)

// synth renders a stereo chord that drifts from left to right.
func synth(seconds float64, rate int) (left, right []float64) {
	n := int(seconds * float64(rate))
	left = make([]float64, n)
	right = make([]float64, n)
	for i := 0; i < n; i++ {
		ts := float64(i) / float64(rate)
		pan := float64(i) / float64(n)
		v := 0.3*math.Sin(2*math.Pi*220*ts) + 0.2*math.Sin(2*math.Pi*277.18*ts) + 0.1*math.Sin(2*math.Pi*329.63*ts)
		left[i] = v * (1 - pan)
		right[i] = v * pan
	}
	return left, right
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	logger := builder.NewLogger(builder.LoggerWithLevel("info"), builder.LoggerWithFormat(builder.LogFormatConsole))
	defer logger.Flush()

	meter := builder.NewMeter(ctx, builder.MeterWithLogger(logger))
	sensor := builder.NewSensor(
		builder.SensorWithMeter(meter),
		builder.SensorWithOnStageCompleteFunc(func(c builder.ComponentMetadata, stage string, elapsed time.Duration) {
			fmt.Printf("stage %-9s %v\n", stage, elapsed.Round(time.Millisecond))
		}),
	)

	cfg := builder.DefaultConfig()
	cfg.CentroidCount = 8
	cfg.Workers = 4

	p := builder.NewPipeline(cfg,
		builder.PipelineWithLogger(logger),
		builder.PipelineWithSensor(sensor),
		builder.PipelineWithExporterOptions(
			builder.ExporterWithSink(builder.NewDirSink("out")),
			builder.ExporterWithCompression("zstd"),
			builder.ExporterWithFrameTable("snappy"),
		),
	)

	left, right := synth(8, 44100)
	track, err := p.Process(ctx, "chord", 44100, left, right)
	if err != nil {
		fmt.Fprintln(os.Stderr, "process:", err)
		os.Exit(1)
	}
	locations, err := p.Export(ctx, track)
	if err != nil {
		fmt.Fprintln(os.Stderr, "export:", err)
		os.Exit(1)
	}

	first, last := track.Frames[0], track.Frames[track.Len()-1]
	fmt.Printf("frames=%d balance %.2f -> %.2f\n", track.Len(), first.Balance, last.Balance)
	for _, loc := range locations {
		fmt.Println("wrote", loc)
	}
	_ = meter.PrintSummary(os.Stdout)
}
