package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/joeydtaylor/audiovis/pkg/builder"
)

const (
	brokersCSV = "127.0.0.1:9092"
	topic      = "audiovis-tracks"
)

func splitCSV(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := builder.NewLogger(builder.LoggerWithLevel("info"))
	defer logger.Flush()

	notifier := builder.NewKafkaNotifier(
		splitCSV(builder.EnvOr("KAFKA_BROKERS", brokersCSV)),
		builder.EnvOr("KAFKA_TOPIC", topic),
		builder.KafkaNotifierWithHeader("producer", "kafka_notify_example"),
		builder.KafkaNotifierWithLogger(logger),
	)
	defer notifier.Close()

	cfg := builder.DefaultConfig()
	cfg.CentroidCount = 4
	p := builder.NewPipeline(cfg,
		builder.PipelineWithLogger(logger),
		builder.PipelineWithExporterOptions(
			builder.ExporterWithSink(builder.NewDirSink("out")),
			builder.ExporterWithNotifier(notifier),
		),
	)

	for _, name := range []string{"silence", "tone"} {
		n := 3 * 44100
		left := make([]float64, n)
		right := make([]float64, n)
		if name == "tone" {
			for i := range left {
				left[i] = 0.4 * math.Sin(2*math.Pi*440*float64(i)/44100)
				right[i] = left[i]
			}
		}
		track, err := p.Process(ctx, name, 44100, left, right)
		if err != nil {
			fmt.Fprintln(os.Stderr, "process:", err)
			os.Exit(1)
		}
		if _, err := p.Export(ctx, track); err != nil {
			fmt.Fprintln(os.Stderr, "export:", err)
			os.Exit(1)
		}
		fmt.Printf("announced %s (silent=%v)\n", name, track.AllQuiet)
	}
}
