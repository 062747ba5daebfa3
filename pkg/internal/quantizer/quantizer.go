// Package quantizer maps spectral vectors to the index of their nearest codebook centroid.
package quantizer

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
	"github.com/joeydtaylor/audiovis/pkg/internal/utils"
)

var (
	ErrEmptyCodebook     = errors.New("quantizer: empty codebook")
	ErrDimensionMismatch = errors.New("quantizer: vector and centroid dimensions differ")
)

// Options controls a quantization run.
type Options struct {
	Metric  types.DistanceMetric
	Workers int
}

// Quantize returns, for every sample, the index of the nearest centroid. Ties go to the lowest
// index. Samples are split into contiguous blocks that run concurrently and are joined before
// returning.
func Quantize(ctx context.Context, samples, centroids [][]float64, opts Options) ([]int, error) {
	if len(centroids) == 0 {
		return nil, ErrEmptyCodebook
	}
	dim := len(centroids[0])
	for c, ctr := range centroids {
		if len(ctr) != dim {
			return nil, fmt.Errorf("%w: centroid %d has %d values, expected %d", ErrDimensionMismatch, c, len(ctr), dim)
		}
	}
	for i, s := range samples {
		if len(s) != dim {
			return nil, fmt.Errorf("%w: vector %d has %d values, expected %d", ErrDimensionMismatch, i, len(s), dim)
		}
	}

	dist := squaredEuclidean
	switch opts.Metric {
	case "", types.MetricEuclidean:
	case types.MetricLogDistance:
		dist = logDistance
	default:
		return nil, fmt.Errorf("%w: metric %q", types.ErrInvalidConfig, opts.Metric)
	}

	out := make([]int, len(samples))
	eg, egCtx := errgroup.WithContext(ctx)
	for _, blk := range utils.SplitRange(len(samples), max(opts.Workers, 1)) {
		eg.Go(func() error {
			for i := blk.Start; i < blk.End; i++ {
				if (i-blk.Start)&255 == 0 {
					if err := egCtx.Err(); err != nil {
						return err
					}
				}
				out[i] = Nearest(samples[i], centroids, dist)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Nearest returns the index of the centroid closest to x under dist.
func Nearest(x []float64, centroids [][]float64, dist func(a, b []float64) float64) int {
	best, bestD := 0, math.Inf(1)
	for c, ctr := range centroids {
		if d := dist(x, ctr); d < bestD {
			best, bestD = c, d
		}
	}
	return best
}

func squaredEuclidean(a, b []float64) float64 {
	var s float64
	for k := range a {
		d := a[k] - b[k]
		s += d * d
	}
	return s
}

// logDistance sums squared differences of log10 values, floored at 1e-10.
//
// Deprecated: the codebook is trained under Euclidean distance, so this metric can pick a
// centroid other than the one its vector was clustered into.
func logDistance(a, b []float64) float64 {
	var s float64
	for k := range a {
		d := math.Log10(math.Max(a[k], 1e-10)) - math.Log10(math.Max(b[k], 1e-10))
		s += d * d
	}
	return s
}
