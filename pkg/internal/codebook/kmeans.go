package codebook

import (
	"context"
	"math"
	"math/rand/v2"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/joeydtaylor/audiovis/pkg/internal/utils"
)

// kmeansPlusPlus seeds k centers greedily: every round draws 2+ln(k) candidates proportional to
// the current squared distance and keeps the one that lowers the total potential most.
func kmeansPlusPlus(samples [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(samples)
	trials := 2 + int(math.Log(float64(k)))

	first := rng.IntN(n)
	centers := make([][]float64, 0, k)
	centers = append(centers, clone(samples[first]))

	closest := make([]float64, n)
	for i, s := range samples {
		closest[i] = sqDist(s, samples[first])
	}
	potential := floats.Sum(closest)

	cum := make([]float64, n)
	cand := make([]float64, n)
	best := make([]float64, n)
	for len(centers) < k {
		floats.CumSum(cum, closest)
		bestIdx, bestPot := -1, math.Inf(1)
		for t := 0; t < trials; t++ {
			var idx int
			if potential > 0 {
				idx = min(sort.SearchFloat64s(cum, rng.Float64()*potential), n-1)
			} else {
				idx = rng.IntN(n)
			}
			pot := 0.0
			for i, s := range samples {
				d := min(closest[i], sqDist(s, samples[idx]))
				cand[i] = d
				pot += d
			}
			if pot < bestPot {
				bestIdx, bestPot = idx, pot
				copy(best, cand)
			}
		}
		centers = append(centers, clone(samples[bestIdx]))
		closest, best = best, closest
		potential = bestPot
	}
	return centers
}

// firstDistinct takes the first k distinct samples in order, padding with repeats when the input
// has fewer than k distinct vectors.
func firstDistinct(samples [][]float64, k int) [][]float64 {
	centers := make([][]float64, 0, k)
	used := make([]bool, len(samples))
	for i, s := range samples {
		if len(centers) == k {
			break
		}
		dup := false
		for _, c := range centers {
			if floats.Equal(s, c) {
				dup = true
				break
			}
		}
		if !dup {
			centers = append(centers, clone(s))
			used[i] = true
		}
	}
	for i := 0; len(centers) < k && i < len(samples); i++ {
		if !used[i] {
			centers = append(centers, clone(samples[i]))
		}
	}
	return centers
}

// meanVariance is the population variance of every feature, averaged over features.
func meanVariance(samples [][]float64) float64 {
	dim := len(samples[0])
	col := make([]float64, len(samples))
	total := 0.0
	for d := 0; d < dim; d++ {
		for i, s := range samples {
			col[i] = s[d]
		}
		total += stat.PopVariance(col, nil)
	}
	return total / float64(dim)
}

func (b *Builder) lloyd(ctx context.Context, samples [][]float64, centroids [][]float64) (*Result, error) {
	n := len(samples)
	tol := b.tolerance * meanVariance(samples)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}
	dists := make([]float64, n)
	blocks := utils.SplitRange(n, b.workers)

	res := &Result{}
	for iter := 1; iter <= b.maxIterations; iter++ {
		changed, err := assign(ctx, samples, centroids, labels, dists, blocks)
		if err != nil {
			return nil, err
		}
		res.Iterations = iter
		if changed == 0 {
			res.Converged = true
			break
		}
		var shift float64
		centroids, shift = update(samples, labels, centroids)
		if shift <= tol {
			res.Converged = true
			break
		}
	}

	// Labels and inertia always describe the returned centroids.
	if _, err := assign(ctx, samples, centroids, labels, dists, blocks); err != nil {
		return nil, err
	}
	res.Centroids = centroids
	res.Labels = labels
	res.Inertia = floats.Sum(dists)
	return res, nil
}

// assign labels every sample with its nearest centroid and returns how many labels changed.
// Blocks run concurrently; Wait is the barrier before the next update.
func assign(ctx context.Context, samples, centroids [][]float64, labels []int, dists []float64, blocks []utils.Span) (int, error) {
	changed := make([]int, len(blocks))
	eg, egCtx := errgroup.WithContext(ctx)
	for bi, blk := range blocks {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			for i := blk.Start; i < blk.End; i++ {
				c, d := nearest(samples[i], centroids)
				if labels[i] != c {
					labels[i] = c
					changed[bi]++
				}
				dists[i] = d
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}
	total := 0
	for _, c := range changed {
		total += c
	}
	return total, nil
}

// update moves every centroid to the mean of its members. Empty clusters keep their previous
// position. It returns the new centroids and the total squared shift.
func update(samples [][]float64, labels []int, prev [][]float64) ([][]float64, float64) {
	dim := len(prev[0])
	sums := make([][]float64, len(prev))
	counts := make([]int, len(prev))
	for c := range sums {
		sums[c] = make([]float64, dim)
	}
	for i, s := range samples {
		floats.Add(sums[labels[i]], s)
		counts[labels[i]]++
	}

	shift := 0.0
	for c := range sums {
		if counts[c] == 0 {
			copy(sums[c], prev[c])
			continue
		}
		floats.Scale(1/float64(counts[c]), sums[c])
		shift += sqDist(sums[c], prev[c])
	}
	return sums, shift
}
