package codebook

import (
	"math/rand/v2"
	"testing"
)

func TestUpdate_EmptyClusterKeepsCentroid(t *testing.T) {
	samples := [][]float64{{1, 1}, {3, 3}}
	prev := [][]float64{{0, 0}, {7, 7}}
	next, shift := update(samples, []int{0, 0}, prev)
	if next[0][0] != 2 || next[0][1] != 2 {
		t.Fatalf("expected mean (2,2), got %v", next[0])
	}
	if next[1][0] != 7 || next[1][1] != 7 {
		t.Fatalf("expected empty cluster to stay at (7,7), got %v", next[1])
	}
	if shift != 8 {
		t.Fatalf("expected shift 8, got %v", shift)
	}
}

func TestNearest_TiesGoToLowestIndex(t *testing.T) {
	c, d := nearest([]float64{0, 0}, [][]float64{{1, 0}, {0, 1}, {-1, 0}})
	if c != 0 || d != 1 {
		t.Fatalf("expected centroid 0 at distance 1, got %d at %v", c, d)
	}
}

func TestFirstDistinct_SkipsDuplicatesAndPads(t *testing.T) {
	samples := [][]float64{{1}, {1}, {2}, {2}}
	got := firstDistinct(samples, 3)
	if len(got) != 3 || got[0][0] != 1 || got[1][0] != 2 || got[2][0] != 1 {
		t.Fatalf("unexpected seeds: %v", got)
	}
}

func TestKMeansPlusPlus_DistinctSeedsForSeparatedPoints(t *testing.T) {
	samples := [][]float64{{0}, {100}, {200}, {300}}
	rng := rand.New(rand.NewPCG(42, 42))
	got := kmeansPlusPlus(samples, 4, rng)
	seen := map[float64]bool{}
	for _, c := range got {
		seen[c[0]] = true
	}
	if len(seen) != 4 {
		t.Fatalf("expected four distinct seeds, got %v", got)
	}
}
