package analysis

import (
	"context"
	"math"
	"math/cmplx"
	"sort"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
	"gonum.org/v1/gonum/floats"
)

// missingMagnitude is reported for harmonic slots with no matching peak.
const missingMagnitude = -100.0

type peaks struct {
	freq  []float64
	mag   []float64
	phase []float64
}

// detectPeaks finds strict local maxima above threshold and refines them by parabolic interpolation.
func detectPeaks(mX, pX []float64, threshold float64, sampleRate, fftSize int) peaks {
	var p peaks
	for k := 1; k < len(mX)-1; k++ {
		v := mX[k]
		if v <= threshold || v <= mX[k-1] || v <= mX[k+1] {
			continue
		}
		l, r := mX[k-1], mX[k+1]
		den := l - 2*v + r
		loc := float64(k)
		if den != 0 {
			loc += 0.5 * (l - r) / den
		}
		mag := v - 0.25*(l-r)*(loc-float64(k))

		lo := int(math.Floor(loc))
		frac := loc - float64(lo)
		phase := pX[lo]
		if lo+1 < len(pX) {
			phase += frac * (pX[lo+1] - pX[lo])
		}

		p.freq = append(p.freq, float64(sampleRate)*loc/float64(fftSize))
		p.mag = append(p.mag, mag)
		p.phase = append(p.phase, phase)
	}
	return p
}

// twoWayMismatch scores every candidate fundamental against the measured peaks and returns the
// best candidate with its error.
func twoWayMismatch(pfreq, pmag, candidates []float64) (float64, float64) {
	const (
		p        = 0.5
		q        = 1.4
		r        = 0.5
		rho      = 0.33
		maxPeaks = 10
	)
	aMax := floats.Max(pmag)
	nPM := min(maxPeaks, len(pfreq))
	nMP := nPM

	best, bestErr := 0.0, math.Inf(1)
	for _, f0 := range candidates {
		// predicted to measured
		var errPM float64
		for h := 1; h <= nPM; h++ {
			hf := f0 * float64(h)
			idx := nearest(pfreq, hf)
			dist := math.Abs(pfreq[idx]-hf) * math.Pow(hf, -p)
			magFactor := math.Pow(10, (pmag[idx]-aMax)/20)
			errPM += dist + magFactor*(q*dist-r)
		}
		// measured to predicted
		var errMP float64
		for i := 0; i < nMP; i++ {
			nh := math.Round(pfreq[i] / f0)
			if nh < 1 {
				nh = 1
			}
			dist := math.Abs(pfreq[i]-nh*f0) * math.Pow(pfreq[i], -p)
			magFactor := math.Pow(10, (pmag[i]-aMax)/20)
			errMP += magFactor * (dist + magFactor*(q*dist-r))
		}
		total := errPM/float64(nPM) + rho*errMP/float64(nMP)
		if total < bestErr {
			best, bestErr = f0, total
		}
	}
	return best, bestErr
}

// nearest returns the index of the value closest to target in ascending xs.
func nearest(xs []float64, target float64) int {
	i := sort.SearchFloat64s(xs, target)
	switch {
	case i == 0:
		return 0
	case i == len(xs):
		return len(xs) - 1
	case target-xs[i-1] <= xs[i]-target:
		return i - 1
	default:
		return i
	}
}

func (m *Model) estimateF0(pk peaks) float64 {
	p := m.harmonic
	if len(pk.freq) < 3 {
		return 0
	}
	var candidates []float64
	for _, f := range pk.freq {
		if f > p.MinF0 && f < p.MaxF0 {
			candidates = append(candidates, f)
		}
	}
	if len(candidates) == 0 {
		return 0
	}
	f0, errF0 := twoWayMismatch(pk.freq, pk.mag, candidates)
	if f0 <= 0 || errF0 >= p.ErrorThreshold {
		return 0
	}
	return f0
}

// detectHarmonics assigns the peak nearest to every multiple of f0, accepting it when it is
// close to the ideal partial or to the previous frame's partial in the same slot.
func (m *Model) detectHarmonics(pk peaks, f0 float64, prev []float64, sampleRate int) (freq, mag, phase []float64) {
	n := m.harmonic.Harmonics
	freq = make([]float64, n)
	mag = make([]float64, n)
	phase = make([]float64, n)
	for i := range mag {
		mag[i] = missingMagnitude
	}
	if f0 <= 0 || len(pk.freq) == 0 {
		return freq, mag, phase
	}

	nyquist := float64(sampleRate) / 2
	for h := 0; h < n; h++ {
		hf := f0 * float64(h+1)
		if hf >= nyquist {
			break
		}
		idx := nearest(pk.freq, hf)
		dev1 := math.Abs(pk.freq[idx] - hf)
		dev2 := float64(sampleRate)
		if prev != nil && prev[h] > 0 {
			dev2 = math.Abs(pk.freq[idx] - prev[h])
		}
		threshold := f0/3 + m.harmonic.DevSlope*pk.freq[idx]
		if dev1 < threshold || dev2 < threshold {
			freq[h] = pk.freq[idx]
			mag[h] = pk.mag[idx]
			phase[h] = pk.phase[idx]
		}
	}
	return freq, mag, phase
}

// dropShortTracks clears partial runs shorter than minFrames in every slot.
func dropShortTracks(freq, mag [][]float64, minFrames int) {
	if minFrames <= 1 || len(freq) == 0 {
		return
	}
	slots := len(freq[0])
	for s := 0; s < slots; s++ {
		start := -1
		for i := 0; i <= len(freq); i++ {
			active := i < len(freq) && freq[i][s] > 0
			switch {
			case active && start < 0:
				start = i
			case !active && start >= 0:
				if i-start < minFrames {
					for j := start; j < i; j++ {
						freq[j][s] = 0
						mag[j][s] = missingMagnitude
					}
				}
				start = -1
			}
		}
	}
}

func (m *Model) analyzeHarmonic(ctx context.Context, sampleRate int, samples []float64) (*types.AnalysisResult, error) {
	p := m.harmonic
	w := m.window(p.Frame)
	hN := p.FFTSize/2 + 1

	count := FrameCount(len(samples), p.HopSize)
	freqs := make([][]float64, 0, count)
	mags := make([][]float64, 0, count)
	phases := make([][]float64, 0, count)

	mX := make([]float64, hN)
	pX := make([]float64, hN)
	var prev []float64
	err := walkFrames(ctx, samples, w, p.FFTSize, p.HopSize, func(_ int, X []complex128) error {
		for k := 0; k < hN; k++ {
			mX[k] = toDB(X[k])
			pX[k] = cmplx.Phase(X[k])
		}
		pk := detectPeaks(mX, pX, p.Threshold, sampleRate, p.FFTSize)
		f0 := m.estimateF0(pk)
		f, mg, ph := m.detectHarmonics(pk, f0, prev, sampleRate)
		freqs = append(freqs, f)
		mags = append(mags, mg)
		phases = append(phases, ph)
		prev = f
		return nil
	})
	if err != nil {
		return nil, err
	}

	dropShortTracks(freqs, mags, int(math.Round(float64(sampleRate)*p.MinTrackSeconds/float64(p.HopSize))))

	return &types.AnalysisResult{
		Kind:        types.KindHarmonic,
		HopSize:     p.HopSize,
		Magnitudes:  mags,
		Frequencies: freqs,
		Phases:      phases,
	}, nil
}
