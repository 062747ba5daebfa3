package analysis

import (
	"context"
	"math"
	"math/cmplx"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
	"github.com/mjibson/go-dsp/fft"
)

// machineEpsilon is the magnitude floor before the dB conversion.
const machineEpsilon = 2.220446049250313e-16

// FrameCount returns the number of frames a buffer of n samples yields on a hop of h.
func FrameCount(n, h int) int {
	if h <= 0 {
		return 0
	}
	if n < 0 {
		n = 0
	}
	return n/h + 1
}

// walkFrames slides w over x and hands the zero-phase spectrum of every frame to visit.
func walkFrames(ctx context.Context, x []float64, w []float64, fftSize, hop int, visit func(frame int, bins []complex128) error) error {
	m := len(w)
	hM1 := (m + 1) / 2
	hM2 := m / 2

	padded := make([]float64, hM2+len(x)+hM2)
	copy(padded[hM2:], x)
	pend := len(padded) - hM1

	buf := make([]float64, fftSize)
	frame := 0
	for pin := hM1; pin <= pend; pin += hop {
		if frame%64 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		seg := padded[pin-hM1 : pin+hM2]
		for i := range buf {
			buf[i] = 0
		}
		for i := 0; i < hM1; i++ {
			buf[i] = seg[hM2+i] * w[hM2+i]
		}
		for i := 0; i < hM2; i++ {
			buf[fftSize-hM2+i] = seg[i] * w[i]
		}
		if err := visit(frame, fft.FFTReal(buf)); err != nil {
			return err
		}
		frame++
	}
	return nil
}

func toDB(v complex128) float64 {
	a := cmplx.Abs(v)
	if a < machineEpsilon {
		a = machineEpsilon
	}
	return 20 * math.Log10(a)
}

// analyzeSpectrum returns FFTSize/2 bins per frame; the Nyquist bin is dropped.
func (m *Model) analyzeSpectrum(ctx context.Context, samples []float64) (*types.AnalysisResult, error) {
	p := m.spectrum
	w := m.window(p.Frame)
	bins := p.FFTSize / 2

	mags := make([][]float64, 0, FrameCount(len(samples), p.HopSize))
	err := walkFrames(ctx, samples, w, p.FFTSize, p.HopSize, func(_ int, X []complex128) error {
		row := make([]float64, bins)
		for k := 0; k < bins; k++ {
			row[k] = toDB(X[k])
		}
		mags = append(mags, row)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &types.AnalysisResult{
		Kind:       types.KindSpectrum,
		HopSize:    p.HopSize,
		Magnitudes: mags,
	}, nil
}
