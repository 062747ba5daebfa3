package analysis

import (
	"fmt"
	"strings"

	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/floats"
)

// WindowKind names an analysis window.
type WindowKind string

const (
	WindowHann     WindowKind = "hann"
	WindowHamming  WindowKind = "hamming"
	WindowBlackman WindowKind = "blackman"
)

// ParseWindowKind accepts the names above, case-insensitively.
func ParseWindowKind(s string) (WindowKind, error) {
	switch k := WindowKind(strings.ToLower(strings.TrimSpace(s))); k {
	case WindowHann, WindowHamming, WindowBlackman:
		return k, nil
	default:
		return "", fmt.Errorf("analysis: unknown window %q", s)
	}
}

// normalizedWindow returns a periodic window of length n scaled to unit sum.
func normalizedWindow(kind WindowKind, n int) []float64 {
	var sym []float64
	switch kind {
	case WindowHamming:
		sym = window.Hamming(n + 1)
	case WindowBlackman:
		sym = window.Blackman(n + 1)
	default:
		sym = window.Hann(n + 1)
	}
	w := sym[:n]
	if sum := floats.Sum(w); sum > 0 {
		floats.Scale(1/sum, w)
	}
	return w
}
