package exporter

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

// ErrOddLength is returned when a data blob does not hold a whole number of uint16 values.
var ErrOddLength = errors.New("exporter: data length is not a multiple of two")

// Scaled holds every exported field already mapped onto [0, scaleRange]. MaxBalance is the
// largest absolute balance, kept for reporting only.
type Scaled struct {
	Volume          []uint16
	Balance         []uint16
	Width           []uint16
	Centroids       [][]uint16
	CentroidIndexes []uint16
	Pitch           []uint16

	MaxVolume  float64
	MaxBalance float64
	MaxWidth   float64
}

// quantize rounds half to even and clamps into [0, scaleRange].
func quantize(v float64, scaleRange int) uint16 {
	r := math.RoundToEven(v)
	switch {
	case math.IsNaN(r) || r < 0:
		return 0
	case r > float64(scaleRange):
		return uint16(scaleRange)
	}
	return uint16(r)
}

// Scale maps a finished track onto the integer range.
//
// Volume and width are divided by their track maxima (1 when the maximum is zero). Balance is
// taken as is, scaled by scaleRange/2 and centered on scaleRange/2, so zero lands on 32767 and
// anything beyond [-1, 1] clamps to 0 or 65535. Pitch is relative to the track's maximum f0.
func Scale(t *types.Track, scaleRange int) Scaled {
	n := t.Len()
	s := Scaled{
		Volume:          make([]uint16, n),
		Balance:         make([]uint16, n),
		Width:           make([]uint16, n),
		Centroids:       make([][]uint16, len(t.Centroids)),
		CentroidIndexes: make([]uint16, n),
		Pitch:           make([]uint16, n),
	}

	for i := range t.Frames {
		f := &t.Frames[i]
		s.MaxVolume = math.Max(s.MaxVolume, f.Volume)
		s.MaxBalance = math.Max(s.MaxBalance, math.Abs(f.Balance))
		s.MaxWidth = math.Max(s.MaxWidth, f.Width)
	}
	if s.MaxVolume == 0 {
		s.MaxVolume = 1
	}
	if s.MaxWidth == 0 {
		s.MaxWidth = 1
	}

	full := float64(scaleRange)
	mid := float64(scaleRange / 2)
	maxF0 := t.MaxF0
	if maxF0 <= 0 {
		maxF0 = 1
	}
	for i := range t.Frames {
		f := &t.Frames[i]
		s.Volume[i] = quantize(f.Volume/s.MaxVolume*full, scaleRange)
		s.Balance[i] = quantize(math.RoundToEven(f.Balance*full/2)+mid, scaleRange)
		s.Width[i] = quantize(f.Width/s.MaxWidth*full, scaleRange)
		s.CentroidIndexes[i] = quantize(float64(f.CentroidIndex), scaleRange)
		s.Pitch[i] = quantize(f.Pitch()/maxF0*full, scaleRange)
	}
	for c, ctr := range t.Centroids {
		row := make([]uint16, len(ctr))
		for k, v := range ctr {
			row[k] = quantize(v*full, scaleRange)
		}
		s.Centroids[c] = row
	}
	return s
}

// Pack concatenates the fields in export order: volume, balance, width, centroids (row-major),
// centroid indexes, pitch.
func (s Scaled) Pack() []uint16 {
	size := len(s.Volume) + len(s.Balance) + len(s.Width) + len(s.CentroidIndexes) + len(s.Pitch)
	for _, row := range s.Centroids {
		size += len(row)
	}
	out := make([]uint16, 0, size)
	out = append(out, s.Volume...)
	out = append(out, s.Balance...)
	out = append(out, s.Width...)
	for _, row := range s.Centroids {
		out = append(out, row...)
	}
	out = append(out, s.CentroidIndexes...)
	out = append(out, s.Pitch...)
	return out
}

// Encode writes values as consecutive little-endian uint16.
func Encode(values []uint16) []byte {
	out := make([]byte, 2*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint16(out[2*i:], v)
	}
	return out
}

// Decode is the inverse of Encode.
func Decode(data []byte) ([]uint16, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrOddLength, len(data))
	}
	out := make([]uint16, len(data)/2)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(data[2*i:])
	}
	return out, nil
}
