package codec

import (
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

// WAVDecoder decodes integer PCM WAV files. Mono input is copied to both channels and channels
// past the second are ignored.
type WAVDecoder struct{}

// Decode implements Decoder.
func (WAVDecoder) Decode(r io.Reader) (*types.StereoPCM, error) {
	rs, err := seekable(r)
	if err != nil {
		return nil, err
	}
	return DecodeWAV(rs)
}

// DecodeWAV reads a whole WAV stream into float samples in [-1, 1].
func DecodeWAV(r io.ReadSeeker) (*types.StereoPCM, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, ErrInvalidWAV
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("codec: read PCM buffer: %w", err)
	}
	if buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, ErrNoChannels
	}

	depth := int(buf.SourceBitDepth)
	if depth == 0 {
		depth = int(decoder.BitDepth)
	}
	if depth != 8 && depth != 16 && depth != 24 && depth != 32 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedDepth, depth)
	}

	channels := buf.Format.NumChannels
	frames := len(buf.Data) / channels
	scale := math.Ldexp(1, depth-1)
	offset := 0.0
	if depth == 8 {
		offset = 128 // 8-bit WAV is unsigned
	}

	pcm := &types.StereoPCM{
		SampleRate: buf.Format.SampleRate,
		BitDepth:   depth,
		Left:       make([]float64, frames),
		Right:      make([]float64, frames),
	}
	for i := 0; i < frames; i++ {
		l := (float64(buf.Data[i*channels]) - offset) / scale
		pcm.Left[i] = l
		if channels == 1 {
			pcm.Right[i] = l
			continue
		}
		pcm.Right[i] = (float64(buf.Data[i*channels+1]) - offset) / scale
	}
	return pcm, nil
}

// EncodeWAV writes stereo PCM as an integer WAV file at the given bit depth.
func EncodeWAV(w io.WriteSeeker, pcm *types.StereoPCM, bitDepth int) error {
	if bitDepth != 16 && bitDepth != 24 && bitDepth != 32 {
		return fmt.Errorf("%w: %d", ErrUnsupportedDepth, bitDepth)
	}
	if len(pcm.Left) != len(pcm.Right) {
		return fmt.Errorf("codec: channel lengths differ: %d vs %d", len(pcm.Left), len(pcm.Right))
	}

	scale := math.Ldexp(1, bitDepth-1)
	data := make([]int, 2*len(pcm.Left))
	for i := range pcm.Left {
		data[2*i] = toInt(pcm.Left[i], scale)
		data[2*i+1] = toInt(pcm.Right[i], scale)
	}

	encoder := wav.NewEncoder(w, pcm.SampleRate, bitDepth, 2, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: pcm.SampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := encoder.Write(buf); err != nil {
		_ = encoder.Close()
		return fmt.Errorf("codec: write samples: %w", err)
	}
	return encoder.Close()
}

func toInt(v, scale float64) int {
	s := math.Round(v * scale)
	return int(math.Max(-scale, math.Min(scale-1, s)))
}
