// Package codec decodes recordings into the float stereo form the pipeline consumes.
package codec

import (
	"bytes"
	"errors"
	"io"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

var (
	ErrInvalidWAV       = errors.New("codec: not a valid WAV file")
	ErrUnsupportedDepth = errors.New("codec: unsupported bit depth")
	ErrNoChannels       = errors.New("codec: recording has no channels")
)

// Decoder turns an encoded recording into stereo PCM.
type Decoder interface {
	Decode(io.Reader) (*types.StereoPCM, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(io.Reader) (*types.StereoPCM, error)

// Decode calls f.
func (f DecoderFunc) Decode(r io.Reader) (*types.StereoPCM, error) {
	return f(r)
}

// seekable returns r as an io.ReadSeeker, buffering it in memory when it cannot seek.
func seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// Trim drops the first seconds of the recording. Offsets past the end leave it empty.
func Trim(pcm *types.StereoPCM, seconds float64) {
	if pcm == nil || seconds <= 0 {
		return
	}
	n := min(int(seconds*float64(pcm.SampleRate)), len(pcm.Left))
	pcm.Left = pcm.Left[n:]
	pcm.Right = pcm.Right[n:]
}
