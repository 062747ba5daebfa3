package builder

import (
	"fmt"
	"io"
	"os"

	"github.com/joeydtaylor/audiovis/pkg/internal/codec"
)

// DecodeWAV reads a WAV stream into float stereo samples.
func DecodeWAV(r io.ReadSeeker) (*StereoPCM, error) {
	return codec.DecodeWAV(r)
}

// DecodeWAVFile opens and decodes path.
func DecodeWAVFile(path string) (*StereoPCM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	pcm, err := codec.DecodeWAV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pcm, nil
}

// EncodeWAV writes stereo samples as an integer PCM WAV file.
func EncodeWAV(w io.WriteSeeker, pcm *StereoPCM, bitDepth int) error {
	return codec.EncodeWAV(w, pcm, bitDepth)
}

// Trim drops the first seconds of a recording.
func Trim(pcm *StereoPCM, seconds float64) {
	codec.Trim(pcm, seconds)
}

// DiscoverRecordings lists the prefixed .wav stems in dir, leaving out the master mix.
func DiscoverRecordings(dir, prefix string, limit int) ([]string, error) {
	return codec.Discover(dir, prefix, limit)
}
