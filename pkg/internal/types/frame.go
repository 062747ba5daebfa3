package types

// Chunk is a fixed-length slice of the stereo input. The last chunk of a track may be shorter.
type Chunk struct {
	Index  int
	Offset int // first sample index within the track
	Left   []float64
	Right  []float64
}

// Len returns the number of samples per channel.
func (c Chunk) Len() int {
	return len(c.Left)
}

// StereoPCM holds a decoded two-channel recording as float samples in [-1, 1].
type StereoPCM struct {
	SampleRate int
	BitDepth   int
	Left       []float64
	Right      []float64
}

// Seconds returns the duration of the recording.
func (p *StereoPCM) Seconds() float64 {
	if p == nil || p.SampleRate <= 0 {
		return 0
	}
	return float64(len(p.Left)) / float64(p.SampleRate)
}

// OutputFrame is one step of the fixed-FPS visualization stream.
type OutputFrame struct {
	Left  []float64 // peak-held linear bins, normalized to [0,1] after the normalizer runs
	Right []float64

	Volume  float64 // larger of the two channel bin sums
	Balance float64 // right sum minus left sum
	Width   float64 // mean absolute per-bin difference

	HarmonicFreqs []float64 // Hz, channel-averaged
	HarmonicMags  []float64 // linear, channel-averaged

	CentroidIndex int
}

// Pitch returns the frequency of the first harmonic slot, 0 when no harmonics were tracked.
func (f *OutputFrame) Pitch() float64 {
	if len(f.HarmonicFreqs) == 0 {
		return 0
	}
	return f.HarmonicFreqs[0]
}

// Track is the per-recording aggregate built by the pipeline and serialized by the exporter.
type Track struct {
	Name       string
	SampleRate int
	FPS        int

	Frames   []OutputFrame
	NonQuiet []int

	Centroids [][]float64
	AllQuiet  bool

	MinF0 float64
	MaxF0 float64
}

// Len returns the number of output frames.
func (t *Track) Len() int {
	return len(t.Frames)
}

// BinCount returns the spectral vector width, 0 for an empty track.
func (t *Track) BinCount() int {
	if len(t.Frames) == 0 {
		return 0
	}
	return len(t.Frames[0].Left)
}

// LeftSpectra returns the left channel vectors in frame order.
func (t *Track) LeftSpectra() [][]float64 {
	out := make([][]float64, len(t.Frames))
	for i := range t.Frames {
		out[i] = t.Frames[i].Left
	}
	return out
}

// RightSpectra returns the right channel vectors in frame order.
func (t *Track) RightSpectra() [][]float64 {
	out := make([][]float64, len(t.Frames))
	for i := range t.Frames {
		out[i] = t.Frames[i].Right
	}
	return out
}

// CentroidIndexes returns the quantized codebook index of every frame.
func (t *Track) CentroidIndexes() []int {
	out := make([]int, len(t.Frames))
	for i := range t.Frames {
		out[i] = t.Frames[i].CentroidIndex
	}
	return out
}
