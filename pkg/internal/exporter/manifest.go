package exporter

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

// Field names in export order.
const (
	FieldVolume          = "volume"
	FieldBalance         = "balance"
	FieldWidth           = "width"
	FieldCentroids       = "centroids"
	FieldCentroidIndexes = "centroid_indexes"
	FieldPitch           = "pitch"

	DataEncoding = "uint16le"
)

var (
	ErrSilentTrack        = errors.New("exporter: track is silent and has no data")
	ErrMalformedStructure = errors.New("exporter: malformed manifest structure")
	ErrDataSize           = errors.New("exporter: data size does not match manifest")
)

// Structure maps the position of each field ("0".."5") to {name: [rows, cols]}.
type Structure map[string]map[string][2]int

// TrackInfo is the "track" section of the manifest. Fields are declared in key order so the
// encoded object comes out sorted.
type TrackInfo struct {
	AllQuietSamples bool    `json:"allquietsamples"`
	ByteNumRange    int     `json:"byte_num_range"`
	CentroidCount   int     `json:"centroid_count"`
	Compression     string  `json:"compression,omitempty"`
	DataEncoding    string  `json:"data_encoding"`
	Filename        string  `json:"filename"`
	FPS             int     `json:"fps"`
	FrameCount      int     `json:"frame_count"`
	SampleRate      int     `json:"fs"`
	MaxVolume       float64 `json:"maxvolume"`
	PitchMax        float64 `json:"pitchmax"`
	PitchMin        float64 `json:"pitchmin"`
	STFTSize        int     `json:"stft_size"`
}

// Manifest describes a data blob.
type Manifest struct {
	Structure Structure `json:"structure,omitempty"`
	Track     TrackInfo `json:"track"`
}

// FieldShape is one entry of the structure in position order.
type FieldShape struct {
	Name string
	Rows int
	Cols int
}

// Len returns the number of uint16 values the field occupies.
func (f FieldShape) Len() int {
	return f.Rows * f.Cols
}

// BuildManifest describes a scaled track.
func BuildManifest(t *types.Track, s Scaled, scaleRange int, compression string) Manifest {
	if t.AllQuiet {
		return Manifest{Track: TrackInfo{AllQuietSamples: true}}
	}
	n := t.Len()
	shapes := []FieldShape{
		{FieldVolume, n, 1},
		{FieldBalance, n, 1},
		{FieldWidth, n, 1},
		{FieldCentroids, len(t.Centroids), t.BinCount()},
		{FieldCentroidIndexes, n, 1},
		{FieldPitch, n, 1},
	}
	st := make(Structure, len(shapes))
	for i, sh := range shapes {
		st[strconv.Itoa(i)] = map[string][2]int{sh.Name: {sh.Rows, sh.Cols}}
	}
	return Manifest{
		Structure: st,
		Track: TrackInfo{
			ByteNumRange:  scaleRange,
			CentroidCount: len(t.Centroids),
			Compression:   compression,
			DataEncoding:  DataEncoding,
			Filename:      t.Name,
			FPS:           t.FPS,
			FrameCount:    n,
			SampleRate:    t.SampleRate,
			MaxVolume:     s.MaxVolume,
			PitchMax:      t.MaxF0,
			PitchMin:      t.MinF0,
			STFTSize:      t.BinCount(),
		},
	}
}

// Marshal encodes the manifest with two-space indentation. A silent track encodes to the
// flag alone.
func (m Manifest) Marshal() ([]byte, error) {
	if m.Track.AllQuietSamples {
		return json.MarshalIndent(map[string]map[string]bool{
			"track": {"allquietsamples": true},
		}, "", "  ")
	}
	return json.MarshalIndent(m, "", "  ")
}

// ParseManifest decodes a manifest.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("exporter: decode manifest: %w", err)
	}
	return m, nil
}

// Fields returns the structure entries in position order.
func (m Manifest) Fields() ([]FieldShape, error) {
	keys := make([]int, 0, len(m.Structure))
	for k, v := range m.Structure {
		pos, err := strconv.Atoi(k)
		if err != nil || len(v) != 1 {
			return nil, fmt.Errorf("%w: entry %q", ErrMalformedStructure, k)
		}
		keys = append(keys, pos)
	}
	sort.Ints(keys)

	out := make([]FieldShape, 0, len(keys))
	for i, pos := range keys {
		if pos != i {
			return nil, fmt.Errorf("%w: missing position %d", ErrMalformedStructure, i)
		}
		for name, dims := range m.Structure[strconv.Itoa(pos)] {
			out = append(out, FieldShape{Name: name, Rows: dims[0], Cols: dims[1]})
		}
	}
	return out, nil
}

// FieldValues holds a decoded data blob keyed by field name. Matrix fields are flattened row-major.
type FieldValues map[string][]uint16

// ReadData splits a raw data blob into its fields according to the manifest.
func ReadData(data []byte, m Manifest) (FieldValues, error) {
	if m.Track.AllQuietSamples {
		return nil, ErrSilentTrack
	}
	shapes, err := m.Fields()
	if err != nil {
		return nil, err
	}
	values, err := Decode(data)
	if err != nil {
		return nil, err
	}

	want := 0
	for _, sh := range shapes {
		want += sh.Len()
	}
	if want != len(values) {
		return nil, fmt.Errorf("%w: %d values, manifest describes %d", ErrDataSize, len(values), want)
	}

	out := make(FieldValues, len(shapes))
	off := 0
	for _, sh := range shapes {
		out[sh.Name] = values[off : off+sh.Len()]
		off += sh.Len()
	}
	return out, nil
}
