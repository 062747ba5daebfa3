package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joeydtaylor/audiovis/pkg/builder"
)

// InspectCmd prints what an exported track contains.
type InspectCmd struct {
	Manifest string `arg:"" name:"manifest" help:"Path to a *_analysis.json manifest" type:"existingfile"`
	Data     string `help:"Data file (default: next to the manifest)" type:"path"`
}

func (c *InspectCmd) Run(g *Globals) error {
	return inspect(os.Stdout, c.Manifest, c.Data)
}

// inspect prints the track section and, when the data file can be found, per-field value ranges.
// A compressed copy is used when the raw file is missing.
func inspect(w io.Writer, manifestPath, dataPath string) error {
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return err
	}
	m, err := builder.ParseManifest(raw)
	if err != nil {
		return err
	}
	if m.Track.AllQuietSamples {
		_, err := fmt.Fprintf(w, "%s: silent\n", filepath.Base(manifestPath))
		return err
	}

	t := m.Track
	fmt.Fprintf(w, "track       %s\n", t.Filename)
	fmt.Fprintf(w, "fs          %d Hz\n", t.SampleRate)
	fmt.Fprintf(w, "fps         %d\n", t.FPS)
	fmt.Fprintf(w, "frames      %d\n", t.FrameCount)
	fmt.Fprintf(w, "centroids   %d x %d\n", t.CentroidCount, t.STFTSize)
	fmt.Fprintf(w, "pitch       %g - %g Hz\n", t.PitchMin, t.PitchMax)
	fmt.Fprintf(w, "max volume  %g\n", t.MaxVolume)

	if dataPath == "" {
		dataPath = strings.TrimSuffix(manifestPath, "_analysis.json") + "_analysis.data"
	}
	data, err := readData(dataPath, t.Compression)
	if errors.Is(err, os.ErrNotExist) {
		_, err = fmt.Fprintf(w, "data        %s not found\n", dataPath)
		return err
	}
	if err != nil {
		return err
	}
	fields, err := builder.ReadData(data, m)
	if err != nil {
		return err
	}
	shapes, err := m.Fields()
	if err != nil {
		return err
	}
	for _, s := range shapes {
		lo, hi := valueRange(fields[s.Name])
		if _, err := fmt.Fprintf(w, "%-17s [%d, %d]  min %d  max %d\n", s.Name, s.Rows, s.Cols, lo, hi); err != nil {
			return err
		}
	}
	return nil
}

func readData(path, compression string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil || !errors.Is(err, os.ErrNotExist) || compression == "" {
		return data, err
	}
	packed, perr := os.ReadFile(path + builder.CompressionSuffix(compression))
	if perr != nil {
		return nil, err
	}
	return builder.Decompress(packed, compression)
}

func valueRange(v []uint16) (uint16, uint16) {
	if len(v) == 0 {
		return 0, 0
	}
	lo, hi := v[0], v[0]
	for _, x := range v[1:] {
		lo = min(lo, x)
		hi = max(hi, x)
	}
	return lo, hi
}
