package exporter_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joeydtaylor/audiovis/pkg/internal/exporter"
	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

func sampleTrack() *types.Track {
	mk := func(vol, bal, width, f0 float64, idx int) types.OutputFrame {
		return types.OutputFrame{
			Left:          []float64{1, 0.5, 0},
			Right:         []float64{0.25, 1, 0},
			Volume:        vol,
			Balance:       bal,
			Width:         width,
			HarmonicFreqs: []float64{f0, 2 * f0},
			HarmonicMags:  []float64{0.5, 0.1},
			CentroidIndex: idx,
		}
	}
	return &types.Track{
		Name:       "song",
		SampleRate: 44100,
		FPS:        24,
		Frames: []types.OutputFrame{
			mk(0, -2, 0, 0, 0),
			mk(1, 0, 0, 1500, 1),
			mk(2, 1, 0, 3000, 1),
			mk(4, 2, 0, 4000, 0),
		},
		NonQuiet:  []int{1, 2, 3},
		Centroids: [][]float64{{1, 0.5, 0}, {0, 0.25, 1}},
		MinF0:     30,
		MaxF0:     3000,
	}
}

func equal(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestScale_FieldRanges(t *testing.T) {
	s := exporter.Scale(sampleTrack(), 65535)

	if want := []uint16{0, 16384, 32768, 65535}; !equal(s.Volume, want) {
		t.Fatalf("volume: got %v want %v", s.Volume, want)
	}
	if want := []uint16{0, 32767, 65535, 65535}; !equal(s.Balance, want) {
		t.Fatalf("balance: got %v want %v", s.Balance, want)
	}
	if want := []uint16{0, 0, 0, 0}; !equal(s.Width, want) {
		t.Fatalf("width: got %v want %v", s.Width, want)
	}
	if want := []uint16{0, 32768, 65535, 65535}; !equal(s.Pitch, want) {
		t.Fatalf("pitch: got %v want %v", s.Pitch, want)
	}
	if want := []uint16{0, 1, 1, 0}; !equal(s.CentroidIndexes, want) {
		t.Fatalf("centroid indexes: got %v want %v", s.CentroidIndexes, want)
	}
	if want := []uint16{65535, 32768, 0}; !equal(s.Centroids[0], want) {
		t.Fatalf("centroid 0: got %v want %v", s.Centroids[0], want)
	}
	if s.MaxVolume != 4 || s.MaxBalance != 2 || s.MaxWidth != 1 {
		t.Fatalf("unexpected maxima %v %v %v", s.MaxVolume, s.MaxBalance, s.MaxWidth)
	}
}

func TestScale_CenteredBalanceIsMidpoint(t *testing.T) {
	tr := &types.Track{Frames: []types.OutputFrame{{Volume: 1}, {Volume: 1}}, MaxF0: 3000}
	s := exporter.Scale(tr, 65535)
	for i, b := range s.Balance {
		if b != 32767 {
			t.Fatalf("frame %d: expected 32767 for zero balance, got %d", i, b)
		}
	}
}

func TestScale_BalanceIsNotRenormalized(t *testing.T) {
	tr := &types.Track{
		Frames: []types.OutputFrame{
			{Volume: 1, Balance: 0.001},
			{Volume: 1, Balance: -0.002},
			{Volume: 1, Balance: 0.5},
			{Volume: 1, Balance: -1},
		},
		MaxF0: 3000,
	}
	s := exporter.Scale(tr, 65535)
	if want := []uint16{32800, 32701, 49151, 0}; !equal(s.Balance, want) {
		t.Fatalf("balance: got %v want %v", s.Balance, want)
	}
	if s.MaxBalance != 1 {
		t.Fatalf("expected reported max balance 1, got %v", s.MaxBalance)
	}
}

func TestPackAndReadData_FieldOrder(t *testing.T) {
	tr := sampleTrack()
	s := exporter.Scale(tr, 65535)
	m := exporter.BuildManifest(tr, s, 65535, "")

	packed := s.Pack()
	if len(packed) != 4*5+2*3 {
		t.Fatalf("expected %d values, got %d", 4*5+2*3, len(packed))
	}
	blob := exporter.Encode(packed)
	if blob[0] != 0 || blob[6] != 0xff || blob[7] != 0xff {
		t.Fatalf("expected little-endian volume at the start, got % x", blob[:8])
	}

	fields, err := exporter.ReadData(blob, m)
	if err != nil {
		t.Fatalf("ReadData error: %v", err)
	}
	checks := map[string][]uint16{
		exporter.FieldVolume:          s.Volume,
		exporter.FieldBalance:         s.Balance,
		exporter.FieldWidth:           s.Width,
		exporter.FieldCentroids:       append(append([]uint16(nil), s.Centroids[0]...), s.Centroids[1]...),
		exporter.FieldCentroidIndexes: s.CentroidIndexes,
		exporter.FieldPitch:           s.Pitch,
	}
	for name, want := range checks {
		if !equal(fields[name], want) {
			t.Fatalf("%s: got %v want %v", name, fields[name], want)
		}
	}

	if _, err := exporter.ReadData(blob[:len(blob)-2], m); !errors.Is(err, exporter.ErrDataSize) {
		t.Fatalf("expected ErrDataSize for a truncated blob, got %v", err)
	}
	if _, err := exporter.ReadData(blob[:3], m); !errors.Is(err, exporter.ErrOddLength) {
		t.Fatalf("expected ErrOddLength, got %v", err)
	}
}

func TestManifest_SortedKeysAndStructure(t *testing.T) {
	tr := sampleTrack()
	s := exporter.Scale(tr, 65535)
	body, err := exporter.BuildManifest(tr, s, 65535, "zstd").Marshal()
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	text := string(body)

	order := []string{
		`"structure"`, `"0"`, `"volume": [`, `"1"`, `"balance"`, `"2"`, `"width"`,
		`"3"`, `"centroids"`, `"4"`, `"centroid_indexes"`, `"5"`, `"pitch"`,
		`"track"`, `"allquietsamples": false`, `"byte_num_range": 65535`, `"centroid_count": 2`,
		`"compression": "zstd"`, `"data_encoding": "uint16le"`, `"filename": "song"`, `"fps": 24`,
		`"frame_count": 4`, `"fs": 44100`, `"maxvolume": 4`, `"pitchmax": 3000`, `"pitchmin": 30`,
		`"stft_size": 3`,
	}
	pos := 0
	for _, key := range order {
		i := strings.Index(text[pos:], key)
		if i < 0 {
			t.Fatalf("expected %s after offset %d in\n%s", key, pos, text)
		}
		pos += i + len(key)
	}

	m, err := exporter.ParseManifest(body)
	if err != nil {
		t.Fatalf("ParseManifest error: %v", err)
	}
	shapes, err := m.Fields()
	if err != nil {
		t.Fatalf("Fields error: %v", err)
	}
	if len(shapes) != 6 || shapes[3].Name != exporter.FieldCentroids || shapes[3].Rows != 2 || shapes[3].Cols != 3 {
		t.Fatalf("unexpected structure: %+v", shapes)
	}
}

func TestManifest_SilentTrack(t *testing.T) {
	body, err := exporter.BuildManifest(&types.Track{AllQuiet: true}, exporter.Scaled{}, 65535, "").Marshal()
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want := "{\n  \"track\": {\n    \"allquietsamples\": true\n  }\n}"
	if string(body) != want {
		t.Fatalf("got %q want %q", body, want)
	}
	m, err := exporter.ParseManifest(body)
	if err != nil {
		t.Fatalf("ParseManifest error: %v", err)
	}
	if _, err := exporter.ReadData(nil, m); !errors.Is(err, exporter.ErrSilentTrack) {
		t.Fatalf("expected ErrSilentTrack, got %v", err)
	}
}

func TestCompression_RoundTrip(t *testing.T) {
	data := exporter.Encode(exporter.Scale(sampleTrack(), 65535).Pack())
	for _, name := range []string{"gzip", "snappy", "zstd", "brotli", "lz4", ""} {
		c, err := exporter.ParseCompression(name)
		if err != nil {
			t.Fatalf("ParseCompression(%q): %v", name, err)
		}
		packed, err := exporter.Compress(data, c)
		if err != nil {
			t.Fatalf("%s: Compress error: %v", name, err)
		}
		got, err := exporter.Decompress(packed, c)
		if err != nil {
			t.Fatalf("%s: Decompress error: %v", name, err)
		}
		if !bytes.Equal(got, data) {
			t.Fatalf("%s: round trip changed the data", name)
		}
	}
	if _, err := exporter.ParseCompression("rar"); err == nil {
		t.Fatalf("expected an error for an unknown compression")
	}
}

func TestFrameTable_RoundTrip(t *testing.T) {
	tr := sampleTrack()
	table, err := exporter.EncodeFrameTable(exporter.FrameRows(tr), "snappy")
	if err != nil {
		t.Fatalf("EncodeFrameTable error: %v", err)
	}
	rows, err := exporter.DecodeFrameTable(table)
	if err != nil {
		t.Fatalf("DecodeFrameTable error: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if !rows[0].Quiet || rows[1].Quiet {
		t.Fatalf("unexpected quiet flags: %+v", rows[:2])
	}
	if rows[2].Pitch != 3000 || rows[2].CentroidIndex != 1 || rows[3].Volume != 4 {
		t.Fatalf("unexpected row values: %+v", rows[2:])
	}
	if rows[3].Seconds != 0.125 {
		t.Fatalf("expected frame 3 at 0.125 s, got %v", rows[3].Seconds)
	}
}

type recordingNotifier struct {
	tracks    []string
	manifests [][]byte
}

func (r *recordingNotifier) Notify(_ context.Context, track string, manifest []byte) error {
	r.tracks = append(r.tracks, track)
	r.manifests = append(r.manifests, manifest)
	return nil
}

func (r *recordingNotifier) Close() error { return nil }

func TestExport_WritesArtifactsToDirectory(t *testing.T) {
	dir := t.TempDir()
	n := &recordingNotifier{}
	e := exporter.NewExporter(
		exporter.WithSink(exporter.NewDirSink(dir)),
		exporter.WithCompression(exporter.CompressZstd),
		exporter.WithFrameTable("zstd"),
		exporter.WithNotifier(n),
	)
	locs, err := e.Export(context.Background(), sampleTrack())
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	if len(locs) != 4 {
		t.Fatalf("expected 4 artifacts, got %v", locs)
	}
	for _, name := range []string{"song_analysis.json", "song_analysis.data", "song_analysis.data.zst", "song_frames.parquet"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
	raw, err := os.ReadFile(filepath.Join(dir, "song_analysis.data"))
	if err != nil {
		t.Fatalf("read data: %v", err)
	}
	if len(raw) != 2*(4*5+2*3) {
		t.Fatalf("unexpected data size %d", len(raw))
	}
	if len(n.tracks) != 1 || n.tracks[0] != "song" || !bytes.Contains(n.manifests[0], []byte(`"structure"`)) {
		t.Fatalf("expected one notification carrying the manifest, got %v", n.tracks)
	}
}

func TestExport_SilentTrackWritesManifestOnly(t *testing.T) {
	dir := t.TempDir()
	e := exporter.NewExporter(exporter.WithSink(exporter.NewDirSink(dir)), exporter.WithFrameTable(""))
	if _, err := e.Export(context.Background(), &types.Track{Name: "quiet", AllQuiet: true}); err != nil {
		t.Fatalf("Export error: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir error: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "quiet_analysis.json" {
		t.Fatalf("expected only the manifest, got %v", entries)
	}
}

func TestExport_SinkFailure(t *testing.T) {
	boom := errors.New("disk full")
	failing := types.ArtifactSinkFunc(func(context.Context, types.Artifact) (string, error) {
		return "", boom
	})
	e := exporter.NewExporter(exporter.WithSink(failing))
	if _, err := e.Export(context.Background(), sampleTrack()); !errors.Is(err, boom) {
		t.Fatalf("expected sink error, got %v", err)
	}
	if _, err := exporter.NewExporter().Export(context.Background(), sampleTrack()); !errors.Is(err, exporter.ErrNoSinks) {
		t.Fatalf("expected ErrNoSinks, got %v", err)
	}
}
