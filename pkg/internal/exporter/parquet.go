package exporter

import (
	"bytes"
	"io"
	"strings"

	parquet "github.com/parquet-go/parquet-go"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

// FrameRow is one output frame in the per-frame side table.
type FrameRow struct {
	Frame         int32   `parquet:"frame"`
	Seconds       float64 `parquet:"seconds"`
	Volume        float64 `parquet:"volume"`
	Balance       float64 `parquet:"balance"`
	Width         float64 `parquet:"width"`
	CentroidIndex int32   `parquet:"centroid_index"`
	Pitch         float64 `parquet:"pitch"`
	Quiet         bool    `parquet:"quiet"`
}

// FrameRows flattens a track into table rows.
func FrameRows(t *types.Track) []FrameRow {
	loud := make(map[int]struct{}, len(t.NonQuiet))
	for _, i := range t.NonQuiet {
		loud[i] = struct{}{}
	}
	rows := make([]FrameRow, len(t.Frames))
	for i := range t.Frames {
		f := &t.Frames[i]
		_, ok := loud[i]
		rows[i] = FrameRow{
			Frame:         int32(i),
			Volume:        f.Volume,
			Balance:       f.Balance,
			Width:         f.Width,
			CentroidIndex: int32(f.CentroidIndex),
			Pitch:         f.Pitch(),
			Quiet:         !ok,
		}
		if t.FPS > 0 {
			rows[i].Seconds = float64(i) / float64(t.FPS)
		}
	}
	return rows
}

func parquetCompression(name string) parquet.WriterOption {
	switch strings.ToLower(name) {
	case "zstd":
		return parquet.Compression(&parquet.Zstd)
	case "gzip", "gz":
		return parquet.Compression(&parquet.Gzip)
	default:
		return parquet.Compression(&parquet.Snappy)
	}
}

// EncodeFrameTable writes the rows as a single parquet file.
func EncodeFrameTable(rows []FrameRow, compression string) ([]byte, error) {
	var buf bytes.Buffer
	pw := parquet.NewGenericWriter[FrameRow](&buf, parquetCompression(compression))
	if _, err := pw.Write(rows); err != nil {
		return nil, err
	}
	if err := pw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeFrameTable reads every row back.
func DecodeFrameTable(data []byte) ([]FrameRow, error) {
	gr := parquet.NewGenericReader[FrameRow](bytes.NewReader(data))
	defer gr.Close()

	out := make([]FrameRow, 0, 1024)
	batch := make([]FrameRow, 1024)
	for {
		n, err := gr.Read(batch)
		if n > 0 {
			out = append(out, batch[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
