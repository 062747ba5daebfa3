package exporter

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

// Supported data compressions. The empty name stores the raw blob only.
const (
	CompressNone   = ""
	CompressGzip   = "gzip"
	CompressSnappy = "snappy"
	CompressZstd   = "zstd"
	CompressBrotli = "brotli"
	CompressLZ4    = "lz4"
)

var compressionSuffix = map[string]string{
	CompressGzip:   ".gz",
	CompressSnappy: ".sz",
	CompressZstd:   ".zst",
	CompressBrotli: ".br",
	CompressLZ4:    ".lz4",
}

// ParseCompression normalizes a compression name.
func ParseCompression(name string) (string, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "", "none":
		return CompressNone, nil
	case "gz", "deflate":
		return CompressGzip, nil
	case "zst":
		return CompressZstd, nil
	}
	if _, ok := compressionSuffix[n]; ok {
		return n, nil
	}
	return "", fmt.Errorf("exporter: unsupported compression %q", name)
}

// CompressionSuffix returns the file suffix appended for a compression.
func CompressionSuffix(name string) string {
	return compressionSuffix[name]
}

// Compress encodes data with the named algorithm.
func Compress(data []byte, name string) ([]byte, error) {
	var b bytes.Buffer
	var w io.WriteCloser

	switch name {
	case CompressGzip:
		w = gzip.NewWriter(&b)
	case CompressSnappy:
		w = snappy.NewBufferedWriter(&b)
	case CompressZstd:
		var err error
		w, err = zstd.NewWriter(&b)
		if err != nil {
			return nil, err
		}
	case CompressBrotli:
		w = brotli.NewWriterLevel(&b, brotli.BestCompression)
	case CompressLZ4:
		w = lz4.NewWriter(&b)
	case CompressNone:
		return data, nil
	default:
		return nil, fmt.Errorf("exporter: unsupported compression %q", name)
	}

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Decompress reverses Compress.
func Decompress(data []byte, name string) ([]byte, error) {
	var r io.Reader

	switch name {
	case CompressGzip:
		gr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer gr.Close()
		r = gr
	case CompressSnappy:
		r = snappy.NewReader(bytes.NewReader(data))
	case CompressZstd:
		zr, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	case CompressBrotli:
		r = brotli.NewReader(bytes.NewReader(data))
	case CompressLZ4:
		r = lz4.NewReader(bytes.NewReader(data))
	case CompressNone:
		return data, nil
	default:
		return nil, fmt.Errorf("exporter: unsupported compression %q", name)
	}

	var b bytes.Buffer
	if _, err := io.Copy(&b, r); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
