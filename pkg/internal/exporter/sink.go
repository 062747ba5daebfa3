package exporter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

// DirSink writes artifacts as files under Dir.
type DirSink struct {
	Dir string
}

// NewDirSink returns a sink rooted at dir.
func NewDirSink(dir string) *DirSink {
	return &DirSink{Dir: dir}
}

// Put writes the artifact and returns its path.
func (d *DirSink) Put(ctx context.Context, a types.Artifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if a.Name == "" || filepath.Base(a.Name) != a.Name {
		return "", fmt.Errorf("exporter: invalid artifact name %q", a.Name)
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return "", fmt.Errorf("exporter: create %s: %w", d.Dir, err)
	}
	path := filepath.Join(d.Dir, a.Name)
	if err := os.WriteFile(path, a.Body, 0o644); err != nil {
		return "", fmt.Errorf("exporter: write %s: %w", path, err)
	}
	return path, nil
}
