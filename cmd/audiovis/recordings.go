package main

import (
	"os"
	"path/filepath"

	"github.com/joeydtaylor/audiovis/pkg/builder"
)

// collectRecordings expands directories into their prefixed .wav entries and keeps file
// arguments as given.
func collectRecordings(paths []string, prefix string, limit int) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		found, err := builder.DiscoverRecordings(p, prefix, limit)
		if err != nil {
			return nil, err
		}
		out = append(out, found...)
	}
	return out, nil
}

// masterFor names the compressed master mix of a session: PREFIX.mp3 when a prefix is given,
// otherwise the first argument's stem.
func masterFor(paths []string, prefix string) string {
	if prefix != "" {
		return builder.MasterName(prefix + ".wav")
	}
	if len(paths) == 0 {
		return ""
	}
	return builder.MasterName(filepath.Clean(paths[0]))
}
